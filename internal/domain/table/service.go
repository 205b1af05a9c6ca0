package table

import "context"

type TableService interface {
	// Load reads the config sheet. It is not cached; edits to the sheet apply
	// on the next call.
	Load(ctx context.Context) (Registry, error)
}
