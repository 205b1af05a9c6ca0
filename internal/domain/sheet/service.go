package sheet

import "context"

// Service backs the raw sheet endpoints used by the mini-app.
type Service interface {
	Get(ctx context.Context, req GetRequest) ([]Record, error)
	Append(ctx context.Context, req AppendRequest) (AppendResponse, error)
}
