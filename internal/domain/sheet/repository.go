package sheet

import "context"

// Store is the spreadsheet backend. Ranges use A1 notation.
type Store interface {
	// Get returns every row of the range, header row included. An empty
	// sheet returns no rows and no error.
	Get(ctx context.Context, sheetID string, rng string) ([][]string, error)

	// Append adds row after the last row of the range and reports how many
	// rows were written.
	Append(ctx context.Context, sheetID string, rng string, row []string) (int64, error)

	// Update overwrites the cells of rng with row.
	Update(ctx context.Context, sheetID string, rng string, row []string) error
}
