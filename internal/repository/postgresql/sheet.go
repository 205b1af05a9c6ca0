package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/sheet"
	"github.com/cmlabs-hris/liff-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/liff-attendance-go/internal/pkg/sheetrange"
	"github.com/jackc/pgx/v5"
)

// sheetStore mirrors spreadsheets in a single table. Every row is stored as
// a JSON array of cells starting at column A; row numbers follow the sheet's
// own 1-based numbering so range arithmetic matches Google Sheets.
type sheetStore struct {
	db *database.DB
}

func NewSheetStore(db *database.DB) sheet.Store {
	return &sheetStore{db: db}
}

const sheetSchema = `
	CREATE TABLE IF NOT EXISTS sheet_rows (
		spreadsheet_id TEXT        NOT NULL,
		sheet_name     TEXT        NOT NULL,
		row_number     INT         NOT NULL,
		cells          JSONB       NOT NULL DEFAULT '[]'::jsonb,
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (spreadsheet_id, sheet_name, row_number)
	)
`

// Migrate creates the sheet_rows table when it does not exist.
func Migrate(ctx context.Context, db *database.DB) error {
	if _, err := db.Exec(ctx, sheetSchema); err != nil {
		return fmt.Errorf("failed to create sheet_rows: %w", err)
	}
	return nil
}

// Get implements sheet.Store.
func (s *sheetStore) Get(ctx context.Context, sheetID string, rng string) ([][]string, error) {
	r, err := sheetrange.Parse(rng)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT row_number, cells
		FROM sheet_rows
		WHERE spreadsheet_id = $1
		  AND sheet_name = $2
		  AND row_number >= $3
		  AND ($4 = 0 OR row_number <= $4)
		ORDER BY row_number
	`

	rows, err := s.db.Query(ctx, query, sheetID, r.Sheet, r.StartRow, r.EndRow)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", rng, err)
	}
	defer rows.Close()

	values := make([][]string, 0)
	next := r.StartRow
	for rows.Next() {
		var (
			rowNumber int
			raw       []byte
		)
		if err := rows.Scan(&rowNumber, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		var cells []string
		if err := json.Unmarshal(raw, &cells); err != nil {
			return nil, fmt.Errorf("failed to decode row %d: %w", rowNumber, err)
		}

		// Blank rows in between keep their position.
		for ; next < rowNumber; next++ {
			values = append(values, []string{})
		}
		values = append(values, sliceColumns(cells, r))
		next = rowNumber + 1
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return values, nil
}

// Append implements sheet.Store.
func (s *sheetStore) Append(ctx context.Context, sheetID string, rng string, row []string) (int64, error) {
	r, err := sheetrange.Parse(rng)
	if err != nil {
		return 0, err
	}

	raw, err := json.Marshal(placeColumns(nil, row, r))
	if err != nil {
		return 0, err
	}

	query := `
		INSERT INTO sheet_rows (spreadsheet_id, sheet_name, row_number, cells)
		SELECT $1, $2, COALESCE(MAX(row_number), $3 - 1) + 1, $4::jsonb
		FROM sheet_rows
		WHERE spreadsheet_id = $1 AND sheet_name = $2
	`

	tag, err := s.db.Exec(ctx, query, sheetID, r.Sheet, r.StartRow, string(raw))
	if err != nil {
		return 0, fmt.Errorf("failed to append to %s: %w", rng, err)
	}
	return tag.RowsAffected(), nil
}

// Update implements sheet.Store. Only single-row ranges are supported.
func (s *sheetStore) Update(ctx context.Context, sheetID string, rng string, row []string) error {
	r, err := sheetrange.Parse(rng)
	if err != nil {
		return err
	}
	if r.EndRow != 0 && r.EndRow != r.StartRow {
		return fmt.Errorf("%w: update spans more than one row", sheetrange.ErrInvalidRange)
	}

	return WithTransaction(ctx, s.db, func(q database.Querier) error {
		var raw []byte
		err := q.QueryRow(ctx, `
			SELECT cells FROM sheet_rows
			WHERE spreadsheet_id = $1 AND sheet_name = $2 AND row_number = $3
			FOR UPDATE
		`, sheetID, r.Sheet, r.StartRow).Scan(&raw)

		var existing []string
		if err != nil {
			if !errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("failed to read row %d: %w", r.StartRow, err)
			}
		} else if err := json.Unmarshal(raw, &existing); err != nil {
			return fmt.Errorf("failed to decode row %d: %w", r.StartRow, err)
		}

		updated, err := json.Marshal(placeColumns(existing, row, r))
		if err != nil {
			return err
		}

		_, err = q.Exec(ctx, `
			INSERT INTO sheet_rows (spreadsheet_id, sheet_name, row_number, cells)
			VALUES ($1, $2, $3, $4::jsonb)
			ON CONFLICT (spreadsheet_id, sheet_name, row_number)
			DO UPDATE SET cells = EXCLUDED.cells, updated_at = NOW()
		`, sheetID, r.Sheet, r.StartRow, string(updated))
		if err != nil {
			return fmt.Errorf("failed to update %s: %w", rng, err)
		}
		return nil
	})
}

// sliceColumns cuts a stored row down to the range's column window.
func sliceColumns(cells []string, r sheetrange.Range) []string {
	start := 0
	if r.StartCol != "" {
		start = sheetrange.ColumnIndex(r.StartCol)
	}
	end := len(cells)
	if r.EndCol != "" {
		if e := sheetrange.ColumnIndex(r.EndCol) + 1; e < end {
			end = e
		}
	}
	if start >= end {
		return []string{}
	}
	out := make([]string, end-start)
	copy(out, cells[start:end])
	return out
}

// placeColumns writes row into base starting at the range's first column.
func placeColumns(base []string, row []string, r sheetrange.Range) []string {
	start := 0
	if r.StartCol != "" {
		start = sheetrange.ColumnIndex(r.StartCol)
	}
	size := start + len(row)
	if len(base) > size {
		size = len(base)
	}
	out := make([]string, size)
	copy(out, base)
	copy(out[start:], row)
	return out
}
