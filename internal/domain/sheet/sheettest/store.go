// Package sheettest provides an in-memory sheet.Store that records calls.
package sheettest

import (
	"context"
	"sync"

	"github.com/cmlabs-hris/liff-attendance-go/internal/pkg/sheetrange"
)

type Call struct {
	SheetID string
	Range   string
	Row     []string
}

// Store keeps sheets in memory. Rows are stored by absolute position, so
// index 0 is sheet row 1.
type Store struct {
	mu     sync.Mutex
	sheets map[string][][]string

	Gets    []Call
	Appends []Call
	Updates []Call

	GetErr    error
	AppendErr error
	UpdateErr error
}

func NewStore() *Store {
	return &Store{sheets: make(map[string][][]string)}
}

func key(sheetID, sheetName string) string {
	return sheetID + "|" + sheetName
}

// Seed replaces the contents of one sheet.
func (s *Store) Seed(sheetID, sheetName string, rows [][]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([][]string, len(rows))
	for i, r := range rows {
		cp[i] = append([]string(nil), r...)
	}
	s.sheets[key(sheetID, sheetName)] = cp
}

// Rows returns a copy of one sheet.
func (s *Store) Rows(sheetID, sheetName string) [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	src := s.sheets[key(sheetID, sheetName)]
	cp := make([][]string, len(src))
	for i, r := range src {
		cp[i] = append([]string(nil), r...)
	}
	return cp
}

// Calls is the total number of store calls made.
func (s *Store) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Gets) + len(s.Appends) + len(s.Updates)
}

func (s *Store) Get(ctx context.Context, sheetID string, rng string) ([][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Gets = append(s.Gets, Call{SheetID: sheetID, Range: rng})
	if s.GetErr != nil {
		return nil, s.GetErr
	}

	r, err := sheetrange.Parse(rng)
	if err != nil {
		return nil, err
	}
	rows := s.sheets[key(sheetID, r.Sheet)]
	start := r.StartRow - 1
	if start >= len(rows) {
		return [][]string{}, nil
	}
	end := len(rows)
	if r.EndRow > 0 && r.EndRow < end {
		end = r.EndRow
	}
	out := make([][]string, 0, end-start)
	for _, row := range rows[start:end] {
		out = append(out, append([]string(nil), row...))
	}
	return out, nil
}

func (s *Store) Append(ctx context.Context, sheetID string, rng string, row []string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Appends = append(s.Appends, Call{SheetID: sheetID, Range: rng, Row: append([]string(nil), row...)})
	if s.AppendErr != nil {
		return 0, s.AppendErr
	}

	r, err := sheetrange.Parse(rng)
	if err != nil {
		return 0, err
	}
	k := key(sheetID, r.Sheet)
	s.sheets[k] = append(s.sheets[k], append([]string(nil), row...))
	return 1, nil
}

func (s *Store) Update(ctx context.Context, sheetID string, rng string, row []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Updates = append(s.Updates, Call{SheetID: sheetID, Range: rng, Row: append([]string(nil), row...)})
	if s.UpdateErr != nil {
		return s.UpdateErr
	}

	r, err := sheetrange.Parse(rng)
	if err != nil {
		return err
	}
	k := key(sheetID, r.Sheet)
	rows := s.sheets[k]
	for len(rows) < r.StartRow {
		rows = append(rows, []string{})
	}
	target := rows[r.StartRow-1]
	col := 0
	if r.StartCol != "" {
		col = sheetrange.ColumnIndex(r.StartCol)
	}
	for len(target) < col+len(row) {
		target = append(target, "")
	}
	copy(target[col:], row)
	rows[r.StartRow-1] = target
	s.sheets[k] = rows
	return nil
}
