// Package sheetrange parses and builds A1-notation ranges such as
// "attendance!A:H" or "attendance!A5:H5".
package sheetrange

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

var ErrInvalidRange = errors.New("invalid A1 range")

// Range is a parsed A1 range. StartRow is 1 when the range has no row bound.
type Range struct {
	Sheet    string
	StartCol string
	EndCol   string
	StartRow int
	EndRow   int // 0 when unbounded
}

// Parse parses "Sheet!A2:H", "Sheet!A:H", "'My Sheet'!B3" or a bare sheet name.
func Parse(a1 string) (Range, error) {
	a1 = strings.TrimSpace(a1)
	if a1 == "" {
		return Range{}, ErrInvalidRange
	}

	r := Range{StartRow: 1}
	cells := a1
	if idx := strings.LastIndex(a1, "!"); idx >= 0 {
		r.Sheet = unquote(a1[:idx])
		cells = a1[idx+1:]
	} else if !strings.Contains(a1, ":") && !isCellName(a1) {
		r.Sheet = unquote(a1)
		return r, nil
	}

	if cells == "" {
		return r, nil
	}

	start, end, hasEnd := strings.Cut(cells, ":")
	startCol, startRow, err := parseCell(start)
	if err != nil {
		return Range{}, fmt.Errorf("%w: %q", ErrInvalidRange, a1)
	}
	r.StartCol = startCol
	if startRow > 0 {
		r.StartRow = startRow
	}

	if hasEnd {
		endCol, endRow, err := parseCell(end)
		if err != nil {
			return Range{}, fmt.Errorf("%w: %q", ErrInvalidRange, a1)
		}
		r.EndCol = endCol
		r.EndRow = endRow
	} else {
		r.EndCol = startCol
		r.EndRow = startRow
	}

	return r, nil
}

// parseCell accepts a full cell ("A2") or an open bound: column only ("A")
// or row only ("2").
func parseCell(cell string) (string, int, error) {
	if cell == "" {
		return "", 0, ErrInvalidRange
	}
	if isCellName(cell) {
		col, row, _ := excelize.SplitCellName(cell)
		return strings.ToUpper(col), row, nil
	}
	if row, err := strconv.Atoi(cell); err == nil {
		if row < 1 {
			return "", 0, ErrInvalidRange
		}
		return "", row, nil
	}
	if _, err := excelize.ColumnNameToNumber(cell); err != nil {
		return "", 0, ErrInvalidRange
	}
	return strings.ToUpper(cell), 0, nil
}

func isCellName(s string) bool {
	_, row, err := excelize.CellNameToCoordinates(s)
	return err == nil && row > 0
}

// unquote strips the quotes around a sheet name and unescapes doubled quotes.
func unquote(name string) string {
	if len(name) >= 2 && strings.HasPrefix(name, "'") && strings.HasSuffix(name, "'") {
		return strings.ReplaceAll(name[1:len(name)-1], "''", "'")
	}
	return name
}

// Row returns the range covering a single sheet row between the range's
// columns, e.g. "attendance!A7:H7".
func (r Range) Row(n int) string {
	startCol := r.StartCol
	if startCol == "" {
		startCol = "A"
	}
	endCol := r.EndCol
	if endCol == "" {
		endCol = startCol
	}
	return fmt.Sprintf("%s%s%d:%s%d", r.prefix(), startCol, n, endCol, n)
}

// DataRow returns the absolute sheet row number of the zero-based data row
// index, skipping the header row that sits at StartRow.
func (r Range) DataRow(index int) int {
	return r.StartRow + 1 + index
}

func (r Range) prefix() string {
	if r.Sheet == "" {
		return ""
	}
	if strings.ContainsAny(r.Sheet, " '!") {
		return "'" + strings.ReplaceAll(r.Sheet, "'", "''") + "'!"
	}
	return r.Sheet + "!"
}

// ColumnIndex converts a column letter ("A", "H", "AA") to a zero-based
// index. It returns -1 for an invalid column.
func ColumnIndex(col string) int {
	n, err := excelize.ColumnNameToNumber(col)
	if err != nil {
		return -1
	}
	return n - 1
}
