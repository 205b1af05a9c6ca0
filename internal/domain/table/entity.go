package table

import (
	"strings"

	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/sheet"
)

// Logical table names listed in the config sheet.
const (
	Members    = "userLine"
	History    = "history"
	Employees  = "employees"
	Attendance = "attendance"
	Leaves     = "employee_leaves"
)

// Table locates one logical table inside a spreadsheet.
type Table struct {
	Name    string `json:"tableName"`
	SheetID string `json:"sheetId"`
	Range   string `json:"range"`
}

// Registry is the config sheet keyed by table name.
type Registry map[string]Table

func (r Registry) Lookup(name string) (Table, error) {
	t, ok := r[name]
	if !ok || t.SheetID == "" || t.Range == "" {
		return Table{}, ErrTableNotConfigured
	}
	return t, nil
}

// Parse builds a registry from config sheet records. Rows without a table
// name are ignored; a repeated name keeps the last row.
func Parse(records []sheet.Record) Registry {
	reg := make(Registry, len(records))
	for _, r := range records {
		name := strings.TrimSpace(r.Get("tableName"))
		if name == "" {
			continue
		}
		reg[name] = Table{
			Name:    name,
			SheetID: strings.TrimSpace(r.Get("sheetId")),
			Range:   strings.TrimSpace(r.Get("range")),
		}
	}
	return reg
}
