package sheet

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Record is one data row keyed by the header row's field names.
type Record map[string]string

// Get returns the field value or "" when the column is absent.
func (r Record) Get(field string) string {
	return r[field]
}

// ToRecords converts raw sheet values into records using the first row as
// field names. An empty or header-only sheet yields an empty, non-nil slice.
// Cells missing from short rows default to "".
func ToRecords(values [][]string) []Record {
	records := make([]Record, 0)
	if len(values) <= 1 {
		return records
	}

	headers := values[0]
	for _, row := range values[1:] {
		rec := make(Record, len(headers))
		for i, h := range headers {
			if h == "" {
				continue
			}
			if i < len(row) {
				rec[h] = row[i]
			} else {
				rec[h] = ""
			}
		}
		records = append(records, rec)
	}
	return records
}

// Cell returns row[i] or "" when the row is shorter than i+1.
func Cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// Cells is a row of cell values. It decodes from a JSON array whose items may
// be strings, numbers, booleans or null, mirroring what the mini-app sends.
type Cells []string

func (c *Cells) UnmarshalJSON(data []byte) error {
	var raw []interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*c = nil
		return nil
	}
	out := make(Cells, len(raw))
	for i, v := range raw {
		switch val := v.(type) {
		case nil:
			out[i] = ""
		case string:
			out[i] = val
		case float64:
			out[i] = strconv.FormatFloat(val, 'f', -1, 64)
		case bool:
			out[i] = strings.ToUpper(strconv.FormatBool(val))
		default:
			b, _ := json.Marshal(val)
			out[i] = string(b)
		}
	}
	*c = out
	return nil
}
