package dataset

import (
	"fmt"
	"time"
)

// Column is an ordered sequence of cell values. A nil value marks a missing
// cell.
type Column struct {
	Name   string
	Values []interface{}
}

// Table is a rectangular dataset: named columns of equal length.
type Table struct {
	Columns []Column
}

// NewTable validates the rectangular invariant: at least one column, at least
// one row, and every column the same length.
func NewTable(columns []Column) (*Table, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("table needs at least one column")
	}
	rows := len(columns[0].Values)
	if rows == 0 {
		return nil, fmt.Errorf("table needs at least one row")
	}
	for _, col := range columns[1:] {
		if len(col.Values) != rows {
			return nil, fmt.Errorf("column %q has %d values, expected %d", col.Name, len(col.Values), rows)
		}
	}
	return &Table{Columns: columns}, nil
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Values)
}

// Column returns the column with the given name, or nil.
func (t *Table) Column(name string) *Column {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i]
		}
	}
	return nil
}

// Row materializes row i as a name -> value map.
func (t *Table) Row(i int) map[string]interface{} {
	row := make(map[string]interface{}, len(t.Columns))
	for _, col := range t.Columns {
		row[col.Name] = col.Values[i]
	}
	return row
}

// NonNullCount counts cells that are present.
func (c *Column) NonNullCount() int {
	n := 0
	for _, v := range c.Values {
		if v != nil {
			n++
		}
	}
	return n
}

// FormatValue normalizes a cell to a JSON-friendly primitive: numbers,
// strings, and booleans pass through, missing cells become nil, anything else
// is stringified.
func FormatValue(v interface{}) interface{} {
	switch val := v.(type) {
	case nil:
		return nil
	case string, bool, int, int64, float64:
		return val
	case time.Time:
		return val.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprintf("%v", val)
	}
}

// ToFloat attempts permissive numeric coercion of a single cell. The second
// return is false for missing or non-numeric values.
func ToFloat(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case string:
		return parseNumber(val)
	default:
		return 0, false
	}
}
