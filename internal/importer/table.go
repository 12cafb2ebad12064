// Package importer defines the source-driver contract and the import
// pipeline that turns raw tabular source data into canonical resume records.
package importer

import "strings"

// Row is one record of tabular source data, keyed by column name.
// Cell values are nil, string, float64, bool, or time.Time depending on what
// the backing source reported.
type Row map[string]any

// Clone returns a shallow copy so transforms never mutate pipeline input.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Table is an ordered collection of rows with a known column set, the plain
// tabular value every driver's FetchData returns.
type Table struct {
	Columns []string
	Rows    []Row
}

// NewTable builds a table from a header row and cell grid. Rows shorter than
// the header are padded with nil; cells beyond the header are dropped.
func NewTable(header []string, cells [][]any) *Table {
	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(h)
	}

	t := &Table{Columns: columns}
	for _, cellRow := range cells {
		row := make(Row, len(columns))
		for i, col := range columns {
			if col == "" {
				continue
			}
			if i < len(cellRow) {
				row[col] = normalizeCell(cellRow[i])
			} else {
				row[col] = nil
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// HasColumn reports whether the table carries the named column.
func (t *Table) HasColumn(name string) bool {
	for _, col := range t.Columns {
		if col == name {
			return true
		}
	}
	return false
}

// AddColumn appends a column if it is not already present.
func (t *Table) AddColumn(name string) {
	if !t.HasColumn(name) {
		t.Columns = append(t.Columns, name)
	}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// normalizeCell maps null-equivalent cell values to nil so downstream code
// only has to deal with one notion of "missing".
func normalizeCell(value any) any {
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		if strings.TrimSpace(v) == "" {
			return nil
		}
		return v
	default:
		return value
	}
}
