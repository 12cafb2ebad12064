// Package sources implements the concrete import drivers: a generic
// delimited-file source and the three recruiting-platform spreadsheet
// sources (Cake, LRS, Yourator).
package sources

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucemia/agent-hr/internal/importer"
)

// normalizeCommon applies the fixups every driver owes the pipeline:
// the native identifier becomes a string and blank string values become nil.
func normalizeCommon(row importer.Row) importer.Row {
	if v, ok := row["source_id"]; ok && v != nil {
		row["source_id"] = stringify(v)
	}
	for key, value := range row {
		if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
			row[key] = nil
		}
	}
	return row
}

// stringify renders a native identifier the way the sheet displayed it, so
// numeric IDs do not pick up a trailing ".0" style artifact.
func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// stringCell returns the trimmed string form of a cell, and whether the cell
// held a non-blank value at all.
func stringCell(row importer.Row, key string) (string, bool) {
	value, ok := row[key]
	if !ok || value == nil {
		return "", false
	}
	s := strings.TrimSpace(stringify(value))
	if s == "" {
		return "", false
	}
	return s, true
}
