package parser

import "strings"

// MetaRows is the number of rows between the field-name row and the data:
// the type row and the description row.
const MetaRows = 2

// column is a named sheet column.
type column struct {
	index int
	name  string
}

// headerColumns returns the columns named in the header row, in sheet order.
// Columns with an empty name, or repeating an earlier name, are dropped.
func headerColumns(header []string) []column {
	seen := make(map[string]struct{}, len(header))
	var cols []column
	for colIdx, cell := range header {
		name := strings.TrimSpace(cell)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		cols = append(cols, column{index: colIdx, name: name})
	}
	return cols
}

// isBlankRow reports whether row has no value in any named column.
func isBlankRow(row []string, cols []column) bool {
	for _, col := range cols {
		if col.index < len(row) && strings.TrimSpace(row[col.index]) != "" {
			return false
		}
	}
	return true
}
