package models

// Column is one named column of a tabular payload. Cells hold the raw text
// exactly as the upstream document carried it; cleaning happens later.
type Column struct {
	Name  string
	Cells []string
}

// Table is an ordered, schema-less tabular payload. Column names come from
// the upstream document and are not guaranteed unique, stable, or present:
// schema drift is the normal condition, not an error.
type Table struct {
	Columns []Column
}

// NumRows returns the row count of the widest column.
func (t *Table) NumRows() int {
	n := 0
	for _, c := range t.Columns {
		if len(c.Cells) > n {
			n = len(c.Cells)
		}
	}
	return n
}

// NumCols returns the column count.
func (t *Table) NumCols() int { return len(t.Columns) }

// Cell returns the raw text at (col, row), or "" when the column is ragged.
func (t *Table) Cell(col, row int) string {
	if col < 0 || col >= len(t.Columns) {
		return ""
	}
	if row < 0 || row >= len(t.Columns[col].Cells) {
		return ""
	}
	return t.Columns[col].Cells[row]
}

// ColumnNames returns the header names in payload order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}
