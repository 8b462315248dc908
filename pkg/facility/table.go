// CLAUDE:SUMMARY In-memory table of string cells that the pipeline stages mutate in place.
package facility

// Table is an ordered set of columns and rows of raw string cells.
// Rows are expected to have len(Columns) cells; shorter rows read as blank.
type Table struct {
	Columns []string
	Rows    [][]string
}

// NewTable builds a table from a header and rows. The slices are used as is.
func NewTable(columns []string, rows [][]string) *Table {
	return &Table{Columns: columns, Rows: rows}
}

// Index returns the position of the first column named name.
func (t *Table) Index(name string) (int, bool) {
	for i, c := range t.Columns {
		if c == name {
			return i, true
		}
	}
	return -1, false
}

// Has reports whether a column named name exists.
func (t *Table) Has(name string) bool {
	_, ok := t.Index(name)
	return ok
}

// Cell returns the value at row r, column c, or "" for short rows.
func (t *Table) Cell(r, c int) string {
	row := t.Rows[r]
	if c < 0 || c >= len(row) {
		return ""
	}
	return row[c]
}

// Set writes v at row r, column c. Short rows are padded.
func (t *Table) Set(r, c int, v string) {
	row := t.Rows[r]
	for len(row) <= c {
		row = append(row, "")
	}
	row[c] = v
	t.Rows[r] = row
}

// Value returns the cell of row r in the column named name.
func (t *Table) Value(r int, name string) (string, bool) {
	c, ok := t.Index(name)
	if !ok {
		return "", false
	}
	return t.Cell(r, c), true
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// dropColumn removes column c from the header and every row.
func (t *Table) dropColumn(c int) {
	t.Columns = append(t.Columns[:c], t.Columns[c+1:]...)
	for i, row := range t.Rows {
		if c < len(row) {
			t.Rows[i] = append(row[:c], row[c+1:]...)
		}
	}
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := &Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([][]string, len(t.Rows)),
	}
	for i, row := range t.Rows {
		out.Rows[i] = append([]string(nil), row...)
	}
	return out
}
