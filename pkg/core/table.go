package core

// Row is an ordered sequence of column values, one per result-set
// field, in driver-reported order.
type Row []Value

// Table is one materialized result set. Every row has the same column
// count as reported by the driver.
type Table struct {
	Columns []string
	Rows    []Row
}

// Empty reports whether the result set has no rows.
func (t *Table) Empty() bool { return len(t.Rows) == 0 }

// ColumnIndex returns the position of the named column, or -1 when the
// result set does not contain it.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}
