// Package table provides the materialized, rectangular snapshot produced by
// the recording buffer: one row per logged tick, one column per observed
// attribute-derived name, with explicit nulls for cells that had no value.
// A Table is an immutable handoff to downstream analysis; it can be rendered
// as an Apache Arrow record or as CSV.
package table

import "fmt"

// Table is a column-oriented snapshot. All columns have exactly rows entries;
// a nil cell is the explicit "no value recorded" marker. A Table never
// mutates after construction.
type Table struct {
	names   []string
	columns map[string][]any
	rows    int
}

// New builds a Table from an ordered name list and a column map. The caller
// passes ownership of the slices; every column must have exactly rows
// entries.
func New(names []string, columns map[string][]any, rows int) (*Table, error) {
	for _, name := range names {
		col, ok := columns[name]
		if !ok {
			return nil, fmt.Errorf("table: column %q listed but not present", name)
		}
		if len(col) != rows {
			return nil, fmt.Errorf("table: column %q has %d cells, want %d", name, len(col), rows)
		}
	}
	if len(names) != len(columns) {
		return nil, fmt.Errorf("table: %d column names for %d columns", len(names), len(columns))
	}
	return &Table{names: names, columns: columns, rows: rows}, nil
}

// NumRows returns the number of rows (logged ticks).
func (t *Table) NumRows() int { return t.rows }

// NumCols returns the number of columns.
func (t *Table) NumCols() int { return len(t.names) }

// ColumnNames returns the column names in first-observed order.
func (t *Table) ColumnNames() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Column returns the cells of the named column, or false if the column does
// not exist. The returned slice must not be modified.
func (t *Table) Column(name string) ([]any, bool) {
	col, ok := t.columns[name]
	return col, ok
}

// Cell returns the value at (row, name), or nil if the cell holds the null
// marker. It panics if row is out of range or the column does not exist,
// matching slice/map indexing semantics.
func (t *Table) Cell(row int, name string) any {
	col, ok := t.columns[name]
	if !ok {
		panic(fmt.Sprintf("table: no column %q", name))
	}
	return col[row]
}

// Equal reports whether two tables have identical shape, column order, and
// cell values.
func (t *Table) Equal(other *Table) bool {
	if t.rows != other.rows || len(t.names) != len(other.names) {
		return false
	}
	for i, name := range t.names {
		if other.names[i] != name {
			return false
		}
		a := t.columns[name]
		b := other.columns[name]
		for r := 0; r < t.rows; r++ {
			if a[r] != b[r] {
				return false
			}
		}
	}
	return true
}
