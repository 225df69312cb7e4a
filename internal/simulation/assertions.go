package simulation

import (
	"testing"

	"github.com/synaptiq/neuroloop/internal/table"
)

// AssertRectangular asserts that every table in the result has equal-length
// columns matching its row count.
func AssertRectangular(t *testing.T, result Result) {
	t.Helper()
	for name, tbl := range result.Tables {
		for _, col := range tbl.ColumnNames() {
			cells, ok := tbl.Column(col)
			if !ok {
				t.Errorf("AssertRectangular: table %s: column %s listed but absent", name, col)
				continue
			}
			if len(cells) != tbl.NumRows() {
				t.Errorf("AssertRectangular: table %s: column %s has %d cells for %d rows", name, col, len(cells), tbl.NumRows())
			}
		}
	}
}

// AssertRowCount asserts that the named layer's table has exactly rows rows.
func AssertRowCount(t *testing.T, result Result, layerName string, rows int) {
	t.Helper()
	tbl, ok := result.Tables[layerName]
	if !ok {
		t.Errorf("AssertRowCount: no table for layer %s", layerName)
		return
	}
	if tbl.NumRows() != rows {
		t.Errorf("AssertRowCount: table %s has %d rows, want %d", layerName, tbl.NumRows(), rows)
	}
}

// AssertColumns asserts that the named layer's table has exactly the given
// columns in order.
func AssertColumns(t *testing.T, result Result, layerName string, want []string) {
	t.Helper()
	tbl, ok := result.Tables[layerName]
	if !ok {
		t.Errorf("AssertColumns: no table for layer %s", layerName)
		return
	}
	got := tbl.ColumnNames()
	if len(got) != len(want) {
		t.Errorf("AssertColumns: table %s columns = %v, want %v", layerName, got, want)
		return
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("AssertColumns: table %s column[%d] = %q, want %q", layerName, i, got[i], want[i])
		}
	}
}

// AssertNoNulls asserts that a column contains no null cells.
func AssertNoNulls(t *testing.T, tbl *table.Table, col string) {
	t.Helper()
	cells, ok := tbl.Column(col)
	if !ok {
		t.Errorf("AssertNoNulls: no column %s", col)
		return
	}
	for i, v := range cells {
		if v == nil {
			t.Errorf("AssertNoNulls: column %s row %d is null", col, i)
		}
	}
}

// AssertNullPrefix asserts that a column is null for exactly the first n
// rows and non-null afterwards (the backfill pattern of a late-appearing
// column).
func AssertNullPrefix(t *testing.T, tbl *table.Table, col string, n int) {
	t.Helper()
	cells, ok := tbl.Column(col)
	if !ok {
		t.Errorf("AssertNullPrefix: no column %s", col)
		return
	}
	for i, v := range cells {
		if i < n && v != nil {
			t.Errorf("AssertNullPrefix: column %s row %d = %v, want null", col, i, v)
		}
		if i >= n && v == nil {
			t.Errorf("AssertNullPrefix: column %s row %d is null, want a value", col, i)
		}
	}
}

// AssertMonotonicRise asserts that a float column rises overall: its last
// value exceeds its first by at least minGain.
func AssertMonotonicRise(t *testing.T, tbl *table.Table, col string, minGain float64) {
	t.Helper()
	cells, ok := tbl.Column(col)
	if !ok || len(cells) == 0 {
		t.Errorf("AssertMonotonicRise: no data in column %s", col)
		return
	}
	first, ok1 := cells[0].(float64)
	last, ok2 := cells[len(cells)-1].(float64)
	if !ok1 || !ok2 {
		t.Errorf("AssertMonotonicRise: column %s is not float-valued", col)
		return
	}
	if last-first < minGain {
		t.Errorf("AssertMonotonicRise: column %s rose %.6f (from %.6f to %.6f), want at least %.6f",
			col, last-first, first, last, minGain)
	}
}
