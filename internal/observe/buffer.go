package observe

import "github.com/synaptiq/neuroloop/internal/table"

// ColumnBuffer accumulates row observations into an append-only columnar
// store. Columns are created lazily the first time they are observed and
// backfilled with nulls for all prior rows; after every Append each column's
// length equals the row count exactly, so the buffer is rectangular at all
// times. Rows are never removed, mutated, or reordered.
//
// Append is amortized O(1) per observation plus O(k) for the k columns
// missing from the current row; it never touches the full history.
type ColumnBuffer struct {
	columns map[string][]any
	names   []string // first-observed order
	rows    int
}

// NewColumnBuffer returns an empty buffer.
func NewColumnBuffer() *ColumnBuffer {
	return &ColumnBuffer{columns: make(map[string][]any)}
}

// Append adds one row of observations. Values for columns never seen before
// create the column with nulls for every prior row; columns absent from this
// row are padded with a null so the rectangular invariant holds before
// Append returns. A column repeated within one row contributes a single cell,
// with the last value winning, so no row shape can make the buffer ragged.
func (b *ColumnBuffer) Append(row Row) {
	for _, obs := range row {
		col, ok := b.columns[obs.Column]
		if !ok {
			// First sight of this column: backfill prior rows with nulls.
			col = make([]any, b.rows, b.rows+1)
			b.names = append(b.names, obs.Column)
		}
		if len(col) > b.rows {
			// This row already gave the column a value; overwrite it.
			col[b.rows] = obs.Value
		} else {
			col = append(col, obs.Value)
		}
		b.columns[obs.Column] = col
	}
	b.rows++
	b.pad()
}

// pad extends every column short of the row count with nulls. Only columns
// missing from the most recent row need work, so the cost is bounded by the
// number of currently missing columns.
func (b *ColumnBuffer) pad() {
	for name, col := range b.columns {
		for len(col) < b.rows {
			col = append(col, nil)
		}
		b.columns[name] = col
	}
}

// Len returns the number of rows appended so far.
func (b *ColumnBuffer) Len() int { return b.rows }

// ColumnNames returns the column names in first-observed order.
func (b *ColumnBuffer) ColumnNames() []string {
	out := make([]string, len(b.names))
	copy(out, b.names)
	return out
}

// Table materializes the buffer into an independent snapshot. The snapshot
// copies the cell data, so later appends do not affect it, and Table never
// mutates the buffer; it is safe to call repeatedly mid-run.
func (b *ColumnBuffer) Table() *table.Table {
	names := make([]string, len(b.names))
	copy(names, b.names)
	columns := make(map[string][]any, len(b.columns))
	for name, col := range b.columns {
		snap := make([]any, len(col))
		copy(snap, col)
		columns[name] = snap
	}
	t, err := table.New(names, columns, b.rows)
	if err != nil {
		// The pad-before-return discipline makes a ragged buffer impossible.
		panic(err)
	}
	return t
}
