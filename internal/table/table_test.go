package table

import (
	"bytes"
	"strings"
	"testing"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
)

func mustNew(t *testing.T, names []string, columns map[string][]any, rows int) *Table {
	t.Helper()
	tbl, err := New(names, columns, rows)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return tbl
}

func TestNewRejectsRaggedColumns(t *testing.T) {
	_, err := New([]string{"a", "b"}, map[string][]any{
		"a": {1.0, 2.0},
		"b": {1.0},
	}, 2)
	if err == nil {
		t.Fatal("New accepted a ragged column set")
	}
}

func TestNewRejectsMissingColumn(t *testing.T) {
	_, err := New([]string{"a", "b"}, map[string][]any{"a": {1.0}}, 1)
	if err == nil {
		t.Fatal("New accepted a name with no backing column")
	}
}

func TestAccessors(t *testing.T) {
	tbl := mustNew(t, []string{"a", "b"}, map[string][]any{
		"a": {1.0, nil},
		"b": {nil, "x"},
	}, 2)

	if tbl.NumRows() != 2 || tbl.NumCols() != 2 {
		t.Errorf("shape = %dx%d, want 2x2", tbl.NumRows(), tbl.NumCols())
	}
	if v := tbl.Cell(0, "a"); v != 1.0 {
		t.Errorf("Cell(0, a) = %v, want 1.0", v)
	}
	if v := tbl.Cell(1, "a"); v != nil {
		t.Errorf("Cell(1, a) = %v, want nil", v)
	}
	if _, ok := tbl.Column("missing"); ok {
		t.Error("Column(missing) reported ok")
	}
}

func TestRecordInfersTypesAndNulls(t *testing.T) {
	tbl := mustNew(t, []string{"f", "i", "s", "all_null"}, map[string][]any{
		"f":        {1.5, nil, 3.0},
		"i":        {int64(1), int64(2), nil},
		"s":        {"x", nil, "z"},
		"all_null": {nil, nil, nil},
	}, 3)

	rec, err := tbl.Record(nil)
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	defer rec.Release()

	if rec.NumRows() != 3 || rec.NumCols() != 4 {
		t.Fatalf("record shape = %dx%d, want 3x4", rec.NumRows(), rec.NumCols())
	}

	schema := rec.Schema()
	wantTypes := map[string]arrow.DataType{
		"f":        arrow.PrimitiveTypes.Float64,
		"i":        arrow.PrimitiveTypes.Int64,
		"s":        arrow.BinaryTypes.String,
		"all_null": arrow.PrimitiveTypes.Float64,
	}
	for name, want := range wantTypes {
		idx := schema.FieldIndices(name)
		if len(idx) != 1 {
			t.Fatalf("field %q not found", name)
		}
		if got := schema.Field(idx[0]).Type; !arrow.TypeEqual(got, want) {
			t.Errorf("field %q type = %v, want %v", name, got, want)
		}
	}

	f := rec.Column(0).(*array.Float64)
	if f.Value(0) != 1.5 || !f.IsNull(1) || f.Value(2) != 3.0 {
		t.Errorf("float column = %v, want [1.5 null 3]", f)
	}
	i := rec.Column(1).(*array.Int64)
	if i.Value(0) != 1 || !i.IsNull(2) {
		t.Errorf("int column = %v, want [1 2 null]", i)
	}
}

func TestRecordMixedKindsFallBackToString(t *testing.T) {
	tbl := mustNew(t, []string{"m"}, map[string][]any{
		"m": {1.5, "x", true},
	}, 3)

	rec, err := tbl.Record(nil)
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	defer rec.Release()

	if got := rec.Schema().Field(0).Type; !arrow.TypeEqual(got, arrow.BinaryTypes.String) {
		t.Fatalf("mixed column type = %v, want string", got)
	}
	s := rec.Column(0).(*array.String)
	if s.Value(0) != "1.5" || s.Value(1) != "x" || s.Value(2) != "true" {
		t.Errorf("mixed column = %v, want [1.5 x true]", s)
	}
}

func TestWriteCSV(t *testing.T) {
	tbl := mustNew(t, []string{"a", "b"}, map[string][]any{
		"a": {1.0, 2.0},
		"b": {nil, 20.0},
	}, 2)

	var buf bytes.Buffer
	if err := tbl.WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("csv has %d lines, want 3 (header + 2 rows):\n%s", len(lines), buf.String())
	}
	if lines[0] != "a,b" {
		t.Errorf("header = %q, want %q", lines[0], "a,b")
	}
	// Null renders as an empty field, never zero.
	if !strings.HasSuffix(lines[1], ",") {
		t.Errorf("row 1 = %q, want trailing empty field for null b", lines[1])
	}
}

func TestEqual(t *testing.T) {
	a := mustNew(t, []string{"x"}, map[string][]any{"x": {1.0, nil}}, 2)
	b := mustNew(t, []string{"x"}, map[string][]any{"x": {1.0, nil}}, 2)
	c := mustNew(t, []string{"x"}, map[string][]any{"x": {1.0, 2.0}}, 2)

	if !a.Equal(b) {
		t.Error("identical tables compare unequal")
	}
	if a.Equal(c) {
		t.Error("different tables compare equal")
	}
}
