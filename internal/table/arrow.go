package table

import (
	"fmt"
	"io"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/csv"
	"github.com/apache/arrow/go/v17/arrow/memory"
)

// Record converts the table to an Apache Arrow record batch. All fields are
// nullable; nil cells become Arrow nulls. The column type is inferred from
// the non-null cells: integer columns map to int64, numeric columns with any
// float to float64, boolean and string columns to their Arrow counterparts,
// and columns of mixed or unrecognized kinds fall back to strings. The
// caller must Release the returned record.
func (t *Table) Record(mem memory.Allocator) (arrow.Record, error) {
	if mem == nil {
		mem = memory.DefaultAllocator
	}

	fields := make([]arrow.Field, len(t.names))
	for i, name := range t.names {
		fields[i] = arrow.Field{
			Name:     name,
			Type:     inferType(t.columns[name]),
			Nullable: true,
		}
	}
	schema := arrow.NewSchema(fields, nil)

	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()

	for i, name := range t.names {
		if err := appendColumn(b.Field(i), t.columns[name]); err != nil {
			return nil, fmt.Errorf("table: column %q: %w", name, err)
		}
	}
	return b.NewRecord(), nil
}

// WriteCSV renders the table as CSV with a header row. Null cells render as
// empty fields.
func (t *Table) WriteCSV(w io.Writer) error {
	rec, err := t.Record(nil)
	if err != nil {
		return err
	}
	defer rec.Release()

	cw := csv.NewWriter(w, rec.Schema(),
		csv.WithHeader(true),
		csv.WithNullWriter(""),
	)
	if err := cw.Write(rec); err != nil {
		return fmt.Errorf("table: write csv: %w", err)
	}
	if err := cw.Flush(); err != nil {
		return fmt.Errorf("table: flush csv: %w", err)
	}
	return cw.Error()
}

// inferType picks the narrowest Arrow type that can hold every non-null cell.
func inferType(col []any) arrow.DataType {
	var ints, floats, bools, strs, others int
	for _, v := range col {
		switch v.(type) {
		case nil:
		case int, int32, int64:
			ints++
		case float32, float64:
			floats++
		case bool:
			bools++
		case string:
			strs++
		default:
			others++
		}
	}
	switch {
	case others > 0:
		return arrow.BinaryTypes.String
	case floats > 0 && bools == 0 && strs == 0:
		return arrow.PrimitiveTypes.Float64
	case ints > 0 && floats == 0 && bools == 0 && strs == 0:
		return arrow.PrimitiveTypes.Int64
	case bools > 0 && ints == 0 && floats == 0 && strs == 0:
		return arrow.FixedWidthTypes.Boolean
	case strs > 0 && ints == 0 && floats == 0 && bools == 0:
		return arrow.BinaryTypes.String
	case ints == 0 && floats == 0 && bools == 0 && strs == 0:
		// All-null column; a numeric default keeps logged runs schema-stable.
		return arrow.PrimitiveTypes.Float64
	default:
		return arrow.BinaryTypes.String
	}
}

func appendColumn(fb array.Builder, col []any) error {
	for _, v := range col {
		if v == nil {
			fb.AppendNull()
			continue
		}
		switch b := fb.(type) {
		case *array.Float64Builder:
			f, ok := asFloat64(v)
			if !ok {
				return fmt.Errorf("cell %v (%T) is not numeric", v, v)
			}
			b.Append(f)
		case *array.Int64Builder:
			i, ok := asInt64(v)
			if !ok {
				return fmt.Errorf("cell %v (%T) is not an integer", v, v)
			}
			b.Append(i)
		case *array.BooleanBuilder:
			bv, ok := v.(bool)
			if !ok {
				return fmt.Errorf("cell %v (%T) is not a bool", v, v)
			}
			b.Append(bv)
		case *array.StringBuilder:
			if s, ok := v.(string); ok {
				b.Append(s)
			} else {
				b.Append(fmt.Sprint(v))
			}
		default:
			return fmt.Errorf("unsupported builder %T", fb)
		}
	}
	return nil
}

func asFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	}
	return 0, false
}
