// Package observe implements the recording core of the simulator: the
// contract an entity must satisfy to be loggable, an append-only columnar
// buffer that keeps heterogeneous per-tick observations rectangular, and the
// Recorder that samples a target's attributes once per tick.
package observe

import "fmt"

// Observation is a single named measurement: the derived column name and the
// observed value. A nil Value is the explicit null marker.
type Observation struct {
	Column string
	Value  any
}

// Row is the ordered flattening of one recording call. A single logical
// attribute may contribute several observations (e.g. one per unit).
type Row []Observation

// Observable is the capability an entity must expose to be recorded.
//
// Observe returns the ordered expansion of one attribute: a simple attribute
// yields exactly one observation named after itself, while a compound
// attribute (such as a per-unit quantity) yields one observation per element
// with deterministic derived column names. Observing a name the entity does
// not recognize returns *UnknownAttrError synchronously; Observe must not
// mutate the entity.
//
// Name is the entity's display name, fixed at construction. It is used only
// for attribution in logs and errors, never for dispatch.
type Observable interface {
	Observe(attr string) (Row, error)
	Name() string
}

// UnknownAttrError reports a request to observe an attribute the entity does
// not recognize. It indicates a configuration error (a bad attribute name in
// a watch list) and is treated as fatal to the run.
type UnknownAttrError struct {
	Entity string
	Attr   string
}

func (e *UnknownAttrError) Error() string {
	return fmt.Sprintf("entity %q has no loggable attribute %q", e.Entity, e.Attr)
}

// Simple builds the row for a simple attribute: one observation named after
// the attribute itself.
func Simple(attr string, value any) Row {
	return Row{{Column: attr, Value: value}}
}

// Units builds the row for a compound per-unit attribute. Element i of attr
// "act" becomes column "unit0_act", "unit1_act", ... in iteration order, so
// derived names are stable across runs.
func Units(attr string, values []float64) Row {
	row := make(Row, len(values))
	for i, v := range values {
		row[i] = Observation{
			Column: fmt.Sprintf("unit%d_%s", i, attr),
			Value:  v,
		}
	}
	return row
}

// ParseUnitAttr splits a compound attribute of the form "unit_<attr>" into
// its per-unit attribute name. The second result is false when attr does not
// carry the unit_ prefix.
func ParseUnitAttr(attr string) (string, bool) {
	const prefix = "unit_"
	if len(attr) <= len(prefix) || attr[:len(prefix)] != prefix {
		return "", false
	}
	return attr[len(prefix):], true
}
