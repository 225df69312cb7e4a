// Package layer implements a layer of rate-coded units with FFFB-style
// pooled inhibition. Layers are the loggable entities of the simulator: they
// satisfy the observe.Observable contract, reporting aggregate attributes
// ("avg_act") and compound per-unit attributes ("unit_act" expanding to one
// column per unit).
package layer

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/synaptiq/neuroloop/internal/observe"
	"github.com/synaptiq/neuroloop/internal/unit"
)

// Spec holds tunable layer parameters.
type Spec struct {
	// Unit is the spec applied to every unit in the layer.
	Unit unit.Spec

	// FFGain scales feedforward inhibition driven by average net input.
	// Must stay below 1.0 or inhibition cancels excitation exactly.
	// Default: 0.3.
	FFGain float64

	// FBGain scales feedback inhibition driven by average activation.
	// Default: 0.5.
	FBGain float64

	// LogOnCycle lists the attributes recorded for this layer each tick.
	LogOnCycle []string
}

// DefaultSpec returns the default layer parameters.
func DefaultSpec() Spec {
	return Spec{
		Unit:   unit.DefaultSpec(),
		FFGain: 0.3,
		FBGain: 0.5,
	}
}

// Layer is a named pool of units. The name is fixed at construction and is
// the layer's display name for logging and error attribution.
type Layer struct {
	name  string
	spec  Spec
	units []*unit.Unit

	gi      float64
	clamped bool
	clamp   []float64
}

// New creates a layer of size units.
func New(name string, size int, spec Spec) (*Layer, error) {
	if size <= 0 {
		return nil, fmt.Errorf("layer %q: size must be positive, got %d", name, size)
	}
	units := make([]*unit.Unit, size)
	for i := range units {
		units[i] = unit.New(spec.Unit)
	}
	return &Layer{name: name, spec: spec, units: units}, nil
}

// Name returns the layer's display name, fixed at construction.
func (l *Layer) Name() string { return l.name }

// Size returns the number of units.
func (l *Layer) Size() int { return len(l.units) }

// Spec returns the layer's parameters.
func (l *Layer) Spec() Spec { return l.spec }

// Units returns the layer's units. Callers must treat them as read-only
// outside the update methods.
func (l *Layer) Units() []*unit.Unit { return l.units }

// Acts returns a snapshot of every unit's activation.
func (l *Layer) Acts() []float64 {
	out := make([]float64, len(l.units))
	for i, u := range l.units {
		out[i] = u.Act
	}
	return out
}

// Nets returns a snapshot of every unit's net input.
func (l *Layer) Nets() []float64 {
	out := make([]float64, len(l.units))
	for i, u := range l.units {
		out[i] = u.Net
	}
	return out
}

// AvgAct returns the mean activation across units.
func (l *Layer) AvgAct() float64 {
	return stat.Mean(l.Acts(), nil)
}

// AvgNet returns the mean net input across units.
func (l *Layer) AvgNet() float64 {
	return stat.Mean(l.Nets(), nil)
}

// Gi returns the pooled inhibitory conductance from the last inhibition
// update.
func (l *Layer) Gi() float64 { return l.gi }

// Clamp forces unit activations to acts and holds them there across
// subsequent cycles until Unclamp. Used for externally driven input layers.
func (l *Layer) Clamp(acts []float64) error {
	if len(acts) != len(l.units) {
		return fmt.Errorf("layer %q: clamp with %d values for %d units", l.name, len(acts), len(l.units))
	}
	l.clamp = make([]float64, len(acts))
	copy(l.clamp, acts)
	l.clamped = true
	l.applyClamp()
	return nil
}

// Unclamp releases a clamped layer back to free dynamics.
func (l *Layer) Unclamp() {
	l.clamped = false
	l.clamp = nil
}

func (l *Layer) applyClamp() {
	for i, u := range l.units {
		u.Clamp(l.clamp[i])
	}
	l.gi = 0
}

// UpdateNet integrates one tick of raw excitatory input, one value per unit.
// Clamped layers ignore input.
func (l *Layer) UpdateNet(raw []float64) error {
	if l.clamped {
		return nil
	}
	if len(raw) != len(l.units) {
		return fmt.Errorf("layer %q: %d inputs for %d units", l.name, len(raw), len(l.units))
	}
	for i, u := range l.units {
		u.UpdateNet(raw[i])
	}
	return nil
}

// UpdateInhibition recomputes the pooled FFFB conductance from the layer's
// current average net input and activation.
func (l *Layer) UpdateInhibition() {
	if l.clamped {
		return
	}
	l.gi = l.spec.FFGain*l.AvgNet() + l.spec.FBGain*l.AvgAct()
}

// UpdateActivation advances every unit's activation under the pooled
// inhibition. Clamped layers re-apply their clamped values instead.
func (l *Layer) UpdateActivation() {
	if l.clamped {
		l.applyClamp()
		return
	}
	for _, u := range l.units {
		u.UpdateAct(l.gi)
	}
}

// ActivationCycle runs one full tick: integrate input, recompute inhibition,
// update activations.
func (l *Layer) ActivationCycle(raw []float64) error {
	if err := l.UpdateNet(raw); err != nil {
		return err
	}
	l.UpdateInhibition()
	l.UpdateActivation()
	return nil
}

// Observe implements observe.Observable. Simple attributes return one
// observation named after themselves; "unit_<attr>" compound attributes
// expand to one observation per unit with deterministic "unit<i>_<attr>"
// columns. Unknown names return *observe.UnknownAttrError.
func (l *Layer) Observe(attr string) (observe.Row, error) {
	switch attr {
	case "avg_act":
		return observe.Simple(attr, l.AvgAct()), nil
	case "avg_net":
		return observe.Simple(attr, l.AvgNet()), nil
	case "gi":
		return observe.Simple(attr, l.gi), nil
	}

	if sub, ok := observe.ParseUnitAttr(attr); ok {
		values := make([]float64, len(l.units))
		for i, u := range l.units {
			v, ok := u.Attr(sub)
			if !ok {
				return nil, &observe.UnknownAttrError{Entity: l.name, Attr: attr}
			}
			values[i] = v
		}
		return observe.Units(sub, values), nil
	}

	return nil, &observe.UnknownAttrError{Entity: l.name, Attr: attr}
}

// LoggableAttrs returns the attribute names this layer can observe, simple
// forms first.
func LoggableAttrs() []string {
	return []string{"avg_act", "avg_net", "gi", "unit_act", "unit_net", "unit_gi"}
}
