// Package unit implements the rate-coded point unit the simulator is built
// from. A unit integrates raw excitatory input into a net input, subtracts
// inhibition, and squashes the result through a sigmoid to produce its
// activation. All state advances in discrete ticks driven by the layer.
package unit

import "math"

// Spec holds tunable unit parameters.
type Spec struct {
	// NetDt is the net input integration step size. Default: 0.7.
	NetDt float64

	// ActDt is the activation integration step size. Default: 0.5.
	ActDt float64

	// Gain sharpens the sigmoid response around the threshold. Default: 6.0.
	Gain float64

	// Thr is the firing threshold on driving potential. Default: 0.25.
	Thr float64
}

// DefaultSpec returns the default unit parameters.
func DefaultSpec() Spec {
	return Spec{
		NetDt: 0.7,
		ActDt: 0.5,
		Gain:  6.0,
		Thr:   0.25,
	}
}

// Unit is a single rate-coded unit. Fields are exported state, readable by
// the layer's observation code every tick.
type Unit struct {
	// Net is the integrated net (excitatory) input.
	Net float64

	// Act is the current rate-coded activation, in [0, 1).
	Act float64

	// Gi is the inhibitory conductance applied on the last activation update.
	Gi float64

	spec Spec
}

// New creates a unit with the given spec.
func New(spec Spec) *Unit {
	return &Unit{spec: spec}
}

// Spec returns the unit's parameters.
func (u *Unit) Spec() Spec { return u.spec }

// UpdateNet integrates one tick of raw excitatory input into the net input.
func (u *Unit) UpdateNet(raw float64) {
	u.Net += u.spec.NetDt * (raw - u.Net)
}

// UpdateAct advances the activation one tick under inhibitory conductance gi.
// The driving potential is net input minus inhibition minus threshold,
// squashed by a logistic sigmoid.
func (u *Unit) UpdateAct(gi float64) {
	u.Gi = gi
	drive := u.Net - gi - u.spec.Thr
	target := sigmoid(u.spec.Gain * drive)
	u.Act += u.spec.ActDt * (target - u.Act)
}

// Clamp forces the activation to a fixed value and clears the integrated
// input, used for externally driven input units.
func (u *Unit) Clamp(act float64) {
	u.Act = act
	u.Net = 0
	u.Gi = 0
}

// Attr returns the value of a loggable scalar field by name. The second
// result is false for unrecognized names.
func (u *Unit) Attr(name string) (float64, bool) {
	switch name {
	case "act":
		return u.Act, true
	case "net":
		return u.Net, true
	case "gi":
		return u.Gi, true
	}
	return 0, false
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}
