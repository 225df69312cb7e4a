// Package network wires layers and projections into a runnable net and
// drives the discrete tick loop. The net owns the per-layer Recorders: every
// Cycle advances all layers one tick and then fires each attached recorder
// exactly once, so row N of a layer's log always means "tick N since the
// watch was attached".
package network

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/synaptiq/neuroloop/internal/layer"
	"github.com/synaptiq/neuroloop/internal/observe"
	"github.com/synaptiq/neuroloop/internal/table"
)

// Net is a collection of layers connected by projections. It is not safe
// for concurrent use; the tick loop is single-threaded by design.
type Net struct {
	layers    map[string]*layer.Layer
	order     []string // layer creation order, drives deterministic updates
	projns    []*Projn
	recorders map[string]*observe.Recorder

	tick int
	log  *slog.Logger
}

// New creates an empty net.
func New() *Net {
	return &Net{
		layers:    make(map[string]*layer.Layer),
		recorders: make(map[string]*observe.Recorder),
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// SetLogger installs an operational logger. A nil logger is ignored.
func (n *Net) SetLogger(l *slog.Logger) {
	if l != nil {
		n.log = l
	}
}

// AddLayer creates a layer and registers it under its name.
func (n *Net) AddLayer(name string, size int, spec layer.Spec) (*layer.Layer, error) {
	if _, ok := n.layers[name]; ok {
		return nil, fmt.Errorf("net: duplicate layer %q", name)
	}
	l, err := layer.New(name, size, spec)
	if err != nil {
		return nil, err
	}
	n.layers[name] = l
	n.order = append(n.order, name)
	return l, nil
}

// Layer returns the named layer.
func (n *Net) Layer(name string) (*layer.Layer, bool) {
	l, ok := n.layers[name]
	return l, ok
}

// LayerNames returns the layer names in creation order.
func (n *Net) LayerNames() []string {
	out := make([]string, len(n.order))
	copy(out, n.order)
	return out
}

// Connect adds a full projection from layer pre to layer post.
func (n *Net) Connect(pre, post string, spec ProjnSpec) (*Projn, error) {
	pl, ok := n.layers[pre]
	if !ok {
		return nil, fmt.Errorf("net: connect: no layer %q", pre)
	}
	ql, ok := n.layers[post]
	if !ok {
		return nil, fmt.Errorf("net: connect: no layer %q", post)
	}
	p := newProjn(pl, ql, spec)
	n.projns = append(n.projns, p)
	return p, nil
}

// Clamp forces the named layer's activations, holding them across cycles.
func (n *Net) Clamp(name string, acts []float64) error {
	l, ok := n.layers[name]
	if !ok {
		return fmt.Errorf("net: clamp: no layer %q", name)
	}
	return l.Clamp(acts)
}

// Unclamp releases the named layer back to free dynamics.
func (n *Net) Unclamp(name string) error {
	l, ok := n.layers[name]
	if !ok {
		return fmt.Errorf("net: unclamp: no layer %q", name)
	}
	l.Unclamp()
	return nil
}

// Watch attaches a recorder that samples attrs from the named layer on every
// cycle. When attrs is empty the layer spec's LogOnCycle list is used. Only
// one watch per layer is held by the net; additional independent recorders
// can be built directly with observe.NewRecorder.
func (n *Net) Watch(name string, attrs []string) error {
	l, ok := n.layers[name]
	if !ok {
		return fmt.Errorf("net: watch: no layer %q", name)
	}
	if _, ok := n.recorders[name]; ok {
		return fmt.Errorf("net: watch: layer %q already watched", name)
	}
	if len(attrs) == 0 {
		attrs = l.Spec().LogOnCycle
	}
	if len(attrs) == 0 {
		return fmt.Errorf("net: watch: no attributes configured for layer %q", name)
	}
	seen := make(map[string]bool, len(attrs))
	for _, a := range attrs {
		if seen[a] {
			return fmt.Errorf("net: watch: layer %q repeats attribute %q", name, a)
		}
		seen[a] = true
	}
	n.recorders[name] = observe.NewRecorder(l, attrs)
	n.log.Debug("watch attached", "layer", name, "attrs", attrs)
	return nil
}

// Tick returns the number of completed cycles.
func (n *Net) Tick() int { return n.tick }

// Cycle advances the whole net one tick: gather each layer's raw input from
// its inbound projections (using the previous tick's activations), run every
// layer's activation cycle, then fire each attached recorder once. A
// recorder failure (an unknown attribute) aborts the tick's recording and
// propagates; it is a configuration error, not a recoverable one.
func (n *Net) Cycle() error {
	// Gather all flows before any layer updates so every projection sees
	// the pre-update activations.
	raw := make(map[string][]float64, len(n.layers))
	for _, name := range n.order {
		raw[name] = make([]float64, n.layers[name].Size())
	}
	for _, p := range n.projns {
		flow := p.Flow()
		acc := raw[p.Post().Name()]
		for i, v := range flow {
			acc[i] += v
		}
	}

	for _, name := range n.order {
		if err := n.layers[name].ActivationCycle(raw[name]); err != nil {
			return fmt.Errorf("net: cycle %d: %w", n.tick, err)
		}
	}
	n.tick++

	for _, name := range n.order {
		rec, ok := n.recorders[name]
		if !ok {
			continue
		}
		if err := rec.Record(); err != nil {
			n.log.Error("recording failed", "layer", name, "tick", n.tick, "err", err)
			return fmt.Errorf("net: cycle %d: %w", n.tick, err)
		}
	}
	return nil
}

// Run advances the net ticks cycles, stopping at the first error.
func (n *Net) Run(ticks int) error {
	for i := 0; i < ticks; i++ {
		if err := n.Cycle(); err != nil {
			return err
		}
	}
	return nil
}

// Logs materializes the watched layer's buffer into a table snapshot.
func (n *Net) Logs(name string) (*table.Table, error) {
	rec, ok := n.recorders[name]
	if !ok {
		return nil, fmt.Errorf("net: logs: layer %q is not watched", name)
	}
	return rec.Table(), nil
}

// Watched returns the names of watched layers in creation order.
func (n *Net) Watched() []string {
	out := make([]string, 0, len(n.recorders))
	for _, name := range n.order {
		if _, ok := n.recorders[name]; ok {
			out = append(out, name)
		}
	}
	return out
}
