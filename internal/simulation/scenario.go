package simulation

import (
	"github.com/synaptiq/neuroloop/internal/layer"
	"github.com/synaptiq/neuroloop/internal/network"
	"github.com/synaptiq/neuroloop/internal/table"
)

// Scenario defines a complete recording experiment.
type Scenario struct {
	Name    string
	Layers  []LayerSpec
	Projns  []ProjnSpec
	Watches []WatchSpec
	Ticks   int

	// BeforeTick, when non-nil, is called before each cycle with the tick
	// index. Use this to manipulate the net mid-run (e.g., re-clamping an
	// input layer).
	BeforeTick func(tick int, n *network.Net)
}

// LayerSpec is a flat builder for constructing layers in tests.
type LayerSpec struct {
	Name  string
	Size  int
	Clamp []float64 // non-empty clamps the layer for the whole run

	// Spec, when non-nil, overrides layer.DefaultSpec().
	Spec *layer.Spec
}

// ProjnSpec defines a pre-wired projection.
type ProjnSpec struct {
	From string
	To   string

	// Spec, when non-nil, overrides network.DefaultProjnSpec(); this keeps
	// an explicit zero scale or weight distinct from "use the default".
	Spec *network.ProjnSpec
}

// WatchSpec attaches a per-tick recorder to a layer.
type WatchSpec struct {
	Layer string
	Attrs []string
}

// Result captures the net and every watched layer's materialized table after
// the run.
type Result struct {
	Net    *network.Net
	Tables map[string]*table.Table
}
