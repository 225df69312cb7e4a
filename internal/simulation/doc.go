// Package simulation provides a multi-tick test harness for validating the
// recording pipeline against real networks.
//
// Scenarios exercise the real Net, Layer, Recorder, and ColumnBuffer — no
// mocks. A scenario is a Go builder that constructs a network, runs a
// configurable number of ticks, and materializes every watched layer's table
// for property-based assertions (rectangularity, row counts, null backfill,
// recorder independence).
//
// Usage:
//
//	func TestDrivenHiddenLayer(t *testing.T) {
//	    r := simulation.NewRunner(t)
//	    result := r.Run(simulation.Scenario{
//	        Name:    "driven-hidden",
//	        Layers:  []simulation.LayerSpec{...},
//	        Projns:  []simulation.ProjnSpec{...},
//	        Watches: []simulation.WatchSpec{...},
//	        Ticks:   20,
//	    })
//	    simulation.AssertRectangular(t, result)
//	}
package simulation
