package simulation

import (
	"fmt"
	"testing"

	"github.com/synaptiq/neuroloop/internal/layer"
	"github.com/synaptiq/neuroloop/internal/network"
	"github.com/synaptiq/neuroloop/internal/table"
)

// Runner orchestrates multi-tick recording experiments against a real
// network and recorder stack.
type Runner struct {
	t *testing.T
}

// NewRunner creates a simulation runner.
func NewRunner(t *testing.T) *Runner {
	t.Helper()
	return &Runner{t: t}
}

// Run builds the scenario's network, advances it Ticks cycles, and returns
// the collected tables. Construction or cycling failures fail the test.
func (r *Runner) Run(scenario Scenario) Result {
	r.t.Helper()

	n := r.buildNet(scenario)

	for i := 0; i < scenario.Ticks; i++ {
		if scenario.BeforeTick != nil {
			scenario.BeforeTick(i, n)
		}
		if err := n.Cycle(); err != nil {
			r.t.Fatalf("scenario %s: tick %d: %v", scenario.Name, i, err)
		}
	}

	tables := make(map[string]*table.Table)
	for _, name := range n.Watched() {
		tbl, err := n.Logs(name)
		if err != nil {
			r.t.Fatalf("scenario %s: logs(%s): %v", scenario.Name, name, err)
		}
		tables[name] = tbl
	}

	return Result{Net: n, Tables: tables}
}

// buildNet constructs the network from the scenario's layer and projection
// specs.
func (r *Runner) buildNet(scenario Scenario) *network.Net {
	r.t.Helper()

	n := network.New()
	for _, ls := range scenario.Layers {
		spec := layer.DefaultSpec()
		if ls.Spec != nil {
			spec = *ls.Spec
		}
		if _, err := n.AddLayer(ls.Name, ls.Size, spec); err != nil {
			r.t.Fatalf("scenario %s: AddLayer(%s): %v", scenario.Name, ls.Name, err)
		}
		if len(ls.Clamp) > 0 {
			if err := n.Clamp(ls.Name, ls.Clamp); err != nil {
				r.t.Fatalf("scenario %s: Clamp(%s): %v", scenario.Name, ls.Name, err)
			}
		}
	}

	for _, ps := range scenario.Projns {
		spec := network.DefaultProjnSpec()
		if ps.Spec != nil {
			spec = *ps.Spec
		}
		if _, err := n.Connect(ps.From, ps.To, spec); err != nil {
			r.t.Fatalf("scenario %s: Connect(%s->%s): %v", scenario.Name, ps.From, ps.To, err)
		}
	}

	for _, ws := range scenario.Watches {
		if err := n.Watch(ws.Layer, ws.Attrs); err != nil {
			r.t.Fatalf("scenario %s: Watch(%s): %v", scenario.Name, ws.Layer, err)
		}
	}

	return n
}

// FormatTableDebug returns a debug string for a materialized table.
func FormatTableDebug(name string, tbl *table.Table) string {
	s := fmt.Sprintf("Table %s: rows=%d cols=%d\n", name, tbl.NumRows(), tbl.NumCols())
	for _, col := range tbl.ColumnNames() {
		cells, _ := tbl.Column(col)
		s += fmt.Sprintf("  %s: %v\n", col, cells)
	}
	return s
}
