package network

import (
	"fmt"

	"github.com/synaptiq/neuroloop/internal/config"
	"github.com/synaptiq/neuroloop/internal/layer"
)

// FromScenario builds a net from a validated scenario definition: layers in
// definition order, then projections, clamps, and watches.
func FromScenario(s *config.Scenario) (*Net, error) {
	n := New()

	for _, def := range s.Layers {
		spec := layer.DefaultSpec()
		if def.FFGain != nil {
			spec.FFGain = *def.FFGain
		}
		if def.FBGain != nil {
			spec.FBGain = *def.FBGain
		}
		if _, err := n.AddLayer(def.Name, def.Size, spec); err != nil {
			return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
		}
		if len(def.Clamp) > 0 {
			if err := n.Clamp(def.Name, def.Clamp); err != nil {
				return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
			}
		}
	}

	for _, def := range s.Projns {
		spec := DefaultProjnSpec()
		if def.Scale != nil {
			spec.Scale = *def.Scale
		}
		if def.InitWeight != nil {
			spec.InitWeight = *def.InitWeight
		}
		if _, err := n.Connect(def.From, def.To, spec); err != nil {
			return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
		}
	}

	for _, def := range s.Records {
		if err := n.Watch(def.Layer, def.Attrs); err != nil {
			return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
		}
	}

	return n, nil
}
