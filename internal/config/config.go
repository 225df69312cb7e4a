// Package config provides YAML scenario loading for neuroloop. A scenario
// describes a network (layers and projections), the attributes to record per
// tick, and how many ticks to run.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is a complete run definition.
type Scenario struct {
	// Name labels the run in logs and output.
	Name string `yaml:"name"`

	// Ticks is the number of cycles to run.
	Ticks int `yaml:"ticks"`

	// Layers defines the network's layers in creation order.
	Layers []LayerDef `yaml:"layers"`

	// Projns defines full projections between named layers.
	Projns []ProjnDef `yaml:"projections"`

	// Records lists which attributes to record for which layers.
	Records []RecordDef `yaml:"records"`

	// Logging configures operational logging.
	Logging LoggingConfig `yaml:"logging"`
}

// LayerDef defines one layer.
type LayerDef struct {
	Name string `yaml:"name"`
	Size int    `yaml:"size"`

	// Clamp, when non-empty, fixes the layer's activations for the whole
	// run (an externally driven input layer). Must have Size entries.
	Clamp []float64 `yaml:"clamp,omitempty"`

	// FFGain and FBGain override the default inhibition gains when set.
	FFGain *float64 `yaml:"ff_gain,omitempty"`
	FBGain *float64 `yaml:"fb_gain,omitempty"`
}

// ProjnDef defines a full projection between two layers.
type ProjnDef struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`

	// Scale multiplies the projection's input contribution. Unset means the
	// default 1.0; an explicit zero silences the projection.
	Scale *float64 `yaml:"scale,omitempty"`

	// InitWeight is the initial connection weight. Unset means the default
	// 0.5; an explicit zero starts the projection fully disconnected.
	InitWeight *float64 `yaml:"init_weight,omitempty"`
}

// RecordDef attaches a per-tick recorder to a layer.
type RecordDef struct {
	Layer string   `yaml:"layer"`
	Attrs []string `yaml:"attrs"`
}

// LoggingConfig configures operational logging.
type LoggingConfig struct {
	// Level sets log verbosity: "info" (default), "debug", or "trace".
	Level string `yaml:"level"`
}

// Default returns a minimal runnable scenario: a clamped input layer feeding
// a hidden layer, recording the hidden layer's aggregate and per-unit
// activations.
func Default() *Scenario {
	return &Scenario{
		Name:  "default",
		Ticks: 50,
		Layers: []LayerDef{
			{Name: "input", Size: 3, Clamp: []float64{1, 1, 1}},
			{Name: "hidden", Size: 4},
		},
		Projns: []ProjnDef{
			{From: "input", To: "hidden"},
		},
		Records: []RecordDef{
			{Layer: "hidden", Attrs: []string{"avg_act", "unit_act"}},
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads and validates a scenario from a YAML file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return &s, nil
}

// Validate checks structural consistency: positive sizes and tick counts,
// unique layer names, and projection/record references to defined layers.
// It does not check attribute names; those are validated by the entities
// themselves when recording starts.
func (s *Scenario) Validate() error {
	if s.Ticks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d", s.Ticks)
	}
	if len(s.Layers) == 0 {
		return fmt.Errorf("at least one layer is required")
	}

	seen := make(map[string]bool, len(s.Layers))
	for _, l := range s.Layers {
		if l.Name == "" {
			return fmt.Errorf("layer with empty name")
		}
		if seen[l.Name] {
			return fmt.Errorf("duplicate layer %q", l.Name)
		}
		seen[l.Name] = true
		if l.Size <= 0 {
			return fmt.Errorf("layer %q: size must be positive, got %d", l.Name, l.Size)
		}
		if len(l.Clamp) > 0 && len(l.Clamp) != l.Size {
			return fmt.Errorf("layer %q: clamp has %d values for %d units", l.Name, len(l.Clamp), l.Size)
		}
	}

	for _, p := range s.Projns {
		if !seen[p.From] {
			return fmt.Errorf("projection from unknown layer %q", p.From)
		}
		if !seen[p.To] {
			return fmt.Errorf("projection to unknown layer %q", p.To)
		}
	}

	recorded := make(map[string]bool, len(s.Records))
	for _, r := range s.Records {
		if !seen[r.Layer] {
			return fmt.Errorf("record for unknown layer %q", r.Layer)
		}
		if recorded[r.Layer] {
			return fmt.Errorf("duplicate record block for layer %q", r.Layer)
		}
		recorded[r.Layer] = true
		if len(r.Attrs) == 0 {
			return fmt.Errorf("record for layer %q lists no attributes", r.Layer)
		}
		attrs := make(map[string]bool, len(r.Attrs))
		for _, a := range r.Attrs {
			if attrs[a] {
				return fmt.Errorf("record for layer %q repeats attribute %q", r.Layer, a)
			}
			attrs[a] = true
		}
	}
	return nil
}
