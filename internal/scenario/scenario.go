package scenario

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/olehluchkiv/penguin/internal/creature"
)

// Scenario describes a penguin and what to do with it.
type Scenario struct {
	Feathers int      `yaml:"feathers"`
	Strict   bool     `yaml:"strict"` // reject negative initial feathers
	Steps    []string `yaml:"steps"`
}

// State is the penguin as it stands after a run.
type State struct {
	Location string
	Feathers int
	Steps    int // number of steps applied
}

// Load reads a YAML scenario from path.
func Load(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("reading scenario: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML scenario and checks its step names.
func Parse(data []byte) (Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return Scenario{}, fmt.Errorf("decoding scenario: %w", err)
	}
	for _, name := range sc.Steps {
		if _, err := Lookup(name); err != nil {
			return Scenario{}, err
		}
	}
	return sc, nil
}

// Run builds the penguin and applies every step in order.
func Run(ctx context.Context, sc Scenario, logger *slog.Logger) (State, error) {
	if sc.Strict {
		if err := creature.ValidateFeathers(sc.Feathers); err != nil {
			return State{}, err
		}
	}

	steps := make([]Step, 0, len(sc.Steps))
	for _, name := range sc.Steps {
		s, err := Lookup(name)
		if err != nil {
			return State{}, err
		}
		steps = append(steps, s)
	}

	p := creature.New(sc.Feathers)
	logger.Info("penguin created", "feathers", sc.Feathers, "steps", len(steps))

	applied := 0
	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			return snapshot(p, applied), fmt.Errorf("run interrupted after %d steps: %w", applied, err)
		}
		s.Apply(p)
		applied++
		logger.Debug("step applied", "step", s.Name(), "location", p.Location(), "feathers", p.Feathers())
	}

	if p.Feathers() < 0 {
		logger.Warn("feather count went negative", "feathers", p.Feathers())
	}
	logger.Info("run complete", "location", p.Location(), "feathers", p.Feathers())

	return snapshot(p, applied), nil
}

func snapshot(p *creature.Penguin, applied int) State {
	return State{
		Location: p.Location(),
		Feathers: p.Feathers(),
		Steps:    applied,
	}
}
