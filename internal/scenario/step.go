package scenario

import (
	"errors"
	"fmt"
	"strings"

	"github.com/olehluchkiv/penguin/internal/creature"
)

// ErrUnknownStep is returned when a step name has no registered Step.
var ErrUnknownStep = errors.New("unknown step")

// Step applies one capability to a penguin.
type Step interface {
	Name() string
	Apply(p *creature.Penguin)
}

// SwimStep drives a creature through its Swimmer contract only.
type SwimStep struct{}

func (SwimStep) Name() string { return "swim" }

func (s SwimStep) Apply(p *creature.Penguin) { s.swim(p) }

func (SwimStep) swim(s creature.Swimmer) { s.Swim() }

// MoltStep drives a creature through its Featherer contract only.
type MoltStep struct{}

func (MoltStep) Name() string { return "molt" }

func (m MoltStep) Apply(p *creature.Penguin) { m.molt(p) }

func (MoltStep) molt(f creature.Featherer) { f.Molt() }

var registry = map[string]Step{
	"swim": SwimStep{},
	"molt": MoltStep{},
}

// Lookup returns the step registered under name (case-insensitive).
func Lookup(name string) (Step, error) {
	s, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%q: %w (valid: molt, swim)", name, ErrUnknownStep)
	}
	return s, nil
}

// ParseSteps splits a comma separated list such as "molt,swim".
// Empty entries are skipped.
func ParseSteps(list string) ([]string, error) {
	var names []string
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, err := Lookup(part); err != nil {
			return nil, err
		}
		names = append(names, strings.ToLower(part))
	}
	return names, nil
}
