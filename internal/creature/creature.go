package creature

import (
	"errors"
	"fmt"
)

const (
	// InWater is the location a creature ends up at after swimming.
	InWater = "in the water"
	// MoltStep is how many feathers a single molt removes.
	MoltStep = 4
)

// ErrNegativeFeathers is returned by ValidateFeathers for counts below zero.
var ErrNegativeFeathers = errors.New("negative feather count")

// Swimmer is anything that can take to the water.
type Swimmer interface {
	Swim()
}

// Featherer is anything that has feathers to lose.
type Featherer interface {
	Molt()
}

// Penguin swims and molts. The zero location is "".
// A Penguin is not safe for concurrent use.
type Penguin struct {
	location string
	feathers int
}

var (
	_ Swimmer   = (*Penguin)(nil)
	_ Featherer = (*Penguin)(nil)
)

// New returns a penguin with the given feather count. The count is not
// validated; see ValidateFeathers.
func New(feathers int) *Penguin {
	return &Penguin{feathers: feathers}
}

// Swim moves the penguin into the water.
func (p *Penguin) Swim() {
	p.location = InWater
}

// Molt drops MoltStep feathers. The count is allowed to go negative.
func (p *Penguin) Molt() {
	p.feathers -= MoltStep
}

func (p *Penguin) Location() string { return p.location }

func (p *Penguin) Feathers() int { return p.feathers }

// ValidateFeathers rejects initial feather counts below zero.
func ValidateFeathers(n int) error {
	if n < 0 {
		return fmt.Errorf("feathers=%d: %w", n, ErrNegativeFeathers)
	}
	return nil
}
