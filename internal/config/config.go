// Package config provides YAML-based scenario configuration loading and
// named presets for the simulator.
package config

import (
	"fmt"

	"github.com/okhotin/piblocks/internal/physics"
)

// ScenarioConfig describes one complete simulation setup: the wall, both
// boxes, playback parameters, and host limits. All physical values are in
// meters, kilograms, and seconds.
type ScenarioConfig struct {
	Wall      float64         `yaml:"wall" json:"wall"`
	Left      BoxConfig       `yaml:"left" json:"left"`
	Right     BoxConfig       `yaml:"right" json:"right"`
	Animation AnimationConfig `yaml:"animation" json:"animation"`
	Limits    LimitsConfig    `yaml:"limits" json:"limits"`
}

// BoxConfig defines one box's initial physical state.
type BoxConfig struct {
	Position float64 `yaml:"position" json:"position"`
	Mass     float64 `yaml:"mass" json:"mass"`
	Velocity float64 `yaml:"velocity" json:"velocity"`
	Length   float64 `yaml:"length" json:"length"`
}

// AnimationConfig defines playback parameters.
type AnimationConfig struct {
	FPS         int     `yaml:"fps" json:"fps"`
	TailSeconds float64 `yaml:"tail_seconds" json:"tail_seconds"`
}

// LimitsConfig defines host-imposed policies around a run.
type LimitsConfig struct {
	// MaxEvents aborts runs that exceed this many events; 0 disables the
	// cap. Interactive front-ends set this so a typo'd mass ratio cannot
	// hang the terminal.
	MaxEvents int `yaml:"max_events" json:"max_events"`
}

// Bodies constructs the two simulation bodies from the scenario.
// Construction validates masses and lengths; the remaining preconditions
// (overlap, boundary, ordering) are checked by physics.Run.
func (c ScenarioConfig) Bodies() (left, right *physics.Body, err error) {
	left, err = physics.NewBody(c.Left.Position, c.Left.Mass, c.Left.Velocity, c.Left.Length)
	if err != nil {
		return nil, nil, err
	}
	right, err = physics.NewBody(c.Right.Position, c.Right.Mass, c.Right.Velocity, c.Right.Length)
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

// Options returns the engine options derived from the scenario limits.
func (c ScenarioConfig) Options() physics.Options {
	return physics.Options{MaxEvents: c.Limits.MaxEvents}
}

// Validate checks the scenario against the same preconditions the engine
// enforces, so front-ends can report problems before starting a run.
func (c ScenarioConfig) Validate() error {
	left, right, err := c.Bodies()
	if err != nil {
		return err
	}
	if err := left.CheckNoOverlap(right); err != nil {
		return err
	}
	if left.Position() < c.Wall || right.Position() < c.Wall {
		return fmt.Errorf("%w: wall at x = %g m", physics.ErrBoundary, c.Wall)
	}
	if right.Position() < left.Position() {
		return fmt.Errorf("%w: got %g m and %g m", physics.ErrOrdering, left.Position(), right.Position())
	}
	return nil
}
