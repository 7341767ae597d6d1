// Package physics implements the event-driven elastic collision core.
// Two rigid boxes move along one axis bounded by a rigid wall on the left;
// motion between events is uniform velocity and solved in closed form, so
// the simulation jumps from collision to collision instead of stepping time.
//
// Units are fixed throughout: meters, kilograms, seconds. Nothing converts.
//
// The package contains pure logic with no external dependencies (especially
// no Bubble Tea); the platform layer consumes it through Run, the history
// accessors, and Sample.
package physics

import "fmt"

// Body is a 1-D rigid box with mass, length, position, velocity, and a full
// trajectory history. A body records one history entry per collision event,
// starting with its construction state at time zero.
//
// A body is owned by exactly one engine run at a time; Advance is the sole
// mutator and the engine calls it once per event for each body, keeping both
// bodies' histories the same length throughout a run.
type Body struct {
	x float64 // Current position of the left edge (m)
	v float64 // Current velocity (m/s)
	p float64 // Current momentum (kg·m/s)

	mass   float64 // Mass (kg), immutable, > 0
	length float64 // Box length (m), immutable, > 0

	x0 float64 // Position at construction, immutable
	v0 float64 // Velocity at construction, immutable

	positions  []float64 // Position after each event
	velocities []float64 // Velocity after each event
	momenta    []float64 // Momentum after each event
	times      []float64 // Cumulative simulation time of each event
}

// NewBody constructs a box at position x0 moving at v0.
// Mass and length must both be greater than zero.
func NewBody(x0, mass, v0, length float64) (*Body, error) {
	if mass <= 0 {
		return nil, fmt.Errorf("%w: mass %g kg must be greater than 0", ErrInvalidParameter, mass)
	}
	if length <= 0 {
		return nil, fmt.Errorf("%w: length %g m must be greater than 0", ErrInvalidParameter, length)
	}

	b := &Body{
		x:      x0,
		v:      v0,
		p:      mass * v0,
		mass:   mass,
		length: length,
		x0:     x0,
		v0:     v0,
	}

	b.positions = append(b.positions, b.x)
	b.velocities = append(b.velocities, b.v)
	b.momenta = append(b.momenta, b.p)
	b.times = append(b.times, 0)

	return b, nil
}

// Advance moves the body to a new position and velocity after elapsed
// seconds, recomputes momentum, and appends one entry to each history.
// The recorded event time is the previous event time plus elapsed.
func (b *Body) Advance(v, x, elapsed float64) error {
	if !(elapsed >= 0) {
		return fmt.Errorf("%w: got %g s", ErrInvalidTime, elapsed)
	}

	b.x = x
	b.v = v
	b.p = b.mass * v

	b.positions = append(b.positions, b.x)
	b.velocities = append(b.velocities, b.v)
	b.momenta = append(b.momenta, b.p)
	b.times = append(b.times, elapsed+b.times[len(b.times)-1])

	return nil
}

// CheckNoOverlap verifies that this body's initial footprint
// [x0, x0+length) does not intersect the other body's footprint.
// This is a one-time construction precondition, not a continuous check;
// the engine's event schedule keeps the boxes apart afterwards.
func (b *Body) CheckNoOverlap(other *Body) error {
	if b.x0 < other.x0+other.length && other.x0 < b.x0+b.length {
		return fmt.Errorf("%w: [%g, %g) intersects [%g, %g)",
			ErrOverlap, b.x0, b.x0+b.length, other.x0, other.x0+other.length)
	}
	return nil
}

// Position returns the current position of the box's left edge.
func (b *Body) Position() float64 { return b.x }

// Velocity returns the current velocity.
func (b *Body) Velocity() float64 { return b.v }

// Momentum returns the current momentum (mass times velocity).
func (b *Body) Momentum() float64 { return b.p }

// Mass returns the box mass.
func (b *Body) Mass() float64 { return b.mass }

// Length returns the box length.
func (b *Body) Length() float64 { return b.length }

// InitialPosition returns the position the box was constructed at.
func (b *Body) InitialPosition() float64 { return b.x0 }

// InitialVelocity returns the velocity the box was constructed with.
func (b *Body) InitialVelocity() float64 { return b.v0 }

// Positions returns the recorded position history, one entry per event
// including the initial state. The slice is live; callers must not modify it.
func (b *Body) Positions() []float64 { return b.positions }

// Velocities returns the recorded velocity history.
func (b *Body) Velocities() []float64 { return b.velocities }

// Momenta returns the recorded momentum history.
func (b *Body) Momenta() []float64 { return b.momenta }

// Times returns the cumulative event times. The sequence is non-decreasing
// and always the same length as the other three histories.
func (b *Body) Times() []float64 { return b.times }

// Events returns the number of recorded history entries, including the
// initial state.
func (b *Body) Events() int { return len(b.times) }

// String reports the current physical state.
func (b *Body) String() string {
	return fmt.Sprintf("x = %g m, m = %g kg, v = %g m/s, p = %g kg·m/s", b.x, b.mass, b.v, b.p)
}
