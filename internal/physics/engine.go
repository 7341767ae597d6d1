package physics

import (
	"fmt"
	"math"
	"time"
)

// Options controls host-level policies around a run. The zero value runs
// unbounded, matching the physical model.
type Options struct {
	// MaxEvents caps the number of collision events before the run is
	// aborted with ErrEventLimit. Zero means no cap. Large mass ratios
	// produce very large but finite event counts (the 1:100^n ratio yields
	// digits of pi), so interactive hosts should set a cap.
	MaxEvents int
}

// Result is the immutable outcome of a completed run.
type Result struct {
	// Collisions is the total number of events: wall bounces plus mutual
	// impacts. For the classic 1 kg vs 100 kg scenario this is 31.
	Collisions int

	// WallBounces counts events where the left box rebounded off the wall.
	WallBounces int

	// Impacts counts mutual box-box collisions.
	Impacts int

	// SmallestInterval is the minimum time gap between consecutive events
	// in seconds, or 0 when fewer than two events occurred.
	SmallestInterval float64

	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration

	// Left and Right are the final body states with full histories attached.
	Left  *Body
	Right *Body
}

// eventKind classifies the next discrete event for the current state.
type eventKind int

const (
	eventWallBounce eventKind = iota
	eventTerminal
	eventImpact
)

// classify decides the next event from the two current velocities.
// The tie-break order is fixed: wall bounce first, termination second,
// mutual impact as the default. Comparisons are strict with no epsilon;
// over millions of events floating-point drift near a branch boundary can
// alter the count for pathological mass ratios, and an epsilon would change
// published collision counts, so the exact comparisons are kept.
func classify(v1, v2 float64) eventKind {
	switch {
	case v1 < 0:
		return eventWallBounce
	case v1 < v2 && v2 > 0:
		return eventTerminal
	default:
		return eventImpact
	}
}

// Run drives the two-box system from its initial state to termination, one
// event at a time, and returns the result with both bodies' histories
// populated. It is the sole entry point of the core.
//
// left and right must be freshly constructed, non-overlapping bodies placed
// at or right of leftBound, with right placed right of left; violations are
// reported as distinct errors before any body is mutated. Run owns both
// bodies for the duration of the call and is reentrant across distinct
// body pairs.
func Run(left, right *Body, leftBound float64, opts Options) (*Result, error) {
	if err := left.CheckNoOverlap(right); err != nil {
		return nil, err
	}
	if left.x0 < leftBound || right.x0 < leftBound {
		return nil, fmt.Errorf("%w: wall at x = %g m", ErrBoundary, leftBound)
	}
	if right.x0 < left.x0 {
		return nil, fmt.Errorf("%w: got %g m and %g m", ErrOrdering, left.x0, right.x0)
	}

	start := time.Now()
	res := &Result{Left: left, Right: right}

	for {
		if opts.MaxEvents > 0 && res.Collisions >= opts.MaxEvents {
			return nil, fmt.Errorf("%w: %d events", ErrEventLimit, res.Collisions)
		}

		v1, v2 := left.v, right.v

		var t, v1f, v2f float64
		switch classify(v1, v2) {
		case eventWallBounce:
			t = math.Abs(left.x-leftBound) / math.Abs(v1)
			v1f = -v1
			v2f = v2
			res.WallBounces++

		case eventTerminal:
			res.SmallestInterval = smallestInterval(left.times)
			res.Elapsed = time.Since(start)
			return res, nil

		case eventImpact:
			m1, m2 := left.mass, right.mass
			t = (left.x + left.length - right.x) / (v2 - v1)
			v1f = ((m1-m2)*v1 + 2*m2*v2) / (m1 + m2)
			v2f = ((m2-m1)*v2 + 2*m1*v1) / (m1 + m2)
			res.Impacts++
		}

		res.Collisions++

		// Displacement over the interval uses the pre-event velocities;
		// the new velocities take effect at the instant of contact.
		if err := left.Advance(v1f, left.x+v1*t, t); err != nil {
			return nil, err
		}
		if err := right.Advance(v2f, right.x+v2*t, t); err != nil {
			return nil, err
		}
	}
}

// smallestInterval returns the minimum gap between consecutive event times,
// or 0 when fewer than two entries exist.
func smallestInterval(times []float64) float64 {
	if len(times) < 2 {
		return 0
	}
	min := math.Inf(1)
	for i := 1; i < len(times); i++ {
		if d := times[i] - times[i-1]; d < min {
			min = d
		}
	}
	return min
}
