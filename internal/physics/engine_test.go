package physics

import (
	"errors"
	"math"
	"testing"
)

// newPair builds the two boxes for a scenario, failing the test on error.
func newPair(t *testing.T, x1, m1, v1, l1, x2, m2, v2, l2 float64) (*Body, *Body) {
	t.Helper()
	left, err := NewBody(x1, m1, v1, l1)
	if err != nil {
		t.Fatalf("NewBody(left) failed: %v", err)
	}
	right, err := NewBody(x2, m2, v2, l2)
	if err != nil {
		t.Fatalf("NewBody(right) failed: %v", err)
	}
	return left, right
}

func TestRunClassicMassRatio100(t *testing.T) {
	// 1 kg at rest vs 100 kg approaching at 1 m/s: the event count spells
	// out the first digits of pi.
	left, right := newPair(t, 3, 1, 0, 1, 8, 100, -1, 1)

	res, err := Run(left, right, 0, Options{})
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if res.Collisions != 31 {
		t.Errorf("Collisions = %d, expected 31", res.Collisions)
	}
	if res.WallBounces+res.Impacts != res.Collisions {
		t.Errorf("WallBounces (%d) + Impacts (%d) != Collisions (%d)",
			res.WallBounces, res.Impacts, res.Collisions)
	}

	// Both boxes end up diverging: right faster than left, both outbound.
	v1, v2 := res.Left.Velocity(), res.Right.Velocity()
	if !(v2 > v1 && v1 > 0) {
		t.Errorf("final velocities not diverging: v1=%g, v2=%g", v1, v2)
	}

	if res.SmallestInterval <= 0 {
		t.Errorf("SmallestInterval = %g, expected > 0", res.SmallestInterval)
	}
}

func TestRunMassRatio10000(t *testing.T) {
	// One more digit of pi at ratio 100^2.
	left, right := newPair(t, 3, 1, 0, 1, 8, 10000, -1, 1)

	res, err := Run(left, right, 0, Options{})
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if res.Collisions != 314 {
		t.Errorf("Collisions = %d, expected 314", res.Collisions)
	}
}

func TestRunEqualMassExchange(t *testing.T) {
	// Equal masses exchange velocities exactly. The right box stops on
	// impact, the left box carries the speed to the wall, bounces, and
	// passes it back: three events total, two of them impacts.
	left, right := newPair(t, 3, 1, 0, 1, 8, 1, -1, 1)

	res, err := Run(left, right, 0, Options{})
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if res.Collisions != 3 {
		t.Errorf("Collisions = %d, expected 3", res.Collisions)
	}
	if res.Impacts != 2 || res.WallBounces != 1 {
		t.Errorf("Impacts = %d, WallBounces = %d, expected 2 and 1", res.Impacts, res.WallBounces)
	}

	// After the first impact velocities are exchanged exactly: the
	// elastic formula with m1 == m2 reduces to v1f = v2, v2f = v1.
	if got := left.Velocities()[1]; got != -1 {
		t.Errorf("left velocity after first impact = %g, expected -1", got)
	}
	if got := right.Velocities()[1]; got != 0 {
		t.Errorf("right velocity after first impact = %g, expected 0", got)
	}

	// Final state: left at rest is impossible here; both diverge with the
	// right box carrying the original speed.
	if res.Right.Velocity() != 1 {
		t.Errorf("final right velocity = %g, expected 1", res.Right.Velocity())
	}
}

func TestRunHistoryInvariants(t *testing.T) {
	left, right := newPair(t, 3, 1, 0, 1, 8, 100, -1, 1)

	res, err := Run(left, right, 0, Options{})
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	// One initial entry plus one per event, identical for both bodies.
	want := res.Collisions + 1
	if left.Events() != want || right.Events() != want {
		t.Errorf("history lengths = %d and %d, expected %d", left.Events(), right.Events(), want)
	}

	for _, b := range []*Body{left, right} {
		n := len(b.Times())
		if len(b.Positions()) != n || len(b.Velocities()) != n || len(b.Momenta()) != n {
			t.Error("history sequences have diverging lengths")
		}

		// Event times never decrease.
		for i := 1; i < n; i++ {
			if b.Times()[i] < b.Times()[i-1] {
				t.Errorf("times decrease at %d: %g -> %g", i, b.Times()[i-1], b.Times()[i])
			}
		}

		// Momentum history is mass * velocity throughout.
		for i := 0; i < n; i++ {
			if b.Momenta()[i] != b.Mass()*b.Velocities()[i] {
				t.Errorf("momentum mismatch at %d", i)
			}
		}
	}

	// Both bodies share one event-time sequence.
	for i := range left.Times() {
		if left.Times()[i] != right.Times()[i] {
			t.Errorf("event times diverge at %d", i)
		}
	}
}

func TestRunConservation(t *testing.T) {
	left, right := newPair(t, 3, 1, 0, 1, 8, 100, -1, 1)

	res, err := Run(left, right, 0, Options{})
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	// Kinetic energy is conserved across the whole run (wall bounces only
	// flip a sign, impacts are elastic).
	e0 := 0.5 * 100 * 1 * 1
	v1, v2 := res.Left.Velocity(), res.Right.Velocity()
	e := 0.5*1*v1*v1 + 0.5*100*v2*v2
	if math.Abs(e-e0) > 1e-9 {
		t.Errorf("kinetic energy drifted: %g -> %g", e0, e)
	}
}

func TestRunPreconditions(t *testing.T) {
	// Overlapping footprints.
	left, right := newPair(t, 3, 1, 0, 2, 4, 100, -1, 1)
	if _, err := Run(left, right, 0, Options{}); !errors.Is(err, ErrOverlap) {
		t.Errorf("overlapping boxes should fail with ErrOverlap, got %v", err)
	}
	if left.Events() != 1 || right.Events() != 1 {
		t.Error("failed precondition must not mutate body state")
	}

	// Left box behind the wall.
	left, right = newPair(t, -1, 1, 0, 1, 8, 100, -1, 1)
	if _, err := Run(left, right, 0, Options{}); !errors.Is(err, ErrBoundary) {
		t.Errorf("box behind the wall should fail with ErrBoundary, got %v", err)
	}

	// Boundary is configurable.
	left, right = newPair(t, 3, 1, 0, 1, 8, 100, -1, 1)
	if _, err := Run(left, right, 5, Options{}); !errors.Is(err, ErrBoundary) {
		t.Errorf("box behind a shifted wall should fail with ErrBoundary, got %v", err)
	}

	// Boxes out of order, regardless of masses and velocities.
	left, right = newPair(t, 8, 1, 0, 1, 3, 100, -1, 1)
	if _, err := Run(left, right, 0, Options{}); !errors.Is(err, ErrOrdering) {
		t.Errorf("misordered boxes should fail with ErrOrdering, got %v", err)
	}
}

func TestRunEventLimit(t *testing.T) {
	left, right := newPair(t, 3, 1, 0, 1, 8, 10000, -1, 1)

	_, err := Run(left, right, 0, Options{MaxEvents: 100})
	if !errors.Is(err, ErrEventLimit) {
		t.Errorf("capped run should fail with ErrEventLimit, got %v", err)
	}
}

func TestRunDeterminism(t *testing.T) {
	run := func() *Result {
		left, right := newPair(t, 3, 1, 0, 1, 8, 100, -1, 1)
		res, err := Run(left, right, 0, Options{})
		if err != nil {
			t.Fatalf("Run() failed: %v", err)
		}
		return res
	}

	r1, r2 := run(), run()

	if r1.Collisions != r2.Collisions {
		t.Errorf("collision counts differ: %d vs %d", r1.Collisions, r2.Collisions)
	}
	if r1.Left.Velocity() != r2.Left.Velocity() || r1.Right.Velocity() != r2.Right.Velocity() {
		t.Error("final velocities are not bit-identical across runs")
	}
	if r1.SmallestInterval != r2.SmallestInterval {
		t.Errorf("smallest intervals differ: %g vs %g", r1.SmallestInterval, r2.SmallestInterval)
	}
}

func TestRunAlreadySeparated(t *testing.T) {
	// Both boxes moving right with the right one faster: no event is
	// possible, the run terminates immediately with zero collisions.
	left, right := newPair(t, 3, 1, 1, 1, 8, 100, 2, 1)

	res, err := Run(left, right, 0, Options{})
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if res.Collisions != 0 {
		t.Errorf("Collisions = %d, expected 0", res.Collisions)
	}
	if res.SmallestInterval != 0 {
		t.Errorf("SmallestInterval = %g, expected 0 with no events", res.SmallestInterval)
	}
	if left.Events() != 1 {
		t.Errorf("history grew without events: %d entries", left.Events())
	}
}

func TestClassifyPriority(t *testing.T) {
	// Wall bounce wins whenever the left box moves toward the wall, even
	// if the termination condition would otherwise hold.
	if classify(-1, 2) != eventWallBounce {
		t.Error("v1 < 0 must classify as wall bounce")
	}
	// Diverging with the right box outbound terminates.
	if classify(1, 2) != eventTerminal {
		t.Error("v1 < v2 with v2 > 0 must classify as terminal")
	}
	// Closing configurations collide.
	if classify(2, 1) != eventImpact {
		t.Error("closing boxes must classify as impact")
	}
	if classify(0, -1) != eventImpact {
		t.Error("right box approaching a resting left box must classify as impact")
	}
	// Right box drifting away from the wall but left faster: impact.
	if classify(2, -1) != eventImpact {
		t.Error("left box chasing must classify as impact")
	}
}
