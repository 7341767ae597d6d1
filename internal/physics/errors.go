package physics

import "errors"

// Sentinel errors for simulation preconditions and policies.
// All are detected synchronously; a failed precondition aborts the run
// before any body state is mutated.
var (
	// ErrInvalidParameter is returned when a body is constructed with a
	// non-positive mass or length.
	ErrInvalidParameter = errors.New("physics: invalid body parameter")

	// ErrInvalidTime is returned when an advance is attempted with a
	// negative elapsed time.
	ErrInvalidTime = errors.New("physics: elapsed time must be non-negative")

	// ErrOverlap is returned when the two boxes' initial footprints
	// intersect.
	ErrOverlap = errors.New("physics: boxes overlap")

	// ErrBoundary is returned when a box starts left of the wall.
	ErrBoundary = errors.New("physics: box starts outside the left boundary")

	// ErrOrdering is returned when the right box does not start to the
	// right of the left box.
	ErrOrdering = errors.New("physics: right box must start to the right of the left box")

	// ErrEventLimit is returned when a host-imposed event cap is reached
	// before the system settles.
	ErrEventLimit = errors.New("physics: event limit reached")
)
