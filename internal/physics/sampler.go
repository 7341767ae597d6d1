package physics

import (
	"fmt"
	"sort"
)

// DefaultTailSeconds is how long the sampled trajectory keeps extrapolating
// motion past the final event, so playback shows the boxes separating
// instead of freezing at the last contact.
const DefaultTailSeconds = 5.0

// Trajectory is a dense, fixed-frame-rate sampling of a finished run,
// produced from the sparse event histories of the two bodies. It is the
// display-ready contract consumed by playback and export; the core only
// interpolates positions, rendering stays with the caller.
type Trajectory struct {
	// FPS is the frame rate the trajectory was sampled at.
	FPS int

	// Left and Right hold the left-edge position of each box per frame.
	// Both slices always have the same length.
	Left  []float64
	Right []float64

	// LeftLength and RightLength are the box lengths, for drawing.
	LeftLength  float64
	RightLength float64

	// EventFrames holds the cumulative frame index at which each event
	// lands, in non-decreasing order. Multiple events can share a frame
	// when intervals are shorter than a frame.
	EventFrames []int

	// EventSeconds is the simulation time of the last event.
	EventSeconds float64

	// TailSeconds is the extrapolated time appended after the last event.
	TailSeconds float64
}

// Sample converts the two bodies' event histories into a trajectory sampled
// at fps frames per second, with a DefaultTailSeconds extrapolated tail.
// Both bodies must come from the same run (equal history lengths).
func Sample(left, right *Body, fps int) (*Trajectory, error) {
	return SampleTail(left, right, fps, DefaultTailSeconds)
}

// SampleTail is Sample with an explicit post-terminal tail duration.
func SampleTail(left, right *Body, fps int, tailSeconds float64) (*Trajectory, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("physics: fps must be positive, got %d", fps)
	}
	if tailSeconds < 0 {
		return nil, fmt.Errorf("physics: tail must be non-negative, got %g s", tailSeconds)
	}
	if left.Events() != right.Events() {
		return nil, fmt.Errorf("physics: history lengths differ: %d vs %d", left.Events(), right.Events())
	}

	times := left.times
	tr := &Trajectory{
		FPS:          fps,
		LeftLength:   left.length,
		RightLength:  right.length,
		EventSeconds: times[len(times)-1],
		TailSeconds:  tailSeconds,
	}

	// One linear segment per event interval. Each segment contributes
	// int(dt*fps) frames covering [start, end) so the event instant itself
	// belongs to the next segment's first frame.
	total := 0
	for i := 1; i < len(times); i++ {
		frames := int((times[i] - times[i-1]) * float64(fps))
		total += frames
		tr.EventFrames = append(tr.EventFrames, total)
		tr.Left = appendSegment(tr.Left, left.positions[i-1], left.positions[i], frames)
		tr.Right = appendSegment(tr.Right, right.positions[i-1], right.positions[i], frames)
	}

	// Post-terminal tail at the final velocities.
	tailFrames := int(tailSeconds * float64(fps))
	lastL := left.positions[len(left.positions)-1]
	lastR := right.positions[len(right.positions)-1]
	tr.Left = appendTail(tr.Left, lastL, left.v, tailSeconds, tailFrames)
	tr.Right = appendTail(tr.Right, lastR, right.v, tailSeconds, tailFrames)

	return tr, nil
}

// appendSegment appends n linearly interpolated positions from a to b,
// including a and excluding b.
func appendSegment(dst []float64, a, b float64, n int) []float64 {
	for k := 0; k < n; k++ {
		dst = append(dst, a+(b-a)*float64(k)/float64(n))
	}
	return dst
}

// appendTail appends n positions of uniform motion from x at velocity v
// spanning seconds, endpoints included.
func appendTail(dst []float64, x, v, seconds float64, n int) []float64 {
	if n <= 0 {
		return dst
	}
	if n == 1 {
		return append(dst, x)
	}
	for k := 0; k < n; k++ {
		dst = append(dst, x+v*seconds*float64(k)/float64(n-1))
	}
	return dst
}

// Frames returns the total number of sampled frames.
func (t *Trajectory) Frames() int { return len(t.Left) }

// At returns both box positions at the given frame, clamped to the
// trajectory bounds.
func (t *Trajectory) At(frame int) (leftX, rightX float64) {
	if len(t.Left) == 0 {
		return 0, 0
	}
	if frame < 0 {
		frame = 0
	}
	if frame >= len(t.Left) {
		frame = len(t.Left) - 1
	}
	return t.Left[frame], t.Right[frame]
}

// EventsBefore returns how many events have occurred at or before the given
// frame, for on-screen counters during playback.
func (t *Trajectory) EventsBefore(frame int) int {
	return sort.SearchInts(t.EventFrames, frame+1)
}

// Seconds returns the playback duration of the sampled trajectory.
func (t *Trajectory) Seconds() float64 {
	return float64(len(t.Left)) / float64(t.FPS)
}

// Bounds returns the minimum and maximum coordinate any box edge reaches
// over the whole trajectory, for fitting a viewport.
func (t *Trajectory) Bounds() (minX, maxX float64) {
	if len(t.Left) == 0 {
		return 0, 0
	}
	minX = t.Left[0]
	maxX = t.Right[0] + t.RightLength
	for i := range t.Left {
		if t.Left[i] < minX {
			minX = t.Left[i]
		}
		if r := t.Right[i] + t.RightLength; r > maxX {
			maxX = r
		}
	}
	return minX, maxX
}
