// Package tracking turns raw hand samples into a steady pointer with a
// pinch signal, and detects the edges of that signal.
package tracking

import (
	"math"
)

// Point is a screen position in pixels.
type Point struct {
	X, Y int
}

// Sample is one frame from a hand tracker: the index fingertip and the
// thumb tip. Detected is false when no hand was found.
type Sample struct {
	Detected bool
	Index    Point
	Thumb    Point
}

// Source produces one sample per tick.
type Source interface {
	Sample() Sample
}

// Pointer is the per-tick input handed to the game.
type Pointer struct {
	X, Y      int
	Thumb     Point
	Detected  bool
	Selecting bool
}

const (
	DefaultSmoothing     = 0.5
	DefaultPinchDistance = 50.0
)

// Tracker smooths the fingertip with an exponential moving average and
// reports a pinch while the smoothed fingertip is close to the thumb.
type Tracker struct {
	// Smoothing is the weight of the previous position, in [0, 1).
	Smoothing float64
	// PinchDistance is the fingertip-to-thumb distance, in pixels, under
	// which the hand counts as pinching.
	PinchDistance float64

	prev Point
}

func NewTracker(smoothing, pinchDistance float64) *Tracker {
	return &Tracker{Smoothing: smoothing, PinchDistance: pinchDistance}
}

// Update folds s into the smoothed position. Undetected samples keep the
// last position and never select.
func (t *Tracker) Update(s Sample) Pointer {
	if !s.Detected {
		return Pointer{X: t.prev.X, Y: t.prev.Y}
	}

	k := t.Smoothing
	p := Point{
		X: int(float64(t.prev.X)*k + float64(s.Index.X)*(1-k)),
		Y: int(float64(t.prev.Y)*k + float64(s.Index.Y)*(1-k)),
	}
	t.prev = p

	dist := math.Hypot(float64(p.X-s.Thumb.X), float64(p.Y-s.Thumb.Y))
	return Pointer{
		X:         p.X,
		Y:         p.Y,
		Thumb:     s.Thumb,
		Detected:  true,
		Selecting: dist < t.PinchDistance,
	}
}

// Reset forgets the smoothed position.
func (t *Tracker) Reset() {
	t.prev = Point{}
}

// Transition is the change of a boolean signal between two ticks.
type Transition uint8

const (
	Steady Transition = iota
	Rising
	Falling
)

// Edge remembers the previous level of a signal.
type Edge struct {
	last bool
}

// Step records the current level and reports how it changed.
func (e *Edge) Step(level bool) Transition {
	prev := e.last
	e.last = level
	switch {
	case level && !prev:
		return Rising
	case !level && prev:
		return Falling
	default:
		return Steady
	}
}

// Level is the last recorded level.
func (e *Edge) Level() bool {
	return e.last
}
