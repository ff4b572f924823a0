package tracking_test

import (
	"testing"

	"github.com/plus3/handblast/tracking"
	"github.com/stretchr/testify/assert"
)

func TestTrackerSmoothing(t *testing.T) {
	tr := tracking.NewTracker(0.5, 50)

	p := tr.Update(tracking.Sample{Detected: true, Index: tracking.Point{X: 100, Y: 200}, Thumb: tracking.Point{X: 900, Y: 900}})
	assert.Equal(t, 50, p.X)
	assert.Equal(t, 100, p.Y)
	assert.True(t, p.Detected)
	assert.False(t, p.Selecting)

	p = tr.Update(tracking.Sample{Detected: true, Index: tracking.Point{X: 100, Y: 200}, Thumb: tracking.Point{X: 900, Y: 900}})
	assert.Equal(t, 75, p.X)
	assert.Equal(t, 150, p.Y)
}

func TestTrackerWithoutSmoothingFollowsRaw(t *testing.T) {
	tr := tracking.NewTracker(0, 50)
	p := tr.Update(tracking.Sample{Detected: true, Index: tracking.Point{X: 321, Y: 123}})
	assert.Equal(t, 321, p.X)
	assert.Equal(t, 123, p.Y)
}

func TestTrackerPinch(t *testing.T) {
	tr := tracking.NewTracker(0, 50)

	p := tr.Update(tracking.Sample{Detected: true, Index: tracking.Point{X: 100, Y: 100}, Thumb: tracking.Point{X: 130, Y: 140}})
	assert.False(t, p.Selecting, "distance 50 is not a pinch")

	p = tr.Update(tracking.Sample{Detected: true, Index: tracking.Point{X: 100, Y: 100}, Thumb: tracking.Point{X: 120, Y: 120}})
	assert.True(t, p.Selecting)
	assert.Equal(t, tracking.Point{X: 120, Y: 120}, p.Thumb)
}

func TestTrackerLostHand(t *testing.T) {
	tr := tracking.NewTracker(0, 50)
	tr.Update(tracking.Sample{Detected: true, Index: tracking.Point{X: 10, Y: 20}, Thumb: tracking.Point{X: 10, Y: 20}})

	p := tr.Update(tracking.Sample{})
	assert.False(t, p.Detected)
	assert.False(t, p.Selecting)
	assert.Equal(t, 10, p.X)
	assert.Equal(t, 20, p.Y)

	tr.Reset()
	p = tr.Update(tracking.Sample{})
	assert.Zero(t, p.X)
}

func TestEdge(t *testing.T) {
	var e tracking.Edge

	steps := []struct {
		level bool
		want  tracking.Transition
	}{
		{false, tracking.Steady},
		{true, tracking.Rising},
		{true, tracking.Steady},
		{false, tracking.Falling},
		{false, tracking.Steady},
		{true, tracking.Rising},
	}

	for i, s := range steps {
		assert.Equal(t, s.want, e.Step(s.level), "step %d", i)
		assert.Equal(t, s.level, e.Level())
	}
}
