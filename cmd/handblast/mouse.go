package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/handblast/internal/ecs"
	"github.com/plus3/handblast/internal/ecs/debugui"
	"github.com/plus3/handblast/tracking"
)

// MouseHand stands in for a hand tracker: the cursor is the index
// fingertip and holding the left button brings the thumb onto it.
type MouseHand struct {
	// Spread is the thumb offset of an open hand, in pixels.
	Spread int
	// Capture, when set, suppresses pinches while the debug UI owns the
	// mouse.
	Capture *ecs.Singleton[debugui.ImguiInputState]
}

func (m *MouseHand) Sample() tracking.Sample {
	x, y := ebiten.CursorPosition()
	index := tracking.Point{X: x, Y: y}
	s := tracking.Sample{
		Detected: true,
		Index:    index,
		Thumb:    tracking.Point{X: x + m.Spread, Y: y},
	}

	if m.Capture != nil {
		if state := m.Capture.Get(); state != nil && state.WantCaptureMouse {
			return s
		}
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		s.Thumb = index
	}
	return s
}
