package game

import (
	"context"

	"github.com/plus3/handblast/internal/ecs"
	"github.com/plus3/handblast/layout"
	"github.com/plus3/handblast/puzzle"
	"github.com/plus3/handblast/scorestore"
	"github.com/plus3/handblast/tracking"
)

// FeedbackDuration is how long, in seconds, a clear stays highlighted.
const FeedbackDuration = 0.4

type TrackingSystem struct {
	Source  tracking.Source
	Tracker *tracking.Tracker
	Input   ecs.Singleton[Input]

	edge tracking.Edge
}

func (s *TrackingSystem) Execute(frame *ecs.UpdateFrame) {
	input := s.Input.Get()
	if input == nil || s.Source == nil {
		return
	}

	input.Pointer = s.Tracker.Update(s.Source.Sample())
	input.Transition = s.edge.Step(input.Pointer.Selecting)
}

// PlaySystem turns pinch edges into pick and drop calls while a game is
// running, then checks for the end of the game.
type PlaySystem struct {
	Input    ecs.Singleton[Input]
	Match    ecs.Singleton[Match]
	Layout   ecs.Singleton[layout.Layout]
	Feedback ecs.Singleton[Feedback]
}

func (s *PlaySystem) Execute(frame *ecs.UpdateFrame) {
	input := s.Input.Get()
	match := s.Match.Get()
	screen := s.Layout.Get()
	if input == nil || match == nil || screen == nil {
		return
	}

	engine := match.Engine
	if engine.State() != puzzle.StatePlaying {
		return
	}

	ptr := input.Pointer
	_, holding := engine.Holding()

	switch {
	case input.Transition == tracking.Rising && !holding:
		if slot, ok := screen.TraySlot(ptr.X, ptr.Y); ok {
			engine.Pick(slot)
		}
	case input.Transition == tracking.Falling && holding:
		x, y := screen.GridCell(ptr.X, ptr.Y)
		if move, ok := engine.Drop(x, y); ok {
			if fb := s.Feedback.Get(); fb != nil {
				*fb = Feedback{Move: move, Valid: true}
			}
		}
	}

	engine.CheckGameOver()
}

// MenuSystem handles the menu buttons on the rising pinch edge.
type MenuSystem struct {
	OnError func(error)
	Input   ecs.Singleton[Input]
	Match   ecs.Singleton[Match]
	Layout  ecs.Singleton[layout.Layout]
	Control ecs.Singleton[Control]
	Clock   ecs.Singleton[Clock]
}

func (s *MenuSystem) Execute(frame *ecs.UpdateFrame) {
	input := s.Input.Get()
	match := s.Match.Get()
	screen := s.Layout.Get()
	if input == nil || match == nil || screen == nil {
		return
	}
	if match.Engine.State() != puzzle.StateMenu || input.Transition != tracking.Rising {
		return
	}

	button, ok := screen.ButtonAt(input.Pointer.X, input.Pointer.Y)
	if !ok {
		return
	}

	switch button {
	case layout.ButtonNewGame:
		match.Start(s.Clock.Get().now())
	case layout.ButtonResume:
		if !match.Engine.Started() {
			return
		}
		if err := match.Engine.Resume(); err != nil && s.OnError != nil {
			s.OnError(err)
		}
	case layout.ButtonQuit:
		if ctl := s.Control.Get(); ctl != nil {
			ctl.Quit = true
		}
	}
}

type FeedbackSystem struct {
	Feedback ecs.Singleton[Feedback]
}

func (s *FeedbackSystem) Execute(frame *ecs.UpdateFrame) {
	fb := s.Feedback.Get()
	if fb == nil || !fb.Valid {
		return
	}
	fb.Age += frame.DeltaTime
	if fb.Age >= FeedbackDuration {
		*fb = Feedback{}
	}
}

// Recorder stores finished runs.
type Recorder interface {
	RecordRun(ctx context.Context, run scorestore.Run) error
}

// RunRecordSystem records every finished game once.
type RunRecordSystem struct {
	Recorder Recorder
	OnError  func(error)
	Match    ecs.Singleton[Match]
	Clock    ecs.Singleton[Clock]
}

func (s *RunRecordSystem) Execute(frame *ecs.UpdateFrame) {
	match := s.Match.Get()
	if match == nil || s.Recorder == nil {
		return
	}
	if match.Recorded || match.Engine.State() != puzzle.StateGameOver {
		return
	}
	match.Recorded = true

	stats := match.Engine.Stats()
	run := scorestore.Run{
		ID:         match.RunID,
		Score:      match.Engine.Score(),
		Placements: stats.Placements,
		Lines:      stats.Lines,
		BestCombo:  stats.BestCombo,
		StartedAt:  match.StartedAt,
		EndedAt:    s.Clock.Get().now(),
	}

	if err := s.Recorder.RecordRun(context.Background(), run); err != nil && s.OnError != nil {
		s.OnError(err)
	}
}
