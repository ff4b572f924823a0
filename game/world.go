// Package game drives a puzzle engine from pointer input using an ECS
// scheduler. Each call to World.Tick runs one update of every system.
package game

import (
	"github.com/plus3/handblast/internal/ecs"
	"github.com/plus3/handblast/layout"
	"github.com/plus3/handblast/puzzle"
	"github.com/plus3/handblast/tracking"
)

// Options configures a World. Engine, Source and Tracker are required.
type Options struct {
	Engine   *puzzle.Engine
	Source   tracking.Source
	Tracker  *tracking.Tracker
	Layout   layout.Layout
	Recorder Recorder
	OnError  func(error)
	Clock    Clock
}

// World owns the ECS storage and the update scheduler.
type World struct {
	Registry  *ecs.ComponentRegistry
	Storage   *ecs.Storage
	Scheduler *ecs.Scheduler

	match    *ecs.Singleton[Match]
	input    *ecs.Singleton[Input]
	control  *ecs.Singleton[Control]
	feedback *ecs.Singleton[Feedback]
	layout   *ecs.Singleton[layout.Layout]
}

// NewWorld wires the singletons and registers the update systems in the
// order tracking, play, menu, feedback, run recording. Callers may
// register further systems before the first tick.
func NewWorld(opts Options, registerComponents ...func(*ecs.ComponentRegistry)) *World {
	registry := ecs.NewComponentRegistry()
	for _, register := range registerComponents {
		register(registry)
	}
	storage := ecs.NewStorage(registry)

	screen := opts.Layout
	if screen == (layout.Layout{}) {
		screen = layout.Default()
	}

	w := &World{
		Registry: registry,
		Storage:  storage,
		match:    ecs.NewSingleton[Match](storage, Match{Engine: opts.Engine}),
		input:    ecs.NewSingleton[Input](storage, Input{}),
		control:  ecs.NewSingleton[Control](storage, Control{}),
	}
	w.layout = ecs.NewSingleton[layout.Layout](storage, screen)
	w.feedback = ecs.NewSingleton[Feedback](storage, Feedback{})
	ecs.NewSingleton[Clock](storage, opts.Clock)

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&TrackingSystem{Source: opts.Source, Tracker: opts.Tracker})
	scheduler.Register(&PlaySystem{})
	scheduler.Register(&MenuSystem{OnError: opts.OnError})
	scheduler.Register(&FeedbackSystem{})
	scheduler.Register(&RunRecordSystem{Recorder: opts.Recorder, OnError: opts.OnError})
	w.Scheduler = scheduler

	return w
}

// Tick runs every registered system once.
func (w *World) Tick(dt float64) {
	w.Scheduler.Once(dt)
}

func (w *World) Match() *Match          { return w.match.Get() }
func (w *World) Input() *Input          { return w.input.Get() }
func (w *World) QuitRequested() bool    { return w.control.Get().Quit }
func (w *World) Engine() *puzzle.Engine { return w.match.Get().Engine }
func (w *World) Layout() layout.Layout  { return *w.layout.Get() }

// Feedback returns the highlight state of the last drop.
func (w *World) Feedback() Feedback {
	return *w.feedback.Get()
}
