package game

import (
	"time"

	"github.com/google/uuid"
	"github.com/plus3/handblast/puzzle"
	"github.com/plus3/handblast/tracking"
)

// Input is the pointer state for the current tick.
type Input struct {
	Pointer    tracking.Pointer
	Transition tracking.Transition
}

// Match wraps the engine with the identity of the game in progress.
type Match struct {
	Engine    *puzzle.Engine
	RunID     uuid.UUID
	StartedAt time.Time
	Recorded  bool
}

// Start begins a fresh game under a new run id.
func (m *Match) Start(now time.Time) {
	m.Engine.NewGame()
	m.RunID = uuid.New()
	m.StartedAt = now
	m.Recorded = false
}

// Feedback remembers the last successful drop so the renderer can flash
// cleared lines.
type Feedback struct {
	Move  puzzle.Move
	Valid bool
	Age   float64
}

// Control carries requests from the game to the host loop.
type Control struct {
	Quit bool
}

// Clock returns the current time. It is a singleton so tests can pin it.
type Clock struct {
	Now func() time.Time
}

func (c *Clock) now() time.Time {
	if c == nil || c.Now == nil {
		return time.Now()
	}
	return c.Now()
}
