package puzzle

import (
	"fmt"
	"math/rand/v2"
)

// State is the lifecycle state of a session.
type State uint8

const (
	StateMenu State = iota
	StatePlaying
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "game over"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// LinePoints is awarded for every row or column cleared.
const LinePoints = 10

// Points is the score awarded for placing p with the given clear.
func Points(p Piece, c Clear) int {
	return p.Size() + c.Lines()*LinePoints
}

// Move describes a successful drop.
type Move struct {
	Slot   int
	Piece  Piece
	X, Y   int
	Clear  Clear
	Points int
}

// Stats accumulates per-game counters. They reset with every new game.
type Stats struct {
	Placements int
	Lines      int
	BestCombo  int
}

// ErrorHandler receives non-fatal persistence failures.
type ErrorHandler func(error)

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the random source used for tray generation.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		e.rng = rng
	}
}

// WithSeed seeds a PCG source for tray generation.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithErrorHandler installs a handler for score store failures.
func WithErrorHandler(h ErrorHandler) Option {
	return func(e *Engine) {
		e.onError = h
	}
}

// Engine owns the board, the tray and the session. It is not safe for
// concurrent use; drive it from a single update loop.
type Engine struct {
	board   Board
	tray    Tray
	score   int
	best    int
	state   State
	started bool
	holding int
	stats   Stats

	rng     *rand.Rand
	store   ScoreStore
	onError ErrorHandler
}

// New creates an engine in the menu state. The best score is loaded from
// store once; a failed load or a negative value counts as 0. A nil store
// keeps the best score in memory only.
func New(store ScoreStore, opts ...Option) *Engine {
	e := &Engine{
		holding: -1,
		store:   store,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if e.store == nil {
		e.store = &MemoryStore{}
	}

	best, err := e.store.LoadBest()
	if err != nil {
		e.report(fmt.Errorf("load best score: %w", err))
		best = 0
	}
	e.best = max(best, 0)
	e.tray = NewTray(e.rng)

	return e
}

// Board returns a copy of the board.
func (e *Engine) Board() Board { return e.board }

// Tray returns a copy of the tray.
func (e *Engine) Tray() Tray { return e.tray }

func (e *Engine) Score() int    { return e.score }
func (e *Engine) Best() int     { return e.best }
func (e *Engine) State() State  { return e.state }
func (e *Engine) Started() bool { return e.started }
func (e *Engine) Stats() Stats  { return e.stats }

// Holding returns the tray slot of the piece being dragged.
func (e *Engine) Holding() (int, bool) {
	return e.holding, e.holding >= 0
}

// HeldPiece returns the piece being dragged.
func (e *Engine) HeldPiece() (Piece, bool) {
	if e.holding < 0 {
		return Piece{}, false
	}
	return e.tray.Slot(e.holding)
}

// CanPlace reports whether p fits at (x, y) on the current board.
func (e *Engine) CanPlace(p Piece, x, y int) bool {
	return e.board.CanPlace(p, x, y)
}

// NewGame discards the board, tray and score and starts playing. It is
// valid from every state.
func (e *Engine) NewGame() {
	e.board = Board{}
	e.tray = NewTray(e.rng)
	e.score = 0
	e.stats = Stats{}
	e.holding = -1
	e.started = true
	e.state = StatePlaying
}

// Snapshot is the restorable part of a game in progress.
type Snapshot struct {
	Board Board
	Tray  Tray
	Score int
	Stats Stats
}

// Snapshot captures the current game.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{Board: e.board, Tray: e.tray, Score: e.score, Stats: e.stats}
}

// Restore resumes play from s. An exhausted tray is refilled and the
// game-over check runs immediately. A snapshot score above the best is
// written through like any other improvement.
func (e *Engine) Restore(s Snapshot) {
	e.board = s.Board
	e.tray = s.Tray
	if e.tray.IsEmpty() {
		e.tray = NewTray(e.rng)
	}
	e.score = max(s.Score, 0)
	e.stats = s.Stats
	e.raiseBest()
	e.holding = -1
	e.started = true
	e.state = StatePlaying
	e.CheckGameOver()
}

// Resume returns from the menu to the game in progress.
func (e *Engine) Resume() error {
	if e.state != StateMenu {
		return ErrNotInMenu
	}
	if !e.started {
		return ErrNotStarted
	}
	e.state = StatePlaying
	return nil
}

// Acknowledge returns to the menu. A piece being dragged goes back to
// the tray.
func (e *Engine) Acknowledge() {
	e.holding = -1
	e.state = StateMenu
}

// Pick starts dragging the piece in slot. It fails when not playing,
// when a piece is already held or when the slot is empty.
func (e *Engine) Pick(slot int) bool {
	if e.state != StatePlaying || e.holding >= 0 {
		return false
	}
	if _, ok := e.tray.Slot(slot); !ok {
		return false
	}
	e.holding = slot
	return true
}

// Drop releases the held piece with its anchor at grid cell (x, y). An
// inadmissible drop returns the piece to the tray without penalty.
// Either way the drag ends and the game-over check runs.
func (e *Engine) Drop(x, y int) (Move, bool) {
	if e.state != StatePlaying || e.holding < 0 {
		return Move{}, false
	}
	slot := e.holding
	e.holding = -1

	p, ok := e.tray.Slot(slot)
	if !ok || !e.board.CanPlace(p, x, y) {
		e.CheckGameOver()
		return Move{}, false
	}

	move := e.place(slot, p, x, y)
	e.CheckGameOver()
	return move, true
}

func (e *Engine) place(slot int, p Piece, x, y int) Move {
	cleared := e.board.Place(p, x, y)
	points := Points(p, cleared)
	e.score += points

	e.stats.Placements++
	e.stats.Lines += cleared.Lines()
	e.stats.BestCombo = max(e.stats.BestCombo, cleared.Lines())

	e.tray.Take(slot)
	if e.tray.IsEmpty() {
		e.tray = NewTray(e.rng)
	}

	e.raiseBest()

	return Move{Slot: slot, Piece: p, X: x, Y: y, Clear: cleared, Points: points}
}

// raiseBest writes the score through to the store when it beats the best.
// Equal scores never write.
func (e *Engine) raiseBest() {
	if e.score <= e.best {
		return
	}
	e.best = e.score
	if err := e.store.SaveBest(e.best); err != nil {
		e.report(fmt.Errorf("save best score %d: %w", e.best, err))
	}
}

// HasMoves reports whether any piece left in the tray fits anywhere.
func (e *Engine) HasMoves() bool {
	for i := range TraySize {
		p, ok := e.tray.Slot(i)
		if !ok {
			continue
		}
		for y := range Size {
			for x := range Size {
				if e.board.CanPlace(p, x, y) {
					return true
				}
			}
		}
	}
	return false
}

// CheckGameOver ends the game when no tray piece fits. It does nothing
// while a piece is held or outside of play, and reports whether the
// session is over.
func (e *Engine) CheckGameOver() bool {
	if e.state == StatePlaying && e.holding < 0 && !e.HasMoves() {
		e.state = StateGameOver
	}
	return e.state == StateGameOver
}

func (e *Engine) report(err error) {
	if e.onError != nil {
		e.onError(err)
	}
}
