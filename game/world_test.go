package game_test

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/plus3/handblast/game"
	"github.com/plus3/handblast/layout"
	"github.com/plus3/handblast/puzzle"
	"github.com/plus3/handblast/scorestore"
	"github.com/plus3/handblast/tracking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	dt    = 1.0 / 60.0
	pinch = 50.0
)

type script struct {
	samples []tracking.Sample
}

func (s *script) Sample() tracking.Sample {
	if len(s.samples) == 0 {
		return tracking.Sample{}
	}
	next := s.samples[0]
	s.samples = s.samples[1:]
	return next
}

func (s *script) open(at tracking.Point) *script {
	s.samples = append(s.samples, tracking.Sample{
		Detected: true,
		Index:    at,
		Thumb:    tracking.Point{X: at.X + 200, Y: at.Y},
	})
	return s
}

func (s *script) pinch(at tracking.Point) *script {
	s.samples = append(s.samples, tracking.Sample{Detected: true, Index: at, Thumb: at})
	return s
}

func (s *script) press(at tracking.Point) *script {
	return s.open(at).pinch(at).open(at)
}

func (s *script) drag(from, to tracking.Point) *script {
	return s.open(from).pinch(from).pinch(to).open(to)
}

type recorder struct {
	runs []scorestore.Run
	err  error
}

func (r *recorder) RecordRun(ctx context.Context, run scorestore.Run) error {
	r.runs = append(r.runs, run)
	return r.err
}

func mid(r layout.Rect) tracking.Point {
	return tracking.Point{X: r.MinX + r.Dx()/2, Y: r.MinY + r.Dy()/2}
}

func newWorld(t *testing.T, src tracking.Source, rec game.Recorder) *game.World {
	t.Helper()
	engine := puzzle.New(&puzzle.MemoryStore{}, puzzle.WithSeed(11))
	var opts game.Options
	opts.Engine = engine
	opts.Source = src
	opts.Tracker = tracking.NewTracker(0, pinch)
	opts.Layout = layout.Default()
	opts.Clock = game.Clock{Now: func() time.Time { return time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC) }}
	opts.Recorder = rec
	opts.OnError = func(err error) { t.Errorf("unexpected error: %v", err) }
	return game.NewWorld(opts)
}

func run(w *game.World, ticks int) {
	for range ticks {
		w.Tick(dt)
	}
}

func TestMenuButtons(t *testing.T) {
	l := layout.Default()

	t.Run("resume before any game", func(t *testing.T) {
		src := (&script{}).press(mid(l.ButtonRect(layout.ButtonResume)))
		w := newWorld(t, src, nil)
		assert.Equal(t, l, w.Layout())
		run(w, 3)
		assert.Equal(t, puzzle.StateMenu, w.Engine().State())
		assert.False(t, w.Engine().Started())
	})

	t.Run("new game", func(t *testing.T) {
		src := (&script{}).press(mid(l.ButtonRect(layout.ButtonNewGame)))
		w := newWorld(t, src, nil)
		run(w, 3)
		assert.Equal(t, puzzle.StatePlaying, w.Engine().State())
		assert.NotEqual(t, uuid.Nil, w.Match().RunID)
		assert.False(t, w.Match().Recorded)
	})

	t.Run("resume after escape", func(t *testing.T) {
		src := (&script{}).press(mid(l.ButtonRect(layout.ButtonNewGame)))
		w := newWorld(t, src, nil)
		run(w, 3)
		w.Engine().Acknowledge()

		src.press(mid(l.ButtonRect(layout.ButtonResume)))
		run(w, 3)
		assert.Equal(t, puzzle.StatePlaying, w.Engine().State())
	})

	t.Run("quit", func(t *testing.T) {
		src := (&script{}).press(mid(l.ButtonRect(layout.ButtonQuit)))
		w := newWorld(t, src, nil)
		assert.False(t, w.QuitRequested())
		run(w, 3)
		assert.True(t, w.QuitRequested())
	})

	t.Run("holding the pinch does not repeat", func(t *testing.T) {
		at := mid(l.ButtonRect(layout.ButtonNewGame))
		src := (&script{}).open(at).pinch(at).pinch(at).pinch(at)
		w := newWorld(t, src, nil)
		run(w, 2)
		id := w.Match().RunID
		run(w, 2)
		assert.Equal(t, id, w.Match().RunID)
	})
}

func TestDragAndDrop(t *testing.T) {
	l := layout.Default()
	src := (&script{}).press(mid(l.ButtonRect(layout.ButtonNewGame)))
	w := newWorld(t, src, nil)
	run(w, 3)

	engine := w.Engine()
	tray := engine.Tray()
	piece, ok := tray.Slot(0)
	require.True(t, ok)

	t.Run("drop off the board returns the piece", func(t *testing.T) {
		src.drag(mid(l.TrayRect(0)), tracking.Point{X: 5, Y: 5})
		run(w, 4)

		tray := engine.Tray()
		assert.Equal(t, puzzle.TraySize, tray.Len())
		assert.Zero(t, engine.Score())
		_, holding := engine.Holding()
		assert.False(t, holding)
	})

	t.Run("drop on the board places the piece", func(t *testing.T) {
		src.open(mid(l.TrayRect(0))).pinch(mid(l.TrayRect(0))).pinch(mid(l.CellRect(0, 0)))
		run(w, 3)
		slot, holding := engine.Holding()
		require.True(t, holding)
		assert.Equal(t, 0, slot)

		src.open(mid(l.CellRect(0, 0)))
		run(w, 1)

		board := engine.Board()
		assert.Equal(t, piece.Size(), board.Occupied())
		assert.Equal(t, piece.Size(), engine.Score())
		tray := engine.Tray()
		assert.Equal(t, 2, tray.Len())
	})

	t.Run("pinching over an empty slot does nothing", func(t *testing.T) {
		src.drag(mid(l.TrayRect(0)), mid(l.CellRect(4, 4)))
		run(w, 4)
		board := engine.Board()
		assert.Equal(t, piece.Size(), board.Occupied())
	})
}

func TestFeedbackExpires(t *testing.T) {
	l := layout.Default()
	src := (&script{}).
		press(mid(l.ButtonRect(layout.ButtonNewGame))).
		drag(mid(l.TrayRect(1)), mid(l.CellRect(2, 2)))

	w := newWorld(t, src, nil)
	run(w, 7)

	fb := w.Feedback()
	require.True(t, fb.Valid)
	assert.Equal(t, 1, fb.Move.Slot)
	assert.Equal(t, 2, fb.Move.X)

	w.Tick(game.FeedbackDuration)
	fb = w.Feedback()
	assert.False(t, fb.Valid)
}

func TestAutoplayRecordsFinishedRun(t *testing.T) {
	rec := &recorder{}
	engine := puzzle.New(&puzzle.MemoryStore{}, puzzle.WithSeed(5))
	bot := &game.Autoplayer{
		Engine:        engine,
		Layout:        layout.Default(),
		Rand:          rand.New(rand.NewPCG(5, 6)),
		PinchDistance: pinch,
	}
	w := game.NewWorld(game.Options{
		Engine:   engine,
		Source:   bot,
		Tracker:  tracking.NewTracker(0, pinch),
		Recorder: rec,
	})

	for range 100_000 {
		w.Tick(dt)
		if engine.State() == puzzle.StateGameOver {
			break
		}
	}
	require.Equal(t, puzzle.StateGameOver, engine.State())

	// a few idle ticks must not record twice
	run(w, 10)
	require.Len(t, rec.runs, 1)

	got := rec.runs[0]
	assert.Equal(t, w.Match().RunID, got.ID)
	assert.Equal(t, engine.Score(), got.Score)
	assert.Equal(t, engine.Stats().Placements, got.Placements)
	assert.Positive(t, got.Placements)
	assert.GreaterOrEqual(t, got.Score, got.Placements)
	assert.Equal(t, engine.Score(), engine.Best())

	// back to the menu, the bot starts another game
	engine.Acknowledge()
	run(w, 3)
	assert.Equal(t, puzzle.StatePlaying, engine.State())
	assert.NotEqual(t, got.ID, w.Match().RunID)
	assert.Zero(t, engine.Score())
}

func TestRecorderErrorsAreReported(t *testing.T) {
	rec := &recorder{err: errors.New("locked")}
	var reported []error

	engine := puzzle.New(nil, puzzle.WithSeed(8))
	engine.NewGame()
	w := game.NewWorld(game.Options{
		Engine:   engine,
		Source:   &script{},
		Tracker:  tracking.NewTracker(0, pinch),
		Recorder: rec,
		OnError:  func(err error) { reported = append(reported, err) },
	})

	w.Engine().Acknowledge()
	run(w, 1)
	assert.Empty(t, rec.runs)

	// a game that ends records once, even when the write fails
	forceGameOver(t, w)
	run(w, 3)
	assert.Len(t, rec.runs, 1)
	require.Len(t, reported, 1)
	assert.ErrorIs(t, reported[0], rec.err)
}

func forceGameOver(t *testing.T, w *game.World) {
	t.Helper()
	var board puzzle.Board
	for y := range puzzle.Size {
		for x := range puzzle.Size {
			if x != 4 || y != 4 {
				board.Set(x, y, puzzle.Occupied(3))
			}
		}
	}
	domino := puzzle.Piece{Shape: puzzle.ShapeDomino, Color: 1}
	w.Engine().Restore(puzzle.Snapshot{Board: board, Tray: puzzle.TrayOf(domino)})
	require.Equal(t, puzzle.StateGameOver, w.Engine().State())
}
