package puzzle

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	single = Piece{Shape: ShapeSingle, Color: 1}
	domino = Piece{Shape: ShapeDomino, Color: 2}
	square = Piece{Shape: ShapeSquare, Color: 3}
)

func newPlaying(t *testing.T, store ScoreStore) *Engine {
	t.Helper()
	e := New(store, WithSeed(42))
	e.NewGame()
	require.Equal(t, StatePlaying, e.State())
	return e
}

func drop(t *testing.T, e *Engine, slot, x, y int) Move {
	t.Helper()
	require.True(t, e.Pick(slot))
	move, ok := e.Drop(x, y)
	require.True(t, ok)
	return move
}

func TestLifecycle(t *testing.T) {
	e := New(nil, WithSeed(1))
	assert.Equal(t, StateMenu, e.State())
	assert.False(t, e.Started())

	assert.ErrorIs(t, e.Resume(), ErrNotStarted)
	assert.Equal(t, StateMenu, e.State())
	assert.False(t, e.Pick(0))

	e.NewGame()
	assert.Equal(t, StatePlaying, e.State())
	assert.True(t, e.Started())
	assert.Equal(t, TraySize, e.tray.Len())

	require.True(t, e.Pick(1))
	e.Acknowledge()
	assert.Equal(t, StateMenu, e.State())
	_, holding := e.Holding()
	assert.False(t, holding)

	require.NoError(t, e.Resume())
	assert.Equal(t, StatePlaying, e.State())

	assert.ErrorIs(t, e.Resume(), ErrNotInMenu)
	assert.Equal(t, StatePlaying, e.State())

	e.tray = TrayOf(single)
	drop(t, e, 0, 0, 0)
	e.NewGame()
	assert.Zero(t, e.Score())
	assert.Zero(t, e.board.Occupied())
	assert.Equal(t, Stats{}, e.Stats())
}

func TestPickAndDrop(t *testing.T) {
	e := newPlaying(t, nil)
	e.tray = TrayOf(single, domino, square)

	t.Run("empty slot cannot be picked", func(t *testing.T) {
		e.tray.Take(2)
		assert.False(t, e.Pick(2))
		assert.False(t, e.Pick(5))
		e.tray = TrayOf(single, domino, square)
	})

	t.Run("only one piece at a time", func(t *testing.T) {
		require.True(t, e.Pick(0))
		assert.False(t, e.Pick(1))
		held, ok := e.HeldPiece()
		assert.True(t, ok)
		assert.Equal(t, single, held)
		e.Acknowledge()
		require.NoError(t, e.Resume())
	})

	t.Run("inadmissible drop returns the piece", func(t *testing.T) {
		require.True(t, e.Pick(2))
		_, ok := e.Drop(7, 7)
		assert.False(t, ok)
		_, holding := e.Holding()
		assert.False(t, holding)
		assert.Equal(t, 3, e.tray.Len())
		assert.Zero(t, e.Score())
		assert.Zero(t, e.board.Occupied())
	})

	t.Run("drop without holding", func(t *testing.T) {
		_, ok := e.Drop(0, 0)
		assert.False(t, ok)
	})

	t.Run("placement empties the slot", func(t *testing.T) {
		move := drop(t, e, 2, 0, 0)
		assert.Equal(t, square, move.Piece)
		assert.Equal(t, 4, move.Points)
		assert.Equal(t, 4, e.Score())
		assert.Equal(t, 2, e.tray.Len())
		_, ok := e.tray.Slot(2)
		assert.False(t, ok)
		assert.False(t, e.CanPlace(square, 0, 0))
	})
}

func TestTrayRegeneratesWhenExhausted(t *testing.T) {
	e := newPlaying(t, nil)
	e.tray = TrayOf(single, single, single)

	drop(t, e, 0, 0, 0)
	drop(t, e, 2, 2, 0)
	assert.Equal(t, 1, e.tray.Len())

	drop(t, e, 1, 4, 0)
	assert.Equal(t, TraySize, e.tray.Len())
	for i := range TraySize {
		_, ok := e.tray.Slot(i)
		assert.True(t, ok)
	}
}

func TestScoring(t *testing.T) {
	t.Run("four cells without clears", func(t *testing.T) {
		e := newPlaying(t, nil)
		e.tray = TrayOf(square, single)
		move := drop(t, e, 0, 3, 3)
		assert.Zero(t, move.Clear.Lines())
		assert.Equal(t, 4, e.Score())
	})

	t.Run("two lines", func(t *testing.T) {
		e := newPlaying(t, nil)
		board, err := ParseBoard(`
			111111..
			222222..
			........
			........
			........
			........
			........
			........
		`)
		require.NoError(t, err)
		e.board = board
		e.tray = TrayOf(square, single)

		move := drop(t, e, 0, 6, 0)
		assert.Equal(t, 2, move.Clear.Lines())
		assert.Equal(t, square.Size()+20, e.Score())
		assert.Equal(t, 2, e.Stats().Lines)
		assert.Equal(t, 2, e.Stats().BestCombo)
		assert.Zero(t, e.board.Occupied())
	})
}

func TestBestScoreWriteThrough(t *testing.T) {
	store := &MemoryStore{Best: 5}
	e := newPlaying(t, store)
	assert.Equal(t, 5, e.Best())

	e.tray = TrayOf(square, single, single)
	drop(t, e, 0, 0, 0)
	assert.Equal(t, 4, e.Score())
	assert.Zero(t, store.Saves)

	drop(t, e, 1, 4, 4)
	assert.Equal(t, 5, e.Score())
	assert.Equal(t, 5, e.Best())
	assert.Zero(t, store.Saves, "equal score must not write")

	drop(t, e, 2, 6, 6)
	assert.Equal(t, 6, e.Best())
	assert.Equal(t, 6, store.Best)
	assert.Equal(t, 1, store.Saves)

	e.NewGame()
	assert.Equal(t, 6, e.Best())
}

func TestStoreFailuresAreNotFatal(t *testing.T) {
	store := &MemoryStore{Best: 99, Err: errors.New("disk gone")}
	var reported []error

	e := New(store, WithSeed(3), WithErrorHandler(func(err error) {
		reported = append(reported, err)
	}))
	assert.Zero(t, e.Best())
	require.Len(t, reported, 1)

	e.NewGame()
	e.tray = TrayOf(square, single)
	drop(t, e, 0, 0, 0)

	assert.Equal(t, 4, e.Score())
	assert.Equal(t, 4, e.Best())
	assert.Equal(t, 4, e.board.Occupied())
	require.Len(t, reported, 2)
	assert.ErrorIs(t, reported[1], store.Err)
}

func TestNegativeStoredBestIsIgnored(t *testing.T) {
	e := New(&MemoryStore{Best: -12})
	assert.Zero(t, e.Best())
}

func fullBoardExcept(t *testing.T, x, y int) Board {
	t.Helper()
	var b Board
	for row := range Size {
		for col := range Size {
			if col != x || row != y {
				b.Set(col, row, Occupied(2))
			}
		}
	}
	return b
}

func TestGameOver(t *testing.T) {
	t.Run("isolated hole and two-cell pieces", func(t *testing.T) {
		e := newPlaying(t, nil)
		e.board = fullBoardExcept(t, 4, 4)
		e.tray = TrayOf(domino, domino, domino)

		assert.False(t, e.HasMoves())
		assert.True(t, e.CheckGameOver())
		assert.Equal(t, StateGameOver, e.State())
		assert.False(t, e.Pick(0))
	})

	t.Run("single fits the hole", func(t *testing.T) {
		e := newPlaying(t, nil)
		e.board = fullBoardExcept(t, 4, 4)
		e.tray = TrayOf(domino, single)

		assert.True(t, e.HasMoves())
		assert.False(t, e.CheckGameOver())
		assert.Equal(t, StatePlaying, e.State())
	})

	t.Run("not evaluated while holding", func(t *testing.T) {
		e := newPlaying(t, nil)
		e.board = fullBoardExcept(t, 4, 4)
		e.tray = TrayOf(domino)
		e.holding = 0

		assert.False(t, e.CheckGameOver())
		assert.Equal(t, StatePlaying, e.State())
	})

	t.Run("empty slots are skipped", func(t *testing.T) {
		e := newPlaying(t, nil)
		e.board = fullBoardExcept(t, 0, 0)
		e.tray = TrayOf(single, domino)
		e.tray.Take(0)

		assert.True(t, e.CheckGameOver())
	})

	t.Run("drop triggers the check", func(t *testing.T) {
		e := newPlaying(t, nil)
		var b Board
		for i := 1; i < Size; i++ {
			b.Set(i, 0, Occupied(4))
			b.Set(0, i, Occupied(5))
		}
		e.board = b
		e.tray = TrayOf(single, domino, square)

		// filling the corner completes row 0 and column 0 only
		move := drop(t, e, 0, 0, 0)
		assert.Equal(t, []int{0}, move.Clear.Rows)
		assert.Equal(t, []int{0}, move.Clear.Cols)
		assert.Equal(t, 2*Size-1, move.Clear.Cells)
		assert.Zero(t, e.board.Occupied())
		assert.Equal(t, StatePlaying, e.State())

		e.board = fullBoardExcept(t, 3, 3)
		e.tray = TrayOf(single, square)
		move = drop(t, e, 0, 3, 3)
		assert.Equal(t, 16, move.Clear.Lines())
		assert.Equal(t, StatePlaying, e.State())

		e.board = fullBoardExcept(t, 3, 3)
		e.tray = TrayOf(square)
		require.True(t, e.Pick(0))
		_, ok := e.Drop(3, 3)
		assert.False(t, ok)
		assert.Equal(t, StateGameOver, e.State())
	})

	t.Run("resume after game over", func(t *testing.T) {
		e := newPlaying(t, nil)
		e.board = fullBoardExcept(t, 4, 4)
		e.tray = TrayOf(domino)
		require.True(t, e.CheckGameOver())

		assert.ErrorIs(t, e.Resume(), ErrNotInMenu)
		assert.Equal(t, StateGameOver, e.State())

		e.Acknowledge()
		assert.Equal(t, StateMenu, e.State())
		require.NoError(t, e.Resume())
		assert.True(t, e.CheckGameOver())
	})
}

func TestSnapshotRestore(t *testing.T) {
	e := newPlaying(t, nil)
	e.tray = TrayOf(square, domino)
	drop(t, e, 0, 2, 2)
	snap := e.Snapshot()

	store := &MemoryStore{Best: 1}
	other := New(store, WithSeed(9))
	other.Restore(snap)
	assert.Equal(t, StatePlaying, other.State())
	assert.True(t, other.Started())
	assert.Equal(t, e.Score(), other.Score())
	assert.Equal(t, e.Score(), other.Best())
	assert.Equal(t, e.Score(), store.Best)
	assert.Equal(t, 1, store.Saves)
	assert.Equal(t, e.board, other.board)
	assert.Equal(t, e.tray, other.tray)

	// the restored board is a copy
	drop(t, other, 1, 0, 0)
	assert.NotEqual(t, e.board, other.board)

	t.Run("empty tray is refilled", func(t *testing.T) {
		other.Restore(Snapshot{})
		assert.Equal(t, TraySize, other.tray.Len())
		assert.Zero(t, other.Score())
	})

	t.Run("dead position ends immediately", func(t *testing.T) {
		other.Restore(Snapshot{Board: fullBoardExcept(t, 1, 1), Tray: TrayOf(square)})
		assert.Equal(t, StateGameOver, other.State())
	})

	t.Run("lower score keeps the stored best", func(t *testing.T) {
		saves := store.Saves
		other.Restore(Snapshot{Score: 1, Tray: TrayOf(single)})
		assert.Equal(t, e.Score(), other.Best())
		assert.Equal(t, saves, store.Saves)
	})

	t.Run("store failure is reported", func(t *testing.T) {
		var reported []error
		failing := &MemoryStore{Err: errors.New("disk full")}
		g := New(failing, WithSeed(3), WithErrorHandler(func(err error) { reported = append(reported, err) }))
		reported = nil

		g.Restore(Snapshot{Score: 50, Tray: TrayOf(single)})
		assert.Equal(t, 50, g.Best())
		require.Len(t, reported, 1)
		assert.ErrorIs(t, reported[0], failing.Err)
	})
}
