package game

import (
	"math/rand/v2"

	"github.com/plus3/handblast/layout"
	"github.com/plus3/handblast/puzzle"
	"github.com/plus3/handblast/tracking"
)

// Autoplayer is a tracking.Source that plays by itself. It scripts the
// hand samples a player would produce: hover, pinch, drag, release. It
// presses NEW GAME from the menu and picks a uniformly random legal move
// while playing. Pair it with a Tracker that does no smoothing.
type Autoplayer struct {
	Engine        *puzzle.Engine
	Layout        layout.Layout
	Rand          *rand.Rand
	PinchDistance float64

	plan []tracking.Sample
	last tracking.Point
}

type candidate struct {
	slot, x, y int
}

func (a *Autoplayer) Sample() tracking.Sample {
	if len(a.plan) == 0 {
		a.plan = a.next()
	}
	if len(a.plan) == 0 {
		return a.open(a.last)
	}
	s := a.plan[0]
	a.plan = a.plan[1:]
	a.last = s.Index
	return s
}

func (a *Autoplayer) next() []tracking.Sample {
	switch a.Engine.State() {
	case puzzle.StateMenu:
		at := center(a.Layout.ButtonRect(layout.ButtonNewGame))
		return []tracking.Sample{a.open(at), a.pinch(at), a.open(at)}
	case puzzle.StatePlaying:
		moves := a.moves()
		if len(moves) == 0 {
			return nil
		}
		m := moves[a.Rand.IntN(len(moves))]
		from := center(a.Layout.TrayRect(m.slot))
		to := center(a.Layout.CellRect(m.x, m.y))
		return []tracking.Sample{a.open(from), a.pinch(from), a.pinch(to), a.open(to)}
	default:
		return nil
	}
}

func (a *Autoplayer) moves() []candidate {
	tray := a.Engine.Tray()
	var moves []candidate
	for slot := range puzzle.TraySize {
		p, ok := tray.Slot(slot)
		if !ok {
			continue
		}
		for y := range puzzle.Size {
			for x := range puzzle.Size {
				if a.Engine.CanPlace(p, x, y) {
					moves = append(moves, candidate{slot, x, y})
				}
			}
		}
	}
	return moves
}

func (a *Autoplayer) open(at tracking.Point) tracking.Sample {
	thumb := tracking.Point{X: at.X + int(2*a.PinchDistance) + 1, Y: at.Y}
	return tracking.Sample{Detected: true, Index: at, Thumb: thumb}
}

func (a *Autoplayer) pinch(at tracking.Point) tracking.Sample {
	return tracking.Sample{Detected: true, Index: at, Thumb: at}
}

func center(r layout.Rect) tracking.Point {
	return tracking.Point{X: r.MinX + r.Dx()/2, Y: r.MinY + r.Dy()/2}
}
