// Package layout maps screen pixels to board cells, tray slots and menu
// buttons. All coordinates share the pointer's screen space.
package layout

import (
	"github.com/plus3/handblast/puzzle"
)

// Rect is an axis-aligned pixel rectangle. Min is inclusive, Max exclusive.
type Rect struct {
	MinX, MinY int
	MaxX, MaxY int
}

func (r Rect) Contains(x, y int) bool {
	return x >= r.MinX && x < r.MaxX && y >= r.MinY && y < r.MaxY
}

func (r Rect) Dx() int { return r.MaxX - r.MinX }
func (r Rect) Dy() int { return r.MaxY - r.MinY }

// Button identifies a menu entry.
type Button uint8

const (
	ButtonNewGame Button = iota
	ButtonResume
	ButtonQuit
)

// Buttons lists the menu entries top to bottom.
var Buttons = []Button{ButtonNewGame, ButtonResume, ButtonQuit}

func (b Button) String() string {
	switch b {
	case ButtonNewGame:
		return "NEW GAME"
	case ButtonResume:
		return "RESUME"
	case ButtonQuit:
		return "QUIT"
	default:
		return "?"
	}
}

// Layout holds the screen geometry.
type Layout struct {
	Width, Height int
	CellSize      int
	GridX, GridY  int

	// UIX is the left edge of the score and tray column.
	UIX           int
	TrayY         int
	TraySpacing   int
	TrayHeight    int
	TrayCellSize  int
	TrayInset     int
	ButtonWidth   int
	ButtonHeight  int
	ButtonTop     int
	ButtonSpacing int
}

// Default is the 1080x720 layout with 60px board cells.
func Default() Layout {
	const (
		width    = 1080
		height   = 720
		cellSize = 60
		gridX    = 50
	)
	return Layout{
		Width:         width,
		Height:        height,
		CellSize:      cellSize,
		GridX:         gridX,
		GridY:         (height-puzzle.Size*cellSize)/2 + 30,
		UIX:           gridX + puzzle.Size*cellSize + 50,
		TrayY:         300,
		TraySpacing:   140,
		TrayHeight:    130,
		TrayCellSize:  30,
		TrayInset:     100,
		ButtonWidth:   240,
		ButtonHeight:  70,
		ButtonTop:     300,
		ButtonSpacing: 100,
	}
}

// GridCell returns the board cell under pixel (px, py). The result may be
// off the board; callers rely on CanPlace to reject it.
func (l Layout) GridCell(px, py int) (x, y int) {
	return floorDiv(px-l.GridX, l.CellSize), floorDiv(py-l.GridY, l.CellSize)
}

// CellRect is the pixel rectangle of board cell (x, y).
func (l Layout) CellRect(x, y int) Rect {
	minX := l.GridX + x*l.CellSize
	minY := l.GridY + y*l.CellSize
	return Rect{MinX: minX, MinY: minY, MaxX: minX + l.CellSize, MaxY: minY + l.CellSize}
}

// GridRect is the pixel rectangle covering the whole board.
func (l Layout) GridRect() Rect {
	return Rect{
		MinX: l.GridX,
		MinY: l.GridY,
		MaxX: l.GridX + puzzle.Size*l.CellSize,
		MaxY: l.GridY + puzzle.Size*l.CellSize,
	}
}

// TrayRect is the hit region of tray slot i. The region is open on every
// side.
func (l Layout) TrayRect(i int) Rect {
	top := l.TrayY + i*l.TraySpacing
	return Rect{MinX: l.UIX + 1, MinY: top + 1, MaxX: l.Width, MaxY: top + l.TrayHeight}
}

// TraySlot returns the tray slot whose hit region contains (px, py).
func (l Layout) TraySlot(px, py int) (int, bool) {
	for i := range puzzle.TraySize {
		if l.TrayRect(i).Contains(px, py) {
			return i, true
		}
	}
	return -1, false
}

// TrayOrigin is the top-left pixel of the piece preview in slot i.
func (l Layout) TrayOrigin(i int) (px, py int) {
	return l.UIX + l.TrayInset, l.TrayY + i*l.TraySpacing
}

// ButtonRect is the pixel rectangle of a menu button.
func (l Layout) ButtonRect(b Button) Rect {
	minX := l.Width/2 - l.ButtonWidth/2
	minY := l.ButtonTop + int(b)*l.ButtonSpacing
	return Rect{MinX: minX, MinY: minY, MaxX: minX + l.ButtonWidth, MaxY: minY + l.ButtonHeight}
}

// ButtonAt returns the menu button under (px, py).
func (l Layout) ButtonAt(px, py int) (Button, bool) {
	for _, b := range Buttons {
		if l.ButtonRect(b).Contains(px, py) {
			return b, true
		}
	}
	return 0, false
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
