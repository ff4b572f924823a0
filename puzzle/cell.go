// Package puzzle implements the block-blast puzzle engine: an 8x8 board,
// a tray of three pieces, line clearing, scoring and game-over detection.
// The engine is synchronous and owns all of its state; a driver calls it
// once per update tick.
package puzzle

// Color is an index into the piece palette. Pieces only ever use
// MinColor..MaxColor.
type Color uint8

const (
	MinColor Color = 1
	MaxColor Color = 5
)

// Valid reports whether c may be assigned to a piece.
func (c Color) Valid() bool {
	return c >= MinColor && c <= MaxColor
}

// Cell is a single board square. The zero value is Empty.
type Cell struct {
	occupied bool
	color    Color
}

// Empty is the unoccupied cell.
var Empty = Cell{}

// Occupied returns a cell filled with the given color.
func Occupied(c Color) Cell {
	return Cell{occupied: true, color: c}
}

// IsEmpty reports whether the cell is unoccupied.
func (c Cell) IsEmpty() bool {
	return !c.occupied
}

// Color returns the cell color and true when the cell is occupied.
func (c Cell) Color() (Color, bool) {
	return c.color, c.occupied
}
