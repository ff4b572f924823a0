package puzzle

import (
	"fmt"
	"strings"

	"github.com/kamstrup/intmap"
)

// Size is the width and height of the board.
const Size = 8

// Board is an 8x8 grid of cells stored row-major. (0,0) is the top-left
// cell. Boards are values: assigning one copies every cell.
type Board struct {
	cells [Size][Size]Cell
}

// Clear reports the lines removed by a single placement.
type Clear struct {
	Rows  []int
	Cols  []int
	Cells int
}

// Lines is the number of rows plus columns cleared.
func (c Clear) Lines() int {
	return len(c.Rows) + len(c.Cols)
}

// InBounds reports whether (x, y) lies on the board.
func InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < Size && y < Size
}

// At returns the cell at column x, row y. It panics if the coordinate is
// off the board.
func (b *Board) At(x, y int) Cell {
	if !InBounds(x, y) {
		panic(fmt.Sprintf("puzzle: cell (%d,%d) out of bounds", x, y))
	}
	return b.cells[y][x]
}

// Set overwrites a single cell without line resolution. It is meant for
// restoring saved boards and building fixtures. An occupied cell must
// carry a valid color.
func (b *Board) Set(x, y int, c Cell) {
	if !InBounds(x, y) {
		panic(fmt.Sprintf("puzzle: cell (%d,%d) out of bounds", x, y))
	}
	if color, ok := c.Color(); ok && !color.Valid() {
		panic(fmt.Errorf("puzzle: cell (%d,%d): %w %d", x, y, ErrInvalidColor, color))
	}
	b.cells[y][x] = c
}

// Occupied counts the occupied cells.
func (b *Board) Occupied() int {
	n := 0
	for y := range Size {
		for x := range Size {
			if !b.cells[y][x].IsEmpty() {
				n++
			}
		}
	}
	return n
}

// CanPlace reports whether p has a valid color and every cell of p
// anchored at (x, y) is on the board and empty.
func (b *Board) CanPlace(p Piece, x, y int) bool {
	return b.check(p, x, y) == nil
}

func (b *Board) check(p Piece, x, y int) error {
	if !p.Color.Valid() {
		return ErrInvalidColor
	}
	offsets := p.Shape.offsets()
	for _, o := range offsets {
		if !InBounds(x+o.DX, y+o.DY) {
			return ErrOutOfBounds
		}
	}
	for _, o := range offsets {
		if !b.cells[y+o.DY][x+o.DX].IsEmpty() {
			return ErrOccupied
		}
	}
	return nil
}

// Place writes p at anchor (x, y) and resolves full rows and columns.
// Callers must check CanPlace first; violating that is a programming error
// and panics with a *PlacementError.
func (b *Board) Place(p Piece, x, y int) Clear {
	if err := b.check(p, x, y); err != nil {
		panic(&PlacementError{Piece: p, X: x, Y: y, Err: err})
	}

	cell := Occupied(p.Color)
	for _, o := range p.Shape.offsets() {
		b.cells[y+o.DY][x+o.DX] = cell
	}

	return b.resolve()
}

// resolve finds every full row and column first and then empties them in
// one pass, so a row and a column completed together both clear.
func (b *Board) resolve() Clear {
	var result Clear
	for y := range Size {
		if b.rowFull(y) {
			result.Rows = append(result.Rows, y)
		}
	}
	for x := range Size {
		if b.colFull(x) {
			result.Cols = append(result.Cols, x)
		}
	}
	if result.Lines() == 0 {
		return result
	}

	cleared := intmap.NewSet[int](result.Lines() * Size)
	for _, y := range result.Rows {
		for x := range Size {
			cleared.Add(y*Size + x)
		}
	}
	for _, x := range result.Cols {
		for y := range Size {
			cleared.Add(y*Size + x)
		}
	}

	cleared.ForEach(func(idx int) bool {
		b.cells[idx/Size][idx%Size] = Empty
		return true
	})
	result.Cells = cleared.Len()

	return result
}

func (b *Board) rowFull(y int) bool {
	for x := range Size {
		if b.cells[y][x].IsEmpty() {
			return false
		}
	}
	return true
}

func (b *Board) colFull(x int) bool {
	for y := range Size {
		if b.cells[y][x].IsEmpty() {
			return false
		}
	}
	return true
}

// String renders the board one row per line, '.' for empty cells and the
// color digit for occupied ones.
func (b *Board) String() string {
	var sb strings.Builder
	for y := range Size {
		for x := range Size {
			if c, ok := b.cells[y][x].Color(); ok {
				sb.WriteByte('0' + byte(c))
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ParseBoard builds a board from the format produced by String. Blank
// lines and surrounding whitespace are ignored.
func ParseBoard(s string) (Board, error) {
	var b Board
	y := 0
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if y >= Size {
			return Board{}, fmt.Errorf("parse board: more than %d rows", Size)
		}
		if len(line) != Size {
			return Board{}, fmt.Errorf("parse board: row %d has %d cells, want %d", y, len(line), Size)
		}
		for x := range Size {
			ch := line[x]
			switch {
			case ch == '.':
			case ch >= '0'+byte(MinColor) && ch <= '0'+byte(MaxColor):
				b.cells[y][x] = Occupied(Color(ch - '0'))
			default:
				return Board{}, fmt.Errorf("parse board: row %d col %d: unexpected %q", y, x, ch)
			}
		}
		y++
	}
	if y != Size {
		return Board{}, fmt.Errorf("parse board: got %d rows, want %d", y, Size)
	}
	return b, nil
}
