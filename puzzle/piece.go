package puzzle

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"
)

// Offset is a cell position relative to a piece anchor.
type Offset struct {
	DX, DY int
}

// Shape identifies one of the canonical piece shapes.
type Shape uint8

const (
	ShapeSingle Shape = iota
	ShapeDomino
	ShapeSquare
	ShapeTriple
	ShapeT
	ShapeL

	shapeCount
)

var shapeOffsets = [shapeCount][]Offset{
	ShapeSingle: {{0, 0}},
	ShapeDomino: {{0, 0}, {1, 0}},
	ShapeSquare: {{0, 0}, {0, 1}, {1, 0}, {1, 1}},
	ShapeTriple: {{0, 0}, {1, 0}, {2, 0}},
	ShapeT:      {{0, 0}, {1, 0}, {2, 0}, {1, 1}},
	ShapeL:      {{0, 0}, {0, 1}, {0, 2}, {1, 2}},
}

var shapeNames = [shapeCount]string{
	ShapeSingle: "single",
	ShapeDomino: "domino",
	ShapeSquare: "square",
	ShapeTriple: "triple",
	ShapeT:      "t",
	ShapeL:      "l",
}

// Shapes returns every canonical shape in declaration order.
func Shapes() []Shape {
	shapes := make([]Shape, shapeCount)
	for i := range shapes {
		shapes[i] = Shape(i)
	}
	return shapes
}

// Offsets returns a copy of the shape's cell offsets.
func (s Shape) Offsets() []Offset {
	return slices.Clone(s.offsets())
}

// Size is the number of cells in the shape.
func (s Shape) Size() int {
	return len(s.offsets())
}

// Extent returns the width and height of the shape's bounding box.
func (s Shape) Extent() (w, h int) {
	for _, o := range s.offsets() {
		w = max(w, o.DX+1)
		h = max(h, o.DY+1)
	}
	return w, h
}

func (s Shape) String() string {
	if s >= shapeCount {
		return fmt.Sprintf("Shape(%d)", uint8(s))
	}
	return shapeNames[s]
}

func (s Shape) offsets() []Offset {
	if s >= shapeCount {
		panic(fmt.Sprintf("puzzle: unknown shape %d", uint8(s)))
	}
	return shapeOffsets[s]
}

// Piece is an immutable colored shape offered in the tray.
type Piece struct {
	Shape Shape
	Color Color
}

// Size is the number of cells the piece occupies once placed.
func (p Piece) Size() int {
	return p.Shape.Size()
}

// Offsets returns a copy of the piece's cell offsets.
func (p Piece) Offsets() []Offset {
	return p.Shape.Offsets()
}

func (p Piece) String() string {
	return fmt.Sprintf("%s/%d", p.Shape, p.Color)
}

// ParsePiece reads the "shape/color" form produced by Piece.String.
func ParsePiece(s string) (Piece, error) {
	name, digits, ok := strings.Cut(s, "/")
	if !ok {
		return Piece{}, fmt.Errorf("piece %q: missing color", s)
	}
	shape, ok := ShapeByName(name)
	if !ok {
		return Piece{}, fmt.Errorf("piece %q: unknown shape", s)
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < int(MinColor) || n > int(MaxColor) {
		return Piece{}, fmt.Errorf("piece %q: %w", s, ErrInvalidColor)
	}
	return Piece{Shape: shape, Color: Color(n)}, nil
}

// ShapeByName looks a shape up by its String form.
func ShapeByName(name string) (Shape, bool) {
	i := slices.Index(shapeNames[:], name)
	if i < 0 {
		return 0, false
	}
	return Shape(i), true
}

// RandomPiece draws a shape and a color uniformly and independently.
func RandomPiece(rng *rand.Rand) Piece {
	return Piece{
		Shape: Shape(rng.IntN(int(shapeCount))),
		Color: MinColor + Color(rng.IntN(int(MaxColor-MinColor)+1)),
	}
}
