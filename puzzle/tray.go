package puzzle

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// TraySize is the number of pieces offered at once.
const TraySize = 3

// Tray holds the pieces currently offered to the player. A slot is empty
// once its piece has been placed.
type Tray struct {
	pieces [TraySize]Piece
	filled [TraySize]bool
}

// NewTray fills every slot with an independently drawn random piece.
func NewTray(rng *rand.Rand) Tray {
	var t Tray
	for i := range TraySize {
		t.pieces[i] = RandomPiece(rng)
		t.filled[i] = true
	}
	return t
}

// TrayOf builds a tray from explicit pieces; missing trailing slots stay
// empty. It panics on more than TraySize pieces or an invalid piece.
func TrayOf(pieces ...Piece) Tray {
	if len(pieces) > TraySize {
		panic(fmt.Sprintf("puzzle: tray holds %d pieces, got %d", TraySize, len(pieces)))
	}
	var t Tray
	for i, p := range pieces {
		if p.Shape >= shapeCount {
			panic(fmt.Sprintf("puzzle: tray slot %d: unknown shape %d", i, uint8(p.Shape)))
		}
		if !p.Color.Valid() {
			panic(fmt.Errorf("puzzle: tray slot %d: %w %d", i, ErrInvalidColor, p.Color))
		}
		t.pieces[i] = p
		t.filled[i] = true
	}
	return t
}

// Slot returns the piece in slot i and whether the slot is occupied.
// Out-of-range indexes report an empty slot.
func (t *Tray) Slot(i int) (Piece, bool) {
	if i < 0 || i >= TraySize || !t.filled[i] {
		return Piece{}, false
	}
	return t.pieces[i], true
}

// Take empties slot i and returns the piece it held.
func (t *Tray) Take(i int) (Piece, bool) {
	p, ok := t.Slot(i)
	if ok {
		t.filled[i] = false
		t.pieces[i] = Piece{}
	}
	return p, ok
}

// Len is the number of occupied slots.
func (t *Tray) Len() int {
	n := 0
	for _, f := range t.filled {
		if f {
			n++
		}
	}
	return n
}

// IsEmpty reports whether every slot has been used.
func (t *Tray) IsEmpty() bool {
	return t.Len() == 0
}

// String lists the slots separated by spaces, "-" for an empty slot.
func (t *Tray) String() string {
	parts := make([]string, TraySize)
	for i := range TraySize {
		if p, ok := t.Slot(i); ok {
			parts[i] = p.String()
		} else {
			parts[i] = "-"
		}
	}
	return strings.Join(parts, " ")
}

// ParseTray reads the format produced by Tray.String.
func ParseTray(s string) (Tray, error) {
	fields := strings.Fields(s)
	if len(fields) != TraySize {
		return Tray{}, fmt.Errorf("parse tray: got %d slots, want %d", len(fields), TraySize)
	}
	var t Tray
	for i, f := range fields {
		if f == "-" {
			continue
		}
		p, err := ParsePiece(f)
		if err != nil {
			return Tray{}, fmt.Errorf("parse tray: slot %d: %w", i, err)
		}
		t.pieces[i] = p
		t.filled[i] = true
	}
	return t, nil
}
