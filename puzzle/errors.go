package puzzle

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfBounds  = errors.New("cell out of bounds")
	ErrOccupied     = errors.New("cell occupied")
	ErrInvalidColor = errors.New("invalid color")
	ErrNotStarted   = errors.New("no game in progress")
	ErrNotInMenu    = errors.New("not in the menu")
)

// PlacementError describes why a piece cannot be written at an anchor.
// Board.Place panics with one when called without a successful CanPlace.
type PlacementError struct {
	Piece Piece
	X, Y  int
	Err   error
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("puzzle: place %s at (%d,%d): %v", e.Piece, e.X, e.Y, e.Err)
}

func (e *PlacementError) Unwrap() error {
	return e.Err
}
