package game

import "errors"

var (
	ErrOutOfBounds     = errors.New("move out of bounds")
	ErrOccupied        = errors.New("cell already occupied")
	ErrGameOver        = errors.New("game is over")
	ErrNotHumanTurn    = errors.New("not human turn")
	ErrNotComputerTurn = errors.New("not computer turn")
	ErrNoMove          = errors.New("no move available")
	ErrSeatMismatch    = errors.New("opponent does not hold the seat to move")
)
