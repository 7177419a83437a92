package opponent

import (
	"errors"
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/thekrainbow/gomoku/internal/board"
	"github.com/thekrainbow/gomoku/internal/engine"
)

// Opponent picks moves for one seat. ChooseMove leaves the grid as it found
// it; ok is false only when no empty cell remains.
type Opponent interface {
	Name() string
	Player() board.Player
	ChooseMove(g *board.Grid) (board.Move, bool)
}

type Kind string

const (
	KindMinimax Kind = "minimax"
	KindCasual  Kind = "casual"
)

var ErrUnknownKind = errors.New("unknown opponent kind")

func ParseKind(value string) (Kind, error) {
	switch Kind(value) {
	case KindMinimax:
		return KindMinimax, nil
	case KindCasual:
		return KindCasual, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownKind, value)
	}
}

// New builds the computer-side opponent for kind.
func New(kind Kind, cfg engine.Config, seed int64, logger *zap.Logger) (Opponent, error) {
	switch kind {
	case KindMinimax:
		return NewMinimax(cfg, logger), nil
	case KindCasual:
		return NewCasual(board.Computer, rand.New(rand.NewSource(seed))), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownKind, kind)
	}
}

// nearestCenter returns the empty cell closest to the middle of the grid,
// row-major on ties.
func nearestCenter(g *board.Grid) (board.Move, bool) {
	center := board.Move{Row: board.Height / 2, Col: board.Width / 2}
	best := board.Move{}
	bestDist := -1
	for row := 0; row < board.Height; row++ {
		for col := 0; col < board.Width; col++ {
			if !g.IsValidMove(row, col) {
				continue
			}
			dist := abs(row-center.Row) + abs(col-center.Col)
			if bestDist < 0 || dist < bestDist {
				best = board.Move{Row: row, Col: col}
				bestDist = dist
			}
		}
	}
	return best, bestDist >= 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
