package opponent

import (
	"go.uber.org/zap"

	"github.com/thekrainbow/gomoku/internal/board"
	"github.com/thekrainbow/gomoku/internal/engine"
)

// Minimax plays the computer seat: win now, block now, then search.
type Minimax struct {
	cfg engine.Config
	log *zap.Logger
}

func NewMinimax(cfg engine.Config, logger *zap.Logger) *Minimax {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Minimax{cfg: cfg, log: logger}
}

func (m *Minimax) Name() string {
	return string(KindMinimax)
}

func (m *Minimax) Player() board.Player {
	return board.Computer
}

func (m *Minimax) ChooseMove(g *board.Grid) (board.Move, bool) {
	eng := engine.New(g, m.cfg, m.log)
	if move, ok := eng.FindWinningMove(board.Computer); ok {
		m.log.Debug("tactical win", zap.Stringer("move", move))
		return move, true
	}
	if move, ok := eng.FindBlockingMove(board.Human); ok {
		m.log.Debug("tactical block", zap.Stringer("move", move))
		return move, true
	}
	if move, ok := eng.BestMove(eng.Config().Depth); ok {
		return move, true
	}
	return nearestCenter(g)
}
