package engine

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/thekrainbow/gomoku/internal/board"
)

// AnchorMode selects where leaf positions are evaluated.
type AnchorMode string

const (
	// AnchorPermanent scores every leaf at the last permanent move.
	AnchorPermanent AnchorMode = "permanent"
	// AnchorLeaf scores every leaf at the most recent placement on the
	// search path.
	AnchorLeaf AnchorMode = "leaf"
)

func ParseAnchorMode(value string) (AnchorMode, error) {
	switch AnchorMode(value) {
	case AnchorPermanent, "":
		return AnchorPermanent, nil
	case AnchorLeaf:
		return AnchorLeaf, nil
	default:
		return "", fmt.Errorf("unknown anchor mode %q", value)
	}
}

type Config struct {
	Depth          int
	Anchor         AnchorMode
	Weights        StreakWeights
	LogSearchStats bool
}

const DefaultDepth = 4

func DefaultConfig() Config {
	return Config{
		Depth:   DefaultDepth,
		Anchor:  AnchorPermanent,
		Weights: DefaultWeights(),
	}
}

// Engine binds the search and the tactical scans to one grid. It is not
// safe for concurrent use; callers serialize access to the grid.
type Engine struct {
	grid     *board.Grid
	cfg      Config
	eval     Evaluator
	log      *zap.Logger
	gameOver bool
}

func New(grid *board.Grid, cfg Config, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Depth < 1 {
		cfg.Depth = DefaultDepth
	}
	if cfg.Anchor == "" {
		cfg.Anchor = AnchorPermanent
	}
	if cfg.Weights == (StreakWeights{}) {
		cfg.Weights = DefaultWeights()
	}
	return &Engine{
		grid: grid,
		cfg:  cfg,
		eval: NewEvaluator(cfg.Weights),
		log:  logger,
	}
}

func (e *Engine) Grid() *board.Grid {
	return e.grid
}

func (e *Engine) Config() Config {
	return e.cfg
}

// HasFive is the side-effect free win probe.
func (e *Engine) HasFive(player board.Player) bool {
	return HasFive(e.grid, player)
}

// CheckWinner is the committing win check: a positive result ends the game.
func (e *Engine) CheckWinner(player board.Player) bool {
	if !HasFive(e.grid, player) {
		return false
	}
	e.gameOver = true
	return true
}

func (e *Engine) GameOver() bool {
	return e.gameOver
}

func (e *Engine) FindWinningMove(player board.Player) (board.Move, bool) {
	return FindWinningMove(e.grid, player)
}

func (e *Engine) FindBlockingMove(opponent board.Player) (board.Move, bool) {
	return FindBlockingMove(e.grid, opponent)
}

// Evaluate scores the current grid at its last permanent move.
func (e *Engine) Evaluate() int {
	last, ok := e.grid.LastMove()
	return e.eval.Score(e.grid, last, ok)
}
