package engine

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/thekrainbow/gomoku/internal/board"
)

type SearchStats struct {
	Nodes   int64         `json:"nodes"`
	Leaves  int64         `json:"leaves"`
	Cutoffs int64         `json:"cutoffs"`
	Elapsed time.Duration `json:"elapsedNs"`
}

type Result struct {
	Score int
	Move  board.Move
	Found bool
	Stats SearchStats
}

const (
	scoreInf    = math.MaxInt
	scoreNegInf = math.MinInt
)

// BestMove runs the search for the computer at depth and returns the chosen
// move. ok is false when the root is terminal or has no candidates.
func (e *Engine) BestMove(depth int) (board.Move, bool) {
	res := e.Search(depth)
	return res.Move, res.Found
}

// Search runs minimax with alpha-beta pruning from the computer's side.
// Every temporary placement is undone before Search returns.
func (e *Engine) Search(depth int) Result {
	if depth < 1 {
		depth = e.cfg.Depth
	}
	s := searcher{
		grid:   e.grid,
		eval:   e.eval,
		anchor: e.cfg.Anchor,
	}
	start := time.Now()
	last, hasLast := e.grid.LastMove()
	score, move, found := s.minimax(depth, board.Computer, scoreNegInf, scoreInf, last, hasLast)
	s.stats.Elapsed = time.Since(start)

	res := Result{Score: score, Move: move, Found: found, Stats: s.stats}
	e.logSearch(depth, res)
	return res
}

func (e *Engine) logSearch(depth int, res Result) {
	level := zap.DebugLevel
	if e.cfg.LogSearchStats {
		level = zap.InfoLevel
	}
	if ce := e.log.Check(level, "search done"); ce != nil {
		ce.Write(
			zap.Int("depth", depth),
			zap.Int("score", res.Score),
			zap.Stringer("move", res.Move),
			zap.Bool("found", res.Found),
			zap.Int64("nodes", res.Stats.Nodes),
			zap.Int64("leaves", res.Stats.Leaves),
			zap.Int64("cutoffs", res.Stats.Cutoffs),
			zap.Duration("elapsed", res.Stats.Elapsed),
		)
	}
}

type searcher struct {
	grid   *board.Grid
	eval   Evaluator
	anchor AnchorMode
	stats  SearchStats
}

// minimax returns the node score and, for inner nodes, the move that
// produced it. Leaf scores are bounded far inside the int range, so the
// first candidate always replaces the infinite sentinel. anchor is the placement leaves are scored around in leaf
// mode; in permanent mode the grid's last permanent move is used instead.
func (s *searcher) minimax(depth int, player board.Player, alpha, beta int, anchor board.Move, hasAnchor bool) (int, board.Move, bool) {
	s.stats.Nodes++
	g := s.grid
	if depth == 0 || HasFive(g, board.Human) || HasFive(g, board.Computer) || g.IsFull() {
		s.stats.Leaves++
		return s.leafScore(anchor, hasAnchor), board.Move{}, false
	}

	moves := CandidateMoves(g)
	var best board.Move
	found := false

	if player == board.Computer {
		bestScore := scoreNegInf
		for _, move := range moves {
			var score int
			g.Simulate(move.Row, move.Col, board.Computer, func() {
				score, _, _ = s.minimax(depth-1, board.Human, alpha, beta, move, true)
			})
			if score > bestScore {
				bestScore = score
				best = move
				found = true
			}
			alpha = max(alpha, bestScore)
			if beta <= alpha {
				s.stats.Cutoffs++
				break
			}
		}
		return bestScore, best, found
	}

	bestScore := scoreInf
	for _, move := range moves {
		var score int
		g.Simulate(move.Row, move.Col, board.Human, func() {
			score, _, _ = s.minimax(depth-1, board.Computer, alpha, beta, move, true)
		})
		if score < bestScore {
			bestScore = score
			best = move
			found = true
		}
		beta = min(beta, bestScore)
		if beta <= alpha {
			s.stats.Cutoffs++
			break
		}
	}
	return bestScore, best, found
}

func (s *searcher) leafScore(anchor board.Move, hasAnchor bool) int {
	if s.anchor == AnchorLeaf {
		return s.eval.Score(s.grid, anchor, hasAnchor)
	}
	last, ok := s.grid.LastMove()
	return s.eval.Score(s.grid, last, ok)
}
