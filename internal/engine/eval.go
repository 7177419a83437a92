package engine

import "github.com/thekrainbow/gomoku/internal/board"

var evalDirections = [4][2]int{{1, 0}, {0, 1}, {1, 1}, {1, -1}}

const evalReach = 4

// StreakWeights maps (count, open) window shapes to scores.
type StreakWeights struct {
	Four        int `json:"four" mapstructure:"four"`
	OpenThree   int `json:"openThree" mapstructure:"open_three"`
	Three       int `json:"three" mapstructure:"three"`
	OpenTwo     int `json:"openTwo" mapstructure:"open_two"`
	HalfOpenTwo int `json:"halfOpenTwo" mapstructure:"half_open_two"`
}

func DefaultWeights() StreakWeights {
	return StreakWeights{
		Four:        100000,
		OpenThree:   100000,
		Three:       5000,
		OpenTwo:     500,
		HalfOpenTwo: 50,
	}
}

type Evaluator struct {
	Weights StreakWeights
}

func NewEvaluator(weights StreakWeights) Evaluator {
	return Evaluator{Weights: weights}
}

// Score rates the position from the computer's side around anchor. Only the
// nine-cell windows through the anchor are inspected, so stones elsewhere do
// not contribute. Without an anchor the position scores zero.
func (e Evaluator) Score(g *board.Grid, anchor board.Move, hasAnchor bool) int {
	if !hasAnchor {
		return 0
	}
	return e.playerScore(g, anchor, board.Computer) - e.playerScore(g, anchor, board.Human)
}

func (e Evaluator) playerScore(g *board.Grid, anchor board.Move, player board.Player) int {
	score := 0
	for _, dir := range evalDirections {
		score += e.streak(g, anchor, player, dir) - e.streak(g, anchor, player.Other(), dir)
	}
	return score
}

// streak counts player's cells and empty cells anywhere in the window; the
// cells need not be contiguous.
func (e Evaluator) streak(g *board.Grid, anchor board.Move, player board.Player, dir [2]int) int {
	want := player.Cell()
	count, open := 0, 0
	for k := -evalReach; k <= evalReach; k++ {
		r := anchor.Row + k*dir[0]
		c := anchor.Col + k*dir[1]
		if !board.InBounds(r, c) {
			continue
		}
		switch g.At(r, c) {
		case want:
			count++
		case board.CellEmpty:
			open++
		}
	}
	return e.streakScore(count, open)
}

func (e Evaluator) streakScore(count, open int) int {
	switch {
	case count == 4:
		return e.Weights.Four
	case count == 3 && open == 2:
		return e.Weights.OpenThree
	case count == 3:
		return e.Weights.Three
	case count == 2 && open == 2:
		return e.Weights.OpenTwo
	case count == 2 && open == 1:
		return e.Weights.HalfOpenTwo
	default:
		return 0
	}
}
