package opponent

import (
	"math/rand"

	"github.com/thekrainbow/gomoku/internal/board"
	"github.com/thekrainbow/gomoku/internal/engine"
)

// Casual never searches. It takes a win, blocks the obvious, otherwise
// plays next to its own stones or anywhere at random.
type Casual struct {
	player board.Player
	rng    *rand.Rand
}

func NewCasual(player board.Player, rng *rand.Rand) *Casual {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Casual{player: player, rng: rng}
}

func (c *Casual) Name() string {
	return string(KindCasual)
}

func (c *Casual) Player() board.Player {
	return c.player
}

func (c *Casual) ChooseMove(g *board.Grid) (board.Move, bool) {
	if move, ok := engine.FindWinningMove(g, c.player); ok {
		return move, true
	}
	if move, ok := engine.FindBlockingMove(g, c.player.Other()); ok {
		return move, true
	}
	if move, ok := c.nearby(g); ok {
		return move, true
	}
	return c.random(g)
}

// nearby returns the first empty cell, row-major, with one of the player's
// stones inside the square spanning offsets -2..+1 around it.
func (c *Casual) nearby(g *board.Grid) (board.Move, bool) {
	own := c.player.Cell()
	for row := 0; row < board.Height; row++ {
		for col := 0; col < board.Width; col++ {
			if !g.IsValidMove(row, col) {
				continue
			}
			for dr := -2; dr <= 1; dr++ {
				for dc := -2; dc <= 1; dc++ {
					r, cc := row+dr, col+dc
					if board.InBounds(r, cc) && g.At(r, cc) == own {
						return board.Move{Row: row, Col: col}, true
					}
				}
			}
		}
	}
	return board.Move{}, false
}

func (c *Casual) random(g *board.Grid) (board.Move, bool) {
	empty := make([]board.Move, 0, board.Height*board.Width)
	for row := 0; row < board.Height; row++ {
		for col := 0; col < board.Width; col++ {
			if g.IsValidMove(row, col) {
				empty = append(empty, board.Move{Row: row, Col: col})
			}
		}
	}
	if len(empty) == 0 {
		return board.Move{}, false
	}
	return empty[c.rng.Intn(len(empty))], true
}
