package engine

import (
	"sort"

	"github.com/thekrainbow/gomoku/internal/board"
)

// CandidateMoves lists the empty cells adjacent to any stone, ordered by
// Manhattan distance from the last permanent move. A cell next to several
// stones appears once per stone. Ties keep generation order.
//
// Without a permanent move there is nothing to order by and no candidate is
// returned.
func CandidateMoves(g *board.Grid) []board.Move {
	last, ok := g.LastMove()
	if !ok {
		return nil
	}

	moves := make([]board.Move, 0, 32)
	for row := 0; row < board.Height; row++ {
		for col := 0; col < board.Width; col++ {
			if g.At(row, col) == board.CellEmpty {
				continue
			}
			for nr := max(0, row-1); nr < min(board.Height, row+2); nr++ {
				for nc := max(0, col-1); nc < min(board.Width, col+2); nc++ {
					if g.At(nr, nc) == board.CellEmpty {
						moves = append(moves, board.Move{Row: nr, Col: nc})
					}
				}
			}
		}
	}

	sort.SliceStable(moves, func(i, j int) bool {
		return manhattan(moves[i], last) < manhattan(moves[j], last)
	})
	return moves
}

func manhattan(a, b board.Move) int {
	return abs(a.Row-b.Row) + abs(a.Col-b.Col)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
