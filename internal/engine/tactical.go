package engine

import "github.com/thekrainbow/gomoku/internal/board"

// FindWinningMove returns the first cell, row-major, where player completes
// five. The grid is unchanged on return.
func FindWinningMove(g *board.Grid, player board.Player) (board.Move, bool) {
	for row := 0; row < board.Height; row++ {
		for col := 0; col < board.Width; col++ {
			if !g.IsValidMove(row, col) {
				continue
			}
			won := false
			g.Simulate(row, col, player, func() {
				won = HasFive(g, player)
			})
			if won {
				return board.Move{Row: row, Col: col}, true
			}
		}
	}
	return board.Move{}, false
}

// FindBlockingMove looks for a cell opponent must be denied: first any cell
// where opponent would complete five, then any cell where a stone of
// opponent would sit inside a run of four.
func FindBlockingMove(g *board.Grid, opponent board.Player) (board.Move, bool) {
	if move, ok := FindWinningMove(g, opponent); ok {
		return move, true
	}
	for row := 0; row < board.Height; row++ {
		for col := 0; col < board.Width; col++ {
			if !g.IsValidMove(row, col) {
				continue
			}
			threat := false
			g.Simulate(row, col, opponent, func() {
				threat = HasOpenRun(g, row, col, opponent)
			})
			if threat {
				return board.Move{Row: row, Col: col}, true
			}
		}
	}
	return board.Move{}, false
}
