package engine

import "github.com/thekrainbow/gomoku/internal/board"

// fiveDirections are the forward windows checked from every stone: right,
// down, down-right and up-right. Each line is seen exactly once from its
// first stone in row-major order.
var fiveDirections = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {-1, 1}}

// HasFive reports whether player owns five contiguous cells anywhere on the
// grid. It scans the whole board and runs at every search node, which is
// what bounds the practical search depth.
func HasFive(g *board.Grid, player board.Player) bool {
	want := player.Cell()
	for row := 0; row < board.Height; row++ {
		for col := 0; col < board.Width; col++ {
			if g.At(row, col) != want {
				continue
			}
			for _, dir := range fiveDirections {
				if windowOfFive(g, row, col, dir[0], dir[1], want) {
					return true
				}
			}
		}
	}
	return false
}

func windowOfFive(g *board.Grid, row, col, dr, dc int, want board.Cell) bool {
	endRow := row + 4*dr
	endCol := col + 4*dc
	if !board.InBounds(endRow, endCol) {
		return false
	}
	for k := 1; k < 5; k++ {
		if g.At(row+k*dr, col+k*dc) != want {
			return false
		}
	}
	return true
}
