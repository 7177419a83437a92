package engine

import "github.com/thekrainbow/gomoku/internal/board"

// (-1,1) walks the same diagonal as (1,-1) with the window mirrored, so that
// diagonal is probed at offsets -3..+2 and -2..+3.
var threatDirections = [5][2]int{{1, 0}, {0, 1}, {1, 1}, {1, -1}, {-1, 1}}

// HasOpenRun reports whether a run of four of player's stones lies within
// offsets -3..+2 of (row, col) along any threat direction. The caller
// usually places a temporary stone at (row, col) first.
func HasOpenRun(g *board.Grid, row, col int, player board.Player) bool {
	want := player.Cell()
	for _, dir := range threatDirections {
		count := 0
		for k := -3; k <= 2; k++ {
			r := row + k*dir[0]
			c := col + k*dir[1]
			if board.InBounds(r, c) && g.At(r, c) == want {
				count++
				if count >= 4 {
					return true
				}
				continue
			}
			count = 0
		}
	}
	return false
}
