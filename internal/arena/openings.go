package arena

import (
	"math/rand"

	"github.com/thekrainbow/gomoku/internal/board"
)

var openingOffsets = []board.Move{
	{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 0, Col: 1}, {Row: -1, Col: 0}, {Row: 0, Col: -1},
	{Row: 1, Col: 1}, {Row: -1, Col: -1}, {Row: 1, Col: -1}, {Row: -1, Col: 1}, {Row: 2, Col: 0}, {Row: 0, Col: 2},
}

// buildOpeningSuite draws count openings of plies distinct cells around
// the center. The same seed always yields the same suite.
func buildOpeningSuite(count, plies int, seed int64) [][]board.Move {
	plies = max(0, min(plies, len(openingOffsets)))
	rng := rand.New(rand.NewSource(seed + int64(plies)*13))
	center := board.Move{Row: board.Height / 2, Col: board.Width / 2}
	suite := make([][]board.Move, 0, count)
	for i := 0; i < count; i++ {
		used := map[board.Move]bool{}
		opening := make([]board.Move, 0, plies)
		for len(opening) < plies {
			off := openingOffsets[rng.Intn(len(openingOffsets))]
			move := board.Move{Row: center.Row + off.Row, Col: center.Col + off.Col}
			if used[move] {
				continue
			}
			used[move] = true
			opening = append(opening, move)
		}
		suite = append(suite, opening)
	}
	return suite
}
