package engine

import (
	"reflect"
	"testing"

	"github.com/thekrainbow/gomoku/internal/board"
)

func TestCandidateMovesAroundSingleStone(t *testing.T) {
	g := board.NewGrid()
	g.Place(7, 7, board.Human)
	got := CandidateMoves(g)
	want := []board.Move{
		{Row: 6, Col: 7}, {Row: 7, Col: 6}, {Row: 7, Col: 8}, {Row: 8, Col: 7},
		{Row: 6, Col: 6}, {Row: 6, Col: 8}, {Row: 8, Col: 6}, {Row: 8, Col: 8},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestCandidateMovesClampsAtCorner(t *testing.T) {
	g := board.NewGrid()
	g.Place(0, 0, board.Computer)
	got := CandidateMoves(g)
	want := []board.Move{{Row: 0, Col: 1}, {Row: 1, Col: 0}, {Row: 1, Col: 1}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestCandidateMovesKeepsDuplicates(t *testing.T) {
	g := board.NewGrid()
	g.Place(7, 7, board.Human)
	g.Place(7, 8, board.Computer)
	moves := CandidateMoves(g)
	count := 0
	for _, m := range moves {
		if m == (board.Move{Row: 6, Col: 7}) {
			count++
		}
		if g.At(m.Row, m.Col) != board.CellEmpty {
			t.Fatalf("expected only empty candidates, got occupied %v", m)
		}
	}
	if count != 2 {
		t.Fatalf("expected (6,7) twice as neighbor of both stones, got %d", count)
	}
	if len(moves) != 14 {
		t.Fatalf("expected 14 candidates with duplicates, got %d", len(moves))
	}
}

func TestCandidateMovesSortedByDistanceFromLastMove(t *testing.T) {
	g := board.NewGrid()
	g.Place(2, 2, board.Human)
	g.Place(10, 10, board.Computer)
	moves := CandidateMoves(g)
	last, _ := g.LastMove()
	for i := 1; i < len(moves); i++ {
		if manhattan(moves[i-1], last) > manhattan(moves[i], last) {
			t.Fatalf("expected non-decreasing distance at %d: %v then %v", i, moves[i-1], moves[i])
		}
	}
	if manhattan(moves[0], last) != 1 {
		t.Fatalf("expected closest candidate next to (10,10), got %v", moves[0])
	}
}

func TestCandidateMovesWithoutLastMove(t *testing.T) {
	g := board.NewGrid()
	if moves := CandidateMoves(g); len(moves) != 0 {
		t.Fatalf("expected no candidates on an empty grid, got %v", moves)
	}
	g.PlaceTemp(7, 7, board.Human)
	if moves := CandidateMoves(g); len(moves) != 0 {
		t.Fatalf("expected no candidates without a permanent move, got %v", moves)
	}
}
