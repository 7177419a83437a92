package engine

import (
	"testing"

	"github.com/thekrainbow/gomoku/internal/board"
)

func TestFindWinningMoveCompletesRow(t *testing.T) {
	g := board.NewGrid()
	for col := 0; col < 4; col++ {
		g.Place(0, col, board.Computer)
	}
	before := g.Cells()
	move, ok := FindWinningMove(g, board.Computer)
	if !ok || move != (board.Move{Row: 0, Col: 4}) {
		t.Fatalf("expected winning move (0,4), got %v ok=%v", move, ok)
	}
	if g.Cells() != before {
		t.Fatalf("expected grid unchanged after win scan")
	}
	if _, ok := FindWinningMove(g, board.Human); ok {
		t.Fatalf("expected no winning move for human")
	}
}

func TestFindBlockingMoveOpenThree(t *testing.T) {
	g := board.NewGrid()
	for col := 5; col <= 7; col++ {
		g.Place(5, col, board.Human)
	}
	before := g.Cells()
	move, ok := FindBlockingMove(g, board.Human)
	// (5,4) only sees cols 1..6 through the -3..+2 window, so the first
	// row-major hit is on the right end.
	if !ok || move != (board.Move{Row: 5, Col: 8}) {
		t.Fatalf("expected blocking move (5,8), got %v ok=%v", move, ok)
	}
	if g.Cells() != before {
		t.Fatalf("expected grid unchanged after block scan")
	}
}

func TestFindBlockingMovePrefersFiveOverRun(t *testing.T) {
	g := board.NewGrid()
	for col := 5; col <= 7; col++ {
		g.Place(2, col, board.Human)
	}
	for col := 0; col < 4; col++ {
		g.Place(10, col, board.Human)
	}
	move, ok := FindBlockingMove(g, board.Human)
	if !ok || move != (board.Move{Row: 10, Col: 4}) {
		t.Fatalf("expected five block (10,4) ahead of run block, got %v ok=%v", move, ok)
	}
}

func TestFindBlockingMoveNothingToBlock(t *testing.T) {
	g := board.NewGrid()
	g.Place(7, 7, board.Human)
	g.Place(7, 8, board.Human)
	if move, ok := FindBlockingMove(g, board.Human); ok {
		t.Fatalf("expected no block for two stones, got %v", move)
	}
	if g.CountStones() != 2 {
		t.Fatalf("expected grid to keep two stones, got %d", g.CountStones())
	}
}

func TestTacticalScansKeepLastMove(t *testing.T) {
	g := board.NewGrid()
	for col := 3; col < 7; col++ {
		g.Place(9, col, board.Computer)
	}
	FindWinningMove(g, board.Computer)
	FindBlockingMove(g, board.Computer)
	last, _ := g.LastMove()
	if last != (board.Move{Row: 9, Col: 6}) {
		t.Fatalf("expected last move (9,6) after scans, got %v", last)
	}
}
