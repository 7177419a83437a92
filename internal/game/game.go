package game

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/thekrainbow/gomoku/internal/board"
	"github.com/thekrainbow/gomoku/internal/engine"
	"github.com/thekrainbow/gomoku/internal/opponent"
)

// Game is one human-vs-computer session on its own grid. The human always
// moves first. A Game is not safe for concurrent use; see Controller.
type Game struct {
	grid      *board.Grid
	eng       *engine.Engine
	computer  opponent.Opponent
	toMove    board.Player
	status    Status
	history   MoveHistory
	turnStart time.Time
	log       *zap.Logger
}

func New(computer opponent.Opponent, cfg engine.Config, logger *zap.Logger) *Game {
	if logger == nil {
		logger = zap.NewNop()
	}
	grid := board.NewGrid()
	g := &Game{
		grid:      grid,
		eng:       engine.New(grid, cfg, logger),
		computer:  computer,
		toMove:    board.Human,
		status:    StatusRunning,
		turnStart: time.Now(),
		log:       logger,
	}
	g.log.Info("game started", zap.String("opponent", computer.Name()))
	return g
}

func (g *Game) Engine() *engine.Engine {
	return g.eng
}

func (g *Game) Opponent() opponent.Opponent {
	return g.computer
}

func (g *Game) ToMove() board.Player {
	return g.toMove
}

func (g *Game) Status() Status {
	return g.status
}

func (g *Game) History() MoveHistory {
	return g.history
}

func (g *Game) PlayHuman(move board.Move) error {
	if g.status.Over() {
		return ErrGameOver
	}
	if g.toMove != board.Human {
		return ErrNotHumanTurn
	}
	return g.apply(move, false, "")
}

// PlayComputer asks the configured opponent for a reply and plays it.
func (g *Game) PlayComputer() (board.Move, error) {
	if g.status.Over() {
		return board.Move{}, ErrGameOver
	}
	if g.toMove != board.Computer {
		return board.Move{}, ErrNotComputerTurn
	}
	return g.PlaySeat(g.computer)
}

// PlaySeat lets op choose and play the move for the side to move. It is how
// automated players take the human seat.
func (g *Game) PlaySeat(op opponent.Opponent) (board.Move, error) {
	if g.status.Over() {
		return board.Move{}, ErrGameOver
	}
	if op.Player() != g.toMove {
		return board.Move{}, ErrSeatMismatch
	}
	move, ok := op.ChooseMove(g.grid)
	if !ok {
		return board.Move{}, ErrNoMove
	}
	if err := g.apply(move, true, op.Name()); err != nil {
		return board.Move{}, fmt.Errorf("%s chose %v: %w", op.Name(), move, err)
	}
	return move, nil
}

// PlayOpening places move for the side to move without asking anyone.
func (g *Game) PlayOpening(move board.Move) error {
	if g.status.Over() {
		return ErrGameOver
	}
	return g.apply(move, true, "opening")
}

func (g *Game) apply(move board.Move, automated bool, source string) error {
	if !move.IsValid() {
		return ErrOutOfBounds
	}
	if !g.grid.IsValidMove(move.Row, move.Col) {
		return ErrOccupied
	}

	player := g.toMove
	elapsedMs := float64(time.Since(g.turnStart).Milliseconds())
	g.grid.Place(move.Row, move.Col, player)
	g.history.Push(HistoryEntry{
		Move:      move,
		Player:    player,
		ElapsedMs: elapsedMs,
		Automated: automated,
		Source:    source,
	})
	g.log.Debug("move played",
		zap.Stringer("player", player),
		zap.Stringer("move", move),
		zap.Float64("elapsed_ms", elapsedMs),
		zap.Bool("automated", automated),
	)

	switch {
	case g.eng.CheckWinner(player):
		g.status = wonStatus(player)
	case g.grid.IsFull():
		g.status = StatusDraw
	}
	if g.status.Over() {
		g.log.Info("game over", zap.Stringer("status", g.status), zap.Int("moves", g.history.Size()))
		return nil
	}

	g.toMove = player.Other()
	g.turnStart = time.Now()
	return nil
}

func (g *Game) State() State {
	last, hasLast := g.grid.LastMove()
	s := State{
		Cells:       g.grid.Cells(),
		ToMove:      g.toMove,
		Status:      g.status,
		LastMove:    last,
		HasLastMove: hasLast,
		Opponent:    g.computer.Name(),
		History:     g.history.All(),
	}
	switch g.status {
	case StatusHumanWon:
		winner := board.Human
		s.Winner = &winner
	case StatusComputerWon:
		winner := board.Computer
		s.Winner = &winner
	}
	return s
}
