package game

import "github.com/thekrainbow/gomoku/internal/board"

type Status int

const (
	StatusRunning Status = iota
	StatusHumanWon
	StatusComputerWon
	StatusDraw
)

func (s Status) String() string {
	switch s {
	case StatusHumanWon:
		return "human_won"
	case StatusComputerWon:
		return "computer_won"
	case StatusDraw:
		return "draw"
	default:
		return "running"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s Status) Over() bool {
	return s != StatusRunning
}

func wonStatus(player board.Player) Status {
	if player == board.Human {
		return StatusHumanWon
	}
	return StatusComputerWon
}

// State is a detached snapshot of a game.
type State struct {
	Cells       [board.Height][board.Width]board.Cell `json:"cells"`
	ToMove      board.Player                          `json:"toMove"`
	Status      Status                                `json:"status"`
	LastMove    board.Move                            `json:"lastMove"`
	HasLastMove bool                                  `json:"hasLastMove"`
	Winner      *board.Player                         `json:"winner,omitempty"`
	Opponent    string                                `json:"opponent"`
	History     []HistoryEntry                        `json:"history"`
}

func (s State) Grid() *board.Grid {
	return board.FromCells(s.Cells, s.LastMove, s.HasLastMove)
}
