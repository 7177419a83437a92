package game

import (
	"sync"

	"github.com/thekrainbow/gomoku/internal/board"
)

// Controller serializes access to a Game for front-ends that may be driven
// from several goroutines.
type Controller struct {
	mu   sync.Mutex
	game *Game
}

func NewController(g *Game) *Controller {
	return &Controller{game: g}
}

// Play applies the human move and, if the game is still running, the
// computer's reply. The returned state reflects whatever was applied.
func (c *Controller) Play(move board.Move) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.game.PlayHuman(move); err != nil {
		return c.game.State(), err
	}
	if c.game.Status().Over() {
		return c.game.State(), nil
	}
	_, err := c.game.PlayComputer()
	return c.game.State(), err
}

func (c *Controller) PlayHuman(move board.Move) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.game.PlayHuman(move)
}

func (c *Controller) PlayComputer() (board.Move, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.game.PlayComputer()
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.game.State()
}

func (c *Controller) LatestHistoryEntry() (HistoryEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.game.History().Last()
}
