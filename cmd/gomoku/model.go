package main

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/thekrainbow/gomoku/internal/board"
	"github.com/thekrainbow/gomoku/internal/engine"
	"github.com/thekrainbow/gomoku/internal/game"
	"github.com/thekrainbow/gomoku/internal/opponent"
)

var coordPattern = regexp.MustCompile(`^\s*(\d+)\s*[, ]\s*(\d+)\s*$`)

var (
	humanStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	computerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	emptyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	cursorStyle   = lipgloss.NewStyle().Reverse(true)
	lastStyle     = lipgloss.NewStyle().Underline(true)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	bannerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

type phase int

const (
	phaseMenu phase = iota
	phasePlay
)

type computerMovedMsg struct {
	move board.Move
	err  error
}

type model struct {
	phase    phase
	engine   engine.Config
	seed     int64
	kind     opponent.Kind
	ctrl     *game.Controller
	cursor   board.Move
	input    string
	message  string
	thinking bool
	log      *zap.Logger
}

func newModel(cfg engine.Config, seed int64, logger *zap.Logger) model {
	if logger == nil {
		logger = zap.NewNop()
	}
	return model{
		phase:  phaseMenu,
		engine: cfg,
		seed:   seed,
		cursor: board.Move{Row: board.Height / 2, Col: board.Width / 2},
		log:    logger,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

// startGame always builds a fresh game and grid.
func (m model) startGame(kind opponent.Kind) (model, error) {
	computer, err := opponent.New(kind, m.engine, m.seed, m.log.Named("opponent"))
	if err != nil {
		return m, err
	}
	m.kind = kind
	m.ctrl = game.NewController(game.New(computer, m.engine, m.log.Named("game")))
	m.phase = phasePlay
	m.cursor = board.Move{Row: board.Height / 2, Col: board.Width / 2}
	m.input = ""
	m.message = ""
	m.thinking = false
	return m, nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.phase == phaseMenu {
			return m.updateMenu(msg)
		}
		return m.updatePlay(msg)
	case computerMovedMsg:
		m.thinking = false
		if msg.err != nil {
			m.message = "Computer failed to move: " + msg.err.Error()
			return m, nil
		}
		m.cursor = msg.move
		m.message = fmt.Sprintf("Computer played %d,%d", msg.move.Row+1, msg.move.Col+1)
		return m, nil
	}
	return m, nil
}

func (m model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var kind opponent.Kind
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "1":
		kind = opponent.KindCasual
	case "2":
		kind = opponent.KindMinimax
	default:
		return m, nil
	}
	next, err := m.startGame(kind)
	if err != nil {
		m.message = err.Error()
		return m, nil
	}
	return next, nil
}

func (m model) updatePlay(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.thinking {
		return m, nil
	}
	switch msg.Type {
	case tea.KeyUp:
		m.cursor.Row = max(0, m.cursor.Row-1)
		return m, nil
	case tea.KeyDown:
		m.cursor.Row = min(board.Height-1, m.cursor.Row+1)
		return m, nil
	case tea.KeyLeft:
		m.cursor.Col = max(0, m.cursor.Col-1)
		return m, nil
	case tea.KeyRight:
		m.cursor.Col = min(board.Width-1, m.cursor.Col+1)
		return m, nil
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
		return m, nil
	case tea.KeySpace:
		if m.input != "" {
			m.input += " "
			return m, nil
		}
		return m.playHuman(m.cursor)
	case tea.KeyEnter:
		if m.input == "" {
			return m.playHuman(m.cursor)
		}
		move, err := parseCoordinates(m.input)
		m.input = ""
		if err != nil {
			m.message = err.Error()
			return m, nil
		}
		m.cursor = move
		return m.playHuman(move)
	}

	key := msg.String()
	switch key {
	case "q":
		return m, tea.Quit
	case "r":
		next, err := m.startGame(m.kind)
		if err != nil {
			m.message = err.Error()
		}
		return next, nil
	case "m":
		m.phase = phaseMenu
		m.message = ""
		return m, nil
	case "k":
		return m.updatePlay(tea.KeyMsg{Type: tea.KeyUp})
	case "j":
		return m.updatePlay(tea.KeyMsg{Type: tea.KeyDown})
	case "h":
		return m.updatePlay(tea.KeyMsg{Type: tea.KeyLeft})
	case "l":
		return m.updatePlay(tea.KeyMsg{Type: tea.KeyRight})
	}
	if len(key) == 1 && strings.ContainsAny(key, "0123456789,") {
		m.input += key
	}
	return m, nil
}

func (m model) playHuman(move board.Move) (tea.Model, tea.Cmd) {
	err := m.ctrl.PlayHuman(move)
	switch {
	case errors.Is(err, game.ErrOutOfBounds):
		m.message = "Invalid move! Out of the board."
		return m, nil
	case errors.Is(err, game.ErrOccupied):
		m.message = "Invalid move! Cell already taken."
		return m, nil
	case errors.Is(err, game.ErrGameOver):
		m.message = "The game is over. Press r for a new one."
		return m, nil
	case err != nil:
		m.message = err.Error()
		return m, nil
	}
	m.message = ""
	if m.ctrl.State().Status.Over() {
		return m, nil
	}
	m.thinking = true
	return m, computerMoveCmd(m.ctrl)
}

func computerMoveCmd(ctrl *game.Controller) tea.Cmd {
	return func() tea.Msg {
		move, err := ctrl.PlayComputer()
		return computerMovedMsg{move: move, err: err}
	}
}

// parseCoordinates reads a 1-based "row,col" or "row col" pair.
func parseCoordinates(input string) (board.Move, error) {
	match := coordPattern.FindStringSubmatch(input)
	if match == nil {
		return board.Move{}, fmt.Errorf("invalid input %q, expected row,col", input)
	}
	row, err := strconv.Atoi(match[1])
	if err != nil {
		return board.Move{}, fmt.Errorf("invalid row: %w", err)
	}
	col, err := strconv.Atoi(match[2])
	if err != nil {
		return board.Move{}, fmt.Errorf("invalid column: %w", err)
	}
	move := board.Move{Row: row - 1, Col: col - 1}
	if !move.IsValid() {
		return board.Move{}, fmt.Errorf("coordinates must be between 1 and %d", board.Height)
	}
	return move, nil
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Gomoku"))
	b.WriteString("\n\n")

	if m.phase == phaseMenu {
		b.WriteString("1. Play against the casual computer\n")
		b.WriteString("2. Play against the minimax AI\n")
		b.WriteString("q. Quit\n")
		if m.message != "" {
			b.WriteString("\n" + errorStyle.Render(m.message) + "\n")
		}
		return b.String()
	}

	state := m.ctrl.State()
	b.WriteString("    ")
	for col := 0; col < board.Width; col++ {
		b.WriteString(fmt.Sprintf("%-3d", col+1))
	}
	b.WriteString("\n")
	for row := 0; row < board.Height; row++ {
		b.WriteString(fmt.Sprintf("%3d ", row+1))
		for col := 0; col < board.Width; col++ {
			b.WriteString(m.renderCell(state, row, col))
			b.WriteString("  ")
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch state.Status {
	case game.StatusHumanWon:
		b.WriteString(bannerStyle.Render("You won!"))
	case game.StatusComputerWon:
		b.WriteString(bannerStyle.Render("Computer wins!"))
	case game.StatusDraw:
		b.WriteString(bannerStyle.Render("It's a draw!"))
	default:
		if m.thinking {
			b.WriteString("Computer is thinking...")
		} else {
			b.WriteString(fmt.Sprintf("Your move (%s). Cursor at %d,%d", state.Opponent, m.cursor.Row+1, m.cursor.Col+1))
		}
	}
	b.WriteString("\n")
	if m.input != "" {
		b.WriteString("> " + m.input + "\n")
	}
	if m.message != "" {
		b.WriteString(errorStyle.Render(m.message) + "\n")
	}
	b.WriteString("\narrows/hjkl move, enter/space place, type row,col + enter, r new game, m menu, q quit\n")
	return b.String()
}

func (m model) renderCell(state game.State, row, col int) string {
	var glyph string
	switch state.Cells[row][col] {
	case board.CellHuman:
		glyph = humanStyle.Render("X")
	case board.CellComputer:
		glyph = computerStyle.Render("O")
	default:
		glyph = emptyStyle.Render(".")
	}
	if state.HasLastMove && state.LastMove == (board.Move{Row: row, Col: col}) {
		glyph = lastStyle.Render(glyph)
	}
	if m.cursor == (board.Move{Row: row, Col: col}) {
		glyph = cursorStyle.Render(glyph)
	}
	return glyph
}
