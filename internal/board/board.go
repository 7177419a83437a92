package board

import "fmt"

const (
	Height = 15
	Width  = 15
)

type Cell int8

const (
	CellEmpty Cell = iota
	CellHuman
	CellComputer
)

type Player int

const (
	Human Player = iota
	Computer
)

// Other returns the opposing side. There are exactly two players.
func (p Player) Other() Player {
	if p == Human {
		return Computer
	}
	return Human
}

func (p Player) Cell() Cell {
	if p == Human {
		return CellHuman
	}
	return CellComputer
}

func (p Player) String() string {
	if p == Human {
		return "Human"
	}
	return "Computer"
}

func (c Cell) String() string {
	switch c {
	case CellHuman:
		return "Human"
	case CellComputer:
		return "Computer"
	default:
		return "Empty"
	}
}

func PlayerFromCell(cell Cell) (Player, error) {
	switch cell {
	case CellHuman:
		return Human, nil
	case CellComputer:
		return Computer, nil
	default:
		return Human, fmt.Errorf("empty cell has no player")
	}
}

type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func NewMove(row, col int) Move {
	return Move{Row: row, Col: col}
}

func (m Move) IsValid() bool {
	return InBounds(m.Row, m.Col)
}

func (m Move) String() string {
	return fmt.Sprintf("(%d,%d)", m.Row, m.Col)
}

func InBounds(row, col int) bool {
	return row >= 0 && col >= 0 && row < Height && col < Width
}

// Grid is the 15x15 playing surface. Only permanent placements move the
// last-move marker; temporary placements made during search never do.
type Grid struct {
	cells    [Height][Width]Cell
	lastMove Move
	hasLast  bool
}

func NewGrid() *Grid {
	return &Grid{lastMove: Move{Row: -1, Col: -1}}
}

// At requires an in-bounds coordinate.
func (g *Grid) At(row, col int) Cell {
	return g.cells[row][col]
}

func (g *Grid) IsValidMove(row, col int) bool {
	return InBounds(row, col) && g.cells[row][col] == CellEmpty
}

func (g *Grid) Place(row, col int, player Player) {
	g.cells[row][col] = player.Cell()
	g.lastMove = Move{Row: row, Col: col}
	g.hasLast = true
}

func (g *Grid) PlaceTemp(row, col int, player Player) {
	g.cells[row][col] = player.Cell()
}

// Clear empties a cell unconditionally. Out-of-range coordinates are ignored.
func (g *Grid) Clear(row, col int) {
	if !InBounds(row, col) {
		return
	}
	g.cells[row][col] = CellEmpty
}

// Simulate places a temporary stone, runs fn and clears the cell again on
// every exit path of fn, panics included. The cell must be empty on entry.
func (g *Grid) Simulate(row, col int, player Player, fn func()) {
	g.PlaceTemp(row, col, player)
	defer g.Clear(row, col)
	fn()
}

func (g *Grid) IsFull() bool {
	for row := 0; row < Height; row++ {
		for col := 0; col < Width; col++ {
			if g.cells[row][col] == CellEmpty {
				return false
			}
		}
	}
	return true
}

func (g *Grid) LastMove() (Move, bool) {
	return g.lastMove, g.hasLast
}

func (g *Grid) CountStones() int {
	count := 0
	for row := 0; row < Height; row++ {
		for col := 0; col < Width; col++ {
			if g.cells[row][col] != CellEmpty {
				count++
			}
		}
	}
	return count
}

// Cells returns a copy of the cell array.
func (g *Grid) Cells() [Height][Width]Cell {
	return g.cells
}

func (g *Grid) Clone() *Grid {
	clone := *g
	return &clone
}

func (g *Grid) String() string {
	buf := make([]byte, 0, Height*(Width+1))
	for row := 0; row < Height; row++ {
		for col := 0; col < Width; col++ {
			switch g.cells[row][col] {
			case CellHuman:
				buf = append(buf, 'H')
			case CellComputer:
				buf = append(buf, 'C')
			default:
				buf = append(buf, '.')
			}
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}

// FromCells rebuilds a grid from a cell snapshot. When hasLast is set and
// the cell at last holds a stone, it becomes the last permanent move.
func FromCells(cells [Height][Width]Cell, last Move, hasLast bool) *Grid {
	g := NewGrid()
	g.cells = cells
	if hasLast && last.IsValid() && cells[last.Row][last.Col] != CellEmpty {
		g.lastMove = last
		g.hasLast = true
	}
	return g
}
