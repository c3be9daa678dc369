/*
Package maze provides tools for creating and solving rectangular perfect mazes.

It defines the `Maze` structure, composed of `Cell` objects that carry wall
configurations and an optional quiz marker.

Mazes are carved with a randomized iterative depth-first search, which yields a
spanning tree over the grid: exactly one simple path joins any two cells. After
carving, the solution path from the entrance (top-left) to the exit
(bottom-right) is found with a breadth-first search and quiz cells are spread
along it.
*/
package maze

import (
	"errors"
	"math/rand"
	"strings"
	"time"
)

var (
	ErrInvalidDimensions = errors.New("invalid maze dimensions")
	ErrInvalidCarve      = errors.New("invalid carve request")
)

// Maze represents a rectangular maze consisting of cells with walls.
type Maze struct {
	Height       int            // Number of rows
	Width        int            // Number of columns
	Grid         [][]*Cell      // 2D grid of cells forming the maze, indexed [row][col]
	SolutionPath []CellPosition // Entrance to exit, computed once after carving
}

// New initializes a new maze of the given dimensions, carves it with rng and
// places quizzes along its solution path. A nil rng is seeded from the clock.
func New(rows, cols int, rng *rand.Rand) (*Maze, error) {
	m, err := Blank(rows, cols)
	if err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	m.carve(rng)
	m.SolutionPath = m.FindPath(m.Entrance(), m.Exit())
	PlaceQuizzes(m, m.SolutionPath)
	return m, nil
}

// Blank returns a fully walled, uncarved grid.
func Blank(rows, cols int) (*Maze, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	grid := make([][]*Cell, rows)
	for i := range grid {
		grid[i] = make([]*Cell, cols)
		for j := range grid[i] {
			grid[i][j] = &Cell{
				NorthWall: true,
				SouthWall: true,
				EastWall:  true,
				WestWall:  true,
			}
		}
	}

	return &Maze{
		Height: rows,
		Width:  cols,
		Grid:   grid,
	}, nil
}

// Rows returns the number of rows.
func (m *Maze) Rows() int { return m.Height }

// Cols returns the number of columns.
func (m *Maze) Cols() int { return m.Width }

// Entrance is the top-left cell.
func (m *Maze) Entrance() CellPosition { return CellPosition{Row: 0, Col: 0} }

// Exit is the bottom-right cell.
func (m *Maze) Exit() CellPosition { return CellPosition{Row: m.Height - 1, Col: m.Width - 1} }

// InBound reports whether the position lies inside the grid.
func (m *Maze) InBound(row, col int) bool {
	return row >= 0 && row < m.Height && col >= 0 && col < m.Width
}

// Cell returns the cell at pos, or nil when pos is out of bounds.
func (m *Maze) Cell(pos CellPosition) *Cell {
	if !m.InBound(pos.Row, pos.Col) {
		return nil
	}
	return m.Grid[pos.Row][pos.Col]
}

// CanMove reports whether a step from pos in direction d stays inside the grid
// and crosses no wall.
func (m *Maze) CanMove(pos CellPosition, d Direction) bool {
	to := pos.Step(d)
	if !d.Valid() || !m.InBound(pos.Row, pos.Col) || !m.InBound(to.Row, to.Col) {
		return false
	}
	return !m.Grid[pos.Row][pos.Col].HasWall(d)
}

// IsQuizCell reports whether pos carries a quiz marker.
func (m *Maze) IsQuizCell(pos CellPosition) bool {
	c := m.Cell(pos)
	return c != nil && c.Quiz
}

// Carve removes the wall pair between pos and its neighbour in direction d.
func (m *Maze) Carve(pos CellPosition, d Direction) error {
	to := pos.Step(d)
	if !d.Valid() || !m.InBound(pos.Row, pos.Col) || !m.InBound(to.Row, to.Col) {
		return ErrInvalidCarve
	}
	m.Grid[pos.Row][pos.Col].setWall(d, false)
	m.Grid[to.Row][to.Col].setWall(d.Opposite(), false)
	return nil
}

// unvisitedNeighbors lists the directions from pos that lead to uncarved cells.
func (m *Maze) unvisitedNeighbors(pos CellPosition) []Direction {
	var result []Direction
	for _, d := range neighborOrder {
		n := pos.Step(d)
		if m.InBound(n.Row, n.Col) && !m.Grid[n.Row][n.Col].visited {
			result = append(result, d)
		}
	}
	return result
}

// carve runs the randomized depth-first backtracker from the entrance.
func (m *Maze) carve(rng *rand.Rand) {
	start := m.Entrance()
	m.Grid[start.Row][start.Col].visited = true
	stack := []CellPosition{start}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		neighbors := m.unvisitedNeighbors(current)
		if len(neighbors) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		d := neighbors[rng.Intn(len(neighbors))]
		_ = m.Carve(current, d)
		next := current.Step(d)
		m.Grid[next.Row][next.Col].visited = true
		stack = append(stack, next)
	}

	for _, row := range m.Grid {
		for _, c := range row {
			c.visited = false
		}
	}
}

// String draws the maze as ASCII art for debugging and test failure output.
// The entrance is marked S, the exit E and quiz cells ?.
func (m *Maze) String() string {
	var b strings.Builder

	b.WriteByte('+')
	for col := 0; col < m.Width; col++ {
		b.WriteString("---+")
	}
	b.WriteByte('\n')

	for row := 0; row < m.Height; row++ {
		var walls strings.Builder
		walls.WriteByte('+')

		b.WriteByte('|')
		for col := 0; col < m.Width; col++ {
			pos := CellPosition{Row: row, Col: col}
			cell := m.Grid[row][col]

			b.WriteByte(' ')
			b.WriteByte(m.marker(pos))
			b.WriteByte(' ')
			b.WriteByte(pick(cell.EastWall, '|', ' '))

			side := pick(cell.SouthWall, '-', ' ')
			walls.Write([]byte{side, side, side, '+'})
		}
		b.WriteByte('\n')
		b.WriteString(walls.String())
		b.WriteByte('\n')
	}

	return b.String()
}

func (m *Maze) marker(pos CellPosition) byte {
	switch {
	case pos == m.Entrance():
		return 'S'
	case pos == m.Exit():
		return 'E'
	case m.Grid[pos.Row][pos.Col].Quiz:
		return '?'
	}
	return ' '
}

func pick(cond bool, yes, no byte) byte {
	if cond {
		return yes
	}
	return no
}
