package maze

const (
	// minQuizPathLength is the shortest solution path that still gets quizzes.
	minQuizPathLength = 6

	// largeMazeDimension is the size above which two quizzes are placed.
	largeMazeDimension = 10
)

// QuizCount returns how many quizzes a maze of the given size receives when
// its solution path is long enough.
func QuizCount(rows, cols int) int {
	if max(rows, cols) > largeMazeDimension {
		return 2
	}
	return 1
}

// PlaceQuizzes flags evenly spaced interior cells of path as quiz cells and
// returns how many were placed. The first and last cells are never flagged.
func PlaceQuizzes(m *Maze, path []CellPosition) int {
	if len(path) < minQuizPathLength {
		return 0
	}

	count := QuizCount(m.Height, m.Width)
	step := len(path) / (count + 1)

	placed := 0
	for i := 1; i <= count; i++ {
		idx := i * step
		if idx <= 0 || idx >= len(path)-1 {
			continue
		}
		cell := m.Cell(path[idx])
		if cell == nil || cell.Quiz {
			continue
		}
		cell.Quiz = true
		placed++
	}
	return placed
}

// QuizCells returns the positions of all quiz cells in row-major order.
func (m *Maze) QuizCells() []CellPosition {
	var cells []CellPosition
	for r, row := range m.Grid {
		for c, cell := range row {
			if cell.Quiz {
				cells = append(cells, CellPosition{Row: r, Col: c})
			}
		}
	}
	return cells
}
