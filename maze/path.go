package maze

// FindPath returns the shortest wall-respecting path from start to target,
// both ends included. It is empty when target cannot be reached or either
// position lies outside the grid.
func FindPath(m *Maze, start, target CellPosition) []CellPosition {
	return m.FindPath(start, target)
}

// FindPath runs a breadth-first search over the carved passages.
// Neighbours are expanded in a fixed order, so the result is deterministic for
// a given maze.
func (m *Maze) FindPath(start, target CellPosition) []CellPosition {
	if !m.InBound(start.Row, start.Col) || !m.InBound(target.Row, target.Col) {
		return []CellPosition{}
	}

	parent := map[CellPosition]CellPosition{start: start}
	queue := []CellPosition{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current == target {
			return walkBack(parent, start, target)
		}

		cell := m.Grid[current.Row][current.Col]
		for _, d := range neighborOrder {
			next := current.Step(d)
			if !m.InBound(next.Row, next.Col) || cell.HasWall(d) {
				continue
			}
			if _, seen := parent[next]; seen {
				continue
			}
			parent[next] = current
			queue = append(queue, next)
		}
	}

	return []CellPosition{}
}

// walkBack rebuilds the path from the parent links recorded by the search.
func walkBack(parent map[CellPosition]CellPosition, start, target CellPosition) []CellPosition {
	var reversed []CellPosition
	for pos := target; pos != start; pos = parent[pos] {
		reversed = append(reversed, pos)
	}
	reversed = append(reversed, start)

	path := make([]CellPosition, len(reversed))
	for i, pos := range reversed {
		path[len(reversed)-1-i] = pos
	}
	return path
}
