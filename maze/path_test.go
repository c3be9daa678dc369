package maze

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// corridor builds a blank maze carved into the given moves from the entrance.
func corridor(t *testing.T, rows, cols int, moves ...Direction) *Maze {
	t.Helper()
	m, err := Blank(rows, cols)
	require.NoError(t, err)
	pos := m.Entrance()
	for _, d := range moves {
		require.NoError(t, m.Carve(pos, d))
		pos = pos.Step(d)
	}
	return m
}

func assertValidPath(t *testing.T, m *Maze, path []CellPosition, start, target CellPosition) {
	t.Helper()
	require.NotEmpty(t, path)
	assert.Equal(t, start, path[0])
	assert.Equal(t, target, path[len(path)-1])
	for i := 1; i < len(path); i++ {
		prev, cur := path[i-1], path[i]
		d := Direction{DRow: cur.Row - prev.Row, DCol: cur.Col - prev.Col}
		assert.True(t, m.CanMove(prev, d), "step %v -> %v", prev, cur)
	}
}

func TestFindPathSameCell(t *testing.T) {
	m := corridor(t, 3, 3)
	pos := CellPosition{1, 1}
	assert.Equal(t, []CellPosition{pos}, m.FindPath(pos, pos))
}

func TestFindPathUnreachable(t *testing.T) {
	m := corridor(t, 3, 3, East)
	assert.Empty(t, m.FindPath(CellPosition{0, 0}, CellPosition{2, 2}))
	assert.NotNil(t, m.FindPath(CellPosition{0, 0}, CellPosition{2, 2}))
}

func TestFindPathOutOfBounds(t *testing.T) {
	m := corridor(t, 3, 3, East, East)
	assert.Empty(t, m.FindPath(CellPosition{-1, 0}, CellPosition{0, 2}))
	assert.Empty(t, m.FindPath(CellPosition{0, 0}, CellPosition{0, 3}))
}

func TestFindPathFollowsCorridor(t *testing.T) {
	// Snake: right, right, down, left, left, down, right, right.
	m := corridor(t, 3, 3, East, East, South, West, West, South, East, East)
	path := FindPath(m, m.Entrance(), m.Exit())
	assert.Len(t, path, 9)
	assertValidPath(t, m, path, m.Entrance(), m.Exit())
}

func TestFindPathIsShortestWhenCyclesExist(t *testing.T) {
	// Fully open 3x3 room: any shortest path has Manhattan length.
	m, err := Blank(3, 3)
	require.NoError(t, err)
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			if c < 2 {
				require.NoError(t, m.Carve(CellPosition{r, c}, East))
			}
			if r < 2 {
				require.NoError(t, m.Carve(CellPosition{r, c}, South))
			}
		}
	}

	path := m.FindPath(CellPosition{0, 0}, CellPosition{2, 2})
	assert.Len(t, path, 5)
	assertValidPath(t, m, path, CellPosition{0, 0}, CellPosition{2, 2})
	// Neighbours expand up, down, left, right: the path heads down first.
	assert.Equal(t, CellPosition{1, 0}, path[1])
}

func TestFindPathOnGeneratedMazes(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		rng := rand.New(rand.NewSource(seed))
		m, err := New(10, 10, rng)
		require.NoError(t, err)

		start := CellPosition{rng.Intn(10), rng.Intn(10)}
		target := CellPosition{rng.Intn(10), rng.Intn(10)}

		first := m.FindPath(start, target)
		assertValidPath(t, m, first, start, target)
		assert.Equal(t, first, m.FindPath(start, target), "search must be idempotent")

		// In a perfect maze the reverse path is the same path reversed.
		back := m.FindPath(target, start)
		require.Len(t, back, len(first))
		for i := range first {
			assert.Equal(t, first[i], back[len(back)-1-i])
		}
	}
}
