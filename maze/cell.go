package maze

import "strings"

// Cell represents a single cell in a maze grid.
// It includes properties for walls on each side and the quiz marker.
type Cell struct {
	NorthWall bool // NorthWall indicates whether there is a wall on the north (top) side of the cell.
	SouthWall bool // SouthWall indicates whether there is a wall on the south (bottom) side of the cell.
	EastWall  bool // EastWall indicates whether there is a wall on the east (right) side of the cell.
	WestWall  bool // WestWall indicates whether there is a wall on the west (left) side of the cell.
	Quiz      bool // Quiz marks a cell on the solution path that opens a quiz when entered.

	visited bool // only meaningful while carving
}

// HasWall reports whether the cell is walled on the side d points to.
func (c *Cell) HasWall(d Direction) bool {
	switch d {
	case North:
		return c.NorthWall
	case South:
		return c.SouthWall
	case East:
		return c.EastWall
	case West:
		return c.WestWall
	default:
		return true
	}
}

func (c *Cell) setWall(d Direction, hasWall bool) {
	switch d {
	case North:
		c.NorthWall = hasWall
	case South:
		c.SouthWall = hasWall
	case East:
		c.EastWall = hasWall
	case West:
		c.WestWall = hasWall
	}
}

// CellPosition represents the position of a cell in the maze grid.
type CellPosition struct {
	Row int `json:"row"` // Row index of the cell
	Col int `json:"col"` // Column index of the cell
}

// Step returns the position one cell away in direction d.
func (cp CellPosition) Step(d Direction) CellPosition {
	return CellPosition{Row: cp.Row + d.DRow, Col: cp.Col + d.DCol}
}

// Direction is a unit move on the grid.
type Direction struct {
	DRow int
	DCol int
}

var (
	North = Direction{DRow: -1, DCol: 0}
	South = Direction{DRow: 1, DCol: 0}
	West  = Direction{DRow: 0, DCol: -1}
	East  = Direction{DRow: 0, DCol: 1}

	// neighborOrder fixes the enumeration order used by carving and search.
	neighborOrder = [4]Direction{North, South, West, East}

	// Directions maps the accepted direction names to unit moves.
	Directions = map[string]Direction{
		"up":    North,
		"north": North,
		"down":  South,
		"south": South,
		"left":  West,
		"west":  West,
		"right": East,
		"east":  East,
	}
)

// ParseDirection resolves a direction name, case-insensitively.
func ParseDirection(name string) (Direction, bool) {
	d, ok := Directions[strings.ToLower(strings.TrimSpace(name))]
	return d, ok
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	return Direction{DRow: -d.DRow, DCol: -d.DCol}
}

// Valid reports whether d is one of the four cardinal unit moves.
func (d Direction) Valid() bool {
	for _, n := range neighborOrder {
		if d == n {
			return true
		}
	}
	return false
}

func (d Direction) String() string {
	switch d {
	case North:
		return "up"
	case South:
		return "down"
	case West:
		return "left"
	case East:
		return "right"
	default:
		return "none"
	}
}
