package grid

import "fmt"

// Direction names one of the four sides of a cell.
type Direction int

const (
	None Direction = iota
	North
	East
	South
	West
)

var (
	// Directions lists the four sides in carving order (north, east, south, west).
	Directions = []Direction{North, East, South, West}

	// neighborOrder is the fixed enumeration order used by Neighbors and BFS.
	neighborOrder = []Direction{East, West, South, North}
)

// Cell is one grid square addressed by column X and row Y.
type Cell struct {
	X int `json:"x"` // X is the column index.
	Y int `json:"y"` // Y is the row index.
}

// Step returns the cell adjacent to c on side d.
func (c Cell) Step(d Direction) Cell {
	dx, dy := d.Delta()
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

// String formats the cell as "x,y", the key format used by visited sets and logs.
func (c Cell) String() string {
	return fmt.Sprintf("%d,%d", c.X, c.Y)
}

// Delta returns the (dx, dy) offset of a step in direction d.
func (d Direction) Delta() (int, int) {
	switch d {
	case North:
		return 0, -1
	case South:
		return 0, 1
	case East:
		return 1, 0
	case West:
		return -1, 0
	default:
		return 0, 0
	}
}

// Opposite returns the direction facing d.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	default:
		return None
	}
}

// String returns the lower-case direction name.
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case East:
		return "east"
	case West:
		return "west"
	default:
		return "none"
	}
}
