/*
Package grid provides the wall grid shared by layout generation, collision and pathfinding.

A WallGrid of size N stores two boolean matrices. Horizontal[y][x] is the wall on top of
cell (x, y), so row 0 is the northern perimeter and row N the southern one. Vertical[y][x]
is the wall on the left of cell (x, y), so column 0 is the western perimeter and column N
the eastern one.

Wall presence here is what gets rendered. Whether a perimeter segment can be walked through
is decided separately by the doors of a layout.
*/
package grid

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrOutOfBounds = errors.New("coordinate out of grid bounds")
	ErrInvalidSize = errors.New("grid size must be positive")
)

// WallGrid is an N×N cell field with horizontal and vertical wall flags.
type WallGrid struct {
	Size       int      // Size is the number of cells per side.
	Horizontal [][]bool // Horizontal is (Size+1)×Size, indexed [y][x].
	Vertical   [][]bool // Vertical is Size×(Size+1), indexed [y][x].
}

// New returns a size×size grid with every wall, perimeter included, set to the value of solid.
func New(size int, solid bool) (*WallGrid, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	horizontal := make([][]bool, size+1)
	for y := range horizontal {
		horizontal[y] = make([]bool, size)
		for x := range horizontal[y] {
			horizontal[y][x] = solid
		}
	}

	vertical := make([][]bool, size)
	for y := range vertical {
		vertical[y] = make([]bool, size+1)
		for x := range vertical[y] {
			vertical[y][x] = solid
		}
	}

	return &WallGrid{Size: size, Horizontal: horizontal, Vertical: vertical}, nil
}

// InBounds reports whether c addresses a cell of the grid.
func (g *WallGrid) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < g.Size && c.Y >= 0 && c.Y < g.Size
}

// HasWall reports whether the wall on side d of cell c is present.
func (g *WallGrid) HasWall(c Cell, d Direction) (bool, error) {
	if !g.InBounds(c) {
		return false, fmt.Errorf("%w: cell %s", ErrOutOfBounds, c)
	}

	switch d {
	case North:
		return g.Horizontal[c.Y][c.X], nil
	case South:
		return g.Horizontal[c.Y+1][c.X], nil
	case West:
		return g.Vertical[c.Y][c.X], nil
	case East:
		return g.Vertical[c.Y][c.X+1], nil
	default:
		return false, fmt.Errorf("unknown direction %d", d)
	}
}

// SetWall sets the wall on side d of cell c.
func (g *WallGrid) SetWall(c Cell, d Direction, present bool) error {
	if !g.InBounds(c) {
		return fmt.Errorf("%w: cell %s", ErrOutOfBounds, c)
	}

	switch d {
	case North:
		g.Horizontal[c.Y][c.X] = present
	case South:
		g.Horizontal[c.Y+1][c.X] = present
	case West:
		g.Vertical[c.Y][c.X] = present
	case East:
		g.Vertical[c.Y][c.X+1] = present
	default:
		return fmt.Errorf("unknown direction %d", d)
	}
	return nil
}

// HasWallNorth reports whether cell (x, y) has a wall on its north side.
func (g *WallGrid) HasWallNorth(x, y int) (bool, error) {
	return g.HasWall(Cell{X: x, Y: y}, North)
}

// HasWallSouth reports whether cell (x, y) has a wall on its south side.
func (g *WallGrid) HasWallSouth(x, y int) (bool, error) {
	return g.HasWall(Cell{X: x, Y: y}, South)
}

// HasWallEast reports whether cell (x, y) has a wall on its east side.
func (g *WallGrid) HasWallEast(x, y int) (bool, error) {
	return g.HasWall(Cell{X: x, Y: y}, East)
}

// HasWallWest reports whether cell (x, y) has a wall on its west side.
func (g *WallGrid) HasWallWest(x, y int) (bool, error) {
	return g.HasWall(Cell{X: x, Y: y}, West)
}

// AreConnected reports whether a and b are 4-adjacent with no wall between them.
// Non-adjacent in-bounds cells are simply not connected.
func (g *WallGrid) AreConnected(a, b Cell) (bool, error) {
	if !g.InBounds(a) {
		return false, fmt.Errorf("%w: cell %s", ErrOutOfBounds, a)
	}
	if !g.InBounds(b) {
		return false, fmt.Errorf("%w: cell %s", ErrOutOfBounds, b)
	}

	d, ok := directionBetween(a, b)
	if !ok {
		return false, nil
	}
	wall, err := g.HasWall(a, d)
	if err != nil {
		return false, err
	}
	return !wall, nil
}

// Open reports whether the step from c towards d stays in bounds and crosses no wall.
// It is the unchecked fast path used by BFS and collision; callers pass in-bounds cells.
func (g *WallGrid) Open(c Cell, d Direction) bool {
	n := c.Step(d)
	if !g.InBounds(n) {
		return false
	}
	switch d {
	case North:
		return !g.Horizontal[c.Y][c.X]
	case South:
		return !g.Horizontal[c.Y+1][c.X]
	case West:
		return !g.Vertical[c.Y][c.X]
	case East:
		return !g.Vertical[c.Y][c.X+1]
	}
	return false
}

// Neighbors returns the in-bounds 4-neighbours of c in East, West, South, North order.
func (g *WallGrid) Neighbors(c Cell) []Cell {
	result := make([]Cell, 0, 4)
	for _, d := range neighborOrder {
		if n := c.Step(d); g.InBounds(n) {
			result = append(result, n)
		}
	}
	return result
}

// ConnectedNeighbors returns the neighbours of c reachable without crossing a wall,
// in East, West, South, North order.
func (g *WallGrid) ConnectedNeighbors(c Cell) []Cell {
	result := make([]Cell, 0, 4)
	for _, d := range neighborOrder {
		if g.Open(c, d) {
			result = append(result, c.Step(d))
		}
	}
	return result
}

// Clone returns a deep copy of the grid.
func (g *WallGrid) Clone() *WallGrid {
	clone := &WallGrid{
		Size:       g.Size,
		Horizontal: make([][]bool, len(g.Horizontal)),
		Vertical:   make([][]bool, len(g.Vertical)),
	}
	for y := range g.Horizontal {
		clone.Horizontal[y] = append([]bool(nil), g.Horizontal[y]...)
	}
	for y := range g.Vertical {
		clone.Vertical[y] = append([]bool(nil), g.Vertical[y]...)
	}
	return clone
}

// String provides a textual representation of the grid.
func (g *WallGrid) String() string {
	return g.Render(nil)
}

// Render draws the grid as ASCII, putting marks[c] in the middle of marked cells.
func (g *WallGrid) Render(marks map[Cell]rune) string {
	var b strings.Builder

	for y := 0; y <= g.Size; y++ {
		// Wall row above cell row y
		b.WriteString("+")
		for x := 0; x < g.Size; x++ {
			if g.Horizontal[y][x] {
				b.WriteString("---+")
			} else {
				b.WriteString("   +")
			}
		}
		b.WriteString("\n")

		if y == g.Size {
			break
		}

		// Cell row
		for x := 0; x <= g.Size; x++ {
			if g.Vertical[y][x] {
				b.WriteString("|")
			} else {
				b.WriteString(" ")
			}
			if x == g.Size {
				break
			}
			if r, ok := marks[Cell{X: x, Y: y}]; ok {
				b.WriteString(" " + string(r) + " ")
			} else {
				b.WriteString("   ")
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

func directionBetween(a, b Cell) (Direction, bool) {
	for _, d := range Directions {
		if a.Step(d) == b {
			return d, true
		}
	}
	return None, false
}
