package layout

import (
	"math"

	"github.com/beka-birhanu/vinom-walker/grid"
)

// Door is a passable aperture in an otherwise solid boundary wall. The wall stays in the
// grid for rendering; only collision treats the span as open.
type Door struct {
	Side      grid.Direction // Side is the boundary the door sits on.
	Offset    int            // Offset is the cell index along the side.
	Center    float64        // Center is the world lateral coordinate of the door's middle.
	HalfWidth float64        // HalfWidth is half the passable span.
}

// Contains reports whether the lateral world coordinate lies within the door span.
func (d Door) Contains(lateral float64) bool {
	return math.Abs(lateral-d.Center) <= d.HalfWidth
}

// DoorAt reports whether a door on side permits passage at the lateral coordinate.
// Lateral is x for north/south doors and z for east/west doors.
func (l *Layout) DoorAt(side grid.Direction, lateral float64) bool {
	for _, d := range l.Doors {
		if d.Side == side && d.Contains(lateral) {
			return true
		}
	}
	return false
}

// Door returns the door on side, if any.
func (l *Layout) Door(side grid.Direction) (Door, bool) {
	for _, d := range l.Doors {
		if d.Side == side {
			return d, true
		}
	}
	return Door{}, false
}

// IsDoorWall reports whether the boundary wall on side d of cell c holds a door.
func (l *Layout) IsDoorWall(c grid.Cell, d grid.Direction) bool {
	if !l.onBoundary(c, d) {
		return false
	}
	offset := c.X
	if d == grid.East || d == grid.West {
		offset = c.Y
	}
	for _, door := range l.Doors {
		if door.Side == d && door.Offset == offset {
			return true
		}
	}
	return false
}

// DoorCell returns the in-grid cell a door opens from.
func (l *Layout) DoorCell(d Door) grid.Cell {
	switch d.Side {
	case grid.North:
		return grid.Cell{X: d.Offset, Y: 0}
	case grid.South:
		return grid.Cell{X: d.Offset, Y: l.Size - 1}
	case grid.West:
		return grid.Cell{X: 0, Y: d.Offset}
	default:
		return grid.Cell{X: l.Size - 1, Y: d.Offset}
	}
}

// centredDoors returns one door on the middle cell of every side. For odd sizes the door
// sits exactly on the side's midpoint.
func centredDoors(size int) []Door {
	doors := make([]Door, 0, len(grid.Directions))
	for _, side := range grid.Directions {
		doors = append(doors, doorOn(size, side, size/2))
	}
	return doors
}

// doorOn returns a door of the standard width centred on cell offset along side.
func doorOn(size int, side grid.Direction, offset int) Door {
	return Door{
		Side:      side,
		Offset:    offset,
		Center:    (float64(offset)-float64(size)/2)*CellSize + CellSize/2,
		HalfWidth: DoorWidth / 2,
	}
}

func (l *Layout) onBoundary(c grid.Cell, d grid.Direction) bool {
	switch d {
	case grid.North:
		return c.Y == 0
	case grid.South:
		return c.Y == l.Size-1
	case grid.West:
		return c.X == 0
	case grid.East:
		return c.X == l.Size-1
	}
	return false
}
