/*
Package collision decides whether a circular body may stand at a world position of a layout.

A position is invalid when the body's clearance (radius plus half the wall thickness)
reaches a solid wall segment or the grid perimeter. Door spans exempt their boundary
segment and the perimeter bound at that lateral offset; alley layouts have no east/west
bound; polygon layouts only check the distance from the centre.
*/
package collision

import (
	"errors"
	"fmt"
	"math"

	"github.com/beka-birhanu/vinom-walker/grid"
	"github.com/beka-birhanu/vinom-walker/layout"
)

// DefaultRadius is the walker's body radius.
const DefaultRadius = 0.4

var (
	ErrNegativeRadius = errors.New("collision radius must not be negative")
	ErrNilLayout      = errors.New("collision model needs a layout")
)

// Model validates positions against one layout.
type Model struct {
	layout    *layout.Layout
	radius    float64
	clearance float64
	enabled   bool
}

// New returns a model for a body of the given radius moving through l.
func New(l *layout.Layout, radius float64) (*Model, error) {
	if l == nil {
		return nil, ErrNilLayout
	}
	if radius < 0 {
		return nil, fmt.Errorf("%w: %v", ErrNegativeRadius, radius)
	}

	return &Model{
		layout:    l,
		radius:    radius,
		clearance: radius + layout.WallThickness/2,
		enabled:   true,
	}, nil
}

// Radius returns the body radius.
func (m *Model) Radius() float64 {
	return m.radius
}

// Clearance is the minimum distance kept from any wall plane.
func (m *Model) Clearance() float64 {
	return m.clearance
}

// Layout returns the layout the model checks against.
func (m *Model) Layout() *layout.Layout {
	return m.layout
}

// SetCollisionsEnabled turns checking on or off. While off every position is valid.
func (m *Model) SetCollisionsEnabled(enabled bool) {
	m.enabled = enabled
}

// CollisionsEnabled reports whether positions are being checked.
func (m *Model) CollisionsEnabled() bool {
	return m.enabled
}

// IsPositionValid reports whether the body may stand at world (x, z).
func (m *Model) IsPositionValid(x, z float64) bool {
	if !m.enabled {
		return true
	}
	if m.layout.Mode == layout.Polygon {
		return m.insidePolygon(x, z)
	}
	if !m.withinBounds(x, z) {
		return false
	}
	return !m.touchesHorizontal(x, z) && !m.touchesVertical(x, z)
}

// IsCellWalkable reports whether the centre of c is a valid position.
func (m *Model) IsCellWalkable(c grid.Cell) bool {
	if !m.layout.Grid.InBounds(c) {
		return false
	}
	return m.IsPositionValid(m.layout.CellCenter(c))
}

func (m *Model) insidePolygon(x, z float64) bool {
	shape := m.layout.Shape
	if shape == nil {
		return true
	}
	return math.Hypot(x, z) < shape.Radius-m.clearance
}

func (m *Model) withinBounds(x, z float64) bool {
	l := m.layout
	h := l.HalfExtent()

	if !l.Wraps() {
		if x < -h+m.clearance && !l.DoorAt(grid.West, z) {
			return false
		}
		if x > h-m.clearance && !l.DoorAt(grid.East, z) {
			return false
		}
	}
	if z < -h+m.clearance && !l.DoorAt(grid.North, x) {
		return false
	}
	if z > h-m.clearance && !l.DoorAt(grid.South, x) {
		return false
	}
	return true
}

// touchesHorizontal checks the wall rows running along x near (x, z).
func (m *Model) touchesHorizontal(x, z float64) bool {
	l := m.layout
	n := l.Size
	h := l.HalfExtent()

	for row := int(math.Ceil((z + h - m.clearance) / layout.CellSize)); float64(row)*layout.CellSize-h < z+m.clearance; row++ {
		if row < 0 || row > n {
			continue
		}
		if (row == 0 && l.DoorAt(grid.North, x)) || (row == n && l.DoorAt(grid.South, x)) {
			continue
		}
		wallZ := float64(row)*layout.CellSize - h

		first := int(math.Floor((x + h - m.clearance) / layout.CellSize))
		last := int(math.Floor((x + h + m.clearance) / layout.CellSize))
		for col := first; col <= last; col++ {
			idx, ok := m.column(col)
			if !ok || !l.Grid.Horizontal[row][idx] {
				continue
			}
			x0 := float64(col)*layout.CellSize - h
			if segmentDistance(x, x0, x0+layout.CellSize, z-wallZ) < m.clearance {
				return true
			}
		}
	}
	return false
}

// touchesVertical checks the wall columns running along z near (x, z).
func (m *Model) touchesVertical(x, z float64) bool {
	l := m.layout
	n := l.Size
	h := l.HalfExtent()

	for col := int(math.Ceil((x + h - m.clearance) / layout.CellSize)); float64(col)*layout.CellSize-h < x+m.clearance; col++ {
		if col < 0 || col > n {
			continue
		}
		if (col == 0 && l.DoorAt(grid.West, z)) || (col == n && l.DoorAt(grid.East, z)) {
			continue
		}
		wallX := float64(col)*layout.CellSize - h

		first := int(math.Floor((z + h - m.clearance) / layout.CellSize))
		last := int(math.Floor((z + h + m.clearance) / layout.CellSize))
		for row := first; row <= last; row++ {
			if row < 0 || row >= n || !l.Grid.Vertical[row][col] {
				continue
			}
			z0 := float64(row)*layout.CellSize - h
			if segmentDistance(z, z0, z0+layout.CellSize, x-wallX) < m.clearance {
				return true
			}
		}
	}
	return false
}

// column maps a column index to a horizontal-wall index, wrapping on alley layouts.
func (m *Model) column(col int) (int, bool) {
	n := m.layout.Size
	if m.layout.Wraps() {
		return ((col % n) + n) % n, true
	}
	return col, col >= 0 && col < n
}

// segmentDistance is the distance from a point to a wall segment spanning [a0, a1] along
// its own axis, given the point's coordinate along that axis and its offset from the plane.
func segmentDistance(along, a0, a1, offset float64) float64 {
	d := 0.0
	if along < a0 {
		d = a0 - along
	} else if along > a1 {
		d = along - a1
	}
	return math.Hypot(d, offset)
}
