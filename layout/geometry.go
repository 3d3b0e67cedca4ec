package layout

import (
	"math"

	"github.com/beka-birhanu/vinom-walker/grid"
)

// World dimensions shared by generation, collision and the agent.
const (
	CellSize      = 2.0
	WallThickness = 0.05
	WallHeight    = 3.0
	DoorWidth     = CellSize * 0.6
)

// HalfExtent is the distance from the world origin to the grid perimeter.
func (l *Layout) HalfExtent() float64 {
	return float64(l.Size) * CellSize / 2
}

// CellCenter returns the world (x, z) of the centre of cell c.
func (l *Layout) CellCenter(c grid.Cell) (float64, float64) {
	return l.lateral(c.X), l.lateral(c.Y)
}

// WorldToCell maps a world position to the cell containing it. The result may be out of
// bounds for positions outside the grid.
func (l *Layout) WorldToCell(x, z float64) grid.Cell {
	half := l.HalfExtent()
	return grid.Cell{
		X: int(math.Floor((x + half) / CellSize)),
		Y: int(math.Floor((z + half) / CellSize)),
	}
}

// lateral is the world coordinate of the centre of grid index i along either axis.
func (l *Layout) lateral(i int) float64 {
	return (float64(i)-float64(l.Size)/2)*CellSize + CellSize/2
}
