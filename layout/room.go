package layout

import (
	"github.com/beka-birhanu/vinom-walker/grid"
)

// generateOpenRoom returns an empty room enclosed by the perimeter only.
func generateOpenRoom(size int, o *options) (*Layout, error) {
	g, err := grid.New(size, false)
	if err != nil {
		return nil, err
	}
	setBoundary(g)

	l := &Layout{Mode: OpenRoom, Size: size, Grid: g}
	if o.openRoomDoors {
		l.Doors = centredDoors(size)
	}
	return l, nil
}

// generateAlley returns a single corridor along row size/2. The corridor has no east or
// west end; the walker wraps around instead.
func generateAlley(size int) (*Layout, error) {
	g, err := grid.New(size, false)
	if err != nil {
		return nil, err
	}

	row := AlleyRow(size)
	for x := 0; x < size; x++ {
		g.Horizontal[row][x] = true
		g.Horizontal[row+1][x] = true
	}

	return &Layout{Mode: Alley, Size: size, Grid: g}, nil
}

// generatePolygon returns an empty grid; the gallery outline lives outside the grid model.
func generatePolygon(size int, o *options) (*Layout, error) {
	g, err := grid.New(size, false)
	if err != nil {
		return nil, err
	}

	l := &Layout{Mode: Polygon, Size: size, Grid: g}
	radius := o.polygonRadius
	if radius <= 0 {
		radius = l.HalfExtent()
	}
	sides := o.polygonSides
	if sides < 3 {
		sides = defaultPolygonSides
	}
	l.Shape = &PolygonShape{Sides: sides, Radius: radius}
	return l, nil
}

// AlleyRow is the corridor row of an alley of the given size.
func AlleyRow(size int) int {
	return size / 2
}
