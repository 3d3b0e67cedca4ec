package layout

import (
	"math"

	"github.com/beka-birhanu/vinom-walker/grid"
)

// rimReach is how far inside the polygon rim a cell may sit and still see a rim face.
const rimReach = 1.5 * CellSize

// Face is one side of a wall that can hold a painting. Grid faces are addressed by the
// cell they face into and the wall's side of that cell; polygon rim faces use Side and
// leave Dir as grid.None.
type Face struct {
	Cell grid.Cell
	Dir  grid.Direction
	Side int
}

// Faces lists the paintable wall faces around cell c. Door walls never hold paintings.
func (l *Layout) Faces(c grid.Cell) []Face {
	if !l.Grid.InBounds(c) {
		return nil
	}

	if l.Mode == Polygon {
		return l.rimFaces(c)
	}
	if l.Mode == Alley && c.Y != AlleyRow(l.Size) {
		return nil
	}

	var faces []Face
	for _, d := range grid.Directions {
		present, err := l.Grid.HasWall(c, d)
		if err != nil || !present || l.IsDoorWall(c, d) {
			continue
		}
		faces = append(faces, Face{Cell: c, Dir: d})
	}
	return faces
}

// FaceCenter returns the world (x, z) of the middle of face f at floor level.
func (l *Layout) FaceCenter(f Face) (float64, float64) {
	if f.Dir == grid.None && l.Shape != nil {
		theta := l.sideAngle(f.Side)
		return math.Cos(theta) * l.Shape.Radius, math.Sin(theta) * l.Shape.Radius
	}

	x, z := l.CellCenter(f.Cell)
	dx, dy := f.Dir.Delta()
	return x + float64(dx)*CellSize/2, z + float64(dy)*CellSize/2
}

func (l *Layout) rimFaces(c grid.Cell) []Face {
	if l.Shape == nil || l.Shape.Sides < 3 {
		return nil
	}

	x, z := l.CellCenter(c)
	if math.Hypot(x, z) < l.Shape.Radius-rimReach {
		return nil
	}

	step := 2 * math.Pi / float64(l.Shape.Sides)
	angle := math.Atan2(z, x)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	side := int(angle/step) % l.Shape.Sides
	return []Face{{Cell: c, Dir: grid.None, Side: side}}
}

// sideAngle is the direction from the origin to the middle of polygon side i.
func (l *Layout) sideAngle(i int) float64 {
	step := 2 * math.Pi / float64(l.Shape.Sides)
	return float64(i)*step + step/2
}
