// Package pathfind finds shortest cell paths over a wall grid.
package pathfind

import (
	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/paths"
	"github.com/beka-birhanu/vinom-walker/grid"
)

// wallPath implements paths.Pather over the open walls of a grid. Cells rejected by
// allow are never returned as neighbours.
type wallPath struct {
	g     *grid.WallGrid
	allow func(grid.Cell) bool
}

// Neighbors lists the connected neighbours of p in East, West, South, North order.
func (wp *wallPath) Neighbors(p gruid.Point) []gruid.Point {
	nbs := wp.g.ConnectedNeighbors(cellOf(p))
	points := make([]gruid.Point, 0, len(nbs))
	for _, c := range nbs {
		if wp.allow != nil && !wp.allow(c) {
			continue
		}
		points = append(points, pointOf(c))
	}
	return points
}

func pointOf(c grid.Cell) gruid.Point {
	return gruid.Point{X: c.X, Y: c.Y}
}

func cellOf(p gruid.Point) grid.Cell {
	return grid.Cell{X: p.X, Y: p.Y}
}

func newPathRange(g *grid.WallGrid) *paths.PathRange {
	return paths.NewPathRange(gruid.NewRange(0, 0, g.Size, g.Size))
}

// unbounded is a cost no path on g can reach.
func unbounded(g *grid.WallGrid) int {
	return g.Size * g.Size
}

// FindPath returns the shortest path from start to goal, both inclusive.
// Ties resolve East, West, South, North, so the same grid always gives the same path.
// An empty path means the cells are out of bounds or not connected.
func FindPath(start, goal grid.Cell, g *grid.WallGrid) []grid.Cell {
	return FindPathWithin(start, goal, g, nil)
}

// FindPathWithin is FindPath restricted to cells accepted by allow. A nil allow accepts
// every cell. The start cell is always accepted.
func FindPathWithin(start, goal grid.Cell, g *grid.WallGrid, allow func(grid.Cell) bool) []grid.Cell {
	if g == nil || !g.InBounds(start) || !g.InBounds(goal) {
		return nil
	}
	if allow != nil && !allow(goal) {
		return nil
	}
	if start == goal {
		return []grid.Cell{start}
	}

	wp := &wallPath{g: g, allow: allow}
	if allow != nil {
		wp.allow = func(c grid.Cell) bool { return c == start || allow(c) }
	}

	// Distances to the goal; the path walks downhill from start.
	pr := newPathRange(g)
	maxCost := unbounded(g)
	pr.BreadthFirstMap(wp, []gruid.Point{pointOf(goal)}, maxCost)

	p := pointOf(start)
	cost := pr.BreadthFirstMapAt(p)
	if cost > maxCost {
		return nil
	}

	path := make([]grid.Cell, 0, cost+1)
	path = append(path, start)
	for cost > 0 {
		next, ok := downhill(pr, wp, p, cost)
		if !ok {
			return nil
		}
		p, cost = next, cost-1
		path = append(path, cellOf(p))
	}
	return path
}

// downhill returns the first neighbour of p one step closer to the BFS source.
func downhill(pr *paths.PathRange, wp *wallPath, p gruid.Point, cost int) (gruid.Point, bool) {
	for _, q := range wp.Neighbors(p) {
		if pr.BreadthFirstMapAt(q) == cost-1 {
			return q, true
		}
	}
	return p, false
}

// Distances returns the BFS step count from start to every reachable cell.
func Distances(start grid.Cell, g *grid.WallGrid) map[grid.Cell]int {
	return DistancesWithin(start, g, nil)
}

// DistancesWithin is Distances restricted to cells accepted by allow.
func DistancesWithin(start grid.Cell, g *grid.WallGrid, allow func(grid.Cell) bool) map[grid.Cell]int {
	if g == nil {
		return map[grid.Cell]int{}
	}
	return DistancesUpTo(start, g, allow, unbounded(g))
}

// DistancesUpTo is DistancesWithin limited to cells at most maxDist steps from start.
func DistancesUpTo(start grid.Cell, g *grid.WallGrid, allow func(grid.Cell) bool, maxDist int) map[grid.Cell]int {
	dist := make(map[grid.Cell]int)
	if g == nil || !g.InBounds(start) || maxDist < 0 {
		return dist
	}

	dist[start] = 0
	pr := newPathRange(g)
	for _, n := range pr.BreadthFirstMap(&wallPath{g: g, allow: allow}, []gruid.Point{pointOf(start)}, maxDist) {
		dist[cellOf(n.P)] = n.Cost
	}
	return dist
}

// Connected reports whether every cell of g is reachable from (0, 0).
func Connected(g *grid.WallGrid) bool {
	if g == nil || g.Size <= 0 {
		return false
	}

	pr := newPathRange(g)
	pr.CCMap(&wallPath{g: g}, gruid.Point{})
	for y := 0; y < g.Size; y++ {
		for x := 0; x < g.Size; x++ {
			if pr.CCMapAt(gruid.Point{X: x, Y: y}) == -1 {
				return false
			}
		}
	}
	return true
}
