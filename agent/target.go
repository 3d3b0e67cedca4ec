package agent

import (
	"math"

	"github.com/beka-birhanu/vinom-walker/config"
	"github.com/beka-birhanu/vinom-walker/grid"
	"github.com/beka-birhanu/vinom-walker/layout"
	"github.com/beka-birhanu/vinom-walker/pathfind"
)

// pickTarget chooses the next cell to walk to. Unvisited cells within a small path
// distance win; the distance cap grows until the size-dependent ceiling, after which any
// reachable cell will do.
func (a *Agent) pickTarget() {
	cur := a.Cell()
	if !a.layout.Grid.InBounds(cur) {
		a.state = Idle
		return
	}
	a.visited.Put(cur)
	a.clearTarget()

	if a.tryExit(cur) {
		return
	}

	candidates := a.candidates()
	a.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	ceiling := max(2*a.layout.Size, initialDistanceCap)
	near := pathfind.DistancesUpTo(cur, a.layout.Grid, a.allow(), ceiling)
	for limit := initialDistanceCap; ; limit += distanceCapStep {
		for _, c := range candidates {
			if d, ok := near[c]; ok && d > 0 && d <= limit && !a.visited.Has(c) && a.setTarget(cur, c) {
				return
			}
		}
		if limit >= ceiling {
			break
		}
	}

	dist := pathfind.DistancesWithin(cur, a.layout.Grid, a.allow())
	for _, c := range candidates {
		if d, ok := dist[c]; ok && d > 0 && a.setTarget(cur, c) {
			return
		}
	}

	// Nowhere to go from here; turn around and try again next tick.
	a.detours++
	a.beginTurn(a.heading+math.Pi/2, PickingTarget)
}

// tryExit occasionally replaces the pick with a walk out of the layout.
func (a *Agent) tryExit(cur grid.Cell) bool {
	if a.exitChance <= 0 || a.visited.Size() < minVisitedForExit || a.rng.Float64() >= a.exitChance {
		return false
	}
	dist := pathfind.DistancesWithin(cur, a.layout.Grid, a.allow())

	type option struct {
		cell grid.Cell
		plan exitPlan
	}
	var options []option

	if a.layout.Wraps() {
		row := layout.AlleyRow(a.layout.Size)
		for _, side := range []grid.Direction{grid.West, grid.East} {
			cell := grid.Cell{X: 0, Y: row}
			if side == grid.East {
				cell.X = a.layout.Size - 1
			}
			options = append(options, option{cell: cell, plan: a.planExit(cell, side)})
		}
	} else {
		for _, d := range a.layout.Doors {
			cell := a.layout.DoorCell(d)
			options = append(options, option{cell: cell, plan: a.planExit(cell, d.Side)})
		}
	}

	reachable := options[:0]
	for _, o := range options {
		if _, ok := dist[o.cell]; ok {
			reachable = append(reachable, o)
		}
	}
	if len(reachable) == 0 {
		return false
	}

	chosen := reachable[a.rng.Intn(len(reachable))]
	if !a.setTarget(cur, chosen.cell) {
		return false
	}
	plan := chosen.plan
	a.exit = &plan
	a.logger.Printf("%s[INFO]%s heading out %s via cell %s", config.LogInfoColor, config.LogColorReset, plan.side, chosen.cell)
	return true
}

// planExit returns the waypoint one cell beyond the boundary from cell c on side.
func (a *Agent) planExit(c grid.Cell, side grid.Direction) exitPlan {
	x, z := a.layout.CellCenter(c)
	dx, dy := side.Delta()
	return exitPlan{
		side: side,
		x:    x + float64(dx)*layout.CellSize,
		z:    z + float64(dy)*layout.CellSize,
	}
}

// setTarget computes the path to c and starts following it.
func (a *Agent) setTarget(cur, c grid.Cell) bool {
	path := pathfind.FindPathWithin(cur, c, a.layout.Grid, a.allow())
	if len(path) == 0 {
		return false
	}

	a.target = c
	a.hasTarget = true
	a.path = path
	a.cursor = 0
	a.state = FollowingPath
	a.resetStuckCheck()
	return true
}

// candidates lists the cells worth walking to in the current layout.
func (a *Agent) candidates() []grid.Cell {
	l := a.layout
	n := l.Size

	var cells []grid.Cell
	switch l.Mode {
	case layout.Alley:
		row := layout.AlleyRow(n)
		for x := 0; x < n; x++ {
			cells = append(cells, grid.Cell{X: x, Y: row})
		}
	case layout.OpenRoom:
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				if x == 0 || y == 0 || x == n-1 || y == n-1 {
					cells = append(cells, grid.Cell{X: x, Y: y})
				}
			}
		}
	case layout.Polygon:
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				c := grid.Cell{X: x, Y: y}
				if len(l.Faces(c)) > 0 && a.collision.IsCellWalkable(c) {
					cells = append(cells, c)
				}
			}
		}
	}

	if len(cells) > 0 {
		return cells
	}
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			cells = append(cells, grid.Cell{X: x, Y: y})
		}
	}
	return cells
}

// allow restricts paths to cells whose centre the body fits in. Only the polygon gallery
// has cells outside its walls.
func (a *Agent) allow() func(grid.Cell) bool {
	if a.layout.Mode != layout.Polygon {
		return nil
	}
	return a.collision.IsCellWalkable
}
