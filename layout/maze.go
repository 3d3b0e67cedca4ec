package layout

import (
	"fmt"
	"math/rand"

	"github.com/beka-birhanu/vinom-walker/config"
	"github.com/beka-birhanu/vinom-walker/grid"
	"github.com/beka-birhanu/vinom-walker/pathfind"
)

// carveFrame is one level of the backtracking stack: a cell and its shuffled exits.
type carveFrame struct {
	cell grid.Cell
	dirs []grid.Direction
	next int
}

// generateMaze carves a perfect maze by recursive backtracking from (0, 0), then prunes
// interior walls to open the space up.
func generateMaze(size int, rng *rand.Rand, o *options) (*Layout, error) {
	g, err := grid.New(size, true)
	if err != nil {
		return nil, err
	}

	visited := make([][]bool, size)
	for y := range visited {
		visited[y] = make([]bool, size)
	}

	carve(g, grid.Cell{}, visited, rng)
	connectIsolated(g, visited, rng)

	// Pruning only adds edges, so connectivity is checked on the spanning tree.
	if !pathfind.Connected(g) {
		o.logger.Printf("%s[ERROR]%s maze of size %d is disconnected after carving", config.LogErrorColor, config.LogColorReset, size)
		return nil, fmt.Errorf("%w: maze size %d", ErrDisconnected, size)
	}

	prune(g, o.pruneChance, rng)

	l := &Layout{Mode: Maze, Size: size, Grid: g}
	if o.mazeDoors {
		for _, side := range grid.Directions {
			l.Doors = append(l.Doors, doorOn(size, side, rng.Intn(size)))
		}
	}
	return l, nil
}

// carve runs the backtracker from root using an explicit stack. Exits are shuffled when a
// cell is entered, matching the recursive shuffle-then-visit order.
func carve(g *grid.WallGrid, root grid.Cell, visited [][]bool, rng *rand.Rand) {
	visited[root.Y][root.X] = true
	stack := []*carveFrame{{cell: root, dirs: shuffledDirections(rng)}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.next == len(top.dirs) {
			stack = stack[:len(stack)-1]
			continue
		}

		d := top.dirs[top.next]
		top.next++

		n := top.cell.Step(d)
		if !g.InBounds(n) || visited[n.Y][n.X] {
			continue
		}

		setWall(g, top.cell, d, false)
		visited[n.Y][n.X] = true
		stack = append(stack, &carveFrame{cell: n, dirs: shuffledDirections(rng)})
	}
}

// connectIsolated joins any cell the carve missed to a visited neighbour and carves on
// from it. A single-root carve over a 4-connected grid reaches every cell, so this only
// restores the invariant if carving ever changes.
func connectIsolated(g *grid.WallGrid, visited [][]bool, rng *rand.Rand) {
	for y := 0; y < g.Size; y++ {
		for x := 0; x < g.Size; x++ {
			if visited[y][x] {
				continue
			}
			cell := grid.Cell{X: x, Y: y}
			for _, d := range []grid.Direction{grid.West, grid.East, grid.North, grid.South} {
				n := cell.Step(d)
				if g.InBounds(n) && visited[n.Y][n.X] {
					setWall(g, cell, d, false)
					carve(g, cell, visited, rng)
					break
				}
			}
		}
	}
}

// prune clears each interior wall independently with probability p. The perimeter is
// never touched.
func prune(g *grid.WallGrid, p float64, rng *rand.Rand) {
	for y := 1; y < g.Size; y++ {
		for x := 0; x < g.Size; x++ {
			if rng.Float64() < p {
				g.Horizontal[y][x] = false
			}
		}
	}
	for y := 0; y < g.Size; y++ {
		for x := 1; x < g.Size; x++ {
			if rng.Float64() < p {
				g.Vertical[y][x] = false
			}
		}
	}
}

func shuffledDirections(rng *rand.Rand) []grid.Direction {
	dirs := append([]grid.Direction(nil), grid.Directions...)
	rng.Shuffle(len(dirs), func(i, j int) {
		dirs[i], dirs[j] = dirs[j], dirs[i]
	})
	return dirs
}
