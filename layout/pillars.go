package layout

import (
	"math/rand"

	"github.com/beka-birhanu/vinom-walker/config"
	"github.com/beka-birhanu/vinom-walker/grid"
)

const (
	targetPillars     = 16
	pillarBatches     = 100
	pillarDraws       = 200
	pillarEdgeMargin  = 2
	pillarGridMargin  = 4
	pillarGridSpacing = 3
)

// generatePillars returns a walled room with isolated 1×1 pillars and four centred doors.
func generatePillars(size int, rng *rand.Rand, o *options) (*Layout, error) {
	g, err := grid.New(size, false)
	if err != nil {
		return nil, err
	}
	setBoundary(g)

	l := &Layout{Mode: PillarField, Size: size, Grid: g, Doors: centredDoors(size)}

	useRandom := o.pillarPattern == PillarRandom ||
		(o.pillarPattern == PillarAny && rng.Float64() < 0.5)
	if useRandom {
		if pillars, ok := randomPillars(size, rng); ok {
			l.Pillars = pillars
			l.Pattern = PillarRandom
		} else {
			o.logger.Printf("%s[INFO]%s random pillar placement failed at size %d, using regular grid", config.LogInfoColor, config.LogColorReset, size)
		}
	}
	if l.Pillars == nil {
		l.Pillars = regularPillars(size)
		l.Pattern = PillarRegular
	}

	for _, p := range l.Pillars {
		for _, d := range grid.Directions {
			setWall(g, p, d, true)
		}
	}
	return l, nil
}

// randomPillars rejection-samples targetPillars positions, retrying whole batches.
func randomPillars(size int, rng *rand.Rand) ([]grid.Cell, bool) {
	for batch := 0; batch < pillarBatches; batch++ {
		pillars := make([]grid.Cell, 0, targetPillars)
		for draw := 0; len(pillars) < targetPillars && draw < pillarDraws; draw++ {
			c := grid.Cell{X: rng.Intn(size), Y: rng.Intn(size)}
			if validPillar(c, pillars, size) {
				pillars = append(pillars, c)
			}
		}
		if len(pillars) == targetPillars {
			return pillars, true
		}
	}
	return nil, false
}

// validPillar enforces the edge margin, the clear spawn square and pillar separation.
func validPillar(c grid.Cell, existing []grid.Cell, size int) bool {
	if c.X < pillarEdgeMargin || c.X >= size-pillarEdgeMargin || c.Y < pillarEdgeMargin || c.Y >= size-pillarEdgeMargin {
		return false
	}
	if inSpawnSquare(c, size) {
		return false
	}
	for _, p := range existing {
		if chebyshev(c, p) <= 1 {
			return false
		}
	}
	return true
}

// regularPillars lays pillars on a lattice, skipping the spawn square.
func regularPillars(size int) []grid.Cell {
	pillars := []grid.Cell{}
	for y := pillarGridMargin; y < size-pillarGridMargin; y += pillarGridSpacing {
		for x := pillarGridMargin; x < size-pillarGridMargin; x += pillarGridSpacing {
			c := grid.Cell{X: x, Y: y}
			if !inSpawnSquare(c, size) {
				pillars = append(pillars, c)
			}
		}
	}
	return pillars
}

func inSpawnSquare(c grid.Cell, size int) bool {
	center := size / 2
	return abs(c.X-center) <= 1 && abs(c.Y-center) <= 1
}

func chebyshev(a, b grid.Cell) int {
	return max(abs(a.X-b.X), abs(a.Y-b.Y))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
