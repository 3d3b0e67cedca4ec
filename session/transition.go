package session

import (
	"math/rand"

	"github.com/beka-birhanu/vinom-walker/agent"
	"github.com/beka-birhanu/vinom-walker/config"
	"github.com/beka-birhanu/vinom-walker/grid"
	"github.com/beka-birhanu/vinom-walker/layout"
)

// DefaultSize is the starting size of each mode.
func DefaultSize(mode layout.Mode) int {
	switch mode {
	case layout.Maze:
		return 10
	case layout.OpenRoom:
		return 13
	case layout.Alley:
		return 20
	case layout.BSPRooms:
		return 25
	case layout.PillarField:
		return 15
	default:
		return 20
	}
}

// NextSpace picks the space behind a door. Alleys lead to alleys of the same size; every
// other layout leads to a random door mode at a random odd size for that mode.
func NextSpace(current *layout.Layout, doorModes []layout.Mode, rng *rand.Rand) (layout.Mode, int) {
	if current.Mode == layout.Alley {
		return layout.Alley, current.Size
	}

	mode := doorModes[rng.Intn(len(doorModes))]
	switch mode {
	case layout.OpenRoom:
		return mode, 9 + 2*rng.Intn(5)
	case layout.BSPRooms:
		return mode, 21 + 2*rng.Intn(5)
	case layout.Maze:
		return mode, 7 + 2*rng.Intn(5)
	default:
		return mode, DefaultSize(mode)
	}
}

// checkBoundary transitions once the agent is outside the grid. The caller holds the lock.
func (s *Session) checkBoundary() {
	if s.layout.Mode == layout.Polygon {
		return
	}

	x, z := s.agent.Position()
	h := s.layout.HalfExtent()

	exit := grid.None
	switch {
	case x < -h:
		exit = grid.West
	case x > h:
		exit = grid.East
	case z < -h:
		exit = grid.North
	case z > h:
		exit = grid.South
	}
	if exit == grid.None {
		return
	}

	if err := s.transition(exit); err != nil {
		s.logger.Printf("%s[ERROR]%s leaving %s: %s", config.LogErrorColor, config.LogColorReset, exit, err)
	}
}

// transition bumps the generation, builds the next space and places the agent at its
// entrance. The caller holds the lock.
func (s *Session) transition(exit grid.Direction) error {
	s.invalidate()

	prev := s.layout
	x, z := s.agent.Position()
	heading := s.agent.Heading()

	mode, size := NextSpace(prev, s.doorModes, s.rng)
	if err := s.install(mode, size); err != nil {
		// Stay in the old space, back at its centre.
		x, z, heading = s.startPose()
		s.agent.Relocate(prev, s.collision, x, z, heading)
		return err
	}

	if s.layout.Wraps() {
		x, z = wrap(x, z, prev, s.layout)
	} else {
		x, z, heading = s.entrance(exit.Opposite())
	}
	s.agent.Relocate(s.layout, s.collision, x, z, heading)
	s.transitions++
	s.record()

	s.logger.Printf("%s[INFO]%s left %s through %s into %s of size %d (generation %d)",
		config.LogInfoColor, config.LogColorReset, prev.Mode, exit, s.layout.Mode, s.layout.Size, s.generation)
	return nil
}

// entrance is the centre of the door cell on side, facing into the room. Layouts without
// a door there fall back to the start pose.
func (s *Session) entrance(side grid.Direction) (float64, float64, float64) {
	door, ok := s.layout.Door(side)
	if !ok {
		return s.startPose()
	}
	x, z := s.layout.CellCenter(s.layout.DoorCell(door))
	dx, dy := side.Delta()
	return x, z, agent.HeadingTo(-float64(dx), -float64(dy))
}

// wrap carries a position that left one end of an alley to the same offset past the other
// end of the next one.
func wrap(x, z float64, from, to *layout.Layout) (float64, float64) {
	span := 2 * to.HalfExtent()
	if x < -from.HalfExtent() {
		x += span
	} else if x > from.HalfExtent() {
		x -= span
	}
	return x, z
}
