/*
Package agent implements the walker that explores a layout on its own.

The agent owns a continuous pose (x, z, heading, pitch) and a navigation state. Every
Tick advances it by one simulation step: it picks a reachable, preferably unvisited
target cell, turns in place toward each path cell before walking straight to it, and
on arrival inspects a painting hanging next to the target. Painting images are loaded
by a collaborator; while that load is in flight the agent waits without blocking.

Manual steering is a one-way switch: any Steer call disables auto mode until
EnableAutoMode is called again.
*/
package agent

import (
	"errors"
	"log"
	"math"
	"math/rand"
	"os"

	"github.com/beka-birhanu/vinom-walker/collision"
	"github.com/beka-birhanu/vinom-walker/grid"
	"github.com/beka-birhanu/vinom-walker/layout"
	"github.com/zyedidia/generic/mapset"
)

// Motion and timing constants, per tick.
const (
	AutoMoveSpeed     = 0.02
	ManualMoveSpeed   = 0.1
	ManualTurnSpeed   = 0.05
	TurnSpeed         = 0.03
	PitchSpeed        = 0.01
	TurnTolerance     = 0.05
	ArriveEpsilon     = 0.05
	InspectPhaseTicks = 90
	InspectPhases     = 3
	StuckCheckTicks   = 60
	MinProgress       = 0.5
)

// Heights above the floor used when looking at a painting.
const (
	EyeHeight            = 1.2
	PaintingCenterHeight = layout.WallHeight / 2
	TitlePlateHeight     = 0.6
)

const (
	initialDistanceCap = 6
	distanceCapStep    = 4
	minVisitedForExit  = 4
	// DefaultExitChance is the probability that a target pick heads for an exit instead.
	DefaultExitChance = 0.2
)

var (
	ErrNilLayout    = errors.New("agent needs a layout")
	ErrNilCollision = errors.New("agent needs a collision model")
)

// Painting is a decorated wall face the agent can inspect.
type Painting struct {
	Face  layout.Face `json:"face"`
	URL   string      `json:"url"`
	Title string      `json:"title"`
	X     float64     `json:"x"` // X is the world x of the painting centre.
	Z     float64     `json:"z"` // Z is the world z of the painting centre.
}

// Paintings is the agent's view of wall decoration.
type Paintings interface {
	// PaintingAt returns a painting hanging on a wall of cell c.
	PaintingAt(c grid.Cell) (Painting, bool)
	// RequestPaintings starts loading images for the walls of c. It reports whether a
	// load was started; the result arrives later through Agent.OnPaintingsLoaded.
	RequestPaintings(c grid.Cell) bool
}

// Config wires an agent to its world.
type Config struct {
	Layout     *layout.Layout
	Collision  *collision.Model
	Paintings  Paintings // Paintings may be nil; arrivals then never inspect.
	Rand       *rand.Rand
	Logger     *log.Logger
	ExitChance float64 // ExitChance is the chance to head for an exit on layouts that have one.
	X, Z       float64
	Heading    float64
}

// Agent is the exploring walker. It is not safe for concurrent use.
type Agent struct {
	layout    *layout.Layout
	collision *collision.Model
	paintings Paintings
	rng       *rand.Rand
	logger    *log.Logger

	x, z    float64
	heading float64
	pitch   float64

	auto  bool
	state State

	target    grid.Cell
	hasTarget bool
	path      []grid.Cell
	cursor    int
	exit      *exitPlan
	visited   mapset.Set[grid.Cell]

	turnTarget float64
	afterTurn  State
	awaiting   grid.Cell
	painting   Painting
	phase      int
	phaseTicks int
	stuckTicks int
	checkX     float64
	checkZ     float64
	exitChance float64
	ticks      uint64
	detours    int
}

// exitPlan is a walk through a door or off the end of an alley to a point outside the grid.
type exitPlan struct {
	side grid.Direction
	x, z float64
}

// New returns an agent in auto mode at the configured pose.
func New(cfg Config) (*Agent, error) {
	if cfg.Layout == nil {
		return nil, ErrNilLayout
	}
	if cfg.Collision == nil {
		return nil, ErrNilCollision
	}

	a := &Agent{
		layout:     cfg.Layout,
		collision:  cfg.Collision,
		paintings:  cfg.Paintings,
		rng:        cfg.Rand,
		logger:     cfg.Logger,
		x:          cfg.X,
		z:          cfg.Z,
		heading:    cfg.Heading,
		auto:       true,
		exitChance: cfg.ExitChance,
	}
	if a.rng == nil {
		a.rng = rand.New(rand.NewSource(1))
	}
	if a.logger == nil {
		a.logger = log.New(os.Stdout, "agent: ", log.LstdFlags)
	}
	a.ResetNavigation()
	return a, nil
}

// Tick advances the agent by one simulation step.
func (a *Agent) Tick() {
	a.ticks++
	if !a.auto {
		return
	}

	switch a.state {
	case Idle, PickingTarget:
		a.pickTarget()
	case Turning:
		a.turn()
	case FollowingPath:
		a.follow()
	case InspectingPainting:
		a.inspect()
	case AwaitingImage:
		// The load completion resumes the agent.
	}
}

// Relocate moves the agent into a new layout at the given pose and drops everything it
// knew about the old one.
func (a *Agent) Relocate(l *layout.Layout, m *collision.Model, x, z, heading float64) {
	a.layout = l
	a.collision = m
	a.x, a.z = x, z
	a.heading = normalizeAngle(heading)
	a.ResetNavigation()
}

// ResetNavigation clears target, path, visited set and any inspection in progress.
func (a *Agent) ResetNavigation() {
	a.clearTarget()
	a.visited = mapset.New[grid.Cell]()
	a.pitch = 0
	a.phase, a.phaseTicks = 0, 0
	a.resetStuckCheck()
	if a.auto {
		a.state = PickingTarget
	} else {
		a.state = Manual
	}
}

// DisableAutoMode hands control to manual steering.
func (a *Agent) DisableAutoMode() {
	if !a.auto {
		return
	}
	a.auto = false
	a.clearTarget()
	a.pitch = 0
	a.state = Manual
}

// EnableAutoMode resumes autonomous exploration from the current pose.
func (a *Agent) EnableAutoMode() {
	a.auto = true
	a.ResetNavigation()
}

// AutoMode reports whether the agent is exploring on its own.
func (a *Agent) AutoMode() bool {
	return a.auto
}

// OnPaintingsLoaded resumes an agent waiting on images for cell c.
func (a *Agent) OnPaintingsLoaded(c grid.Cell, ok bool) {
	if a.state != AwaitingImage || a.awaiting != c {
		return
	}
	if ok && a.paintings != nil {
		if p, found := a.paintings.PaintingAt(c); found {
			a.startInspection(p)
			return
		}
	}
	a.clearTarget()
	a.state = PickingTarget
}

// Steer applies one manual intent, leaving auto mode first.
func (a *Agent) Steer(intent Intent) {
	a.DisableAutoMode()

	switch intent {
	case TurnLeft:
		a.heading = normalizeAngle(a.heading + ManualTurnSpeed)
	case TurnRight:
		a.heading = normalizeAngle(a.heading - ManualTurnSpeed)
	case Forward:
		a.slide(-math.Sin(a.heading)*ManualMoveSpeed, -math.Cos(a.heading)*ManualMoveSpeed)
	case Backward:
		a.slide(math.Sin(a.heading)*ManualMoveSpeed, math.Cos(a.heading)*ManualMoveSpeed)
	case StrafeLeft:
		a.slide(-math.Cos(a.heading)*ManualMoveSpeed, math.Sin(a.heading)*ManualMoveSpeed)
	case StrafeRight:
		a.slide(math.Cos(a.heading)*ManualMoveSpeed, -math.Sin(a.heading)*ManualMoveSpeed)
	}
}

// slide moves each axis independently so the agent glides along walls.
func (a *Agent) slide(dx, dz float64) {
	if a.collision.IsPositionValid(a.x+dx, a.z) {
		a.x += dx
	}
	if a.collision.IsPositionValid(a.x, a.z+dz) {
		a.z += dz
	}
}

// Position returns the world (x, z).
func (a *Agent) Position() (float64, float64) {
	return a.x, a.z
}

// SetPosition moves the agent without touching navigation, used for alley wrap-around.
func (a *Agent) SetPosition(x, z float64) {
	a.x, a.z = x, z
	a.resetStuckCheck()
}

// Heading returns the yaw in radians; heading 0 faces -z.
func (a *Agent) Heading() float64 {
	return a.heading
}

// State returns the current navigation state.
func (a *Agent) State() State {
	return a.state
}

// Cell returns the grid cell under the agent. It may be out of bounds mid-transition.
func (a *Agent) Cell() grid.Cell {
	return a.layout.WorldToCell(a.x, a.z)
}

// Snapshot is a read-only view of the agent for presentation layers.
type Snapshot struct {
	Cell       grid.Cell  `json:"cell"`
	Target     *grid.Cell `json:"target,omitempty"`
	Visited    int        `json:"visited"`
	State      string     `json:"state"`
	Phase      int        `json:"phase"`
	PathLength int        `json:"pathLength"`
	Exiting    bool       `json:"exiting"`
	Auto       bool       `json:"auto"`
	X          float64    `json:"x"`
	Z          float64    `json:"z"`
	Heading    float64    `json:"heading"`
	Pitch      float64    `json:"pitch"`
	Ticks      uint64     `json:"ticks"`
	Detours    int        `json:"detours"` // Detours counts obstruction and stuck turns.
}

// Snapshot returns the current view of the agent.
func (a *Agent) Snapshot() Snapshot {
	s := Snapshot{
		Cell:       a.Cell(),
		Visited:    a.visited.Size(),
		State:      a.state.String(),
		PathLength: len(a.path),
		Exiting:    a.exit != nil,
		Auto:       a.auto,
		X:          a.x,
		Z:          a.z,
		Heading:    a.heading,
		Pitch:      a.pitch,
		Ticks:      a.ticks,
		Detours:    a.detours,
	}
	if a.hasTarget {
		target := a.target
		s.Target = &target
	}
	if a.state == InspectingPainting {
		s.Phase = a.phase
	}
	return s
}

func (a *Agent) clearTarget() {
	a.hasTarget = false
	a.path = nil
	a.cursor = 0
	a.exit = nil
}

func (a *Agent) resetStuckCheck() {
	a.stuckTicks = 0
	a.checkX, a.checkZ = a.x, a.z
}
