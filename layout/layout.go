/*
Package layout generates wall grids for every space type the walker can visit.

Each mode is a pure function of (size, rng): the same seed always yields the same Layout,
which is what lets a recorded layout be replayed from its seed alone. Besides the grid a
Layout carries mode-specific metadata such as boundary doors, pillar cells, the BSP room
count and the polygon outline.
*/
package layout

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"

	"github.com/beka-birhanu/vinom-walker/grid"
)

// Mode selects the generation algorithm.
type Mode int

const (
	Maze Mode = iota
	OpenRoom
	Alley
	BSPRooms
	PillarField
	Polygon
)

// PillarPattern selects how pillar cells are placed.
type PillarPattern int

const (
	PillarAny     PillarPattern = iota // PillarAny picks random or regular with equal chance.
	PillarRandom                       // PillarRandom rejection-samples positions, falling back to regular.
	PillarRegular                      // PillarRegular lays pillars on a fixed lattice.
)

const (
	defaultTargetRooms  = 15
	defaultMinRoomSize  = 4
	defaultPruneChance  = 0.3
	defaultPolygonSides = 20
)

var (
	ErrInvalidSize  = errors.New("layout size must be positive")
	ErrUnknownMode  = errors.New("unknown layout mode")
	ErrDisconnected = errors.New("generated grid is not connected")

	modeNames = map[Mode]string{
		Maze:        "maze",
		OpenRoom:    "openroom",
		Alley:       "alley",
		BSPRooms:    "bsp",
		PillarField: "pillars",
		Polygon:     "polygon",
	}

	modeAliases = map[string]Mode{
		"openspace": OpenRoom,
		"complex":   BSPRooms,
		"gallery":   Polygon,
	}
)

// Layout is the result of one generation event. It is not modified after Generate returns.
type Layout struct {
	Mode    Mode
	Size    int
	Grid    *grid.WallGrid
	Doors   []Door
	Pillars []grid.Cell   // Pillars lists enclosed pillar cells (PillarField only).
	Pattern PillarPattern // Pattern records the placement actually used (PillarField only).
	Rooms   int           // Rooms is the number of BSP leaves (BSPRooms only).
	Shape   *PolygonShape // Shape is the enclosing polygon (Polygon only).
}

// PolygonShape is a regular polygon centred on the origin. Radius is the distance from the
// centre to the middle of each side.
type PolygonShape struct {
	Sides  int
	Radius float64
}

type options struct {
	mazeDoors     bool
	openRoomDoors bool
	targetRooms   int
	minRoomSize   int
	pruneChance   float64
	pillarPattern PillarPattern
	polygonSides  int
	polygonRadius float64
	logger        *log.Logger
}

// Option tunes a single Generate call.
type Option func(*options)

// WithMazeDoors declares one random passable door per side in maze mode.
func WithMazeDoors(enabled bool) Option {
	return func(o *options) { o.mazeDoors = enabled }
}

// WithOpenRoomDoors toggles the four centred doors of open-room mode.
func WithOpenRoomDoors(enabled bool) Option {
	return func(o *options) { o.openRoomDoors = enabled }
}

// WithTargetRooms sets the BSP room count goal.
func WithTargetRooms(n int) Option {
	return func(o *options) { o.targetRooms = n }
}

// WithMinRoomSize sets the smallest BSP room side.
func WithMinRoomSize(n int) Option {
	return func(o *options) { o.minRoomSize = n }
}

// WithPruneChance sets the probability of clearing each interior maze wall after carving.
func WithPruneChance(p float64) Option {
	return func(o *options) { o.pruneChance = p }
}

// WithPillarPattern forces the pillar placement strategy.
func WithPillarPattern(p PillarPattern) Option {
	return func(o *options) { o.pillarPattern = p }
}

// WithPolygon sets the gallery outline. A non-positive radius means half the grid extent.
func WithPolygon(sides int, radius float64) Option {
	return func(o *options) {
		o.polygonSides = sides
		o.polygonRadius = radius
	}
}

// WithLogger sets the logger that receives generation warnings.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Generate builds the layout for mode at the given size, drawing randomness from rng only.
func Generate(mode Mode, size int, rng *rand.Rand, opts ...Option) (*Layout, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	o := &options{
		openRoomDoors: true,
		targetRooms:   defaultTargetRooms,
		minRoomSize:   defaultMinRoomSize,
		pruneChance:   defaultPruneChance,
		polygonSides:  defaultPolygonSides,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = log.New(os.Stderr, "layout: ", log.LstdFlags)
	}
	if o.minRoomSize <= 0 {
		o.minRoomSize = defaultMinRoomSize
	}

	switch mode {
	case Maze:
		return generateMaze(size, rng, o)
	case OpenRoom:
		return generateOpenRoom(size, o)
	case Alley:
		return generateAlley(size)
	case BSPRooms:
		return generateBSP(size, rng, o)
	case PillarField:
		return generatePillars(size, rng, o)
	case Polygon:
		return generatePolygon(size, o)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, mode)
	}
}

// Wraps reports whether leaving the grid on the x axis re-enters on the other side.
func (l *Layout) Wraps() bool {
	return l.Mode == Alley
}

// Bounded reports whether the layout is enclosed by a full grid perimeter.
func (l *Layout) Bounded() bool {
	switch l.Mode {
	case Maze, OpenRoom, BSPRooms, PillarField:
		return true
	}
	return false
}

// String returns the mode name.
func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode maps a mode name, or one of its historical scene aliases, to a Mode.
func ParseMode(s string) (Mode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for mode, n := range modeNames {
		if n == name {
			return mode, nil
		}
	}
	if mode, ok := modeAliases[name]; ok {
		return mode, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// setBoundary marks the full perimeter of g solid.
func setBoundary(g *grid.WallGrid) {
	for x := 0; x < g.Size; x++ {
		g.Horizontal[0][x] = true
		g.Horizontal[g.Size][x] = true
	}
	for y := 0; y < g.Size; y++ {
		g.Vertical[y][0] = true
		g.Vertical[y][g.Size] = true
	}
}

// setWall writes the wall on side d of c. c must be in bounds.
func setWall(g *grid.WallGrid, c grid.Cell, d grid.Direction, present bool) {
	switch d {
	case grid.North:
		g.Horizontal[c.Y][c.X] = present
	case grid.South:
		g.Horizontal[c.Y+1][c.X] = present
	case grid.West:
		g.Vertical[c.Y][c.X] = present
	case grid.East:
		g.Vertical[c.Y][c.X+1] = present
	}
}
