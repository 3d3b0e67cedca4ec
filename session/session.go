/*
Package session owns one walker exploring a sequence of generated spaces.

A Session holds the current layout, its collision model, the agent, the paintings hung
so far and a generation token. Every layout change bumps the token before anything else
and cancels the context of in-flight image loads. Load results travel back over a
channel tagged with the generation that requested them and are applied during Tick;
results from an older generation are counted and dropped.
*/
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"os"
	"sync"
	"time"

	"github.com/beka-birhanu/vinom-walker/agent"
	"github.com/beka-birhanu/vinom-walker/collision"
	"github.com/beka-birhanu/vinom-walker/config"
	dmn "github.com/beka-birhanu/vinom-walker/domain"
	"github.com/beka-birhanu/vinom-walker/grid"
	"github.com/beka-birhanu/vinom-walker/layout"
	"github.com/beka-birhanu/vinom-walker/service/i"
	"github.com/google/uuid"
)

const (
	defaultLoadTimeout  = 10 * time.Second
	defaultRecordWindow = 5 * time.Second
	completionBuffer    = 64
)

var (
	ErrClosed = errors.New("session is closed")
)

// Config holds the parameters of a new session.
type Config struct {
	ID         uuid.UUID
	Mode       layout.Mode
	Size       int // Size <= 0 selects DefaultSize(Mode).
	Seed       int64
	Images     i.ImageProvider // Images may be nil; walls then stay bare.
	Layouts    i.LayoutRepo    // Layouts may be nil; nothing is recorded.
	Logger     *log.Logger
	ExitChance float64
	// DoorModes are the spaces a door may lead to. Empty means OpenRoom, BSPRooms and
	// PillarField.
	DoorModes   []layout.Mode
	LoadTimeout time.Duration
}

// imageResult is one finished image load.
type imageResult struct {
	generation uint64
	cell       grid.Cell
	face       layout.Face
	image      *dmn.Image
	err        error
}

// Session is one walker and the space it is in. All exported methods are safe for
// concurrent use.
type Session struct {
	id          uuid.UUID
	rng         *rand.Rand
	images      i.ImageProvider
	layouts     i.LayoutRepo
	logger      *log.Logger
	doorModes   []layout.Mode
	loadTimeout time.Duration

	layout     *layout.Layout
	collision  *collision.Model
	agent      *agent.Agent
	seed       int64
	generation uint64

	paintings   map[layout.Face]agent.Painting
	loading     map[grid.Cell]int
	completions chan imageResult
	loadCtx     context.Context
	cancelLoads context.CancelFunc
	done        chan struct{}
	closed      bool

	pending     int
	loaded      int
	failed      int
	stale       int
	transitions int

	sync.RWMutex
}

// New generates the first layout and places the agent at its centre.
func New(cfg Config) (*Session, error) {
	if cfg.ID == uuid.Nil {
		cfg.ID = uuid.New()
	}
	if cfg.Size <= 0 {
		cfg.Size = DefaultSize(cfg.Mode)
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(os.Stdout, fmt.Sprintf("%s[SESSION %s]%s ", config.ColorCyan, cfg.ID.String()[:8], config.ColorReset), log.LstdFlags)
	}
	if len(cfg.DoorModes) == 0 {
		cfg.DoorModes = []layout.Mode{layout.OpenRoom, layout.BSPRooms, layout.PillarField}
	}
	if cfg.LoadTimeout <= 0 {
		cfg.LoadTimeout = defaultLoadTimeout
	}

	s := &Session{
		id:          cfg.ID,
		rng:         rand.New(rand.NewSource(cfg.Seed)),
		images:      cfg.Images,
		layouts:     cfg.Layouts,
		logger:      cfg.Logger,
		doorModes:   cfg.DoorModes,
		loadTimeout: cfg.LoadTimeout,
		paintings:   make(map[layout.Face]agent.Painting),
		loading:     make(map[grid.Cell]int),
		completions: make(chan imageResult, completionBuffer),
		done:        make(chan struct{}),
	}
	s.loadCtx, s.cancelLoads = context.WithCancel(context.Background())

	if err := s.install(cfg.Mode, cfg.Size); err != nil {
		return nil, err
	}

	x, z, heading := s.startPose()
	a, err := agent.New(agent.Config{
		Layout:     s.layout,
		Collision:  s.collision,
		Paintings:  paintingBoard{s},
		Rand:       s.rng,
		Logger:     s.logger,
		ExitChance: cfg.ExitChance,
		X:          x,
		Z:          z,
		Heading:    heading,
	})
	if err != nil {
		return nil, err
	}
	s.agent = a
	s.record()

	s.logger.Printf("%s[INFO]%s started in %s of size %d", config.LogInfoColor, config.LogColorReset, s.layout.Mode, s.layout.Size)
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Tick applies finished image loads, advances the agent one step and handles any
// boundary crossing.
func (s *Session) Tick() {
	s.Lock()
	defer s.Unlock()
	if s.closed {
		return
	}

	s.drain()
	s.agent.Tick()
	s.checkBoundary()
}

// Steer applies a manual intent. Auto mode is switched off first.
func (s *Session) Steer(intent agent.Intent) {
	s.Lock()
	defer s.Unlock()
	s.agent.Steer(intent)
}

// SetAuto switches autonomous exploration on or off.
func (s *Session) SetAuto(enabled bool) {
	s.Lock()
	defer s.Unlock()
	if enabled {
		s.agent.EnableAutoMode()
	} else {
		s.agent.DisableAutoMode()
	}
}

// SetCollisionsEnabled toggles collision checks for the current and future layouts.
func (s *Session) SetCollisionsEnabled(enabled bool) {
	s.Lock()
	defer s.Unlock()
	s.collision.SetCollisionsEnabled(enabled)
}

// Regenerate replaces the space with a new layout and puts the agent at its centre.
func (s *Session) Regenerate(mode layout.Mode, size int) error {
	s.Lock()
	defer s.Unlock()
	if s.closed {
		return ErrClosed
	}
	if size <= 0 {
		size = DefaultSize(mode)
	}

	s.invalidate()
	if err := s.install(mode, size); err != nil {
		return err
	}
	x, z, heading := s.startPose()
	s.agent.Relocate(s.layout, s.collision, x, z, heading)
	s.record()

	s.logger.Printf("%s[INFO]%s regenerated as %s of size %d (generation %d)", config.LogInfoColor, config.LogColorReset, mode, s.layout.Size, s.generation)
	return nil
}

// TransitionRoom moves the agent through the exit side into the next space.
func (s *Session) TransitionRoom(exit grid.Direction) error {
	s.Lock()
	defer s.Unlock()
	if s.closed {
		return ErrClosed
	}
	return s.transition(exit)
}

// Close abandons in-flight loads. The session ignores further ticks.
func (s *Session) Close() {
	s.Lock()
	defer s.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.cancelLoads()
	close(s.done)
}

// Snapshot returns the read-only view of the session.
func (s *Session) Snapshot() *dmn.SessionSnapshot {
	s.RLock()
	defer s.RUnlock()

	return &dmn.SessionSnapshot{
		ID:          s.id,
		Mode:        s.layout.Mode.String(),
		Size:        s.layout.Size,
		Rooms:       s.layout.Rooms,
		Seed:        s.seed,
		Generation:  s.generation,
		Transitions: s.transitions,
		Paintings:   len(s.paintings),
		Images: dmn.ImageProgress{
			Pending: s.pending,
			Loaded:  s.loaded,
			Failed:  s.failed,
			Stale:   s.stale,
		},
		Agent: s.agent.Snapshot(),
	}
}

// Frame is what a renderer needs to draw the current tick.
type Frame struct {
	Layout    *layout.Layout
	Agent     agent.Snapshot
	Paintings []layout.Face
}

// Frame returns the current layout, agent view and painted faces.
func (s *Session) Frame() Frame {
	s.RLock()
	defer s.RUnlock()

	faces := make([]layout.Face, 0, len(s.paintings))
	for f := range s.paintings {
		faces = append(faces, f)
	}
	return Frame{Layout: s.layout, Agent: s.agent.Snapshot(), Paintings: faces}
}

// ASCII renders the grid with the agent as '@', its target as '*' and pillars as '#'.
func (s *Session) ASCII() string {
	s.RLock()
	defer s.RUnlock()

	marks := make(map[grid.Cell]rune)
	for _, p := range s.layout.Pillars {
		marks[p] = '#'
	}
	snap := s.agent.Snapshot()
	if snap.Target != nil {
		marks[*snap.Target] = '*'
	}
	if s.layout.Grid.InBounds(snap.Cell) {
		marks[snap.Cell] = '@'
	}
	return s.layout.Grid.Render(marks)
}

// install generates and activates a layout. The caller holds the lock.
func (s *Session) install(mode layout.Mode, size int) error {
	seed := s.rng.Int63()
	l, err := layout.Generate(mode, size, rand.New(rand.NewSource(seed)), layout.WithLogger(s.logger))
	if err != nil {
		s.logger.Printf("%s[ERROR]%s generating %s of size %d: %s", config.LogErrorColor, config.LogColorReset, mode, size, err)
		return err
	}
	m, err := collision.New(l, collision.DefaultRadius)
	if err != nil {
		return err
	}
	if s.collision != nil {
		m.SetCollisionsEnabled(s.collision.CollisionsEnabled())
	}

	s.layout = l
	s.collision = m
	s.seed = seed
	return nil
}

// invalidate starts a new generation: older load results will be discarded on arrival.
func (s *Session) invalidate() {
	s.generation++
	s.cancelLoads()
	s.loadCtx, s.cancelLoads = context.WithCancel(context.Background())

	s.paintings = make(map[layout.Face]agent.Painting)
	s.loading = make(map[grid.Cell]int)
	s.pending = 0
}

// startPose is the centre of the middle cell, facing -z.
func (s *Session) startPose() (float64, float64, float64) {
	x, z := s.layout.CellCenter(grid.Cell{X: s.layout.Size / 2, Y: s.layout.Size / 2})
	return x, z, 0
}

// record stores the current layout without blocking the tick.
func (s *Session) record() {
	if s.layouts == nil {
		return
	}
	rec, err := dmn.NewLayoutRecord(dmn.LayoutRecordConfig{
		SessionID:  s.id,
		Generation: s.generation,
		Seed:       s.seed,
		Layout:     s.layout,
	})
	if err != nil {
		s.logger.Printf("%s[ERROR]%s building layout record: %s", config.LogErrorColor, config.LogColorReset, err)
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), defaultRecordWindow)
		defer cancel()
		if err := s.layouts.Save(ctx, rec); err != nil {
			s.logger.Printf("%s[ERROR]%s saving layout record %s: %s", config.LogErrorColor, config.LogColorReset, rec.ID, err)
		}
	}()
}
