package service

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/beka-birhanu/vinom-walker/agent"
	"github.com/beka-birhanu/vinom-walker/config"
	dmn "github.com/beka-birhanu/vinom-walker/domain"
	"github.com/beka-birhanu/vinom-walker/layout"
	"github.com/beka-birhanu/vinom-walker/service/i"
	"github.com/beka-birhanu/vinom-walker/session"
	"github.com/google/uuid"
)

const (
	defaultTickRate = 60
	maxSessions     = 64
)

// walker is a running session and the loop ticking it.
type walker struct {
	session *session.Session
	stop    chan struct{}
	done    chan struct{}
}

// SessionManager runs every session on its own ticker.
type SessionManager struct {
	sessions   map[uuid.UUID]*walker
	images     i.ImageProvider
	layouts    i.LayoutRepo
	tickEvery  time.Duration
	exitChance float64
	rng        *rand.Rand
	logger     *log.Logger
	sync.RWMutex
}

// SessionManagerConfig holds the collaborators shared by all sessions.
type SessionManagerConfig struct {
	Images     i.ImageProvider // Images may be nil.
	Layouts    i.LayoutRepo    // Layouts may be nil; History and Replay then fail.
	TickRate   int             // Ticks per second, defaults to 60.
	ExitChance float64
	Seed       int64 // Seed 0 seeds from the clock.
	Logger     *log.Logger
}

func NewSessionManager(c *SessionManagerConfig) (*SessionManager, error) {
	if c.TickRate <= 0 {
		c.TickRate = defaultTickRate
	}
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
	if c.Logger == nil {
		c.Logger = log.New(os.Stdout, "[SESSIONS] ", log.LstdFlags)
	}

	return &SessionManager{
		sessions:   make(map[uuid.UUID]*walker),
		images:     c.Images,
		layouts:    c.Layouts,
		tickEvery:  time.Second / time.Duration(c.TickRate),
		exitChance: c.ExitChance,
		rng:        rand.New(rand.NewSource(c.Seed)),
		logger:     c.Logger,
	}, nil
}

// NewSession generates a space and starts ticking a walker through it.
func (m *SessionManager) NewSession(mode layout.Mode, size int) (uuid.UUID, error) {
	m.Lock()
	defer m.Unlock()

	if len(m.sessions) >= maxSessions {
		m.logger.Printf("%s[ERROR]%s refusing session: %d already running", config.LogErrorColor, config.LogColorReset, len(m.sessions))
		return uuid.Nil, dmn.ErrTooManySessions
	}

	id := uuid.New()
	for {
		if _, ok := m.sessions[id]; !ok {
			break
		}
		id = uuid.New()
	}

	s, err := session.New(session.Config{
		ID:         id,
		Mode:       mode,
		Size:       size,
		Seed:       m.rng.Int63(),
		Images:     m.images,
		Layouts:    m.layouts,
		ExitChance: m.exitChance,
		Logger:     log.New(m.logger.Writer(), fmt.Sprintf("%s[SESSION %s]%s ", config.ColorCyan, id.String()[:8], config.ColorReset), m.logger.Flags()),
	})
	if err != nil {
		m.logger.Printf("%s[ERROR]%s creating session: %s", config.LogErrorColor, config.LogColorReset, err)
		return uuid.Nil, err
	}

	w := &walker{session: s, stop: make(chan struct{}), done: make(chan struct{})}
	m.sessions[id] = w
	go m.run(w)

	m.logger.Printf("%s[INFO]%s started session %s in %s", config.LogInfoColor, config.LogColorReset, id, mode)
	return id, nil
}

func (m *SessionManager) run(w *walker) {
	defer close(w.done)
	ticker := time.NewTicker(m.tickEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.session.Tick()
		case <-w.stop:
			return
		}
	}
}

func (m *SessionManager) Snapshot(id uuid.UUID) (*dmn.SessionSnapshot, error) {
	s, err := m.session(id)
	if err != nil {
		return nil, err
	}
	return s.Snapshot(), nil
}

func (m *SessionManager) ASCII(id uuid.UUID) (string, error) {
	s, err := m.session(id)
	if err != nil {
		return "", err
	}
	return s.ASCII(), nil
}

func (m *SessionManager) Steer(id uuid.UUID, intent agent.Intent) error {
	s, err := m.session(id)
	if err != nil {
		return err
	}
	s.Steer(intent)
	return nil
}

func (m *SessionManager) SetAuto(id uuid.UUID, enabled bool) error {
	s, err := m.session(id)
	if err != nil {
		return err
	}
	s.SetAuto(enabled)
	return nil
}

func (m *SessionManager) Regenerate(id uuid.UUID, mode layout.Mode, size int) error {
	s, err := m.session(id)
	if err != nil {
		return err
	}
	return s.Regenerate(mode, size)
}

// Stop halts the session's loop, closes it and forgets it.
func (m *SessionManager) Stop(id uuid.UUID) error {
	m.Lock()
	w, ok := m.sessions[id]
	delete(m.sessions, id)
	m.Unlock()

	if !ok {
		return dmn.ErrSessionNotFound
	}
	m.halt(w)
	m.logger.Printf("%s[INFO]%s stopped session %s", config.LogInfoColor, config.LogColorReset, id)
	return nil
}

// StopAll stops every running session.
func (m *SessionManager) StopAll() {
	m.Lock()
	walkers := m.sessions
	m.sessions = make(map[uuid.UUID]*walker)
	m.Unlock()

	for _, w := range walkers {
		m.halt(w)
	}
}

// Sessions lists running session ids in a stable order.
func (m *SessionManager) Sessions() []uuid.UUID {
	m.RLock()
	defer m.RUnlock()

	ids := make([]uuid.UUID, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(a, b int) bool { return ids[a].String() < ids[b].String() })
	return ids
}

func (m *SessionManager) History(ctx context.Context, id uuid.UUID) ([]*dmn.LayoutRecord, error) {
	if m.layouts == nil {
		return nil, dmn.ErrNoHistory
	}
	return m.layouts.BySession(ctx, id)
}

// Replay regenerates a recorded layout from its mode, size and seed.
func (m *SessionManager) Replay(ctx context.Context, recordID uuid.UUID) (*dmn.LayoutRecord, *layout.Layout, error) {
	if m.layouts == nil {
		return nil, nil, dmn.ErrNoHistory
	}
	record, err := m.layouts.ByID(ctx, recordID)
	if err != nil {
		return nil, nil, err
	}
	mode, err := layout.ParseMode(record.Mode)
	if err != nil {
		return nil, nil, err
	}
	l, err := layout.Generate(mode, record.Size, rand.New(rand.NewSource(record.Seed)), layout.WithLogger(m.logger))
	if err != nil {
		return nil, nil, err
	}
	return record, l, nil
}

func (m *SessionManager) session(id uuid.UUID) (*session.Session, error) {
	m.RLock()
	defer m.RUnlock()
	w, ok := m.sessions[id]
	if !ok {
		return nil, dmn.ErrSessionNotFound
	}
	return w.session, nil
}

func (m *SessionManager) halt(w *walker) {
	close(w.stop)
	<-w.done
	w.session.Close()
}
