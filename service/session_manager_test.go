package service

import (
	"context"
	"io"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-walker/agent"
	dmn "github.com/beka-birhanu/vinom-walker/domain"
	"github.com/beka-birhanu/vinom-walker/layout"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryLayouts struct {
	sync.Mutex
	records map[uuid.UUID]*dmn.LayoutRecord
}

func (r *memoryLayouts) Save(_ context.Context, rec *dmn.LayoutRecord) error {
	r.Lock()
	defer r.Unlock()
	if r.records == nil {
		r.records = make(map[uuid.UUID]*dmn.LayoutRecord)
	}
	r.records[rec.ID] = rec
	return nil
}

func (r *memoryLayouts) ByID(_ context.Context, id uuid.UUID) (*dmn.LayoutRecord, error) {
	r.Lock()
	defer r.Unlock()
	rec, ok := r.records[id]
	if !ok {
		return nil, dmn.ErrLayoutNotFound
	}
	return rec, nil
}

func (r *memoryLayouts) BySession(_ context.Context, id uuid.UUID) ([]*dmn.LayoutRecord, error) {
	r.Lock()
	defer r.Unlock()
	out := make([]*dmn.LayoutRecord, 0)
	for _, rec := range r.records {
		if rec.SessionID == id {
			out = append(out, rec)
		}
	}
	return out, nil
}

func newManager(t *testing.T, layouts *memoryLayouts) *SessionManager {
	t.Helper()
	cfg := &SessionManagerConfig{TickRate: 500, Seed: 1, Logger: log.New(io.Discard, "", 0)}
	if layouts != nil {
		cfg.Layouts = layouts
	}
	m, err := NewSessionManager(cfg)
	require.NoError(t, err)
	t.Cleanup(m.StopAll)
	return m
}

func TestSessionLifecycle(t *testing.T) {
	m := newManager(t, nil)

	id, err := m.NewSession(layout.Maze, 8)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{id}, m.Sessions())

	assert.Eventually(t, func() bool {
		snap, err := m.Snapshot(id)
		return err == nil && snap.Agent.Ticks > 50
	}, 2*time.Second, 10*time.Millisecond, "the loop ticks the session")

	grid, err := m.ASCII(id)
	require.NoError(t, err)
	assert.Contains(t, grid, "@")

	require.NoError(t, m.Stop(id))
	assert.Empty(t, m.Sessions())
	assert.ErrorIs(t, m.Stop(id), dmn.ErrSessionNotFound)

	_, err = m.Snapshot(id)
	assert.ErrorIs(t, err, dmn.ErrSessionNotFound)
}

func TestSteerAndAuto(t *testing.T) {
	m := newManager(t, nil)
	id, err := m.NewSession(layout.OpenRoom, 9)
	require.NoError(t, err)

	require.NoError(t, m.Steer(id, agent.TurnLeft))
	snap, err := m.Snapshot(id)
	require.NoError(t, err)
	assert.False(t, snap.Agent.Auto)

	require.NoError(t, m.SetAuto(id, true))
	snap, err = m.Snapshot(id)
	require.NoError(t, err)
	assert.True(t, snap.Agent.Auto)

	missing := uuid.New()
	assert.ErrorIs(t, m.Steer(missing, agent.Forward), dmn.ErrSessionNotFound)
	assert.ErrorIs(t, m.SetAuto(missing, true), dmn.ErrSessionNotFound)
	assert.ErrorIs(t, m.Regenerate(missing, layout.Maze, 5), dmn.ErrSessionNotFound)
}

func TestRegenerate(t *testing.T) {
	m := newManager(t, nil)
	id, err := m.NewSession(layout.OpenRoom, 0)
	require.NoError(t, err)

	require.NoError(t, m.Regenerate(id, layout.PillarField, 0))
	snap, err := m.Snapshot(id)
	require.NoError(t, err)
	assert.Equal(t, "pillars", snap.Mode)
	assert.Equal(t, uint64(1), snap.Generation)
}

func TestHistoryAndReplay(t *testing.T) {
	t.Run("without a repository", func(t *testing.T) {
		m := newManager(t, nil)
		_, err := m.History(context.Background(), uuid.New())
		assert.ErrorIs(t, err, dmn.ErrNoHistory)
		_, _, err = m.Replay(context.Background(), uuid.New())
		assert.ErrorIs(t, err, dmn.ErrNoHistory)
	})

	layouts := &memoryLayouts{}
	m := newManager(t, layouts)
	id, err := m.NewSession(layout.BSPRooms, 21)
	require.NoError(t, err)

	var records []*dmn.LayoutRecord
	require.Eventually(t, func() bool {
		records, err = m.History(context.Background(), id)
		return err == nil && len(records) == 1
	}, time.Second, 10*time.Millisecond)

	record, l, err := m.Replay(context.Background(), records[0].ID)
	require.NoError(t, err)
	assert.Equal(t, records[0], record)
	assert.Equal(t, layout.BSPRooms, l.Mode)
	assert.Equal(t, 21, l.Size)
	assert.Equal(t, record.Rooms, l.Rooms)

	_, _, err = m.Replay(context.Background(), uuid.New())
	assert.ErrorIs(t, err, dmn.ErrLayoutNotFound)
}

func TestTooManySessions(t *testing.T) {
	m := newManager(t, nil)
	for i := 0; i < maxSessions; i++ {
		_, err := m.NewSession(layout.OpenRoom, 3)
		require.NoError(t, err)
	}
	_, err := m.NewSession(layout.OpenRoom, 3)
	assert.ErrorIs(t, err, dmn.ErrTooManySessions)
}
