package domain

import (
	"errors"

	"github.com/beka-birhanu/vinom-walker/agent"
	"github.com/google/uuid"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrTooManySessions = errors.New("too many running sessions")
	ErrNoHistory       = errors.New("layout history is not configured")
)

// ImageProgress counts painting loads for the current layout.
type ImageProgress struct {
	Pending int `json:"pending"`
	Loaded  int `json:"loaded"`
	Failed  int `json:"failed"`
	Stale   int `json:"stale"` // Stale counts results discarded after a layout change.
}

// SessionSnapshot is the read-only view of a running session.
type SessionSnapshot struct {
	ID          uuid.UUID      `json:"id"`
	Mode        string         `json:"mode"`
	Size        int            `json:"size"`
	Rooms       int            `json:"rooms"`
	Seed        int64          `json:"seed"`
	Generation  uint64         `json:"generation"`
	Transitions int            `json:"transitions"`
	Paintings   int            `json:"paintings"`
	Images      ImageProgress  `json:"images"`
	Agent       agent.Snapshot `json:"agent"`
}
