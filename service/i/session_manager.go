package i

import (
	"context"

	"github.com/beka-birhanu/vinom-walker/agent"
	dmn "github.com/beka-birhanu/vinom-walker/domain"
	"github.com/beka-birhanu/vinom-walker/layout"
	"github.com/google/uuid"
)

// SessionManager runs walker sessions and exposes them by ID.
type SessionManager interface {
	// NewSession starts a session. A non-positive size selects the mode's default.
	NewSession(mode layout.Mode, size int) (uuid.UUID, error)

	// Snapshot returns the session's read-only view.
	Snapshot(id uuid.UUID) (*dmn.SessionSnapshot, error)

	// ASCII returns the current grid with the walker marked.
	ASCII(id uuid.UUID) (string, error)

	// Steer applies a manual intent, switching the session to manual control.
	Steer(id uuid.UUID, intent agent.Intent) error

	// SetAuto switches autonomous exploration on or off.
	SetAuto(id uuid.UUID, enabled bool) error

	// Regenerate replaces the session's layout with a new one of the given mode and size.
	Regenerate(id uuid.UUID, mode layout.Mode, size int) error

	// Stop ends the session and forgets it.
	Stop(id uuid.UUID) error

	// Sessions lists the running sessions.
	Sessions() []uuid.UUID

	// History lists the layouts a session has walked through.
	History(ctx context.Context, id uuid.UUID) ([]*dmn.LayoutRecord, error)

	// Replay rebuilds a stored layout from its seed.
	Replay(ctx context.Context, recordID uuid.UUID) (*dmn.LayoutRecord, *layout.Layout, error)
}
