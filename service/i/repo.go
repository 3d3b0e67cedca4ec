package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-walker/domain"
	"github.com/google/uuid"
)

// LayoutRepo defines the interface for layout record persistence.
type LayoutRepo interface {
	// Save inserts or replaces a layout record.
	Save(ctx context.Context, record *dmn.LayoutRecord) error

	// ByID retrieves a record by its ID.
	// Returns dmn.ErrLayoutNotFound if no record matches.
	ByID(ctx context.Context, id uuid.UUID) (*dmn.LayoutRecord, error)

	// BySession lists a session's records in generation order.
	BySession(ctx context.Context, sessionID uuid.UUID) ([]*dmn.LayoutRecord, error)
}
