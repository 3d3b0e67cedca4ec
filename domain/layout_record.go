package domain

import (
	"errors"
	"time"

	"github.com/beka-birhanu/vinom-walker/layout"
	"github.com/google/uuid"
)

var (
	ErrLayoutNotFound = errors.New("layout record not found")
	ErrMissingSession = errors.New("layout record needs a session id")
)

// DoorRecord is the stored form of a layout door.
type DoorRecord struct {
	Side   string `bson:"side" json:"side"`
	Offset int    `bson:"offset" json:"offset"`
}

// LayoutRecord is one generated layout. Generation is deterministic, so Mode, Size and
// Seed are enough to rebuild the grid; the rest is kept for querying.
type LayoutRecord struct {
	ID         uuid.UUID    `bson:"_id" json:"id"`
	SessionID  uuid.UUID    `bson:"sessionId" json:"sessionId"`
	Generation uint64       `bson:"generation" json:"generation"`
	Mode       string       `bson:"mode" json:"mode"`
	Size       int          `bson:"size" json:"size"`
	Seed       int64        `bson:"seed" json:"seed"`
	Rooms      int          `bson:"rooms" json:"rooms"`
	Pillars    int          `bson:"pillars" json:"pillars"`
	Doors      []DoorRecord `bson:"doors" json:"doors"`
	CreatedAt  time.Time    `bson:"createdAt" json:"createdAt"`
}

// LayoutRecordConfig holds what a session knows when it installs a layout.
type LayoutRecordConfig struct {
	SessionID  uuid.UUID
	Generation uint64
	Seed       int64
	Layout     *layout.Layout
}

// NewLayoutRecord builds the record for a freshly generated layout.
func NewLayoutRecord(config LayoutRecordConfig) (*LayoutRecord, error) {
	if config.SessionID == uuid.Nil {
		return nil, ErrMissingSession
	}
	if config.Layout == nil {
		return nil, errors.New("layout record needs a layout")
	}

	l := config.Layout
	doors := make([]DoorRecord, 0, len(l.Doors))
	for _, d := range l.Doors {
		doors = append(doors, DoorRecord{Side: d.Side.String(), Offset: d.Offset})
	}

	return &LayoutRecord{
		ID:         uuid.New(),
		SessionID:  config.SessionID,
		Generation: config.Generation,
		Mode:       l.Mode.String(),
		Size:       l.Size,
		Seed:       config.Seed,
		Rooms:      l.Rooms,
		Pillars:    len(l.Pillars),
		Doors:      doors,
		CreatedAt:  time.Now().UTC(),
	}, nil
}
