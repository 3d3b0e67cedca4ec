// Package sessionapi exposes walker sessions, layout history and the image queue over HTTP.
package sessionapi

import (
	dmn "github.com/beka-birhanu/vinom-walker/domain"
	"github.com/google/uuid"
)

// NewSessionRequest starts a session. Empty fields fall back to the server defaults.
type NewSessionRequest struct {
	Mode string `json:"mode"`
	Size int    `json:"size" binding:"gte=0,lte=101"`
}

// NewSessionResponse carries the id of a started session.
type NewSessionResponse struct {
	ID uuid.UUID `json:"id"`
}

// SessionListResponse lists running sessions.
type SessionListResponse struct {
	Sessions []uuid.UUID `json:"sessions"`
}

// IntentRequest steers the walker by hand, e.g. {"intent": "turn-left"}.
type IntentRequest struct {
	Intent string `json:"intent" binding:"required"`
}

// AutoRequest switches autonomous exploration on or off.
type AutoRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// RegenerateRequest replaces the session's space.
type RegenerateRequest struct {
	Mode string `json:"mode" binding:"required"`
	Size int    `json:"size" binding:"gte=0,lte=101"`
}

// ImageRequest is one picture to queue.
type ImageRequest struct {
	URL   string `json:"url" binding:"required"`
	Title string `json:"title" binding:"required"`
}

// EnqueueImagesRequest feeds the image queue.
type EnqueueImagesRequest struct {
	Images []ImageRequest `json:"images" binding:"required,min=1,dive"`
}

// QueueResponse reports how many images are waiting.
type QueueResponse struct {
	Queued int64 `json:"queued"`
}

// LayoutResponse is a stored layout rebuilt from its seed.
type LayoutResponse struct {
	Record *dmn.LayoutRecord `json:"record"`
	Grid   string            `json:"grid"`
}
