package sessionapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/beka-birhanu/vinom-walker/agent"
	dmn "github.com/beka-birhanu/vinom-walker/domain"
	"github.com/beka-birhanu/vinom-walker/layout"
	"github.com/beka-birhanu/vinom-walker/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const historyTimeout = 2 * time.Second

// SessionController manages walker sessions and their layout history.
type SessionController struct {
	sessions    i.SessionManager
	defaultMode layout.Mode
	defaultSize int
}

// NewSessionController initializes a SessionController. New sessions without a mode or
// size use the given defaults.
func NewSessionController(sm i.SessionManager, defaultMode layout.Mode, defaultSize int) (*SessionController, error) {
	if sm == nil {
		return nil, errors.New("session controller needs a session manager")
	}
	return &SessionController{
		sessions:    sm,
		defaultMode: defaultMode,
		defaultSize: defaultSize,
	}, nil
}

// Register registers the session and layout routes.
func (sc *SessionController) Register(route *gin.RouterGroup) {
	sessions := route.Group("/sessions")
	{
		sessions.POST("", sc.create)
		sessions.GET("", sc.list)
		sessions.GET("/:ID", sc.snapshot)
		sessions.GET("/:ID/grid", sc.grid)
		sessions.GET("/:ID/stream", sc.stream)
		sessions.GET("/:ID/layouts", sc.history)
		sessions.POST("/:ID/intents", sc.steer)
		sessions.POST("/:ID/auto", sc.auto)
		sessions.POST("/:ID/regenerate", sc.regenerate)
		sessions.DELETE("/:ID", sc.stop)
	}
	route.GET("/layouts/:ID", sc.replay)
}

func (sc *SessionController) create(ctx *gin.Context) {
	var request NewSessionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil && !errors.Is(err, io.EOF) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mode := sc.defaultMode
	if request.Mode != "" {
		parsed, err := layout.ParseMode(request.Mode)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		mode = parsed
	}
	size := request.Size
	if size == 0 && request.Mode == "" {
		size = sc.defaultSize
	}

	id, err := sc.sessions.NewSession(mode, size)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, &NewSessionResponse{ID: id})
}

func (sc *SessionController) list(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, &SessionListResponse{Sessions: sc.sessions.Sessions()})
}

func (sc *SessionController) snapshot(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	snap, err := sc.sessions.Snapshot(id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, snap)
}

func (sc *SessionController) grid(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	ascii, err := sc.sessions.ASCII(id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.String(http.StatusOK, ascii)
}

func (sc *SessionController) history(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	timeoutCtx, cancel := context.WithTimeout(ctx, historyTimeout)
	defer cancel()

	records, err := sc.sessions.History(timeoutCtx, id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, records)
}

func (sc *SessionController) steer(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	var request IntentRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	intent, err := agent.ParseIntent(request.Intent)
	if err != nil {
		respondError(ctx, err)
		return
	}

	if err := sc.sessions.Steer(id, intent); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusAccepted)
}

func (sc *SessionController) auto(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	var request AutoRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := sc.sessions.SetAuto(id, *request.Enabled); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusAccepted)
}

func (sc *SessionController) regenerate(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	var request RegenerateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	mode, err := layout.ParseMode(request.Mode)
	if err != nil {
		respondError(ctx, err)
		return
	}

	if err := sc.sessions.Regenerate(id, mode, request.Size); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusAccepted)
}

func (sc *SessionController) stop(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	if err := sc.sessions.Stop(id); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (sc *SessionController) replay(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	timeoutCtx, cancel := context.WithTimeout(ctx, historyTimeout)
	defer cancel()

	record, l, err := sc.sessions.Replay(timeoutCtx, id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, &LayoutResponse{Record: record, Grid: l.Grid.String()})
}

// pathID parses the :ID parameter, answering 400 when it is not a uuid.
func pathID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, dmn.ErrSessionNotFound), errors.Is(err, dmn.ErrLayoutNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, layout.ErrUnknownMode), errors.Is(err, layout.ErrInvalidSize),
		errors.Is(err, agent.ErrUnknownIntent), errors.Is(err, dmn.ErrInvalidImageURL),
		errors.Is(err, dmn.ErrEmptyImageTitle):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, dmn.ErrTooManySessions):
		ctx.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
	case errors.Is(err, dmn.ErrNoHistory):
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected error"})
	}
}
