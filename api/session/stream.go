package sessionapi

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/beka-birhanu/vinom-walker/agent"
	dmn "github.com/beka-birhanu/vinom-walker/domain"
	"github.com/coder/websocket"
	"github.com/gin-gonic/gin"
)

const streamInterval = 100 * time.Millisecond

// stream pushes a snapshot every streamInterval over a websocket and applies intents the
// client sends back as {"intent": "..."} messages.
func (sc *SessionController) stream(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	if _, err := sc.sessions.Snapshot(id); err != nil {
		respondError(ctx, err)
		return
	}

	conn, err := websocket.Accept(ctx.Writer, ctx.Request, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	streamCtx, cancel := context.WithCancel(ctx.Request.Context())
	defer cancel()

	go func() {
		defer cancel()
		for {
			_, data, err := conn.Read(streamCtx)
			if err != nil {
				return
			}
			var request IntentRequest
			if err := json.Unmarshal(data, &request); err != nil {
				continue
			}
			intent, err := agent.ParseIntent(request.Intent)
			if err != nil {
				continue
			}
			_ = sc.sessions.Steer(id, intent)
		}
	}()

	ticker := time.NewTicker(streamInterval)
	defer ticker.Stop()
	for {
		snap, err := sc.sessions.Snapshot(id)
		if errors.Is(err, dmn.ErrSessionNotFound) {
			conn.Close(websocket.StatusGoingAway, "session stopped")
			return
		}
		data, err := json.Marshal(snap)
		if err != nil {
			return
		}
		if err := conn.Write(streamCtx, websocket.MessageText, data); err != nil {
			return
		}

		select {
		case <-streamCtx.Done():
			return
		case <-ticker.C:
		}
	}
}
