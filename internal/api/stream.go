package api

import (
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/ericogr/pokebattle/internal/battle"
	"github.com/ericogr/pokebattle/internal/constants"
	"github.com/ericogr/pokebattle/internal/logging"
)

const streamWriteTimeout = 5 * time.Second

type streamFrame struct {
	Events battle.Events `json:"events"`
	Next   int           `json:"next"`
}

// StreamEvents upgrades to a websocket and pushes every event after
// ?since=N as it is appended. Frames are {"events": [...], "next": N}.
// The stream ends when the client goes away.
func (h *BattleHandler) StreamEvents(c *gin.Context) {
	id, ok := battleID(c)
	if !ok {
		return
	}
	since, ok := sinceParam(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	events, next, err := h.battles.Events(ctx, id, since)
	if err != nil {
		writeError(c, err, constants.ErrFailedStreamEvents)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logging.Warn("websocket upgrade failed", logging.Fields{constants.LogFieldBattleID: id, constants.LogFieldError: err.Error()})
		return
	}
	defer conn.Close()

	// Reads only detect the client closing the socket.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	write := func(events battle.Events, next int) bool {
		data, err := json.Marshal(streamFrame{Events: events, Next: next})
		if err != nil {
			logging.Error("failed to encode event frame", err, logging.Fields{constants.LogFieldBattleID: id})
			return false
		}
		_ = conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
		return conn.WriteMessage(websocket.TextMessage, data) == nil
	}
	if !write(events, next) {
		return
	}

	ticker := time.NewTicker(h.pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-gone:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			events, n, err := h.battles.Events(ctx, id, next)
			if err != nil {
				logging.Error("event stream stopped", err, logging.Fields{constants.LogFieldBattleID: id})
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseInternalServerErr, constants.ErrFailedStreamEvents))
				return
			}
			if len(events) == 0 {
				continue
			}
			if !write(events, n) {
				return
			}
			next = n
		}
	}
}
