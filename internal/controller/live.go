package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"review-lifecycle-api/internal/entity"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo"
	log "github.com/sirupsen/logrus"
)

const (
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingPeriod   = (pongWait * 9) / 10
	maxFrameSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// liveFrame is what a client sends over the feed: {"type":"auth","token":...}
// after signing in or refreshing, {"type":"signout"} after signing out.
type liveFrame struct {
	Type  string `json:"type"`
	Token string `json:"token"`
}

// /subjects/:subjectId/reviews/live
func (h *reviewRoutesHandler) FollowReviews(c echo.Context) error {
	subjectId := c.Param("subjectId")

	conn, err := upgrader.Upgrade(c.Response().Writer, c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	updates, stop := h.reviewService.SubscribeReviewUpdates(ctx, subjectId)
	defer stop()

	authChanges := make(chan *entity.Session)
	go h.readFrames(ctx, cancel, conn, authChanges)

	feed := h.reviewService.FollowVisibleReviews(ctx, subjectId, sessionFrom(c), authChanges, updates)

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case reviews, ok := <-feed:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return nil
			}
			if err := conn.WriteJSON(reviews); err != nil {
				log.WithError(err).WithField("subject_id", subjectId).Debug("live feed write failed")
				return nil
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return nil
			}
		}
	}
}

// readFrames turns client frames into session changes until the connection
// closes, then cancels the feed.
func (h *reviewRoutesHandler) readFrames(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, authChanges chan<- *entity.Session) {
	defer cancel()

	conn.SetReadLimit(maxFrameSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.WithError(err).Debug("live feed closed unexpectedly")
			}
			return
		}

		var frame liveFrame
		if err := json.Unmarshal(message, &frame); err != nil {
			log.WithError(err).Debug("ignoring malformed live feed frame")
			continue
		}

		var session *entity.Session
		switch frame.Type {
		case "auth":
			// an invalid token leaves the viewer signed out
			if session, err = h.tokens.Parse(frame.Token); err != nil {
				log.WithError(err).Debug("live feed token rejected")
			}
		case "signout":
		default:
			continue
		}

		select {
		case authChanges <- session:
		case <-ctx.Done():
			return
		}
	}
}
