package match

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/DhavalSuthar-24/crease/pkg/responses"
)

const (
	writeDeadline = 5 * time.Second
	pongWait      = 30 * time.Second
	pingInterval  = 20 * time.Second
)

// LiveFeed streams persisted snapshots to read-only followers.
type LiveFeed interface {
	Latest(ctx context.Context, matchID string) ([]byte, error)
	Subscribe(ctx context.Context, matchID string) (<-chan []byte, error)
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(_ *http.Request) bool { return true },
}

// Live streams a match's snapshots over a websocket
// @Summary      Live feed
// @Description  Read-only websocket. Sends the latest snapshot on connect, then every persisted snapshot.
// @Tags         Matches
// @Param        id   path  string  true  "Match ID"
// @Success      101
// @Failure      503  {object}  responses.ErrorResponse
// @Router       /matches/{id}/live [get]
func (mc *MatchController) Live(c *gin.Context) {
	if mc.feed == nil {
		responses.SendError(c, http.StatusServiceUnavailable, "Live feed is disabled")
		return
	}
	matchID := c.Param("id")
	rec, err := mc.repo.GetMatchByID(c.Request.Context(), matchID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch match: "+err.Error())
		return
	}
	if rec == nil {
		responses.NotFound(c, "Match")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	updates, err := mc.feed.Subscribe(ctx, matchID)
	if err != nil {
		cancel()
		mc.log.ForMatch(matchID).WithError(err).Warn("live feed: subscribe failed")
		responses.SendError(c, http.StatusServiceUnavailable, "Live feed is unavailable")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		cancel()
		mc.log.ForMatch(matchID).WithError(err).Debug("live feed: upgrade failed")
		return
	}

	done := make(chan struct{})
	go readPump(conn, done)
	go func() {
		defer cancel()
		mc.writePump(ctx, conn, matchID, updates, done)
	}()
}

// writePump owns the connection: it sends the cached snapshot, then every
// update, and closes the socket when the follower goes away.
func (mc *MatchController) writePump(ctx context.Context, conn *websocket.Conn, matchID string, updates <-chan []byte, done <-chan struct{}) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	if latest, err := mc.feed.Latest(ctx, matchID); err == nil && latest != nil {
		conn.SetWriteDeadline(time.Now().Add(writeDeadline))
		if err := conn.WriteMessage(websocket.TextMessage, latest); err != nil {
			return
		}
	}

	for {
		select {
		case msg, ok := <-updates:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				mc.log.ForMatch(matchID).WithError(err).Debug("live feed: write failed")
				return
			}
		case <-done:
			return
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards follower messages and reports when the socket closes.
func readPump(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
