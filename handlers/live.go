// handlers/live.go
package handlers

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"fishing-game/live"

	"github.com/gorilla/websocket"
)

const liveWriteTimeout = 10 * time.Second

// NewUpgrader accepts websocket handshakes from the given origins. "*"
// accepts any origin; requests without an Origin header are not browsers and
// are always accepted.
func NewUpgrader(origins []string) *websocket.Upgrader {
	anyOrigin := slices.Contains(origins, "*")
	return &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return anyOrigin || origin == "" || slices.Contains(origins, origin)
		},
	}
}

// LeaderboardLive streams the top scores: once on connect, then after every
// submission that changed the board.
func LeaderboardLive(store LeaderboardStore, hub *live.Hub, upgrader *websocket.Upgrader, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := requestLogger(logger, r)

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade has already answered the client.
			log.Warn("live upgrade failed", "err", err)
			return
		}
		defer conn.Close()

		updates, cancel := hub.Subscribe()
		defer cancel()

		scores, err := store.Top(r.Context(), TopN)
		if err != nil {
			log.Warn("initial live snapshot failed", "err", err)
		} else if msg, err := live.Encode(scores); err == nil {
			conn.SetWriteDeadline(time.Now().Add(liveWriteTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		}

		// The feed is one-way; reading only notices when the peer goes away.
		gone := make(chan struct{})
		go func() {
			defer close(gone)
			for {
				if _, _, err := conn.NextReader(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case <-gone:
				return
			case msg, ok := <-updates:
				conn.SetWriteDeadline(time.Now().Add(liveWriteTimeout))
				if !ok {
					conn.WriteMessage(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
					return
				}
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					log.Debug("live write failed", "err", err)
					return
				}
			}
		}
	}
}
