// handlers/leaderboard.go
package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"unicode/utf8"

	"fishing-game/game"
	"fishing-game/live"
	"fishing-game/models"

	"github.com/gorilla/mux"
)

const (
	TopN         = 5
	maxBodyBytes = 4 << 10
)

// LeaderboardStore is the persistence the leaderboard handlers need.
type LeaderboardStore interface {
	Submit(ctx context.Context, name string, score int) (bool, error)
	Top(ctx context.Context, limit int) ([]models.Score, error)
	Entry(ctx context.Context, name string) (models.LeaderboardEntry, error)
	Ping(ctx context.Context) error
}

func GetLeaderboard(store LeaderboardStore, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scores, err := store.Top(r.Context(), TopN)
		if err != nil {
			requestLogger(logger, r).Error("get leaderboard failed", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if scores == nil {
			scores = []models.Score{}
		}
		writeJSON(w, http.StatusOK, scores)
	}
}

// SubmitScore records a score. Inserts, raises and lower-score no-ops all
// answer the same success body.
func SubmitScore(store LeaderboardStore, hub *live.Hub, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := requestLogger(logger, r)

		var req models.SubmitScoreRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" || req.Score <= 0 {
			writeError(w, http.StatusBadRequest, "Name and score are required")
			return
		}
		// score is an INTEGER column
		if req.Score > math.MaxInt32 {
			writeError(w, http.StatusBadRequest, "Score is out of range")
			return
		}
		if utf8.RuneCountInString(req.Name) > game.MaxNameLength {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Name must be at most %d characters", game.MaxNameLength))
			return
		}

		changed, err := store.Submit(r.Context(), req.Name, req.Score)
		if err != nil {
			log.Error("submit score failed", "name", req.Name, "score", req.Score, "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		log.Info("score submitted", "name", req.Name, "score", req.Score, "changed", changed)

		if changed {
			publishTop(r.Context(), store, hub, log)
		}

		writeJSON(w, http.StatusOK, models.SubmitScoreResponse{Success: true})
	}
}

// GetPlayer returns the stored entry for one player.
func GetPlayer(store LeaderboardStore, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := mux.Vars(r)["name"]

		entry, err := store.Entry(r.Context(), name)
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "Player not found")
			return
		}
		if err != nil {
			requestLogger(logger, r).Error("get player failed", "name", name, "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, entry)
	}
}

// MethodNotAllowed answers 405 and advertises the allowed methods.
func MethodNotAllowed(allowed ...string) http.HandlerFunc {
	allow := strings.Join(allowed, ", ")
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", allow)
		http.Error(w, fmt.Sprintf("Method %s Not Allowed", r.Method), http.StatusMethodNotAllowed)
	}
}

func publishTop(ctx context.Context, store LeaderboardStore, hub *live.Hub, log *slog.Logger) {
	if hub == nil || hub.Subscribers() == 0 {
		return
	}
	scores, err := store.Top(ctx, TopN)
	if err != nil {
		log.Warn("reload leaderboard for live feed failed", "err", err)
		return
	}
	if err := hub.Publish(scores); err != nil {
		log.Warn("publish leaderboard failed", "err", err)
	}
}
