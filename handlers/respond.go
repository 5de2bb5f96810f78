package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"fishing-game/middleware"
	"fishing-game/models"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.ErrorResponse{Error: msg})
}

func requestLogger(logger *slog.Logger, r *http.Request) *slog.Logger {
	return logger.With("request_id", middleware.RequestIDFrom(r.Context()))
}
