package handlers

import (
	"log/slog"
	"net/http"

	"fishing-game/live"
	"fishing-game/middleware"

	"github.com/gorilla/mux"
)

type Deps struct {
	Store   LeaderboardStore
	Hub     *live.Hub
	Origins []string
	Logger  *slog.Logger
}

// NewRouter serves the leaderboard resource at the root and again under /api
// for front-ends that expect the /api prefix.
func NewRouter(d Deps) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(d.Logger))

	upgrader := NewUpgrader(d.Origins)

	api := r.PathPrefix("/api").Subrouter()
	for _, sr := range []*mux.Router{api, r} {
		sr.HandleFunc("/leaderboard/live", LeaderboardLive(d.Store, d.Hub, upgrader, d.Logger)).Methods(http.MethodGet)
		sr.HandleFunc("/leaderboard", GetLeaderboard(d.Store, d.Logger)).Methods(http.MethodGet)
		sr.HandleFunc("/leaderboard", SubmitScore(d.Store, d.Hub, d.Logger)).Methods(http.MethodPost)
		sr.HandleFunc("/leaderboard", MethodNotAllowed(http.MethodGet, http.MethodPost))
		sr.HandleFunc("/players/{name}", GetPlayer(d.Store, d.Logger)).Methods(http.MethodGet)
	}

	r.HandleFunc("/healthz", Health(d.Store, d.Logger)).Methods(http.MethodGet)
	return r
}
