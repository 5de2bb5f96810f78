// models/leaderboard.go

package models

import "time"

// LeaderboardEntry is one row of the leaderboard table.
type LeaderboardEntry struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Score is the public projection of an entry.
type Score struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

type SubmitScoreRequest struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

type SubmitScoreResponse struct {
	Success bool `json:"success"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
