// database/leaderboard.go
package database

import (
	"context"
	"database/sql"
	"fmt"

	"fishing-game/models"
)

// submitScore inserts a new player or raises an existing player's score.
// A lower or equal score matches the conflict row but fails the WHERE, so
// nothing is written.
const submitScore = `
    INSERT INTO leaderboard (name, score)
    VALUES ($1, $2)
    ON CONFLICT (name) DO UPDATE
    SET score = EXCLUDED.score, updated_at = NOW()
    WHERE leaderboard.score < EXCLUDED.score
`

const topScores = `
    SELECT name, score
    FROM leaderboard
    ORDER BY score DESC, id ASC
    LIMIT $1
`

const entryByName = `
    SELECT id, name, score, created_at, updated_at
    FROM leaderboard
    WHERE name = $1
`

type LeaderboardStore struct {
	db *sql.DB
}

func NewLeaderboardStore(db *sql.DB) *LeaderboardStore {
	return &LeaderboardStore{db: db}
}

// Submit records score for name and reports whether a row was written.
func (s *LeaderboardStore) Submit(ctx context.Context, name string, score int) (bool, error) {
	res, err := s.db.ExecContext(ctx, submitScore, name, score)
	if err != nil {
		return false, fmt.Errorf("submit score for %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("submit score for %q: %w", name, err)
	}
	return n > 0, nil
}

// Top returns up to limit scores, best first.
func (s *LeaderboardStore) Top(ctx context.Context, limit int) ([]models.Score, error) {
	rows, err := s.db.QueryContext(ctx, topScores, limit)
	if err != nil {
		return nil, fmt.Errorf("query top scores: %w", err)
	}
	defer rows.Close()

	scores := make([]models.Score, 0, limit)
	for rows.Next() {
		var sc models.Score
		if err := rows.Scan(&sc.Name, &sc.Score); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		scores = append(scores, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate top scores: %w", err)
	}
	return scores, nil
}

// Entry loads the full row for name. It returns sql.ErrNoRows (wrapped) when
// the player has never submitted.
func (s *LeaderboardStore) Entry(ctx context.Context, name string) (models.LeaderboardEntry, error) {
	var e models.LeaderboardEntry
	err := s.db.QueryRowContext(ctx, entryByName, name).Scan(&e.ID, &e.Name, &e.Score, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return models.LeaderboardEntry{}, fmt.Errorf("load entry %q: %w", name, err)
	}
	return e, nil
}

func (s *LeaderboardStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
