// database/db.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"fishing-game/config"

	_ "github.com/lib/pq"
)

// Connect opens the pool once for the lifetime of the process and checks it
// can reach the server. The caller owns the returned handle and closes it.
func Connect(ctx context.Context, cfg config.Database, logger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database %s:%s/%s: %w", cfg.Host, cfg.Port, cfg.Name, err)
	}

	db.SetMaxOpenConns(cfg.MaxConns)
	db.SetMaxIdleConns(cfg.MaxConns)

	logger.Info("connected to database", "host", cfg.Host, "port", cfg.Port, "name", cfg.Name)
	return db, nil
}

const createLeaderboardTable = `
    CREATE TABLE IF NOT EXISTS leaderboard (
        id SERIAL PRIMARY KEY,
        name TEXT UNIQUE NOT NULL,
        score INTEGER NOT NULL,
        created_at TIMESTAMP NOT NULL DEFAULT NOW(),
        updated_at TIMESTAMP NOT NULL DEFAULT NOW()
    )
`

const createLeaderboardScoreIndex = `
    CREATE INDEX IF NOT EXISTS idx_leaderboard_score ON leaderboard(score DESC)
`

// InitDB creates the schema if it does not exist yet.
func InitDB(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, createLeaderboardTable); err != nil {
		return fmt.Errorf("create leaderboard table: %w", err)
	}
	if _, err := db.ExecContext(ctx, createLeaderboardScoreIndex); err != nil {
		return fmt.Errorf("create leaderboard index: %w", err)
	}
	return nil
}
