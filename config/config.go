package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int
}

func (d Database) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

type Log struct {
	Level  slog.Level
	Format string // "text" or "json"
}

// Server configures the leaderboard service.
type Server struct {
	HTTPAddr    string
	CORSOrigins []string
	Database    Database
	Log         Log
}

// Client configures the terminal game.
type Client struct {
	LeaderboardURL string
	PlayerName     string
	FieldWidth     float64
	Log            Log
}

// InitEnv loads a .env file from the working directory if there is one.
func InitEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

func LoadServer() (Server, error) {
	if err := InitEnv(); err != nil {
		return Server{}, err
	}

	maxConns, err := getEnvInt("DB_MAX_CONNS", 25)
	if err != nil {
		return Server{}, err
	}
	logCfg, err := loadLog()
	if err != nil {
		return Server{}, err
	}

	return Server{
		HTTPAddr:    getEnv("HTTP_ADDR", ":8181"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),
		Database: Database{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			Name:     getEnv("DB_NAME", "fishing"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: maxConns,
		},
		Log: logCfg,
	}, nil
}

func LoadClient() (Client, error) {
	if err := InitEnv(); err != nil {
		return Client{}, err
	}

	width, err := strconv.ParseFloat(getEnv("FIELD_WIDTH", "1000"), 64)
	if err != nil {
		return Client{}, fmt.Errorf("FIELD_WIDTH: %w", err)
	}
	logCfg, err := loadLog()
	if err != nil {
		return Client{}, err
	}

	return Client{
		LeaderboardURL: strings.TrimRight(getEnv("LEADERBOARD_URL", "http://localhost:8181"), "/"),
		PlayerName:     os.Getenv("PLAYER_NAME"),
		FieldWidth:     width,
		Log:            logCfg,
	}, nil
}

// NewLogger builds the process logger described by cfg.
func NewLogger(w io.Writer, cfg Log) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.Level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func loadLog() (Log, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return Log{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return Log{Level: level, Format: getEnv("LOG_FORMAT", "text")}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
