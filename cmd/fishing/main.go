package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fishing-game/client"
	"fishing-game/config"
	"fishing-game/game"

	"github.com/gdamore/tcell/v2"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadClient()
	if err != nil {
		return err
	}

	name := flag.String("name", cfg.PlayerName, "player name (2 to 64 characters)")
	url := flag.String("url", cfg.LeaderboardURL, "leaderboard service base URL")
	width := flag.Float64("width", cfg.FieldWidth, "play field width in world units")
	logPath := flag.String("log", "", "write logs to this file (the terminal is busy drawing)")
	flag.Parse()

	player, err := game.ValidatePlayerName(*name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Please enter a name of %d to %d characters with -name or PLAYER_NAME\n",
			game.MinNameLength, game.MaxNameLength)
		os.Exit(2)
	}

	var logOut io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := config.NewLogger(logOut, cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scores := client.New(*url, client.WithLogger(logger))
	defer scores.Close()

	lookup, cancel := context.WithTimeout(ctx, 2*time.Second)
	best, err := scores.PersonalBest(lookup, player)
	cancel()
	if err != nil {
		logger.Warn("personal best unavailable", "err", err)
	}
	scores.RefreshAsync()
	go func() {
		if err := scores.Watch(ctx); err != nil && ctx.Err() == nil {
			logger.Info("live leaderboard feed stopped", "err", err)
		}
	}()

	loop, err := game.NewLoop(*width, player, scores,
		game.WithTopScore(best),
		game.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	a := newApp(screen, loop, scores)
	return a.run(ctx)
}
