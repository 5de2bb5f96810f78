// Package client talks to the leaderboard service on behalf of the game and
// keeps the last leaderboard it managed to fetch.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"fishing-game/models"

	"github.com/gorilla/websocket"
)

var ErrStatus = errors.New("unexpected status")

type Client struct {
	baseURL string
	http    *http.Client
	dialer  *websocket.Dialer
	log     *slog.Logger

	mu    sync.RWMutex
	board []models.Score

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.log = logger }
}

// New returns a client for the service at baseURL, e.g. http://localhost:8181.
// Background work started by ReportScore lives until Close.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
		dialer:  websocket.DefaultDialer,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.ctx, c.cancel = context.WithCancel(context.Background())
	return c
}

// Leaderboard returns a copy of the last snapshot, empty if none was fetched.
func (c *Client) Leaderboard() []models.Score {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Score(nil), c.board...)
}

func (c *Client) setBoard(scores []models.Score) {
	c.mu.Lock()
	c.board = scores
	c.mu.Unlock()
}

// Refresh fetches the leaderboard. On any failure the previous snapshot is
// kept.
func (c *Client) Refresh(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/leaderboard", nil)
	if err != nil {
		return fmt.Errorf("fetch leaderboard: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("fetch leaderboard: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch leaderboard: %w %d", ErrStatus, resp.StatusCode)
	}
	var scores []models.Score
	if err := json.NewDecoder(resp.Body).Decode(&scores); err != nil {
		return fmt.Errorf("decode leaderboard: %w", err)
	}
	c.setBoard(scores)
	return nil
}

// Submit posts one score and waits for the answer.
func (c *Client) Submit(ctx context.Context, name string, score int) error {
	body, err := json.Marshal(models.SubmitScoreRequest{Name: name, Score: score})
	if err != nil {
		return fmt.Errorf("encode score: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/leaderboard", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("submit score: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("submit score: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var e models.ErrorResponse
		json.NewDecoder(resp.Body).Decode(&e)
		return fmt.Errorf("submit score: %w %d: %s", ErrStatus, resp.StatusCode, e.Error)
	}
	var ok models.SubmitScoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&ok); err != nil {
		return fmt.Errorf("decode submit response: %w", err)
	}
	if !ok.Success {
		return errors.New("submit score: service did not accept the score")
	}
	return nil
}

// ReportScore submits in the background and refreshes the cached
// leaderboard once the submission lands. It never blocks and never reports
// failure to the caller; failures are logged. Scores the service would
// reject (zero or negative) are dropped here.
func (c *Client) ReportScore(name string, score int) {
	if score <= 0 {
		c.log.Debug("not reporting empty score", "player", name)
		return
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if err := c.Submit(c.ctx, name, score); err != nil {
			c.log.Warn("score submission failed", "player", name, "score", score, "err", err)
			return
		}
		if err := c.Refresh(c.ctx); err != nil {
			c.log.Warn("leaderboard refresh failed", "err", err)
		}
	}()
}

// RefreshAsync refreshes the cached leaderboard in the background.
func (c *Client) RefreshAsync() {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if err := c.Refresh(c.ctx); err != nil {
			c.log.Warn("leaderboard refresh failed", "err", err)
		}
	}()
}

// PersonalBest returns the stored score for name, or 0 if the player has no
// entry yet.
func (c *Client) PersonalBest(ctx context.Context, name string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/players/"+url.PathEscape(name), nil)
	if err != nil {
		return 0, fmt.Errorf("fetch player: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetch player: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return 0, nil
	default:
		return 0, fmt.Errorf("fetch player: %w %d", ErrStatus, resp.StatusCode)
	}
	var e models.LeaderboardEntry
	if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
		return 0, fmt.Errorf("decode player: %w", err)
	}
	return e.Score, nil
}

// Watch follows the live feed and replaces the cached leaderboard with every
// snapshot pushed by the service. It returns when ctx is done or the
// connection drops.
func (c *Client) Watch(ctx context.Context) error {
	u, err := liveURL(c.baseURL)
	if err != nil {
		return err
	}
	conn, _, err := c.dialer.DialContext(ctx, u, nil)
	if err != nil {
		return fmt.Errorf("dial live feed: %w", err)
	}
	defer conn.Close()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-stop:
		}
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("read live feed: %w", err)
		}
		var scores []models.Score
		if err := json.Unmarshal(msg, &scores); err != nil {
			c.log.Warn("bad live snapshot", "err", err)
			continue
		}
		c.setBoard(scores)
	}
}

// Close cancels in-flight requests and waits for background work to stop.
func (c *Client) Close() {
	c.cancel()
	c.wg.Wait()
}

func liveURL(base string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse leaderboard url: %w", err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/leaderboard/live"
	return u.String(), nil
}
