package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"fishing-game/game"
	"fishing-game/live"
	"fishing-game/models"

	"github.com/gorilla/websocket"
)

// memStore mirrors the SQL store: one row per name, scores only go up.
type memStore struct {
	mu      sync.Mutex
	entries []models.LeaderboardEntry
	err     error
}

func (m *memStore) Submit(_ context.Context, name string, score int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	for i := range m.entries {
		if m.entries[i].Name == name {
			if score > m.entries[i].Score {
				m.entries[i].Score = score
				m.entries[i].UpdatedAt = time.Now()
				return true, nil
			}
			return false, nil
		}
	}
	now := time.Now()
	m.entries = append(m.entries, models.LeaderboardEntry{
		ID: len(m.entries) + 1, Name: name, Score: score, CreatedAt: now, UpdatedAt: now,
	})
	return true, nil
}

func (m *memStore) Top(_ context.Context, limit int) ([]models.Score, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	sorted := append([]models.LeaderboardEntry(nil), m.entries...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Score > sorted[j].Score })
	out := []models.Score{}
	for _, e := range sorted {
		if len(out) == limit {
			break
		}
		out = append(out, models.Score{Name: e.Name, Score: e.Score})
	}
	return out, nil
}

func (m *memStore) Entry(_ context.Context, name string) (models.LeaderboardEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return models.LeaderboardEntry{}, m.err
	}
	for _, e := range m.entries {
		if e.Name == name {
			return e, nil
		}
	}
	return models.LeaderboardEntry{}, fmt.Errorf("load entry %q: %w", name, sql.ErrNoRows)
}

func (m *memStore) Ping(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

func (m *memStore) fail(err error) {
	m.mu.Lock()
	m.err = err
	m.mu.Unlock()
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRouter(store *memStore) (http.Handler, *live.Hub) {
	hub := live.NewHub(discardLogger())
	return NewRouter(Deps{Store: store, Hub: hub, Origins: []string{"*"}, Logger: discardLogger()}), hub
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, rd))
	return rec
}

func TestSubmitKeepsHigherScore(t *testing.T) {
	store := &memStore{}
	h, _ := newTestRouter(store)

	rec := do(t, h, http.MethodPost, "/leaderboard", `{"name":"Ada","score":120}`)
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != `{"success":true}` {
		t.Fatalf("first submit = %d %s", rec.Code, rec.Body)
	}
	rec = do(t, h, http.MethodPost, "/leaderboard", `{"name":"Ada","score":80}`)
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != `{"success":true}` {
		t.Fatalf("lower submit = %d %s", rec.Code, rec.Body)
	}

	rec = do(t, h, http.MethodGet, "/leaderboard", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get = %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `[{"name":"Ada","score":120}]` {
		t.Fatalf("leaderboard = %s", got)
	}
	if len(store.entries) != 1 {
		t.Fatalf("rows = %d, want 1", len(store.entries))
	}

	do(t, h, http.MethodPost, "/leaderboard", `{"name":"Ada","score":150}`)
	if store.entries[0].Score != 150 {
		t.Fatalf("score after higher submit = %d, want 150", store.entries[0].Score)
	}
}

func TestSubmitRejectsBadPayload(t *testing.T) {
	h, _ := newTestRouter(&memStore{})
	cases := map[string]string{
		"not json":      `name=Ada`,
		"missing name":  `{"score":10}`,
		"blank name":    `{"name":"   ","score":10}`,
		"missing score": `{"name":"Ada"}`,
		"zero score":    `{"name":"Ada","score":0}`,
		"negative":      `{"name":"Ada","score":-5}`,
		"fraction":      `{"name":"Ada","score":1.5}`,
		"long name":     fmt.Sprintf(`{"name":%q,"score":10}`, strings.Repeat("x", game.MaxNameLength+1)),
		"score too big": `{"name":"Ada","score":2147483648}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/leaderboard", body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			var resp models.ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || resp.Error == "" {
				t.Fatalf("body = %s, want an error field", rec.Body)
			}
		})
	}
}

func TestStoreFailuresAreServerErrors(t *testing.T) {
	store := &memStore{}
	store.fail(errors.New("disk on fire"))
	h, _ := newTestRouter(store)

	for _, tc := range []struct{ method, body string }{
		{http.MethodPost, `{"name":"Ada","score":10}`},
		{http.MethodGet, ""},
	} {
		rec := do(t, h, tc.method, "/leaderboard", tc.body)
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("%s status = %d, want 500", tc.method, rec.Code)
		}
		if got := strings.TrimSpace(rec.Body.String()); got != `{"error":"Internal server error"}` {
			t.Fatalf("%s body = %s", tc.method, got)
		}
	}
}

func TestOtherMethodsNotAllowed(t *testing.T) {
	h, _ := newTestRouter(&memStore{})
	for _, method := range []string{http.MethodPut, http.MethodDelete, http.MethodPatch} {
		rec := do(t, h, method, "/leaderboard", "")
		if rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("%s status = %d, want 405", method, rec.Code)
		}
		if allow := rec.Header().Get("Allow"); allow != "GET, POST" {
			t.Fatalf("%s Allow = %q, want %q", method, allow, "GET, POST")
		}
	}
}

func TestTopReturnsAtMostFiveDescending(t *testing.T) {
	store := &memStore{}
	h, _ := newTestRouter(store)

	rec := do(t, h, http.MethodGet, "/leaderboard", "")
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Fatalf("empty leaderboard = %s, want []", got)
	}

	for i, score := range []int{40, 90, 10} {
		do(t, h, http.MethodPost, "/leaderboard", fmt.Sprintf(`{"name":"p%d","score":%d}`, i, score))
	}
	var got []models.Score
	json.Unmarshal(do(t, h, http.MethodGet, "/leaderboard", "").Body.Bytes(), &got)
	if len(got) != 3 || got[0].Score != 90 || got[1].Score != 40 || got[2].Score != 10 {
		t.Fatalf("top of three = %+v", got)
	}

	for i, score := range []int{70, 20, 60, 30} {
		do(t, h, http.MethodPost, "/leaderboard", fmt.Sprintf(`{"name":"q%d","score":%d}`, i, score))
	}
	got = nil
	json.Unmarshal(do(t, h, http.MethodGet, "/api/leaderboard", "").Body.Bytes(), &got)
	want := []int{90, 70, 60, 40, 30}
	if len(got) != TopN {
		t.Fatalf("top = %+v, want %d rows", got, TopN)
	}
	for i, s := range want {
		if got[i].Score != s {
			t.Fatalf("top[%d] = %+v, want score %d", i, got[i], s)
		}
	}
}

func TestGetPlayer(t *testing.T) {
	store := &memStore{}
	h, _ := newTestRouter(store)
	do(t, h, http.MethodPost, "/leaderboard", `{"name":"Ada","score":120}`)

	rec := do(t, h, http.MethodGet, "/players/Ada", "")
	var e models.LeaderboardEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &e); err != nil || rec.Code != http.StatusOK {
		t.Fatalf("get player = %d %s", rec.Code, rec.Body)
	}
	if e.Name != "Ada" || e.Score != 120 {
		t.Fatalf("entry = %+v", e)
	}

	if rec := do(t, h, http.MethodGet, "/players/Nobody", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown player status = %d, want 404", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	store := &memStore{}
	h, _ := newTestRouter(store)
	if rec := do(t, h, http.MethodGet, "/healthz", ""); rec.Code != http.StatusOK {
		t.Fatalf("healthy status = %d", rec.Code)
	}
	store.fail(errors.New("down"))
	if rec := do(t, h, http.MethodGet, "/healthz", ""); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("unhealthy status = %d", rec.Code)
	}
}

func TestLiveFeedPushesChanges(t *testing.T) {
	store := &memStore{}
	h, hub := newTestRouter(store)
	srv := httptest.NewServer(h)
	defer srv.Close()
	defer hub.Close()

	do(t, h, http.MethodPost, "/leaderboard", `{"name":"Ada","score":120}`)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/leaderboard/live"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read initial snapshot: %v", err)
	}
	if string(msg) != `[{"name":"Ada","score":120}]` {
		t.Fatalf("initial snapshot = %s", msg)
	}

	// Wait until the handler has subscribed before submitting.
	deadline := time.Now().Add(2 * time.Second)
	for hub.Subscribers() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	resp, err := http.Post(srv.URL+"/leaderboard", "application/json", strings.NewReader(`{"name":"Grace","score":300}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()

	_, msg, err = conn.ReadMessage()
	if err != nil {
		t.Fatalf("read update: %v", err)
	}
	if string(msg) != `[{"name":"Grace","score":300},{"name":"Ada","score":120}]` {
		t.Fatalf("update = %s", msg)
	}
}
