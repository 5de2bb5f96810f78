package database

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockStore(t *testing.T) (*LeaderboardStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewLeaderboardStore(db), mock
}

func TestSubmitInsertsOrRaises(t *testing.T) {
	store, mock := newMockStore(t)
	upsert := regexp.QuoteMeta("ON CONFLICT (name) DO UPDATE")

	mock.ExpectExec(upsert).WithArgs("Ada", 120).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(upsert).WithArgs("Ada", 80).WillReturnResult(sqlmock.NewResult(0, 0))

	changed, err := store.Submit(context.Background(), "Ada", 120)
	if err != nil || !changed {
		t.Fatalf("first submit = %v, %v; want changed", changed, err)
	}
	changed, err = store.Submit(context.Background(), "Ada", 80)
	if err != nil || changed {
		t.Fatalf("lower submit = %v, %v; want no-op", changed, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestSubmitWrapsDriverError(t *testing.T) {
	store, mock := newMockStore(t)
	boom := errors.New("connection reset")
	mock.ExpectExec("INSERT INTO leaderboard").WithArgs("Ada", 10).WillReturnError(boom)

	if _, err := store.Submit(context.Background(), "Ada", 10); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped %v", err, boom)
	}
}

func TestTopOrdersAndLimits(t *testing.T) {
	store, mock := newMockStore(t)
	rows := sqlmock.NewRows([]string{"name", "score"}).
		AddRow("Grace", 300).
		AddRow("Ada", 120)
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY score DESC")).WithArgs(5).WillReturnRows(rows)

	got, err := store.Top(context.Background(), 5)
	if err != nil {
		t.Fatalf("Top: %v", err)
	}
	if len(got) != 2 || got[0].Name != "Grace" || got[1].Score != 120 {
		t.Fatalf("Top = %+v", got)
	}
}

func TestTopEmptyIsNotNil(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery("SELECT name, score").WithArgs(5).WillReturnRows(sqlmock.NewRows([]string{"name", "score"}))

	got, err := store.Top(context.Background(), 5)
	if err != nil {
		t.Fatalf("Top: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("Top on empty table = %#v, want empty slice", got)
	}
}

func TestEntryNotFound(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery("WHERE name = ").WithArgs("Nobody").WillReturnError(sql.ErrNoRows)

	if _, err := store.Entry(context.Background(), "Nobody"); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("err = %v, want sql.ErrNoRows", err)
	}
}

func TestEntryLoadsRow(t *testing.T) {
	store, mock := newMockStore(t)
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	mock.ExpectQuery("WHERE name = ").WithArgs("Ada").WillReturnRows(
		sqlmock.NewRows([]string{"id", "name", "score", "created_at", "updated_at"}).
			AddRow(7, "Ada", 120, created, created.Add(time.Hour)),
	)

	e, err := store.Entry(context.Background(), "Ada")
	if err != nil {
		t.Fatalf("Entry: %v", err)
	}
	if e.ID != 7 || e.Score != 120 || !e.UpdatedAt.Equal(created.Add(time.Hour)) {
		t.Fatalf("Entry = %+v", e)
	}
}

func TestInitDBCreatesSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS leaderboard")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("CREATE INDEX IF NOT EXISTS idx_leaderboard_score")).WillReturnResult(sqlmock.NewResult(0, 0))

	if err := InitDB(context.Background(), db); err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
