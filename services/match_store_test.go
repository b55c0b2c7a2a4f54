package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cup-live-service/common"
	"cup-live-service/database"
)

func newMockStores(t *testing.T) (*PostgresStores, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresStores(db), mock
}

func matchRows(m *database.Match) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "day", "gender", "category", "team_a", "team_b", "referee_id", "match_time",
		"ground_number", "status", "score_a", "score_b",
		"timer_start", "timer_pause", "timer_paused_ms", "match_rating",
		"created_at", "updated_at",
	}).AddRow(
		m.ID, m.Day, m.Gender, m.Category, m.TeamA, m.TeamB, m.RefereeID, m.MatchTime,
		m.GroundNumber, string(m.Status), m.ScoreA, m.ScoreB,
		m.Timer.StartTime, m.Timer.PauseTime, m.Timer.TotalPausedMs, m.MatchRating,
		m.CreatedAt, m.UpdatedAt,
	)
}

func sampleMatch() *database.Match {
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	start := now.Add(-20 * time.Minute)
	return &database.Match{
		ID:        "m1",
		Day:       1,
		Gender:    "Boys",
		Category:  "U12",
		TeamA:     "a",
		TeamB:     "b",
		RefereeID: "r1",
		MatchTime: now,
		Status:    database.StatusLive,
		ScoreA:    2,
		ScoreB:    1,
		Timer:     database.MatchTimer{StartTime: &start, TotalPausedMs: 60000},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestPostgresMatchStoreGet(t *testing.T) {
	stores, mock := newMockStores(t)
	want := sampleMatch()

	mock.ExpectQuery("SELECT (.+) FROM matches").
		WithArgs("m1").
		WillReturnRows(matchRows(want))

	got, err := stores.Matches().Get(context.Background(), "m1")
	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Status, got.Status)
	assert.Equal(t, want.ScoreA, got.ScoreA)
	assert.Equal(t, want.Timer.TotalPausedMs, got.Timer.TotalPausedMs)
	require.NotNil(t, got.Timer.StartTime)
	assert.Nil(t, got.Timer.PauseTime)
	assert.Nil(t, got.MatchRating)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresMatchStoreGetNotFound(t *testing.T) {
	stores, mock := newMockStores(t)

	mock.ExpectQuery("SELECT (.+) FROM matches").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := stores.Matches().Get(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// 格式非法的 ID（非 uuid 串）在驱动层报 22P02，对调用方等同于不存在
func TestPostgresMatchStoreGetMalformedID(t *testing.T) {
	stores, mock := newMockStores(t)

	mock.ExpectQuery("SELECT (.+) FROM matches").
		WithArgs("unknown").
		WillReturnError(&pq.Error{Code: "22P02"})

	_, err := stores.Matches().Get(context.Background(), "unknown")
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresMatchStoreCreateConflict(t *testing.T) {
	stores, mock := newMockStores(t)
	m := sampleMatch()

	mock.ExpectExec("INSERT INTO matches").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "matches_pkey"})

	err := stores.Matches().Create(context.Background(), m)
	assert.ErrorIs(t, err, common.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresMatchStoreCreateCheckViolation(t *testing.T) {
	stores, mock := newMockStores(t)
	m := sampleMatch()
	m.TeamB = m.TeamA

	mock.ExpectExec("INSERT INTO matches").
		WillReturnError(&pq.Error{Code: "23514", Constraint: "matches_distinct_teams"})

	err := stores.Matches().Create(context.Background(), m)
	assert.ErrorIs(t, err, common.ErrValidation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresMatchStoreSaveNotFound(t *testing.T) {
	stores, mock := newMockStores(t)
	m := sampleMatch()

	mock.ExpectExec("UPDATE matches").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := stores.Matches().Save(context.Background(), m)
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresMatchStoreListFilters(t *testing.T) {
	stores, mock := newMockStores(t)
	m := sampleMatch()

	mock.ExpectQuery("SELECT (.+) FROM matches").
		WithArgs(1, "Boys", "U12", string(database.StatusLive)).
		WillReturnRows(matchRows(m))

	matches, err := stores.Matches().List(context.Background(), MatchFilter{
		Day:      1,
		Gender:   "Boys",
		Category: "U12",
		Status:   database.StatusLive,
	})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "m1", matches[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresMatchStoreDelete(t *testing.T) {
	stores, mock := newMockStores(t)

	mock.ExpectExec("DELETE FROM matches").
		WithArgs("m1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, stores.Matches().Delete(context.Background(), "m1"))

	mock.ExpectExec("DELETE FROM matches").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, stores.Matches().Delete(context.Background(), "missing"), common.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresInTxCommit(t *testing.T) {
	stores, mock := newMockStores(t)
	m := sampleMatch()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE matches").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := stores.InTx(context.Background(), func(st Stores) error {
		return st.Matches().Save(context.Background(), m)
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresInTxRollbackOnError(t *testing.T) {
	stores, mock := newMockStores(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	sentinel := errors.New("boom")
	err := stores.InTx(context.Background(), func(st Stores) error {
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
	assert.NoError(t, mock.ExpectationsWereMet())
}
