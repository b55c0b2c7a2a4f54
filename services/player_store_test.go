package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cup-live-service/database"
)

func playerRows(p *database.Player) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "team_id", "name", "dob", "jersey_number", "position", "photo_url", "category",
		"goals", "yellow_cards", "red_cards", "fouls", "created_at", "updated_at",
	}).AddRow(
		p.ID, p.TeamID, p.Name, p.DOB, p.JerseyNumber, p.Position, p.PhotoURL, p.Category,
		p.Goals, p.YellowCards, p.RedCards, p.Fouls, p.CreatedAt, p.UpdatedAt,
	)
}

func samplePlayer() *database.Player {
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	return &database.Player{
		ID:           "p1",
		TeamID:       "t1",
		Name:         "Alice",
		DOB:          time.Date(2015, 3, 1, 0, 0, 0, 0, time.UTC),
		JerseyNumber: 9,
		Position:     "Forward",
		Category:     "U12",
		Goals:        3,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// team_id 是 uuid 列，过滤查询必须比较其 text 形式，
// 否则参数被解析为 text 后在准备阶段报 uuid = text 算子不存在
func TestPostgresPlayerStoreListCastsTeamFilter(t *testing.T) {
	stores, mock := newMockStores(t)
	p := samplePlayer()

	mock.ExpectQuery(`SELECT (.+) FROM players\s+WHERE \(\$1 = '' OR team_id::text = \$1\)`).
		WithArgs("t1").
		WillReturnRows(playerRows(p))

	players, err := stores.Players().List(context.Background(), "t1")
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, "p1", players[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresPlayerStoreListUnfiltered(t *testing.T) {
	stores, mock := newMockStores(t)
	p := samplePlayer()

	mock.ExpectQuery(`SELECT (.+) FROM players\s+WHERE \(\$1 = '' OR team_id::text = \$1\)`).
		WithArgs("").
		WillReturnRows(playerRows(p))

	players, err := stores.Players().List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresPlayerStoreGet(t *testing.T) {
	stores, mock := newMockStores(t)
	want := samplePlayer()

	mock.ExpectQuery("SELECT (.+) FROM players").
		WithArgs("p1").
		WillReturnRows(playerRows(want))

	got, err := stores.Players().Get(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, want.Goals, got.Goals)
	assert.NoError(t, mock.ExpectationsWereMet())
}
