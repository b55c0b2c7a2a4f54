package services

import (
	"context"
	"database/sql"

	"cup-live-service/common"
	"cup-live-service/database"
)

type postgresMatchStore struct {
	q querier
}

const matchColumns = `id, day, gender, category, team_a, team_b, referee_id, match_time,
	       ground_number, status, score_a, score_b,
	       timer_start, timer_pause, timer_paused_ms, match_rating,
	       created_at, updated_at`

func (s *postgresMatchStore) Get(ctx context.Context, id string) (*database.Match, error) {
	query := `
		SELECT ` + matchColumns + `
		FROM matches
		WHERE id = $1
	`

	row := s.q.QueryRowContext(ctx, query, id)
	m, err := scanMatch(row)
	if err != nil {
		return nil, mapPQError(err)
	}
	return m, nil
}

func (s *postgresMatchStore) Create(ctx context.Context, m *database.Match) error {
	query := `
		INSERT INTO matches (id, day, gender, category, team_a, team_b, referee_id, match_time,
		                     ground_number, status, score_a, score_b,
		                     timer_start, timer_pause, timer_paused_ms, match_rating,
		                     created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	_, err := s.q.ExecContext(ctx, query,
		m.ID, m.Day, m.Gender, m.Category, m.TeamA, m.TeamB, m.RefereeID, m.MatchTime,
		m.GroundNumber, m.Status, m.ScoreA, m.ScoreB,
		m.Timer.StartTime, m.Timer.PauseTime, m.Timer.TotalPausedMs, m.MatchRating,
		m.CreatedAt, m.UpdatedAt)
	return mapPQError(err)
}

// Save 整行覆盖，调用方负责持有该比赛的写锁
func (s *postgresMatchStore) Save(ctx context.Context, m *database.Match) error {
	query := `
		UPDATE matches
		SET day = $2, gender = $3, category = $4, team_a = $5, team_b = $6,
		    referee_id = $7, match_time = $8, ground_number = $9,
		    status = $10, score_a = $11, score_b = $12,
		    timer_start = $13, timer_pause = $14, timer_paused_ms = $15,
		    match_rating = $16, updated_at = $17
		WHERE id = $1
	`

	result, err := s.q.ExecContext(ctx, query,
		m.ID, m.Day, m.Gender, m.Category, m.TeamA, m.TeamB,
		m.RefereeID, m.MatchTime, m.GroundNumber,
		m.Status, m.ScoreA, m.ScoreB,
		m.Timer.StartTime, m.Timer.PauseTime, m.Timer.TotalPausedMs,
		m.MatchRating, m.UpdatedAt)
	if err != nil {
		return mapPQError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return mapPQError(err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (s *postgresMatchStore) List(ctx context.Context, filter MatchFilter) ([]*database.Match, error) {
	query := `
		SELECT ` + matchColumns + `
		FROM matches
		WHERE ($1 = 0 OR day = $1)
		  AND ($2 = '' OR gender = $2)
		  AND ($3 = '' OR category = $3)
		  AND ($4 = '' OR status = $4)
		ORDER BY match_time ASC
	`

	rows, err := s.q.QueryContext(ctx, query,
		filter.Day, filter.Gender, filter.Category, string(filter.Status))
	if err != nil {
		return nil, mapPQError(err)
	}
	defer rows.Close()

	return collectMatches(rows)
}

func (s *postgresMatchStore) ListByReferee(ctx context.Context, refereeID string) ([]*database.Match, error) {
	query := `
		SELECT ` + matchColumns + `
		FROM matches
		WHERE referee_id = $1
		ORDER BY match_time ASC
	`

	rows, err := s.q.QueryContext(ctx, query, refereeID)
	if err != nil {
		return nil, mapPQError(err)
	}
	defer rows.Close()

	return collectMatches(rows)
}

// Delete 删除比赛，关联事件由外键级联删除
func (s *postgresMatchStore) Delete(ctx context.Context, id string) error {
	result, err := s.q.ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return mapPQError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return mapPQError(err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

// rowScanner 统一 *sql.Row 与 *sql.Rows 的 Scan
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMatch(row rowScanner) (*database.Match, error) {
	var (
		m           database.Match
		ground      sql.NullString
		timerStart  sql.NullTime
		timerPause  sql.NullTime
		matchRating sql.NullInt64
	)

	err := row.Scan(
		&m.ID, &m.Day, &m.Gender, &m.Category, &m.TeamA, &m.TeamB, &m.RefereeID, &m.MatchTime,
		&ground, &m.Status, &m.ScoreA, &m.ScoreB,
		&timerStart, &timerPause, &m.Timer.TotalPausedMs, &matchRating,
		&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if ground.Valid {
		m.GroundNumber = ground.String
	}
	if timerStart.Valid {
		t := timerStart.Time
		m.Timer.StartTime = &t
	}
	if timerPause.Valid {
		t := timerPause.Time
		m.Timer.PauseTime = &t
	}
	if matchRating.Valid {
		r := int(matchRating.Int64)
		m.MatchRating = &r
	}

	return &m, nil
}

func collectMatches(rows *sql.Rows) ([]*database.Match, error) {
	var matches []*database.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, mapPQError(err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPQError(err)
	}
	return matches, nil
}
