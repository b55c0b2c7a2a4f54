package services

import (
	"context"
	"database/sql"

	"cup-live-service/common"
	"cup-live-service/database"
)

type postgresPlayerStore struct {
	q querier
}

const playerColumns = `id, team_id, name, dob, jersey_number, position, photo_url, category,
	       goals, yellow_cards, red_cards, fouls, created_at, updated_at`

func (s *postgresPlayerStore) Get(ctx context.Context, id string) (*database.Player, error) {
	query := `
		SELECT ` + playerColumns + `
		FROM players
		WHERE id = $1
	`

	p, err := scanPlayer(s.q.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapPQError(err)
	}
	return p, nil
}

func (s *postgresPlayerStore) Create(ctx context.Context, p *database.Player) error {
	query := `
		INSERT INTO players (id, team_id, name, dob, jersey_number, position, photo_url, category,
		                     goals, yellow_cards, red_cards, fouls, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := s.q.ExecContext(ctx, query,
		p.ID, p.TeamID, p.Name, p.DOB, p.JerseyNumber, p.Position, p.PhotoURL, p.Category,
		p.Goals, p.YellowCards, p.RedCards, p.Fouls, p.CreatedAt, p.UpdatedAt)
	return mapPQError(err)
}

// Save 覆盖球员记录（含累计统计字段）
func (s *postgresPlayerStore) Save(ctx context.Context, p *database.Player) error {
	query := `
		UPDATE players
		SET team_id = $2, name = $3, dob = $4, jersey_number = $5, position = $6,
		    photo_url = $7, category = $8,
		    goals = $9, yellow_cards = $10, red_cards = $11, fouls = $12,
		    updated_at = $13
		WHERE id = $1
	`

	result, err := s.q.ExecContext(ctx, query,
		p.ID, p.TeamID, p.Name, p.DOB, p.JerseyNumber, p.Position,
		p.PhotoURL, p.Category,
		p.Goals, p.YellowCards, p.RedCards, p.Fouls,
		p.UpdatedAt)
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

// List 列出球员，teamID 为空时返回全部。
// team_id 列是 uuid，比较前先转 text，避免参数被判定为 text 后
// 出现 uuid = text 的算子解析失败。
func (s *postgresPlayerStore) List(ctx context.Context, teamID string) ([]*database.Player, error) {
	query := `
		SELECT ` + playerColumns + `
		FROM players
		WHERE ($1 = '' OR team_id::text = $1)
		ORDER BY jersey_number ASC
	`

	rows, err := s.q.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, mapPQError(err)
	}
	defer rows.Close()

	var players []*database.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, mapPQError(err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPQError(err)
	}
	return players, nil
}

func scanPlayer(row rowScanner) (*database.Player, error) {
	var (
		p     database.Player
		photo sql.NullString
	)

	err := row.Scan(
		&p.ID, &p.TeamID, &p.Name, &p.DOB, &p.JerseyNumber, &p.Position, &photo, &p.Category,
		&p.Goals, &p.YellowCards, &p.RedCards, &p.Fouls, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if photo.Valid {
		p.PhotoURL = photo.String
	}
	return &p, nil
}
