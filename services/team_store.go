package services

import (
	"context"
	"database/sql"

	"cup-live-service/database"
)

type postgresTeamStore struct {
	q querier
}

func (s *postgresTeamStore) Get(ctx context.Context, id string) (*database.Team, error) {
	query := `
		SELECT id, name, gender, category, coach_name, logo_url, created_at, updated_at
		FROM teams
		WHERE id = $1
	`

	t, err := scanTeam(s.q.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapPQError(err)
	}
	return t, nil
}

func (s *postgresTeamStore) Create(ctx context.Context, t *database.Team) error {
	query := `
		INSERT INTO teams (id, name, gender, category, coach_name, logo_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := s.q.ExecContext(ctx, query,
		t.ID, t.Name, t.Gender, t.Category, t.CoachName, t.LogoURL, t.CreatedAt, t.UpdatedAt)
	return mapPQError(err)
}

func (s *postgresTeamStore) ListAll(ctx context.Context) ([]*database.Team, error) {
	query := `
		SELECT id, name, gender, category, coach_name, logo_url, created_at, updated_at
		FROM teams
		ORDER BY gender, category, name
	`

	rows, err := s.q.QueryContext(ctx, query)
	if err != nil {
		return nil, mapPQError(err)
	}
	defer rows.Close()

	var teams []*database.Team
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, mapPQError(err)
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPQError(err)
	}
	return teams, nil
}

func scanTeam(row rowScanner) (*database.Team, error) {
	var (
		t    database.Team
		logo sql.NullString
	)

	err := row.Scan(&t.ID, &t.Name, &t.Gender, &t.Category, &t.CoachName, &logo,
		&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if logo.Valid {
		t.LogoURL = logo.String
	}
	return &t, nil
}
