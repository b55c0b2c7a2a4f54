package services

import (
	"context"

	"github.com/lib/pq"

	"cup-live-service/database"
)

type postgresRefereeStore struct {
	q querier
}

func (s *postgresRefereeStore) Get(ctx context.Context, id string) (*database.Referee, error) {
	query := `
		SELECT id, name, auth_subject, category_expertise, created_at, updated_at
		FROM referees
		WHERE id = $1
	`

	r, err := scanReferee(s.q.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapPQError(err)
	}
	return r, nil
}

func (s *postgresRefereeStore) GetByAuthSubject(ctx context.Context, subject string) (*database.Referee, error) {
	query := `
		SELECT id, name, auth_subject, category_expertise, created_at, updated_at
		FROM referees
		WHERE auth_subject = $1
	`

	r, err := scanReferee(s.q.QueryRowContext(ctx, query, subject))
	if err != nil {
		return nil, mapPQError(err)
	}
	return r, nil
}

func (s *postgresRefereeStore) Create(ctx context.Context, r *database.Referee) error {
	query := `
		INSERT INTO referees (id, name, auth_subject, category_expertise, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.q.ExecContext(ctx, query,
		r.ID, r.Name, r.AuthSubject, pq.Array(r.CategoryExpertise),
		r.CreatedAt, r.UpdatedAt)
	return mapPQError(err)
}

func (s *postgresRefereeStore) List(ctx context.Context) ([]*database.Referee, error) {
	query := `
		SELECT id, name, auth_subject, category_expertise, created_at, updated_at
		FROM referees
		ORDER BY name ASC
	`

	rows, err := s.q.QueryContext(ctx, query)
	if err != nil {
		return nil, mapPQError(err)
	}
	defer rows.Close()

	var referees []*database.Referee
	for rows.Next() {
		r, err := scanReferee(rows)
		if err != nil {
			return nil, mapPQError(err)
		}
		referees = append(referees, r)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPQError(err)
	}
	return referees, nil
}

func scanReferee(row rowScanner) (*database.Referee, error) {
	var (
		r         database.Referee
		expertise pq.StringArray
	)

	err := row.Scan(&r.ID, &r.Name, &r.AuthSubject, &expertise, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}

	r.CategoryExpertise = []string(expertise)
	return &r, nil
}
