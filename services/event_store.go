package services

import (
	"context"

	"cup-live-service/database"
)

type postgresEventStore struct {
	q querier
}

// Append 追加事件记录。事件不可更新、不可单独删除。
func (s *postgresEventStore) Append(ctx context.Context, ev *database.MatchEvent) error {
	query := `
		INSERT INTO match_events (id, match_id, team_id, player_id, type, minute, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := s.q.ExecContext(ctx, query,
		ev.ID, ev.MatchID, ev.TeamID, ev.PlayerID, ev.Type, ev.Minute, ev.CreatedAt)
	return mapPQError(err)
}

func (s *postgresEventStore) ListByMatch(ctx context.Context, matchID string) ([]*database.MatchEvent, error) {
	query := `
		SELECT id, match_id, team_id, player_id, type, minute, created_at
		FROM match_events
		WHERE match_id = $1
		ORDER BY created_at ASC
	`

	rows, err := s.q.QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, mapPQError(err)
	}
	defer rows.Close()

	var events []*database.MatchEvent
	for rows.Next() {
		var ev database.MatchEvent
		if err := rows.Scan(&ev.ID, &ev.MatchID, &ev.TeamID, &ev.PlayerID,
			&ev.Type, &ev.Minute, &ev.CreatedAt); err != nil {
			return nil, mapPQError(err)
		}
		events = append(events, &ev)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPQError(err)
	}
	return events, nil
}
