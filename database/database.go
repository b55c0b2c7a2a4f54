package database

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// Connect 连接到数据库
func Connect(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// 测试连接
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// 设置连接池
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return db, nil
}

// Migrate 运行数据库迁移
func Migrate(db *sql.DB) error {
	migrations := []string{
		// 球队表
		`CREATE TABLE IF NOT EXISTS teams (
			id UUID PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			gender VARCHAR(10) NOT NULL,
			category VARCHAR(10) NOT NULL,
			coach_name VARCHAR(100) NOT NULL,
			logo_url TEXT DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (name, gender, category)
		)`,

		// 球员表，统计字段是 match_events 的累计投影
		`CREATE TABLE IF NOT EXISTS players (
			id UUID PRIMARY KEY,
			team_id UUID NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
			name VARCHAR(100) NOT NULL,
			dob DATE NOT NULL,
			jersey_number INTEGER NOT NULL,
			position VARCHAR(20) NOT NULL,
			photo_url TEXT DEFAULT '',
			category VARCHAR(10) NOT NULL,
			goals INTEGER NOT NULL DEFAULT 0,
			yellow_cards INTEGER NOT NULL DEFAULT 0,
			red_cards INTEGER NOT NULL DEFAULT 0,
			fouls INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (team_id, jersey_number)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_players_team_id ON players(team_id)`,

		// 裁判表
		`CREATE TABLE IF NOT EXISTS referees (
			id UUID PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			auth_subject VARCHAR(100) NOT NULL UNIQUE,
			category_expertise TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		// 比赛表，单一权威的比分/状态/计时器记录
		`CREATE TABLE IF NOT EXISTS matches (
			id UUID PRIMARY KEY,
			day INTEGER NOT NULL,
			gender VARCHAR(10) NOT NULL,
			category VARCHAR(10) NOT NULL,
			team_a UUID NOT NULL REFERENCES teams(id),
			team_b UUID NOT NULL REFERENCES teams(id),
			referee_id UUID NOT NULL REFERENCES referees(id),
			match_time TIMESTAMP NOT NULL,
			ground_number VARCHAR(20) DEFAULT '',
			status VARCHAR(20) NOT NULL DEFAULT 'Upcoming',
			score_a INTEGER NOT NULL DEFAULT 0,
			score_b INTEGER NOT NULL DEFAULT 0,
			timer_start TIMESTAMP,
			timer_pause TIMESTAMP,
			timer_paused_ms BIGINT NOT NULL DEFAULT 0,
			match_rating INTEGER,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CHECK (team_a <> team_b)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_matches_status ON matches(status)`,
		`CREATE INDEX IF NOT EXISTS idx_matches_referee_id ON matches(referee_id)`,

		// 比赛事件表，只追加，随比赛级联删除
		`CREATE TABLE IF NOT EXISTS match_events (
			id UUID PRIMARY KEY,
			match_id UUID NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
			team_id UUID NOT NULL REFERENCES teams(id),
			player_id UUID NOT NULL REFERENCES players(id),
			type VARCHAR(20) NOT NULL,
			minute INTEGER NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_match_events_match_id ON match_events(match_id)`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}
