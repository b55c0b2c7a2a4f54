package main

import (
	"database/sql"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// 演示数据：两个组别的球队、球员、一名裁判和第一天的赛程
func main() {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	log.Println("Connected to database")

	now := time.Now()

	refereeID := uuid.NewString()
	if _, err := db.Exec(
		`INSERT INTO referees (id, name, auth_subject, category_expertise, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $5)`,
		refereeID, "Demo Referee", "referee", pq.Array([]string{"U10", "U12"}), now); err != nil {
		log.Fatalf("Failed to seed referee: %v", err)
	}

	type seedTeam struct {
		id       string
		name     string
		gender   string
		category string
	}

	teams := []seedTeam{
		{uuid.NewString(), "Falcons", "Boys", "U12"},
		{uuid.NewString(), "Tigers", "Boys", "U12"},
		{uuid.NewString(), "Comets", "Girls", "U10"},
		{uuid.NewString(), "Stars", "Girls", "U10"},
	}

	for _, t := range teams {
		if _, err := db.Exec(
			`INSERT INTO teams (id, name, gender, category, coach_name, logo_url, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, '', $6, $6)`,
			t.id, t.name, t.gender, t.category, "Coach "+t.name, now); err != nil {
			log.Fatalf("Failed to seed team %s: %v", t.name, err)
		}

		// 每队 5 名球员
		positions := []string{"Goalkeeper", "Defender", "Midfielder", "Midfielder", "Forward"}
		for i, pos := range positions {
			if _, err := db.Exec(
				`INSERT INTO players (id, team_id, name, dob, jersey_number, position, photo_url, category,
				                      goals, yellow_cards, red_cards, fouls, created_at, updated_at)
				 VALUES ($1, $2, $3, $4, $5, $6, '', $7, 0, 0, 0, 0, $8, $8)`,
				uuid.NewString(), t.id, t.name+" Player "+string(rune('A'+i)),
				now.AddDate(-11, 0, 0), i+1, pos, t.category, now); err != nil {
				log.Fatalf("Failed to seed player for %s: %v", t.name, err)
			}
		}

		log.Printf("Seeded team %s (%s %s) with %d players", t.name, t.gender, t.category, len(positions))
	}

	// 第一天赛程：每组别一场
	fixtures := [][2]seedTeam{
		{teams[0], teams[1]},
		{teams[2], teams[3]},
	}

	for i, f := range fixtures {
		if _, err := db.Exec(
			`INSERT INTO matches (id, day, gender, category, team_a, team_b, referee_id, match_time,
			                      ground_number, status, score_a, score_b, timer_paused_ms, created_at, updated_at)
			 VALUES ($1, 1, $2, $3, $4, $5, $6, $7, $8, 'Upcoming', 0, 0, 0, $9, $9)`,
			uuid.NewString(), f[0].gender, f[0].category, f[0].id, f[1].id, refereeID,
			now.Add(time.Duration(i+1)*time.Hour), "G1", now); err != nil {
			log.Fatalf("Failed to seed match: %v", err)
		}
	}

	log.Println("✅ Demo data seeded successfully")
}
