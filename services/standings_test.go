package services

import (
	"testing"

	"cup-live-service/database"
)

func team(id, name, gender, category string) *database.Team {
	return &database.Team{ID: id, Name: name, Gender: gender, Category: category}
}

func completedMatch(gender, category, teamA, teamB string, scoreA, scoreB int) *database.Match {
	return &database.Match{
		Gender:   gender,
		Category: category,
		TeamA:    teamA,
		TeamB:    teamB,
		ScoreA:   scoreA,
		ScoreB:   scoreB,
		Status:   database.StatusCompleted,
	}
}

func findRow(t *testing.T, rows []*StandingsRow, teamID string) *StandingsRow {
	t.Helper()
	for _, row := range rows {
		if row.TeamID == teamID {
			return row
		}
	}
	t.Fatalf("Team %s not found in standings", teamID)
	return nil
}

func TestComputeStandingsPointsAndGoals(t *testing.T) {
	teams := []*database.Team{
		team("a", "Falcons", "Boys", "U12"),
		team("b", "Tigers", "Boys", "U12"),
	}
	// A 胜一场 2:1，再平一场 0:0
	completed := []*database.Match{
		completedMatch("Boys", "U12", "a", "b", 2, 1),
		completedMatch("Boys", "U12", "a", "b", 0, 0),
	}

	result := ComputeStandings(teams, completed)
	if len(result) != 1 {
		t.Fatalf("Expected 1 category, got %d", len(result))
	}
	if result[0].Category != "Boys U12" {
		t.Errorf("Expected category 'Boys U12', got %q", result[0].Category)
	}

	rowA := findRow(t, result[0].Teams, "a")
	rowB := findRow(t, result[0].Teams, "b")

	if rowA.Played != 2 || rowA.Won != 1 || rowA.Drawn != 1 || rowA.Lost != 0 {
		t.Errorf("Team A record wrong: %+v", rowA)
	}
	if rowA.Points != 4 {
		t.Errorf("Expected team A 4 points, got %d", rowA.Points)
	}
	if rowA.GoalsFor != 2 || rowA.GoalsAgainst != 1 || rowA.GoalDifference != 1 {
		t.Errorf("Team A goals wrong: %+v", rowA)
	}

	if rowB.Played != 2 || rowB.Won != 0 || rowB.Drawn != 1 || rowB.Lost != 1 {
		t.Errorf("Team B record wrong: %+v", rowB)
	}
	if rowB.Points != 1 {
		t.Errorf("Expected team B 1 point, got %d", rowB.Points)
	}
	if rowB.GoalDifference != -1 {
		t.Errorf("Expected team B goal difference -1, got %d", rowB.GoalDifference)
	}

	// 排序：A 在 B 之前
	if result[0].Teams[0].TeamID != "a" {
		t.Errorf("Expected team A first, got %s", result[0].Teams[0].TeamID)
	}
}

func TestComputeStandingsTieBreakers(t *testing.T) {
	teams := []*database.Team{
		team("a", "Falcons", "Boys", "U12"),
		team("b", "Tigers", "Boys", "U12"),
		team("c", "Rovers", "Boys", "U12"),
		team("d", "United", "Boys", "U12"),
	}
	// a、b 同 3 分：a 净胜 +3，b 净胜 +1 → a 在前
	// c、d 同 0 分同净胜 -2：c 进 2 球，d 进 0 球 → c 在前
	completed := []*database.Match{
		completedMatch("Boys", "U12", "a", "c", 5, 2),
		completedMatch("Boys", "U12", "b", "d", 1, 0),
		completedMatch("Boys", "U12", "d", "b", 0, 1),
		completedMatch("Boys", "U12", "c", "a", 0, 1),
	}

	result := ComputeStandings(teams, completed)
	rows := result[0].Teams

	order := []string{rows[0].TeamID, rows[1].TeamID, rows[2].TeamID, rows[3].TeamID}
	want := []string{"a", "b", "c", "d"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("Expected order %v, got %v", want, order)
		}
	}
}

func TestComputeStandingsCategoryIsolation(t *testing.T) {
	teams := []*database.Team{
		team("a", "Falcons", "Boys", "U12"),
		team("b", "Tigers", "Boys", "U12"),
		team("c", "Comets", "Girls", "U10"),
		team("d", "Stars", "Girls", "U10"),
	}
	completed := []*database.Match{
		completedMatch("Boys", "U12", "a", "b", 3, 0),
		completedMatch("Girls", "U10", "c", "d", 1, 1),
	}

	result := ComputeStandings(teams, completed)
	if len(result) != 2 {
		t.Fatalf("Expected 2 categories, got %d", len(result))
	}

	// 组别按名称排序
	if result[0].Category != "Boys U12" || result[1].Category != "Girls U10" {
		t.Errorf("Unexpected category order: %s, %s", result[0].Category, result[1].Category)
	}

	for _, cs := range result {
		if len(cs.Teams) != 2 {
			t.Errorf("Category %s expected 2 teams, got %d", cs.Category, len(cs.Teams))
		}
	}

	girls := result[1].Teams
	if girls[0].Points != 1 || girls[1].Points != 1 {
		t.Errorf("Girls draw should award 1 point each, got %d/%d", girls[0].Points, girls[1].Points)
	}
}

func TestComputeStandingsSkipsUnknownTeams(t *testing.T) {
	teams := []*database.Team{
		team("a", "Falcons", "Boys", "U12"),
		team("b", "Tigers", "Boys", "U12"),
	}
	// 引用已删除球队的完赛记录不计入
	completed := []*database.Match{
		completedMatch("Boys", "U12", "a", "ghost", 4, 0),
		completedMatch("Boys", "U12", "a", "b", 1, 0),
	}

	result := ComputeStandings(teams, completed)
	rowA := findRow(t, result[0].Teams, "a")

	if rowA.Played != 1 || rowA.GoalsFor != 1 {
		t.Errorf("Match with unknown team must be skipped, got %+v", rowA)
	}
}

func TestComputeStandingsZeroRowsForIdleTeams(t *testing.T) {
	teams := []*database.Team{
		team("a", "Falcons", "Boys", "U12"),
	}

	result := ComputeStandings(teams, nil)
	if len(result) != 1 || len(result[0].Teams) != 1 {
		t.Fatalf("Expected a zero row for the idle team, got %+v", result)
	}

	row := result[0].Teams[0]
	if row.Played != 0 || row.Points != 0 || row.GoalDifference != 0 {
		t.Errorf("Expected all-zero row, got %+v", row)
	}
}
