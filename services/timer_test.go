package services

import (
	"testing"
	"time"

	"cup-live-service/database"
)

func TestStartTimer(t *testing.T) {
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	timer := database.MatchTimer{TotalPausedMs: 5000}

	StartTimer(&timer, now)

	if timer.StartTime == nil || !timer.StartTime.Equal(now) {
		t.Errorf("Expected startTime %v, got %v", now, timer.StartTime)
	}
	if timer.PauseTime != nil {
		t.Errorf("Expected pauseTime to be cleared, got %v", timer.PauseTime)
	}
	if timer.TotalPausedMs != 0 {
		t.Errorf("Expected totalPausedDuration reset to 0, got %d", timer.TotalPausedMs)
	}
}

func TestPauseResumeAccumulatesExactly(t *testing.T) {
	start := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	timer := database.MatchTimer{}
	StartTimer(&timer, start)

	// 暂停 3 分钟后恢复
	pauseAt := start.Add(10 * time.Minute)
	PauseTimer(&timer, pauseAt)
	if timer.PauseTime == nil || !timer.PauseTime.Equal(pauseAt) {
		t.Fatalf("Expected pauseTime %v, got %v", pauseAt, timer.PauseTime)
	}
	if timer.TotalPausedMs != 0 {
		t.Errorf("Pause must not change accumulated duration, got %d", timer.TotalPausedMs)
	}

	resumeAt := pauseAt.Add(3 * time.Minute)
	ResumeTimer(&timer, resumeAt)

	if want := (3 * time.Minute).Milliseconds(); timer.TotalPausedMs != want {
		t.Errorf("Expected totalPausedDuration %d, got %d", want, timer.TotalPausedMs)
	}
	if timer.PauseTime != nil {
		t.Errorf("Expected pauseTime cleared after resume, got %v", timer.PauseTime)
	}

	// 第二次暂停再累加
	PauseTimer(&timer, resumeAt.Add(5*time.Minute))
	ResumeTimer(&timer, resumeAt.Add(7*time.Minute))
	if want := (5 * time.Minute).Milliseconds(); timer.TotalPausedMs != want {
		t.Errorf("Expected totalPausedDuration %d after second pause, got %d", want, timer.TotalPausedMs)
	}
}

func TestResumeWithoutPauseIsNoop(t *testing.T) {
	start := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	timer := database.MatchTimer{}
	StartTimer(&timer, start)

	ResumeTimer(&timer, start.Add(time.Minute))

	if timer.TotalPausedMs != 0 {
		t.Errorf("Resume without pending pause must not accumulate, got %d", timer.TotalPausedMs)
	}
}

func TestElapsed(t *testing.T) {
	start := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

	match := &database.Match{Status: database.StatusLive}
	StartTimer(&match.Timer, start)

	// 无暂停时 elapsed = now - start
	if got := Elapsed(match, start.Add(20*time.Minute)); got != 20*time.Minute {
		t.Errorf("Expected elapsed 20m, got %v", got)
	}

	// 扣除累计暂停时长
	match.Timer.TotalPausedMs = (4 * time.Minute).Milliseconds()
	if got := Elapsed(match, start.Add(20*time.Minute)); got != 16*time.Minute {
		t.Errorf("Expected elapsed 16m with 4m paused, got %v", got)
	}

	// Paused 状态冻结在暂停时刻
	pauseAt := start.Add(30 * time.Minute)
	match.Status = database.StatusPaused
	PauseTimer(&match.Timer, pauseAt)
	if got := Elapsed(match, start.Add(90*time.Minute)); got != 26*time.Minute {
		t.Errorf("Expected elapsed frozen at 26m while paused, got %v", got)
	}
}

func TestElapsedZeroCases(t *testing.T) {
	start := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

	// 未开始
	match := &database.Match{Status: database.StatusUpcoming}
	if got := Elapsed(match, start); got != 0 {
		t.Errorf("Expected 0 elapsed before start, got %v", got)
	}

	// 已完赛
	match = &database.Match{Status: database.StatusCompleted}
	StartTimer(&match.Timer, start)
	if got := Elapsed(match, start.Add(time.Hour)); got != 0 {
		t.Errorf("Expected 0 elapsed for completed match, got %v", got)
	}

	// 负值钳位为 0
	match = &database.Match{Status: database.StatusLive}
	StartTimer(&match.Timer, start)
	match.Timer.TotalPausedMs = (2 * time.Hour).Milliseconds()
	if got := Elapsed(match, start.Add(time.Hour)); got != 0 {
		t.Errorf("Expected negative elapsed clamped to 0, got %v", got)
	}
}
