package services

import (
	"time"

	"cup-live-service/database"
)

// StartTimer 记录比赛开始时刻并清零暂停累计
func StartTimer(t *database.MatchTimer, now time.Time) {
	start := now
	t.StartTime = &start
	t.PauseTime = nil
	t.TotalPausedMs = 0
}

// PauseTimer 记录暂停时刻。startTime 与累计暂停时长保持不变。
func PauseTimer(t *database.MatchTimer, now time.Time) {
	pause := now
	t.PauseTime = &pause
}

// ResumeTimer 将本次暂停时长累加到 totalPausedDuration 并清除 pauseTime
func ResumeTimer(t *database.MatchTimer, now time.Time) {
	if t.PauseTime == nil {
		return
	}
	t.TotalPausedMs += now.Sub(*t.PauseTime).Milliseconds()
	t.PauseTime = nil
}

// Elapsed 计算比赛净进行时间：(now − startTime) − 累计暂停时长。
// 仅对 Live/Paused 状态有意义；Paused 状态下冻结在暂停时刻。
func Elapsed(m *database.Match, now time.Time) time.Duration {
	if m.Timer.StartTime == nil {
		return 0
	}
	if m.Status != database.StatusLive && m.Status != database.StatusPaused {
		return 0
	}

	end := now
	if m.Status == database.StatusPaused && m.Timer.PauseTime != nil {
		end = *m.Timer.PauseTime
	}

	elapsed := end.Sub(*m.Timer.StartTime) - time.Duration(m.Timer.TotalPausedMs)*time.Millisecond
	if elapsed < 0 {
		return 0
	}
	return elapsed
}
