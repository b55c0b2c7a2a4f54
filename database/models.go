package database

import (
	"time"
)

// MatchStatus 比赛状态
type MatchStatus string

const (
	StatusUpcoming  MatchStatus = "Upcoming"
	StatusLive      MatchStatus = "Live"
	StatusPaused    MatchStatus = "Paused"
	StatusCompleted MatchStatus = "Completed"
)

// ValidStatus 检查状态是否为四个枚举值之一
func ValidStatus(s MatchStatus) bool {
	switch s {
	case StatusUpcoming, StatusLive, StatusPaused, StatusCompleted:
		return true
	}
	return false
}

// EventType 比赛事件类型
type EventType string

const (
	EventGoal       EventType = "Goal"
	EventYellowCard EventType = "Yellow Card"
	EventRedCard    EventType = "Red Card"
	EventFoul       EventType = "Foul"
	EventSelfGoal   EventType = "Self Goal"
)

// ValidEventType 检查事件类型是否合法
func ValidEventType(t EventType) bool {
	switch t {
	case EventGoal, EventYellowCard, EventRedCard, EventFoul, EventSelfGoal:
		return true
	}
	return false
}

// MatchTimer 计时器状态。pauseTime 仅在 status = Paused 时有值，
// totalPausedDuration 为累计暂停毫秒数。
type MatchTimer struct {
	StartTime     *time.Time `json:"startTime"`
	PauseTime     *time.Time `json:"pauseTime"`
	TotalPausedMs int64      `json:"totalPausedDuration"`
}

// Team 球队
type Team struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Gender    string    `json:"gender"`
	Category  string    `json:"category"`
	CoachName string    `json:"coachName"`
	LogoURL   string    `json:"logoUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CategoryKey 组别复合键（性别 + 年龄组），积分榜按此分区
func (t *Team) CategoryKey() string {
	return t.Gender + " " + t.Category
}

// Player 球员。goals/yellowCards/redCards/fouls 是该球员
// 全部 MatchEvent 的累计投影，只增不减。
type Player struct {
	ID           string    `json:"id"`
	TeamID       string    `json:"team"`
	Name         string    `json:"name"`
	DOB          time.Time `json:"dob"`
	JerseyNumber int       `json:"jerseyNumber"`
	Position     string    `json:"position"`
	PhotoURL     string    `json:"photoUrl"`
	Category     string    `json:"category"`
	Goals        int       `json:"goals"`
	YellowCards  int       `json:"yellowCards"`
	RedCards     int       `json:"redCards"`
	Fouls        int       `json:"fouls"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Referee 裁判。AuthSubject 对应外部认证系统的用户标识。
type Referee struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	AuthSubject       string    `json:"authSubject"`
	CategoryExpertise []string  `json:"categoryExpertise"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// Match 一场比赛，比分/状态/计时器的权威记录
type Match struct {
	ID           string      `json:"id"`
	Day          int         `json:"day"`
	Gender       string      `json:"gender"`
	Category     string      `json:"category"`
	TeamA        string      `json:"teamA"`
	TeamB        string      `json:"teamB"`
	RefereeID    string      `json:"referee"`
	MatchTime    time.Time   `json:"matchTime"`
	GroundNumber string      `json:"groundNumber,omitempty"`
	Status       MatchStatus `json:"status"`
	ScoreA       int         `json:"scoreA"`
	ScoreB       int         `json:"scoreB"`
	Timer        MatchTimer  `json:"timer"`
	MatchRating  *int        `json:"matchRating,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// CategoryKey 比赛所属组别复合键
func (m *Match) CategoryKey() string {
	return m.Gender + " " + m.Category
}

// MatchEvent 一次比赛内事件的不可变追加记录
type MatchEvent struct {
	ID        string    `json:"id"`
	MatchID   string    `json:"match"`
	TeamID    string    `json:"team"`
	PlayerID  string    `json:"player"`
	Type      EventType `json:"type"`
	Minute    int       `json:"minute"`
	CreatedAt time.Time `json:"createdAt"`
}
