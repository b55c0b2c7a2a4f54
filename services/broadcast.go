package services

import (
	"cup-live-service/database"
)

// 广播消息类型
const (
	MessageMatchUpdate = "match-update"
	MessageEventUpdate = "event-update"
	MessageScoreUpdate = "score-update"
)

// Envelope 广播消息信封，线上格式为自描述的 {type, payload}
type Envelope struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`

	// MatchID 供 Hub 按比赛过滤，不进入线上格式
	MatchID string `json:"-"`
}

// MatchUpdatePayload 比赛状态变更（状态/比分/计时器）
type MatchUpdatePayload struct {
	MatchID string               `json:"matchId"`
	Status  database.MatchStatus `json:"status"`
	ScoreA  int                  `json:"scoreA"`
	ScoreB  int                  `json:"scoreB"`
	Timer   database.MatchTimer  `json:"timer"`
}

// EventUpdatePayload 新记录的比赛事件
type EventUpdatePayload struct {
	MatchID string               `json:"matchId"`
	Event   *database.MatchEvent `json:"event"`
}

// ScoreUpdatePayload 比分变更
type ScoreUpdatePayload struct {
	MatchID string `json:"matchId"`
	ScoreA  int    `json:"scoreA"`
	ScoreB  int    `json:"scoreB"`
}

// NewMatchUpdate 构造 match-update 消息
func NewMatchUpdate(m *database.Match) *Envelope {
	return &Envelope{
		Type:    MessageMatchUpdate,
		MatchID: m.ID,
		Payload: MatchUpdatePayload{
			MatchID: m.ID,
			Status:  m.Status,
			ScoreA:  m.ScoreA,
			ScoreB:  m.ScoreB,
			Timer:   m.Timer,
		},
	}
}

// NewEventUpdate 构造 event-update 消息
func NewEventUpdate(ev *database.MatchEvent) *Envelope {
	return &Envelope{
		Type:    MessageEventUpdate,
		MatchID: ev.MatchID,
		Payload: EventUpdatePayload{
			MatchID: ev.MatchID,
			Event:   ev,
		},
	}
}

// NewScoreUpdate 构造 score-update 消息
func NewScoreUpdate(m *database.Match) *Envelope {
	return &Envelope{
		Type:    MessageScoreUpdate,
		MatchID: m.ID,
		Payload: ScoreUpdatePayload{
			MatchID: m.ID,
			ScoreA:  m.ScoreA,
			ScoreB:  m.ScoreB,
		},
	}
}

// Broadcaster 消息广播的抽象接口。投递是尽力而为：
// 广播失败不回传给变更操作的调用方。
type Broadcaster interface {
	Broadcast(msg *Envelope)
}

// FanoutBroadcaster 将同一条消息依次转发给多个下游
// （WebSocket Hub、AMQP 桥等）
type FanoutBroadcaster struct {
	targets []Broadcaster
}

// NewFanoutBroadcaster 创建 FanoutBroadcaster
func NewFanoutBroadcaster(targets ...Broadcaster) *FanoutBroadcaster {
	return &FanoutBroadcaster{targets: targets}
}

// Broadcast 实现 Broadcaster 接口
func (f *FanoutBroadcaster) Broadcast(msg *Envelope) {
	for _, t := range f.targets {
		t.Broadcast(msg)
	}
}
