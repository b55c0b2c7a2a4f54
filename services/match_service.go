package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"cup-live-service/common"
	"cup-live-service/database"
	"cup-live-service/logger"
)

// TransitionAction 比赛状态迁移动作
type TransitionAction string

const (
	ActionStart       TransitionAction = "start"
	ActionPause       TransitionAction = "pause"
	ActionResume      TransitionAction = "resume"
	ActionComplete    TransitionAction = "complete"
	ActionAdjustScore TransitionAction = "adjust-score"
)

// TransitionCommand 封闭的状态迁移命令集合。
// 取代任意字段覆盖：未知动作和非法的源状态都会被拒绝。
type TransitionCommand struct {
	Action TransitionAction `json:"action"`
	ScoreA *int             `json:"scoreA,omitempty"`
	ScoreB *int             `json:"scoreB,omitempty"`
}

// EventInput 记录比赛事件的输入
type EventInput struct {
	Type     database.EventType `json:"type"`
	PlayerID string             `json:"player"`
	TeamID   string             `json:"team"`
	Minute   *int               `json:"minute"`
}

// MatchService 比赛变更服务：状态迁移、事件记录、级联删除。
// 同一场比赛的所有写操作经由 MatchLocker 串行执行，
// 持久化成功后才向 Broadcaster 发送通知。
type MatchService struct {
	stores      Stores
	broadcaster Broadcaster
	locks       *MatchLocker
	now         func() time.Time
}

// NewMatchService 创建 MatchService
func NewMatchService(stores Stores, broadcaster Broadcaster) *MatchService {
	return &MatchService{
		stores:      stores,
		broadcaster: broadcaster,
		locks:       NewMatchLocker(),
		now:         time.Now,
	}
}

// CreateMatch 创建比赛，初始状态 Upcoming、比分 0:0
func (s *MatchService) CreateMatch(ctx context.Context, m *database.Match) (*database.Match, error) {
	if m.Day == 0 || m.Gender == "" || m.Category == "" ||
		m.TeamA == "" || m.TeamB == "" || m.RefereeID == "" || m.MatchTime.IsZero() {
		return nil, fmt.Errorf("%w: missing required match fields", common.ErrValidation)
	}
	if m.TeamA == m.TeamB {
		return nil, fmt.Errorf("%w: a team cannot play against itself", common.ErrValidation)
	}

	now := s.now()
	m.ID = uuid.NewString()
	m.Status = database.StatusUpcoming
	m.ScoreA = 0
	m.ScoreB = 0
	m.Timer = database.MatchTimer{}
	m.MatchRating = nil
	m.CreatedAt = now
	m.UpdatedAt = now

	if err := s.stores.Matches().Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// GetMatch 读取单场比赛
func (s *MatchService) GetMatch(ctx context.Context, id string) (*database.Match, error) {
	return s.stores.Matches().Get(ctx, id)
}

// ListMatches 按过滤条件列出比赛
func (s *MatchService) ListMatches(ctx context.Context, filter MatchFilter) ([]*database.Match, error) {
	return s.stores.Matches().List(ctx, filter)
}

// DeleteMatch 删除比赛及其全部事件
func (s *MatchService) DeleteMatch(ctx context.Context, id string) error {
	unlock := s.locks.Lock(id)
	defer unlock()

	return s.stores.Matches().Delete(ctx, id)
}

// ListEvents 列出一场比赛的全部事件
func (s *MatchService) ListEvents(ctx context.Context, matchID string) ([]*database.MatchEvent, error) {
	if _, err := s.stores.Matches().Get(ctx, matchID); err != nil {
		return nil, err
	}
	return s.stores.Events().ListByMatch(ctx, matchID)
}

// ApplyTransition 对比赛应用一次状态迁移命令。
// 持久化成功后发送一条 match-update 广播；
// 比赛不存在时返回 ErrNotFound 且不产生任何广播。
func (s *MatchService) ApplyTransition(ctx context.Context, matchID string, cmd TransitionCommand) (*database.Match, error) {
	unlock := s.locks.Lock(matchID)
	defer unlock()

	m, err := s.stores.Matches().Get(ctx, matchID)
	if err != nil {
		return nil, err
	}

	if err := applyTransition(m, cmd, s.now()); err != nil {
		return nil, err
	}

	m.UpdatedAt = s.now()
	if err := s.stores.Matches().Save(ctx, m); err != nil {
		return nil, err
	}

	s.broadcaster.Broadcast(NewMatchUpdate(m))
	return m, nil
}

// applyTransition 迁移规则：
//
//	start:        Upcoming → Live，记录开始时刻
//	pause:        Live → Paused，记录暂停时刻
//	resume:       Paused → Live，累加暂停时长并清除暂停时刻
//	complete:     任意未完赛状态 → Completed（Upcoming 直接完赛用于弃权判负）
//	adjust-score: Live/Paused 下的人工比分修正
func applyTransition(m *database.Match, cmd TransitionCommand, now time.Time) error {
	switch cmd.Action {
	case ActionStart:
		if m.Status != database.StatusUpcoming {
			return fmt.Errorf("%w: cannot start match in status %s", common.ErrValidation, m.Status)
		}
		m.Status = database.StatusLive
		StartTimer(&m.Timer, now)

	case ActionPause:
		if m.Status != database.StatusLive {
			return fmt.Errorf("%w: cannot pause match in status %s", common.ErrValidation, m.Status)
		}
		m.Status = database.StatusPaused
		PauseTimer(&m.Timer, now)

	case ActionResume:
		if m.Status != database.StatusPaused {
			return fmt.Errorf("%w: cannot resume match in status %s", common.ErrValidation, m.Status)
		}
		m.Status = database.StatusLive
		ResumeTimer(&m.Timer, now)

	case ActionComplete:
		if m.Status == database.StatusCompleted {
			return fmt.Errorf("%w: match already completed", common.ErrValidation)
		}
		// 完赛前若仍处于暂停，先结算暂停时长
		if m.Status == database.StatusPaused {
			ResumeTimer(&m.Timer, now)
		}
		m.Status = database.StatusCompleted

	case ActionAdjustScore:
		if m.Status != database.StatusLive && m.Status != database.StatusPaused {
			return fmt.Errorf("%w: cannot adjust score in status %s", common.ErrValidation, m.Status)
		}
		if cmd.ScoreA == nil || cmd.ScoreB == nil {
			return fmt.Errorf("%w: adjust-score requires scoreA and scoreB", common.ErrValidation)
		}
		if *cmd.ScoreA < 0 || *cmd.ScoreB < 0 {
			return fmt.Errorf("%w: scores must be non-negative", common.ErrValidation)
		}
		m.ScoreA = *cmd.ScoreA
		m.ScoreB = *cmd.ScoreB

	default:
		return fmt.Errorf("%w: unknown transition action %q", common.ErrValidation, cmd.Action)
	}

	return nil
}

// SetRating 设置赛后评分 (1-5)，不触发广播
func (s *MatchService) SetRating(ctx context.Context, matchID string, rating int) (*database.Match, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", common.ErrValidation)
	}

	unlock := s.locks.Lock(matchID)
	defer unlock()

	m, err := s.stores.Matches().Get(ctx, matchID)
	if err != nil {
		return nil, err
	}

	m.MatchRating = &rating
	m.UpdatedAt = s.now()
	if err := s.stores.Matches().Save(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// RecordEvent 追加一条比赛事件并应用其比分/统计增量。
// 事件记录、球员统计和比赛比分在同一个存储事务内写入；
// 提交成功后依次广播 event-update 和 score-update。
func (s *MatchService) RecordEvent(ctx context.Context, matchID string, in EventInput) (*database.MatchEvent, error) {
	if in.Type == "" || in.PlayerID == "" || in.TeamID == "" || in.Minute == nil {
		return nil, fmt.Errorf("%w: type, player, team and minute are required", common.ErrValidation)
	}
	if !database.ValidEventType(in.Type) {
		return nil, fmt.Errorf("%w: unknown event type %q", common.ErrValidation, in.Type)
	}
	if *in.Minute < 0 {
		return nil, fmt.Errorf("%w: minute must be non-negative", common.ErrValidation)
	}

	unlock := s.locks.Lock(matchID)
	defer unlock()

	var (
		event   *database.MatchEvent
		updated *database.Match
	)

	err := s.stores.InTx(ctx, func(st Stores) error {
		m, err := st.Matches().Get(ctx, matchID)
		if err != nil {
			return err
		}
		if in.TeamID != m.TeamA && in.TeamID != m.TeamB {
			return fmt.Errorf("%w: team %s is not playing in this match", common.ErrValidation, in.TeamID)
		}

		p, err := st.Players().Get(ctx, in.PlayerID)
		if err != nil {
			return err
		}

		now := s.now()
		// 分钟数由裁判端提供，超出净比赛时间只记日志不拒绝
		if elapsed := Elapsed(m, now); elapsed > 0 && *in.Minute > int(elapsed.Minutes())+1 {
			logger.Printf("[Match] Event minute %d exceeds elapsed time for match %s", *in.Minute, matchID)
		}

		ev := &database.MatchEvent{
			ID:        uuid.NewString(),
			MatchID:   matchID,
			TeamID:    in.TeamID,
			PlayerID:  in.PlayerID,
			Type:      in.Type,
			Minute:    *in.Minute,
			CreatedAt: now,
		}

		applyEventDelta(ev, m, p)

		if err := st.Events().Append(ctx, ev); err != nil {
			return err
		}
		p.UpdatedAt = now
		if err := st.Players().Save(ctx, p); err != nil {
			return err
		}
		m.UpdatedAt = now
		if err := st.Matches().Save(ctx, m); err != nil {
			return err
		}

		event = ev
		updated = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 顺序即观察者的投递顺序：先事件，后比分
	s.broadcaster.Broadcast(NewEventUpdate(event))
	s.broadcaster.Broadcast(NewScoreUpdate(updated))

	return event, nil
}

// applyEventDelta 按事件类型更新球员统计和比赛比分。
// 乌龙球计入对方比分，不改动球员个人统计。
func applyEventDelta(ev *database.MatchEvent, m *database.Match, p *database.Player) {
	switch ev.Type {
	case database.EventGoal:
		p.Goals++
		if ev.TeamID == m.TeamA {
			m.ScoreA++
		} else {
			m.ScoreB++
		}
	case database.EventSelfGoal:
		if ev.TeamID == m.TeamA {
			m.ScoreB++
		} else {
			m.ScoreA++
		}
	case database.EventYellowCard:
		p.YellowCards++
	case database.EventRedCard:
		p.RedCards++
	case database.EventFoul:
		p.Fouls++
	}
}
