package services

import (
	"context"

	"cup-live-service/database"
)

// MatchFilter 比赛列表过滤条件，零值字段不参与过滤
type MatchFilter struct {
	Day      int
	Gender   string
	Category string
	Status   database.MatchStatus
}

// MatchStore 比赛读写存储
type MatchStore interface {
	Get(ctx context.Context, id string) (*database.Match, error)
	Create(ctx context.Context, m *database.Match) error
	Save(ctx context.Context, m *database.Match) error
	List(ctx context.Context, filter MatchFilter) ([]*database.Match, error)
	ListByReferee(ctx context.Context, refereeID string) ([]*database.Match, error)
	Delete(ctx context.Context, id string) error
}

// EventStore 比赛事件只追加存储
type EventStore interface {
	Append(ctx context.Context, ev *database.MatchEvent) error
	ListByMatch(ctx context.Context, matchID string) ([]*database.MatchEvent, error)
}

// PlayerStore 球员存储，含累计统计字段
type PlayerStore interface {
	Get(ctx context.Context, id string) (*database.Player, error)
	Create(ctx context.Context, p *database.Player) error
	Save(ctx context.Context, p *database.Player) error
	List(ctx context.Context, teamID string) ([]*database.Player, error)
}

// TeamStore 球队存储，积分榜只依赖 ListAll
type TeamStore interface {
	Get(ctx context.Context, id string) (*database.Team, error)
	Create(ctx context.Context, t *database.Team) error
	ListAll(ctx context.Context) ([]*database.Team, error)
}

// RefereeStore 裁判存储
type RefereeStore interface {
	Get(ctx context.Context, id string) (*database.Referee, error)
	GetByAuthSubject(ctx context.Context, subject string) (*database.Referee, error)
	Create(ctx context.Context, r *database.Referee) error
	List(ctx context.Context) ([]*database.Referee, error)
}

// Stores 存储集合。InTx 在一个逻辑事务内执行 fn：
// Postgres 实现映射为单个数据库事务，内存实现以互斥串行保证原子性。
// 事件追加 + 球员统计 + 比赛比分的联合写入必须经由 InTx。
type Stores interface {
	Matches() MatchStore
	Events() EventStore
	Players() PlayerStore
	Teams() TeamStore
	Referees() RefereeStore

	InTx(ctx context.Context, fn func(Stores) error) error
}
