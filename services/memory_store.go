package services

import (
	"context"
	"sort"
	"sync"

	"cup-live-service/common"
	"cup-live-service/database"
)

// MemoryStores 是 Stores 接口的内存实现，用于测试和
// DATABASE_URL=memory 的演示模式。InTx 以互斥串行保证
// 联合写入之间互不交错；不支持回滚，调用方须先校验后写入。
type MemoryStores struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	teams    map[string]*database.Team
	players  map[string]*database.Player
	referees map[string]*database.Referee
	matches  map[string]*database.Match
	events   map[string][]*database.MatchEvent
}

// NewMemoryStores 创建 MemoryStores 实例
func NewMemoryStores() *MemoryStores {
	return &MemoryStores{
		teams:    make(map[string]*database.Team),
		players:  make(map[string]*database.Player),
		referees: make(map[string]*database.Referee),
		matches:  make(map[string]*database.Match),
		events:   make(map[string][]*database.MatchEvent),
	}
}

func (s *MemoryStores) Matches() MatchStore    { return &memoryMatchStore{s: s} }
func (s *MemoryStores) Events() EventStore     { return &memoryEventStore{s: s} }
func (s *MemoryStores) Players() PlayerStore   { return &memoryPlayerStore{s: s} }
func (s *MemoryStores) Teams() TeamStore       { return &memoryTeamStore{s: s} }
func (s *MemoryStores) Referees() RefereeStore { return &memoryRefereeStore{s: s} }

// InTx 串行执行联合写入
func (s *MemoryStores) InTx(ctx context.Context, fn func(Stores) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(s)
}

// --- matches ---

type memoryMatchStore struct {
	s *MemoryStores
}

func (m *memoryMatchStore) Get(ctx context.Context, id string) (*database.Match, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	match, ok := m.s.matches[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return copyMatch(match), nil
}

func (m *memoryMatchStore) Create(ctx context.Context, match *database.Match) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	if _, ok := m.s.matches[match.ID]; ok {
		return common.ErrConflict
	}
	m.s.matches[match.ID] = copyMatch(match)
	return nil
}

func (m *memoryMatchStore) Save(ctx context.Context, match *database.Match) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	if _, ok := m.s.matches[match.ID]; !ok {
		return common.ErrNotFound
	}
	m.s.matches[match.ID] = copyMatch(match)
	return nil
}

func (m *memoryMatchStore) List(ctx context.Context, filter MatchFilter) ([]*database.Match, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	var matches []*database.Match
	for _, match := range m.s.matches {
		if filter.Day != 0 && match.Day != filter.Day {
			continue
		}
		if filter.Gender != "" && match.Gender != filter.Gender {
			continue
		}
		if filter.Category != "" && match.Category != filter.Category {
			continue
		}
		if filter.Status != "" && match.Status != filter.Status {
			continue
		}
		matches = append(matches, copyMatch(match))
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].MatchTime.Before(matches[j].MatchTime)
	})
	return matches, nil
}

func (m *memoryMatchStore) ListByReferee(ctx context.Context, refereeID string) ([]*database.Match, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	var matches []*database.Match
	for _, match := range m.s.matches {
		if match.RefereeID == refereeID {
			matches = append(matches, copyMatch(match))
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].MatchTime.Before(matches[j].MatchTime)
	})
	return matches, nil
}

func (m *memoryMatchStore) Delete(ctx context.Context, id string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	if _, ok := m.s.matches[id]; !ok {
		return common.ErrNotFound
	}
	delete(m.s.matches, id)
	// 级联删除事件
	delete(m.s.events, id)
	return nil
}

// --- events ---

type memoryEventStore struct {
	s *MemoryStores
}

func (e *memoryEventStore) Append(ctx context.Context, ev *database.MatchEvent) error {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()

	copied := *ev
	e.s.events[ev.MatchID] = append(e.s.events[ev.MatchID], &copied)
	return nil
}

func (e *memoryEventStore) ListByMatch(ctx context.Context, matchID string) ([]*database.MatchEvent, error) {
	e.s.mu.RLock()
	defer e.s.mu.RUnlock()

	var events []*database.MatchEvent
	for _, ev := range e.s.events[matchID] {
		copied := *ev
		events = append(events, &copied)
	}
	return events, nil
}

// --- players ---

type memoryPlayerStore struct {
	s *MemoryStores
}

func (p *memoryPlayerStore) Get(ctx context.Context, id string) (*database.Player, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()

	player, ok := p.s.players[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *player
	return &copied, nil
}

func (p *memoryPlayerStore) Create(ctx context.Context, player *database.Player) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	// 球衣号码在队内唯一
	for _, existing := range p.s.players {
		if existing.TeamID == player.TeamID && existing.JerseyNumber == player.JerseyNumber {
			return common.ErrConflict
		}
	}
	copied := *player
	p.s.players[player.ID] = &copied
	return nil
}

func (p *memoryPlayerStore) Save(ctx context.Context, player *database.Player) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	if _, ok := p.s.players[player.ID]; !ok {
		return common.ErrNotFound
	}
	copied := *player
	p.s.players[player.ID] = &copied
	return nil
}

func (p *memoryPlayerStore) List(ctx context.Context, teamID string) ([]*database.Player, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()

	var players []*database.Player
	for _, player := range p.s.players {
		if teamID != "" && player.TeamID != teamID {
			continue
		}
		copied := *player
		players = append(players, &copied)
	}

	sort.Slice(players, func(i, j int) bool {
		return players[i].JerseyNumber < players[j].JerseyNumber
	})
	return players, nil
}

// --- teams ---

type memoryTeamStore struct {
	s *MemoryStores
}

func (t *memoryTeamStore) Get(ctx context.Context, id string) (*database.Team, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	team, ok := t.s.teams[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *team
	return &copied, nil
}

func (t *memoryTeamStore) Create(ctx context.Context, team *database.Team) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	// 队名在组别内唯一
	for _, existing := range t.s.teams {
		if existing.Name == team.Name && existing.Gender == team.Gender && existing.Category == team.Category {
			return common.ErrConflict
		}
	}
	copied := *team
	t.s.teams[team.ID] = &copied
	return nil
}

func (t *memoryTeamStore) ListAll(ctx context.Context) ([]*database.Team, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	var teams []*database.Team
	for _, team := range t.s.teams {
		copied := *team
		teams = append(teams, &copied)
	}

	sort.Slice(teams, func(i, j int) bool {
		if teams[i].Gender != teams[j].Gender {
			return teams[i].Gender < teams[j].Gender
		}
		if teams[i].Category != teams[j].Category {
			return teams[i].Category < teams[j].Category
		}
		return teams[i].Name < teams[j].Name
	})
	return teams, nil
}

// --- referees ---

type memoryRefereeStore struct {
	s *MemoryStores
}

func (r *memoryRefereeStore) Get(ctx context.Context, id string) (*database.Referee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	referee, ok := r.s.referees[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *referee
	return &copied, nil
}

func (r *memoryRefereeStore) GetByAuthSubject(ctx context.Context, subject string) (*database.Referee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, referee := range r.s.referees {
		if referee.AuthSubject == subject {
			copied := *referee
			return &copied, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *memoryRefereeStore) Create(ctx context.Context, referee *database.Referee) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.referees {
		if existing.AuthSubject == referee.AuthSubject {
			return common.ErrConflict
		}
	}
	copied := *referee
	r.s.referees[referee.ID] = &copied
	return nil
}

func (r *memoryRefereeStore) List(ctx context.Context) ([]*database.Referee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var referees []*database.Referee
	for _, referee := range r.s.referees {
		copied := *referee
		referees = append(referees, &copied)
	}

	sort.Slice(referees, func(i, j int) bool {
		return referees[i].Name < referees[j].Name
	})
	return referees, nil
}

// copyMatch 深拷贝比赛记录，避免调用方与存储共享指针
func copyMatch(m *database.Match) *database.Match {
	copied := *m
	if m.Timer.StartTime != nil {
		t := *m.Timer.StartTime
		copied.Timer.StartTime = &t
	}
	if m.Timer.PauseTime != nil {
		t := *m.Timer.PauseTime
		copied.Timer.PauseTime = &t
	}
	if m.MatchRating != nil {
		r := *m.MatchRating
		copied.MatchRating = &r
	}
	return &copied
}
