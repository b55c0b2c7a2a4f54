package services

import (
	"sync"
)

// MatchLocker 按比赛 ID 串行化写操作。同一场比赛的并发变更
// 依次执行，不同比赛互不影响。锁对象在首次使用时创建，
// 生命周期内不回收（数量以赛程场次为上界）。
type MatchLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewMatchLocker 创建 MatchLocker
func NewMatchLocker() *MatchLocker {
	return &MatchLocker{
		locks: make(map[string]*sync.Mutex),
	}
}

// Lock 锁定指定比赛，返回解锁函数
func (l *MatchLocker) Lock(matchID string) func() {
	l.mu.Lock()
	m, ok := l.locks[matchID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[matchID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
