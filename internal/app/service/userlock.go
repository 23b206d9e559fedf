package service

import "sync"

// userLocks serializes cart mutations per user. The gate check and the
// write that follows it must not interleave with another request for
// the same user, or two requests could both pass the ceiling check
// against a stale total.
type userLocks struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[uint]*sync.Mutex)}
}

// Lock acquires the mutex for a user and returns its unlock func.
func (l *userLocks) Lock(userID uint) func() {
	l.mu.Lock()
	m, ok := l.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[userID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
