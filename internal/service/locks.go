package service

import "sync"

// userLocks serializes mutating operations per user so balance,
// mining-power and session updates stay atomic relative to each other.
type userLocks struct {
	mu sync.Mutex
	m  map[int64]*sync.Mutex
}

func newUserLocks() *userLocks {
	return &userLocks{m: make(map[int64]*sync.Mutex)}
}

// Lock acquires the mutex for one user and returns its unlock func.
func (l *userLocks) Lock(userID int64) func() {
	l.mu.Lock()
	um, ok := l.m[userID]
	if !ok {
		um = &sync.Mutex{}
		l.m[userID] = um
	}
	l.mu.Unlock()

	um.Lock()
	return um.Unlock
}
