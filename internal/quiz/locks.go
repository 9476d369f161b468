package quiz

import "sync"

// userLocks serializes engine operations per user id so the take-then-assign
// sequence resolves each pending question exactly once even when a platform
// delivers two messages from the same user concurrently.
type userLocks struct {
	mu    sync.Mutex
	locks map[int64]*userLock
}

type userLock struct {
	mu   sync.Mutex
	refs int
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[int64]*userLock)}
}

// acquire blocks until the per-user lock is held and returns its release
// function. Lock entries are reference counted and removed when idle, so the
// map does not grow with the lifetime user population.
func (l *userLocks) acquire(userID int64) func() {
	l.mu.Lock()
	entry, ok := l.locks[userID]
	if !ok {
		entry = &userLock{}
		l.locks[userID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, userID)
		}
		l.mu.Unlock()
	}
}
