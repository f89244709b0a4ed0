package cart

import (
	"sync"

	"github.com/google/uuid"
)

// UserLocks serializes cart mutations per user. Concurrent adds of the
// same variant must land on one line, and checkout must not interleave
// with cart writes for the same user.
type UserLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*userLock
}

type userLock struct {
	mu   sync.Mutex
	refs int
}

// NewUserLocks creates an empty lock table
func NewUserLocks() *UserLocks {
	return &UserLocks{locks: make(map[uuid.UUID]*userLock)}
}

// Lock acquires the lock for a user, blocking until available
func (l *UserLocks) Lock(userID uuid.UUID) {
	l.mu.Lock()
	entry, ok := l.locks[userID]
	if !ok {
		entry = &userLock{}
		l.locks[userID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
}

// Unlock releases the lock for a user and drops the table entry once
// no goroutine is waiting on it.
func (l *UserLocks) Unlock(userID uuid.UUID) {
	l.mu.Lock()
	entry, ok := l.locks[userID]
	if !ok {
		l.mu.Unlock()
		return
	}
	entry.refs--
	if entry.refs == 0 {
		delete(l.locks, userID)
	}
	l.mu.Unlock()

	entry.mu.Unlock()
}
