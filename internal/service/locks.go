package service

import (
	"sync"

	"github.com/Niranjan-NN/stream360/internal/domain"
)

// roomLocks serializes mutations per room id so concurrent join/leave on
// one room cannot lose updates, while different rooms proceed in
// parallel. Entries are refcounted and removed once idle.
type roomLocks struct {
	mu    sync.Mutex
	locks map[domain.RoomID]*roomLock
}

type roomLock struct {
	mu   sync.Mutex
	refs int
}

func newRoomLocks() *roomLocks {
	return &roomLocks{locks: make(map[domain.RoomID]*roomLock)}
}

func (l *roomLocks) lock(id domain.RoomID) (unlock func()) {
	l.mu.Lock()
	entry, ok := l.locks[id]
	if !ok {
		entry = &roomLock{}
		l.locks[id] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}
