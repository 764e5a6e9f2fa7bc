package room

import (
	"sync"

	"github.com/mkrella/matchroom/internal/model"
)

// roomLocks hands out one mutex per room code, so operations on the same
// room fully serialize while different rooms never contend. Entries are
// never removed; rooms live for the process lifetime.
type roomLocks struct {
	mu sync.Mutex
	m  map[model.RoomCode]*sync.Mutex
}

func newRoomLocks() *roomLocks {
	return &roomLocks{m: make(map[model.RoomCode]*sync.Mutex)}
}

// acquire locks the mutex for the given code and returns its unlock func
func (l *roomLocks) acquire(code model.RoomCode) func() {
	l.mu.Lock()
	mu, ok := l.m[code]
	if !ok {
		mu = &sync.Mutex{}
		l.m[code] = mu
	}
	l.mu.Unlock()

	mu.Lock()
	return mu.Unlock
}
