package db

import "sync"

// placeLocks is a keyed mutex: one lock per place id, dropped when the last
// holder releases it.
type placeLocks struct {
	mu    sync.Mutex
	locks map[string]*placeLock
}

type placeLock struct {
	sync.Mutex
	refs int
}

func newPlaceLocks() *placeLocks {
	return &placeLocks{locks: make(map[string]*placeLock)}
}

// Lock blocks until the caller holds the lock of placeID and returns the
// function releasing it.
func (l *placeLocks) Lock(placeID string) func() {
	l.mu.Lock()
	lock, ok := l.locks[placeID]
	if !ok {
		lock = &placeLock{}
		l.locks[placeID] = lock
	}
	lock.refs++
	l.mu.Unlock()

	lock.Lock()
	return func() {
		lock.Unlock()
		l.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(l.locks, placeID)
		}
		l.mu.Unlock()
	}
}

func (l *placeLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
