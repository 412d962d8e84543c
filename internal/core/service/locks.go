package service

import "sync"

// ownerLocks serializes writes per owner principal. Different owners
// never contend; mutations against the same ledger are mutually
// exclusive because update and delete depend on index positions a
// concurrent delete could shift.
type ownerLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newOwnerLocks() *ownerLocks {
	return &ownerLocks{locks: make(map[string]*sync.Mutex)}
}

// acquire locks the owner's mutex and returns the release func.
func (l *ownerLocks) acquire(owner string) func() {
	l.mu.Lock()
	m, ok := l.locks[owner]
	if !ok {
		m = &sync.Mutex{}
		l.locks[owner] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
