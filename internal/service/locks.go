package service

import "sync"

// GroupLocks serializes writes within a single group. Approval tallies,
// overdue tallies and balance-dependent payment checks all read state
// and then write based on it, so concurrent writers to the same group
// must take the group's lock first. Different groups never contend.
type GroupLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewGroupLocks() *GroupLocks {
	return &GroupLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the lock for groupID and returns the unlock function.
func (g *GroupLocks) Lock(groupID string) func() {
	g.mu.Lock()
	l, ok := g.locks[groupID]
	if !ok {
		l = &sync.Mutex{}
		g.locks[groupID] = l
	}
	g.mu.Unlock()

	l.Lock()
	return l.Unlock
}
