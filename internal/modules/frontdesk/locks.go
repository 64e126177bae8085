package frontdesk

import "sync"

// roomLocks serializes desk operations per room. It keeps one mutex
// per room id for the life of the process; a hotel has a bounded room
// count, so entries are never evicted.
type roomLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newRoomLocks() *roomLocks {
	return &roomLocks{locks: make(map[int64]*sync.Mutex)}
}

func (r *roomLocks) get(roomID int64) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.locks[roomID]
	if !ok {
		m = &sync.Mutex{}
		r.locks[roomID] = m
	}
	return m
}

// lock acquires the mutex for one room.
func (r *roomLocks) lock(roomID int64) func() {
	m := r.get(roomID)
	m.Lock()
	return m.Unlock
}

// lockPair acquires two room mutexes in id order so that concurrent
// room moves cannot deadlock.
func (r *roomLocks) lockPair(a, b int64) func() {
	if a == b {
		return r.lock(a)
	}
	if b < a {
		a, b = b, a
	}
	first, second := r.get(a), r.get(b)
	first.Lock()
	second.Lock()
	return func() {
		second.Unlock()
		first.Unlock()
	}
}
