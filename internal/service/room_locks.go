package service

import "sync"

// roomLocks hands out one mutex per live room id. Entries are refcounted by
// join/leave so a room that winds down releases its entry instead of pinning
// every id ever seen.
type roomLocks struct {
	mu      sync.Mutex
	entries map[string]*roomLockEntry
}

type roomLockEntry struct {
	mu      sync.Mutex
	members int
}

func newRoomLocks() *roomLocks {
	return &roomLocks{entries: make(map[string]*roomLockEntry)}
}

// get returns the room mutex without touching the member count. Message
// handlers use it; they only run between a join and the matching leave, so
// the entry is already pinned.
func (l *roomLocks) get(roomID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.entries[roomID]
	if !ok {
		e = &roomLockEntry{}
		l.entries[roomID] = e
	}
	return &e.mu
}

// join pins the room entry for one member and returns its mutex.
func (l *roomLocks) join(roomID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.entries[roomID]
	if !ok {
		e = &roomLockEntry{}
		l.entries[roomID] = e
	}
	e.members++
	return &e.mu
}

// leave unpins one member and drops the entry when nobody is left. Safe to
// call because a member's leave only fires after its read loop has ended, so
// no message from that member can still be waiting on the mutex.
func (l *roomLocks) leave(roomID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.entries[roomID]
	if !ok {
		return
	}
	e.members--
	if e.members <= 0 {
		delete(l.entries, roomID)
	}
}

func (l *roomLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
