package market

import (
	"errors"
	"sync"
)

// ErrNoSnapshot is returned by Latest before the first Set.
var ErrNoSnapshot = errors.New("no snapshot available")

// SnapshotStore holds the last-known quote snapshot. A background feed writes
// it, the decision loop reads it at tick time. The whole snapshot is swapped
// under the lock so a reader can never observe a half-updated tick.
type SnapshotStore struct {
	mu   sync.RWMutex
	last QuoteSnapshot
	set  bool
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

func (s *SnapshotStore) Set(q QuoteSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = q
	s.set = true
}

func (s *SnapshotStore) Latest() (QuoteSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.set {
		return QuoteSnapshot{}, ErrNoSnapshot
	}
	return s.last, nil
}
