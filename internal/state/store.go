package state

import (
	"sync"
	"time"
)

// Snapshot is an immutable view of a Store at one point in time.
type Snapshot[E any] struct {
	Items       []E
	Version     uint64 // bumped by every Replace; zero means nothing fetched yet
	Fetching    bool
	LastUpdated time.Time
}

// Len returns the number of items in the snapshot.
func (s Snapshot[E]) Len() int {
	return len(s.Items)
}

// Store holds the latest result set for one view. One background task writes,
// the render loop reads every frame.
type Store[E any] struct {
	mu       sync.RWMutex
	items    []E
	version  uint64
	fetching bool
	updated  time.Time
}

// Replace installs items as the new result set and advances the version.
func (s *Store[E]) Replace(items []E) {
	dup := cloneItems(items)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = dup
	s.version++
	s.updated = time.Now()
}

// SetFetching records whether a request is currently in flight.
func (s *Store[E]) SetFetching(fetching bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetching = fetching
}

// Snapshot returns a copy of the current state.
func (s *Store[E]) Snapshot() Snapshot[E] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot[E]{
		Items:       cloneItems(s.items),
		Version:     s.version,
		Fetching:    s.fetching,
		LastUpdated: s.updated,
	}
}

// Version returns the current version without copying the items.
func (s *Store[E]) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

func cloneItems[E any](items []E) []E {
	if len(items) == 0 {
		return nil
	}
	dup := make([]E, len(items))
	copy(dup, items)
	return dup
}
