package cart

import (
	"sync"

	"github.com/example/ecofinds/internal/domain/listing"
	"github.com/example/ecofinds/internal/domain/session"
)

// Store holds the current buyer's selected-but-unpurchased listings,
// de-duplicated by listing id. Contents belong to the session: the store
// observes the identity store and empties itself whenever the current
// principal becomes absent. The dependency is strictly one-way.
type Store struct {
	mu    sync.RWMutex
	items []listing.Listing
}

// NewStore creates a cart bound to the given identity store. Pass nil for a
// free-standing cart (tests that exercise membership semantics alone).
func NewStore(sessions *session.Store) *Store {
	s := &Store{}
	if sessions != nil {
		sessions.OnSessionChange(func(u *session.User) {
			if u == nil {
				s.Clear()
			}
		})
	}
	return s
}

// Add inserts the listing unless an entry with the same id is already
// present. Adding a member twice is a no-op; the return value reports
// whether the cart changed.
func (s *Store) Add(l listing.Listing) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == l.ID {
			return false
		}
	}
	s.items = append(s.items, l)
	return true
}

// Remove drops the entry with the given id. Removing a non-member is a no-op.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties the cart unconditionally.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}

// Items returns a copy of the cart contents in insertion order.
func (s *Store) Items() []listing.Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]listing.Listing, len(s.items))
	copy(out, s.items)
	return out
}

// Contains reports membership by listing id.
func (s *Store) Contains(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.items {
		if s.items[i].ID == id {
			return true
		}
	}
	return false
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Total is the sum of member prices, recomputed on every call rather than
// cached alongside the items.
func (s *Store) Total() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total float64
	for i := range s.items {
		total += s.items[i].Price
	}
	return total
}
