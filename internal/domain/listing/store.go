package listing

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/example/ecofinds/internal/domain/session"
	"github.com/example/ecofinds/internal/infrastructure/journal"
)

// Source supplies the seed catalog consumed once by Load.
type Source interface {
	Listings(ctx context.Context) ([]Listing, error)
}

// Store is the catalog of listings, held most-recent-first.
type Store struct {
	mu       sync.RWMutex
	listings []Listing
	ready    bool
	journal  journal.Recorder
}

func NewStore(rec journal.Recorder) *Store {
	return &Store{journal: rec}
}

// Load seeds the catalog and flips the store to ready. A canceled context
// leaves the store untouched (abandoned loads are safe no-ops).
func (s *Store) Load(ctx context.Context, src Source) error {
	listings, err := src.Listings(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.listings = listings
	s.ready = true
	s.mu.Unlock()

	log.Printf("[Catalog] Loaded %d listings", len(listings))
	return nil
}

// Ready reports whether the initial load has completed.
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// GetByID returns the first listing matching id. Absence is not an error.
func (s *Store) GetByID(id string) (Listing, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.listings {
		if s.listings[i].ID == id {
			return s.listings[i], true
		}
	}
	return Listing{}, false
}

// All returns a copy of the catalog in its current order.
func (s *Store) All() []Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Listing, len(s.listings))
	copy(out, s.listings)
	return out
}

// BySeller returns the listings owned by the given principal, catalog order.
func (s *Store) BySeller(sellerID string) []Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Listing
	for i := range s.listings {
		if s.listings[i].Seller.ID == sellerID {
			out = append(out, s.listings[i])
		}
	}
	return out
}

// Add creates a listing from the draft, stamps the seller snapshot and
// prepends it so new listings sort first.
func (s *Store) Add(ctx context.Context, draft Draft, seller session.User) (Listing, error) {
	if err := draft.validate(); err != nil {
		return Listing{}, err
	}

	s.mu.Lock()
	created := Listing{
		ID:          s.newListingID(),
		Title:       draft.Title,
		Description: draft.Description,
		Category:    draft.Category,
		Price:       draft.Price,
		ImageURL:    draft.ImageURL,
		Seller:      seller,
		CreatedAt:   time.Now(),
	}
	s.listings = append([]Listing{created}, s.listings...)
	s.mu.Unlock()

	event := ListingCreated{
		ListingID: created.ID,
		Title:     created.Title,
		Category:  created.Category,
		Price:     created.Price,
		SellerID:  seller.ID,
		CreatedAt: created.CreatedAt,
	}
	if _, err := s.journal.Append(ctx, created.ID, AggregateType, EventListingCreated, event); err != nil {
		log.Printf("[Catalog] Failed to record creation of %s: %v", created.ID, err)
	}

	return created, nil
}

// Update replaces the stored listing whose id matches, in place. Only the
// seller may update, and the immutable fields (id, seller, creation time)
// are carried over from the stored record regardless of what the caller
// supplied for them.
func (s *Store) Update(ctx context.Context, updated Listing, actor session.User) (Listing, error) {
	s.mu.Lock()
	idx := -1
	for i := range s.listings {
		if s.listings[i].ID == updated.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return Listing{}, ErrListingNotFound
	}

	existing := s.listings[idx]
	if existing.Seller.ID != actor.ID {
		s.mu.Unlock()
		return Listing{}, ErrNotOwner
	}

	updated.ID = existing.ID
	updated.Seller = existing.Seller
	updated.CreatedAt = existing.CreatedAt
	if err := (Draft{
		Title:    updated.Title,
		Category: updated.Category,
		Price:    updated.Price,
	}).validate(); err != nil {
		s.mu.Unlock()
		return Listing{}, err
	}

	s.listings[idx] = updated
	s.mu.Unlock()

	event := ListingUpdated{
		ListingID: updated.ID,
		Title:     updated.Title,
		Category:  updated.Category,
		Price:     updated.Price,
		UpdatedAt: time.Now(),
	}
	if _, err := s.journal.Append(ctx, updated.ID, AggregateType, EventListingUpdated, event); err != nil {
		log.Printf("[Catalog] Failed to record update of %s: %v", updated.ID, err)
	}

	return updated, nil
}

// Delete removes the matching listing. Absent ids are a no-op; a present
// listing is only removed when the actor is its seller.
func (s *Store) Delete(ctx context.Context, id string, actor session.User) error {
	s.mu.Lock()
	idx := -1
	for i := range s.listings {
		if s.listings[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}
	if s.listings[idx].Seller.ID != actor.ID {
		s.mu.Unlock()
		return ErrNotOwner
	}
	s.listings = append(s.listings[:idx], s.listings[idx+1:]...)
	s.mu.Unlock()

	event := ListingDeleted{ListingID: id, DeletedAt: time.Now()}
	if _, err := s.journal.Append(ctx, id, AggregateType, EventListingDeleted, event); err != nil {
		log.Printf("[Catalog] Failed to record deletion of %s: %v", id, err)
	}

	return nil
}

// newListingID derives a prod-<millis> id, bumping past collisions so ids
// stay unique when listings are created within the same millisecond.
// Callers must hold s.mu.
func (s *Store) newListingID() string {
	ms := time.Now().UnixMilli()
	for {
		id := fmt.Sprintf("prod-%d", ms)
		taken := false
		for i := range s.listings {
			if s.listings[i].ID == id {
				taken = true
				break
			}
		}
		if !taken {
			return id
		}
		ms++
	}
}
