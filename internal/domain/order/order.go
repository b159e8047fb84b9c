package order

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/example/ecofinds/internal/domain/listing"
	"github.com/example/ecofinds/internal/domain/session"
	"github.com/example/ecofinds/internal/infrastructure/journal"
	"github.com/google/uuid"
)

const AggregateType = "Order"

var (
	ErrEmptyOrder    = errors.New("order must contain at least one listing")
	ErrOrderNotFound = errors.New("order not found")
)

// Order is a completed purchase. Records are read-only once created and
// visible only to their buyer.
type Order struct {
	ID           string            `json:"id"`
	Buyer        session.User      `json:"buyer"`
	Products     []listing.Listing `json:"products"`
	TotalAmount  float64           `json:"total_amount"`
	PurchaseDate time.Time         `json:"purchase_date"`
}

// Source supplies the seed order history consumed once by Load.
type Source interface {
	Orders(ctx context.Context) ([]Order, error)
}

// Store holds the purchase history, most recent first.
type Store struct {
	mu      sync.RWMutex
	orders  []Order
	ready   bool
	journal journal.Recorder
}

func NewStore(rec journal.Recorder) *Store {
	return &Store{journal: rec}
}

// Load seeds the order history and flips the store to ready. A canceled
// context leaves the store untouched.
func (s *Store) Load(ctx context.Context, src Source) error {
	orders, err := src.Orders(ctx)
	if err != nil {
		return fmt.Errorf("load orders: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.orders = orders
	s.ready = true
	s.mu.Unlock()

	log.Printf("[Orders] Loaded %d orders", len(orders))
	return nil
}

// Ready reports whether the initial load has completed.
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// GetByID returns the order with the given id.
func (s *Store) GetByID(id string) (Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.orders {
		if s.orders[i].ID == id {
			return s.orders[i], true
		}
	}
	return Order{}, false
}

// ListByBuyer returns the orders belonging to the given principal.
func (s *Store) ListByBuyer(buyerID string) []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Order, 0)
	for i := range s.orders {
		if s.orders[i].Buyer.ID == buyerID {
			out = append(out, s.orders[i])
		}
	}
	return out
}

// Checkout converts the given cart contents into an order record. Items are
// snapshotted, so later catalog edits do not rewrite purchase history.
func (s *Store) Checkout(ctx context.Context, buyer session.User, items []listing.Listing) (Order, error) {
	if len(items) == 0 {
		return Order{}, ErrEmptyOrder
	}

	var total float64
	products := make([]listing.Listing, len(items))
	copy(products, items)
	for i := range products {
		total += products[i].Price
	}

	o := Order{
		ID:           "order-" + uuid.New().String(),
		Buyer:        buyer,
		Products:     products,
		TotalAmount:  total,
		PurchaseDate: time.Now(),
	}

	s.mu.Lock()
	s.orders = append([]Order{o}, s.orders...)
	s.mu.Unlock()

	placed := make([]PlacedItem, len(products))
	for i := range products {
		placed[i] = PlacedItem{
			ListingID: products[i].ID,
			Title:     products[i].Title,
			Category:  string(products[i].Category),
			Price:     products[i].Price,
		}
	}
	event := OrderPlaced{
		OrderID:       o.ID,
		BuyerID:       buyer.ID,
		BuyerUsername: buyer.Username,
		BuyerEmail:    buyer.Email,
		Products:      placed,
		Total:         total,
		PlacedAt:      o.PurchaseDate,
	}
	if _, err := s.journal.Append(ctx, o.ID, AggregateType, EventOrderPlaced, event); err != nil {
		log.Printf("[Orders] Failed to record order %s: %v", o.ID, err)
	}

	return o, nil
}
