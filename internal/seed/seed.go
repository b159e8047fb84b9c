// Package seed supplies the demo data set consumed once at store
// initialization. The optional delay simulates a slow upstream fetch; loads
// respect context cancellation so an abandoned load never mutates a store.
package seed

import (
	"context"
	"time"

	"github.com/example/ecofinds/internal/domain/listing"
	"github.com/example/ecofinds/internal/domain/order"
	"github.com/example/ecofinds/internal/domain/session"
)

// Source hands out the seed principals, listings and order history.
type Source struct {
	delay time.Duration
}

// New creates a source that waits delay before answering, mimicking a fetch.
func New(delay time.Duration) *Source {
	return &Source{delay: delay}
}

func (s *Source) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Users returns the seed principal set.
func (s *Source) Users(ctx context.Context) ([]session.User, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return Users(), nil
}

// Listings returns the seed catalog.
func (s *Source) Listings(ctx context.Context) ([]listing.Listing, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return Listings(), nil
}

// Orders returns the seed purchase history.
func (s *Source) Orders(ctx context.Context) ([]order.Order, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return Orders(), nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Users builds a fresh copy of the seed principals.
func Users() []session.User {
	return []session.User{
		{ID: "user-1", Username: "JaneDoe", Email: "jane.doe@example.com", CreatedAt: date(2023, time.January, 15)},
		{ID: "user-2", Username: "JohnSmith", Email: "john.smith@example.com", CreatedAt: date(2023, time.February, 20)},
	}
}

// Listings builds a fresh copy of the seed catalog.
func Listings() []listing.Listing {
	users := Users()
	return []listing.Listing{
		{
			ID:          "prod-1",
			Title:       "Vintage Leather Armchair",
			Description: "A beautiful, well-loved leather armchair with a classic design. Perfect for a reading nook. Minor wear adds to its character.",
			Category:    listing.CategoryFurniture,
			Price:       250,
			ImageURL:    "https://picsum.photos/seed/armchair/600/400",
			Seller:      users[1],
			CreatedAt:   date(2024, time.May, 10),
		},
		{
			ID:          "prod-2",
			Title:       "Sony WH-1000XM4 Headphones",
			Description: "Industry-leading noise canceling headphones. In excellent condition with original case and cables. Amazing sound quality.",
			Category:    listing.CategoryElectronics,
			Price:       180,
			ImageURL:    "https://picsum.photos/seed/headphones/600/400",
			Seller:      users[0],
			CreatedAt:   date(2024, time.May, 12),
		},
		{
			ID:          "prod-3",
			Title:       "Classic Hardcover Novels (Set of 5)",
			Description: "A collection of five classic novels, including \"Moby Dick\" and \"Pride and Prejudice\". Great for any book lover.",
			Category:    listing.CategoryBooks,
			Price:       45,
			ImageURL:    "https://picsum.photos/seed/books/600/400",
			Seller:      users[1],
			CreatedAt:   date(2024, time.May, 15),
		},
		{
			ID:          "prod-4",
			Title:       "Men's Denim Jacket",
			Description: "A stylish and durable denim jacket, size Large. Lightly worn, no stains or tears. A timeless wardrobe staple.",
			Category:    listing.CategoryClothing,
			Price:       60,
			ImageURL:    "https://picsum.photos/seed/jacket/600/400",
			Seller:      users[0],
			CreatedAt:   date(2024, time.May, 18),
		},
		{
			ID:          "prod-5",
			Title:       "Antique Wooden Desk",
			Description: "Solid oak desk with intricate carvings. Provides a large workspace and includes three drawers. A statement piece for any home office.",
			Category:    listing.CategoryFurniture,
			Price:       400,
			ImageURL:    "https://picsum.photos/seed/desk/600/400",
			Seller:      users[1],
			CreatedAt:   date(2024, time.May, 20),
		},
		{
			ID:          "prod-6",
			Title:       "Portable Bluetooth Speaker",
			Description: "Compact and powerful speaker with 12-hour battery life. Water-resistant and perfect for outdoor use. Great sound in a small package.",
			Category:    listing.CategoryElectronics,
			Price:       50,
			ImageURL:    "https://picsum.photos/seed/speaker/600/400",
			Seller:      users[0],
			CreatedAt:   date(2024, time.May, 22),
		},
	}
}

// Orders builds a fresh copy of the seed purchase history.
func Orders() []order.Order {
	users := Users()
	listings := Listings()
	return []order.Order{
		{
			ID:           "order-1",
			Buyer:        users[0],
			Products:     []listing.Listing{listings[0], listings[2]},
			TotalAmount:  295,
			PurchaseDate: date(2024, time.April, 20),
		},
	}
}
