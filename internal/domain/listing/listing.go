package listing

import (
	"errors"
	"time"

	"github.com/example/ecofinds/internal/domain/session"
)

const AggregateType = "Listing"

var (
	ErrListingNotFound = errors.New("listing not found")
	ErrNotOwner        = errors.New("only the seller may modify this listing")
	ErrInvalidTitle    = errors.New("title is required")
	ErrInvalidPrice    = errors.New("price must not be negative")
	ErrInvalidCategory = errors.New("unknown category")
)

// Category is the fixed set of listing categories.
type Category string

const (
	CategoryFurniture   Category = "Furniture"
	CategoryElectronics Category = "Electronics"
	CategoryBooks       Category = "Books"
	CategoryClothing    Category = "Clothing"
	CategoryOther       Category = "Other"
)

// Categories lists every valid category, in display order.
func Categories() []Category {
	return []Category{
		CategoryFurniture,
		CategoryElectronics,
		CategoryBooks,
		CategoryClothing,
		CategoryOther,
	}
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryFurniture, CategoryElectronics, CategoryBooks, CategoryClothing, CategoryOther:
		return true
	}
	return false
}

// Listing is a second-hand item offered for sale. Seller is a denormalized
// snapshot of the principal taken at creation time, not a live reference:
// principals are immutable in this system, so the snapshot never drifts.
type Listing struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Category    Category     `json:"category"`
	Price       float64      `json:"price"`
	ImageURL    string       `json:"image_url"`
	Seller      session.User `json:"seller"`
	CreatedAt   time.Time    `json:"created_at"`
}

// Draft carries the caller-supplied fields of a new listing. The store
// synthesizes the id, timestamp and seller snapshot.
type Draft struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Price       float64  `json:"price"`
	ImageURL    string   `json:"image_url"`
}

func (d Draft) validate() error {
	if d.Title == "" {
		return ErrInvalidTitle
	}
	if d.Price < 0 {
		return ErrInvalidPrice
	}
	if !d.Category.Valid() {
		return ErrInvalidCategory
	}
	return nil
}
