package listing

import "time"

const (
	EventListingCreated = "ListingCreated"
	EventListingUpdated = "ListingUpdated"
	EventListingDeleted = "ListingDeleted"
)

type ListingCreated struct {
	ListingID string    `json:"listing_id"`
	Title     string    `json:"title"`
	Category  Category  `json:"category"`
	Price     float64   `json:"price"`
	SellerID  string    `json:"seller_id"`
	CreatedAt time.Time `json:"created_at"`
}

type ListingUpdated struct {
	ListingID string    `json:"listing_id"`
	Title     string    `json:"title"`
	Category  Category  `json:"category"`
	Price     float64   `json:"price"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ListingDeleted struct {
	ListingID string    `json:"listing_id"`
	DeletedAt time.Time `json:"deleted_at"`
}
