package order

import "time"

const EventOrderPlaced = "OrderPlaced"

// OrderPlaced carries everything downstream consumers (receipt mail, audit)
// need, so they never have to reach back into the stores.
type OrderPlaced struct {
	OrderID       string       `json:"order_id"`
	BuyerID       string       `json:"buyer_id"`
	BuyerUsername string       `json:"buyer_username"`
	BuyerEmail    string       `json:"buyer_email"`
	Products      []PlacedItem `json:"products"`
	Total         float64      `json:"total"`
	PlacedAt      time.Time    `json:"placed_at"`
}

// PlacedItem is one purchased listing inside an OrderPlaced event.
type PlacedItem struct {
	ListingID string  `json:"listing_id"`
	Title     string  `json:"title"`
	Category  string  `json:"category"`
	Price     float64 `json:"price"`
}
