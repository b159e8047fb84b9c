package notification

import (
	"context"
	"encoding/json"
	"log"

	"github.com/example/ecofinds/internal/domain/listing"
	"github.com/example/ecofinds/internal/domain/order"
	"github.com/example/ecofinds/internal/domain/session"
	"github.com/example/ecofinds/internal/email"
	"github.com/example/ecofinds/internal/infrastructure/journal"
)

// Handler turns published journal events into purchase receipt mail. The
// OrderPlaced event is self-contained, so no store access is needed here.
type Handler struct {
	emailService *email.Service
}

// NewHandler creates a new notification handler
func NewHandler(emailSvc *email.Service) *Handler {
	return &Handler{emailService: emailSvc}
}

// HandleEvent processes an event delivered from Kafka.
func (h *Handler) HandleEvent(ctx context.Context, key, value []byte) error {
	var event journal.Event
	if err := json.Unmarshal(value, &event); err != nil {
		log.Printf("[Notifier] Failed to unmarshal event: %v", err)
		return err
	}

	if event.EventType == order.EventOrderPlaced {
		return h.handleOrderPlaced(event)
	}

	return nil
}

func (h *Handler) handleOrderPlaced(event journal.Event) error {
	var e order.OrderPlaced
	if err := json.Unmarshal(event.Data, &e); err != nil {
		log.Printf("[Notifier] Failed to unmarshal OrderPlaced event: %v", err)
		return err
	}

	log.Printf("[Notifier] Processing OrderPlaced event for order %s, buyer %s", e.OrderID, e.BuyerID)

	if e.BuyerEmail == "" {
		log.Printf("[Notifier] No buyer email on order %s, skipping receipt", e.OrderID)
		return nil
	}

	products := make([]listing.Listing, len(e.Products))
	for i, p := range e.Products {
		products[i] = listing.Listing{
			ID:       p.ListingID,
			Title:    p.Title,
			Category: listing.Category(p.Category),
			Price:    p.Price,
		}
	}

	o := order.Order{
		ID: e.OrderID,
		Buyer: session.User{
			ID:       e.BuyerID,
			Username: e.BuyerUsername,
			Email:    e.BuyerEmail,
		},
		Products:     products,
		TotalAmount:  e.Total,
		PurchaseDate: e.PlacedAt,
	}

	if err := h.emailService.SendPurchaseReceipt(e.BuyerEmail, o); err != nil {
		log.Printf("[Notifier] Failed to send receipt to %s: %v", e.BuyerEmail, err)
		return err
	}

	log.Printf("[Notifier] Receipt sent to %s for order %s", e.BuyerEmail, e.OrderID)
	return nil
}
