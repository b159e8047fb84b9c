package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/example/ecofinds/internal/api/middleware"
	"github.com/example/ecofinds/internal/describe"
	"github.com/example/ecofinds/internal/domain/cart"
	"github.com/example/ecofinds/internal/domain/listing"
	"github.com/example/ecofinds/internal/domain/order"
	"github.com/example/ecofinds/internal/domain/session"
	"github.com/example/ecofinds/internal/email"
)

// Handlers exposes the marketplace stores to the rendering layer. The server
// carries a single browsing session: the session store's current principal is
// the authority protected routes consult.
type Handlers struct {
	sessions  *session.Store
	catalog   *listing.Store
	carts     *cart.Store
	orders    *order.Store
	generator *describe.Generator
	mailer    *email.Service

	// one description request in flight at a time
	describeMu sync.Mutex
}

func NewHandlers(
	sessions *session.Store,
	catalog *listing.Store,
	carts *cart.Store,
	orders *order.Store,
	generator *describe.Generator,
	mailer *email.Service,
) *Handlers {
	return &Handlers{
		sessions:  sessions,
		catalog:   catalog,
		carts:     carts,
		orders:    orders,
		generator: generator,
		mailer:    mailer,
	}
}

// actor resolves the request's claims to a known principal.
func (h *Handlers) actor(r *http.Request) (*session.User, bool) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		return nil, false
	}
	return h.sessions.GetByID(claims.UserID)
}

// Listing handlers

func (h *Handlers) GetListings(w http.ResponseWriter, r *http.Request) {
	if !h.catalog.Ready() {
		respondJSONError(w, "Catalog is still loading", http.StatusServiceUnavailable)
		return
	}

	search := r.URL.Query().Get("search")
	category := r.URL.Query().Get("category")
	if category == "" {
		category = listing.FilterAll
	}

	listings := listing.Filter(h.catalog.All(), search, category)
	respondJSON(w, http.StatusOK, listings)
}

func (h *Handlers) GetListing(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/listings/")
	l, ok := h.catalog.GetByID(id)
	if !ok {
		respondJSONError(w, "Listing not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, l)
}

func (h *Handlers) CreateListing(w http.ResponseWriter, r *http.Request) {
	seller, ok := h.actor(r)
	if !ok {
		respondJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var draft listing.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.catalog.Add(r.Context(), draft, *seller)
	if err != nil {
		respondJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

func (h *Handlers) UpdateListing(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(r)
	if !ok {
		respondJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var updated listing.Listing
	if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	updated.ID = extractPathParam(r.URL.Path, "/listings/")

	result, err := h.catalog.Update(r.Context(), updated, *actor)
	switch {
	case errors.Is(err, listing.ErrListingNotFound):
		respondJSONError(w, "Listing not found", http.StatusNotFound)
	case errors.Is(err, listing.ErrNotOwner):
		respondJSONError(w, err.Error(), http.StatusForbidden)
	case err != nil:
		respondJSONError(w, err.Error(), http.StatusBadRequest)
	default:
		respondJSON(w, http.StatusOK, result)
	}
}

func (h *Handlers) DeleteListing(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(r)
	if !ok {
		respondJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id := extractPathParam(r.URL.Path, "/listings/")
	if err := h.catalog.Delete(r.Context(), id, *actor); err != nil {
		respondJSONError(w, err.Error(), http.StatusForbidden)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Listing deleted"})
}

func (h *Handlers) GetMyListings(w http.ResponseWriter, r *http.Request) {
	seller, ok := h.actor(r)
	if !ok {
		respondJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	respondJSON(w, http.StatusOK, h.catalog.BySeller(seller.ID))
}

// Cart handlers

type cartResponse struct {
	Items []listing.Listing `json:"items"`
	Total float64           `json:"total"`
}

func (h *Handlers) GetCart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, cartResponse{
		Items: h.carts.Items(),
		Total: h.carts.Total(),
	})
}

func (h *Handlers) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ListingID string `json:"listing_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	l, ok := h.catalog.GetByID(req.ListingID)
	if !ok {
		respondJSONError(w, "Listing not found", http.StatusNotFound)
		return
	}

	added := h.carts.Add(l)
	respondJSON(w, http.StatusOK, map[string]any{"added": added, "size": h.carts.Len()})
}

func (h *Handlers) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/cart/items/")
	h.carts.Remove(id)
	respondJSON(w, http.StatusOK, map[string]any{"size": h.carts.Len()})
}

func (h *Handlers) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.carts.Clear()
	w.WriteHeader(http.StatusNoContent)
}

// Order handlers

func (h *Handlers) Checkout(w http.ResponseWriter, r *http.Request) {
	buyer, ok := h.actor(r)
	if !ok {
		respondJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	o, err := h.orders.Checkout(r.Context(), *buyer, h.carts.Items())
	if errors.Is(err, order.ErrEmptyOrder) {
		respondJSONError(w, "Cart is empty", http.StatusBadRequest)
		return
	}
	if err != nil {
		respondJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.carts.Clear()

	// Receipt mail is best-effort
	if h.mailer != nil {
		if err := h.mailer.SendPurchaseReceipt(buyer.Email, o); err != nil {
			log.Printf("[API] Failed to send receipt for %s: %v", o.ID, err)
		}
	}

	respondJSON(w, http.StatusCreated, o)
}

func (h *Handlers) GetOrders(w http.ResponseWriter, r *http.Request) {
	buyer, ok := h.actor(r)
	if !ok {
		respondJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	respondJSON(w, http.StatusOK, h.orders.ListByBuyer(buyer.ID))
}

func (h *Handlers) GetOrder(w http.ResponseWriter, r *http.Request) {
	buyer, ok := h.actor(r)
	if !ok {
		respondJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id := extractPathParam(r.URL.Path, "/orders/")
	o, found := h.orders.GetByID(id)
	if !found || o.Buyer.ID != buyer.ID {
		// Orders are visible only to their buyer
		respondJSONError(w, "Order not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, o)
}

// Description generation

func (h *Handlers) GenerateDescription(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title    string           `json:"title"`
		Category listing.Category `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Title == "" {
		respondJSONError(w, "Title is required", http.StatusBadRequest)
		return
	}

	// Single in-flight request; the client disables the trigger meanwhile
	if !h.describeMu.TryLock() {
		respondJSONError(w, "Description generation already in progress", http.StatusTooManyRequests)
		return
	}
	defer h.describeMu.Unlock()

	description := h.generator.Description(r.Context(), req.Title, req.Category)
	respondJSON(w, http.StatusOK, map[string]string{"description": description})
}

// Health

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":        "ok",
		"session_ready": h.sessions.Ready(),
		"catalog_ready": h.catalog.Ready(),
		"orders_ready":  h.orders.Ready(),
	})
}

// Helpers

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondJSONError(w http.ResponseWriter, message string, status int) {
	respondJSON(w, status, map[string]string{"error": message})
}

func extractPathParam(path, prefix string) string {
	param := strings.TrimPrefix(path, prefix)
	return strings.TrimSuffix(param, "/")
}
