package order

import (
	"context"
	"testing"
	"time"

	"github.com/example/ecofinds/internal/domain/listing"
	"github.com/example/ecofinds/internal/domain/session"
	"github.com/example/ecofinds/internal/infrastructure/journal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	jane = session.User{ID: "user-1", Username: "JaneDoe", Email: "jane.doe@example.com"}
	john = session.User{ID: "user-2", Username: "JohnSmith", Email: "john.smith@example.com"}
)

type stubSource struct{ orders []Order }

func (s stubSource) Orders(ctx context.Context) ([]Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.orders, nil
}

func newTestStore(t *testing.T, seeded ...Order) (*Store, *mocks.MockRecorder) {
	t.Helper()
	rec := mocks.NewMockRecorder()
	store := NewStore(rec)
	require.NoError(t, store.Load(context.Background(), stubSource{orders: seeded}))
	return store, rec
}

func cartItems() []listing.Listing {
	return []listing.Listing{
		{ID: "prod-1", Title: "Vintage Leather Armchair", Category: listing.CategoryFurniture, Price: 250},
		{ID: "prod-3", Title: "Classic Hardcover Novels (Set of 5)", Category: listing.CategoryBooks, Price: 45},
	}
}

// ============================================
// Checkout Tests
// ============================================

func TestStore_Checkout_CreatesOrder(t *testing.T) {
	store, rec := newTestStore(t)

	o, err := store.Checkout(context.Background(), jane, cartItems())

	require.NoError(t, err)
	assert.Regexp(t, `^order-`, o.ID)
	assert.Equal(t, jane, o.Buyer)
	assert.Len(t, o.Products, 2)
	assert.Equal(t, 295.0, o.TotalAmount)
	assert.False(t, o.PurchaseDate.IsZero())

	got, ok := store.GetByID(o.ID)
	require.True(t, ok)
	assert.Equal(t, o, got)

	require.Len(t, rec.AppendCalls, 1)
	assert.Equal(t, EventOrderPlaced, rec.AppendCalls[0].EventType)
	data := rec.AppendCalls[0].Data.(OrderPlaced)
	assert.Equal(t, o.ID, data.OrderID)
	assert.Equal(t, "jane.doe@example.com", data.BuyerEmail)
	require.Len(t, data.Products, 2)
	assert.Equal(t, "Vintage Leather Armchair", data.Products[0].Title)
	assert.Equal(t, 295.0, data.Total)
}

func TestStore_Checkout_EmptyCart(t *testing.T) {
	store, rec := newTestStore(t)

	_, err := store.Checkout(context.Background(), jane, nil)

	assert.ErrorIs(t, err, ErrEmptyOrder)
	assert.Empty(t, rec.AppendCalls)
}

func TestStore_Checkout_CopiesItems(t *testing.T) {
	store, _ := newTestStore(t)

	items := cartItems()
	o, err := store.Checkout(context.Background(), jane, items)
	require.NoError(t, err)

	// Later cart mutation must not reach the historical record.
	items[0].Price = 1

	got, ok := store.GetByID(o.ID)
	require.True(t, ok)
	assert.Equal(t, 250.0, got.Products[0].Price)
}

func TestStore_Checkout_MostRecentFirst(t *testing.T) {
	store, _ := newTestStore(t)

	first, err := store.Checkout(context.Background(), jane, cartItems()[:1])
	require.NoError(t, err)
	second, err := store.Checkout(context.Background(), jane, cartItems()[1:])
	require.NoError(t, err)

	got := store.ListByBuyer(jane.ID)
	require.Len(t, got, 2)
	assert.Equal(t, second.ID, got[0].ID)
	assert.Equal(t, first.ID, got[1].ID)
}

// ============================================
// Visibility Tests
// ============================================

func TestStore_ListByBuyer_ScopedToBuyer(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Checkout(context.Background(), jane, cartItems())
	require.NoError(t, err)
	_, err = store.Checkout(context.Background(), john, cartItems()[:1])
	require.NoError(t, err)

	janes := store.ListByBuyer(jane.ID)
	require.Len(t, janes, 1)
	assert.Equal(t, jane.ID, janes[0].Buyer.ID)

	assert.Empty(t, store.ListByBuyer("user-unknown"))
}

// ============================================
// Load Tests
// ============================================

func TestStore_Load_SeedsHistory(t *testing.T) {
	seeded := Order{
		ID:           "order-1",
		Buyer:        jane,
		Products:     cartItems(),
		TotalAmount:  295,
		PurchaseDate: time.Date(2024, time.April, 20, 0, 0, 0, 0, time.UTC),
	}
	store, _ := newTestStore(t, seeded)

	assert.True(t, store.Ready())
	got, ok := store.GetByID("order-1")
	require.True(t, ok)
	assert.Equal(t, seeded, got)
}

func TestStore_Load_CanceledContextIsNoOp(t *testing.T) {
	store := NewStore(mocks.NewMockRecorder())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.Load(ctx, stubSource{orders: []Order{{ID: "order-1"}}})
	assert.Error(t, err)
	assert.False(t, store.Ready())
}
