package cart

import (
	"context"
	"testing"

	"github.com/example/ecofinds/internal/domain/listing"
	"github.com/example/ecofinds/internal/domain/session"
	"github.com/example/ecofinds/internal/infrastructure/journal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func armchair() listing.Listing {
	return listing.Listing{ID: "prod-1", Title: "Vintage Leather Armchair", Category: listing.CategoryFurniture, Price: 250}
}

func novels() listing.Listing {
	return listing.Listing{ID: "prod-3", Title: "Classic Hardcover Novels (Set of 5)", Category: listing.CategoryBooks, Price: 45}
}

// ============================================
// Membership Tests
// ============================================

func TestStore_Add_IsIdempotentByID(t *testing.T) {
	cart := NewStore(nil)

	assert.True(t, cart.Add(armchair()))
	// A second add of the same id is a no-op, even with a distinct value.
	duplicate := armchair()
	duplicate.Price = 999
	assert.False(t, cart.Add(duplicate))

	assert.Equal(t, 1, cart.Len())
	assert.Equal(t, 250.0, cart.Total())
}

func TestStore_Remove_NonMemberIsNoOp(t *testing.T) {
	cart := NewStore(nil)
	cart.Add(armchair())

	assert.False(t, cart.Remove("prod-404"))
	assert.Equal(t, 1, cart.Len())
}

func TestStore_Remove_DropsEntry(t *testing.T) {
	cart := NewStore(nil)
	cart.Add(armchair())
	cart.Add(novels())

	assert.True(t, cart.Remove("prod-1"))
	assert.False(t, cart.Contains("prod-1"))
	assert.True(t, cart.Contains("prod-3"))
}

func TestStore_Clear(t *testing.T) {
	cart := NewStore(nil)
	cart.Add(armchair())
	cart.Add(novels())

	cart.Clear()

	assert.Zero(t, cart.Len())
	assert.Zero(t, cart.Total())
}

func TestStore_Items_ReturnsCopyInInsertionOrder(t *testing.T) {
	cart := NewStore(nil)
	cart.Add(armchair())
	cart.Add(novels())

	items := cart.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "prod-1", items[0].ID)
	assert.Equal(t, "prod-3", items[1].ID)

	// Mutating the copy must not leak into the store.
	items[0].Price = 1
	assert.Equal(t, 250.0, cart.Items()[0].Price)
}

// ============================================
// Total Tests
// ============================================

func TestStore_Total_IsSumOfMemberPrices(t *testing.T) {
	cart := NewStore(nil)

	assert.Zero(t, cart.Total())

	cart.Add(armchair())
	cart.Add(novels())
	assert.Equal(t, 295.0, cart.Total())

	cart.Remove("prod-3")
	assert.Equal(t, 250.0, cart.Total())
}

// ============================================
// Session Lifecycle Tests
// ============================================

type stubUsers struct{ users []session.User }

func (s stubUsers) Users(ctx context.Context) ([]session.User, error) { return s.users, nil }

func newSessionStore(t *testing.T) *session.Store {
	t.Helper()
	store := session.NewStore(mocks.NewMockRecorder())
	require.NoError(t, store.Load(context.Background(), stubUsers{users: []session.User{
		{ID: "user-1", Username: "JaneDoe", Email: "jane.doe@example.com"},
	}}))
	return store
}

func TestStore_LogoutForcesCartEmpty(t *testing.T) {
	sessions := newSessionStore(t)
	cart := NewStore(sessions)

	_, err := sessions.Login(context.Background(), "jane.doe@example.com", "pw")
	require.NoError(t, err)

	cart.Add(armchair())
	cart.Add(novels())
	require.Equal(t, 2, cart.Len())

	sessions.Logout(context.Background())

	assert.Zero(t, cart.Len())
	assert.Zero(t, cart.Total())
}

func TestStore_LoginDoesNotClearCart(t *testing.T) {
	sessions := newSessionStore(t)
	cart := NewStore(sessions)

	cart.Add(armchair())

	_, err := sessions.Login(context.Background(), "jane.doe@example.com", "pw")
	require.NoError(t, err)

	assert.Equal(t, 1, cart.Len())
}
