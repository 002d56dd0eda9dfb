package cart_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/infrastructure/database/memory"
	"github.com/your-org/storefront-backend/internal/pkg/logger"
)

func newService() *cart.Service {
	return cart.NewService(memory.NewCartRepository(), logger.Discard())
}

var bulb = cart.LineItem{ID: "1", Name: "Bulb", Price: 100, Image: "x"}

func TestGetCart_CreatesEmptyCart(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	c, err := svc.GetCart(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", c.OwnerKey)
	assert.NotNil(t, c.Items)
	assert.Empty(t, c.Items)

	again, err := svc.GetCart(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, c.ID, again.ID)
}

func TestAddItemTwiceIncrementsQuantity(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "u1", bulb)
	require.NoError(t, err)
	c, err := svc.AddItem(ctx, "u1", bulb)
	require.NoError(t, err)

	require.Len(t, c.Items, 1)
	assert.Equal(t, cart.LineItem{ID: "1", Name: "Bulb", Price: 100, Image: "x", Quantity: 2}, c.Items[0])
}

func TestAddItem_IgnoresSubmittedQuantity(t *testing.T) {
	svc := newService()

	item := bulb
	item.Quantity = 9
	c, err := svc.AddItem(context.Background(), "u1", item)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Items[0].Quantity)
}

func TestAddItem_Validation(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	invalid := []cart.LineItem{
		{Name: "Bulb", Price: 100, Image: "x"},
		{ID: "1", Price: 100, Image: "x"},
		{ID: "1", Name: "Bulb", Image: "x"},
		{ID: "1", Name: "Bulb", Price: -5, Image: "x"},
		{ID: "1", Name: "Bulb", Price: 100},
	}
	for _, item := range invalid {
		_, err := svc.AddItem(ctx, "u1", item)
		assert.ErrorIs(t, err, cart.ErrInvalidItem)
	}

	c, err := svc.GetCart(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, c.Items)
}

func TestAddItem_ConcurrentCallsLoseNothing(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.AddItem(ctx, "u1", bulb)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	c, err := svc.GetCart(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 20, c.Items[0].Quantity)
}

func TestReplaceCartThenGetCart(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	items := []cart.LineItem{
		{ID: "2", Name: "Pendant", Price: 2400, Image: "p", Quantity: 3},
		{ID: "16", Name: "12 W Bulb", Price: 130, Image: "b", Quantity: 1},
	}
	_, err := svc.AddItem(ctx, "u1", bulb)
	require.NoError(t, err)

	_, err = svc.ReplaceCart(ctx, "u1", items)
	require.NoError(t, err)

	c, err := svc.GetCart(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, cart.LineItems(items), c.Items)
}

func TestReplaceCart_Rejects(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.ReplaceCart(ctx, "u1", nil)
	assert.ErrorIs(t, err, cart.ErrInvalidItems)

	_, err = svc.ReplaceCart(ctx, "u1", []cart.LineItem{{ID: "1", Quantity: 0}})
	assert.ErrorIs(t, err, cart.ErrInvalidItem)

	_, err = svc.ReplaceCart(ctx, "u1", []cart.LineItem{{ID: "1", Quantity: 1}, {ID: "1", Quantity: 2}})
	assert.ErrorIs(t, err, cart.ErrDuplicateItem)

	c, err := svc.ReplaceCart(ctx, "u1", []cart.LineItem{})
	require.NoError(t, err)
	assert.Empty(t, c.Items)
}

func TestClearCart(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "u1", bulb)
	require.NoError(t, err)

	c, err := svc.ClearCart(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, c.Items)

	svc.ClearAfterOrder(ctx, "never-seen")
	fresh, err := svc.GetCart(ctx, "never-seen")
	require.NoError(t, err)
	assert.Empty(t, fresh.Items)
}

func TestOwnersAreIsolated(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "u1", bulb)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "", bulb)
	require.NoError(t, err)

	guest, err := svc.GetCart(ctx, cart.GuestOwner)
	require.NoError(t, err)
	require.Len(t, guest.Items, 1)

	other, err := svc.GetCart(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, other.Items)
}

func TestTotals(t *testing.T) {
	c := cart.NewCart("u1")
	c.AddItem(bulb)
	c.AddItem(bulb)
	c.AddItem(cart.LineItem{ID: "2", Name: "Pendant", Price: 2400, Image: "p"})

	totals := c.Totals()
	assert.Equal(t, 2, totals.ItemCount)
	assert.Equal(t, 3, totals.TotalQuantity)
	assert.Equal(t, int64(2600), totals.SubTotal)
}
