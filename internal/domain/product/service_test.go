package product

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/storefront-backend/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{Store: config.StoreConfig{ShippingFee: 500, FreeShippingThreshold: 5000}}
}

func TestList_FiltersByCategory(t *testing.T) {
	svc := NewService(testConfig())

	all := svc.List("")
	reserve := svc.List("gentleman's-reserve")
	products := svc.List("products")

	assert.Len(t, all, 25)
	assert.Len(t, reserve, 7)
	assert.Len(t, products, 18)
	for _, p := range reserve {
		assert.Equal(t, "gentleman's-reserve", p.Category)
	}
	assert.Empty(t, svc.List("nope"))
}

func TestGetBySlug(t *testing.T) {
	svc := NewService(testConfig())

	p, err := svc.GetBySlug("5w-cob")
	require.NoError(t, err)
	assert.Equal(t, "25", p.ID)
	assert.Equal(t, int64(230), p.Price)

	_, err = svc.GetBySlug("missing")
	assert.True(t, errors.Is(err, ErrProductNotFound))
}

func TestGetBySlug_ReturnsCopy(t *testing.T) {
	svc := NewService(testConfig())

	p, err := svc.GetBySlug("12w-bulb")
	require.NoError(t, err)
	p.Price = 1

	again, err := svc.GetBySlug("12w-bulb")
	require.NoError(t, err)
	assert.Equal(t, int64(130), again.Price)
}

func TestCategories(t *testing.T) {
	svc := NewService(testConfig())
	assert.Equal(t, []string{"gentleman's-reserve", "products"}, svc.Categories())
}

func TestQuote(t *testing.T) {
	svc := NewService(testConfig())

	t.Run("adds shipping under threshold", func(t *testing.T) {
		q, err := svc.Quote([]QuoteLine{{ProductID: "16", Quantity: 2}, {ProductID: "25", Quantity: 1}})
		require.NoError(t, err)
		assert.Equal(t, int64(490), q.Subtotal)
		assert.Equal(t, int64(500), q.Shipping)
		assert.Equal(t, int64(990), q.Total)
		assert.Len(t, q.Lines, 2)
	})

	t.Run("waives shipping at threshold", func(t *testing.T) {
		q, err := svc.Quote([]QuoteLine{{ProductID: "2", Quantity: 2}, {ProductID: "8", Quantity: 1}})
		require.NoError(t, err)
		assert.Equal(t, int64(6600), q.Subtotal)
		assert.Equal(t, int64(0), q.Shipping)
		assert.Equal(t, int64(6600), q.Total)
	})

	t.Run("rejects unknown product", func(t *testing.T) {
		_, err := svc.Quote([]QuoteLine{{ProductID: "999", Quantity: 1}})
		assert.True(t, errors.Is(err, ErrProductNotFound))
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		_, err := svc.Quote([]QuoteLine{{ProductID: "1", Quantity: 0}})
		assert.True(t, errors.Is(err, ErrInvalidQuantity))
	})
}

func TestDiscountPercent(t *testing.T) {
	p := Product{Price: 3000, OriginalPrice: 5000}
	assert.Equal(t, 40, p.DiscountPercent())

	p = Product{Price: 3000}
	assert.Equal(t, 0, p.DiscountPercent())
}
