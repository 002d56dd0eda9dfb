// internal/domain/product/entity.go
package product

import (
	"github.com/your-org/storefront-backend/internal/pkg/apperrors"
)

var (
	ErrProductNotFound = apperrors.NotFound("product_not_found", "Product not found")
	ErrInvalidQuantity = apperrors.Validation("invalid_quantity", "Quantity must be at least 1")
)

// Product represents a catalog entry. Prices are whole currency units.
type Product struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Price         int64    `json:"price"`
	OriginalPrice int64    `json:"original_price,omitempty"` // Pre-discount price
	OnSale        bool     `json:"on_sale"`
	Image         string   `json:"image"`
	Images        []string `json:"images,omitempty"`
	Slug          string   `json:"slug"`
	Category      string   `json:"category"`
	Description   string   `json:"description,omitempty"`
}

// DiscountPercent returns the rounded discount against the original price
func (p *Product) DiscountPercent() int {
	if p.OriginalPrice <= p.Price || p.OriginalPrice == 0 {
		return 0
	}
	return int((p.OriginalPrice - p.Price) * 100 / p.OriginalPrice)
}

// QuoteLine is a product id and quantity to be priced
type QuoteLine struct {
	ProductID string
	Quantity  int
}

// QuotedLine is a priced line using live catalog data
type QuotedLine struct {
	Product   *Product `json:"product"`
	Quantity  int      `json:"quantity"`
	LineTotal int64    `json:"line_total"`
}

// Quote represents authoritative pricing for a set of lines
type Quote struct {
	Lines    []QuotedLine `json:"lines"`
	Subtotal int64        `json:"subtotal"`
	Shipping int64        `json:"shipping"`
	Total    int64        `json:"total"`
}
