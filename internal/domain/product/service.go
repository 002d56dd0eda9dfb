// internal/domain/product/service.go
package product

import (
	"github.com/your-org/storefront-backend/internal/config"
)

// Service exposes the read-only product catalog
type Service struct {
	products []Product
	bySlug   map[string]int
	byID     map[string]int
	config   *config.Config
}

// NewService creates a catalog service over the built-in product list
func NewService(cfg *config.Config) *Service {
	return NewServiceWithProducts(cfg, defaultCatalog())
}

// NewServiceWithProducts creates a catalog service over a custom product list
func NewServiceWithProducts(cfg *config.Config, products []Product) *Service {
	s := &Service{
		products: products,
		bySlug:   make(map[string]int, len(products)),
		byID:     make(map[string]int, len(products)),
		config:   cfg,
	}
	for i, p := range products {
		s.bySlug[p.Slug] = i
		s.byID[p.ID] = i
	}
	return s
}

// List returns all products, or only those in category when it is non-empty
func (s *Service) List(category string) []Product {
	result := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		if category == "" || p.Category == category {
			result = append(result, p)
		}
	}
	return result
}

// GetBySlug retrieves a product by slug
func (s *Service) GetBySlug(slug string) (*Product, error) {
	i, ok := s.bySlug[slug]
	if !ok {
		return nil, ErrProductNotFound
	}
	p := s.products[i]
	return &p, nil
}

// GetByID retrieves a product by ID
func (s *Service) GetByID(id string) (*Product, error) {
	i, ok := s.byID[id]
	if !ok {
		return nil, ErrProductNotFound.WithMessage("Product %s not found", id)
	}
	p := s.products[i]
	return &p, nil
}

// Categories returns the distinct categories in catalog order
func (s *Service) Categories() []string {
	seen := make(map[string]bool)
	var categories []string
	for _, p := range s.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	return categories
}

// ShippingFor returns the shipping charge for a subtotal
func (s *Service) ShippingFor(subtotal int64) int64 {
	if subtotal >= s.config.Store.FreeShippingThreshold {
		return 0
	}
	return s.config.Store.ShippingFee
}

// Quote prices lines against live catalog data
func (s *Service) Quote(lines []QuoteLine) (*Quote, error) {
	quote := &Quote{Lines: make([]QuotedLine, 0, len(lines))}

	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		p, err := s.GetByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		lineTotal := p.Price * int64(line.Quantity)
		quote.Lines = append(quote.Lines, QuotedLine{Product: p, Quantity: line.Quantity, LineTotal: lineTotal})
		quote.Subtotal += lineTotal
	}

	quote.Shipping = s.ShippingFor(quote.Subtotal)
	quote.Total = quote.Subtotal + quote.Shipping
	return quote, nil
}
