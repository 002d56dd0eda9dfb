// internal/domain/cart/service.go
package cart

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Service handles cart business logic
type Service struct {
	repo   Repository
	logger *logrus.Logger
}

// NewService creates a new cart service
func NewService(repo Repository, logger *logrus.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// GetCart returns the owner's cart, creating an empty one if needed
func (s *Service) GetCart(ctx context.Context, owner string) (*Cart, error) {
	return s.repo.Get(ctx, ownerOrGuest(owner))
}

// AddItem adds a product to the owner's cart
func (s *Service) AddItem(ctx context.Context, owner string, item LineItem) (*Cart, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}

	return s.repo.Mutate(ctx, ownerOrGuest(owner), func(c *Cart) error {
		c.AddItem(item)
		return nil
	})
}

// ReplaceCart overwrites the owner's items
func (s *Service) ReplaceCart(ctx context.Context, owner string, items []LineItem) (*Cart, error) {
	if items == nil {
		return nil, ErrInvalidItems
	}

	return s.repo.Mutate(ctx, ownerOrGuest(owner), func(c *Cart) error {
		return c.Replace(items)
	})
}

// ClearCart empties the owner's cart
func (s *Service) ClearCart(ctx context.Context, owner string) (*Cart, error) {
	return s.repo.Mutate(ctx, ownerOrGuest(owner), func(c *Cart) error {
		c.Clear()
		return nil
	})
}

// ClearAfterOrder empties the cart once an order is placed. Failures are logged only.
func (s *Service) ClearAfterOrder(ctx context.Context, owner string) {
	if _, err := s.ClearCart(ctx, owner); err != nil {
		s.logger.WithError(err).WithField("owner_key", owner).Warn("failed to clear cart after order")
	}
}

func ownerOrGuest(owner string) string {
	if owner == "" {
		return GuestOwner
	}
	return owner
}
