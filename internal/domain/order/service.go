// internal/domain/order/service.go
package order

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/product"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Service handles order business logic
type Service struct {
	repo        Repository
	catalog     *product.Service
	cartService *cart.Service
	notifier    Notifier
	config      *config.Config
	logger      *logrus.Logger
}

// NewService creates a new order service
func NewService(repo Repository, catalog *product.Service, cartService *cart.Service, notifier Notifier, cfg *config.Config, logger *logrus.Logger) *Service {
	return &Service{
		repo:        repo,
		catalog:     catalog,
		cartService: cartService,
		notifier:    notifier,
		config:      cfg,
		logger:      logger,
	}
}

// CreateOrderRequest represents order creation data
type CreateOrderRequest struct {
	Items    []Item    `json:"items"`
	Customer *Customer `json:"customer"`
	Total    *int64    `json:"total"`
}

// OrderListRequest represents order list query parameters
type OrderListRequest struct {
	Page   int         `form:"page,default=1"`
	Limit  int         `form:"limit,default=20"`
	Status OrderStatus `form:"status"`
}

// UpdateStatusRequest represents an admin status change
type UpdateStatusRequest struct {
	Status  OrderStatus `json:"status"`
	Comment string      `json:"comment"`
}

// OrderResponse represents order response with pagination
type OrderResponse struct {
	Orders     []Order    `json:"orders"`
	Pagination Pagination `json:"pagination"`
}

// Pagination represents pagination information
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// CreateOrder places an order for owner and empties their cart
func (s *Service) CreateOrder(ctx context.Context, owner string, req *CreateOrderRequest) (*Order, error) {
	if len(req.Items) == 0 || req.Customer == nil || req.Total == nil {
		return nil, ErrInvalidOrder.WithMessage("Invalid order data")
	}
	if err := req.Customer.Validate(); err != nil {
		return nil, err
	}
	if owner == "" {
		owner = cart.GuestOwner
	}

	customer := *req.Customer
	customer.Email = strings.ToLower(strings.TrimSpace(customer.Email))

	order := &Order{
		UserID:   owner,
		Customer: customer,
		Currency: s.config.Store.Currency,
	}

	var err error
	if s.config.Store.TotalPolicy == config.TotalPolicyTrust {
		err = s.priceAsSubmitted(order, req.Items, *req.Total)
	} else {
		err = s.priceFromCatalog(order, req.Items, *req.Total)
	}
	if err != nil {
		return nil, err
	}

	order.Prepare()
	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"order_id": order.ID,
		"user_id":  owner,
		"total":    order.Total,
	}).Info("order created")

	s.cartService.ClearAfterOrder(ctx, owner)
	if s.notifier != nil {
		s.notifier.OrderPlaced(order)
	}

	return order, nil
}

// priceFromCatalog snapshots catalog data and checks the submitted total
func (s *Service) priceFromCatalog(o *Order, items []Item, submitted int64) error {
	lines := make([]product.QuoteLine, len(items))
	for i, item := range items {
		lines[i] = product.QuoteLine{ProductID: item.ID, Quantity: item.Quantity}
	}

	quote, err := s.catalog.Quote(lines)
	if err != nil {
		return ErrInvalidOrder.WithMessage("%s", err.Error())
	}

	if submitted != quote.Total {
		return ErrTotalMismatch.WithMessage("Order total %d does not match current prices (expected %d)", submitted, quote.Total)
	}

	o.Items = make(Items, len(quote.Lines))
	for i, line := range quote.Lines {
		o.Items[i] = Item{
			ID:       line.Product.ID,
			Name:     line.Product.Name,
			Price:    line.Product.Price,
			Image:    line.Product.Image,
			Quantity: line.Quantity,
		}
	}
	o.Subtotal = quote.Subtotal
	o.Shipping = quote.Shipping
	o.Total = quote.Total
	return nil
}

// priceAsSubmitted stores the client's items and total verbatim
func (s *Service) priceAsSubmitted(o *Order, items []Item, submitted int64) error {
	if submitted < 0 {
		return ErrInvalidOrder.WithMessage("Total must not be negative")
	}

	var subtotal int64
	for _, item := range items {
		if item.ID == "" || item.Quantity < 1 || item.Price < 0 {
			return ErrInvalidOrder.WithMessage("Each item needs an id, a price and a quantity of at least 1")
		}
		subtotal += item.LineTotal()
	}

	o.Items = append(Items{}, items...)
	o.Subtotal = subtotal
	if submitted > subtotal {
		o.Shipping = submitted - subtotal
	}
	o.Total = submitted
	return nil
}

// GetOrders lists all orders for admins, otherwise only the caller's
func (s *Service) GetOrders(ctx context.Context, owner string, isAdmin bool, req *OrderListRequest) (*OrderResponse, error) {
	if req.Status != "" && !req.Status.Valid() {
		return nil, invalidStatusError()
	}

	page, limit := req.Page, req.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	filter := ListFilter{
		Status: req.Status,
		Offset: (page - 1) * limit,
		Limit:  limit,
	}
	if !isAdmin {
		if owner == "" {
			owner = cart.GuestOwner
		}
		filter.UserID = owner
	}

	orders, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []Order{}
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &OrderResponse{
		Orders: orders,
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
			HasPrev:    page > 1,
		},
	}, nil
}

// GetOrder retrieves a single order visible to the caller
func (s *Service) GetOrder(ctx context.Context, id, owner string, isAdmin bool) (*Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if owner == "" {
		owner = cart.GuestOwner
	}
	if !order.VisibleTo(owner, isAdmin) {
		return nil, ErrOrderForbidden
	}
	return order, nil
}

// UpdateOrderStatus moves an order along the status graph. Admin only.
func (s *Service) UpdateOrderStatus(ctx context.Context, id string, req *UpdateStatusRequest, actorID string, isAdmin bool) (*Order, error) {
	if !isAdmin {
		return nil, ErrAdminRequired
	}
	if !req.Status.Valid() {
		return nil, invalidStatusError()
	}

	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	from := order.Status
	if !from.CanTransitionTo(req.Status) {
		return nil, ErrInvalidTransition.WithMessage("Cannot change order status from %s to %s", from, req.Status)
	}

	order.ApplyStatus(req.Status, req.Comment, actorID)
	if err := s.repo.UpdateStatus(ctx, order, from); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"order_id": order.ID,
		"from":     from,
		"to":       order.Status,
		"actor":    actorID,
	}).Info("order status updated")

	if s.notifier != nil {
		s.notifier.StatusChanged(order)
	}

	return order, nil
}

func invalidStatusError() error {
	names := make([]string, len(AllStatuses))
	for i, st := range AllStatuses {
		names[i] = string(st)
	}
	return ErrInvalidStatus.WithMessage("Invalid status. Must be one of: %s", strings.Join(names, ", "))
}
