package order

import "context"

// ListFilter narrows a listing. An empty UserID lists every owner.
type ListFilter struct {
	UserID string
	Status OrderStatus
	Offset int
	Limit  int
}

// Repository persists orders.
//
// UpdateStatus writes o only if the stored status still equals from,
// returning ErrStaleStatus otherwise. List returns orders newest-first
// along with the total number matching the filter.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	FindByID(ctx context.Context, id string) (*Order, error)
	List(ctx context.Context, filter ListFilter) ([]Order, int64, error)
	UpdateStatus(ctx context.Context, o *Order, from OrderStatus) error
}

// Notifier receives order lifecycle events. Implementations must not block.
type Notifier interface {
	OrderPlaced(o *Order)
	StatusChanged(o *Order)
}
