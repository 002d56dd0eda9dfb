package postgres

import (
	"context"

	"github.com/your-org/storefront-backend/internal/domain/order"
	"gorm.io/gorm"
)

// OrderRepository stores orders with items and history in jsonb columns
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates an order repository
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	return translate(r.db.WithContext(ctx).Create(o).Error, order.ErrOrderNotFound)
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&o).Error; err != nil {
		return nil, translate(err, order.ErrOrderNotFound)
	}
	return &o, nil
}

func (r *OrderRepository) List(ctx context.Context, filter order.ListFilter) ([]order.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&order.Order{})

	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, translate(err, order.ErrOrderNotFound)
	}

	var orders []order.Order
	err := query.Order("created_at DESC").Offset(filter.Offset).Limit(filter.Limit).Find(&orders).Error
	if err != nil {
		return nil, 0, translate(err, order.ErrOrderNotFound)
	}

	return orders, total, nil
}

// UpdateStatus is a compare-and-set on the current status
func (r *OrderRepository) UpdateStatus(ctx context.Context, o *order.Order, from order.OrderStatus) error {
	res := r.db.WithContext(ctx).Model(&order.Order{}).
		Where("id = ? AND status = ?", o.ID, from).
		Updates(map[string]interface{}{
			"status":         o.Status,
			"status_history": o.StatusHistory,
			"processed_at":   o.ProcessedAt,
			"shipped_at":     o.ShippedAt,
			"delivered_at":   o.DeliveredAt,
			"cancelled_at":   o.CancelledAt,
			"updated_at":     o.UpdatedAt,
		})
	if res.Error != nil {
		return translate(res.Error, order.ErrOrderNotFound)
	}
	if res.RowsAffected == 0 {
		return order.ErrStaleStatus
	}
	return nil
}

var _ order.Repository = (*OrderRepository)(nil)
