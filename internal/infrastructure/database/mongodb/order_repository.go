package mongodb

import (
	"context"

	"github.com/your-org/storefront-backend/internal/domain/order"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OrderRepository stores one document per order
type OrderRepository struct {
	coll *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{coll: db.Collection(ordersCollection)}
}

func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	_, err := r.coll.InsertOne(ctx, o)
	return translate(err, order.ErrOrderNotFound)
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	var o order.Order
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&o); err != nil {
		return nil, translate(err, order.ErrOrderNotFound)
	}
	return &o, nil
}

func (r *OrderRepository) List(ctx context.Context, filter order.ListFilter) ([]order.Order, int64, error) {
	query := bson.M{}
	if filter.UserID != "" {
		query["user_id"] = filter.UserID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, translate(err, order.ErrOrderNotFound)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(filter.Offset))
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, translate(err, order.ErrOrderNotFound)
	}

	var orders []order.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, 0, translate(err, order.ErrOrderNotFound)
	}
	return orders, total, nil
}

// UpdateStatus is a compare-and-set on the current status
func (r *OrderRepository) UpdateStatus(ctx context.Context, o *order.Order, from order.OrderStatus) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": o.ID, "status": from},
		bson.M{"$set": bson.M{
			"status":         o.Status,
			"status_history": o.StatusHistory,
			"processed_at":   o.ProcessedAt,
			"shipped_at":     o.ShippedAt,
			"delivered_at":   o.DeliveredAt,
			"cancelled_at":   o.CancelledAt,
			"updated_at":     o.UpdatedAt,
		}},
	)
	if err != nil {
		return translate(err, order.ErrOrderNotFound)
	}
	if res.MatchedCount == 0 {
		return order.ErrStaleStatus
	}
	return nil
}

var _ order.Repository = (*OrderRepository)(nil)
