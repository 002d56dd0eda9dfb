package mongodb

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// maxMutateAttempts bounds optimistic retries on version conflicts
const maxMutateAttempts = 5

// CartRepository stores one document per owner and uses the version field
// as an optimistic concurrency token
type CartRepository struct {
	coll *mongo.Collection
}

func NewCartRepository(db *mongo.Database) *CartRepository {
	return &CartRepository{coll: db.Collection(cartsCollection)}
}

// Get upserts an empty cart on first access
func (r *CartRepository) Get(ctx context.Context, owner string) (*cart.Cart, error) {
	now := time.Now().UTC()
	update := bson.M{"$setOnInsert": bson.M{
		"_id":        uuid.NewString(),
		"items":      bson.A{},
		"version":    int64(0),
		"created_at": now,
		"updated_at": now,
	}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var c cart.Cart
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"owner_key": owner}, update, opts).Decode(&c)
	if mongo.IsDuplicateKeyError(err) {
		// Lost an upsert race; the winner's document is there now
		err = r.coll.FindOne(ctx, bson.M{"owner_key": owner}).Decode(&c)
	}
	if err != nil {
		return nil, translate(err, cart.ErrCartNotFound)
	}
	if c.Items == nil {
		c.Items = cart.LineItems{}
	}
	return &c, nil
}

func (r *CartRepository) Mutate(ctx context.Context, owner string, fn cart.MutateFunc) (*cart.Cart, error) {
	for attempt := 0; attempt < maxMutateAttempts; attempt++ {
		c, err := r.Get(ctx, owner)
		if err != nil {
			return nil, err
		}
		if err := fn(c); err != nil {
			return nil, err
		}

		expected := c.Version
		c.Version++
		c.UpdatedAt = time.Now().UTC()

		res, err := r.coll.UpdateOne(ctx,
			bson.M{"_id": c.ID, "version": expected},
			bson.M{"$set": bson.M{
				"items":      c.Items,
				"version":    c.Version,
				"updated_at": c.UpdatedAt,
			}},
		)
		if err != nil {
			return nil, translate(err, cart.ErrCartNotFound)
		}
		if res.MatchedCount == 1 {
			return c, nil
		}
	}
	return nil, cart.ErrConcurrentUpdate
}

var _ cart.Repository = (*CartRepository)(nil)
