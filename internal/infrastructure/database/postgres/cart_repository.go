package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/your-org/storefront-backend/internal/domain/cart"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRepository stores one row per owner with items in a jsonb column
type CartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates a cart repository
func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

func (r *CartRepository) Get(ctx context.Context, owner string) (*cart.Cart, error) {
	var c cart.Cart
	err := r.db.WithContext(ctx).Where("owner_key = ?", owner).First(&c).Error
	if err == nil {
		return &c, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, translate(err, cart.ErrCartNotFound)
	}

	if err := r.insertIfMissing(r.db.WithContext(ctx), owner); err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Where("owner_key = ?", owner).First(&c).Error; err != nil {
		return nil, translate(err, cart.ErrCartNotFound)
	}
	return &c, nil
}

// Mutate locks the owner's row for the duration of fn
func (r *CartRepository) Mutate(ctx context.Context, owner string, fn cart.MutateFunc) (*cart.Cart, error) {
	var result cart.Cart

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := lockCart(tx, owner, &result)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := r.insertIfMissing(tx, owner); err != nil {
				return err
			}
			err = lockCart(tx, owner, &result)
		}
		if err != nil {
			return err
		}

		if err := fn(&result); err != nil {
			return err
		}

		result.Version++
		result.UpdatedAt = time.Now().UTC()
		return tx.Model(&cart.Cart{}).Where("id = ?", result.ID).Updates(map[string]interface{}{
			"items":      result.Items,
			"version":    result.Version,
			"updated_at": result.UpdatedAt,
		}).Error
	})
	if err != nil {
		return nil, translate(err, cart.ErrCartNotFound)
	}
	return &result, nil
}

func lockCart(tx *gorm.DB, owner string, dest *cart.Cart) error {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("owner_key = ?", owner).First(dest).Error
}

// insertIfMissing creates an empty cart, tolerating a concurrent insert
func (r *CartRepository) insertIfMissing(tx *gorm.DB, owner string) error {
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner_key"}},
		DoNothing: true,
	}).Create(cart.NewCart(owner)).Error
	return translate(err, cart.ErrCartNotFound)
}

var _ cart.Repository = (*CartRepository)(nil)
