// internal/infrastructure/database/store.go
package database

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/domain/user"
	"github.com/your-org/storefront-backend/internal/infrastructure/database/memory"
	"github.com/your-org/storefront-backend/internal/infrastructure/database/mongodb"
	"github.com/your-org/storefront-backend/internal/infrastructure/database/postgres"
)

// Store bundles the repositories of one backend
type Store struct {
	Driver string
	Users  user.Repository
	Carts  cart.Repository
	Orders order.Repository

	health  func(ctx context.Context) error
	migrate func(ctx context.Context) error
	close   func() error
}

// Open connects to the backend selected by DB_DRIVER
func Open(cfg *config.Config, logger *logrus.Logger) (*Store, error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		db, err := postgres.NewConnection(cfg, logger)
		if err != nil {
			return nil, err
		}
		gdb := db.GetDB()
		return &Store{
			Driver: cfg.Database.Driver,
			Users:  postgres.NewUserRepository(gdb),
			Carts:  postgres.NewCartRepository(gdb),
			Orders: postgres.NewOrderRepository(gdb),
			health: db.Health,
			migrate: func(context.Context) error {
				return postgres.NewMigration(gdb, logger).Run()
			},
			close: db.Close,
		}, nil

	case config.DriverMongo:
		client, err := mongodb.NewConnection(cfg, logger)
		if err != nil {
			return nil, err
		}
		return &Store{
			Driver:  cfg.Database.Driver,
			Users:   mongodb.NewUserRepository(client.Database),
			Carts:   mongodb.NewCartRepository(client.Database),
			Orders:  mongodb.NewOrderRepository(client.Database),
			health:  client.Health,
			migrate: client.EnsureIndexes,
			close:   client.Close,
		}, nil

	case config.DriverMemory:
		logger.Warn("using in-memory store, data is lost on restart")
		return NewMemoryStore(), nil
	}

	return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
}

// NewMemoryStore returns a process-local store
func NewMemoryStore() *Store {
	return &Store{
		Driver: config.DriverMemory,
		Users:  memory.NewUserRepository(),
		Carts:  memory.NewCartRepository(),
		Orders: memory.NewOrderRepository(),
	}
}

// Health checks the backend connection
func (s *Store) Health(ctx context.Context) error {
	if s.health == nil {
		return nil
	}
	return s.health(ctx)
}

// Migrate creates tables or indexes
func (s *Store) Migrate(ctx context.Context) error {
	if s.migrate == nil {
		return nil
	}
	return s.migrate(ctx)
}

// Close releases the backend connection
func (s *Store) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}
