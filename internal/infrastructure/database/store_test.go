package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/pkg/logger"
)

func TestOpen_Memory(t *testing.T) {
	cfg := &config.Config{Database: config.DatabaseConfig{Driver: config.DriverMemory}}

	store, err := Open(cfg, logger.Discard())
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	assert.NoError(t, store.Health(ctx))
	assert.NoError(t, store.Migrate(ctx))

	c, err := store.Carts.Get(ctx, "guest")
	require.NoError(t, err)
	assert.Empty(t, c.Items)
}

func TestOpen_UnknownDriver(t *testing.T) {
	cfg := &config.Config{Database: config.DatabaseConfig{Driver: "sqlite"}}

	_, err := Open(cfg, logger.Discard())
	assert.Error(t, err)
}
