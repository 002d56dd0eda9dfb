package cmd

import (
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"github.com/your-org/storefront-backend/internal/domain/user"
	"github.com/your-org/storefront-backend/internal/infrastructure/database"
	"github.com/your-org/storefront-backend/internal/infrastructure/database/redis"
	httpserver "github.com/your-org/storefront-backend/internal/interfaces/http"
	"github.com/your-org/storefront-backend/internal/interfaces/http/handlers"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
	"github.com/your-org/storefront-backend/internal/interfaces/http/routes"
	"github.com/your-org/storefront-backend/internal/pkg/auth"
	"github.com/your-org/storefront-backend/internal/pkg/email"
	"github.com/your-org/storefront-backend/internal/pkg/logger"
	"github.com/your-org/storefront-backend/internal/pkg/pdf"
)

// application holds the process-wide dependencies
type application struct {
	config *config.Config
	logger *logrus.Logger
	store  *database.Store
	redis  *redis.Client

	userService *user.Service
	emailer     *email.EmailService
	dispatcher  *email.Dispatcher
}

// bootstrap loads configuration and connects to the store and Redis
func bootstrap() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(cfg)
	if err != nil {
		return nil, err
	}

	store, err := database.Open(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Database.Driver, err)
	}

	app := &application{config: cfg, logger: log, store: store}

	if cfg.Redis.Enabled {
		rc, err := redis.NewConnection(cfg, log)
		if err != nil {
			_ = store.Close()
			return nil, err
		}
		app.redis = rc
	} else {
		log.Warn("Redis disabled: rate limiting and token revocation are off")
	}

	app.userService = user.NewService(store.Users, cfg, app.revoker(), log)
	app.emailer = email.NewEmailService(cfg, log)
	app.dispatcher = email.NewDispatcher(cfg.Email.SendTimeout, log)

	return app, nil
}

func (a *application) redisClient() *goredis.Client {
	if a.redis == nil {
		return nil
	}
	return a.redis.GetClient()
}

func (a *application) revoker() auth.TokenRevoker {
	if a.redis == nil {
		return nil
	}
	return auth.NewRedisRevoker(a.redis.GetClient())
}

// server wires services and handlers into the HTTP server
func (a *application) server() *httpserver.Server {
	catalog := product.NewService(a.config)
	cartService := cart.NewService(a.store.Carts, a.logger)
	notifier := email.NewOrderNotifier(a.emailer, a.dispatcher)
	orderService := order.NewService(a.store.Orders, catalog, cartService, notifier, a.config, a.logger)

	h := &routes.Handlers{
		Auth:          handlers.NewAuthHandler(a.userService, a.logger),
		Cart:          handlers.NewCartHandler(cartService, a.logger),
		Order:         handlers.NewOrderHandler(orderService, a.logger),
		Invoice:       handlers.NewInvoiceHandler(orderService, pdf.NewService(a.config), a.logger),
		Product:       handlers.NewProductHandler(catalog, a.logger),
		Email:         handlers.NewEmailHandler(a.emailer, a.logger),
		Authenticator: middleware.NewAuthenticator(a.config, a.revoker(), a.logger),
	}

	checks := map[string]handlers.HealthChecker{"database": a.store}
	if a.redis != nil {
		checks["redis"] = a.redis
	}

	return httpserver.NewServer(a.config, h, handlers.NewHealthHandler(a.config, checks), a.redisClient(), a.logger)
}

// close releases connections
func (a *application) close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.WithError(err).Warn("failed to close Redis")
		}
	}
	if err := a.store.Close(); err != nil {
		a.logger.WithError(err).Warn("failed to close store")
	}
}
