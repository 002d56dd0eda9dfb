package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/config"
)

// HealthChecker is a dependency that can be pinged
type HealthChecker interface {
	Health(ctx context.Context) error
}

// HealthHandler reports liveness and readiness
type HealthHandler struct {
	config    *config.Config
	checks    map[string]HealthChecker
	startedAt time.Time
}

// NewHealthHandler creates a health handler over named dependencies.
// Nil checkers are skipped.
func NewHealthHandler(cfg *config.Config, checks map[string]HealthChecker) *HealthHandler {
	active := make(map[string]HealthChecker, len(checks))
	for name, check := range checks {
		if check != nil {
			active[name] = check
		}
	}
	return &HealthHandler{config: cfg, checks: active, startedAt: time.Now()}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	components, healthy := h.probe(c.Request.Context())

	status, code := "healthy", http.StatusOK
	if !healthy {
		status, code = "unhealthy", http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":      status,
		"components":  components,
		"timestamp":   time.Now().UTC(),
		"version":     h.config.App.Version,
		"environment": h.config.App.Environment,
	})
}

// Ready handles GET /ready
func (h *HealthHandler) Ready(c *gin.Context) {
	components, healthy := h.probe(c.Request.Context())
	if !healthy {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ready",
		"timestamp": time.Now().UTC(),
		"uptime":    time.Since(h.startedAt).Round(time.Second).String(),
	})
}

func (h *HealthHandler) probe(ctx context.Context) (gin.H, bool) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	components := make(gin.H, len(h.checks))
	healthy := true
	for name, check := range h.checks {
		if err := check.Health(ctx); err != nil {
			components[name] = "unhealthy"
			healthy = false
			continue
		}
		components[name] = "healthy"
	}
	return components, healthy
}
