package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const rateLimitWindow = time.Minute

// RateLimit implements a fixed-window per-IP limiter on Redis.
// A nil client disables limiting; Redis errors let the request through.
func RateLimit(limit int, redisClient *redis.Client, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if redisClient == nil || limit <= 0 {
			c.Next()
			return
		}

		key := "rate_limit:" + c.ClientIP()

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		current, err := redisClient.Get(ctx, key).Int()
		if err != nil && !errors.Is(err, redis.Nil) {
			logger.WithError(err).Warn("rate limiter unavailable")
			c.Next()
			return
		}

		reset := strconv.FormatInt(time.Now().Add(rateLimitWindow).Unix(), 10)
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Reset", reset)

		if current >= limit {
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", strconv.Itoa(int(rateLimitWindow.Seconds())))
			abortWithError(c, http.StatusTooManyRequests, "rate_limited", "Too many requests. Please try again later.")
			return
		}

		pipe := redisClient.TxPipeline()
		pipe.Incr(ctx, key)
		if current == 0 {
			pipe.Expire(ctx, key, rateLimitWindow)
		}
		if _, err := pipe.Exec(ctx); err != nil {
			logger.WithError(err).Warn("failed to record rate limit hit")
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(limit-current-1))
		c.Next()
	}
}
