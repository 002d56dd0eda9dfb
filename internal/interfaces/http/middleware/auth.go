// internal/interfaces/http/middleware/auth.go
package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/pkg/auth"
)

// Context keys set by the auth middlewares
const (
	ContextKeyUserID    = "user_id"
	ContextKeyUserEmail = "user_email"
	ContextKeyIsAdmin   = "is_admin"
	ContextKeyClaims    = "token_claims"
)

// Authenticator validates bearer tokens and consults the revocation list
type Authenticator struct {
	jwtManager *auth.JWTManager
	revoker    auth.TokenRevoker
	logger     *logrus.Logger
}

// NewAuthenticator creates an authenticator. revoker may be nil.
func NewAuthenticator(cfg *config.Config, revoker auth.TokenRevoker, logger *logrus.Logger) *Authenticator {
	return &Authenticator{
		jwtManager: auth.NewJWTManager(cfg),
		revoker:    revoker,
		logger:     logger,
	}
}

// authenticate returns the claims of a valid, unrevoked access token
func (a *Authenticator) authenticate(ctx context.Context, authHeader string) (*auth.Claims, string) {
	if authHeader == "" {
		return nil, "Authorization header required"
	}

	tokenString := auth.ExtractTokenFromHeader(authHeader)
	if tokenString == "" {
		return nil, "Invalid authorization header format"
	}

	claims, err := a.jwtManager.ValidateAccessToken(tokenString)
	if err != nil {
		return nil, "Invalid or expired token"
	}

	if a.revoker != nil {
		revoked, err := a.revoker.IsRevoked(ctx, claims.ID)
		if err != nil {
			// Revocation lookups fail open
			a.logger.WithError(err).Warn("token revocation check failed")
		} else if revoked {
			return nil, "Token has been revoked"
		}
	}

	return claims, ""
}

// AuthMiddleware creates JWT authentication middleware
func AuthMiddleware(a *Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, reason := a.authenticate(c.Request.Context(), c.GetHeader("Authorization"))
		if claims == nil {
			abortWithError(c, http.StatusUnauthorized, "unauthorized", reason)
			return
		}

		setPrincipal(c, claims)
		c.Next()
	}
}

// OptionalAuthMiddleware sets the principal when a valid token is present
// and otherwise lets the request through as a guest.
func OptionalAuthMiddleware(a *Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, _ := a.authenticate(c.Request.Context(), c.GetHeader("Authorization")); claims != nil {
			setPrincipal(c, claims)
		}
		c.Next()
	}
}

// AdminMiddleware ensures the user is an admin
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(ContextKeyIsAdmin); !exists {
			abortWithError(c, http.StatusUnauthorized, "unauthorized", "Authentication required")
			return
		}

		if !IsAdminFromContext(c) {
			abortWithError(c, http.StatusForbidden, "admin_required", "Unauthorized. Admin access required.")
			return
		}

		c.Next()
	}
}

func setPrincipal(c *gin.Context, claims *auth.Claims) {
	c.Set(ContextKeyUserID, claims.UserID)
	c.Set(ContextKeyUserEmail, claims.Email)
	c.Set(ContextKeyIsAdmin, claims.IsAdmin)
	c.Set(ContextKeyClaims, claims)
}

// GetUserIDFromContext extracts user ID from gin context
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, exists := c.Get(ContextKeyUserID)
	if !exists {
		return "", false
	}
	id, ok := userID.(string)
	return id, ok && id != ""
}

// OwnerKeyFromContext returns the verified user id, or the guest owner key
func OwnerKeyFromContext(c *gin.Context) string {
	if id, ok := GetUserIDFromContext(c); ok {
		return id
	}
	return cart.GuestOwner
}

// GetClaimsFromContext returns the verified token claims
func GetClaimsFromContext(c *gin.Context) (*auth.Claims, bool) {
	v, exists := c.Get(ContextKeyClaims)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}

// IsAdminFromContext checks if user is admin from gin context
func IsAdminFromContext(c *gin.Context) bool {
	isAdmin, exists := c.Get(ContextKeyIsAdmin)
	if !exists {
		return false
	}
	b, _ := isAdmin.(bool)
	return b
}

func abortWithError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error": message,
		"code":  code,
	})
}
