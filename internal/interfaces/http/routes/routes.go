// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/interfaces/http/handlers"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
)

// Handlers bundles everything the API routes dispatch to
type Handlers struct {
	Auth          *handlers.AuthHandler
	Cart          *handlers.CartHandler
	Order         *handlers.OrderHandler
	Invoice       *handlers.InvoiceHandler
	Product       *handlers.ProductHandler
	Email         *handlers.EmailHandler
	Authenticator *middleware.Authenticator
}

// SetupRoutes registers every /api/v1 route
func SetupRoutes(rg *gin.RouterGroup, h *Handlers) {
	SetupAuthRoutes(rg, h)
	SetupProductRoutes(rg, h)
	SetupCartRoutes(rg, h)
	SetupOrderRoutes(rg, h)
	SetupAdminRoutes(rg, h)
}

// SetupAuthRoutes sets up authentication related routes
func SetupAuthRoutes(rg *gin.RouterGroup, h *Handlers) {
	auth := rg.Group("/auth")
	{
		auth.POST("/signup", h.Auth.Signup)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/admin/login", h.Auth.AdminLogin)
		auth.POST("/refresh", h.Auth.RefreshToken)
		auth.POST("/logout", middleware.OptionalAuthMiddleware(h.Authenticator), h.Auth.Logout)
		auth.GET("/me", middleware.AuthMiddleware(h.Authenticator), h.Auth.Me)
	}
}

// SetupProductRoutes sets up product related routes
func SetupProductRoutes(rg *gin.RouterGroup, h *Handlers) {
	products := rg.Group("/products")
	{
		products.GET("", h.Product.GetProducts)
		products.GET("/categories", h.Product.GetCategories)
		products.GET("/:slug", h.Product.GetProductBySlug)
	}
}

// SetupCartRoutes sets up cart routes. Unauthenticated callers share the guest cart.
func SetupCartRoutes(rg *gin.RouterGroup, h *Handlers) {
	cart := rg.Group("/cart")
	cart.Use(middleware.OptionalAuthMiddleware(h.Authenticator))
	{
		cart.GET("", h.Cart.GetCart)
		cart.POST("", h.Cart.AddItem)
		cart.PUT("", h.Cart.ReplaceCart)
		cart.DELETE("", h.Cart.ClearCart)
	}
}

// SetupOrderRoutes sets up order routes. Status changes are checked for
// admin rights by the order service so non-admins get 403.
func SetupOrderRoutes(rg *gin.RouterGroup, h *Handlers) {
	orders := rg.Group("/orders")
	orders.Use(middleware.OptionalAuthMiddleware(h.Authenticator))
	{
		orders.GET("", h.Order.GetOrders)
		orders.POST("", h.Order.CreateOrder)
		orders.GET("/:id", h.Order.GetOrder)
		orders.PATCH("/:id", h.Order.UpdateOrderStatus)
		orders.GET("/:id/invoice", h.Invoice.GenerateInvoice)
	}
}

// SetupAdminRoutes sets up admin-only routes
func SetupAdminRoutes(rg *gin.RouterGroup, h *Handlers) {
	email := rg.Group("/email")
	email.Use(middleware.AuthMiddleware(h.Authenticator))
	email.Use(middleware.AdminMiddleware())
	{
		email.POST("", h.Email.SendEmail)
	}
}
