// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
)

// CartHandler handles cart endpoints. The owner is the verified principal or the guest cart.
type CartHandler struct {
	cartService *cart.Service
	logger      *logrus.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *cart.Service, logger *logrus.Logger) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		logger:      logger,
	}
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	userCart, err := h.cartService.GetCart(c.Request.Context(), middleware.OwnerKeyFromContext(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cart":   userCart.Items,
		"totals": userCart.Totals(),
	})
}

// AddItem handles POST /cart
func (h *CartHandler) AddItem(c *gin.Context) {
	var req struct {
		Item *cart.LineItem `json:"item"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Item == nil {
		respondError(c, h.logger, cart.ErrInvalidItem)
		return
	}

	userCart, err := h.cartService.AddItem(c.Request.Context(), middleware.OwnerKeyFromContext(c), *req.Item)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart",
		"cart":    userCart.Items,
	})
}

// ReplaceCart handles PUT /cart
func (h *CartHandler) ReplaceCart(c *gin.Context) {
	var req struct {
		Items []cart.LineItem `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, cart.ErrInvalidItems)
		return
	}

	userCart, err := h.cartService.ReplaceCart(c.Request.Context(), middleware.OwnerKeyFromContext(c), req.Items)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart updated",
		"cart":    userCart.Items,
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	if _, err := h.cartService.ClearCart(c.Request.Context(), middleware.OwnerKeyFromContext(c)); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared",
		"cart":    []cart.LineItem{},
	})
}
