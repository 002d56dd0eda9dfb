// internal/interfaces/http/handlers/order.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
)

// OrderHandler handles order endpoints
type OrderHandler struct {
	orderService *order.Service
	logger       *logrus.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *order.Service, logger *logrus.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       logger,
	}
}

// CreateOrder handles POST /orders
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req order.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, order.ErrInvalidOrder)
		return
	}

	createdOrder, err := h.orderService.CreateOrder(c.Request.Context(), middleware.OwnerKeyFromContext(c), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order created successfully",
		"order":   createdOrder,
	})
}

// GetOrders handles GET /orders. Admins see every order.
func (h *OrderHandler) GetOrders(c *gin.Context) {
	var req order.OrderListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, "Invalid query parameters")
		return
	}

	response, err := h.orderService.GetOrders(
		c.Request.Context(),
		middleware.OwnerKeyFromContext(c),
		middleware.IsAdminFromContext(c),
		&req,
	)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetOrder handles GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	o, err := h.orderService.GetOrder(
		c.Request.Context(),
		c.Param("id"),
		middleware.OwnerKeyFromContext(c),
		middleware.IsAdminFromContext(c),
	)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": o})
}

// UpdateOrderStatus handles PATCH /orders/:id
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	var req order.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, order.ErrInvalidStatus)
		return
	}

	updated, err := h.orderService.UpdateOrderStatus(
		c.Request.Context(),
		c.Param("id"),
		&req,
		middleware.OwnerKeyFromContext(c),
		middleware.IsAdminFromContext(c),
	)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated successfully",
		"order":   updated,
	})
}
