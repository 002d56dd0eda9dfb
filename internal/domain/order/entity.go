// internal/domain/order/entity.go
package order

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/user"
	"github.com/your-org/storefront-backend/internal/pkg/apperrors"
)

// OrderStatus represents the order status
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// AllStatuses lists the status enum in lifecycle order
var AllStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

var validTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered},
}

var statusMessages = map[OrderStatus]string{
	OrderStatusPending:    "Your order is pending and awaiting confirmation.",
	OrderStatusProcessing: "Your order is being processed and will be shipped soon.",
	OrderStatusShipped:    "Great news! Your order has been shipped and is on its way.",
	OrderStatusDelivered:  "Your order has been delivered successfully!",
	OrderStatusCancelled:  "Your order has been cancelled.",
}

// Payment methods
const (
	PaymentMethodCash = "cash"
	PaymentMethodBank = "bank"
)

var (
	ErrOrderNotFound     = apperrors.NotFound("order_not_found", "Order not found")
	ErrInvalidOrder      = apperrors.Validation("invalid_order", "Invalid order data")
	ErrInvalidStatus     = apperrors.Validation("invalid_status", "Invalid status")
	ErrInvalidTransition = apperrors.Conflict("invalid_transition", "Invalid status transition")
	ErrStaleStatus       = apperrors.Conflict("stale_status", "Order status changed concurrently, please reload")
	ErrTotalMismatch     = apperrors.Validation("total_mismatch", "Order total does not match current prices")
	ErrAdminRequired     = apperrors.Forbidden("admin_required", "Unauthorized. Admin access required.")
	ErrOrderForbidden    = apperrors.Forbidden("order_forbidden", "You do not have access to this order")
)

// Valid reports whether s is part of the status enum
func (s OrderStatus) Valid() bool {
	_, ok := statusMessages[s]
	return ok
}

// Message returns the customer-facing description of s
func (s OrderStatus) Message() string {
	if msg, ok := statusMessages[s]; ok {
		return msg
	}
	return fmt.Sprintf("Your order status has been updated to %s.", s)
}

// CanTransitionTo checks the transition table
func (s OrderStatus) CanTransitionTo(to OrderStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Item is a line item frozen into the order
type Item struct {
	ID       string `json:"id" bson:"id"` // Product ID
	Name     string `json:"name" bson:"name"`
	Price    int64  `json:"price" bson:"price"`
	Image    string `json:"image,omitempty" bson:"image,omitempty"`
	Quantity int    `json:"quantity" bson:"quantity"`
}

// LineTotal returns price times quantity
func (i Item) LineTotal() int64 {
	return i.Price * int64(i.Quantity)
}

// Items is stored as a single jsonb column
type Items []Item

// Value implements driver.Valuer
func (i Items) Value() (driver.Value, error) {
	return jsonValue(i)
}

// Scan implements sql.Scanner
func (i *Items) Scan(value interface{}) error {
	return jsonScan(value, i)
}

// StatusChange records one transition
type StatusChange struct {
	Status    OrderStatus `json:"status" bson:"status"`
	Comment   string      `json:"comment,omitempty" bson:"comment,omitempty"`
	ChangedBy string      `json:"changed_by" bson:"changed_by"`
	ChangedAt time.Time   `json:"changed_at" bson:"changed_at"`
}

// StatusHistory is stored as a single jsonb column
type StatusHistory []StatusChange

// Value implements driver.Valuer
func (h StatusHistory) Value() (driver.Value, error) {
	return jsonValue(h)
}

// Scan implements sql.Scanner
func (h *StatusHistory) Scan(value interface{}) error {
	return jsonScan(value, h)
}

// Customer holds contact and delivery details captured at checkout
type Customer struct {
	FirstName     string `gorm:"size:100" json:"first_name" bson:"first_name"`
	LastName      string `gorm:"size:100" json:"last_name" bson:"last_name"`
	Email         string `gorm:"size:255" json:"email" bson:"email"`
	Phone         string `gorm:"size:30" json:"phone" bson:"phone"`
	Address       string `gorm:"size:500" json:"address" bson:"address"`
	City          string `gorm:"size:100" json:"city" bson:"city"`
	PostalCode    string `gorm:"size:20" json:"postal_code" bson:"postal_code"`
	Country       string `gorm:"size:100" json:"country" bson:"country"`
	PaymentMethod string `gorm:"size:20" json:"payment_method" bson:"payment_method"`
}

// FullName returns the customer's full name
func (c *Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Validate checks that every field is present
func (c *Customer) Validate() error {
	fields := []struct{ name, value string }{
		{"first_name", c.FirstName},
		{"last_name", c.LastName},
		{"email", c.Email},
		{"phone", c.Phone},
		{"address", c.Address},
		{"city", c.City},
		{"postal_code", c.PostalCode},
		{"country", c.Country},
		{"payment_method", c.PaymentMethod},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return ErrInvalidOrder.WithMessage("Missing customer field: %s", f.name)
		}
	}
	if !user.ValidEmail(strings.TrimSpace(c.Email)) {
		return ErrInvalidOrder.WithMessage("Invalid customer email")
	}
	if c.PaymentMethod != PaymentMethodCash && c.PaymentMethod != PaymentMethodBank {
		return ErrInvalidOrder.WithMessage("Payment method must be %q or %q", PaymentMethodCash, PaymentMethodBank)
	}
	return nil
}

// Order represents the order entity
type Order struct {
	ID       string      `gorm:"primaryKey;size:36" bson:"_id" json:"id"`
	UserID   string      `gorm:"index;not null;size:64" bson:"user_id" json:"user_id"` // Owner key, "guest" when anonymous
	Items    Items       `gorm:"type:jsonb;not null" bson:"items" json:"items"`
	Customer Customer    `gorm:"embedded;embeddedPrefix:customer_" bson:"customer" json:"customer"`
	Status   OrderStatus `gorm:"index;not null;size:20" bson:"status" json:"status"`

	// Financial Information
	Subtotal int64  `gorm:"not null" bson:"subtotal" json:"subtotal"`
	Shipping int64  `gorm:"not null" bson:"shipping" json:"shipping"`
	Total    int64  `gorm:"not null" bson:"total" json:"total"`
	Currency string `gorm:"size:3" bson:"currency" json:"currency"`

	StatusHistory StatusHistory `gorm:"type:jsonb;not null" bson:"status_history" json:"status_history"`

	// Timestamps
	ProcessedAt *time.Time `bson:"processed_at,omitempty" json:"processed_at,omitempty"`
	ShippedAt   *time.Time `bson:"shipped_at,omitempty" json:"shipped_at,omitempty"`
	DeliveredAt *time.Time `bson:"delivered_at,omitempty" json:"delivered_at,omitempty"`
	CancelledAt *time.Time `bson:"cancelled_at,omitempty" json:"cancelled_at,omitempty"`
	CreatedAt   time.Time  `gorm:"index" bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updated_at"`
}

// TableName overrides the table name
func (Order) TableName() string { return "orders" }

// Business methods for Order

// Prepare assigns id, initial status and timestamps before first persistence
func (o *Order) Prepare() {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	o.Status = OrderStatusPending
	o.CreatedAt = now
	o.UpdatedAt = now
	if o.Items == nil {
		o.Items = Items{}
	}
	o.StatusHistory = StatusHistory{{
		Status:    OrderStatusPending,
		Comment:   "Order placed",
		ChangedBy: o.UserID,
		ChangedAt: now,
	}}
}

// ShortID returns the first block of the id for display
func (o *Order) ShortID() string {
	if i := strings.IndexByte(o.ID, '-'); i > 0 {
		return strings.ToUpper(o.ID[:i])
	}
	return strings.ToUpper(o.ID)
}

// ApplyStatus moves the order to status and records the change
func (o *Order) ApplyStatus(status OrderStatus, comment, changedBy string) {
	now := time.Now().UTC()
	o.Status = status
	o.UpdatedAt = now

	switch status {
	case OrderStatusProcessing:
		o.ProcessedAt = &now
	case OrderStatusShipped:
		o.ShippedAt = &now
	case OrderStatusDelivered:
		o.DeliveredAt = &now
	case OrderStatusCancelled:
		o.CancelledAt = &now
	}

	o.StatusHistory = append(o.StatusHistory, StatusChange{
		Status:    status,
		Comment:   comment,
		ChangedBy: changedBy,
		ChangedAt: now,
	})
}

// VisibleTo reports whether the principal may read the order
func (o *Order) VisibleTo(ownerKey string, isAdmin bool) bool {
	return isAdmin || o.UserID == ownerKey || o.UserID == cart.GuestOwner
}

func jsonValue(v interface{}) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func jsonScan(value interface{}, dest interface{}) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("cannot scan %T into %T", value, dest)
	}
}
