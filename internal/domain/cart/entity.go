// internal/domain/cart/entity.go
package cart

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/your-org/storefront-backend/internal/pkg/apperrors"
)

// GuestOwner is the owner key shared by every unauthenticated caller
const GuestOwner = "guest"

var (
	ErrInvalidItem      = apperrors.Validation("invalid_item", "Invalid item data")
	ErrInvalidItems     = apperrors.Validation("invalid_items", "Items must be an array")
	ErrDuplicateItem    = apperrors.Validation("duplicate_item", "Each product may appear only once")
	ErrCartNotFound     = apperrors.NotFound("cart_not_found", "Cart not found")
	ErrConcurrentUpdate = apperrors.Conflict("cart_conflict", "Cart was modified concurrently, please retry")
)

// LineItem is a product snapshot held in a cart
type LineItem struct {
	ID       string `json:"id" bson:"id"` // Product ID
	Name     string `json:"name" bson:"name"`
	Price    int64  `json:"price" bson:"price"`
	Image    string `json:"image" bson:"image"`
	Quantity int    `json:"quantity" bson:"quantity"`
}

// LineItems is stored as a single jsonb column
type LineItems []LineItem

// Value implements driver.Valuer
func (l LineItems) Value() (driver.Value, error) {
	if l == nil {
		l = LineItems{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (l *LineItems) Scan(value interface{}) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		*l = LineItems{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into LineItems", value)
	}
	return json.Unmarshal(data, l)
}

// Cart holds one owner's items
type Cart struct {
	ID        string    `gorm:"primaryKey;size:36" bson:"_id" json:"id"`
	OwnerKey  string    `gorm:"uniqueIndex;not null;size:64" bson:"owner_key" json:"owner_key"`
	Items     LineItems `gorm:"type:jsonb;not null" bson:"items" json:"items"`
	Version   int64     `gorm:"not null" bson:"version" json:"-"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// TableName overrides the table name
func (Cart) TableName() string {
	return "carts"
}

// NewCart creates an empty cart for owner
func NewCart(owner string) *Cart {
	now := time.Now().UTC()
	return &Cart{
		ID:        uuid.NewString(),
		OwnerKey:  owner,
		Items:     LineItems{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate checks an item submitted for AddItem
func (i LineItem) Validate() error {
	if i.ID == "" || i.Name == "" || i.Image == "" || i.Price <= 0 {
		return ErrInvalidItem
	}
	return nil
}

// AddItem increments the quantity of an existing product or appends it with quantity 1
func (c *Cart) AddItem(item LineItem) {
	for i := range c.Items {
		if c.Items[i].ID == item.ID {
			c.Items[i].Quantity++
			return
		}
	}
	item.Quantity = 1
	c.Items = append(c.Items, item)
}

// Replace overwrites the items after checking each line
func (c *Cart) Replace(items []LineItem) error {
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if item.ID == "" || item.Quantity < 1 {
			return ErrInvalidItem.WithMessage("Each item needs an id and a quantity of at least 1")
		}
		if seen[item.ID] {
			return ErrDuplicateItem
		}
		seen[item.ID] = true
	}
	c.Items = append(LineItems{}, items...)
	return nil
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.Items = LineItems{}
}

// Totals summarises the cart contents
type Totals struct {
	ItemCount     int   `json:"item_count"`     // Number of unique items
	TotalQuantity int   `json:"total_quantity"` // Sum of all quantities
	SubTotal      int64 `json:"sub_total"`
}

// Totals computes the cart summary
func (c *Cart) Totals() Totals {
	t := Totals{ItemCount: len(c.Items)}
	for _, item := range c.Items {
		t.TotalQuantity += item.Quantity
		t.SubTotal += item.Price * int64(item.Quantity)
	}
	return t
}
