// internal/domain/user/entity.go
package user

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/your-org/storefront-backend/internal/pkg/apperrors"
	"gorm.io/gorm"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var (
	ErrUserNotFound       = apperrors.NotFound("user_not_found", "User not found")
	ErrEmailTaken         = apperrors.Validation("email_taken", "Email already registered. Please use a different email or try logging in.")
	ErrNotRegistered      = apperrors.Unauthorized("not_registered", "This email is not registered. Please sign up first.")
	ErrInvalidCredentials = apperrors.Unauthorized("invalid_credentials", "Invalid email or password")
	ErrNotAdmin           = apperrors.Unauthorized("not_admin", "Invalid admin credentials")
	ErrInvalidToken       = apperrors.Unauthorized("invalid_token", "Invalid or expired token")
	ErrValidation         = apperrors.Validation("validation_failed", "Invalid input")
)

// User represents a registered account
type User struct {
	ID          string     `gorm:"primaryKey;size:36" bson:"_id" json:"id"`
	Name        string     `gorm:"not null;size:255" bson:"name" json:"name"`
	Email       string     `gorm:"uniqueIndex;not null;size:255" bson:"email" json:"email"`
	Password    string     `gorm:"not null;size:255" bson:"password" json:"-"` // Don't return in JSON
	IsAdmin     bool       `gorm:"not null" bson:"is_admin" json:"is_admin"`
	LastLoginAt *time.Time `bson:"last_login_at,omitempty" json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updated_at"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

// BeforeCreate hook to handle business logic before user creation
func (u *User) BeforeCreate(tx *gorm.DB) error {
	u.Prepare()
	return nil
}

// Prepare assigns an id and normalizes the email before first persistence
func (u *User) Prepare() {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.Email = NormalizeEmail(u.Email)
	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
}

// Public returns a copy safe to hand to clients
func (u *User) Public() *User {
	c := *u
	c.Password = ""
	return &c
}

// NormalizeEmail lowercases and trims an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidEmail reports whether email looks like an address
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
