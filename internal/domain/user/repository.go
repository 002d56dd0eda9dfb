package user

import "context"

// Repository persists users. Implementations return ErrUserNotFound for
// missing rows and ErrEmailTaken when the unique email index is violated.
type Repository interface {
	Create(ctx context.Context, u *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, u *User) error
}
