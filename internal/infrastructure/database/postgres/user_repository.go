package postgres

import (
	"context"

	"github.com/your-org/storefront-backend/internal/domain/user"
	"gorm.io/gorm"
)

// UserRepository stores users in the users table
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	u.Prepare()
	err := r.db.WithContext(ctx).Create(u).Error
	if isUniqueViolation(err) {
		return user.ErrEmailTaken
	}
	return translate(err, user.ErrUserNotFound)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var u user.User
	err := r.db.WithContext(ctx).Where("email = ?", user.NormalizeEmail(email)).First(&u).Error
	if err != nil {
		return nil, translate(err, user.ErrUserNotFound)
	}
	return &u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	var u user.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	if err != nil {
		return nil, translate(err, user.ErrUserNotFound)
	}
	return &u, nil
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	u.Prepare()
	res := r.db.WithContext(ctx).Model(&user.User{}).Where("id = ?", u.ID).Updates(map[string]interface{}{
		"name":          u.Name,
		"password":      u.Password,
		"is_admin":      u.IsAdmin,
		"last_login_at": u.LastLoginAt,
		"updated_at":    u.UpdatedAt,
	})
	if res.Error != nil {
		return translate(res.Error, user.ErrUserNotFound)
	}
	if res.RowsAffected == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

var _ user.Repository = (*UserRepository)(nil)
