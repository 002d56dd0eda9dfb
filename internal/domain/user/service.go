// internal/domain/user/service.go
package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/pkg/auth"
)

// Service handles user business logic
type Service struct {
	repo            Repository
	config          *config.Config
	passwordManager *auth.PasswordManager
	jwtManager      *auth.JWTManager
	revoker         auth.TokenRevoker
	logger          *logrus.Logger
}

// NewService creates a new user service. revoker may be nil when Redis is disabled.
func NewService(repo Repository, cfg *config.Config, revoker auth.TokenRevoker, logger *logrus.Logger) *Service {
	return &Service{
		repo:            repo,
		config:          cfg,
		passwordManager: auth.NewPasswordManager(cfg),
		jwtManager:      auth.NewJWTManager(cfg),
		revoker:         revoker,
		logger:          logger,
	}
}

// RegisterRequest represents user registration data
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents user login data
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User         *User  `json:"user"`
	IsAdmin      bool   `json:"is_admin"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Register creates a new user account
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	name := strings.TrimSpace(req.Name)
	email := NormalizeEmail(req.Email)

	if name == "" || email == "" || req.Password == "" {
		return nil, ErrValidation.WithMessage("Name, email and password are required")
	}
	if !ValidEmail(email) {
		return nil, ErrValidation.WithMessage("Please enter a valid email address")
	}
	if err := s.passwordManager.ValidatePassword(req.Password); err != nil {
		return nil, ErrValidation.WithMessage("Password must be at least %d characters long", s.config.Security.MinPasswordLength)
	}

	// The unique index also enforces this
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	hashedPassword, err := s.passwordManager.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &User{
		Name:        name,
		Email:       email,
		Password:    hashedPassword,
		LastLoginAt: &now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{"user_id": user.ID, "email": user.Email}).Info("user registered")

	return s.issueTokens(user)
}

// Login authenticates a user
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	email := NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, ErrValidation.WithMessage("Email and password are required")
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrNotRegistered
	}
	if err != nil {
		return nil, err
	}

	if err := s.passwordManager.VerifyPassword(req.Password, user.Password); err != nil {
		s.logger.WithField("email", email).Warn("failed login attempt")
		return nil, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	user.LastLoginAt = &now
	if err := s.repo.Update(ctx, user); err != nil {
		s.logger.WithError(err).WithField("user_id", user.ID).Warn("failed to record last login")
	}

	return s.issueTokens(user)
}

// AdminLogin authenticates a user and requires the admin flag
func (s *Service) AdminLogin(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	resp, err := s.Login(ctx, req)
	if err != nil {
		if errors.Is(err, ErrNotRegistered) {
			return nil, ErrNotAdmin
		}
		return nil, err
	}
	if !resp.IsAdmin {
		return nil, ErrNotAdmin
	}
	return resp, nil
}

// RefreshToken generates new tokens using refresh token
func (s *Service) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidToken.Wrap(err)
	}

	if s.revoker != nil {
		revoked, err := s.revoker.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, ErrInvalidToken
		}
	}

	user, err := s.repo.FindByID(ctx, claims.UserID)
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}

	resp, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}

	if s.config.JWT.RefreshTokenRotation {
		if s.revoker != nil {
			if err := s.revoker.Revoke(ctx, claims); err != nil {
				s.logger.WithError(err).Warn("failed to revoke rotated refresh token")
			}
		}
	} else {
		resp.RefreshToken = refreshToken
	}

	return resp, nil
}

// Logout revokes the presented token. It never fails for the caller.
func (s *Service) Logout(ctx context.Context, claims *auth.Claims) {
	if claims == nil {
		return
	}
	if s.revoker == nil {
		s.logger.WithField("user_id", claims.UserID).Debug("token revocation disabled, logout is client-side only")
		return
	}
	if err := s.revoker.Revoke(ctx, claims); err != nil {
		s.logger.WithError(err).WithField("user_id", claims.UserID).Warn("failed to revoke token on logout")
	}
}

// GetProfile gets user profile by ID
func (s *Service) GetProfile(ctx context.Context, userID string) (*User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Public(), nil
}

// SeedAdmin creates the configured administrator, or promotes and resets it
func (s *Service) SeedAdmin(ctx context.Context) (*User, error) {
	email := NormalizeEmail(s.config.Admin.Email)

	hashedPassword, err := s.passwordManager.HashPassword(s.config.Admin.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.IsAdmin && s.passwordManager.VerifyPassword(s.config.Admin.Password, existing.Password) == nil {
			return existing.Public(), nil
		}
		existing.IsAdmin = true
		existing.Password = hashedPassword
		if err := s.repo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to update admin user: %w", err)
		}
		s.logger.WithField("email", email).Info("admin user updated")
		return existing.Public(), nil
	case !errors.Is(err, ErrUserNotFound):
		return nil, err
	}

	admin := &User{
		Name:     s.config.Admin.Name,
		Email:    email,
		Password: hashedPassword,
		IsAdmin:  true,
	}
	if err := s.repo.Create(ctx, admin); err != nil {
		return nil, fmt.Errorf("failed to create admin user: %w", err)
	}

	s.logger.WithField("email", email).Info("admin user created")
	return admin.Public(), nil
}

func (s *Service) issueTokens(user *User) (*AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &AuthResponse{
		User:         user.Public(),
		IsAdmin:      user.IsAdmin,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.config.JWT.AccessTokenExpiry.Seconds()),
	}, nil
}
