package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/storefront-backend/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "storefront-test"},
		JWT: config.JWTConfig{
			Secret:             "0123456789abcdef0123456789abcdef",
			AccessTokenExpiry:  time.Hour,
			RefreshTokenExpiry: 24 * time.Hour,
		},
		Security: config.SecurityConfig{BcryptCost: 4, MinPasswordLength: 6},
	}
}

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager(testConfig())

	token, err := m.GenerateAccessToken("u1", "ali@x.com", true)
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "ali@x.com", claims.Email)
	assert.True(t, claims.IsAdmin)
	assert.NotEmpty(t, claims.ID)

	_, err = m.ValidateRefreshToken(token)
	assert.Error(t, err)
}

func TestJWTManager_RefreshTokenNeverAdmin(t *testing.T) {
	m := NewJWTManager(testConfig())

	token, err := m.GenerateRefreshToken("u1", "ali@x.com")
	require.NoError(t, err)

	claims, err := m.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.False(t, claims.IsAdmin)
}

func TestJWTManager_RejectsForeignSecret(t *testing.T) {
	m := NewJWTManager(testConfig())

	other := testConfig()
	other.JWT.Secret = "ffffffffffffffffffffffffffffffff"
	token, err := NewJWTManager(other).GenerateAccessToken("u1", "a@b.co", true)
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestJWTManager_RejectsExpired(t *testing.T) {
	cfg := testConfig()
	cfg.JWT.AccessTokenExpiry = -time.Minute
	m := NewJWTManager(cfg)

	token, err := m.GenerateAccessToken("u1", "a@b.co", false)
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestExtractTokenFromHeader(t *testing.T) {
	assert.Equal(t, "abc", ExtractTokenFromHeader("Bearer abc"))
	assert.Equal(t, "abc", ExtractTokenFromHeader("bearer abc"))
	assert.Equal(t, "", ExtractTokenFromHeader("Basic abc"))
	assert.Equal(t, "", ExtractTokenFromHeader(""))
}

func TestPasswordManager(t *testing.T) {
	p := NewPasswordManager(testConfig())

	_, err := p.HashPassword("short")
	assert.Error(t, err)

	hash, err := p.HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)
	assert.NoError(t, p.VerifyPassword("secret1", hash))
	assert.Error(t, p.VerifyPassword("secret2", hash))
}

func TestRedisRevoker(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	m := NewJWTManager(testConfig())
	token, err := m.GenerateAccessToken("u1", "a@b.co", false)
	require.NoError(t, err)
	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)

	r := NewRedisRevoker(client)
	ctx := context.Background()

	revoked, err := r.IsRevoked(ctx, claims.ID)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, r.Revoke(ctx, claims))

	revoked, err = r.IsRevoked(ctx, claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)

	ttl := mr.TTL(revokedKeyPrefix + claims.ID)
	assert.True(t, ttl > 0 && ttl <= time.Hour)

	mr.FastForward(2 * time.Hour)
	revoked, err = r.IsRevoked(ctx, claims.ID)
	require.NoError(t, err)
	assert.False(t, revoked)
}
