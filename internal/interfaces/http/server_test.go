package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"github.com/your-org/storefront-backend/internal/domain/user"
	"github.com/your-org/storefront-backend/internal/infrastructure/database"
	httpserver "github.com/your-org/storefront-backend/internal/interfaces/http"
	"github.com/your-org/storefront-backend/internal/interfaces/http/handlers"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
	"github.com/your-org/storefront-backend/internal/interfaces/http/routes"
	"github.com/your-org/storefront-backend/internal/pkg/auth"
	"github.com/your-org/storefront-backend/internal/pkg/email"
	"github.com/your-org/storefront-backend/internal/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeRenderer struct{}

func (fakeRenderer) GenerateInvoice(o *order.Order) (*bytes.Buffer, error) {
	return bytes.NewBufferString("%PDF-1.4 " + o.ID), nil
}

type testAPI struct {
	t          *testing.T
	handler    http.Handler
	dispatcher *email.Dispatcher
	redis      *miniredis.Miniredis
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "storefront-test", Version: "test", Environment: "test"},
		Server: config.ServerConfig{
			Port:           "0",
			RequestTimeout: 5 * time.Second,
			MaxBodyBytes:   1 << 20,
		},
		JWT: config.JWTConfig{
			Secret:               "0123456789abcdef0123456789abcdef",
			AccessTokenExpiry:    time.Hour,
			RefreshTokenExpiry:   24 * time.Hour,
			RefreshTokenRotation: true,
		},
		Security: config.SecurityConfig{
			BcryptCost:         4,
			MinPasswordLength:  6,
			RateLimitPerMinute: 1000,
			CORSAllowedOrigins: []string{"http://localhost:3000"},
			CORSAllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			CORSAllowedHeaders: []string{"Content-Type", "Authorization"},
		},
		Email: config.EmailConfig{Provider: email.ProviderSMTP, SendTimeout: time.Second},
		Store: config.StoreConfig{
			Currency:              "PKR",
			ShippingFee:           500,
			FreeShippingThreshold: 5000,
			TotalPolicy:           config.TotalPolicyTrust,
		},
		Admin: config.AdminConfig{Name: "Admin", Email: "admin@admin.com", Password: "admin123"},
	}
}

func newTestAPI(t *testing.T, mutate ...func(*config.Config)) *testAPI {
	t.Helper()
	cfg := testConfig()
	for _, m := range mutate {
		m(cfg)
	}
	log := logger.Discard()

	mr := miniredis.RunT(t)
	rc := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rc.Close() })
	revoker := auth.NewRedisRevoker(rc)

	store := database.NewMemoryStore()
	userService := user.NewService(store.Users, cfg, revoker, log)
	_, err := userService.SeedAdmin(context.Background())
	require.NoError(t, err)

	catalog := product.NewService(cfg)
	cartService := cart.NewService(store.Carts, log)
	emailer := email.NewEmailService(cfg, log)
	dispatcher := email.NewDispatcher(time.Second, log)
	orderService := order.NewService(store.Orders, catalog, cartService, email.NewOrderNotifier(emailer, dispatcher), cfg, log)

	h := &routes.Handlers{
		Auth:          handlers.NewAuthHandler(userService, log),
		Cart:          handlers.NewCartHandler(cartService, log),
		Order:         handlers.NewOrderHandler(orderService, log),
		Invoice:       handlers.NewInvoiceHandler(orderService, fakeRenderer{}, log),
		Product:       handlers.NewProductHandler(catalog, log),
		Email:         handlers.NewEmailHandler(emailer, log),
		Authenticator: middleware.NewAuthenticator(cfg, revoker, log),
	}
	health := handlers.NewHealthHandler(cfg, map[string]handlers.HealthChecker{"database": store})
	server := httpserver.NewServer(cfg, h, health, rc, log)

	api := &testAPI{t: t, handler: server.Handler(), dispatcher: dispatcher, redis: mr}
	t.Cleanup(func() { _ = dispatcher.Wait(context.Background()) })
	return api
}

type response struct {
	Code   int
	Header http.Header
	Body   map[string]interface{}
	Raw    []byte
}

func (a *testAPI) do(method, path, token string, body interface{}, headers ...string) response {
	a.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)

	res := response{Code: rec.Code, Header: rec.Header(), Raw: rec.Body.Bytes()}
	if rec.Header().Get("Content-Type") != "application/pdf" && rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &res.Body)
	}
	return res
}

func (a *testAPI) signup(name, emailAddr, password string) string {
	a.t.Helper()
	res := a.do(http.MethodPost, "/api/v1/auth/signup", "", gin.H{"name": name, "email": emailAddr, "password": password})
	require.Equal(a.t, http.StatusCreated, res.Code, string(res.Raw))
	return res.Body["access_token"].(string)
}

func (a *testAPI) adminToken() string {
	a.t.Helper()
	res := a.do(http.MethodPost, "/api/v1/auth/admin/login", "", gin.H{"email": "admin@admin.com", "password": "admin123"})
	require.Equal(a.t, http.StatusOK, res.Code, string(res.Raw))
	return res.Body["access_token"].(string)
}

func customerBody() gin.H {
	return gin.H{
		"first_name": "Ali", "last_name": "Khan", "email": "ali@x.com", "phone": "0300",
		"address": "1 Main St", "city": "Lahore", "postal_code": "54000", "country": "PK",
		"payment_method": "cash",
	}
}

func (a *testAPI) placeOrder(token string) map[string]interface{} {
	a.t.Helper()
	res := a.do(http.MethodPost, "/api/v1/orders", token, gin.H{
		"items":    []gin.H{{"id": "1", "name": "Bulb", "price": 100, "image": "x", "quantity": 2}},
		"customer": customerBody(),
		"total":    700,
	})
	require.Equal(a.t, http.StatusCreated, res.Code, string(res.Raw))
	return res.Body["order"].(map[string]interface{})
}

func TestSignupThenLoginWithDifferentCase(t *testing.T) {
	api := newTestAPI(t)
	api.signup("Ali", "ali@x.com", "secret1")

	res := api.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": "ALI@X.COM", "password": "secret1"})
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "ali@x.com", res.Body["user"].(map[string]interface{})["email"])
	assert.Equal(t, false, res.Body["is_admin"])
	assert.NotContains(t, string(res.Raw), "password")
}

func TestSignupErrors(t *testing.T) {
	api := newTestAPI(t)
	api.signup("Ali", "ali@x.com", "secret1")

	res := api.do(http.MethodPost, "/api/v1/auth/signup", "", gin.H{"name": "Dup", "email": "Ali@x.com", "password": "secret1"})
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "email_taken", res.Body["code"])

	res = api.do(http.MethodPost, "/api/v1/auth/signup", "", gin.H{"name": "A", "email": "a@b.co", "password": "123"})
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "validation_failed", res.Body["code"])
}

func TestLoginErrors(t *testing.T) {
	api := newTestAPI(t)
	api.signup("Ali", "ali@x.com", "secret1")

	res := api.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": "ali@x.com", "password": "nope-nope"})
	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.Equal(t, "invalid_credentials", res.Body["code"])
	assert.Nil(t, res.Body["user"])

	res = api.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": "ghost@x.com", "password": "secret1"})
	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.Equal(t, "This email is not registered. Please sign up first.", res.Body["error"])

	res = api.do(http.MethodPost, "/api/v1/auth/admin/login", "", gin.H{"email": "ali@x.com", "password": "secret1"})
	assert.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestMeAndLogoutRevokesToken(t *testing.T) {
	api := newTestAPI(t)
	token := api.signup("Ali", "ali@x.com", "secret1")

	res := api.do(http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "Ali", res.Body["user"].(map[string]interface{})["name"])

	res = api.do(http.MethodPost, "/api/v1/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, res.Code)

	res = api.do(http.MethodGet, "/api/v1/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, res.Code)

	res = api.do(http.MethodPost, "/api/v1/auth/logout", "", nil)
	assert.Equal(t, http.StatusOK, res.Code)

	res = api.do(http.MethodGet, "/api/v1/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestRefreshToken(t *testing.T) {
	api := newTestAPI(t)
	res := api.do(http.MethodPost, "/api/v1/auth/signup", "", gin.H{"name": "Ali", "email": "ali@x.com", "password": "secret1"})
	require.Equal(t, http.StatusCreated, res.Code)
	refresh := res.Body["refresh_token"].(string)

	res = api.do(http.MethodPost, "/api/v1/auth/refresh", "", gin.H{"refresh_token": refresh})
	require.Equal(t, http.StatusOK, res.Code)
	assert.NotEmpty(t, res.Body["access_token"])

	res = api.do(http.MethodPost, "/api/v1/auth/refresh", "", gin.H{"refresh_token": refresh})
	assert.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestCartAddTwiceAndIgnoresUserIDHeader(t *testing.T) {
	api := newTestAPI(t)
	token := api.signup("Ali", "ali@x.com", "secret1")
	item := gin.H{"item": gin.H{"id": "1", "name": "Bulb", "price": 100, "image": "x"}}

	api.do(http.MethodPost, "/api/v1/cart", token, item)
	res := api.do(http.MethodPost, "/api/v1/cart", token, item)
	require.Equal(t, http.StatusOK, res.Code)

	items := res.Body["cart"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, float64(2), items[0].(map[string]interface{})["quantity"])

	// a spoofed owner header lands in the guest cart, not the user's
	res = api.do(http.MethodGet, "/api/v1/cart", "", nil, "x-user-id", "someone-else")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Empty(t, res.Body["cart"])
}

func TestCartReplaceAndClear(t *testing.T) {
	api := newTestAPI(t)

	res := api.do(http.MethodPut, "/api/v1/cart", "", gin.H{"items": "not-a-list"})
	assert.Equal(t, http.StatusBadRequest, res.Code)

	items := []gin.H{{"id": "2", "name": "Pendant", "price": 2400, "image": "p", "quantity": 3}}
	res = api.do(http.MethodPut, "/api/v1/cart", "", gin.H{"items": items})
	require.Equal(t, http.StatusOK, res.Code)

	res = api.do(http.MethodGet, "/api/v1/cart", "", nil)
	require.Len(t, res.Body["cart"], 1)

	res = api.do(http.MethodDelete, "/api/v1/cart", "", nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Empty(t, res.Body["cart"])

	res = api.do(http.MethodPost, "/api/v1/cart", "", gin.H{"item": gin.H{"id": "1"}})
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "invalid_item", res.Body["code"])
}

func TestCreateOrderKeepsSubmittedTotalAndEmptiesCart(t *testing.T) {
	api := newTestAPI(t)
	token := api.signup("Ali", "ali@x.com", "secret1")
	api.do(http.MethodPost, "/api/v1/cart", token, gin.H{"item": gin.H{"id": "1", "name": "Bulb", "price": 100, "image": "x"}})

	o := api.placeOrder(token)
	assert.Equal(t, "pending", o["status"])
	assert.Equal(t, float64(700), o["total"])
	assert.NotEmpty(t, o["id"])

	res := api.do(http.MethodGet, "/api/v1/cart", token, nil)
	assert.Empty(t, res.Body["cart"])

	res = api.do(http.MethodPost, "/api/v1/orders", token, gin.H{"items": []gin.H{}, "customer": customerBody(), "total": 1})
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "invalid_order", res.Body["code"])
}

func TestCreateOrderVerifyPolicyRejectsMismatch(t *testing.T) {
	api := newTestAPI(t, func(cfg *config.Config) { cfg.Store.TotalPolicy = config.TotalPolicyVerify })

	res := api.do(http.MethodPost, "/api/v1/orders", "", gin.H{
		"items":    []gin.H{{"id": "16", "quantity": 2}},
		"customer": customerBody(),
		"total":    700,
	})
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "total_mismatch", res.Body["code"])
}

func TestListOrdersScopedToCaller(t *testing.T) {
	api := newTestAPI(t)
	ali := api.signup("Ali", "ali@x.com", "secret1")
	sara := api.signup("Sara", "sara@x.com", "secret1")

	api.placeOrder(ali)
	api.placeOrder(ali)
	api.placeOrder(sara)

	res := api.do(http.MethodGet, "/api/v1/orders", ali, nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Len(t, res.Body["orders"], 2)

	res = api.do(http.MethodGet, "/api/v1/orders?limit=1&page=2", api.adminToken(), nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Len(t, res.Body["orders"], 1)
	pagination := res.Body["pagination"].(map[string]interface{})
	assert.Equal(t, float64(3), pagination["total"])
}

func TestGetOrderVisibility(t *testing.T) {
	api := newTestAPI(t)
	ali := api.signup("Ali", "ali@x.com", "secret1")
	sara := api.signup("Sara", "sara@x.com", "secret1")
	o := api.placeOrder(ali)
	path := "/api/v1/orders/" + o["id"].(string)

	assert.Equal(t, http.StatusOK, api.do(http.MethodGet, path, ali, nil).Code)
	assert.Equal(t, http.StatusForbidden, api.do(http.MethodGet, path, sara, nil).Code)
	assert.Equal(t, http.StatusOK, api.do(http.MethodGet, path, api.adminToken(), nil).Code)
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodGet, "/api/v1/orders/missing", ali, nil).Code)
}

func TestUpdateStatusRequiresAdmin(t *testing.T) {
	api := newTestAPI(t)
	ali := api.signup("Ali", "ali@x.com", "secret1")
	o := api.placeOrder(ali)
	path := "/api/v1/orders/" + o["id"].(string)

	res := api.do(http.MethodPatch, path, ali, gin.H{"status": "shipped"})
	assert.Equal(t, http.StatusForbidden, res.Code)
	assert.Equal(t, "Unauthorized. Admin access required.", res.Body["error"])

	res = api.do(http.MethodPatch, path, "", gin.H{"status": "shipped"})
	assert.Equal(t, http.StatusForbidden, res.Code)

	res = api.do(http.MethodGet, path, ali, nil)
	assert.Equal(t, "pending", res.Body["order"].(map[string]interface{})["status"])
}

func TestUpdateStatusAsAdmin(t *testing.T) {
	api := newTestAPI(t)
	admin := api.adminToken()
	o := api.placeOrder("")
	path := "/api/v1/orders/" + o["id"].(string)

	res := api.do(http.MethodPatch, path, admin, gin.H{"status": "lost"})
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "invalid_status", res.Body["code"])

	res = api.do(http.MethodPatch, path, admin, gin.H{"status": "delivered"})
	assert.Equal(t, http.StatusConflict, res.Code)
	assert.Equal(t, "invalid_transition", res.Body["code"])

	res = api.do(http.MethodPatch, path, admin, gin.H{"status": "processing"})
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "processing", res.Body["order"].(map[string]interface{})["status"])

	res = api.do(http.MethodPatch, "/api/v1/orders/missing", admin, gin.H{"status": "processing"})
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestInvoice(t *testing.T) {
	api := newTestAPI(t)
	ali := api.signup("Ali", "ali@x.com", "secret1")
	sara := api.signup("Sara", "sara@x.com", "secret1")
	o := api.placeOrder(ali)
	path := "/api/v1/orders/" + o["id"].(string) + "/invoice"

	res := api.do(http.MethodGet, path, ali, nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "application/pdf", res.Header.Get("Content-Type"))
	assert.Contains(t, res.Header.Get("Content-Disposition"), "invoice-")
	assert.Contains(t, string(res.Raw), o["id"].(string))

	assert.Equal(t, http.StatusForbidden, api.do(http.MethodGet, path, sara, nil).Code)
}

func TestProducts(t *testing.T) {
	api := newTestAPI(t)

	res := api.do(http.MethodGet, "/api/v1/products", "", nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Len(t, res.Body["products"], 25)

	res = api.do(http.MethodGet, "/api/v1/products?category=gentleman's-reserve", "", nil)
	assert.Len(t, res.Body["products"], 7)

	res = api.do(http.MethodGet, "/api/v1/products/categories", "", nil)
	assert.Equal(t, []interface{}{"gentleman's-reserve", "products"}, res.Body["categories"])

	res = api.do(http.MethodGet, "/api/v1/products/5w-cob", "", nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "5 W COB", res.Body["product"].(map[string]interface{})["name"])

	res = api.do(http.MethodGet, "/api/v1/products/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, res.Code)
	assert.Equal(t, "product_not_found", res.Body["code"])
}

func TestEmailEndpoint(t *testing.T) {
	api := newTestAPI(t)
	ali := api.signup("Ali", "ali@x.com", "secret1")
	body := gin.H{"to": "ali@x.com", "subject": "Hi", "html": "<p>hi</p>"}

	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodPost, "/api/v1/email", "", body).Code)
	assert.Equal(t, http.StatusForbidden, api.do(http.MethodPost, "/api/v1/email", ali, body).Code)

	admin := api.adminToken()
	res := api.do(http.MethodPost, "/api/v1/email", admin, gin.H{"to": "ali@x.com"})
	assert.Equal(t, http.StatusBadRequest, res.Code)

	res = api.do(http.MethodPost, "/api/v1/email", admin, body)
	require.Equal(t, http.StatusOK, res.Code)
	result := res.Body["result"].(map[string]interface{})
	assert.Equal(t, false, result["delivered"])
	assert.Equal(t, "Email not configured", result["message"])
}

func TestHealthAndMiddleware(t *testing.T) {
	api := newTestAPI(t)

	res := api.do(http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "healthy", res.Body["status"])
	assert.NotEmpty(t, res.Header.Get("X-Request-ID"))
	assert.Equal(t, "nosniff", res.Header.Get("X-Content-Type-Options"))

	res = api.do(http.MethodGet, "/ready", "", nil)
	assert.Equal(t, http.StatusOK, res.Code)

	res = api.do(http.MethodOptions, "/api/v1/cart", "", nil, "Origin", "http://localhost:3000")
	assert.Equal(t, http.StatusNoContent, res.Code)
	assert.Equal(t, "http://localhost:3000", res.Header.Get("Access-Control-Allow-Origin"))

	res = api.do(http.MethodGet, "/api/v1/nowhere", "", nil)
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestRateLimit(t *testing.T) {
	api := newTestAPI(t, func(cfg *config.Config) { cfg.Security.RateLimitPerMinute = 2 })

	assert.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/v1/products/categories", "", nil).Code)
	assert.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/v1/products/categories", "", nil).Code)

	res := api.do(http.MethodGet, "/api/v1/products/categories", "", nil)
	assert.Equal(t, http.StatusTooManyRequests, res.Code)
	assert.Equal(t, "rate_limited", res.Body["code"])

	api.redis.FastForward(2 * time.Minute)
	assert.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/v1/products/categories", "", nil).Code)
}
