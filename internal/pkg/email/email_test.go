package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/pkg/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		App:   config.AppConfig{BaseURL: "http://shop.test"},
		Store: config.StoreConfig{Currency: "PKR"},
		Email: config.EmailConfig{
			Provider:    ProviderSMTP,
			FromName:    "Ecolight Store",
			SendTimeout: 5 * time.Second,
		},
	}
}

func resendConfig(url string) *config.Config {
	cfg := testConfig()
	cfg.Email.Provider = ProviderResend
	cfg.Email.APIKey = "re_test"
	cfg.Email.APIBaseURL = url
	cfg.Email.FromEmail = "shop@ecolight.test"
	return cfg
}

func testOrder() *order.Order {
	o := &order.Order{
		ID:     "0c8a2f4e-1111-2222-3333-444455556666",
		UserID: "guest",
		Items: order.Items{
			{ID: "1", Name: "Bulb", Price: 100, Image: "x", Quantity: 2},
		},
		Customer: order.Customer{
			FirstName: "Ali", LastName: "Khan", Email: "ali@x.com", Phone: "0300",
			Address: "1 Main St", City: "Lahore", PostalCode: "54000", Country: "PK",
			PaymentMethod: order.PaymentMethodCash,
		},
		Subtotal: 200,
		Shipping: 500,
		Total:    700,
	}
	o.Prepare()
	return o
}

type resendStub struct {
	mu       sync.Mutex
	requests []ResendEmailRequest
	auth     string
}

func (s *resendStub) server(t *testing.T, status int) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emails", r.URL.Path)
		var req ResendEmailRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		s.mu.Lock()
		s.requests = append(s.requests, req)
		s.auth = r.Header.Get("Authorization")
		s.mu.Unlock()

		w.WriteHeader(status)
		if status == http.StatusOK {
			_, _ = w.Write([]byte(`{"id":"msg_123"}`))
		} else {
			_, _ = w.Write([]byte(`{"message":"invalid from address"}`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func (s *resendStub) sent() []ResendEmailRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ResendEmailRequest(nil), s.requests...)
}

func TestSendEmail_NotConfigured(t *testing.T) {
	svc := NewEmailService(testConfig(), logger.Discard())

	result, err := svc.SendEmail(context.Background(), &Email{
		To:          []string{"ali@x.com"},
		Subject:     "Hello",
		HTMLContent: "<p>hi</p>",
		Type:        EmailTypeCustom,
	})
	require.NoError(t, err)
	assert.False(t, result.Delivered)
	assert.Equal(t, "Email not configured", result.Message)
}

func TestSendEmail_RequiresRecipient(t *testing.T) {
	svc := NewEmailService(testConfig(), logger.Discard())

	_, err := svc.SendEmail(context.Background(), &Email{Subject: "Hello"})
	assert.Error(t, err)
}

func TestSendEmail_Resend(t *testing.T) {
	stub := &resendStub{}
	srv := stub.server(t, http.StatusOK)
	svc := NewEmailService(resendConfig(srv.URL), logger.Discard())

	result, err := svc.SendEmail(context.Background(), &Email{
		To:          []string{"ali@x.com"},
		Subject:     "Hello",
		HTMLContent: "<p>hi</p>",
		Type:        EmailTypeCustom,
	})
	require.NoError(t, err)
	assert.True(t, result.Delivered)
	assert.Equal(t, "msg_123", result.MessageID)

	sent := stub.sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "Ecolight Store <shop@ecolight.test>", sent[0].From)
	assert.Equal(t, []string{"ali@x.com"}, sent[0].To)
	assert.Equal(t, "<p>hi</p>", sent[0].HTML)
	assert.Equal(t, "Bearer re_test", stub.auth)
}

func TestSendEmail_ResendFailurePropagates(t *testing.T) {
	stub := &resendStub{}
	srv := stub.server(t, http.StatusUnprocessableEntity)
	svc := NewEmailService(resendConfig(srv.URL), logger.Discard())

	_, err := svc.SendEmail(context.Background(), &Email{To: []string{"ali@x.com"}, Subject: "Hello"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
}

func TestSendOrderConfirmationEmail(t *testing.T) {
	stub := &resendStub{}
	srv := stub.server(t, http.StatusOK)
	svc := NewEmailService(resendConfig(srv.URL), logger.Discard())
	o := testOrder()

	result, err := svc.SendOrderConfirmationEmail(context.Background(), o)
	require.NoError(t, err)
	assert.True(t, result.Delivered)

	sent := stub.sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "Order Confirmation - Order #"+o.ID, sent[0].Subject)
	assert.Contains(t, sent[0].HTML, "Ali Khan")
	assert.Contains(t, sent[0].HTML, "Bulb")
	assert.Contains(t, sent[0].HTML, "PKR 700")
	assert.Contains(t, sent[0].HTML, "Cash on Delivery")
}

func TestSendOrderStatusUpdateEmail(t *testing.T) {
	stub := &resendStub{}
	srv := stub.server(t, http.StatusOK)
	svc := NewEmailService(resendConfig(srv.URL), logger.Discard())
	o := testOrder()
	o.ApplyStatus(order.OrderStatusShipped, "", "admin")

	_, err := svc.SendOrderStatusUpdateEmail(context.Background(), o)
	require.NoError(t, err)

	sent := stub.sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "Order Status Update - Order #"+o.ID+" - SHIPPED", sent[0].Subject)
	assert.Contains(t, sent[0].HTML, "Great news! Your order has been shipped and is on its way.")
}

func TestDispatcher_WaitDrainsJobs(t *testing.T) {
	d := NewDispatcher(time.Second, logger.Discard())
	var done int32

	for i := 0; i < 5; i++ {
		ok := d.Dispatch("test", logrus.Fields{}, func(ctx context.Context) (*SendResult, error) {
			time.Sleep(10 * time.Millisecond)
			atomic.AddInt32(&done, 1)
			return &SendResult{Delivered: true}, nil
		})
		require.True(t, ok)
	}

	require.NoError(t, d.Wait(context.Background()))
	assert.Equal(t, int32(5), atomic.LoadInt32(&done))

	assert.False(t, d.Dispatch("late", logrus.Fields{}, func(ctx context.Context) (*SendResult, error) {
		t.Error("job ran after Wait")
		return nil, nil
	}))
}

func TestDispatcher_SwallowsFailuresAndPanics(t *testing.T) {
	d := NewDispatcher(time.Second, logger.Discard())

	d.Dispatch("fail", logrus.Fields{}, func(ctx context.Context) (*SendResult, error) {
		return nil, assert.AnError
	})
	d.Dispatch("panic", logrus.Fields{}, func(ctx context.Context) (*SendResult, error) {
		panic("boom")
	})

	assert.NoError(t, d.Wait(context.Background()))
}

func TestDispatcher_JobsHaveDeadline(t *testing.T) {
	d := NewDispatcher(20*time.Millisecond, logger.Discard())
	var sawDeadline int32

	d.Dispatch("slow", logrus.Fields{}, func(ctx context.Context) (*SendResult, error) {
		<-ctx.Done()
		atomic.StoreInt32(&sawDeadline, 1)
		return nil, ctx.Err()
	})

	require.NoError(t, d.Wait(context.Background()))
	assert.Equal(t, int32(1), atomic.LoadInt32(&sawDeadline))
}

func TestOrderNotifier(t *testing.T) {
	stub := &resendStub{}
	srv := stub.server(t, http.StatusOK)
	svc := NewEmailService(resendConfig(srv.URL), logger.Discard())
	d := NewDispatcher(time.Second, logger.Discard())
	n := NewOrderNotifier(svc, d)

	o := testOrder()
	n.OrderPlaced(o)
	o.ApplyStatus(order.OrderStatusProcessing, "", "admin")
	n.StatusChanged(o)

	require.NoError(t, d.Wait(context.Background()))

	sent := stub.sent()
	require.Len(t, sent, 2)
	subjects := []string{sent[0].Subject, sent[1].Subject}
	assert.Contains(t, subjects, "Order Confirmation - Order #"+o.ID)
	assert.Contains(t, subjects, "Order Status Update - Order #"+o.ID+" - PROCESSING")
}

func TestDomainOf(t *testing.T) {
	assert.Equal(t, "x.com", domainOf("ali@x.com"))
	assert.Equal(t, "localhost", domainOf("nobody"))
}
