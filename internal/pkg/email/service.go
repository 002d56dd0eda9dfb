// internal/pkg/email/service.go
package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/order"
)

//go:embed templates/*.html
var templateFS embed.FS

const notConfiguredMessage = "Email not configured"

// EmailService handles all email operations
type EmailService struct {
	config    *config.Config
	templates *template.Template
	client    *http.Client
	logger    *logrus.Logger
}

// NewEmailService creates a new email service
func NewEmailService(cfg *config.Config, logger *logrus.Logger) *EmailService {
	return &EmailService{
		config:    cfg,
		templates: template.Must(template.ParseFS(templateFS, "templates/*.html")),
		client: &http.Client{
			Timeout: cfg.Email.SendTimeout,
		},
		logger: logger,
	}
}

// Configured reports whether outgoing mail credentials are present
func (s *EmailService) Configured() bool {
	return s.config.EmailConfigured()
}

// SendEmail sends an email using the configured provider. Without
// credentials it logs the message and reports it as not delivered.
func (s *EmailService) SendEmail(ctx context.Context, email *Email) (*SendResult, error) {
	if len(email.To) == 0 || strings.TrimSpace(email.To[0]) == "" {
		return nil, fmt.Errorf("email has no recipient")
	}

	if !s.Configured() {
		s.logger.WithFields(logrus.Fields{
			"to":      strings.Join(email.To, ", "),
			"subject": email.Subject,
			"type":    email.Type,
		}).Warn("email not configured, skipping send")
		return &SendResult{Delivered: false, Message: notConfiguredMessage}, nil
	}

	var (
		messageID string
		err       error
	)
	switch s.config.Email.Provider {
	case ProviderSMTP:
		messageID, err = s.sendSMTPEmail(ctx, email)
	case ProviderResend:
		messageID, err = s.sendResendEmail(ctx, email)
	default:
		return nil, fmt.Errorf("unsupported email provider: %s", s.config.Email.Provider)
	}
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"to":         strings.Join(email.To, ", "),
		"type":       email.Type,
		"message_id": messageID,
	}).Info("email sent")

	return &SendResult{Delivered: true, MessageID: messageID, Message: "Email sent successfully"}, nil
}

// SendOrderConfirmationEmail sends order confirmation email
func (s *EmailService) SendOrderConfirmationEmail(ctx context.Context, o *order.Order) (*SendResult, error) {
	data := OrderConfirmationData{
		EmailTemplateData: s.baseData(o),
		OrderID:           o.ID,
		OrderDate:         o.CreatedAt.Format("January 2, 2006"),
		Subtotal:          s.money(o.Subtotal),
		Shipping:          s.money(o.Shipping),
		Total:             s.money(o.Total),
		PaymentMethod:     paymentMethodLabel(o.Customer.PaymentMethod),
		Address:           strings.Join(nonEmpty(o.Customer.Address, o.Customer.City, o.Customer.PostalCode, o.Customer.Country), ", "),
		OrderURL:          s.orderURL(o),
	}
	for _, item := range o.Items {
		data.Items = append(data.Items, OrderItem{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    s.money(item.Price),
			Total:    s.money(item.LineTotal()),
		})
	}

	htmlContent, err := s.renderTemplate("order_confirmation.html", data)
	if err != nil {
		return nil, fmt.Errorf("failed to render order confirmation template: %w", err)
	}

	return s.SendEmail(ctx, &Email{
		To:          []string{o.Customer.Email},
		Subject:     fmt.Sprintf("Order Confirmation - Order #%s", o.ID),
		HTMLContent: htmlContent,
		Type:        EmailTypeOrderConfirmation,
	})
}

// SendOrderStatusUpdateEmail sends order status update notification
func (s *EmailService) SendOrderStatusUpdateEmail(ctx context.Context, o *order.Order) (*SendResult, error) {
	data := OrderStatusUpdateData{
		EmailTemplateData: s.baseData(o),
		OrderID:           o.ID,
		Status:            strings.ToUpper(string(o.Status)),
		StatusMessage:     o.Status.Message(),
		Total:             s.money(o.Total),
		OrderURL:          s.orderURL(o),
	}

	htmlContent, err := s.renderTemplate("order_status_update.html", data)
	if err != nil {
		return nil, fmt.Errorf("failed to render order status update template: %w", err)
	}

	return s.SendEmail(ctx, &Email{
		To:          []string{o.Customer.Email},
		Subject:     fmt.Sprintf("Order Status Update - Order #%s - %s", o.ID, strings.ToUpper(string(o.Status))),
		HTMLContent: htmlContent,
		Type:        EmailTypeOrderStatusUpdate,
	})
}

// renderTemplate renders an email template with data
func (s *EmailService) renderTemplate(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return buf.String(), nil
}

func (s *EmailService) baseData(o *order.Order) EmailTemplateData {
	name := o.Customer.FullName()
	if name == "" {
		name = "Customer"
	}
	return GetBaseTemplateData(s.config.Email.FromName, s.config.App.BaseURL, name, o.Customer.Email)
}

func (s *EmailService) orderURL(o *order.Order) string {
	if s.config.App.BaseURL == "" {
		return ""
	}
	return fmt.Sprintf("%s/order-success?orderId=%s", strings.TrimRight(s.config.App.BaseURL, "/"), o.ID)
}

func (s *EmailService) money(amount int64) string {
	return fmt.Sprintf("%s %d", s.config.Store.Currency, amount)
}

func paymentMethodLabel(method string) string {
	switch method {
	case order.PaymentMethodCash:
		return "Cash on Delivery"
	case order.PaymentMethodBank:
		return "Bank Transfer"
	}
	return method
}

func nonEmpty(parts ...string) []string {
	out := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

// TestConnection verifies provider credentials without delivering mail
func (s *EmailService) TestConnection(ctx context.Context) error {
	if !s.Configured() {
		return fmt.Errorf("%s", notConfiguredMessage)
	}
	switch s.config.Email.Provider {
	case ProviderSMTP:
		return s.TestSMTPConnection(ctx)
	case ProviderResend:
		return nil
	default:
		return fmt.Errorf("unsupported email provider: %s", s.config.Email.Provider)
	}
}
