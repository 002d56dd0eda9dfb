package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/pkg/email"
)

// EmailSender delivers a single message
type EmailSender interface {
	SendEmail(ctx context.Context, msg *email.Email) (*email.SendResult, error)
}

// EmailHandler exposes ad-hoc sending to admins
type EmailHandler struct {
	sender EmailSender
	logger *logrus.Logger
}

// NewEmailHandler creates a new email handler
func NewEmailHandler(sender EmailSender, logger *logrus.Logger) *EmailHandler {
	return &EmailHandler{sender: sender, logger: logger}
}

// SendEmail handles POST /email
func (h *EmailHandler) SendEmail(c *gin.Context) {
	var req struct {
		To      string `json:"to"`
		Subject string `json:"subject"`
		HTML    string `json:"html"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.To) == "" || req.Subject == "" || req.HTML == "" {
		badRequest(c, "To, subject, and html are required")
		return
	}

	result, err := h.sender.SendEmail(c.Request.Context(), &email.Email{
		To:          []string{strings.TrimSpace(req.To)},
		Subject:     req.Subject,
		HTMLContent: req.HTML,
		Type:        email.EmailTypeCustom,
	})
	if err != nil {
		h.logger.WithError(err).WithField("to", req.To).Error("failed to send email")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to send email",
			"code":  "email_failed",
		})
		return
	}

	message := "Email sent successfully"
	if !result.Delivered {
		message = result.Message
	}
	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"result":  result,
	})
}
