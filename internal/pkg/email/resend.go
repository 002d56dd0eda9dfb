package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ResendEmailRequest is the Resend API payload
type ResendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

// ResendResponse is the Resend API reply
type ResendResponse struct {
	ID string `json:"id"`
}

// sendResendEmail sends email using the Resend HTTP API
func (s *EmailService) sendResendEmail(ctx context.Context, email *Email) (string, error) {
	cfg := s.config.Email
	if cfg.APIKey == "" {
		return "", fmt.Errorf("Resend API key not configured")
	}

	from := cfg.FromEmail
	if cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", cfg.FromName, cfg.FromEmail)
	}

	jsonData, err := json.Marshal(ResendEmailRequest{
		From:    from,
		To:      email.To,
		Subject: email.Subject,
		HTML:    email.HTMLContent,
		ReplyTo: cfg.ReplyTo,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal Resend request: %w", err)
	}

	url := strings.TrimRight(cfg.APIBaseURL, "/") + "/emails"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create Resend request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send Resend request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("Resend API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out ResendResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode Resend response: %w", err)
	}
	return out.ID, nil
}
