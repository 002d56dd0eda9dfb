// internal/pkg/email/smtp.go
package email

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// sendSMTPEmail sends email using SMTP (Gmail, Outlook, or self-hosted).
// Port 465 style implicit TLS is used when SMTPUseTLS is set, otherwise
// STARTTLS is negotiated when the server offers it.
func (s *EmailService) sendSMTPEmail(ctx context.Context, email *Email) (string, error) {
	cfg := s.config.Email
	if cfg.SMTPHost == "" || cfg.SMTPUser == "" {
		return "", fmt.Errorf("SMTP configuration incomplete: missing host or username")
	}

	fromEmail := cfg.FromEmail
	if fromEmail == "" {
		fromEmail = cfg.SMTPUser
	}

	messageID := fmt.Sprintf("<%s@%s>", uuid.NewString(), domainOf(fromEmail))
	msg := s.buildMessage(email, fromEmail, messageID)

	client, err := s.dialSMTP(ctx)
	if err != nil {
		return "", err
	}
	defer client.Close()

	if !cfg.SMTPUseTLS {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(&tls.Config{ServerName: cfg.SMTPHost}); err != nil {
				return "", fmt.Errorf("failed to start TLS: %w", err)
			}
		}
	}

	if ok, _ := client.Extension("AUTH"); ok {
		auth := smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPHost)
		if err := client.Auth(auth); err != nil {
			return "", fmt.Errorf("SMTP authentication failed: %w", err)
		}
	}

	if err := client.Mail(fromEmail); err != nil {
		return "", fmt.Errorf("failed to set sender: %w", err)
	}
	for _, addr := range email.To {
		if err := client.Rcpt(addr); err != nil {
			return "", fmt.Errorf("failed to set recipient %s: %w", addr, err)
		}
	}

	writer, err := client.Data()
	if err != nil {
		return "", fmt.Errorf("failed to send DATA command: %w", err)
	}
	if _, err := writer.Write(msg); err != nil {
		writer.Close()
		return "", fmt.Errorf("failed to write email content: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finish email content: %w", err)
	}

	return messageID, client.Quit()
}

// TestSMTPConnection dials and authenticates without sending anything
func (s *EmailService) TestSMTPConnection(ctx context.Context) error {
	client, err := s.dialSMTP(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	cfg := s.config.Email
	if !cfg.SMTPUseTLS {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(&tls.Config{ServerName: cfg.SMTPHost}); err != nil {
				return fmt.Errorf("failed to start TLS: %w", err)
			}
		}
	}
	if err := client.Auth(smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPHost)); err != nil {
		return fmt.Errorf("SMTP authentication failed: %w", err)
	}
	return client.Quit()
}

func (s *EmailService) dialSMTP(ctx context.Context) (*smtp.Client, error) {
	cfg := s.config.Email
	serverAddr := net.JoinHostPort(cfg.SMTPHost, fmt.Sprintf("%d", cfg.SMTPPort))

	var (
		conn net.Conn
		err  error
	)
	if cfg.SMTPUseTLS {
		dialer := &tls.Dialer{Config: &tls.Config{ServerName: cfg.SMTPHost}}
		conn, err = dialer.DialContext(ctx, "tcp", serverAddr)
	} else {
		var dialer net.Dialer
		conn, err = dialer.DialContext(ctx, "tcp", serverAddr)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SMTP server: %w", err)
	}

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, cfg.SMTPHost)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}
	return client, nil
}

func (s *EmailService) buildMessage(email *Email, fromEmail, messageID string) []byte {
	from := fromEmail
	if s.config.Email.FromName != "" {
		from = fmt.Sprintf("%s <%s>", s.config.Email.FromName, fromEmail)
	}

	headers := [][2]string{
		{"From", from},
		{"To", strings.Join(email.To, ", ")},
		{"Subject", email.Subject},
		{"Date", time.Now().Format(time.RFC1123Z)},
		{"Message-ID", messageID},
		{"MIME-Version", "1.0"},
		{"Content-Type", `text/html; charset="utf-8"`},
	}
	if s.config.Email.ReplyTo != "" {
		headers = append(headers, [2]string{"Reply-To", s.config.Email.ReplyTo})
	}

	var msg bytes.Buffer
	for _, h := range headers {
		fmt.Fprintf(&msg, "%s: %s\r\n", h[0], h[1])
	}
	msg.WriteString("\r\n")
	msg.WriteString(email.HTMLContent)
	return msg.Bytes()
}

func domainOf(address string) string {
	if i := strings.LastIndexByte(address, '@'); i >= 0 && i < len(address)-1 {
		return address[i+1:]
	}
	return "localhost"
}
