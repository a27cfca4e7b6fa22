package service

import (
	"context"
	"errors"
	"fmt"

	"go_4_elearning/internal/config"
	"go_4_elearning/internal/middleware"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// sendGridAPI は sendgrid.Client のうち SendGridMailer が使う部分
type sendGridAPI interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// SendGridMailer は SendGrid の v3 Mail Send API でメールを送る
type SendGridMailer struct {
	client sendGridAPI
	from   *mail.Email
}

func NewSendGridMailer(cfg *config.SendGridConfig) (*SendGridMailer, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("sendgrid: api_key is required")
	}
	if cfg.FromEmail == "" {
		return nil, errors.New("sendgrid: from_email is required")
	}
	return &SendGridMailer{
		client: sendgrid.NewSendClient(cfg.APIKey),
		from:   mail.NewEmail(cfg.FromName, cfg.FromEmail),
	}, nil
}

func (m *SendGridMailer) Send(ctx context.Context, to, subject, body string) error {
	logger := middleware.GetLogger(ctx)

	message := mail.NewSingleEmail(m.from, subject, mail.NewEmail("", to), body, "")
	resp, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		logger.Error("Failed to send email via SendGrid", "error", err, "to", to)
		return fmt.Errorf("SendGridMailer.Send: %w", err)
	}
	// SendGrid は 4xx/5xx でも err を返さない
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Error("SendGrid rejected email", "status", resp.StatusCode, "body", resp.Body, "to", to)
		return fmt.Errorf("SendGridMailer.Send: unexpected status %d", resp.StatusCode)
	}

	logger.Info("Email sent successfully via SendGrid", "to", to, "subject", subject)
	return nil
}
