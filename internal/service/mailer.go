package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"

	"go_4_elearning/internal/config"
	"go_4_elearning/internal/middleware"
)

//go:generate mockery --name Mailer --output ./mocks --outpkg mocks --case=underscore
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// --- LogMailer ---
// 開発用。送らずにログへ出す
type LogMailer struct{}

func (m *LogMailer) Send(ctx context.Context, to, subject, body string) error {
	logger := middleware.GetLogger(ctx)
	logger.Info("--- Sending Email (LogMailer) ---", "to", to, "subject", subject, "body", body)
	return nil
}

// --- SmtpMailer ---
// 認証なし・平文の SMTP (MailHog 等のローカル用)
type SmtpMailer struct {
	cfg *config.SMTPConfig
}

func NewSmtpMailer(cfg *config.SMTPConfig) *SmtpMailer {
	return &SmtpMailer{cfg: cfg}
}

func (m *SmtpMailer) Send(ctx context.Context, to, subject, body string) error {
	logger := middleware.GetLogger(ctx)
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	logger.Debug("Attempting to send email via SMTP", "smtp_addr", addr, "from", m.cfg.From, "to", to)

	msg := buildPlainMessage(m.cfg.From, to, subject, body)
	if err := smtp.SendMail(addr, nil, m.cfg.From, []string{to}, msg); err != nil {
		logger.Error("Failed to send email via SMTP", "error", err, "addr", addr, "to", to)
		return fmt.Errorf("SmtpMailer.Send: %w", err)
	}

	logger.Info("Email sent successfully via SMTP", "to", to, "subject", subject)
	return nil
}

func buildPlainMessage(from, to, subject, body string) []byte {
	return []byte("From: " + from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" +
		body + "\r\n")
}

// --- NewMailer ファクトリ関数 ---
// ses / sendgrid の初期化に失敗したら LogMailer に落とす
func NewMailer(ctx context.Context, cfg *config.Config, logger *slog.Logger) Mailer {
	switch cfg.Mailer.Type {
	case "smtp":
		logger.Info("Initializing SMTP mailer...")
		return NewSmtpMailer(&cfg.SMTP)
	case "ses":
		logger.Info("Initializing SES mailer...")
		m, err := NewSESMailer(ctx, &cfg.SES)
		if err != nil {
			logger.Error("Failed to initialize SES mailer, falling back to LogMailer", "error", err)
			return &LogMailer{}
		}
		return m
	case "sendgrid":
		logger.Info("Initializing SendGrid mailer...")
		m, err := NewSendGridMailer(&cfg.SendGrid)
		if err != nil {
			logger.Error("Failed to initialize SendGrid mailer, falling back to LogMailer", "error", err)
			return &LogMailer{}
		}
		return m
	case "log":
		logger.Info("Initializing Log mailer...")
		return &LogMailer{}
	default:
		logger.Warn("Unknown mailer type, defaulting to LogMailer", "type", cfg.Mailer.Type)
		return &LogMailer{}
	}
}
