// internal/adapter/notify/email.go

package notify

import (
	"context"
	"fmt"

	gomail "gopkg.in/mail.v2"

	"mediawatch/internal/config"
	"mediawatch/internal/domain/monitor"
)

// Email delivers alert events to the rule's notification address over SMTP
type Email struct {
	cfg config.SMTPConfig
}

// NewEmail creates an email channel
func NewEmail(cfg config.SMTPConfig) *Email {
	return &Email{cfg: cfg}
}

// Name identifies the channel in logs
func (e *Email) Name() string {
	return "email"
}

// Deliver sends an alert email with HTML body and plain text fallback.
// Disabled SMTP or a rule without a notification address is a silent
// no-op, not a failure.
func (e *Email) Deliver(ctx context.Context, event monitor.AlertEvent) error {
	if !e.cfg.Enabled || event.Rule.NotifyEmail == "" {
		return nil
	}

	subject := fmt.Sprintf("[ALERT] Keyword '%s' in %s", event.Rule.Keyword, event.Post.Source)
	text := fmt.Sprintf("Severity: %s\nSource: %s\nMatched on: %s\n\n%s",
		event.Rule.Severity, event.Post.Source, event.MatchedOn, event.Post.Content)
	html := fmt.Sprintf(
		`<h2>Keyword '%s' detected</h2><p><strong>Severity:</strong> %s<br/><strong>Source:</strong> %s<br/><strong>Matched on:</strong> %s</p><p>%s</p>`,
		event.Rule.Keyword, event.Rule.Severity, event.Post.Source, event.MatchedOn, event.Post.Content)

	m := gomail.NewMessage()
	m.SetHeader("From", e.cfg.FromEmail)
	m.SetHeader("To", event.Rule.NotifyEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", text)
	m.AddAlternative("text/html", html)

	dialer := gomail.NewDialer(e.cfg.Host, e.cfg.Port, e.cfg.Username, e.cfg.Password)

	if err := dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("sending alert email: %w", err)
	}

	return nil
}
