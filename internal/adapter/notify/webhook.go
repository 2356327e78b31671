// internal/adapter/notify/webhook.go

package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"mediawatch/internal/config"
	"mediawatch/internal/domain/monitor"
)

// Webhook posts alert events as JSON to a configured endpoint
// (Slack-compatible payload with a text field plus the structured event)
type Webhook struct {
	cfg    config.WebhookConfig
	client *http.Client
}

// NewWebhook creates a webhook channel
func NewWebhook(cfg config.WebhookConfig) *Webhook {
	return &Webhook{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Name identifies the channel in logs
func (w *Webhook) Name() string {
	return "webhook"
}

// Deliver posts the event. An unconfigured URL is a silent no-op.
func (w *Webhook) Deliver(ctx context.Context, event monitor.AlertEvent) error {
	if w.cfg.URL == "" {
		return nil
	}

	payload := map[string]interface{}{
		"text": fmt.Sprintf("Alert: keyword '%s' (%s) found in post from %s",
			event.Rule.Keyword, event.Rule.Severity, event.Post.Source),
		"event": event,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("posting webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}
