// internal/adapter/notify/events.go

package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"mediawatch/internal/domain/monitor"
)

// EventBus publishes alert events to NATS so in-process consumers (the
// websocket feed) and external subscribers receive them
type EventBus struct {
	conn    *nats.Conn
	subject string
}

// NewEventBus creates a NATS publishing channel
func NewEventBus(conn *nats.Conn, subject string) *EventBus {
	return &EventBus{
		conn:    conn,
		subject: subject,
	}
}

// Name identifies the channel in logs
func (b *EventBus) Name() string {
	return "nats"
}

// Deliver publishes the event as JSON
func (b *EventBus) Deliver(ctx context.Context, event monitor.AlertEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encoding alert event: %w", err)
	}

	if err := b.conn.Publish(b.subject, data); err != nil {
		return fmt.Errorf("publishing alert event: %w", err)
	}

	return nil
}
