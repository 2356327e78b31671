// internal/adapter/notify/notifier.go

// Package notify delivers alert events to their configured channels:
// email, webhook and the NATS event bus. Delivery is best effort; the
// analytics core never retries.
package notify

import (
	"context"

	"mediawatch/internal/domain/monitor"
	"mediawatch/internal/logging"
)

// Channel delivers an alert event over one transport
type Channel interface {
	// Name identifies the channel in logs
	Name() string

	// Deliver sends the event. An error means the event did not reach
	// this channel.
	Deliver(ctx context.Context, event monitor.AlertEvent) error
}

// FanOut implements monitor.Notifier by handing each event to every
// configured channel. It reports success when at least one channel
// accepted the event.
type FanOut struct {
	channels []Channel
	logger   logging.Logger
}

// NewFanOut creates a fan-out notifier over the given channels
func NewFanOut(logger logging.Logger, channels ...Channel) *FanOut {
	return &FanOut{
		channels: channels,
		logger:   logger,
	}
}

// Notify delivers the event to all channels
func (f *FanOut) Notify(ctx context.Context, event monitor.AlertEvent) bool {
	delivered := false
	for _, channel := range f.channels {
		if err := channel.Deliver(ctx, event); err != nil {
			f.logger.WithError(err).WithFields(logging.Fields{
				"channel": channel.Name(),
				"rule_id": event.Rule.ID,
			}).Warn("Alert delivery failed")
			continue
		}
		delivered = true
	}
	return delivered
}
