package providers

import (
	"context"

	"github.com/careroute/backend/internal/domain/entities"
)

// EventBus publishes schedule audit events to interested subscribers, e.g.
// administrative dashboards watching for override conflicts.
type EventBus interface {
	// Publish publishes an event to all subscribers of a channel
	Publish(ctx context.Context, channel string, event *entities.ScheduleEvent) error

	// Subscribe subscribes to events on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.ScheduleEvent, error)

	// Close tears down all subscriptions
	Close() error
}
