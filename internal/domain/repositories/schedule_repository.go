package repositories

import (
	"context"
	"time"

	"github.com/careroute/backend/internal/domain/entities"
)

// ScheduleRepository is the narrow read interface the schedule resolver is a
// pure function over. Both methods must observe a consistent catalog snapshot
// within one resolution.
type ScheduleRepository interface {
	// GetActiveOverrides returns the active overrides for a service whose
	// interval contains the instant, inclusive on both ends.
	GetActiveOverrides(ctx context.Context, serviceID string, at time.Time) ([]*entities.Override, error)

	// GetActiveSchedules returns all active schedules for a service.
	GetActiveSchedules(ctx context.Context, serviceID string) ([]*entities.Schedule, error)
}
