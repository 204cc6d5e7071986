package repositories

import (
	"context"
	"time"

	"github.com/careroute/backend/internal/domain/entities"
)

// DecisionLogRepository persists routing decisions. Records are append-only;
// the only permitted mutation is attaching patient feedback afterwards.
type DecisionLogRepository interface {
	// Create appends one decision log record.
	Create(ctx context.Context, record *entities.DecisionLogRecord) error

	// AttachFeedback records whether the patient accepted the recommendation.
	AttachFeedback(ctx context.Context, recordID string, accepted bool, feedback string) error

	// List returns records matching the filter, newest first.
	List(ctx context.Context, filter DecisionLogFilter) ([]*entities.DecisionLogRecord, error)
}

// DecisionLogFilter narrows historical decision log queries.
type DecisionLogFilter struct {
	StartDate   *time.Time
	EndDate     *time.Time
	ServiceType entities.ServiceType
	City        string
	Limit       int
}
