package entities

import (
	"time"
)

// ScheduleEventType identifies what happened to a service's availability data.
type ScheduleEventType string

const (
	// ScheduleEventOverrideConflict signals overlapping active overrides for
	// the same instant, a data-entry conflict administrators need to resolve.
	ScheduleEventOverrideConflict ScheduleEventType = "override_conflict"
	// ScheduleEventOverrideApplied signals an override decided a verdict.
	ScheduleEventOverrideApplied ScheduleEventType = "override_applied"
)

// ScheduleEvent is published on the event bus when the resolver detects a
// condition administrators should audit.
type ScheduleEvent struct {
	ID         string            `json:"id"`
	Type       ScheduleEventType `json:"type"`
	ServiceID  string            `json:"service_id"`
	OverrideID string            `json:"override_id,omitempty"`
	Detail     string            `json:"detail,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}
