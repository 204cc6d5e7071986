package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/careroute/backend/internal/domain/entities"
	"github.com/careroute/backend/internal/domain/providers"
	"github.com/careroute/backend/internal/domain/repositories"
	"github.com/careroute/backend/internal/infrastructure/observability"
	apperrors "github.com/careroute/backend/pkg/errors"
	"github.com/google/uuid"
)

// AuditChannel is the event bus channel schedule audit events are published on.
const AuditChannel = "schedule:audit"

// ScheduleResolver reconciles a service's layered time rules (overrides,
// then recurring and date-ranged schedules) into one definitive availability
// verdict for a given instant. Resolution is deterministic and pure over the
// catalog snapshot the repositories return.
type ScheduleResolver struct {
	serviceRepo  repositories.ServiceRepository
	scheduleRepo repositories.ScheduleRepository
	events       providers.EventBus
	metrics      *observability.Metrics
}

// NewScheduleResolver creates a new schedule resolver. The event bus and
// metrics are optional; pass nil to disable audit events or metrics.
func NewScheduleResolver(
	serviceRepo repositories.ServiceRepository,
	scheduleRepo repositories.ScheduleRepository,
	events providers.EventBus,
	metrics *observability.Metrics,
) *ScheduleResolver {
	return &ScheduleResolver{
		serviceRepo:  serviceRepo,
		scheduleRepo: scheduleRepo,
		events:       events,
		metrics:      metrics,
	}
}

// Resolve returns the availability verdict for a service at an instant.
// Precedence: active overrides containing the instant always win, then the
// highest-priority applicable schedule, then "no active schedule". An unknown
// or inactive service is a normal unavailable verdict, not an error.
func (r *ScheduleResolver) Resolve(ctx context.Context, serviceID string, at time.Time) (*entities.Availability, error) {
	service, err := r.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return r.record(ctx, &entities.Availability{
				Available: false,
				Status:    entities.StatusUnavailable,
				Reason:    "service not found or inactive",
			}), nil
		}
		return nil, err
	}
	if service == nil || !service.IsActive {
		return r.record(ctx, &entities.Availability{
			Available: false,
			Status:    entities.StatusUnavailable,
			Reason:    "service not found or inactive",
		}), nil
	}

	overrides, err := r.scheduleRepo.GetActiveOverrides(ctx, serviceID, at)
	if err != nil {
		return nil, err
	}
	if len(overrides) > 0 {
		return r.record(ctx, r.resolveOverride(ctx, serviceID, overrides)), nil
	}

	schedules, err := r.scheduleRepo.GetActiveSchedules(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	sortSchedules(schedules)
	for _, schedule := range schedules {
		if !scheduleApplies(schedule, at) {
			continue
		}
		return r.record(ctx, verdictFromSchedule(schedule, service)), nil
	}

	return r.record(ctx, &entities.Availability{
		Available: false,
		Status:    entities.StatusUnavailable,
		Reason:    "no active schedule for this time",
	}), nil
}

// resolveOverride applies the winning override. Overlapping active overrides
// are a data-entry conflict: the most recently created one wins and the
// condition is surfaced for audit without failing the request.
func (r *ScheduleResolver) resolveOverride(ctx context.Context, serviceID string, overrides []*entities.Override) *entities.Availability {
	sort.SliceStable(overrides, func(i, j int) bool {
		if !overrides[i].CreatedAt.Equal(overrides[j].CreatedAt) {
			return overrides[i].CreatedAt.After(overrides[j].CreatedAt)
		}
		return overrides[i].ID > overrides[j].ID
	})
	winner := overrides[0]

	if len(overrides) > 1 {
		observability.LoggerFromContext(ctx).Warn().
			Str("service_id", serviceID).
			Str("override_id", winner.ID).
			Int("overlapping", len(overrides)).
			Msg("conflicting schedule overrides, most recently created wins")
		r.publishAudit(serviceID, winner.ID,
			fmt.Sprintf("%d overrides overlap the same instant", len(overrides)),
			entities.ScheduleEventOverrideConflict)
	}

	verdict := &entities.Availability{
		Available: winner.Status.IsAvailable(),
		Status:    winner.Status,
		Reason:    winner.Reason,
	}
	if winner.AlternativeServiceID != nil {
		alt := &entities.Alternative{ServiceID: *winner.AlternativeServiceID}
		if winner.AlternativeFacilityID != nil {
			alt.FacilityID = *winner.AlternativeFacilityID
		}
		verdict.Alternative = alt
	}
	return verdict
}

// publishAudit emits a schedule audit event best-effort.
func (r *ScheduleResolver) publishAudit(serviceID, overrideID, detail string, eventType entities.ScheduleEventType) {
	if r.events == nil {
		return
	}
	event := &entities.ScheduleEvent{
		ID:         uuid.New().String(),
		Type:       eventType,
		ServiceID:  serviceID,
		OverrideID: overrideID,
		Detail:     detail,
		OccurredAt: time.Now(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := r.events.Publish(ctx, AuditChannel, event); err != nil {
			observability.GetLogger().Warn().Err(err).
				Str("service_id", serviceID).
				Msg("failed to publish schedule audit event")
		}
	}()
}

func (r *ScheduleResolver) record(ctx context.Context, verdict *entities.Availability) *entities.Availability {
	observability.RecordAvailabilityCheck(ctx, r.metrics, string(verdict.Status))
	return verdict
}

// sortSchedules orders schedules by priority descending; equal priorities
// fall back to ID so resolution stays reproducible.
func sortSchedules(schedules []*entities.Schedule) {
	sort.SliceStable(schedules, func(i, j int) bool {
		if schedules[i].Priority != schedules[j].Priority {
			return schedules[i].Priority > schedules[j].Priority
		}
		return schedules[i].ID < schedules[j].ID
	})
}

// scheduleApplies tests whether one schedule row covers the instant.
// Temporary and holiday schedules apply over their date range; regular and
// on-call schedules recur by day of week and time window. A window never
// wraps midnight; such hours are entered as two rows.
func scheduleApplies(s *entities.Schedule, at time.Time) bool {
	if s.Kind.IsDateRanged() {
		if s.StartDate == nil || s.EndDate == nil {
			return false
		}
		day := dateOnly(at)
		return !day.Before(dateOnly(*s.StartDate)) && !day.After(dateOnly(*s.EndDate))
	}

	if s.DayOfWeek != nil && *s.DayOfWeek != at.Weekday() {
		return false
	}
	if s.StartTime == nil || s.EndTime == nil {
		// No time restriction = all day.
		return true
	}
	minutes := entities.TimeOfDayFromTime(at).Minutes()
	return s.StartTime.Minutes() <= minutes && minutes <= s.EndTime.Minutes()
}

// verdictFromSchedule builds the verdict for the winning schedule row.
func verdictFromSchedule(s *entities.Schedule, service *entities.Service) *entities.Availability {
	verdict := &entities.Availability{
		Available:       s.Status.IsAvailable(),
		Status:          s.Status,
		Reason:          fmt.Sprintf("schedule: %s", s.Kind),
		WaitTimeMinutes: service.AverageWaitMinutes,
	}

	if s.CapacityOverride != nil {
		verdict.Capacity = s.CapacityOverride
	} else {
		verdict.Capacity = service.Capacity
	}

	if s.Kind == entities.ScheduleKindOnCall {
		verdict.OnCall = &entities.OnCallInfo{
			Doctor:              s.OnCallDoctor,
			Phone:               s.OnCallPhone,
			ResponseTimeMinutes: s.ResponseTimeMinutes,
		}
	}
	return verdict
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StatusTimeline resolves the service's availability at the top of every hour
// across a date range, defaulting to the next seven days. Administrators use
// it to spot coverage gaps.
func (r *ScheduleResolver) StatusTimeline(ctx context.Context, serviceID string, startDate, endDate time.Time) ([]entities.HourlyStatus, error) {
	if startDate.IsZero() {
		startDate = dateOnly(time.Now())
	} else {
		startDate = dateOnly(startDate)
	}
	if endDate.IsZero() {
		endDate = startDate.AddDate(0, 0, 7)
	} else {
		endDate = dateOnly(endDate)
	}
	if endDate.Before(startDate) {
		return nil, apperrors.NewValidationError("end date is before start date")
	}

	var timeline []entities.HourlyStatus
	for day := startDate; !day.After(endDate); day = day.AddDate(0, 0, 1) {
		for hour := 0; hour < 24; hour++ {
			at := day.Add(time.Duration(hour) * time.Hour)
			verdict, err := r.Resolve(ctx, serviceID, at)
			if err != nil {
				return nil, err
			}
			timeline = append(timeline, entities.HourlyStatus{
				Date:      day.Format("2006-01-02"),
				Hour:      hour,
				Available: verdict.Available,
				Status:    verdict.Status,
				Reason:    verdict.Reason,
			})
		}
	}
	return timeline, nil
}
