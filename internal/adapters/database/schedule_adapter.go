package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/careroute/backend/internal/domain/entities"
	"github.com/careroute/backend/internal/domain/repositories"
	"github.com/careroute/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/careroute/backend/pkg/errors"
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
)

// ScheduleAdapter implements ScheduleRepository
type ScheduleAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

var _ repositories.ScheduleRepository = (*ScheduleAdapter)(nil)

// NewScheduleAdapter creates a new schedule adapter
func NewScheduleAdapter(client *postgres.Client) *ScheduleAdapter {
	return &ScheduleAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// GetActiveOverrides returns the active overrides for a service whose
// interval contains the instant, inclusive on both ends.
func (a *ScheduleAdapter) GetActiveOverrides(ctx context.Context, serviceID string, at time.Time) ([]*entities.Override, error) {
	query, args, err := a.db.Select(
		"id", "service_id", "start_at", "end_at", "status", "reason",
		"alternative_service_id", "alternative_facility_id",
		"is_active", "created_at", "created_by",
	).From("schedule_overrides").
		Where(
			goqu.Ex{"service_id": serviceID},
			goqu.Ex{"is_active": true},
			goqu.I("start_at").Lte(at),
			goqu.I("end_at").Gte(at),
		).
		Order(goqu.I("created_at").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build overrides query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get active overrides", err)
	}
	defer rows.Close()

	overrides := []*entities.Override{}
	for rows.Next() {
		o := &entities.Override{}
		err := rows.Scan(
			&o.ID,
			&o.ServiceID,
			&o.StartAt,
			&o.EndAt,
			&o.Status,
			&o.Reason,
			&o.AlternativeServiceID,
			&o.AlternativeFacilityID,
			&o.IsActive,
			&o.CreatedAt,
			&o.CreatedBy,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan override", err)
		}
		overrides = append(overrides, o)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating overrides", err)
	}

	return overrides, nil
}

// GetActiveSchedules returns all active schedules for a service, highest
// priority first.
func (a *ScheduleAdapter) GetActiveSchedules(ctx context.Context, serviceID string) ([]*entities.Schedule, error) {
	query, args, err := a.db.Select(
		"id", "service_id", "kind", "day_of_week", "start_time", "end_time",
		"start_date", "end_date", "status", "capacity_override",
		"on_call_doctor", "on_call_phone", "response_time_minutes",
		"priority", "is_active", "created_at",
	).From("service_schedules").
		Where(
			goqu.Ex{"service_id": serviceID},
			goqu.Ex{"is_active": true},
		).
		Order(goqu.I("priority").Desc(), goqu.I("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build schedules query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get active schedules", err)
	}
	defer rows.Close()

	schedules := []*entities.Schedule{}
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, s)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating schedules", err)
	}

	return schedules, nil
}

// scanSchedule maps one row to a Schedule. Clock columns come back as
// "HH:MM:SS" strings, day_of_week as an integer with Sunday = 0.
func scanSchedule(rows *sql.Rows) (*entities.Schedule, error) {
	s := &entities.Schedule{}
	var (
		dayOfWeek sql.NullInt64
		startTime sql.NullString
		endTime   sql.NullString
	)

	err := rows.Scan(
		&s.ID,
		&s.ServiceID,
		&s.Kind,
		&dayOfWeek,
		&startTime,
		&endTime,
		&s.StartDate,
		&s.EndDate,
		&s.Status,
		&s.CapacityOverride,
		&s.OnCallDoctor,
		&s.OnCallPhone,
		&s.ResponseTimeMinutes,
		&s.Priority,
		&s.IsActive,
		&s.CreatedAt,
	)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to scan schedule", err)
	}

	if dayOfWeek.Valid {
		day := time.Weekday(dayOfWeek.Int64)
		s.DayOfWeek = &day
	}
	if startTime.Valid {
		t, err := entities.ParseTimeOfDay(startTime.String)
		if err != nil {
			return nil, apperrors.NewInternalError("invalid schedule start time", err)
		}
		s.StartTime = &t
	}
	if endTime.Valid {
		t, err := entities.ParseTimeOfDay(endTime.String)
		if err != nil {
			return nil, apperrors.NewInternalError("invalid schedule end time", err)
		}
		s.EndTime = &t
	}

	return s, nil
}
