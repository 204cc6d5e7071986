package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/careroute/backend/internal/domain/entities"
	"github.com/careroute/backend/internal/domain/repositories"
	"github.com/careroute/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/careroute/backend/pkg/errors"
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/google/uuid"
)

// DecisionLogAdapter implements DecisionLogRepository
type DecisionLogAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

var _ repositories.DecisionLogRepository = (*DecisionLogAdapter)(nil)

// NewDecisionLogAdapter creates a new decision log adapter
func NewDecisionLogAdapter(client *postgres.Client) *DecisionLogAdapter {
	return &DecisionLogAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create appends one decision log record
func (a *DecisionLogAdapter) Create(ctx context.Context, record *entities.DecisionLogRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.RequestedAt.IsZero() {
		record.RequestedAt = time.Now()
	}

	waitTime := sql.NullInt64{}
	if record.WaitTimeMinutes != nil {
		waitTime = sql.NullInt64{Int64: int64(*record.WaitTimeMinutes), Valid: true}
	}

	rec := goqu.Record{
		"id":                  record.ID,
		"service_type":        record.ServiceType,
		"patient_latitude":    record.PatientLatitude,
		"patient_longitude":   record.PatientLongitude,
		"patient_city":        record.PatientCity,
		"facility_id":         record.FacilityID,
		"service_id":          record.ServiceID,
		"distance_km":         record.DistanceKm,
		"was_available":       record.WasAvailable,
		"availability_status": record.AvailabilityStatus,
		"wait_time_minutes":   waitTime,
		"requested_at":        record.RequestedAt,
	}

	query, args, err := a.db.Insert("routing_decisions").Rows(rec).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create decision log record", err)
	}

	return nil
}

// AttachFeedback records whether the patient accepted the recommendation
func (a *DecisionLogAdapter) AttachFeedback(ctx context.Context, recordID string, accepted bool, feedback string) error {
	rec := goqu.Record{
		"patient_accepted": accepted,
	}
	if feedback != "" {
		rec["patient_feedback"] = feedback
	}

	query, args, err := a.db.Update("routing_decisions").
		Set(rec).
		Where(goqu.Ex{"id": recordID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to attach feedback", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("decision log record with id %s not found", recordID))
	}

	return nil
}

// List returns records matching the filter, newest first
func (a *DecisionLogAdapter) List(ctx context.Context, filter repositories.DecisionLogFilter) ([]*entities.DecisionLogRecord, error) {
	ds := a.db.Select(
		"id", "service_type", "patient_latitude", "patient_longitude",
		"patient_city", "facility_id", "service_id", "distance_km",
		"was_available", "availability_status", "wait_time_minutes",
		"patient_accepted", "patient_feedback", "requested_at",
	).From("routing_decisions")

	if filter.StartDate != nil {
		ds = ds.Where(goqu.I("requested_at").Gte(*filter.StartDate))
	}
	if filter.EndDate != nil {
		ds = ds.Where(goqu.I("requested_at").Lte(*filter.EndDate))
	}
	if filter.ServiceType != "" {
		ds = ds.Where(goqu.Ex{"service_type": filter.ServiceType})
	}
	if filter.City != "" {
		ds = ds.Where(goqu.Ex{"patient_city": filter.City})
	}

	ds = ds.Order(goqu.I("requested_at").Desc())
	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list decision log records", err)
	}
	defer rows.Close()

	records := []*entities.DecisionLogRecord{}
	for rows.Next() {
		r := &entities.DecisionLogRecord{}
		err := rows.Scan(
			&r.ID,
			&r.ServiceType,
			&r.PatientLatitude,
			&r.PatientLongitude,
			&r.PatientCity,
			&r.FacilityID,
			&r.ServiceID,
			&r.DistanceKm,
			&r.WasAvailable,
			&r.AvailabilityStatus,
			&r.WaitTimeMinutes,
			&r.PatientAccepted,
			&r.PatientFeedback,
			&r.RequestedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan decision log record", err)
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating decision log records", err)
	}

	return records, nil
}
