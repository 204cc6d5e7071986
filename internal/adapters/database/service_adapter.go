package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/careroute/backend/internal/domain/entities"
	"github.com/careroute/backend/internal/domain/repositories"
	"github.com/careroute/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/careroute/backend/pkg/errors"
)

// ServiceAdapter implements the ServiceRepository interface
type ServiceAdapter struct {
	client *postgres.Client
}

// NewServiceAdapter creates a new service adapter
func NewServiceAdapter(client *postgres.Client) repositories.ServiceRepository {
	return &ServiceAdapter{
		client: client,
	}
}

const serviceColumns = `
	id, facility_id, service_type, name, description,
	requires_appointment, has_on_call_coverage, capacity,
	average_wait_minutes, phone, extension, is_active,
	created_at, updated_at
`

// GetByID retrieves an active service by ID
func (a *ServiceAdapter) GetByID(ctx context.Context, id string) (*entities.Service, error) {
	query := `
		SELECT ` + serviceColumns + `
		FROM facility_services
		WHERE id = $1 AND is_active = true
	`

	service := &entities.Service{}
	err := scanService(a.client.DB().QueryRowContext(ctx, query, id), service)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("service with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get service", err)
	}

	return service, nil
}

// ListByType enumerates active services of one type at active facilities,
// each joined with its facility.
func (a *ServiceAdapter) ListByType(ctx context.Context, serviceType entities.ServiceType) ([]*entities.FacilityService, error) {
	query := `
		SELECT
			s.id, s.facility_id, s.service_type, s.name, s.description,
			s.requires_appointment, s.has_on_call_coverage, s.capacity,
			s.average_wait_minutes, s.phone, s.extension, s.is_active,
			s.created_at, s.updated_at,
			f.id, f.name, f.street, f.city, f.state, f.zip_code, f.country,
			f.latitude, f.longitude, f.phone_number, f.email, f.description,
			f.facility_type, f.is_emergency, f.is_active, f.created_at, f.updated_at
		FROM facility_services s
		JOIN facilities f ON f.id = s.facility_id
		WHERE s.service_type = $1 AND s.is_active = true AND f.is_active = true
		ORDER BY f.id, s.id
	`

	rows, err := a.client.DB().QueryContext(ctx, query, serviceType)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list services by type", err)
	}
	defer rows.Close()

	offerings := []*entities.FacilityService{}
	for rows.Next() {
		service := &entities.Service{}
		facility := &entities.Facility{}
		err := rows.Scan(
			&service.ID,
			&service.FacilityID,
			&service.ServiceType,
			&service.Name,
			&service.Description,
			&service.RequiresAppointment,
			&service.HasOnCallCoverage,
			&service.Capacity,
			&service.AverageWaitMinutes,
			&service.Phone,
			&service.Extension,
			&service.IsActive,
			&service.CreatedAt,
			&service.UpdatedAt,
			&facility.ID,
			&facility.Name,
			&facility.Address.Street,
			&facility.Address.City,
			&facility.Address.State,
			&facility.Address.ZipCode,
			&facility.Address.Country,
			&facility.Location.Latitude,
			&facility.Location.Longitude,
			&facility.PhoneNumber,
			&facility.Email,
			&facility.Description,
			&facility.FacilityType,
			&facility.IsEmergency,
			&facility.IsActive,
			&facility.CreatedAt,
			&facility.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan service offering", err)
		}
		offerings = append(offerings, &entities.FacilityService{Service: service, Facility: facility})
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating service offerings", err)
	}

	return offerings, nil
}

func scanService(row rowScanner, service *entities.Service) error {
	return row.Scan(
		&service.ID,
		&service.FacilityID,
		&service.ServiceType,
		&service.Name,
		&service.Description,
		&service.RequiresAppointment,
		&service.HasOnCallCoverage,
		&service.Capacity,
		&service.AverageWaitMinutes,
		&service.Phone,
		&service.Extension,
		&service.IsActive,
		&service.CreatedAt,
		&service.UpdatedAt,
	)
}
