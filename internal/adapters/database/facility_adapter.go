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

// FacilityAdapter implements the FacilityRepository interface
type FacilityAdapter struct {
	client *postgres.Client
}

// NewFacilityAdapter creates a new facility adapter
func NewFacilityAdapter(client *postgres.Client) repositories.FacilityRepository {
	return &FacilityAdapter{
		client: client,
	}
}

const facilityColumns = `
	id, name, street, city, state, zip_code, country,
	latitude, longitude, phone_number, email, description,
	facility_type, is_emergency, is_active, created_at, updated_at
`

// GetByID retrieves an active facility by ID
func (a *FacilityAdapter) GetByID(ctx context.Context, id string) (*entities.Facility, error) {
	query := `
		SELECT ` + facilityColumns + `
		FROM facilities
		WHERE id = $1 AND is_active = true
	`

	facility := &entities.Facility{}
	err := scanFacility(a.client.DB().QueryRowContext(ctx, query, id), facility)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("facility with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get facility", err)
	}

	return facility, nil
}

// List retrieves facilities with filters
func (a *FacilityAdapter) List(ctx context.Context, filter repositories.FacilityFilter) ([]*entities.Facility, error) {
	query := `
		SELECT ` + facilityColumns + `
		FROM facilities
		WHERE 1=1
	`

	args := []interface{}{}
	argCount := 1

	if filter.FacilityType != "" {
		query += fmt.Sprintf(" AND facility_type = $%d", argCount)
		args = append(args, filter.FacilityType)
		argCount++
	}

	if filter.City != "" {
		query += fmt.Sprintf(" AND city = $%d", argCount)
		args = append(args, filter.City)
		argCount++
	}

	if filter.IsActive != nil {
		query += fmt.Sprintf(" AND is_active = $%d", argCount)
		args = append(args, *filter.IsActive)
		argCount++
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argCount)
		args = append(args, filter.Limit)
		argCount++
	}

	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argCount)
		args = append(args, filter.Offset)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list facilities", err)
	}
	defer rows.Close()

	facilities := []*entities.Facility{}
	for rows.Next() {
		facility := &entities.Facility{}
		if err := scanFacility(rows, facility); err != nil {
			return nil, apperrors.NewInternalError("failed to scan facility", err)
		}
		facilities = append(facilities, facility)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating facilities", err)
	}

	return facilities, nil
}

// rowScanner covers both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanFacility(row rowScanner, facility *entities.Facility) error {
	return row.Scan(
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
}
