package database

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/careroute/backend/internal/domain/repositories"
	"github.com/careroute/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/careroute/backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockDB(t *testing.T) (*postgres.Client, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create mock database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return postgres.NewClientFromDB(db), mock
}

func facilityRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "street", "city", "state", "zip_code", "country",
		"latitude", "longitude", "phone_number", "email", "description",
		"facility_type", "is_emergency", "is_active", "created_at", "updated_at",
	})
}

func TestFacilityAdapterGetByID(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewFacilityAdapter(client)
	now := time.Now()

	rows := facilityRows().AddRow(
		"fac-1", "King Fahad General", "Al Olaya St", "Riyadh", "Riyadh", "11564", "SA",
		24.7136, 46.6753, "+966112345678", "info@kfg.example", "tertiary care",
		"general", true, true, now, now,
	)
	mock.ExpectQuery("SELECT (.+) FROM facilities").
		WithArgs("fac-1").
		WillReturnRows(rows)

	facility, err := adapter.GetByID(context.Background(), "fac-1")

	require.NoError(t, err)
	assert.Equal(t, "fac-1", facility.ID)
	assert.Equal(t, "Riyadh", facility.Address.City)
	assert.Equal(t, 24.7136, facility.Location.Latitude)
	assert.True(t, facility.IsEmergency)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFacilityAdapterGetByIDNotFound(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewFacilityAdapter(client)

	mock.ExpectQuery("SELECT (.+) FROM facilities").
		WithArgs("fac-missing").
		WillReturnError(sql.ErrNoRows)

	facility, err := adapter.GetByID(context.Background(), "fac-missing")

	require.Error(t, err)
	assert.Nil(t, facility)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestFacilityAdapterListAppliesFilters(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewFacilityAdapter(client)
	now := time.Now()
	active := true

	rows := facilityRows().AddRow(
		"fac-1", "Olaya Clinic", "Al Olaya St", "Riyadh", "Riyadh", "11564", "SA",
		24.70, 46.68, "+966112220000", "clinic@example.com", "",
		"clinic", false, true, now, now,
	)
	mock.ExpectQuery("SELECT (.+) FROM facilities WHERE 1=1 AND facility_type = (.+) AND city = (.+) AND is_active = (.+) ORDER BY created_at DESC LIMIT (.+)").
		WithArgs("clinic", "Riyadh", true, 20).
		WillReturnRows(rows)

	facilities, err := adapter.List(context.Background(), repositories.FacilityFilter{
		FacilityType: "clinic",
		City:         "Riyadh",
		IsActive:     &active,
		Limit:        20,
	})

	require.NoError(t, err)
	require.Len(t, facilities, 1)
	assert.Equal(t, "Olaya Clinic", facilities[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
