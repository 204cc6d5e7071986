package repositories

import (
	"context"

	"github.com/careroute/backend/internal/domain/entities"
)

// FacilityRepository defines the interface for facility data operations
type FacilityRepository interface {
	// GetByID retrieves an active facility by ID
	GetByID(ctx context.Context, id string) (*entities.Facility, error)

	// List retrieves facilities with filters
	List(ctx context.Context, filter FacilityFilter) ([]*entities.Facility, error)
}

// FacilityFilter defines filters for listing facilities
type FacilityFilter struct {
	FacilityType entities.FacilityType
	City         string
	IsActive     *bool
	Limit        int
	Offset       int
}
