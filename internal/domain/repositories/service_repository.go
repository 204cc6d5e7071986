package repositories

import (
	"context"

	"github.com/careroute/backend/internal/domain/entities"
)

// ServiceRepository defines the catalog read interface the routing path
// consumes. It returns active services only.
type ServiceRepository interface {
	// GetByID retrieves a service by ID. Inactive or unknown services return
	// a not-found error.
	GetByID(ctx context.Context, id string) (*entities.Service, error)

	// ListByType enumerates active services of one type at active facilities,
	// each paired with its facility.
	ListByType(ctx context.Context, serviceType entities.ServiceType) ([]*entities.FacilityService, error)
}
