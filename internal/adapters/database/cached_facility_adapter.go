package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/careroute/backend/internal/domain/entities"
	"github.com/careroute/backend/internal/domain/providers"
	"github.com/careroute/backend/internal/domain/repositories"
	"github.com/careroute/backend/internal/infrastructure/observability"
)

// CachedFacilityAdapter wraps FacilityAdapter with caching. Facility rows
// change rarely relative to how often routing reads them.
type CachedFacilityAdapter struct {
	adapter repositories.FacilityRepository
	cache   providers.CacheProvider
}

// NewCachedFacilityAdapter creates a new cached facility adapter
func NewCachedFacilityAdapter(adapter repositories.FacilityRepository, cache providers.CacheProvider) repositories.FacilityRepository {
	return &CachedFacilityAdapter{
		adapter: adapter,
		cache:   cache,
	}
}

// Cache TTLs (in seconds)
const (
	facilityByIDTTL   = 300 // 5 minutes for single facility
	facilitiesListTTL = 180 // 3 minutes for lists
)

func facilityCacheKey(id string) string {
	return fmt.Sprintf("facility:%s", id)
}

func facilitiesListCacheKey(filter repositories.FacilityFilter) string {
	active := "any"
	if filter.IsActive != nil {
		active = fmt.Sprintf("%t", *filter.IsActive)
	}
	return fmt.Sprintf("facilities:list:%s:%s:%s:%d:%d",
		filter.FacilityType, filter.City, active, filter.Limit, filter.Offset)
}

// GetByID retrieves a facility by ID with caching
func (a *CachedFacilityAdapter) GetByID(ctx context.Context, id string) (*entities.Facility, error) {
	cacheKey := facilityCacheKey(id)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var facility entities.Facility
		if err := json.Unmarshal(cached, &facility); err == nil {
			return &facility, nil
		}
		// If unmarshal fails, continue to fetch from DB
		observability.GetLogger().Warn().Str("facility_id", id).Err(err).
			Msg("failed to unmarshal cached facility")
	}

	facility, err := a.adapter.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Update cache asynchronously to avoid blocking the response
	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(facility); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, facilityByIDTTL); err != nil {
				observability.GetLogger().Warn().Str("facility_id", id).Err(err).
					Msg("failed to cache facility")
			}
		}
	}()

	return facility, nil
}

// List retrieves a list of facilities with caching
func (a *CachedFacilityAdapter) List(ctx context.Context, filter repositories.FacilityFilter) ([]*entities.Facility, error) {
	cacheKey := facilitiesListCacheKey(filter)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var facilities []*entities.Facility
		if err := json.Unmarshal(cached, &facilities); err == nil {
			return facilities, nil
		}
		observability.GetLogger().Warn().Err(err).
			Msg("failed to unmarshal cached facilities list")
	}

	facilities, err := a.adapter.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(facilities); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, facilitiesListTTL); err != nil {
				observability.GetLogger().Warn().Err(err).
					Msg("failed to cache facilities list")
			}
		}
	}()

	return facilities, nil
}
