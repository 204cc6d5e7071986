package services

import (
	"context"
	"time"

	"github.com/careroute/backend/internal/domain/entities"
	"github.com/careroute/backend/internal/domain/repositories"
	"github.com/careroute/backend/internal/infrastructure/observability"
	"github.com/careroute/backend/pkg/config"
	apperrors "github.com/careroute/backend/pkg/errors"
	"github.com/careroute/backend/pkg/geo"
	"github.com/google/uuid"
)

// RoutingQuery describes one "where should this patient go" request.
// Latitude, Longitude and ServiceType are required; everything else falls
// back to configured defaults.
type RoutingQuery struct {
	Latitude      *float64
	Longitude     *float64
	ServiceType   entities.ServiceType
	At            time.Time // zero value means now
	MaxDistanceKm float64   // 0 means the configured default
	Limit         int       // 0 means the configured default
	City          string
	UrgencyTier   *int
}

// RoutingService orchestrates a routing decision: enumerate candidate
// services from the catalog, filter by radius, resolve availability, score,
// sort and log the decision. Each call is a stateless computation over the
// current catalog snapshot plus one append-only log write.
type RoutingService struct {
	serviceRepo  repositories.ServiceRepository
	facilityRepo repositories.FacilityRepository
	logRepo      repositories.DecisionLogRepository
	resolver     *ScheduleResolver
	ranker       *RankingService
	cfg          config.RoutingConfig
	metrics      *observability.Metrics
}

// NewRoutingService creates a new routing service
func NewRoutingService(
	serviceRepo repositories.ServiceRepository,
	facilityRepo repositories.FacilityRepository,
	logRepo repositories.DecisionLogRepository,
	resolver *ScheduleResolver,
	ranker *RankingService,
	cfg config.RoutingConfig,
	metrics *observability.Metrics,
) *RoutingService {
	return &RoutingService{
		serviceRepo:  serviceRepo,
		facilityRepo: facilityRepo,
		logRepo:      logRepo,
		resolver:     resolver,
		ranker:       ranker,
		cfg:          cfg,
		metrics:      metrics,
	}
}

// FindNearestWithService returns facilities offering the service type within
// the search radius, ranked best-first. An empty result is a normal outcome,
// not an error, and writes no decision log record. When candidates exist the
// top-ranked one is logged asynchronously; a log failure never fails the
// response.
func (s *RoutingService) FindNearestWithService(ctx context.Context, q RoutingQuery) ([]*entities.RankedCandidate, error) {
	if err := s.validate(q); err != nil {
		return nil, err
	}

	at := q.At
	if at.IsZero() {
		at = time.Now()
	}
	maxDistance := q.MaxDistanceKm
	if maxDistance <= 0 {
		maxDistance = s.cfg.DefaultMaxDistanceKm
	}
	limit := q.Limit
	if limit <= 0 {
		limit = s.cfg.DefaultLimit
	}

	offerings, err := s.serviceRepo.ListByType(ctx, q.ServiceType)
	if err != nil {
		return nil, err
	}

	candidates := make([]*entities.RankedCandidate, 0, len(offerings))
	for _, offering := range offerings {
		distance := geo.Distance(
			*q.Latitude, *q.Longitude,
			offering.Facility.Location.Latitude, offering.Facility.Location.Longitude,
		)
		if distance > maxDistance {
			continue
		}

		verdict, err := s.resolver.Resolve(ctx, offering.Service.ID, at)
		if err != nil {
			return nil, err
		}

		score, breakdown := s.ranker.Score(verdict, distance, offering.Facility, q.UrgencyTier)
		candidates = append(candidates, &entities.RankedCandidate{
			Facility:     offering.Facility,
			Service:      offering.Service,
			DistanceKm:   distance,
			Availability: verdict,
			Score:        score,
			Breakdown:    breakdown,
		})
	}

	s.ranker.Sort(candidates)
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	observability.RecordRoutingRequest(ctx, s.metrics, string(q.ServiceType), len(candidates))

	if len(candidates) > 0 {
		s.logDecision(q, at, candidates[0])
	}

	return candidates, nil
}

// FindAlternativeServices finds nearby facilities offering the service type,
// seeded from a facility's own coordinates. It is used when that facility's
// service turned out to be unavailable.
func (s *RoutingService) FindAlternativeServices(ctx context.Context, facilityID string, serviceType entities.ServiceType, at time.Time, maxDistanceKm float64) ([]*entities.RankedCandidate, error) {
	if facilityID == "" {
		return nil, apperrors.NewValidationError("facility id is required")
	}

	facility, err := s.facilityRepo.GetByID(ctx, facilityID)
	if err != nil {
		return nil, err
	}

	if maxDistanceKm <= 0 {
		maxDistanceKm = s.cfg.AlternativeMaxDistanceKm
	}

	return s.FindNearestWithService(ctx, RoutingQuery{
		Latitude:      &facility.Location.Latitude,
		Longitude:     &facility.Location.Longitude,
		ServiceType:   serviceType,
		At:            at,
		MaxDistanceKm: maxDistanceKm,
		Limit:         s.cfg.AlternativeLimit,
		City:          facility.Address.City,
	})
}

// CheckAvailability resolves one service's verdict at an instant.
func (s *RoutingService) CheckAvailability(ctx context.Context, serviceID string, at time.Time) (*entities.Availability, error) {
	if serviceID == "" {
		return nil, apperrors.NewValidationError("service id is required")
	}
	if at.IsZero() {
		at = time.Now()
	}
	return s.resolver.Resolve(ctx, serviceID, at)
}

// ServiceCoverageMap resolves every offering of a service type and buckets
// the facilities by city. Calling it twice with the same instant and an
// unchanged catalog returns identical counts.
func (s *RoutingService) ServiceCoverageMap(ctx context.Context, serviceType entities.ServiceType, at time.Time) (map[string]*entities.CityCoverage, error) {
	if !serviceType.IsValid() {
		return nil, apperrors.NewValidationError("unknown service type")
	}
	if at.IsZero() {
		at = time.Now()
	}

	offerings, err := s.serviceRepo.ListByType(ctx, serviceType)
	if err != nil {
		return nil, err
	}

	coverage := make(map[string]*entities.CityCoverage)
	for _, offering := range offerings {
		city := offering.Facility.Address.City
		if city == "" {
			city = "Unknown"
		}
		bucket, ok := coverage[city]
		if !ok {
			bucket = &entities.CityCoverage{City: city}
			coverage[city] = bucket
		}

		verdict, err := s.resolver.Resolve(ctx, offering.Service.ID, at)
		if err != nil {
			return nil, err
		}

		bucket.TotalFacilities++
		if verdict.Available {
			switch verdict.Status {
			case entities.StatusAvailable:
				bucket.AvailableNow++
			case entities.StatusLimited:
				bucket.Limited++
			}
		} else {
			bucket.Unavailable++
		}

		bucket.Facilities = append(bucket.Facilities, entities.CoverageFacility{
			FacilityID: offering.Facility.ID,
			Name:       offering.Facility.Name,
			Available:  verdict.Available,
			Status:     verdict.Status,
			Latitude:   offering.Facility.Location.Latitude,
			Longitude:  offering.Facility.Location.Longitude,
		})
	}

	return coverage, nil
}

// validate rejects missing or out-of-range inputs up front; they are never
// silently defaulted.
func (s *RoutingService) validate(q RoutingQuery) error {
	if q.Latitude == nil || q.Longitude == nil {
		return apperrors.NewValidationError("patient location (latitude, longitude) is required")
	}
	if *q.Latitude < -90 || *q.Latitude > 90 || *q.Longitude < -180 || *q.Longitude > 180 {
		return apperrors.NewValidationError("patient location is out of range")
	}
	if q.ServiceType == "" {
		return apperrors.NewValidationError("service type is required")
	}
	if !q.ServiceType.IsValid() {
		return apperrors.NewValidationError("unknown service type")
	}
	if q.UrgencyTier != nil && (*q.UrgencyTier < 1 || *q.UrgencyTier > 5) {
		return apperrors.NewValidationError("urgency tier must be between 1 and 5")
	}
	return nil
}

// logDecision appends the decision log record for the top-ranked candidate,
// fire-and-forget relative to the response.
func (s *RoutingService) logDecision(q RoutingQuery, at time.Time, top *entities.RankedCandidate) {
	if s.logRepo == nil {
		return
	}

	record := &entities.DecisionLogRecord{
		ID:                 uuid.New().String(),
		ServiceType:        q.ServiceType,
		PatientLatitude:    *q.Latitude,
		PatientLongitude:   *q.Longitude,
		PatientCity:        q.City,
		FacilityID:         top.Facility.ID,
		ServiceID:          top.Service.ID,
		DistanceKm:         top.DistanceKm,
		WasAvailable:       top.Availability.Available,
		AvailabilityStatus: top.Availability.Status,
		WaitTimeMinutes:    top.Availability.WaitTimeMinutes,
		RequestedAt:        at,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.logRepo.Create(ctx, record); err != nil {
			observability.GetLogger().Warn().Err(err).
				Str("facility_id", record.FacilityID).
				Str("service_type", string(record.ServiceType)).
				Msg("failed to append decision log record")
		}
	}()
}
