package services

import (
	"context"
	"math"

	"github.com/careroute/backend/internal/domain/entities"
	"github.com/careroute/backend/internal/domain/repositories"
	apperrors "github.com/careroute/backend/pkg/errors"
)

// AnalyticsService aggregates historical decision log records into routing
// analytics and attaches patient feedback to past decisions.
type AnalyticsService struct {
	logRepo repositories.DecisionLogRepository
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(logRepo repositories.DecisionLogRepository) *AnalyticsService {
	return &AnalyticsService{logRepo: logRepo}
}

// RoutingAnalytics aggregates the decision log records matching the filter.
// A filter matching nothing returns a zeroed structure, not an error.
func (s *AnalyticsService) RoutingAnalytics(ctx context.Context, filter repositories.DecisionLogFilter) (*entities.RoutingAnalytics, error) {
	records, err := s.logRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return &entities.RoutingAnalytics{}, nil
	}

	total := len(records)
	available := 0
	accepted := 0
	totalDistance := 0.0
	waitSum := 0
	waitCount := 0

	byService := make(map[string]int)
	byCity := make(map[string]int)
	byStatus := make(map[string]int)

	for _, r := range records {
		if r.WasAvailable {
			available++
		}
		if r.PatientAccepted != nil && *r.PatientAccepted {
			accepted++
		}
		totalDistance += r.DistanceKm
		if r.WaitTimeMinutes != nil {
			waitSum += *r.WaitTimeMinutes
			waitCount++
		}

		byService[string(r.ServiceType)]++
		city := r.PatientCity
		if city == "" {
			city = "Unknown"
		}
		byCity[city]++
		byStatus[string(r.AvailabilityStatus)]++
	}

	analytics := &entities.RoutingAnalytics{
		TotalRequests:     total,
		AvailabilityRate:  round2(float64(available) / float64(total) * 100),
		AverageDistanceKm: round2(totalDistance / float64(total)),
		AcceptanceRate:    round2(float64(accepted) / float64(total) * 100),
		ByServiceType:     byService,
		ByCity:            byCity,
		ByStatus:          byStatus,
	}
	if waitCount > 0 {
		analytics.AverageWaitTimeMinutes = round2(float64(waitSum) / float64(waitCount))
	}
	return analytics, nil
}

// AttachFeedback records whether the patient followed the recommendation.
func (s *AnalyticsService) AttachFeedback(ctx context.Context, recordID string, accepted bool, feedback string) error {
	if recordID == "" {
		return apperrors.NewValidationError("decision log record id is required")
	}
	return s.logRepo.AttachFeedback(ctx, recordID, accepted, feedback)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
