package services_test

import (
	"context"
	"testing"

	"github.com/careroute/backend/internal/application/services"
	"github.com/careroute/backend/internal/domain/entities"
	"github.com/careroute/backend/internal/domain/repositories"
	apperrors "github.com/careroute/backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func boolPtr(v bool) *bool { return &v }

func TestRoutingAnalytics_EmptyLogReturnsZeroedAggregates(t *testing.T) {
	logRepo := new(MockDecisionLogRepository)
	logRepo.On("List", mock.Anything, mock.Anything).Return([]*entities.DecisionLogRecord{}, nil)

	analytics, err := services.NewAnalyticsService(logRepo).RoutingAnalytics(context.Background(), repositories.DecisionLogFilter{})

	require.NoError(t, err)
	assert.Equal(t, &entities.RoutingAnalytics{}, analytics)
}

func TestRoutingAnalytics_Aggregates(t *testing.T) {
	logRepo := new(MockDecisionLogRepository)
	records := []*entities.DecisionLogRecord{
		{
			ServiceType:        entities.ServiceTypeEmergency,
			PatientCity:        "Riyadh",
			DistanceKm:         4,
			WasAvailable:       true,
			AvailabilityStatus: entities.StatusAvailable,
			WaitTimeMinutes:    intPtr(10),
			PatientAccepted:    boolPtr(true),
		},
		{
			ServiceType:        entities.ServiceTypeEmergency,
			PatientCity:        "Riyadh",
			DistanceKm:         8,
			WasAvailable:       true,
			AvailabilityStatus: entities.StatusLimited,
			WaitTimeMinutes:    intPtr(30),
			PatientAccepted:    boolPtr(false),
		},
		{
			ServiceType:        entities.ServiceTypeCardiology,
			PatientCity:        "",
			DistanceKm:         12,
			WasAvailable:       false,
			AvailabilityStatus: entities.StatusUnavailable,
		},
	}
	logRepo.On("List", mock.Anything, mock.Anything).Return(records, nil)

	analytics, err := services.NewAnalyticsService(logRepo).RoutingAnalytics(context.Background(), repositories.DecisionLogFilter{})

	require.NoError(t, err)
	assert.Equal(t, 3, analytics.TotalRequests)
	assert.InDelta(t, 66.67, analytics.AvailabilityRate, 0.001)
	assert.Equal(t, 8.0, analytics.AverageDistanceKm)
	// Average wait only counts records that carry a wait time.
	assert.Equal(t, 20.0, analytics.AverageWaitTimeMinutes)
	assert.InDelta(t, 33.33, analytics.AcceptanceRate, 0.001)
	assert.Equal(t, map[string]int{"emergency": 2, "cardiology": 1}, analytics.ByServiceType)
	assert.Equal(t, map[string]int{"Riyadh": 2, "Unknown": 1}, analytics.ByCity)
	assert.Equal(t, map[string]int{"available": 1, "limited": 1, "unavailable": 1}, analytics.ByStatus)
}

func TestRoutingAnalytics_FilterIsPassedThrough(t *testing.T) {
	logRepo := new(MockDecisionLogRepository)
	filter := repositories.DecisionLogFilter{City: "Jeddah", Limit: 100}
	logRepo.On("List", mock.Anything, filter).Return([]*entities.DecisionLogRecord{}, nil)

	_, err := services.NewAnalyticsService(logRepo).RoutingAnalytics(context.Background(), filter)

	require.NoError(t, err)
	logRepo.AssertExpectations(t)
}

func TestAttachFeedback(t *testing.T) {
	logRepo := new(MockDecisionLogRepository)
	logRepo.On("AttachFeedback", mock.Anything, "rec-1", true, "went straight in").Return(nil)

	svc := services.NewAnalyticsService(logRepo)

	require.NoError(t, svc.AttachFeedback(context.Background(), "rec-1", true, "went straight in"))

	err := svc.AttachFeedback(context.Background(), "", true, "")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}
