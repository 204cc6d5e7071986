package services_test

import (
	"context"
	"time"

	"github.com/careroute/backend/internal/domain/entities"
	"github.com/careroute/backend/internal/domain/repositories"
	"github.com/stretchr/testify/mock"
)

// Mocks

type MockServiceRepository struct {
	mock.Mock
}

func (m *MockServiceRepository) GetByID(ctx context.Context, id string) (*entities.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Service), args.Error(1)
}

func (m *MockServiceRepository) ListByType(ctx context.Context, serviceType entities.ServiceType) ([]*entities.FacilityService, error) {
	args := m.Called(ctx, serviceType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.FacilityService), args.Error(1)
}

type MockScheduleRepository struct {
	mock.Mock
}

func (m *MockScheduleRepository) GetActiveOverrides(ctx context.Context, serviceID string, at time.Time) ([]*entities.Override, error) {
	args := m.Called(ctx, serviceID, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Override), args.Error(1)
}

func (m *MockScheduleRepository) GetActiveSchedules(ctx context.Context, serviceID string) ([]*entities.Schedule, error) {
	args := m.Called(ctx, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Schedule), args.Error(1)
}

type MockFacilityRepository struct {
	mock.Mock
}

func (m *MockFacilityRepository) GetByID(ctx context.Context, id string) (*entities.Facility, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Facility), args.Error(1)
}

func (m *MockFacilityRepository) List(ctx context.Context, filter repositories.FacilityFilter) ([]*entities.Facility, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Facility), args.Error(1)
}

type MockDecisionLogRepository struct {
	mock.Mock
}

func (m *MockDecisionLogRepository) Create(ctx context.Context, record *entities.DecisionLogRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockDecisionLogRepository) AttachFeedback(ctx context.Context, recordID string, accepted bool, feedback string) error {
	args := m.Called(ctx, recordID, accepted, feedback)
	return args.Error(0)
}

func (m *MockDecisionLogRepository) List(ctx context.Context, filter repositories.DecisionLogFilter) ([]*entities.DecisionLogRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.DecisionLogRecord), args.Error(1)
}

// Helpers

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func weekdayPtr(d time.Weekday) *time.Weekday { return &d }

func timeOfDay(h, m int) *entities.TimeOfDay {
	return &entities.TimeOfDay{Hour: h, Minute: m}
}

func datePtr(t time.Time) *time.Time { return &t }
