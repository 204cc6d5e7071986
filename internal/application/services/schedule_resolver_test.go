package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/careroute/backend/internal/application/services"
	"github.com/careroute/backend/internal/domain/entities"
	apperrors "github.com/careroute/backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func activeService(id string) *entities.Service {
	return &entities.Service{
		ID:                 id,
		FacilityID:         "fac-1",
		ServiceType:        entities.ServiceTypeCardiology,
		Name:               "Cardiology",
		Capacity:           intPtr(40),
		AverageWaitMinutes: intPtr(15),
		IsActive:           true,
	}
}

func newResolver(serviceRepo *MockServiceRepository, scheduleRepo *MockScheduleRepository) *services.ScheduleResolver {
	return services.NewScheduleResolver(serviceRepo, scheduleRepo, nil, nil)
}

func TestResolve_UnknownServiceIsUnavailableNotError(t *testing.T) {
	serviceRepo := new(MockServiceRepository)
	scheduleRepo := new(MockScheduleRepository)
	serviceRepo.On("GetByID", mock.Anything, "missing").
		Return(nil, apperrors.NewNotFoundError("service with id missing not found"))

	verdict, err := newResolver(serviceRepo, scheduleRepo).Resolve(context.Background(), "missing", time.Now())

	assert.NoError(t, err)
	assert.False(t, verdict.Available)
	assert.Equal(t, entities.StatusUnavailable, verdict.Status)
	assert.Equal(t, "service not found or inactive", verdict.Reason)
}

func TestResolve_InactiveServiceIsUnavailable(t *testing.T) {
	serviceRepo := new(MockServiceRepository)
	scheduleRepo := new(MockScheduleRepository)
	svc := activeService("svc-1")
	svc.IsActive = false
	serviceRepo.On("GetByID", mock.Anything, "svc-1").Return(svc, nil)

	verdict, err := newResolver(serviceRepo, scheduleRepo).Resolve(context.Background(), "svc-1", time.Now())

	assert.NoError(t, err)
	assert.False(t, verdict.Available)
	assert.Equal(t, "service not found or inactive", verdict.Reason)
}

func TestResolve_OverrideWinsOverSchedule(t *testing.T) {
	serviceRepo := new(MockServiceRepository)
	scheduleRepo := new(MockScheduleRepository)
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	serviceRepo.On("GetByID", mock.Anything, "svc-1").Return(activeService("svc-1"), nil)
	scheduleRepo.On("GetActiveOverrides", mock.Anything, "svc-1", at).Return([]*entities.Override{
		{
			ID:        "ov-1",
			ServiceID: "svc-1",
			StartAt:   at.Add(-time.Hour),
			EndAt:     at.Add(time.Hour),
			Status:    entities.StatusUnavailable,
			Reason:    "ward flooding, temporary closure",
			IsActive:  true,
			CreatedAt: at.Add(-2 * time.Hour),
		},
	}, nil)

	verdict, err := newResolver(serviceRepo, scheduleRepo).Resolve(context.Background(), "svc-1", at)

	assert.NoError(t, err)
	assert.False(t, verdict.Available)
	assert.Equal(t, entities.StatusUnavailable, verdict.Status)
	assert.Equal(t, "ward flooding, temporary closure", verdict.Reason)
	// Schedules are never consulted once an override matched.
	scheduleRepo.AssertNotCalled(t, "GetActiveSchedules", mock.Anything, "svc-1")
}

func TestResolve_OverrideSurfacesAlternative(t *testing.T) {
	serviceRepo := new(MockServiceRepository)
	scheduleRepo := new(MockScheduleRepository)
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	altService := "svc-9"
	altFacility := "fac-9"

	serviceRepo.On("GetByID", mock.Anything, "svc-1").Return(activeService("svc-1"), nil)
	scheduleRepo.On("GetActiveOverrides", mock.Anything, "svc-1", at).Return([]*entities.Override{
		{
			ID:                    "ov-1",
			ServiceID:             "svc-1",
			StartAt:               at.Add(-time.Hour),
			EndAt:                 at.Add(time.Hour),
			Status:                entities.StatusUnavailable,
			Reason:                "equipment maintenance",
			AlternativeServiceID:  &altService,
			AlternativeFacilityID: &altFacility,
			IsActive:              true,
		},
	}, nil)

	verdict, err := newResolver(serviceRepo, scheduleRepo).Resolve(context.Background(), "svc-1", at)

	assert.NoError(t, err)
	if assert.NotNil(t, verdict.Alternative) {
		assert.Equal(t, "svc-9", verdict.Alternative.ServiceID)
		assert.Equal(t, "fac-9", verdict.Alternative.FacilityID)
	}
}

func TestResolve_ConflictingOverridesNewestCreatedWins(t *testing.T) {
	serviceRepo := new(MockServiceRepository)
	scheduleRepo := new(MockScheduleRepository)
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	serviceRepo.On("GetByID", mock.Anything, "svc-1").Return(activeService("svc-1"), nil)
	scheduleRepo.On("GetActiveOverrides", mock.Anything, "svc-1", at).Return([]*entities.Override{
		{
			ID: "ov-old", ServiceID: "svc-1",
			StartAt: at.Add(-time.Hour), EndAt: at.Add(time.Hour),
			Status: entities.StatusLimited, Reason: "reduced staffing",
			CreatedAt: at.Add(-48 * time.Hour),
		},
		{
			ID: "ov-new", ServiceID: "svc-1",
			StartAt: at.Add(-time.Hour), EndAt: at.Add(time.Hour),
			Status: entities.StatusUnavailable, Reason: "full closure",
			CreatedAt: at.Add(-1 * time.Hour),
		},
	}, nil)

	verdict, err := newResolver(serviceRepo, scheduleRepo).Resolve(context.Background(), "svc-1", at)

	assert.NoError(t, err)
	assert.Equal(t, entities.StatusUnavailable, verdict.Status)
	assert.Equal(t, "full closure", verdict.Reason)
}

func TestResolve_SundayWindow(t *testing.T) {
	serviceRepo := new(MockServiceRepository)
	scheduleRepo := new(MockScheduleRepository)

	schedules := []*entities.Schedule{
		{
			ID:        "sch-1",
			ServiceID: "svc-1",
			Kind:      entities.ScheduleKindRegular,
			DayOfWeek: weekdayPtr(time.Sunday),
			StartTime: timeOfDay(7, 0),
			EndTime:   timeOfDay(23, 0),
			Status:    entities.StatusAvailable,
			IsActive:  true,
		},
	}

	serviceRepo.On("GetByID", mock.Anything, "svc-1").Return(activeService("svc-1"), nil)
	scheduleRepo.On("GetActiveOverrides", mock.Anything, "svc-1", mock.Anything).Return([]*entities.Override{}, nil)
	scheduleRepo.On("GetActiveSchedules", mock.Anything, "svc-1").Return(schedules, nil)

	resolver := newResolver(serviceRepo, scheduleRepo)

	// 2026-03-01 is a Sunday.
	inside, err := resolver.Resolve(context.Background(), "svc-1", time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	assert.NoError(t, err)
	assert.True(t, inside.Available)
	assert.Equal(t, entities.StatusAvailable, inside.Status)

	outside, err := resolver.Resolve(context.Background(), "svc-1", time.Date(2026, 3, 1, 23, 30, 0, 0, time.UTC))
	assert.NoError(t, err)
	assert.False(t, outside.Available)
	assert.Equal(t, entities.StatusUnavailable, outside.Status)
	assert.Equal(t, "no active schedule for this time", outside.Reason)
}

func TestResolve_WindowBoundariesInclusive(t *testing.T) {
	serviceRepo := new(MockServiceRepository)
	scheduleRepo := new(MockScheduleRepository)

	schedules := []*entities.Schedule{
		{
			ID: "sch-1", ServiceID: "svc-1",
			Kind:      entities.ScheduleKindRegular,
			StartTime: timeOfDay(7, 0),
			EndTime:   timeOfDay(23, 0),
			Status:    entities.StatusAvailable,
			IsActive:  true,
		},
	}
	serviceRepo.On("GetByID", mock.Anything, "svc-1").Return(activeService("svc-1"), nil)
	scheduleRepo.On("GetActiveOverrides", mock.Anything, "svc-1", mock.Anything).Return([]*entities.Override{}, nil)
	scheduleRepo.On("GetActiveSchedules", mock.Anything, "svc-1").Return(schedules, nil)

	resolver := newResolver(serviceRepo, scheduleRepo)

	atStart, _ := resolver.Resolve(context.Background(), "svc-1", time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC))
	atEnd, _ := resolver.Resolve(context.Background(), "svc-1", time.Date(2026, 3, 2, 23, 0, 0, 0, time.UTC))
	assert.True(t, atStart.Available)
	assert.True(t, atEnd.Available)
}

func TestResolve_HigherPriorityScheduleWins(t *testing.T) {
	serviceRepo := new(MockServiceRepository)
	scheduleRepo := new(MockScheduleRepository)
	at := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	schedules := []*entities.Schedule{
		{
			ID: "sch-low", ServiceID: "svc-1",
			Kind:     entities.ScheduleKindRegular,
			Status:   entities.StatusAvailable,
			Priority: 0,
			IsActive: true,
		},
		{
			ID: "sch-high", ServiceID: "svc-1",
			Kind:     entities.ScheduleKindRegular,
			Status:   entities.StatusLimited,
			Priority: 10,
			IsActive: true,
		},
	}
	serviceRepo.On("GetByID", mock.Anything, "svc-1").Return(activeService("svc-1"), nil)
	scheduleRepo.On("GetActiveOverrides", mock.Anything, "svc-1", at).Return([]*entities.Override{}, nil)
	scheduleRepo.On("GetActiveSchedules", mock.Anything, "svc-1").Return(schedules, nil)

	verdict, err := newResolver(serviceRepo, scheduleRepo).Resolve(context.Background(), "svc-1", at)

	assert.NoError(t, err)
	assert.Equal(t, entities.StatusLimited, verdict.Status)
}

func TestResolve_DayRestrictionWithoutTimesMeansAllDay(t *testing.T) {
	serviceRepo := new(MockServiceRepository)
	scheduleRepo := new(MockScheduleRepository)
	// 2026-03-02 is a Monday.
	at := time.Date(2026, 3, 2, 3, 15, 0, 0, time.UTC)

	schedules := []*entities.Schedule{
		{
			ID: "sch-1", ServiceID: "svc-1",
			Kind:      entities.ScheduleKindRegular,
			DayOfWeek: weekdayPtr(time.Monday),
			Status:    entities.StatusAvailable,
			IsActive:  true,
		},
	}
	serviceRepo.On("GetByID", mock.Anything, "svc-1").Return(activeService("svc-1"), nil)
	scheduleRepo.On("GetActiveOverrides", mock.Anything, "svc-1", at).Return([]*entities.Override{}, nil)
	scheduleRepo.On("GetActiveSchedules", mock.Anything, "svc-1").Return(schedules, nil)

	verdict, err := newResolver(serviceRepo, scheduleRepo).Resolve(context.Background(), "svc-1", at)

	assert.NoError(t, err)
	assert.True(t, verdict.Available)
}

func TestResolve_HolidayScheduleAppliesByDateRange(t *testing.T) {
	serviceRepo := new(MockServiceRepository)
	scheduleRepo := new(MockScheduleRepository)
	at := time.Date(2026, 12, 25, 9, 0, 0, 0, time.UTC)

	schedules := []*entities.Schedule{
		{
			ID: "sch-holiday", ServiceID: "svc-1",
			Kind:      entities.ScheduleKindHoliday,
			StartDate: datePtr(time.Date(2026, 12, 24, 0, 0, 0, 0, time.UTC)),
			EndDate:   datePtr(time.Date(2026, 12, 26, 0, 0, 0, 0, time.UTC)),
			Status:    entities.StatusOnCallOnly,
			Priority:  5,
			IsActive:  true,
		},
		{
			ID: "sch-regular", ServiceID: "svc-1",
			Kind:     entities.ScheduleKindRegular,
			Status:   entities.StatusAvailable,
			Priority: 0,
			IsActive: true,
		},
	}
	serviceRepo.On("GetByID", mock.Anything, "svc-1").Return(activeService("svc-1"), nil)
	scheduleRepo.On("GetActiveOverrides", mock.Anything, "svc-1", at).Return([]*entities.Override{}, nil)
	scheduleRepo.On("GetActiveSchedules", mock.Anything, "svc-1").Return(schedules, nil)

	verdict, err := newResolver(serviceRepo, scheduleRepo).Resolve(context.Background(), "svc-1", at)

	assert.NoError(t, err)
	assert.Equal(t, entities.StatusOnCallOnly, verdict.Status)
	assert.True(t, verdict.Available)
}

func TestResolve_OnCallSchedulePopulatesOnCallInfo(t *testing.T) {
	serviceRepo := new(MockServiceRepository)
	scheduleRepo := new(MockScheduleRepository)
	at := time.Date(2026, 3, 2, 2, 0, 0, 0, time.UTC)

	schedules := []*entities.Schedule{
		{
			ID: "sch-oncall", ServiceID: "svc-1",
			Kind:                entities.ScheduleKindOnCall,
			Status:              entities.StatusOnCallOnly,
			OnCallDoctor:        "Dr. Salem",
			OnCallPhone:         "+966500000000",
			ResponseTimeMinutes: intPtr(20),
			CapacityOverride:    intPtr(5),
			IsActive:            true,
		},
	}
	serviceRepo.On("GetByID", mock.Anything, "svc-1").Return(activeService("svc-1"), nil)
	scheduleRepo.On("GetActiveOverrides", mock.Anything, "svc-1", at).Return([]*entities.Override{}, nil)
	scheduleRepo.On("GetActiveSchedules", mock.Anything, "svc-1").Return(schedules, nil)

	verdict, err := newResolver(serviceRepo, scheduleRepo).Resolve(context.Background(), "svc-1", at)

	assert.NoError(t, err)
	assert.True(t, verdict.Available)
	if assert.NotNil(t, verdict.OnCall) {
		assert.Equal(t, "Dr. Salem", verdict.OnCall.Doctor)
		assert.Equal(t, "+966500000000", verdict.OnCall.Phone)
		assert.Equal(t, 20, *verdict.OnCall.ResponseTimeMinutes)
	}
	// Capacity comes from the schedule override, wait time from the service.
	assert.Equal(t, 5, *verdict.Capacity)
	assert.Equal(t, 15, *verdict.WaitTimeMinutes)
}

func TestResolve_Deterministic(t *testing.T) {
	serviceRepo := new(MockServiceRepository)
	scheduleRepo := new(MockScheduleRepository)
	at := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	schedules := []*entities.Schedule{
		{ID: "sch-b", Kind: entities.ScheduleKindRegular, Status: entities.StatusLimited, Priority: 3, IsActive: true},
		{ID: "sch-a", Kind: entities.ScheduleKindRegular, Status: entities.StatusAvailable, Priority: 3, IsActive: true},
	}
	serviceRepo.On("GetByID", mock.Anything, "svc-1").Return(activeService("svc-1"), nil)
	scheduleRepo.On("GetActiveOverrides", mock.Anything, "svc-1", at).Return([]*entities.Override{}, nil)
	scheduleRepo.On("GetActiveSchedules", mock.Anything, "svc-1").Return(schedules, nil)

	resolver := newResolver(serviceRepo, scheduleRepo)
	first, err := resolver.Resolve(context.Background(), "svc-1", at)
	assert.NoError(t, err)
	second, err := resolver.Resolve(context.Background(), "svc-1", at)
	assert.NoError(t, err)

	assert.Equal(t, first, second)
	// Equal priorities fall back to ID order.
	assert.Equal(t, entities.StatusAvailable, first.Status)
}

func TestStatusTimeline_CoversEveryHour(t *testing.T) {
	serviceRepo := new(MockServiceRepository)
	scheduleRepo := new(MockScheduleRepository)

	schedules := []*entities.Schedule{
		{
			ID: "sch-1", ServiceID: "svc-1",
			Kind:      entities.ScheduleKindRegular,
			StartTime: timeOfDay(8, 0),
			EndTime:   timeOfDay(17, 0),
			Status:    entities.StatusAvailable,
			IsActive:  true,
		},
	}
	serviceRepo.On("GetByID", mock.Anything, "svc-1").Return(activeService("svc-1"), nil)
	scheduleRepo.On("GetActiveOverrides", mock.Anything, "svc-1", mock.Anything).Return([]*entities.Override{}, nil)
	scheduleRepo.On("GetActiveSchedules", mock.Anything, "svc-1").Return(schedules, nil)

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	timeline, err := newResolver(serviceRepo, scheduleRepo).StatusTimeline(context.Background(), "svc-1", day, day)

	assert.NoError(t, err)
	assert.Len(t, timeline, 24)
	assert.False(t, timeline[7].Available)
	assert.True(t, timeline[8].Available)
	assert.True(t, timeline[17].Available)
	assert.False(t, timeline[18].Available)
}
