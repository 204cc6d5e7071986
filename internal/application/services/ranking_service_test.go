package services_test

import (
	"testing"

	"github.com/careroute/backend/internal/application/services"
	"github.com/careroute/backend/internal/domain/entities"
	"github.com/stretchr/testify/assert"
)

func availableVerdict(waitMinutes int) *entities.Availability {
	return &entities.Availability{
		Available:       true,
		Status:          entities.StatusAvailable,
		WaitTimeMinutes: intPtr(waitMinutes),
	}
}

func TestScore_EmergencyHospitalsHeadToHead(t *testing.T) {
	ranker := services.NewRankingService()

	hospitalA := &entities.Facility{ID: "fac-a", FacilityType: entities.FacilityTypeGeneral, IsEmergency: true}
	hospitalB := &entities.Facility{ID: "fac-b", FacilityType: entities.FacilityTypeSpecialized, IsEmergency: true}

	scoreA, breakdownA := ranker.Score(availableVerdict(10), 5, hospitalA, intPtr(1))
	scoreB, breakdownB := ranker.Score(availableVerdict(5), 8, hospitalB, intPtr(1))

	assert.Equal(t, 1020.0, scoreA)
	assert.Equal(t, 1005.0, scoreB)
	assert.Equal(t, entities.ScoreBreakdown{
		Availability: 590, Distance: 250, FacilityTier: 80, UrgencyBonus: 100,
	}, breakdownA)
	assert.Equal(t, entities.ScoreBreakdown{
		Availability: 595, Distance: 220, FacilityTier: 90, UrgencyBonus: 100,
	}, breakdownB)
	// The closer general hospital beats the higher-tier specialized one.
	assert.Greater(t, scoreA, scoreB)
}

func TestScore_AvailabilityBands(t *testing.T) {
	ranker := services.NewRankingService()
	facility := &entities.Facility{ID: "fac-1", FacilityType: entities.FacilityTypeClinic}

	cases := []struct {
		name    string
		verdict *entities.Availability
		want    float64
	}{
		{"available", &entities.Availability{Available: true, Status: entities.StatusAvailable}, 600},
		{"limited", &entities.Availability{Available: true, Status: entities.StatusLimited}, 400},
		{"on call only", &entities.Availability{Available: true, Status: entities.StatusOnCallOnly}, 300},
		{"unavailable", &entities.Availability{Available: false, Status: entities.StatusUnavailable}, 0},
		{"nil verdict", nil, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, breakdown := ranker.Score(tc.verdict, 0, facility, nil)
			assert.Equal(t, tc.want, breakdown.Availability)
		})
	}
}

func TestScore_WaitPenaltyIsCapped(t *testing.T) {
	ranker := services.NewRankingService()
	facility := &entities.Facility{ID: "fac-1", FacilityType: entities.FacilityTypeClinic}

	_, moderate := ranker.Score(availableVerdict(40), 0, facility, nil)
	_, extreme := ranker.Score(availableVerdict(480), 0, facility, nil)

	assert.Equal(t, 560.0, moderate.Availability)
	assert.Equal(t, 500.0, extreme.Availability)
}

func TestScore_DistanceDecay(t *testing.T) {
	ranker := services.NewRankingService()
	facility := &entities.Facility{ID: "fac-1", FacilityType: entities.FacilityTypeClinic}
	verdict := &entities.Availability{Available: true, Status: entities.StatusAvailable}

	cases := []struct {
		km   float64
		want float64
	}{
		{0, 300},
		{5, 250},
		{10, 200},
		{15, 150},
		{20, 100},
		{35, 50.05},
		{50, 0.1},
		{60, 0},
	}
	for _, tc := range cases {
		_, breakdown := ranker.Score(verdict, tc.km, facility, nil)
		assert.InDelta(t, tc.want, breakdown.Distance, 0.001, "distance %.0f km", tc.km)
	}
}

func TestScore_SmallerDistanceNeverScoresLower(t *testing.T) {
	ranker := services.NewRankingService()
	facility := &entities.Facility{ID: "fac-1", FacilityType: entities.FacilityTypeGeneral}
	verdict := &entities.Availability{Available: true, Status: entities.StatusAvailable}

	prev := -1.0
	for km := 80.0; km >= 0; km -= 0.5 {
		score, _ := ranker.Score(verdict, km, facility, nil)
		assert.GreaterOrEqual(t, score, prev, "score regressed at %.1f km", km)
		prev = score
	}
}

func TestScore_UnknownTierDefaultsToBaseline(t *testing.T) {
	ranker := services.NewRankingService()
	verdict := &entities.Availability{Available: true, Status: entities.StatusAvailable}

	_, breakdown := ranker.Score(verdict, 0, &entities.Facility{ID: "fac-1", FacilityType: "field_hospital"}, nil)
	assert.Equal(t, 50.0, breakdown.FacilityTier)

	_, nilFacility := ranker.Score(verdict, 0, nil, nil)
	assert.Equal(t, 50.0, nilFacility.FacilityTier)
}

func TestScore_UrgencyBonus(t *testing.T) {
	emergency := &entities.Facility{ID: "fac-1", FacilityType: entities.FacilityTypeCentral, IsEmergency: true}
	clinic := &entities.Facility{ID: "fac-2", FacilityType: entities.FacilityTypeClinic}
	ucc := &entities.Facility{ID: "fac-3", FacilityType: entities.FacilityTypeUrgentCare}

	cases := []struct {
		name     string
		tier     *int
		facility *entities.Facility
		want     float64
	}{
		{"critical at emergency", intPtr(1), emergency, 100},
		{"critical at clinic", intPtr(2), clinic, 0},
		{"moderate at ucc", intPtr(3), ucc, 50},
		{"moderate at emergency", intPtr(3), emergency, 30},
		{"routine at clinic", intPtr(5), clinic, 30},
		{"routine at ucc", intPtr(4), ucc, 30},
		{"routine at emergency", intPtr(5), emergency, 0},
		{"no urgency context", nil, emergency, 0},
	}
	ranker := services.NewRankingService()
	verdict := &entities.Availability{Available: true, Status: entities.StatusAvailable}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, breakdown := ranker.Score(verdict, 0, tc.facility, tc.tier)
			assert.Equal(t, tc.want, breakdown.UrgencyBonus)
		})
	}
}

func TestSort_TieBreaks(t *testing.T) {
	ranker := services.NewRankingService()
	candidates := []*entities.RankedCandidate{
		{Facility: &entities.Facility{ID: "fac-c"}, Score: 500, DistanceKm: 4},
		{Facility: &entities.Facility{ID: "fac-b"}, Score: 500, DistanceKm: 2},
		{Facility: &entities.Facility{ID: "fac-a"}, Score: 500, DistanceKm: 2},
		{Facility: &entities.Facility{ID: "fac-d"}, Score: 800, DistanceKm: 9},
	}

	ranker.Sort(candidates)

	ids := make([]string, len(candidates))
	for i, c := range candidates {
		ids[i] = c.Facility.ID
	}
	assert.Equal(t, []string{"fac-d", "fac-a", "fac-b", "fac-c"}, ids)
}
