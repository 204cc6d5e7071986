package services

import (
	"math"
	"sort"

	"github.com/careroute/backend/internal/domain/entities"
)

// Scoring bands. The total score is the unweighted sum of four additive
// terms; higher is better.
const (
	scoreAvailable  = 600.0
	scoreLimited    = 400.0
	scoreOnCallOnly = 300.0

	maxWaitPenalty = 100.0

	distanceFullScore = 300.0
	distanceNearKm    = 10.0
	distanceMidKm     = 20.0
	distanceFarKm     = 50.0
	distanceNearSlope = 10.0
	distanceMidSlope  = 10.0
	distanceFarSlope  = 3.33

	defaultTierScore = 50.0
)

// facilityTierScores maps facility tiers to their ranking contribution.
var facilityTierScores = map[entities.FacilityType]float64{
	entities.FacilityTypeCentral:     100,
	entities.FacilityTypeSpecialized: 90,
	entities.FacilityTypeGeneral:     80,
	entities.FacilityTypeDistrict:    70,
	entities.FacilityTypeUrgentCare:  60,
	entities.FacilityTypeClinic:      50,
}

// RankingService scores routing candidates. Scoring is a deterministic pure
// function of the verdict, distance, facility tier and optional urgency tier.
type RankingService struct{}

// NewRankingService creates a new ranking service
func NewRankingService() *RankingService {
	return &RankingService{}
}

// Score computes the score and its breakdown for one candidate. urgencyTier
// is the CTAS level, 1 (most critical) to 5 (routine); nil means no urgency
// context was supplied and the bonus term stays zero.
func (s *RankingService) Score(verdict *entities.Availability, distanceKm float64, facility *entities.Facility, urgencyTier *int) (float64, entities.ScoreBreakdown) {
	breakdown := entities.ScoreBreakdown{
		Availability: availabilityScore(verdict),
		Distance:     distanceScore(distanceKm),
		FacilityTier: facilityTierScore(facility),
		UrgencyBonus: urgencyBonus(urgencyTier, facility),
	}
	total := breakdown.Availability + breakdown.Distance + breakdown.FacilityTier + breakdown.UrgencyBonus
	return math.Round(total*100) / 100, breakdown
}

// Sort orders candidates by score descending. Ties break by ascending
// distance, then ascending facility ID, so result order is reproducible.
func (s *RankingService) Sort(candidates []*entities.RankedCandidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		if candidates[i].DistanceKm != candidates[j].DistanceKm {
			return candidates[i].DistanceKm < candidates[j].DistanceKm
		}
		return candidates[i].Facility.ID < candidates[j].Facility.ID
	})
}

// availabilityScore contributes 0-600 points: a base by status minus up to
// 100 points of wait-time penalty, never below zero.
func availabilityScore(verdict *entities.Availability) float64 {
	if verdict == nil || !verdict.Available {
		return 0
	}

	var base float64
	switch verdict.Status {
	case entities.StatusAvailable:
		base = scoreAvailable
	case entities.StatusLimited:
		base = scoreLimited
	case entities.StatusOnCallOnly:
		base = scoreOnCallOnly
	default:
		return 0
	}

	if verdict.WaitTimeMinutes != nil {
		base -= math.Min(float64(*verdict.WaitTimeMinutes), maxWaitPenalty)
	}
	return math.Max(base, 0)
}

// distanceScore contributes 0-300 points with piecewise-linear decay: full
// points at the door, zero beyond 50 km.
func distanceScore(distanceKm float64) float64 {
	switch {
	case distanceKm <= 0:
		return distanceFullScore
	case distanceKm <= distanceNearKm:
		return distanceFullScore - distanceKm*distanceNearSlope
	case distanceKm <= distanceMidKm:
		return 200 - (distanceKm-distanceNearKm)*distanceMidSlope
	case distanceKm <= distanceFarKm:
		return 100 - (distanceKm-distanceMidKm)*distanceFarSlope
	default:
		return 0
	}
}

// facilityTierScore contributes 0-100 points; unknown tiers score the
// clinic baseline rather than erroring.
func facilityTierScore(facility *entities.Facility) float64 {
	if facility == nil {
		return defaultTierScore
	}
	if score, ok := facilityTierScores[facility.FacilityType]; ok {
		return score
	}
	return defaultTierScore
}

// urgencyBonus contributes 0-100 points steering critical patients toward
// emergency-capable facilities and routine ones toward clinics.
func urgencyBonus(urgencyTier *int, facility *entities.Facility) float64 {
	if urgencyTier == nil || facility == nil {
		return 0
	}

	switch {
	case *urgencyTier <= 2:
		if facility.IsEmergency {
			return 100
		}
		return 0
	case *urgencyTier == 3:
		if facility.FacilityType == entities.FacilityTypeUrgentCare {
			return 50
		}
		if facility.IsEmergency {
			return 30
		}
		return 0
	default:
		if facility.FacilityType == entities.FacilityTypeClinic ||
			facility.FacilityType == entities.FacilityTypeUrgentCare {
			return 30
		}
		return 0
	}
}
