package entities

// ScoreBreakdown itemizes the additive terms behind a candidate's score.
type ScoreBreakdown struct {
	Availability float64 `json:"availability_score"`
	Distance     float64 `json:"distance_score"`
	FacilityTier float64 `json:"facility_tier_score"`
	UrgencyBonus float64 `json:"urgency_bonus"`
}

// RankedCandidate is one scored (facility, service) pair produced per routing
// call. It is transient: built for the response and never persisted.
type RankedCandidate struct {
	Facility     *Facility      `json:"facility"`
	Service      *Service       `json:"service"`
	DistanceKm   float64        `json:"distance_km"`
	Availability *Availability  `json:"availability"`
	Score        float64        `json:"score"`
	Breakdown    ScoreBreakdown `json:"score_breakdown"`
}
