package entities

// CoverageFacility is one facility's availability inside a city bucket of the
// coverage map.
type CoverageFacility struct {
	FacilityID string             `json:"facility_id"`
	Name       string             `json:"name"`
	Available  bool               `json:"available"`
	Status     AvailabilityStatus `json:"status"`
	Latitude   float64            `json:"latitude"`
	Longitude  float64            `json:"longitude"`
}

// CityCoverage buckets the facilities of one city by availability for a
// service type at one instant.
type CityCoverage struct {
	City            string             `json:"city"`
	TotalFacilities int                `json:"total_facilities"`
	AvailableNow    int                `json:"available_now"`
	Limited         int                `json:"limited_availability"`
	Unavailable     int                `json:"unavailable"`
	Facilities      []CoverageFacility `json:"facilities"`
}

// RoutingAnalytics aggregates historical decision log records.
type RoutingAnalytics struct {
	TotalRequests          int            `json:"total_requests"`
	AvailabilityRate       float64        `json:"availability_rate"`
	AverageDistanceKm      float64        `json:"average_distance_km"`
	AverageWaitTimeMinutes float64        `json:"average_wait_time_minutes"`
	AcceptanceRate         float64        `json:"acceptance_rate"`
	ByServiceType          map[string]int `json:"by_service_type,omitempty"`
	ByCity                 map[string]int `json:"by_city,omitempty"`
	ByStatus               map[string]int `json:"by_status,omitempty"`
}

// HourlyStatus is one cell of a service status timeline: the resolved
// availability at the top of one hour.
type HourlyStatus struct {
	Date      string             `json:"date"`
	Hour      int                `json:"hour"`
	Available bool               `json:"available"`
	Status    AvailabilityStatus `json:"status"`
	Reason    string             `json:"reason,omitempty"`
}
