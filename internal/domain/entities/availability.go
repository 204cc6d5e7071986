package entities

// OnCallInfo describes who covers an on-call schedule and how fast they
// respond.
type OnCallInfo struct {
	Doctor              string `json:"doctor,omitempty"`
	Phone               string `json:"phone,omitempty"`
	ResponseTimeMinutes *int   `json:"response_time_minutes,omitempty"`
}

// Alternative points to a redirect target named by an override, for example
// "this ward is closed, go to the one across town".
type Alternative struct {
	ServiceID  string `json:"service_id"`
	FacilityID string `json:"facility_id,omitempty"`
}

// Availability is the single definitive verdict for one service at one
// instant, produced by the schedule resolver.
type Availability struct {
	Available       bool               `json:"available"`
	Status          AvailabilityStatus `json:"status"`
	Reason          string             `json:"reason"`
	OnCall          *OnCallInfo        `json:"on_call,omitempty"`
	Capacity        *int               `json:"capacity,omitempty"`
	WaitTimeMinutes *int               `json:"wait_time_minutes,omitempty"`
	Alternative     *Alternative       `json:"alternative,omitempty"`
}
