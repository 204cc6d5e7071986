package entities

import (
	"time"
)

// DecisionLogRecord is the immutable record of one routing decision. It is
// written once per routing call for the top-ranked candidate and never
// mutated afterwards, except to attach the patient's acceptance feedback.
type DecisionLogRecord struct {
	ID                 string             `json:"id" db:"id"`
	ServiceType        ServiceType        `json:"service_type" db:"service_type"`
	PatientLatitude    float64            `json:"patient_latitude" db:"patient_latitude"`
	PatientLongitude   float64            `json:"patient_longitude" db:"patient_longitude"`
	PatientCity        string             `json:"patient_city,omitempty" db:"patient_city"`
	FacilityID         string             `json:"facility_id" db:"facility_id"`
	ServiceID          string             `json:"service_id" db:"service_id"`
	DistanceKm         float64            `json:"distance_km" db:"distance_km"`
	WasAvailable       bool               `json:"was_available" db:"was_available"`
	AvailabilityStatus AvailabilityStatus `json:"availability_status" db:"availability_status"`
	WaitTimeMinutes    *int               `json:"wait_time_minutes,omitempty" db:"wait_time_minutes"`
	PatientAccepted    *bool              `json:"patient_accepted,omitempty" db:"patient_accepted"`
	PatientFeedback    *string            `json:"patient_feedback,omitempty" db:"patient_feedback"`
	RequestedAt        time.Time          `json:"requested_at" db:"requested_at"`
}
