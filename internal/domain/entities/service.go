package entities

import (
	"time"
)

// ServiceType is the closed vocabulary of clinical services a facility can
// offer. Routing requests name one of these.
type ServiceType string

const (
	ServiceTypeEmergency     ServiceType = "emergency"
	ServiceTypeCardiology    ServiceType = "cardiology"
	ServiceTypeNeurology     ServiceType = "neurology"
	ServiceTypeOrthopedics   ServiceType = "orthopedics"
	ServiceTypePediatrics    ServiceType = "pediatrics"
	ServiceTypeObstetrics    ServiceType = "obstetrics"
	ServiceTypeSurgery       ServiceType = "surgery"
	ServiceTypeICU           ServiceType = "icu"
	ServiceTypeNICU          ServiceType = "nicu"
	ServiceTypeRadiology     ServiceType = "radiology"
	ServiceTypeLaboratory    ServiceType = "laboratory"
	ServiceTypePharmacy      ServiceType = "pharmacy"
	ServiceTypeDialysis      ServiceType = "dialysis"
	ServiceTypeOncology      ServiceType = "oncology"
	ServiceTypePsychiatry    ServiceType = "psychiatry"
	ServiceTypeDermatology   ServiceType = "dermatology"
	ServiceTypeOphthalmology ServiceType = "ophthalmology"
	ServiceTypeENT           ServiceType = "ent"
	ServiceTypeDental        ServiceType = "dental"
	ServiceTypePhysiotherapy ServiceType = "physiotherapy"
)

// IsValid reports whether the service type belongs to the known vocabulary.
func (t ServiceType) IsValid() bool {
	switch t {
	case ServiceTypeEmergency, ServiceTypeCardiology, ServiceTypeNeurology,
		ServiceTypeOrthopedics, ServiceTypePediatrics, ServiceTypeObstetrics,
		ServiceTypeSurgery, ServiceTypeICU, ServiceTypeNICU, ServiceTypeRadiology,
		ServiceTypeLaboratory, ServiceTypePharmacy, ServiceTypeDialysis,
		ServiceTypeOncology, ServiceTypePsychiatry, ServiceTypeDermatology,
		ServiceTypeOphthalmology, ServiceTypeENT, ServiceTypeDental,
		ServiceTypePhysiotherapy:
		return true
	}
	return false
}

// Service is one capability offered by one facility, e.g. "cardiology at
// General Hospital". Schedules and overrides attach to a service, never to
// the facility itself.
type Service struct {
	ID                  string      `json:"id" db:"id"`
	FacilityID          string      `json:"facility_id" db:"facility_id"`
	ServiceType         ServiceType `json:"service_type" db:"service_type"`
	Name                string      `json:"name" db:"name"`
	Description         string      `json:"description" db:"description"`
	RequiresAppointment bool        `json:"requires_appointment" db:"requires_appointment"`
	HasOnCallCoverage   bool        `json:"has_on_call_coverage" db:"has_on_call_coverage"`
	Capacity            *int        `json:"capacity,omitempty" db:"capacity"`
	AverageWaitMinutes  *int        `json:"average_wait_minutes,omitempty" db:"average_wait_minutes"`
	Phone               string      `json:"phone" db:"phone"`
	Extension           string      `json:"extension" db:"extension"`
	IsActive            bool        `json:"is_active" db:"is_active"`
	CreatedAt           time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at" db:"updated_at"`
}

// FacilityService pairs a service with the facility that offers it. The
// routing path enumerates these per service type.
type FacilityService struct {
	Service  *Service  `json:"service"`
	Facility *Facility `json:"facility"`
}
