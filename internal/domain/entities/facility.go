package entities

import (
	"time"
)

// FacilityType classifies a facility's capability tier. It is one of the
// ranking factors when ordering routing candidates.
type FacilityType string

const (
	FacilityTypeCentral     FacilityType = "central"
	FacilityTypeSpecialized FacilityType = "specialized"
	FacilityTypeGeneral     FacilityType = "general"
	FacilityTypeDistrict    FacilityType = "district"
	FacilityTypeUrgentCare  FacilityType = "urgent_care_center"
	FacilityTypeClinic      FacilityType = "clinic"
)

// IsValid reports whether the facility type is one of the known tiers.
func (t FacilityType) IsValid() bool {
	switch t {
	case FacilityTypeCentral, FacilityTypeSpecialized, FacilityTypeGeneral,
		FacilityTypeDistrict, FacilityTypeUrgentCare, FacilityTypeClinic:
		return true
	}
	return false
}

// Facility represents a healthcare facility in the system
type Facility struct {
	ID           string       `json:"id" db:"id"`
	Name         string       `json:"name" db:"name"`
	Address      Address      `json:"address" db:"-"`
	Location     Location     `json:"location" db:"-"`
	PhoneNumber  string       `json:"phone_number" db:"phone_number"`
	Email        string       `json:"email" db:"email"`
	Description  string       `json:"description" db:"description"`
	FacilityType FacilityType `json:"facility_type" db:"facility_type"`
	IsEmergency  bool         `json:"is_emergency" db:"is_emergency"`
	IsActive     bool         `json:"is_active" db:"is_active"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at" db:"updated_at"`
}

// Address represents a physical address
type Address struct {
	Street  string `json:"street" db:"street"`
	City    string `json:"city" db:"city"`
	State   string `json:"state" db:"state"`
	ZipCode string `json:"zip_code" db:"zip_code"`
	Country string `json:"country" db:"country"`
}

// Location represents geographical coordinates
type Location struct {
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
}
