package entities

import (
	"fmt"
	"time"
)

// ScheduleKind distinguishes recurring weekly rules from date-ranged ones.
type ScheduleKind string

const (
	// ScheduleKindRegular is a recurring weekly schedule.
	ScheduleKindRegular ScheduleKind = "regular"
	// ScheduleKindOnCall is recurring on-call coverage.
	ScheduleKindOnCall ScheduleKind = "on_call"
	// ScheduleKindTemporary is a date-ranged temporary schedule.
	ScheduleKindTemporary ScheduleKind = "temporary"
	// ScheduleKindHoliday is a date-ranged holiday schedule.
	ScheduleKindHoliday ScheduleKind = "holiday"
)

// IsValid reports whether the kind is one of the known schedule kinds.
func (k ScheduleKind) IsValid() bool {
	switch k {
	case ScheduleKindRegular, ScheduleKindOnCall, ScheduleKindTemporary, ScheduleKindHoliday:
		return true
	}
	return false
}

// IsDateRanged reports whether applicability is decided by the schedule's
// date range rather than day-of-week and time-of-day.
func (k ScheduleKind) IsDateRanged() bool {
	return k == ScheduleKindTemporary || k == ScheduleKindHoliday
}

// AvailabilityStatus is the verdict a matching schedule or override applies.
type AvailabilityStatus string

const (
	StatusAvailable   AvailabilityStatus = "available"
	StatusLimited     AvailabilityStatus = "limited"
	StatusUnavailable AvailabilityStatus = "unavailable"
	StatusOnCallOnly  AvailabilityStatus = "on_call_only"
)

// IsValid reports whether the status is one of the known verdicts.
func (s AvailabilityStatus) IsValid() bool {
	switch s {
	case StatusAvailable, StatusLimited, StatusUnavailable, StatusOnCallOnly:
		return true
	}
	return false
}

// IsAvailable reports whether the status counts as reachable care. On-call
// coverage counts: a patient can still be seen, just through the on-call path.
func (s AvailabilityStatus) IsAvailable() bool {
	return s == StatusAvailable || s == StatusLimited || s == StatusOnCallOnly
}

// TimeOfDay is a wall-clock time without a date, used for schedule windows.
type TimeOfDay struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// ParseTimeOfDay parses "15:04" or "15:04:05" clock strings.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var h, m, sec int
	if _, err := fmt.Sscanf(s, "%d:%d:%d", &h, &m, &sec); err != nil {
		if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
			return TimeOfDay{}, fmt.Errorf("invalid time of day %q", s)
		}
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return TimeOfDay{}, fmt.Errorf("time of day %q out of range", s)
	}
	return TimeOfDay{Hour: h, Minute: m}, nil
}

// TimeOfDayFromTime extracts the wall-clock component of an instant.
func TimeOfDayFromTime(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}
}

// Minutes returns minutes since midnight.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// String renders the time as "15:04".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Schedule is a named time rule attached to one service. Regular and on-call
// schedules recur weekly; temporary and holiday schedules apply over a date
// range. A regular/on_call schedule with no time bounds matches the whole day.
// Windows never wrap midnight: a 22:00-02:00 window is entered as two rows,
// one per day.
type Schedule struct {
	ID                  string             `json:"id" db:"id"`
	ServiceID           string             `json:"service_id" db:"service_id"`
	Kind                ScheduleKind       `json:"kind" db:"kind"`
	DayOfWeek           *time.Weekday      `json:"day_of_week,omitempty" db:"day_of_week"`
	StartTime           *TimeOfDay         `json:"start_time,omitempty" db:"start_time"`
	EndTime             *TimeOfDay         `json:"end_time,omitempty" db:"end_time"`
	StartDate           *time.Time         `json:"start_date,omitempty" db:"start_date"`
	EndDate             *time.Time         `json:"end_date,omitempty" db:"end_date"`
	Status              AvailabilityStatus `json:"status" db:"status"`
	CapacityOverride    *int               `json:"capacity_override,omitempty" db:"capacity_override"`
	OnCallDoctor        string             `json:"on_call_doctor,omitempty" db:"on_call_doctor"`
	OnCallPhone         string             `json:"on_call_phone,omitempty" db:"on_call_phone"`
	ResponseTimeMinutes *int               `json:"response_time_minutes,omitempty" db:"response_time_minutes"`
	Priority            int                `json:"priority" db:"priority"`
	IsActive            bool               `json:"is_active" db:"is_active"`
	CreatedAt           time.Time          `json:"created_at" db:"created_at"`
}

// Override is a hard, datetime-ranged exception for one service, for example
// an emergency closure. An active override whose interval contains the query
// instant always wins over every schedule regardless of schedule priority.
type Override struct {
	ID                    string             `json:"id" db:"id"`
	ServiceID             string             `json:"service_id" db:"service_id"`
	StartAt               time.Time          `json:"start_at" db:"start_at"`
	EndAt                 time.Time          `json:"end_at" db:"end_at"`
	Status                AvailabilityStatus `json:"status" db:"status"`
	Reason                string             `json:"reason" db:"reason"`
	AlternativeServiceID  *string            `json:"alternative_service_id,omitempty" db:"alternative_service_id"`
	AlternativeFacilityID *string            `json:"alternative_facility_id,omitempty" db:"alternative_facility_id"`
	IsActive              bool               `json:"is_active" db:"is_active"`
	CreatedAt             time.Time          `json:"created_at" db:"created_at"`
	CreatedBy             string             `json:"created_by" db:"created_by"`
}

// Contains reports whether the override interval contains the instant,
// inclusive on both ends.
func (o *Override) Contains(at time.Time) bool {
	return !at.Before(o.StartAt) && !at.After(o.EndAt)
}
