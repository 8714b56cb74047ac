package domain

import "time"

// TimeAllocation is the per-property booking policy: session durations,
// the weekly quota in days and the day the weekly window resets on
// (ISO numbering, Monday=1 .. Sunday=7). One row per property.
type TimeAllocation struct {
	ID              string    `json:"id"`
	PropertyID      string    `json:"property_id"`
	WeeklyLimitDays float64   `json:"weekly_limit_days" validate:"required,gt=0"`
	MorningDuration float64   `json:"morning_duration" validate:"required,gt=0"`
	MiddayDuration  float64   `json:"midday_duration" validate:"required,gt=0"`
	EveningDuration float64   `json:"evening_duration" validate:"required,gt=0"`
	ResetDayOfWeek  int       `json:"reset_day_of_week" validate:"required,min=1,max=7"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// DurationFor returns the configured duration for a session type.
// Callers validate the session type first; unknown values get 0.
func (a *TimeAllocation) DurationFor(s SessionType) float64 {
	switch s {
	case SessionMorning:
		return a.MorningDuration
	case SessionMidday:
		return a.MiddayDuration
	case SessionEvening:
		return a.EveningDuration
	default:
		return 0
	}
}
