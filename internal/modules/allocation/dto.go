package allocation

type UpdateAllocationRequest struct {
	WeeklyLimitDays *float64 `json:"weekly_limit_days,omitempty"`
	MorningDuration *float64 `json:"morning_duration,omitempty"`
	MiddayDuration  *float64 `json:"midday_duration,omitempty"`
	EveningDuration *float64 `json:"evening_duration,omitempty"`
	ResetDayOfWeek  *int     `json:"reset_day_of_week,omitempty"`
}
