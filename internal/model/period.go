package model

// PeriodTiming is one slot of the bell schedule. Times are wall-clock
// strings ("09:00 AM" or 24h "09:00"), start strictly before end.
type PeriodTiming struct {
	PeriodNumber int    `json:"period_number"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
}

// DisplayTime renders the slot for messages and dashboards. Derived, never
// stored.
func (p PeriodTiming) DisplayTime() string {
	return p.StartTime + " - " + p.EndTime
}

// ScheduledClass is a timetable entry resolved against the bell schedule:
// which period a faculty member teaches on a given weekday, and what.
type ScheduledClass struct {
	Period     PeriodTiming `json:"period"`
	Subject    string       `json:"subject"`
	ClassGroup string       `json:"class_group"`
}
