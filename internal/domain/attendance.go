package domain

import "time"

// AttendanceStatus enumerates the per-day attendance outcomes.
type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "present"
	AttendanceStatusAbsent  AttendanceStatus = "absent"
	AttendanceStatusLate    AttendanceStatus = "late"
	AttendanceStatusHalfDay AttendanceStatus = "half_day"
)

// AttendanceRecord holds one row per (account, calendar day). A record
// is created on the first clock-in of the day and mutated at most once
// afterwards, when clock-out sets ClockOut. ClockOut is immutable once
// set. A weekday with no record at all is an implicit absence for
// aggregation; no row is ever written for it.
type AttendanceRecord struct {
	ID        string
	AccountID string
	Day       time.Time
	ClockIn   *time.Time
	ClockOut  *time.Time
	Status    AttendanceStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
