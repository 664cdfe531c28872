package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
)

func (s Status) IsValid() bool {
	return s == StatusPresent || s == StatusAbsent
}

// Attendance is one employee's record for one calendar day. A nil Status
// means the day has been initialized but not yet marked. AbsenceCharged is
// set once the absence has been booked against the employee's counters.
type Attendance struct {
	ID             string
	EmployeeID     string
	Date           time.Time
	ClockIn        *TimeOfDay
	ClockOut       *TimeOfDay
	Status         *Status
	AbsenceCharged bool
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// DTO
	EmployeeName *string
}

// StatusForClockIn derives the status recorded by MarkAttendance.
func StatusForClockIn(clockIn *TimeOfDay) Status {
	if clockIn != nil {
		return StatusPresent
	}
	return StatusAbsent
}

// DateOf drops the clock portion of t, keeping the calendar day it falls on
// in t's location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
