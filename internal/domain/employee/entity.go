package employee

import "time"

type Employee struct {
	ID           string
	SupervisorID *string
	EmployeeCode string
	FullName     string
	// Absences counts days marked absent.
	Absences int
	// Leaves is the remaining leave allowance. It is allowed to go negative.
	Leaves    int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RecordAbsence applies one absent day to the counters.
func (e *Employee) RecordAbsence() {
	e.Absences++
	e.Leaves--
}
