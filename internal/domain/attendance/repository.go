package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
// (employee_id, date) is unique in every implementation.
type AttendanceRepository interface {
	// GetByID retrieves attendance by ID
	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByIDForUpdate is GetByID holding a row lock until the surrounding
	// transaction ends
	GetByIDForUpdate(ctx context.Context, id string) (Attendance, error)

	// GetByEmployeeAndDate returns nil when the employee has no record for date
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	// ListByEmployee retrieves all records of one employee, newest first
	ListByEmployee(ctx context.Context, employeeID string) ([]Attendance, error)

	// ListByDate retrieves all records for a calendar day
	ListByDate(ctx context.Context, date time.Time) ([]Attendance, error)

	// Create creates a new attendance record
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// CreateMany inserts records, silently skipping any whose (employee, date)
	// already exists. Only inserted rows are returned.
	CreateMany(ctx context.Context, records []Attendance) ([]Attendance, error)

	// Update updates clock times and status of an existing record
	Update(ctx context.Context, attendance Attendance) (Attendance, error)
}
