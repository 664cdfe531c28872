package attendance

import (
	"context"
	"time"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// MarkAttendance records clock times for an employee on a date
	MarkAttendance(ctx context.Context, req MarkAttendanceRequest) (AttendanceResponse, error)

	// GetAttendanceHistory retrieves every record of one employee
	GetAttendanceHistory(ctx context.Context, employeeID string) ([]AttendanceResponse, error)

	// InitializeAttendanceForDate creates unset records for every employee on date
	InitializeAttendanceForDate(ctx context.Context, date time.Time) ([]AttendanceResponse, error)

	// GetAttendanceByDate retrieves all records for a date
	GetAttendanceByDate(ctx context.Context, date time.Time) ([]AttendanceResponse, error)

	// GetAttendance retrieves a single attendance record by ID
	GetAttendance(ctx context.Context, id string) (AttendanceResponse, error)

	// SaveAttendance corrects clock times and status of an existing record
	SaveAttendance(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)

	// MarkAbsent marks the record absent and charges the employee one leave day
	MarkAbsent(ctx context.Context, id string) (AttendanceResponse, error)
}
