package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Hamza-Malik05/plant-management-backend/internal/domain/attendance"
	"github.com/Hamza-Malik05/plant-management-backend/internal/domain/auth"
	"github.com/Hamza-Malik05/plant-management-backend/internal/domain/employee"
	"github.com/Hamza-Malik05/plant-management-backend/internal/domain/supervisor"
	"github.com/Hamza-Malik05/plant-management-backend/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid username or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")

	// Supervisor
	case errors.Is(err, supervisor.ErrSupervisorNotFound):
		NotFound(w, "Supervisor not found")
	case errors.Is(err, supervisor.ErrUsernameExists):
		Conflict(w, "Username already registered")

	// Employee
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")

	// Attendance
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAttendanceExists):
		Conflict(w, "Attendance already recorded for this employee and date")
	case errors.Is(err, attendance.ErrAlreadyAbsent):
		Conflict(w, "Attendance record is already marked absent")

	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
