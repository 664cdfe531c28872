package attendance

import (
	"strings"
	"time"

	"github.com/Hamza-Malik05/plant-management-backend/internal/pkg/validator"
)

type MarkAttendanceRequest struct {
	EmployeeID string  `json:"employee_id" validate:"required"`
	Date       string  `json:"date" validate:"required,date"`
	ClockIn    *string `json:"clock_in,omitempty" validate:"omitempty,clock"`
	ClockOut   *string `json:"clock_out,omitempty" validate:"omitempty,clock"`
}

func (r *MarkAttendanceRequest) Validate() error {
	r.ClockIn = nilIfBlank(r.ClockIn)
	r.ClockOut = nilIfBlank(r.ClockOut)
	return validator.Struct(r)
}

// Parsed converts the validated string fields.
func (r *MarkAttendanceRequest) Parsed() (date time.Time, clockIn, clockOut *TimeOfDay, err error) {
	date, err = time.Parse(time.DateOnly, r.Date)
	if err != nil {
		return time.Time{}, nil, nil, err
	}
	if clockIn, err = ParseOptionalClock(r.ClockIn); err != nil {
		return time.Time{}, nil, nil, err
	}
	if clockOut, err = ParseOptionalClock(r.ClockOut); err != nil {
		return time.Time{}, nil, nil, err
	}
	return date, clockIn, clockOut, nil
}

type InitializeAttendanceRequest struct {
	Date string `json:"date" validate:"required,date"`
}

func (r *InitializeAttendanceRequest) Validate() error {
	return validator.Struct(r)
}

type UpdateAttendanceRequest struct {
	ID       string  `json:"-" validate:"required"`
	ClockIn  *string `json:"clock_in,omitempty" validate:"omitempty,clock"`
	ClockOut *string `json:"clock_out,omitempty" validate:"omitempty,clock"`
	// Status is "present", "absent", or empty/null to clear it.
	Status *string `json:"status,omitempty" validate:"omitempty,oneof=present absent"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	r.ClockIn = nilIfBlank(r.ClockIn)
	r.ClockOut = nilIfBlank(r.ClockOut)
	r.Status = nilIfBlank(r.Status)
	return validator.Struct(r)
}

// nilIfBlank lets optional fields be cleared with "" as well as null.
func nilIfBlank(s *string) *string {
	if s == nil || validator.IsEmpty(*s) {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	return &trimmed
}

// ParseOptionalClock treats nil and blank input as "no time recorded".
func ParseOptionalClock(s *string) (*TimeOfDay, error) {
	if s == nil || validator.IsEmpty(*s) {
		return nil, nil
	}
	t, err := ParseTimeOfDay(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

type AttendanceResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	EmployeeName   *string `json:"employee_name,omitempty"`
	Date           string  `json:"date"`
	ClockIn        *string `json:"clock_in"`
	ClockOut       *string `json:"clock_out"`
	Status         *string `json:"status"`
	AbsenceCharged bool    `json:"absence_charged"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

func NewAttendanceResponse(a Attendance) AttendanceResponse {
	var status *string
	if a.Status != nil {
		s := string(*a.Status)
		status = &s
	}
	return AttendanceResponse{
		ID:             a.ID,
		EmployeeID:     a.EmployeeID,
		EmployeeName:   a.EmployeeName,
		Date:           a.Date.Format(time.DateOnly),
		ClockIn:        FormatTimeOfDay(a.ClockIn),
		ClockOut:       FormatTimeOfDay(a.ClockOut),
		Status:         status,
		AbsenceCharged: a.AbsenceCharged,
		CreatedAt:      a.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:      a.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

func NewAttendanceResponses(records []Attendance) []AttendanceResponse {
	out := make([]AttendanceResponse, 0, len(records))
	for _, r := range records {
		out = append(out, NewAttendanceResponse(r))
	}
	return out
}
