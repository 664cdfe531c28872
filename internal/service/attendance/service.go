package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Hamza-Malik05/plant-management-backend/internal/domain/attendance"
	"github.com/Hamza-Malik05/plant-management-backend/internal/domain/employee"
	"github.com/Hamza-Malik05/plant-management-backend/internal/pkg/database"
	"github.com/Hamza-Malik05/plant-management-backend/internal/pkg/sse"
)

const (
	// Topic is the hub topic attendance changes are published on.
	Topic = "attendance"

	EventMarked      = "attendance.marked"
	EventInitialized = "attendance.initialized"
	EventUpdated     = "attendance.updated"
	EventAbsent      = "attendance.absent"
)

// Publisher receives attendance change notifications.
type Publisher interface {
	Publish(topic string, event sse.Event)
}

type AttendanceServiceImpl struct {
	tx             database.Transactor
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	publisher      Publisher
}

func NewAttendanceService(
	tx database.Transactor,
	attendanceRepository attendance.AttendanceRepository,
	employeeRepository employee.EmployeeRepository,
	publisher Publisher,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		tx:             tx,
		attendanceRepo: attendanceRepository,
		employeeRepo:   employeeRepository,
		publisher:      publisher,
	}
}

func (s *AttendanceServiceImpl) publish(event string, data interface{}) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(Topic, sse.Event{Topic: Topic, Event: event, Data: data})
}

// MarkAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) MarkAttendance(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	date, clockIn, clockOut, err := req.Parsed()
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	status := attendance.StatusForClockIn(clockIn)
	record := attendance.Attendance{
		EmployeeID: emp.ID,
		Date:       date,
		ClockIn:    clockIn,
		ClockOut:   clockOut,
		Status:     &status,
	}

	existing, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, emp.ID, date)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to look up attendance: %w", err)
	}

	var saved attendance.Attendance
	if existing == nil {
		saved, err = s.attendanceRepo.Create(ctx, record)
		switch {
		case errors.Is(err, attendance.ErrAttendanceExists):
			// Created concurrently since the lookup above.
			existing, err = s.attendanceRepo.GetByEmployeeAndDate(ctx, emp.ID, date)
			if err != nil {
				return attendance.AttendanceResponse{}, fmt.Errorf("failed to look up attendance: %w", err)
			}
			if existing == nil {
				return attendance.AttendanceResponse{}, attendance.ErrAttendanceExists
			}
		case err != nil:
			return attendance.AttendanceResponse{}, err
		}
	}

	if existing != nil {
		record.ID = existing.ID
		record.AbsenceCharged = existing.AbsenceCharged
		saved, err = s.attendanceRepo.Update(ctx, record)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
	}

	saved.EmployeeName = &emp.FullName
	slog.Info("Attendance marked",
		"attendance_id", saved.ID,
		"employee_id", emp.ID,
		"date", date.Format(time.DateOnly),
		"status", status,
	)

	resp := attendance.NewAttendanceResponse(saved)
	s.publish(EventMarked, resp)
	return resp, nil
}

// GetAttendanceHistory implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetAttendanceHistory(ctx context.Context, employeeID string) ([]attendance.AttendanceResponse, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	records, err := s.attendanceRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return attendance.NewAttendanceResponses(records), nil
}

// InitializeAttendanceForDate implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) InitializeAttendanceForDate(ctx context.Context, date time.Time) ([]attendance.AttendanceResponse, error) {
	date = attendance.DateOf(date)
	day := date.Format(time.DateOnly)
	slog.Info("Initializing attendance records", "date", day)

	var (
		records []attendance.Attendance
		created int
	)
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.attendanceRepo.ListByDate(ctx, date)
		if err != nil {
			return err
		}
		slog.Info("Found existing attendance records", "date", day, "count", len(existing))
		if len(existing) > 0 {
			records = existing
			return nil
		}

		employees, err := s.employeeRepo.List(ctx, employee.EmployeeFilter{})
		if err != nil {
			return err
		}

		pending := make([]attendance.Attendance, 0, len(employees))
		for _, emp := range employees {
			pending = append(pending, attendance.Attendance{EmployeeID: emp.ID, Date: date})
		}

		inserted, err := s.attendanceRepo.CreateMany(ctx, pending)
		if err != nil {
			return err
		}
		created = len(inserted)
		if skipped := len(pending) - created; skipped > 0 {
			slog.Info("Skipped employees that already had a record", "date", day, "count", skipped)
		}

		records, err = s.attendanceRepo.ListByDate(ctx, date)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize attendance for %s: %w", day, err)
	}

	slog.Info("Attendance initialized", "date", day, "created", created, "total", len(records))
	responses := attendance.NewAttendanceResponses(records)
	if created > 0 {
		s.publish(EventInitialized, map[string]interface{}{
			"date":    day,
			"created": created,
		})
	}
	return responses, nil
}

// GetAttendanceByDate implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetAttendanceByDate(ctx context.Context, date time.Time) ([]attendance.AttendanceResponse, error) {
	records, err := s.attendanceRepo.ListByDate(ctx, attendance.DateOf(date))
	if err != nil {
		return nil, err
	}
	return attendance.NewAttendanceResponses(records), nil
}

// GetAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	att, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.NewAttendanceResponse(att), nil
}

// SaveAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) SaveAttendance(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	clockIn, err := attendance.ParseOptionalClock(req.ClockIn)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	clockOut, err := attendance.ParseOptionalClock(req.ClockOut)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	att, err := s.attendanceRepo.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	att.ClockIn = clockIn
	att.ClockOut = clockOut
	att.Status = nil
	if req.Status != nil && *req.Status != "" {
		status := attendance.Status(*req.Status)
		att.Status = &status
	}

	saved, err := s.attendanceRepo.Update(ctx, att)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	saved.EmployeeName = att.EmployeeName

	resp := attendance.NewAttendanceResponse(saved)
	s.publish(EventUpdated, resp)
	return resp, nil
}

// MarkAbsent implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) MarkAbsent(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	var saved attendance.Attendance
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		att, err := s.attendanceRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if att.AbsenceCharged {
			return attendance.ErrAlreadyAbsent
		}

		emp, err := s.employeeRepo.GetByIDForUpdate(ctx, att.EmployeeID)
		if err != nil {
			return err
		}
		slog.Info("Marking employee absent",
			"employee_id", emp.ID,
			"date", att.Date.Format(time.DateOnly),
			"absences", emp.Absences,
			"leaves", emp.Leaves,
		)

		emp.RecordAbsence()
		if emp, err = s.employeeRepo.Update(ctx, emp); err != nil {
			return err
		}
		slog.Info("Updated employee absence counters",
			"employee_id", emp.ID,
			"absences", emp.Absences,
			"leaves", emp.Leaves,
		)

		absent := attendance.StatusAbsent
		att.Status = &absent
		att.AbsenceCharged = true
		if saved, err = s.attendanceRepo.Update(ctx, att); err != nil {
			return err
		}
		saved.EmployeeName = &emp.FullName
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	resp := attendance.NewAttendanceResponse(saved)
	s.publish(EventAbsent, resp)
	return resp, nil
}
