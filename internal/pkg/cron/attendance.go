package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Hamza-Malik05/plant-management-backend/internal/domain/attendance"
)

const (
	JobInitializeAttendance = "initialize_attendance"
	JobAbsenceSweep         = "absence_sweep"
)

type AttendanceJobs struct {
	attendanceSvc attendance.AttendanceService
	loc           *time.Location
	now           func() time.Time
}

func NewAttendanceJobs(attendanceSvc attendance.AttendanceService, loc *time.Location) *AttendanceJobs {
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceJobs{
		attendanceSvc: attendanceSvc,
		loc:           loc,
		now:           time.Now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler, initSpec, sweepSpec string) error {
	if err := scheduler.AddJob(JobInitializeAttendance, initSpec, j.InitializeToday); err != nil {
		return err
	}
	return scheduler.AddJob(JobAbsenceSweep, sweepSpec, j.SweepAbsences)
}

// today is the current plant-local calendar date.
func (j *AttendanceJobs) today() time.Time {
	local := j.now().In(j.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// InitializeToday creates the unset records for the current plant date.
func (j *AttendanceJobs) InitializeToday(ctx context.Context) error {
	date := j.today()
	slog.Info("Cron: Initializing attendance", "date", date.Format(time.DateOnly))

	records, err := j.attendanceSvc.InitializeAttendanceForDate(ctx, date)
	if err != nil {
		return fmt.Errorf("failed to initialize attendance: %w", err)
	}

	slog.Info("Cron: Attendance initialized", "date", date.Format(time.DateOnly), "records", len(records))
	return nil
}

// SweepAbsences books an absence for every record of the previous plant
// date that is still unset, or marked absent without having been charged.
func (j *AttendanceJobs) SweepAbsences(ctx context.Context) error {
	date := j.today().AddDate(0, 0, -1)
	day := date.Format(time.DateOnly)
	slog.Info("Cron: Starting absence sweep", "date", day)

	records, err := j.attendanceSvc.GetAttendanceByDate(ctx, date)
	if err != nil {
		return fmt.Errorf("failed to get attendance for %s: %w", day, err)
	}

	marked := 0
	for _, rec := range records {
		if rec.AbsenceCharged || (rec.Status != nil && *rec.Status != string(attendance.StatusAbsent)) {
			continue
		}
		if _, err := j.attendanceSvc.MarkAbsent(ctx, rec.ID); err != nil {
			slog.Error("Cron: Failed to mark absent",
				"attendance_id", rec.ID,
				"employee_id", rec.EmployeeID,
				"error", err)
			continue
		}
		marked++
	}

	slog.Info("Cron: Absence sweep completed", "date", day, "marked", marked)
	return nil
}
