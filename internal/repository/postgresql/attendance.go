package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Hamza-Malik05/plant-management-backend/internal/domain/attendance"
	"github.com/Hamza-Malik05/plant-management-backend/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const attendanceUniqueConstraint = "uq_attendance_employee_date"

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceSelect = `
	SELECT a.id, a.employee_id, a.date, a.clock_in, a.clock_out, a.status,
		   a.absence_charged, a.created_at, a.updated_at, e.full_name AS employee_name
	FROM attendances a
	LEFT JOIN employees e ON e.id = a.employee_id
`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var (
		att      attendance.Attendance
		clockIn  pgtype.Time
		clockOut pgtype.Time
		status   *string
	)
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.Date, &clockIn, &clockOut, &status,
		&att.AbsenceCharged, &att.CreatedAt, &att.UpdatedAt, &att.EmployeeName,
	)
	if err != nil {
		return attendance.Attendance{}, err
	}
	att.ClockIn = fromPgTime(clockIn)
	att.ClockOut = fromPgTime(clockOut)
	att.Status = toStatus(status)
	return att, nil
}

func collectAttendances(rows pgx.Rows) ([]attendance.Attendance, error) {
	defer rows.Close()

	records := make([]attendance.Attendance, 0)
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendances: %w", err)
	}
	return records, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	att, err := scanAttendance(q.QueryRow(ctx, attendanceSelect+` WHERE a.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by ID: %w", err)
	}
	return att, nil
}

// GetByIDForUpdate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByIDForUpdate(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	att, err := scanAttendance(q.QueryRow(ctx, attendanceSelect+` WHERE a.id = $1 FOR UPDATE OF a`, id))
	if err != nil {
		if isNoRows(err) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to lock attendance: %w", err)
	}
	return att, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := attendanceSelect + ` WHERE a.employee_id = $1 AND a.date = $2 LIMIT 1`
	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, attendance.DateOf(date)))
	if err != nil {
		if isNoRows(err) {
			return nil, nil // No existing attendance found
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}
	return &att, nil
}

// ListByEmployee implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string) ([]attendance.Attendance, error) {
	if !isUUID(employeeID) {
		return []attendance.Attendance{}, nil
	}
	q := GetQuerier(ctx, a.db)

	rows, err := q.Query(ctx, attendanceSelect+` WHERE a.employee_id = $1 ORDER BY a.date DESC`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by employee: %w", err)
	}
	return collectAttendances(rows)
}

// ListByDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByDate(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	rows, err := q.Query(ctx, attendanceSelect+` WHERE a.date = $1 ORDER BY e.employee_code`, attendance.DateOf(date))
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by date: %w", err)
	}
	return collectAttendances(rows)
}

const insertAttendance = `
	INSERT INTO attendances (id, employee_id, date, clock_in, clock_out, status, absence_charged)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
`

func insertArgs(att attendance.Attendance) []interface{} {
	return []interface{}{
		att.ID,
		att.EmployeeID,
		attendance.DateOf(att.Date),
		toPgTime(att.ClockIn),
		toPgTime(att.ClockOut),
		fromStatus(att.Status),
		att.AbsenceCharged,
	}
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to generate attendance id: %w", err)
	}
	newAttendance.ID = id.String()
	newAttendance.Date = attendance.DateOf(newAttendance.Date)

	err = q.QueryRow(ctx, insertAttendance+` RETURNING created_at, updated_at`, insertArgs(newAttendance)...).
		Scan(&newAttendance.CreatedAt, &newAttendance.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, attendanceUniqueConstraint) {
			return attendance.Attendance{}, attendance.ErrAttendanceExists
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return newAttendance, nil
}

// CreateMany implements attendance.AttendanceRepository.
func (a *attendanceRepository) CreateMany(ctx context.Context, records []attendance.Attendance) ([]attendance.Attendance, error) {
	if len(records) == 0 {
		return []attendance.Attendance{}, nil
	}
	q := GetQuerier(ctx, a.db)

	query := insertAttendance + `
		ON CONFLICT ON CONSTRAINT ` + attendanceUniqueConstraint + ` DO NOTHING
		RETURNING created_at, updated_at
	`

	batch := &pgx.Batch{}
	for i := range records {
		id, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("failed to generate attendance id: %w", err)
		}
		records[i].ID = id.String()
		records[i].Date = attendance.DateOf(records[i].Date)
		batch.Queue(query, insertArgs(records[i])...)
	}

	results := q.SendBatch(ctx, batch)
	defer results.Close()

	inserted := make([]attendance.Attendance, 0, len(records))
	for _, rec := range records {
		err := results.QueryRow().Scan(&rec.CreatedAt, &rec.UpdatedAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				// Another writer already created this (employee, date).
				continue
			}
			return nil, fmt.Errorf("failed to insert attendance for employee %s: %w", rec.EmployeeID, err)
		}
		inserted = append(inserted, rec)
	}

	return inserted, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET clock_in = $2,
			clock_out = $3,
			status = $4,
			absence_charged = $5,
			updated_at = NOW()
		WHERE id = $1
		RETURNING employee_id, date, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		att.ID,
		toPgTime(att.ClockIn),
		toPgTime(att.ClockOut),
		fromStatus(att.Status),
		att.AbsenceCharged,
	).Scan(&att.EmployeeID, &att.Date, &att.CreatedAt, &att.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	return att, nil
}

func toPgTime(t *attendance.TimeOfDay) pgtype.Time {
	if t == nil {
		return pgtype.Time{}
	}
	return pgtype.Time{Microseconds: t.Duration().Microseconds(), Valid: true}
}

func fromPgTime(t pgtype.Time) *attendance.TimeOfDay {
	if !t.Valid {
		return nil
	}
	tod := attendance.TimeOfDay(time.Duration(t.Microseconds) * time.Microsecond)
	return &tod
}

func toStatus(s *string) *attendance.Status {
	if s == nil {
		return nil
	}
	status := attendance.Status(*s)
	return &status
}

func fromStatus(s *attendance.Status) *string {
	if s == nil {
		return nil
	}
	str := string(*s)
	return &str
}
