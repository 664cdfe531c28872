package mysql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Hamza-Malik05/plant-management-backend/internal/domain/attendance"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type attendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (a *attendanceRepository) withEmployee(ctx context.Context) *gorm.DB {
	return conn(ctx, a.db).Preload("Employee")
}

func toDomainList(models []attendanceModel) []attendance.Attendance {
	records := make([]attendance.Attendance, 0, len(models))
	for _, m := range models {
		records = append(records, m.toDomain())
	}
	return records
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	var m attendanceModel
	if err := a.withEmployee(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by ID: %w", err)
	}
	return m.toDomain(), nil
}

// GetByIDForUpdate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByIDForUpdate(ctx context.Context, id string) (attendance.Attendance, error) {
	var m attendanceModel
	err := a.withEmployee(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to lock attendance: %w", err)
	}
	return m.toDomain(), nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	var m attendanceModel
	err := a.withEmployee(ctx).
		Where("employee_id = ? AND date = ?", employeeID, attendance.DateOf(date)).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}
	att := m.toDomain()
	return &att, nil
}

// ListByEmployee implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string) ([]attendance.Attendance, error) {
	var models []attendanceModel
	err := a.withEmployee(ctx).
		Where("employee_id = ?", employeeID).
		Order("date DESC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by employee: %w", err)
	}
	return toDomainList(models), nil
}

// ListByDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByDate(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	var models []attendanceModel
	err := a.withEmployee(ctx).
		Joins("JOIN employees ON employees.id = attendances.employee_id").
		Where("attendances.date = ?", attendance.DateOf(date)).
		Order("employees.employee_code").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by date: %w", err)
	}
	return toDomainList(models), nil
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to generate attendance id: %w", err)
	}
	newAttendance.ID = id.String()

	m := toAttendanceModel(newAttendance)
	if err := conn(ctx, a.db).Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return attendance.Attendance{}, attendance.ErrAttendanceExists
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}
	return m.toDomain(), nil
}

// CreateMany implements attendance.AttendanceRepository.
func (a *attendanceRepository) CreateMany(ctx context.Context, records []attendance.Attendance) ([]attendance.Attendance, error) {
	if len(records) == 0 {
		return []attendance.Attendance{}, nil
	}

	models := make([]attendanceModel, 0, len(records))
	ids := make([]string, 0, len(records))
	for _, rec := range records {
		id, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("failed to generate attendance id: %w", err)
		}
		rec.ID = id.String()
		models = append(models, toAttendanceModel(rec))
		ids = append(ids, rec.ID)
	}

	db := conn(ctx, a.db)
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to insert attendance records: %w", err)
	}

	// Rows skipped on conflict keep their generated IDs but were never
	// written, so read back what actually landed.
	var inserted []attendanceModel
	if err := db.Preload("Employee").Where("id IN ?", ids).Find(&inserted).Error; err != nil {
		return nil, fmt.Errorf("failed to load inserted attendance records: %w", err)
	}
	return toDomainList(inserted), nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	db := conn(ctx, a.db)

	var existing attendanceModel
	if err := db.Where("id = ?", att.ID).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to load attendance for update: %w", err)
	}

	m := toAttendanceModel(att)
	err := db.Model(&existing).Updates(map[string]interface{}{
		"clock_in":        m.ClockIn,
		"clock_out":       m.ClockOut,
		"status":          m.Status,
		"absence_charged": m.AbsenceCharged,
	}).Error
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	return a.GetByID(ctx, att.ID)
}
