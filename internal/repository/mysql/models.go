package mysql

import (
	"time"

	"github.com/Hamza-Malik05/plant-management-backend/internal/domain/attendance"
	"github.com/Hamza-Malik05/plant-management-backend/internal/domain/employee"
	"github.com/Hamza-Malik05/plant-management-backend/internal/domain/supervisor"
	"gorm.io/gorm"
)

type supervisorModel struct {
	ID           string    `gorm:"type:char(36);primaryKey"`
	Username     string    `gorm:"size:50;not null;uniqueIndex"`
	FullName     string    `gorm:"size:100;not null"`
	PasswordHash string    `gorm:"size:255;not null"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

func (supervisorModel) TableName() string { return "supervisors" }

type employeeModel struct {
	ID           string           `gorm:"type:char(36);primaryKey"`
	SupervisorID *string          `gorm:"type:char(36);index"`
	Supervisor   *supervisorModel `gorm:"foreignKey:SupervisorID;constraint:OnDelete:SET NULL"`
	EmployeeCode string           `gorm:"size:9;not null;uniqueIndex"`
	FullName     string           `gorm:"size:100;not null"`
	Absences     int              `gorm:"not null;default:0"`
	Leaves       int              `gorm:"not null;default:0"`
	CreatedAt    time.Time        `gorm:"not null"`
	UpdatedAt    time.Time        `gorm:"not null"`
}

func (employeeModel) TableName() string { return "employees" }

type attendanceModel struct {
	ID             string                `gorm:"type:char(36);primaryKey"`
	EmployeeID     string                `gorm:"type:char(36);not null;uniqueIndex:uq_attendance_employee_date,priority:1"`
	Employee       *employeeModel        `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE"`
	Date           time.Time             `gorm:"type:date;not null;uniqueIndex:uq_attendance_employee_date,priority:2;index:idx_attendances_date"`
	ClockIn        *attendance.TimeOfDay `gorm:"type:time"`
	ClockOut       *attendance.TimeOfDay `gorm:"type:time"`
	Status         *string               `gorm:"size:10"`
	AbsenceCharged bool                  `gorm:"not null;default:false"`
	CreatedAt      time.Time             `gorm:"not null"`
	UpdatedAt      time.Time             `gorm:"not null"`
}

func (attendanceModel) TableName() string { return "attendances" }

// AutoMigrate creates or updates the MySQL schema, including the
// (employee_id, date) unique index.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&supervisorModel{}, &employeeModel{}, &attendanceModel{})
}

func toSupervisorModel(s supervisor.Supervisor) supervisorModel {
	return supervisorModel{
		ID:           s.ID,
		Username:     s.Username,
		FullName:     s.FullName,
		PasswordHash: s.PasswordHash,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func (m supervisorModel) toDomain() supervisor.Supervisor {
	return supervisor.Supervisor{
		ID:           m.ID,
		Username:     m.Username,
		FullName:     m.FullName,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toEmployeeModel(e employee.Employee) employeeModel {
	return employeeModel{
		ID:           e.ID,
		SupervisorID: e.SupervisorID,
		EmployeeCode: e.EmployeeCode,
		FullName:     e.FullName,
		Absences:     e.Absences,
		Leaves:       e.Leaves,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func (m employeeModel) toDomain() employee.Employee {
	return employee.Employee{
		ID:           m.ID,
		SupervisorID: m.SupervisorID,
		EmployeeCode: m.EmployeeCode,
		FullName:     m.FullName,
		Absences:     m.Absences,
		Leaves:       m.Leaves,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toAttendanceModel(a attendance.Attendance) attendanceModel {
	var status *string
	if a.Status != nil {
		s := string(*a.Status)
		status = &s
	}
	return attendanceModel{
		ID:             a.ID,
		EmployeeID:     a.EmployeeID,
		Date:           attendance.DateOf(a.Date),
		ClockIn:        a.ClockIn,
		ClockOut:       a.ClockOut,
		Status:         status,
		AbsenceCharged: a.AbsenceCharged,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func (m attendanceModel) toDomain() attendance.Attendance {
	att := attendance.Attendance{
		ID:             m.ID,
		EmployeeID:     m.EmployeeID,
		Date:           attendance.DateOf(m.Date),
		ClockIn:        m.ClockIn,
		ClockOut:       m.ClockOut,
		AbsenceCharged: m.AbsenceCharged,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	if m.Status != nil {
		s := attendance.Status(*m.Status)
		att.Status = &s
	}
	if m.Employee != nil {
		name := m.Employee.FullName
		att.EmployeeName = &name
	}
	return att
}
