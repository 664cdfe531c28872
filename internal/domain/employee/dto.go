package employee

import (
	"strings"

	"github.com/Hamza-Malik05/plant-management-backend/internal/pkg/validator"
)

type EmployeeFilter struct {
	SupervisorID *string
}

type CreateEmployeeRequest struct {
	SupervisorID *string `json:"supervisor_id,omitempty" validate:"omitempty,uuid"`
	EmployeeCode string  `json:"employee_code" validate:"required,employee_code"`
	FullName     string  `json:"full_name" validate:"required,max=100"`
	Leaves       *int    `json:"leaves,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	r.EmployeeCode = strings.TrimSpace(r.EmployeeCode)
	r.FullName = strings.TrimSpace(r.FullName)
	return validator.Struct(r)
}

type UpdateEmployeeRequest struct {
	ID           string  `json:"-" validate:"required"`
	SupervisorID *string `json:"supervisor_id,omitempty" validate:"omitempty,uuid"`
	EmployeeCode string  `json:"employee_code" validate:"required,employee_code"`
	FullName     string  `json:"full_name" validate:"required,max=100"`
	Absences     *int    `json:"absences,omitempty" validate:"omitempty,min=0"`
	Leaves       *int    `json:"leaves,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	r.EmployeeCode = strings.TrimSpace(r.EmployeeCode)
	r.FullName = strings.TrimSpace(r.FullName)
	return validator.Struct(r)
}

type EmployeeResponse struct {
	ID           string  `json:"id"`
	SupervisorID *string `json:"supervisor_id"`
	EmployeeCode string  `json:"employee_code"`
	FullName     string  `json:"full_name"`
	Absences     int     `json:"absences"`
	Leaves       int     `json:"leaves"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:           e.ID,
		SupervisorID: e.SupervisorID,
		EmployeeCode: e.EmployeeCode,
		FullName:     e.FullName,
		Absences:     e.Absences,
		Leaves:       e.Leaves,
		CreatedAt:    e.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:    e.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
