package employee

import (
	"context"
	"fmt"

	"github.com/Hamza-Malik05/plant-management-backend/internal/domain/employee"
	"github.com/Hamza-Malik05/plant-management-backend/internal/domain/supervisor"
)

type EmployeeServiceImpl struct {
	employee.EmployeeRepository
	supervisor.SupervisorRepository
	defaultLeaves int
}

func NewEmployeeService(employeeRepository employee.EmployeeRepository, supervisorRepository supervisor.SupervisorRepository, defaultLeaves int) employee.EmployeeService {
	return &EmployeeServiceImpl{
		EmployeeRepository:   employeeRepository,
		SupervisorRepository: supervisorRepository,
		defaultLeaves:        defaultLeaves,
	}
}

func (s *EmployeeServiceImpl) checkSupervisor(ctx context.Context, supervisorID *string) error {
	if supervisorID == nil {
		return nil
	}
	if _, err := s.SupervisorRepository.GetByID(ctx, *supervisorID); err != nil {
		return err
	}
	return nil
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := s.checkSupervisor(ctx, req.SupervisorID); err != nil {
		return employee.EmployeeResponse{}, err
	}

	leaves := s.defaultLeaves
	if req.Leaves != nil {
		leaves = *req.Leaves
	}

	created, err := s.EmployeeRepository.Create(ctx, employee.Employee{
		SupervisorID: req.SupervisorID,
		EmployeeCode: req.EmployeeCode,
		FullName:     req.FullName,
		Leaves:       leaves,
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(created), nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	e, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(e), nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) ([]employee.EmployeeResponse, error) {
	employees, err := s.EmployeeRepository.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, employee.NewEmployeeResponse(e))
	}
	return responses, nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	existing, err := s.EmployeeRepository.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := s.checkSupervisor(ctx, req.SupervisorID); err != nil {
		return employee.EmployeeResponse{}, err
	}

	existing.SupervisorID = req.SupervisorID
	existing.EmployeeCode = req.EmployeeCode
	existing.FullName = req.FullName
	if req.Absences != nil {
		existing.Absences = *req.Absences
	}
	if req.Leaves != nil {
		existing.Leaves = *req.Leaves
	}

	updated, err := s.EmployeeRepository.Update(ctx, existing)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to update employee: %w", err)
	}
	return employee.NewEmployeeResponse(updated), nil
}
