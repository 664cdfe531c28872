package supervisor

import (
	"context"
	"fmt"

	"github.com/Hamza-Malik05/plant-management-backend/internal/domain/supervisor"
	"golang.org/x/crypto/bcrypt"
)

type SupervisorServiceImpl struct {
	supervisor.SupervisorRepository
}

func NewSupervisorService(supervisorRepository supervisor.SupervisorRepository) supervisor.SupervisorService {
	return &SupervisorServiceImpl{
		SupervisorRepository: supervisorRepository,
	}
}

// CreateSupervisor implements supervisor.SupervisorService.
func (s *SupervisorServiceImpl) CreateSupervisor(ctx context.Context, req supervisor.CreateSupervisorRequest) (supervisor.SupervisorResponse, error) {
	if err := req.Validate(); err != nil {
		return supervisor.SupervisorResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return supervisor.SupervisorResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.SupervisorRepository.Create(ctx, supervisor.Supervisor{
		Username:     req.Username,
		FullName:     req.FullName,
		PasswordHash: string(hash),
	})
	if err != nil {
		return supervisor.SupervisorResponse{}, err
	}

	return supervisor.NewSupervisorResponse(created), nil
}

// GetSupervisor implements supervisor.SupervisorService.
func (s *SupervisorServiceImpl) GetSupervisor(ctx context.Context, id string) (supervisor.SupervisorResponse, error) {
	found, err := s.SupervisorRepository.GetByID(ctx, id)
	if err != nil {
		return supervisor.SupervisorResponse{}, err
	}
	return supervisor.NewSupervisorResponse(found), nil
}

// ListSupervisors implements supervisor.SupervisorService.
func (s *SupervisorServiceImpl) ListSupervisors(ctx context.Context) ([]supervisor.SupervisorResponse, error) {
	supervisors, err := s.SupervisorRepository.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]supervisor.SupervisorResponse, 0, len(supervisors))
	for _, sv := range supervisors {
		responses = append(responses, supervisor.NewSupervisorResponse(sv))
	}
	return responses, nil
}
