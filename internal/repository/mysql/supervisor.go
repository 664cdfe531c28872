package mysql

import (
	"context"
	"errors"
	"fmt"

	"github.com/Hamza-Malik05/plant-management-backend/internal/domain/supervisor"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type supervisorRepository struct {
	db *gorm.DB
}

func NewSupervisorRepository(db *gorm.DB) supervisor.SupervisorRepository {
	return &supervisorRepository{db: db}
}

// Create implements supervisor.SupervisorRepository.
func (r *supervisorRepository) Create(ctx context.Context, newSupervisor supervisor.Supervisor) (supervisor.Supervisor, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return supervisor.Supervisor{}, fmt.Errorf("failed to generate supervisor id: %w", err)
	}
	newSupervisor.ID = id.String()

	m := toSupervisorModel(newSupervisor)
	if err := conn(ctx, r.db).Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return supervisor.Supervisor{}, supervisor.ErrUsernameExists
		}
		return supervisor.Supervisor{}, fmt.Errorf("failed to create supervisor: %w", err)
	}
	return m.toDomain(), nil
}

// GetByID implements supervisor.SupervisorRepository.
func (r *supervisorRepository) GetByID(ctx context.Context, id string) (supervisor.Supervisor, error) {
	var m supervisorModel
	if err := conn(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return supervisor.Supervisor{}, supervisor.ErrSupervisorNotFound
		}
		return supervisor.Supervisor{}, fmt.Errorf("failed to get supervisor by ID: %w", err)
	}
	return m.toDomain(), nil
}

// GetByUsername implements supervisor.SupervisorRepository.
func (r *supervisorRepository) GetByUsername(ctx context.Context, username string) (supervisor.Supervisor, error) {
	var m supervisorModel
	if err := conn(ctx, r.db).Where("username = ?", username).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return supervisor.Supervisor{}, supervisor.ErrSupervisorNotFound
		}
		return supervisor.Supervisor{}, fmt.Errorf("failed to get supervisor by username: %w", err)
	}
	return m.toDomain(), nil
}

// List implements supervisor.SupervisorRepository.
func (r *supervisorRepository) List(ctx context.Context) ([]supervisor.Supervisor, error) {
	var models []supervisorModel
	if err := conn(ctx, r.db).Order("username").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list supervisors: %w", err)
	}

	supervisors := make([]supervisor.Supervisor, 0, len(models))
	for _, m := range models {
		supervisors = append(supervisors, m.toDomain())
	}
	return supervisors, nil
}
