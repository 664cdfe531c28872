package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/Hamza-Malik05/plant-management-backend/internal/domain/supervisor"
	"github.com/Hamza-Malik05/plant-management-backend/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type supervisorRepository struct {
	db *database.DB
}

func NewSupervisorRepository(db *database.DB) supervisor.SupervisorRepository {
	return &supervisorRepository{db: db}
}

const supervisorColumns = `id, username, full_name, password_hash, created_at, updated_at`

func scanSupervisor(row pgx.Row) (supervisor.Supervisor, error) {
	var s supervisor.Supervisor
	err := row.Scan(&s.ID, &s.Username, &s.FullName, &s.PasswordHash, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

// Create implements supervisor.SupervisorRepository.
func (r *supervisorRepository) Create(ctx context.Context, newSupervisor supervisor.Supervisor) (supervisor.Supervisor, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return supervisor.Supervisor{}, fmt.Errorf("failed to generate supervisor id: %w", err)
	}
	newSupervisor.ID = id.String()

	query := `
		INSERT INTO supervisors (id, username, full_name, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`
	err = q.QueryRow(ctx, query,
		newSupervisor.ID,
		newSupervisor.Username,
		newSupervisor.FullName,
		newSupervisor.PasswordHash,
	).Scan(&newSupervisor.CreatedAt, &newSupervisor.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "") {
			return supervisor.Supervisor{}, supervisor.ErrUsernameExists
		}
		return supervisor.Supervisor{}, fmt.Errorf("failed to create supervisor: %w", err)
	}

	return newSupervisor, nil
}

// GetByID implements supervisor.SupervisorRepository.
func (r *supervisorRepository) GetByID(ctx context.Context, id string) (supervisor.Supervisor, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + supervisorColumns + ` FROM supervisors WHERE id = $1`
	s, err := scanSupervisor(q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return supervisor.Supervisor{}, supervisor.ErrSupervisorNotFound
		}
		return supervisor.Supervisor{}, fmt.Errorf("failed to get supervisor by ID: %w", err)
	}
	return s, nil
}

// GetByUsername implements supervisor.SupervisorRepository.
func (r *supervisorRepository) GetByUsername(ctx context.Context, username string) (supervisor.Supervisor, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + supervisorColumns + ` FROM supervisors WHERE username = $1`
	s, err := scanSupervisor(q.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return supervisor.Supervisor{}, supervisor.ErrSupervisorNotFound
		}
		return supervisor.Supervisor{}, fmt.Errorf("failed to get supervisor by username: %w", err)
	}
	return s, nil
}

// List implements supervisor.SupervisorRepository.
func (r *supervisorRepository) List(ctx context.Context) ([]supervisor.Supervisor, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+supervisorColumns+` FROM supervisors ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("failed to list supervisors: %w", err)
	}
	defer rows.Close()

	supervisors := make([]supervisor.Supervisor, 0)
	for rows.Next() {
		s, err := scanSupervisor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan supervisor: %w", err)
		}
		supervisors = append(supervisors, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate supervisors: %w", err)
	}

	return supervisors, nil
}
