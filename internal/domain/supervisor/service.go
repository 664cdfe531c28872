package supervisor

import "context"

// SupervisorService defines business logic for supervisor accounts
type SupervisorService interface {
	// CreateSupervisor registers a supervisor with a bcrypt-hashed password
	CreateSupervisor(ctx context.Context, req CreateSupervisorRequest) (SupervisorResponse, error)

	// GetSupervisor retrieves a single supervisor by ID
	GetSupervisor(ctx context.Context, id string) (SupervisorResponse, error)

	// ListSupervisors lists all supervisors ordered by username
	ListSupervisors(ctx context.Context) ([]SupervisorResponse, error)
}
