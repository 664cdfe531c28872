package supervisor

import "context"

type SupervisorRepository interface {
	GetByID(ctx context.Context, id string) (Supervisor, error)
	GetByUsername(ctx context.Context, username string) (Supervisor, error)
	List(ctx context.Context) ([]Supervisor, error)
	Create(ctx context.Context, newSupervisor Supervisor) (Supervisor, error)
}
