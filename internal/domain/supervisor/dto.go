package supervisor

import (
	"strings"

	"github.com/Hamza-Malik05/plant-management-backend/internal/pkg/validator"
)

type CreateSupervisorRequest struct {
	Username string `json:"username" validate:"required,username"`
	FullName string `json:"full_name" validate:"required,max=100"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

func (r *CreateSupervisorRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	r.FullName = strings.TrimSpace(r.FullName)
	return validator.Struct(r)
}

type SupervisorResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FullName  string `json:"full_name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func NewSupervisorResponse(s Supervisor) SupervisorResponse {
	return SupervisorResponse{
		ID:        s.ID,
		Username:  s.Username,
		FullName:  s.FullName,
		CreatedAt: s.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt: s.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
