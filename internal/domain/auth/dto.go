package auth

import (
	"strings"

	"github.com/Hamza-Malik05/plant-management-backend/internal/pkg/validator"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	return validator.Struct(r)
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresAt    int64  `json:"expires_at"`
	SupervisorID string `json:"supervisor_id"`
	Username     string `json:"username"`
}
