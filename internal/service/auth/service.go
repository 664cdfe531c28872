package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Hamza-Malik05/plant-management-backend/internal/domain/auth"
	"github.com/Hamza-Malik05/plant-management-backend/internal/domain/supervisor"
	"github.com/Hamza-Malik05/plant-management-backend/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	supervisor.SupervisorRepository
	jwt.Service
}

func NewAuthService(supervisorRepository supervisor.SupervisorRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		SupervisorRepository: supervisorRepository,
		Service:              jwtService,
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	sv, err := a.SupervisorRepository.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, supervisor.ErrSupervisorNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to get supervisor by username: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(sv.PasswordHash), []byte(req.Password)); err != nil {
		slog.Warn("Login rejected", "username", req.Username)
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := a.Service.GenerateAccessToken(sv.ID, sv.Username)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return auth.LoginResponse{
		AccessToken:  token,
		TokenType:    "Bearer",
		ExpiresAt:    expiresAt,
		SupervisorID: sv.ID,
		Username:     sv.Username,
	}, nil
}
