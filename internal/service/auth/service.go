package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/timecheck-hr/attendance-backend-go/internal/domain/auth"
	"github.com/timecheck-hr/attendance-backend-go/internal/domain/worker"
	"github.com/timecheck-hr/attendance-backend-go/internal/pkg/jwt"
)

type AuthServiceImpl struct {
	jwtService jwt.Service
	worker.WorkerRepository
}

func NewAuthService(jwtService jwt.Service, workerRepo worker.WorkerRepository) auth.AuthService {
	return &AuthServiceImpl{jwtService: jwtService, WorkerRepository: workerRepo}
}

// Login implements auth.AuthService.
func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	w, err := s.WorkerRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, worker.ErrWorkerNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, err
	}

	if !w.Active {
		return auth.LoginResponse{}, auth.ErrAccountInactive
	}
	if w.PasswordHash == nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*w.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(w.ID, w.Email, string(w.Role))
	if err != nil {
		return auth.LoginResponse{}, err
	}

	return auth.LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		WorkerID:    w.ID,
		Email:       w.Email,
		Role:        string(w.Role),
		FullName:    w.FullName(),
	}, nil
}
