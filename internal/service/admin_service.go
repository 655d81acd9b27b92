package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/campuscare/clinic_bot/internal/clinic"
	"github.com/campuscare/clinic_bot/internal/model"
)

// AdminService covers account management. The backend gates every call by
// role; the bot additionally hides these surfaces from non-admins.
type AdminService struct {
	client *clinic.Client
	logger *zap.Logger
}

func NewAdminService(client *clinic.Client, logger *zap.Logger) *AdminService {
	return &AdminService{
		client: client,
		logger: logger,
	}
}

// Users lists all backend accounts.
func (s *AdminService) Users(ctx context.Context, token string) ([]model.User, error) {
	users, err := s.client.ListUsers(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// CreateUser provisions an account with an explicit role (super admin only).
func (s *AdminService) CreateUser(ctx context.Context, token string, req clinic.CreateUserRequest) (string, error) {
	if err := validateStruct(req); err != nil {
		return "", err
	}

	resp, err := s.client.CreateUser(ctx, token, req)
	if err != nil {
		return "", fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("User account created",
		zap.String("email", req.Email),
		zap.String("role", req.Role),
	)
	return resp.Message, nil
}

// DeleteUser removes an account (super admin only; the backend refuses
// self-deletion and reports it via detail).
func (s *AdminService) DeleteUser(ctx context.Context, token string, id int64) (string, error) {
	resp, err := s.client.DeleteUser(ctx, token, id)
	if err != nil {
		return "", fmt.Errorf("delete user: %w", err)
	}

	s.logger.Info("User account deleted", zap.Int64("user_id", id))
	return resp.Message, nil
}
