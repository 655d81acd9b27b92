package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/campuscare/clinic_bot/internal/clinic"
	"github.com/campuscare/clinic_bot/internal/model"
	"github.com/campuscare/clinic_bot/internal/repository"
)

// SessionService handles login, registration and the stored session tied to
// each Telegram chat. Credentials are verified by the backend; the bot only
// keeps the issued token.
type SessionService struct {
	sessionRepo *repository.SessionRepository
	client      *clinic.Client
	logger      *zap.Logger
}

func NewSessionService(sessionRepo *repository.SessionRepository, client *clinic.Client, logger *zap.Logger) *SessionService {
	return &SessionService{
		sessionRepo: sessionRepo,
		client:      client,
		logger:      logger,
	}
}

// Login exchanges credentials for a token and binds it to the chat.
func (s *SessionService) Login(ctx context.Context, telegramID int64, email, password string) (*model.Session, error) {
	req := clinic.LoginRequest{Email: email, Password: password}
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	resp, err := s.client.Login(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	session := &model.Session{
		TelegramID: telegramID,
		Token:      resp.Token,
		Role:       model.Role(resp.Role),
		UserID:     resp.UserID,
		FullName:   resp.FullName,
	}
	if err := s.sessionRepo.Upsert(ctx, session); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	s.logger.Info("User logged in",
		zap.Int64("telegram_id", telegramID),
		zap.String("role", resp.Role),
		zap.Int64("user_id", resp.UserID),
	)

	return session, nil
}

// Register creates a student account. The user still logs in afterwards.
func (s *SessionService) Register(ctx context.Context, fullName, email, password string) (string, error) {
	req := clinic.RegisterRequest{FullName: fullName, Email: email, Password: password}
	if err := validateStruct(req); err != nil {
		return "", err
	}

	resp, err := s.client.Register(ctx, req)
	if err != nil {
		return "", fmt.Errorf("register: %w", err)
	}

	s.logger.Info("New account registered", zap.String("email", email))
	return resp.Message, nil
}

// Current returns the chat's stored session, nil when not logged in.
func (s *SessionService) Current(ctx context.Context, telegramID int64) (*model.Session, error) {
	return s.sessionRepo.GetByTelegramID(ctx, telegramID)
}

// Logout clears the stored session on user request.
func (s *SessionService) Logout(ctx context.Context, telegramID int64) error {
	if err := s.sessionRepo.Delete(ctx, telegramID); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	s.logger.Info("User logged out", zap.Int64("telegram_id", telegramID))
	return nil
}

// Invalidate drops a session the backend no longer accepts. The caller then
// routes the user back to /login.
func (s *SessionService) Invalidate(ctx context.Context, telegramID int64) error {
	if err := s.sessionRepo.Delete(ctx, telegramID); err != nil {
		return fmt.Errorf("invalidate session: %w", err)
	}
	s.logger.Warn("Session invalidated by backend", zap.Int64("telegram_id", telegramID))
	return nil
}
