package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campuscare/clinic_bot/internal/model"
)

// SessionRepository stores backend logins per Telegram chat so users stay
// signed in across bot restarts. One row per chat.
type SessionRepository struct {
	pool *pgxpool.Pool
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

// Upsert saves a fresh login, replacing whatever session the chat had.
func (r *SessionRepository) Upsert(ctx context.Context, session *model.Session) error {
	query := `
		INSERT INTO sessions (telegram_id, token, role, user_id, full_name)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (telegram_id) DO UPDATE
		SET token = EXCLUDED.token,
		    role = EXCLUDED.role,
		    user_id = EXCLUDED.user_id,
		    full_name = EXCLUDED.full_name,
		    updated_at = NOW()
		RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		session.TelegramID,
		session.Token,
		session.Role,
		session.UserID,
		session.FullName,
	).Scan(&session.CreatedAt, &session.UpdatedAt)

	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}

	return nil
}

// GetByTelegramID returns the chat's session, or nil when the chat has never
// logged in (or logged out).
func (r *SessionRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*model.Session, error) {
	query := `
		SELECT telegram_id, token, role, user_id, full_name, created_at, updated_at
		FROM sessions
		WHERE telegram_id = $1
	`

	var session model.Session
	err := r.pool.QueryRow(ctx, query, telegramID).Scan(
		&session.TelegramID,
		&session.Token,
		&session.Role,
		&session.UserID,
		&session.FullName,
		&session.CreatedAt,
		&session.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get session by telegram id: %w", err)
	}

	return &session, nil
}

// Delete drops the chat's session. Used on /logout and whenever the backend
// stops accepting the stored token.
func (r *SessionRepository) Delete(ctx context.Context, telegramID int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE telegram_id = $1`, telegramID)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
