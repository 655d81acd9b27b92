package handlers

import (
	"context"

	"github.com/campuscare/clinic_bot/internal/clinic"
	"github.com/campuscare/clinic_bot/internal/controller/callbacks/common"
	"github.com/campuscare/clinic_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// requireSession loads the chat's clinic session. When nobody is signed in it
// sends the login prompt itself and returns false.
func (h *Handlers) requireSession(ctx context.Context, b *bot.Bot, update *models.Update) (*model.Session, bool) {
	if update.Message == nil {
		return nil, false
	}

	telegramID := update.Message.From.ID
	session, err := h.sessions.Current(ctx, telegramID)
	if err != nil {
		h.logger.Error("Failed to load session",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, "📡 Could not check your session right now. Please try again")
		return nil, false
	}

	if session == nil {
		text, kb := common.BuildLoginPromptScreen()
		h.sendScreen(ctx, b, update.Message.Chat.ID, text, kb)
		return nil, false
	}

	return session, true
}

// requireStudent is requireSession plus a student role check.
func (h *Handlers) requireStudent(ctx context.Context, b *bot.Bot, update *models.Update) (*model.Session, bool) {
	session, ok := h.requireSession(ctx, b, update)
	if !ok {
		return nil, false
	}

	if session.Role != model.RoleStudent {
		h.sendError(ctx, b, update.Message.Chat.ID, "⛔ This command is for students only.")
		return nil, false
	}

	return session, true
}

// requireAdmin is requireSession plus a staff role check.
func (h *Handlers) requireAdmin(ctx context.Context, b *bot.Bot, update *models.Update) (*model.Session, bool) {
	session, ok := h.requireSession(ctx, b, update)
	if !ok {
		return nil, false
	}

	if !session.Role.IsAdmin() {
		h.sendError(ctx, b, update.Message.Chat.ID, "⛔ This command is for clinic staff only.")
		return nil, false
	}

	return session, true
}

// requireSuperAdmin is requireSession plus a head-administrator check.
func (h *Handlers) requireSuperAdmin(ctx context.Context, b *bot.Bot, update *models.Update) (*model.Session, bool) {
	session, ok := h.requireSession(ctx, b, update)
	if !ok {
		return nil, false
	}

	if session.Role != model.RoleSuperAdmin {
		h.sendError(ctx, b, update.Message.Chat.ID, "⛔ Only the head administrator can manage accounts.")
		return nil, false
	}

	return session, true
}

// handleAPIError answers a failed clinic call with the shared user-facing
// wording. A 401 also drops the stored session so the next interaction asks
// for a fresh login.
func (h *Handlers) handleAPIError(ctx context.Context, b *bot.Bot, chatID, telegramID int64, err error, operation string) {
	h.logger.Error("Operation failed",
		zap.String("operation", operation),
		zap.Int64("telegram_id", telegramID),
		zap.Error(err))

	if clinic.IsUnauthorized(err) {
		if dropErr := h.sessions.Invalidate(ctx, telegramID); dropErr != nil {
			h.logger.Error("Failed to drop expired session",
				zap.Int64("telegram_id", telegramID),
				zap.Error(dropErr))
		}
	}

	h.sendError(ctx, b, chatID, common.ErrorMessage(err))
}
