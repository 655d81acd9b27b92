package common

import (
	"context"

	"github.com/campuscare/clinic_bot/internal/clinic"
	"github.com/campuscare/clinic_bot/internal/controller/callbacks/callbacktypes"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// WithSession builds a HandlerContext with a loaded session. On failure it
// answers the user itself and never calls the handler.
func WithSession(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	handler func(*HandlerContext),
) {
	hc := NewHandlerContext(ctx, b, callback, h)

	if err := hc.LoadSession(); err != nil {
		h.Logger.Warn("Session check failed",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Error(err))
		hc.AnswerAlert(ErrorMessage(err))
		return
	}

	handler(hc)
}

// WithAdmin is WithSession plus a staff role check.
func WithAdmin(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	handler func(*HandlerContext),
) {
	hc := NewHandlerContext(ctx, b, callback, h)

	if err := hc.RequireAdmin(); err != nil {
		h.Logger.Warn("Admin check failed",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Error(err))
		hc.AnswerAlert(ErrorMessage(err))
		return
	}

	handler(hc)
}

// WithSuperAdmin is WithSession plus a head-administrator role check.
func WithSuperAdmin(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	handler func(*HandlerContext),
) {
	hc := NewHandlerContext(ctx, b, callback, h)

	if err := hc.RequireSuperAdmin(); err != nil {
		h.Logger.Warn("Super admin check failed",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Error(err))
		hc.AnswerAlert(ErrorMessage(err))
		return
	}

	handler(hc)
}

// WithStudent is WithSession plus a student role check.
func WithStudent(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	handler func(*HandlerContext),
) {
	hc := NewHandlerContext(ctx, b, callback, h)

	if err := hc.RequireStudent(); err != nil {
		h.Logger.Warn("Student check failed",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Error(err))
		hc.AnswerAlert(ErrorMessage(err))
		return
	}

	handler(hc)
}

// HandleError logs a failed operation and answers with the user-facing
// wording. A 401 also drops the stored session so the next interaction asks
// for a fresh login instead of replaying the dead token.
func HandleError(hc *HandlerContext, err error, operation string) {
	hc.Handler.Logger.Error("Operation failed",
		zap.String("operation", operation),
		zap.Int64("telegram_id", hc.TelegramID),
		zap.Error(err))

	if clinic.IsUnauthorized(err) {
		if dropErr := hc.Handler.Sessions.Invalidate(hc.Ctx, hc.TelegramID); dropErr != nil {
			hc.Handler.Logger.Error("Failed to drop expired session",
				zap.Int64("telegram_id", hc.TelegramID),
				zap.Error(dropErr))
		}
	}

	hc.AnswerAlert(ErrorMessage(err))
}

// LogAndAnswer logs a completed action and answers with a toast.
func LogAndAnswer(hc *HandlerContext, message string, answer string) {
	hc.Handler.Logger.Info(message,
		zap.Int64("telegram_id", hc.TelegramID),
		zap.Int64("user_id", hc.Session.UserID))
	hc.Answer(answer)
}
