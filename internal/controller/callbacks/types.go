package callbacks

import (
	"context"

	"github.com/campuscare/clinic_bot/internal/controller/callbacks/callbacktypes"
	"github.com/campuscare/clinic_bot/internal/service"
	"github.com/campuscare/clinic_bot/internal/view"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Handler wraps callbacktypes.Handler with the update entry point.
type Handler struct {
	*callbacktypes.Handler
}

// StateManager is the dialog state dependency of the callback handlers.
type StateManager = callbacktypes.StateManager

// UserState mirrors the dialog state type for callers that only import this
// package.
type UserState = callbacktypes.UserState

// NewHandler builds the callback handler with its service dependencies.
func NewHandler(
	sessions *service.SessionService,
	appointments *service.AppointmentService,
	admin *service.AdminService,
	assistant *service.AssistantService,
	checkin *service.CheckinService,
	dashboards *view.Sessions,
	stateManager callbacktypes.StateManager,
	logger *zap.Logger,
) *Handler {
	inner := &callbacktypes.Handler{
		Sessions:     sessions,
		Appointments: appointments,
		Admin:        admin,
		Assistant:    assistant,
		Checkin:      checkin,
		Dashboards:   dashboards,
		StateManager: stateManager,
		Logger:       logger,
	}
	return &Handler{Handler: inner}
}

// HandleCallbackQuery is the bot's entry point for every button press.
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	callback := update.CallbackQuery

	h.Logger.Info("Callback received",
		zap.String("data", callback.Data),
		zap.Int64("telegram_id", callback.From.ID),
	)

	Route(ctx, b, callback, h.Handler)
}
