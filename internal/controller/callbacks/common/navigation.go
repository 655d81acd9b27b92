package common

import (
	"context"
	"errors"

	"github.com/campuscare/clinic_bot/internal/controller/callbacks/callbacktypes"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleMainMenu (main_menu) drops any running dialog and shows the menu for
// the chat's role, or the welcome screen when nobody is signed in.
func HandleMainMenu(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := NewHandlerContext(ctx, b, callback, h)
	if hc.Message == nil {
		hc.AnswerAlert(ErrorMessage(ErrNoMessage))
		return
	}

	hc.ClearState()

	if err := hc.LoadSession(); err != nil && !errors.Is(err, ErrNoSession) {
		h.Logger.Warn("Failed to load session for main menu",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Error(err))
	}

	var text string
	var kb *models.InlineKeyboardMarkup
	if hc.Session != nil {
		text, kb = BuildMainMenuScreen(hc.Session)
	} else {
		text, kb = BuildWelcomeScreen()
	}

	if err := hc.EditMessage(text, kb); err != nil {
		h.Logger.Error("Failed to show main menu", zap.Error(err))
	}
	hc.Answer("")
}

// HandleNoop answers inert buttons such as the page indicator.
func HandleNoop(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	AnswerCallback(ctx, b, callback.ID, "")
}
