// Package auth holds the callback handlers for signing in and out. The typed
// credential steps live in the text dialogs; the buttons here only open and
// close them.
package auth

import (
	"context"

	"github.com/campuscare/clinic_bot/internal/controller/callbacks/callbacktypes"
	"github.com/campuscare/clinic_bot/internal/controller/callbacks/common"
	"github.com/campuscare/clinic_bot/internal/controller/callbacks/common/keyboard"
	"github.com/campuscare/clinic_bot/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleLoginStart (auth_login) opens the login dialog at the email step.
func HandleLoginStart(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)

	if err := hc.LoadSession(); err == nil {
		text, kb := common.BuildMainMenuScreen(hc.Session)
		if err := hc.EditMessage(text, kb); err != nil {
			h.Logger.Error("Failed to show main menu", zap.Error(err))
		}
		hc.Answer("✅ You are already signed in")
		return
	}

	hc.ClearState()
	hc.SetState(callbacktypes.UserState(state.StateLoginEmail))

	text := "🔐 <b>Sign in</b> (step 1 of 2)\n\n" +
		"Send the email address of your clinic account."
	kb := keyboard.NewBuilder().
		Row(keyboard.CancelButton("main_menu")).
		Build()

	if err := hc.EditMessage(text, kb); err != nil {
		h.Logger.Error("Failed to open login dialog", zap.Error(err))
	}
	hc.Answer("")
}

// HandleRegisterStart (auth_register) opens the student registration dialog
// at the name step.
func HandleRegisterStart(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)

	if err := hc.LoadSession(); err == nil {
		text, kb := common.BuildMainMenuScreen(hc.Session)
		if err := hc.EditMessage(text, kb); err != nil {
			h.Logger.Error("Failed to show main menu", zap.Error(err))
		}
		hc.Answer("✅ You are already signed in")
		return
	}

	hc.ClearState()
	hc.SetState(callbacktypes.UserState(state.StateRegisterName))

	text := "📝 <b>Create a student account</b> (step 1 of 3)\n\n" +
		"Send your full name as the clinic should record it."
	kb := keyboard.NewBuilder().
		Row(keyboard.CancelButton("main_menu")).
		Build()

	if err := hc.EditMessage(text, kb); err != nil {
		h.Logger.Error("Failed to open registration dialog", zap.Error(err))
	}
	hc.Answer("")
}

// HandleLogout (auth_logout) asks for confirmation before the session is
// dropped.
func HandleLogout(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		kb := keyboard.NewBuilder().
			AddRows(keyboard.YesNoButtons("auth_logout_yes", "main_menu")).
			Build()
		if err := hc.EditMessage("🚪 <b>Sign out of CampusCare Clinic?</b>", kb); err != nil {
			hc.Handler.Logger.Error("Failed to show logout confirmation", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleLogoutConfirm (auth_logout_yes) drops the session, the dashboard and
// any running dialog, then shows the welcome screen.
func HandleLogoutConfirm(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		if err := hc.Handler.Sessions.Logout(hc.Ctx, hc.TelegramID); err != nil {
			common.HandleError(hc, err, "logout")
			return
		}

		hc.ClearState()
		hc.Handler.Dashboards.Drop(hc.ChatID)

		hc.Handler.Logger.Info("User signed out",
			zap.Int64("telegram_id", hc.TelegramID))

		text, kb := common.BuildWelcomeScreen()
		if err := hc.EditMessage(text, kb); err != nil {
			hc.Handler.Logger.Error("Failed to show welcome screen", zap.Error(err))
		}
		hc.Answer("👋 Signed out")
	})
}
