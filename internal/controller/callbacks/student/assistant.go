package student

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

// HandleStartChat (chat_start) switches the chat into assistant mode. Every
// text message from here on is forwarded to the clinic assistant until the
// student leaves with the button or /cancel.
func HandleStartChat(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithStudent(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.ClearState()
		hc.SetState(callbacktypes.UserState(state.StateAssistantChat))

		text, kb := common.BuildAssistantScreen()
		if err := hc.EditMessage(text, kb); err != nil {
			hc.Handler.Logger.Error("Failed to open assistant chat", zap.Error(err))
		}
		hc.Answer("💬 Assistant is listening")
	})
}

// HandleStopChat (chat_stop) leaves assistant mode.
func HandleStopChat(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithStudent(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.ClearState()

		kb := keyboard.NewBuilder().
			Row(keyboard.Button("📅 My appointments", "appt_list")).
			AddMainMenuButton().
			Build()
		if err := hc.EditMessage("👋 Assistant chat closed. Your conversation is kept until you reset it.", kb); err != nil {
			hc.Handler.Logger.Error("Failed to close assistant chat", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleResetChat (chat_reset) wipes the assistant's memory of this chat and
// stays in assistant mode.
func HandleResetChat(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithStudent(ctx, b, callback, h, func(hc *common.HandlerContext) {
		if err := hc.Handler.Assistant.Reset(hc.Ctx, hc.ChatID); err != nil {
			common.HandleError(hc, err, "reset assistant conversation")
			return
		}
		common.LogAndAnswer(hc, "Assistant conversation reset", "♻️ Conversation cleared")
	})
}
