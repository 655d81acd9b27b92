package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// handleAssistantTurn forwards one typed message to the clinic assistant and
// relays the reply. When the assistant reports that it booked or changed
// something, the chat's dashboard message is re-fetched too.
func (h *Handlers) handleAssistantTurn(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	session, ok := h.requireStudent(ctx, b, update)
	if !ok {
		h.stateManager.ClearState(telegramID)
		return
	}

	b.SendChatAction(ctx, &bot.SendChatActionParams{
		ChatID: chatID,
		Action: models.ChatActionTyping,
	})

	reply, reload, err := h.assistant.SendTurn(ctx, chatID, session.Token, update.Message.Text)
	if err != nil {
		h.handleAPIError(ctx, b, chatID, telegramID, err, "assistant turn")
		return
	}

	kb := &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{
				{Text: "👋 Leave chat", CallbackData: "chat_stop"},
				{Text: "♻️ Reset", CallbackData: "chat_reset"},
			},
		},
	}
	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        reply,
		ReplyMarkup: kb,
	}); err != nil {
		h.logger.Error("Failed to send assistant reply",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		return
	}

	if reload {
		h.refreshDashboard(ctx, b, chatID, session)
	}
}
