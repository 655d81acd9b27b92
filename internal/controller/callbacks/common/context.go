package common

import (
	"context"

	"github.com/campuscare/clinic_bot/internal/controller/callbacks/callbacktypes"
	"github.com/campuscare/clinic_bot/internal/model"
	"github.com/campuscare/clinic_bot/internal/view"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandlerContext carries everything a callback handler needs so each one
// does not repeat the session lookup and message plumbing.
type HandlerContext struct {
	Ctx        context.Context
	Bot        *bot.Bot
	Callback   *models.CallbackQuery
	Handler    *callbacktypes.Handler
	Message    *models.Message
	Session    *model.Session
	TelegramID int64
	ChatID     int64
}

func NewHandlerContext(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
) *HandlerContext {
	msg := GetMessageFromCallback(callback)
	var chatID int64
	if msg != nil {
		chatID = msg.Chat.ID
	}

	return &HandlerContext{
		Ctx:        ctx,
		Bot:        b,
		Callback:   callback,
		Handler:    h,
		Message:    msg,
		TelegramID: callback.From.ID,
		ChatID:     chatID,
	}
}

// LoadSession fetches the stored clinic session for this chat.
func (hc *HandlerContext) LoadSession() error {
	session, err := hc.Handler.Sessions.Current(hc.Ctx, hc.TelegramID)
	if err != nil {
		return err
	}
	if session == nil {
		return ErrNoSession
	}
	hc.Session = session
	return nil
}

func (hc *HandlerContext) RequireSession() error {
	if hc.Session == nil {
		return hc.LoadSession()
	}
	return nil
}

// RequireAdmin checks the chat is logged in as clinic staff.
func (hc *HandlerContext) RequireAdmin() error {
	if err := hc.RequireSession(); err != nil {
		return err
	}
	if !hc.Session.Role.IsAdmin() {
		return ErrNotAdmin
	}
	return nil
}

// RequireSuperAdmin checks the chat is logged in as the head administrator.
func (hc *HandlerContext) RequireSuperAdmin() error {
	if err := hc.RequireSession(); err != nil {
		return err
	}
	if hc.Session.Role != model.RoleSuperAdmin {
		return ErrNotSuperAdmin
	}
	return nil
}

// RequireStudent checks the chat is logged in as a student.
func (hc *HandlerContext) RequireStudent() error {
	if err := hc.RequireSession(); err != nil {
		return err
	}
	if hc.Session.Role != model.RoleStudent {
		return ErrNotStudent
	}
	return nil
}

// Dashboard returns the chat's open dashboard session, if any.
func (hc *HandlerContext) Dashboard() (*view.Dashboard, bool) {
	return hc.Handler.Dashboards.Get(hc.ChatID)
}

// RequireDashboard returns the open dashboard or ErrNoDashboard when the
// chat has none (for example after a restart wiped the in-memory store).
func (hc *HandlerContext) RequireDashboard() (*view.Dashboard, error) {
	d, ok := hc.Dashboard()
	if !ok {
		return nil, ErrNoDashboard
	}
	return d, nil
}

// Answer acknowledges the callback with a toast.
func (hc *HandlerContext) Answer(text string) {
	AnswerCallback(hc.Ctx, hc.Bot, hc.Callback.ID, text)
}

// AnswerAlert acknowledges the callback with a popup alert.
func (hc *HandlerContext) AnswerAlert(text string) {
	AnswerCallbackAlert(hc.Ctx, hc.Bot, hc.Callback.ID, text)
}

// EditMessage rewrites the callback's message in place.
func (hc *HandlerContext) EditMessage(text string, keyboard *models.InlineKeyboardMarkup) error {
	if hc.Message == nil {
		return ErrNoMessage
	}

	_, err := hc.Bot.EditMessageText(hc.Ctx, &bot.EditMessageTextParams{
		ChatID:      hc.ChatID,
		MessageID:   hc.Message.ID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: keyboard,
	})

	if IsMessageNotModifiedError(err) {
		return nil
	}

	return err
}

// EditMessageText rewrites only the text, dropping any keyboard.
func (hc *HandlerContext) EditMessageText(text string) error {
	return hc.EditMessage(text, nil)
}

// DeleteMessage removes the callback's message.
func (hc *HandlerContext) DeleteMessage() error {
	if hc.Message == nil {
		return ErrNoMessage
	}

	_, err := hc.Bot.DeleteMessage(hc.Ctx, &bot.DeleteMessageParams{
		ChatID:    hc.ChatID,
		MessageID: hc.Message.ID,
	})

	return err
}

// SendMessage sends a fresh message to the chat.
func (hc *HandlerContext) SendMessage(text string, keyboard *models.InlineKeyboardMarkup) error {
	_, err := hc.Bot.SendMessage(hc.Ctx, &bot.SendMessageParams{
		ChatID:      hc.ChatID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: keyboard,
	})

	return err
}

// ClearState drops the chat's dialog state.
func (hc *HandlerContext) ClearState() {
	hc.Handler.StateManager.ClearState(hc.TelegramID)
}

// SetState moves the chat to a dialog state.
func (hc *HandlerContext) SetState(state callbacktypes.UserState) {
	hc.Handler.StateManager.SetState(hc.TelegramID, state)
}

// SetData stores a dialog scratch value.
func (hc *HandlerContext) SetData(key string, value interface{}) {
	hc.Handler.StateManager.SetData(hc.TelegramID, key, value)
}

// GetData reads a dialog scratch value.
func (hc *HandlerContext) GetData(key string) (interface{}, bool) {
	return hc.Handler.StateManager.GetData(hc.TelegramID, key)
}
