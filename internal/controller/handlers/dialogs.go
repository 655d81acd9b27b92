package handlers

import (
	"context"
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/campuscare/clinic_bot/internal/clinic"
	"github.com/campuscare/clinic_bot/internal/controller/callbacks/common"
	"github.com/campuscare/clinic_bot/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// handleLoginEmailStep takes the email for the login dialog.
func (h *Handlers) handleLoginEmailStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	email := strings.TrimSpace(update.Message.Text)

	emailRegex := regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	if !emailRegex.MatchString(email) {
		h.sendMessage(ctx, b, update.Message.Chat.ID,
			"❌ That does not look like an email address.\n\n"+
				"Try again or send /cancel to abort.")
		return
	}

	h.stateManager.SetData(telegramID, "email", email)
	h.stateManager.SetState(telegramID, state.StateLoginPassword)

	h.sendMessage(ctx, b, update.Message.Chat.ID,
		"🔑 Step 2 of 2\n\n"+
			"Send your password. The message is deleted as soon as it is read.")
}

// handleLoginPasswordStep closes the login dialog. The password message is
// deleted before anything else happens.
func (h *Handlers) handleLoginPasswordStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	password := strings.TrimSpace(update.Message.Text)

	h.deleteMessage(ctx, b, chatID, update.Message.ID)

	emailData, ok := h.stateManager.GetData(telegramID, "email")
	email, _ := emailData.(string)
	if !ok || email == "" {
		h.stateManager.ClearState(telegramID)
		h.sendError(ctx, b, chatID, "❌ The login details got lost. Please start again with /login")
		return
	}

	session, err := h.sessions.Login(ctx, telegramID, email, password)
	if err != nil {
		h.stateManager.ClearState(telegramID)
		if clinic.IsUnauthorized(err) {
			h.logger.Info("Login rejected", zap.Int64("telegram_id", telegramID))
			h.sendError(ctx, b, chatID, "❌ Wrong email or password. Start again with /login")
			return
		}
		h.handleAPIError(ctx, b, chatID, telegramID, err, "login")
		return
	}

	h.stateManager.ClearState(telegramID)

	h.logger.Info("User signed in",
		zap.Int64("telegram_id", telegramID),
		zap.String("role", string(session.Role)))

	text, kb := common.BuildMainMenuScreen(session)
	h.sendScreen(ctx, b, chatID, "✅ <b>Signed in!</b>\n\n"+text, kb)
}

// handleRegisterNameStep takes the full name for the registration dialog.
func (h *Handlers) handleRegisterNameStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	name := strings.TrimSpace(update.Message.Text)

	if name == "" {
		h.sendMessage(ctx, b, update.Message.Chat.ID,
			"❌ The name cannot be empty. Try again or send /cancel to abort.")
		return
	}

	h.stateManager.SetData(telegramID, "name", name)
	h.stateManager.SetState(telegramID, state.StateRegisterEmail)

	h.sendMessage(ctx, b, update.Message.Chat.ID,
		"📧 Step 2 of 3\n\nSend the email address for your account.")
}

// handleRegisterEmailStep takes the email for the registration dialog.
func (h *Handlers) handleRegisterEmailStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	email := strings.TrimSpace(update.Message.Text)

	emailRegex := regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	if !emailRegex.MatchString(email) {
		h.sendMessage(ctx, b, update.Message.Chat.ID,
			"❌ That does not look like an email address.\n\n"+
				"Try again or send /cancel to abort.")
		return
	}

	h.stateManager.SetData(telegramID, "email", email)
	h.stateManager.SetState(telegramID, state.StateRegisterPassword)

	h.sendMessage(ctx, b, update.Message.Chat.ID,
		fmt.Sprintf("🔑 Step 3 of 3\n\n"+
			"Send a password of at least %d characters. The message is deleted "+
			"as soon as it is read.", PasswordMinLength))
}

// handleRegisterPasswordStep closes the registration dialog. New accounts are
// always students; staff accounts come from the head administrator.
func (h *Handlers) handleRegisterPasswordStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	password := strings.TrimSpace(update.Message.Text)

	h.deleteMessage(ctx, b, chatID, update.Message.ID)

	if len(password) < PasswordMinLength {
		h.sendMessage(ctx, b, chatID,
			fmt.Sprintf("❌ The password needs at least %d characters. Send another one or /cancel to abort.",
				PasswordMinLength))
		return
	}

	nameData, _ := h.stateManager.GetData(telegramID, "name")
	emailData, _ := h.stateManager.GetData(telegramID, "email")
	name, _ := nameData.(string)
	email, _ := emailData.(string)
	if name == "" || email == "" {
		h.stateManager.ClearState(telegramID)
		h.sendError(ctx, b, chatID, "❌ The registration details got lost. Please start again with /register")
		return
	}

	if _, err := h.sessions.Register(ctx, name, email, password); err != nil {
		h.stateManager.ClearState(telegramID)
		h.logger.Error("Registration failed",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err))
		if apiErr, ok := clinic.AsAPIError(err); ok && apiErr.Detail != "" {
			h.sendError(ctx, b, chatID, fmt.Sprintf("⚠️ %s. You can start again with /register", apiErr.Detail))
			return
		}
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	h.stateManager.ClearState(telegramID)

	h.logger.Info("Student registered", zap.Int64("telegram_id", telegramID))

	text := fmt.Sprintf(
		"✅ <b>Registration successful!</b>\n\n"+
			"Your student account <b>%s</b> is ready. Sign in to start booking.",
		html.EscapeString(email))
	kb := &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: "🔑 Log in", CallbackData: "auth_login"}},
		},
	}
	h.sendScreen(ctx, b, chatID, text, kb)
}

// handleBookingDateStep takes a typed date for the booking dialog. The quick
// picks go through buttons instead.
func (h *Handlers) handleBookingDateStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	dateText := strings.TrimSpace(update.Message.Text)

	if _, err := time.Parse("2006-01-02", dateText); err != nil {
		h.sendMessage(ctx, b, chatID,
			"❌ Dates look like YYYY-MM-DD, for example 2026-09-15.\n\n"+
				"Try again or send /cancel to abort.")
		return
	}

	if dateText < time.Now().Format("2006-01-02") {
		h.sendMessage(ctx, b, chatID,
			"❌ That date has already passed. Pick today or a later date.")
		return
	}

	h.stateManager.SetData(telegramID, "date", dateText)
	h.stateManager.SetState(telegramID, state.StateBookingTime)

	text, kb := common.BuildBookingTimeScreen(dateText)
	h.sendScreen(ctx, b, chatID, text, kb)
}

// handleBookingTimeStep takes a typed time for the booking dialog.
func (h *Handlers) handleBookingTimeStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	timeText := strings.TrimSpace(update.Message.Text)

	timeRegex := regexp.MustCompile(`^([0-1][0-9]|2[0-3]):([0-5][0-9])$`)
	if !timeRegex.MatchString(timeText) {
		h.sendMessage(ctx, b, chatID,
			"❌ Times look like HH:MM in 24-hour format, for example 09:30 or 14:45.\n\n"+
				"Try again or send /cancel to abort.")
		return
	}

	h.stateManager.SetData(telegramID, "time", timeText)
	h.stateManager.SetState(telegramID, state.StateBookingUrgency)

	text, kb := common.BuildBookingUrgencyScreen()
	h.sendScreen(ctx, b, chatID, text, kb)
}

// handleBookingReasonStep takes the reason for the visit and moves to the
// confirmation screen.
func (h *Handlers) handleBookingReasonStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	reason := strings.TrimSpace(update.Message.Text)

	if reason == "" {
		h.sendMessage(ctx, b, chatID,
			"❌ The clinic needs a reason for the visit. Try again or send /cancel to abort.")
		return
	}
	if len([]rune(reason)) > ReasonMaxLength {
		h.sendMessage(ctx, b, chatID,
			fmt.Sprintf("❌ Please keep the reason under %d characters.", ReasonMaxLength))
		return
	}

	h.stateManager.SetData(telegramID, "reason", reason)

	data := h.stateManager.GetAllData(telegramID)
	service, _ := data["service"].(string)
	date, _ := data["date"].(string)
	tm, _ := data["time"].(string)
	urgency, _ := data["urgency"].(string)

	if service == "" || date == "" || tm == "" || urgency == "" {
		h.stateManager.ClearState(telegramID)
		h.sendError(ctx, b, chatID, "❌ The booking details got lost. Please start over with /book")
		return
	}

	h.stateManager.SetState(telegramID, state.StateBookingConfirm)

	text, kb := common.BuildBookingConfirmScreen(service, date, tm, urgency, reason)
	h.sendScreen(ctx, b, chatID, text, kb)
}
