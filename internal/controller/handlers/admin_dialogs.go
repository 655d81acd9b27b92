package handlers

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/campuscare/clinic_bot/internal/controller/callbacks/common"
	"github.com/campuscare/clinic_bot/internal/controller/state"
	"github.com/campuscare/clinic_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// handleRejectNoteStep takes the mandatory note and sends the rejection. The
// student sees the note on their dashboard, so empty notes are refused.
func (h *Handlers) handleRejectNoteStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	note := strings.TrimSpace(update.Message.Text)

	if note == "" {
		h.sendMessage(ctx, b, chatID,
			"❌ A note is required for a rejection. Try again or send /cancel to abort.")
		return
	}
	if len([]rune(note)) > NoteMaxLength {
		h.sendMessage(ctx, b, chatID,
			fmt.Sprintf("❌ Please keep the note under %d characters.", NoteMaxLength))
		return
	}

	session, ok := h.requireAdmin(ctx, b, update)
	if !ok {
		h.stateManager.ClearState(telegramID)
		return
	}

	idData, ok := h.stateManager.GetData(telegramID, "appointment_id")
	appointmentID, _ := idData.(int64)
	if !ok || appointmentID == 0 {
		h.stateManager.ClearState(telegramID)
		h.sendError(ctx, b, chatID, "❌ The appointment reference got lost. Open the dashboard and try again.")
		return
	}

	if err := h.appointments.Reject(ctx, session.Token, appointmentID, note); err != nil {
		h.stateManager.ClearState(telegramID)
		h.handleAPIError(ctx, b, chatID, telegramID, err, "reject appointment")
		return
	}

	h.stateManager.ClearState(telegramID)

	h.logger.Info("Appointment rejected",
		zap.Int64("telegram_id", telegramID),
		zap.Int64("appointment_id", appointmentID))

	h.sendMessage(ctx, b, chatID,
		fmt.Sprintf("🚫 Appointment #%d rejected. The student sees your note on their dashboard.", appointmentID))
	h.refreshDashboard(ctx, b, chatID, session)
}

// handleSearchNameStep applies the typed student name filter and redraws the
// dashboard message in place.
func (h *Handlers) handleSearchNameStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	term := strings.TrimSpace(update.Message.Text)

	if term == "" {
		h.sendMessage(ctx, b, chatID,
			"❌ Send part of a student's name, or /cancel to abort.")
		return
	}
	if runes := []rune(term); len(runes) > SearchTermMaxLength {
		term = string(runes[:SearchTermMaxLength])
	}

	if _, ok := h.requireAdmin(ctx, b, update); !ok {
		h.stateManager.ClearState(telegramID)
		return
	}

	d, ok := h.dashboards.Get(chatID)
	if !ok {
		h.stateManager.ClearState(telegramID)
		h.sendError(ctx, b, chatID, "❌ The list is stale. Open it again with /appointments")
		return
	}

	h.stateManager.ClearState(telegramID)
	d.Filter.Search = term
	d.Filter.Page = 0

	if d.MessageID != 0 {
		text, kb := common.BuildAdminDashboardScreen(d)
		_, err := b.EditMessageText(ctx, &bot.EditMessageTextParams{
			ChatID:      chatID,
			MessageID:   d.MessageID,
			Text:        text,
			ParseMode:   models.ParseModeHTML,
			ReplyMarkup: kb,
		})
		if err != nil && !common.IsMessageNotModifiedError(err) {
			h.logger.Warn("Failed to redraw dashboard after search", zap.Error(err))
		}
	}

	h.sendMessage(ctx, b, chatID, fmt.Sprintf("🔎 Showing appointments for students matching %q.", term))
}

// handleCreateUserNameStep takes the full name for the account dialog.
func (h *Handlers) handleCreateUserNameStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	name := strings.TrimSpace(update.Message.Text)

	if name == "" {
		h.sendMessage(ctx, b, update.Message.Chat.ID,
			"❌ The name cannot be empty. Try again or send /cancel to abort.")
		return
	}

	h.stateManager.SetData(telegramID, "name", name)
	h.stateManager.SetState(telegramID, state.StateCreateUserEmail)

	h.sendMessage(ctx, b, update.Message.Chat.ID,
		"📧 Step 2 of 4\n\nSend the email address for the new account.")
}

// handleCreateUserEmailStep takes the email for the account dialog.
func (h *Handlers) handleCreateUserEmailStep(ctx context.Context, b *bot.Bot, update *models.Update) {
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
	h.stateManager.SetState(telegramID, state.StateCreateUserPassword)

	h.sendMessage(ctx, b, update.Message.Chat.ID,
		fmt.Sprintf("🔑 Step 3 of 4\n\n"+
			"Send an initial password of at least %d characters. The message is "+
			"deleted as soon as it is read.", PasswordMinLength))
}

// handleCreateUserPasswordStep takes the password and moves to the role pick.
func (h *Handlers) handleCreateUserPasswordStep(ctx context.Context, b *bot.Bot, update *models.Update) {
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

	h.stateManager.SetData(telegramID, "password", password)
	h.stateManager.SetState(telegramID, state.StateCreateUserRole)

	roles := []struct {
		label string
		value model.Role
	}{
		{"🎓 Student", model.RoleStudent},
		{"🧑‍⚕️ Clinic admin", model.RoleAdmin},
		{"👑 Head admin", model.RoleSuperAdmin},
	}

	rows := make([][]models.InlineKeyboardButton, 0, len(roles)+1)
	for _, r := range roles {
		rows = append(rows, []models.InlineKeyboardButton{
			{Text: r.label, CallbackData: "usr_role:" + string(r.value)},
		})
	}
	rows = append(rows, []models.InlineKeyboardButton{
		{Text: "❌ Cancel", CallbackData: "usr_list"},
	})

	h.sendScreen(ctx, b, chatID,
		"🎭 <b>Step 4 of 4</b>\n\nPick the account's role.",
		&models.InlineKeyboardMarkup{InlineKeyboard: rows})
}
