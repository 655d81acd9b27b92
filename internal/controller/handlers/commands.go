package handlers

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/campuscare/clinic_bot/internal/controller/callbacks/common"
	"github.com/campuscare/clinic_bot/internal/controller/state"
	"github.com/campuscare/clinic_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleStart greets the chat: the main menu for a signed-in account, the
// welcome screen otherwise.
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	h.stateManager.ClearState(telegramID)

	session, err := h.sessions.Current(ctx, telegramID)
	if err != nil {
		h.logger.Error("Failed to load session on /start",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err))
	}

	var text string
	var kb *models.InlineKeyboardMarkup
	if session != nil {
		text, kb = common.BuildMainMenuScreen(session)
	} else {
		text, kb = common.BuildWelcomeScreen()
	}

	h.sendScreen(ctx, b, update.Message.Chat.ID, text, kb)
}

// HandleHelp lists the commands for both roles.
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	helpText := "📚 CampusCare Clinic commands:\n\n" +
		"/start - Main menu\n" +
		"/login - Sign in with your clinic account\n" +
		"/register - Create a student account\n" +
		"/logout - Sign out\n" +
		"/cancel - Abort the current dialog\n\n" +
		"For students:\n" +
		"/appointments - Your appointment dashboard\n" +
		"/book - Book a new appointment\n" +
		"/assistant - Chat with the booking assistant\n\n" +
		"For clinic staff:\n" +
		"/appointments - The clinic-wide dashboard\n" +
		"/scan - QR check-in scanner\n" +
		"/users - Manage accounts (head admin)"

	h.sendMessage(ctx, b, update.Message.Chat.ID, helpText)
}

// HandleCancel aborts whatever dialog the chat is in.
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	if currentState == state.StateNone {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "❌ Nothing to cancel.")
		return
	}

	h.stateManager.ClearState(telegramID)
	h.sendMessage(ctx, b, update.Message.Chat.ID, "✅ Canceled.\n\nUse /help to see the available commands.")
}

// HandleLogin opens the login dialog at the email step.
func (h *Handlers) HandleLogin(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID

	session, err := h.sessions.Current(ctx, telegramID)
	if err == nil && session != nil {
		text, kb := common.BuildMainMenuScreen(session)
		h.sendScreen(ctx, b, update.Message.Chat.ID, "✅ You are already signed in.\n\n"+text, kb)
		return
	}

	h.stateManager.ClearState(telegramID)
	h.stateManager.SetState(telegramID, state.StateLoginEmail)

	h.sendMessage(ctx, b, update.Message.Chat.ID,
		"🔐 Sign in (step 1 of 2)\n\n"+
			"Send the email address of your clinic account.\n"+
			"Send /cancel to abort.")
}

// HandleRegister opens the student registration dialog at the name step.
func (h *Handlers) HandleRegister(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID

	session, err := h.sessions.Current(ctx, telegramID)
	if err == nil && session != nil {
		h.sendMessage(ctx, b, update.Message.Chat.ID,
			"✅ You are already signed in. Use /logout first to register a different account.")
		return
	}

	h.stateManager.ClearState(telegramID)
	h.stateManager.SetState(telegramID, state.StateRegisterName)

	h.sendMessage(ctx, b, update.Message.Chat.ID,
		"📝 Create a student account (step 1 of 3)\n\n"+
			"Send your full name as the clinic should record it.\n"+
			"Send /cancel to abort.")
}

// HandleLogout asks for confirmation before the session is dropped.
func (h *Handlers) HandleLogout(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	session, ok := h.requireSession(ctx, b, update)
	if !ok {
		return
	}

	text := fmt.Sprintf("🚪 <b>Sign out of CampusCare Clinic?</b>\n\nSigned in as %s.",
		html.EscapeString(session.FullName))
	kb := &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{
				{Text: "✅ Yes", CallbackData: "auth_logout_yes"},
				{Text: "❌ No", CallbackData: "main_menu"},
			},
		},
	}
	h.sendScreen(ctx, b, update.Message.Chat.ID, text, kb)
}

// HandleAppointments opens the dashboard for the chat's role. Opening from
// the command always starts with fresh filters.
func (h *Handlers) HandleAppointments(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	session, ok := h.requireSession(ctx, b, update)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID
	telegramID := update.Message.From.ID

	appts, err := h.appointments.List(ctx, session.Token)
	if err != nil {
		h.handleAPIError(ctx, b, chatID, telegramID, err, "open dashboard")
		return
	}

	d := h.dashboards.Open(chatID)
	d.Store.Replace(appts)

	var text string
	var kb *models.InlineKeyboardMarkup
	if session.Role.IsAdmin() {
		text, kb = common.BuildAdminDashboardScreen(d)
	} else {
		text, kb = common.BuildStudentDashboardScreen(d)
	}

	if msg := h.sendScreen(ctx, b, chatID, text, kb); msg != nil {
		d.MessageID = msg.ID
	}
}

// HandleBook opens the booking dialog at the service step.
func (h *Handlers) HandleBook(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	_, ok := h.requireStudent(ctx, b, update)
	if !ok {
		return
	}

	telegramID := update.Message.From.ID
	h.stateManager.ClearState(telegramID)
	h.stateManager.SetState(telegramID, state.StateBookingService)

	text, kb := common.BuildBookingServiceScreen()
	h.sendScreen(ctx, b, update.Message.Chat.ID, text, kb)
}

// HandleAssistant switches the chat into assistant mode.
func (h *Handlers) HandleAssistant(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	_, ok := h.requireStudent(ctx, b, update)
	if !ok {
		return
	}

	telegramID := update.Message.From.ID
	h.stateManager.ClearState(telegramID)
	h.stateManager.SetState(telegramID, state.StateAssistantChat)

	text, kb := common.BuildAssistantScreen()
	h.sendScreen(ctx, b, update.Message.Chat.ID, text, kb)
}

// HandleScan switches the chat into scanner mode.
func (h *Handlers) HandleScan(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	_, ok := h.requireAdmin(ctx, b, update)
	if !ok {
		return
	}

	telegramID := update.Message.From.ID
	h.stateManager.ClearState(telegramID)
	h.stateManager.SetState(telegramID, state.StateScannerMode)

	text, kb := common.BuildScannerScreen()
	h.sendScreen(ctx, b, update.Message.Chat.ID, text, kb)
}

// HandleUsers shows the account list. Head admin only.
func (h *Handlers) HandleUsers(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	session, ok := h.requireSuperAdmin(ctx, b, update)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID

	users, err := h.admin.Users(ctx, session.Token)
	if err != nil {
		h.handleAPIError(ctx, b, chatID, update.Message.From.ID, err, "list accounts")
		return
	}

	text, kb := common.BuildUsersScreen(users, session.UserID)
	h.sendScreen(ctx, b, chatID, text, kb)
}

// HandleTextMessage routes typed text by the chat's dialog state. Outside a
// dialog, text is ignored.
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	// Commands are handled by their own handlers.
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	h.logger.Info("Text message received",
		zap.Int64("telegram_id", telegramID),
		zap.String("state", string(currentState)))

	if currentState == state.StateNone {
		h.logger.Debug("No active dialog, ignoring text",
			zap.Int64("telegram_id", telegramID))
		return
	}

	switch currentState {
	case state.StateLoginEmail:
		h.handleLoginEmailStep(ctx, b, update)
	case state.StateLoginPassword:
		h.handleLoginPasswordStep(ctx, b, update)
	case state.StateRegisterName:
		h.handleRegisterNameStep(ctx, b, update)
	case state.StateRegisterEmail:
		h.handleRegisterEmailStep(ctx, b, update)
	case state.StateRegisterPassword:
		h.handleRegisterPasswordStep(ctx, b, update)
	case state.StateBookingDate:
		h.handleBookingDateStep(ctx, b, update)
	case state.StateBookingTime:
		h.handleBookingTimeStep(ctx, b, update)
	case state.StateBookingReason:
		h.handleBookingReasonStep(ctx, b, update)
	case state.StateBookingService, state.StateBookingUrgency, state.StateBookingConfirm:
		h.sendMessage(ctx, b, update.Message.Chat.ID,
			"☝️ Please use the buttons above, or send /cancel to abort.")
	case state.StateRejectNote:
		h.handleRejectNoteStep(ctx, b, update)
	case state.StateSearchName:
		h.handleSearchNameStep(ctx, b, update)
	case state.StateCreateUserName:
		h.handleCreateUserNameStep(ctx, b, update)
	case state.StateCreateUserEmail:
		h.handleCreateUserEmailStep(ctx, b, update)
	case state.StateCreateUserPassword:
		h.handleCreateUserPasswordStep(ctx, b, update)
	case state.StateCreateUserRole:
		h.sendMessage(ctx, b, update.Message.Chat.ID,
			"☝️ Pick the role with the buttons above, or send /cancel to abort.")
	case state.StateAssistantChat:
		h.handleAssistantTurn(ctx, b, update)
	case state.StateScannerMode:
		h.handleScannerPayloadStep(ctx, b, update)
	default:
		h.logger.Warn("Unknown dialog state", zap.String("state", string(currentState)))
	}
}

// refreshDashboard redraws a chat's dashboard message in place after a write
// changed the backing data. Failures only log; the write already succeeded.
func (h *Handlers) refreshDashboard(ctx context.Context, b *bot.Bot, chatID int64, session *model.Session) {
	d, ok := h.dashboards.Get(chatID)
	if !ok || d.MessageID == 0 {
		return
	}

	appts, err := h.appointments.List(ctx, session.Token)
	if err != nil {
		h.logger.Warn("Failed to refresh dashboard",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		return
	}
	d.Store.Replace(appts)

	var text string
	var kb *models.InlineKeyboardMarkup
	if session.Role.IsAdmin() {
		text, kb = common.BuildAdminDashboardScreen(d)
	} else {
		text, kb = common.BuildStudentDashboardScreen(d)
	}

	_, err = b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      chatID,
		MessageID:   d.MessageID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: kb,
	})
	if err != nil && !common.IsMessageNotModifiedError(err) {
		h.logger.Warn("Failed to redraw dashboard", zap.Error(err))
	}
}
