package controller

import (
	"context"

	"github.com/campuscare/clinic_bot/internal/controller/callbacks"
	"github.com/campuscare/clinic_bot/internal/controller/handlers"
	"github.com/campuscare/clinic_bot/internal/controller/state"
	"github.com/campuscare/clinic_bot/internal/service"
	"github.com/campuscare/clinic_bot/internal/view"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	stateManager    *state.Manager
	logger          *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	sessionService *service.SessionService,
	appointmentService *service.AppointmentService,
	adminService *service.AdminService,
	assistantService *service.AssistantService,
	checkinService *service.CheckinService,
	logger *zap.Logger,
) *BotController {
	stateManager := state.NewManager()
	dashboards := view.NewSessions()

	cmdHandlers := handlers.NewHandlers(
		sessionService,
		appointmentService,
		adminService,
		assistantService,
		checkinService,
		dashboards,
		stateManager,
		logger,
	)

	// Callback packages see the manager through the adapter only.
	stateAdapter := state.NewAdapter(stateManager)

	callbackHandler := callbacks.NewHandler(
		sessionService,
		appointmentService,
		adminService,
		assistantService,
		checkinService,
		dashboards,
		stateAdapter,
		logger,
	)

	return &BotController{
		bot:             botInstance,
		handlers:        cmdHandlers,
		callbackHandler: callbackHandler,
		stateManager:    stateManager,
		logger:          logger,
	}
}

// StateManager exposes the dialog state store for background housekeeping.
func (c *BotController) StateManager() *state.Manager {
	return c.stateManager
}

// RegisterHandlers registers every command, dialog and callback handler.
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, c.handlers.HandleCancel)

	// Account commands
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/login", bot.MatchTypeExact, c.handlers.HandleLogin)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/register", bot.MatchTypeExact, c.handlers.HandleRegister)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/logout", bot.MatchTypeExact, c.handlers.HandleLogout)

	// Student commands
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/appointments", bot.MatchTypeExact, c.handlers.HandleAppointments)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/book", bot.MatchTypeExact, c.handlers.HandleBook)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/assistant", bot.MatchTypeExact, c.handlers.HandleAssistant)

	// Staff commands
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/scan", bot.MatchTypeExact, c.handlers.HandleScan)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/users", bot.MatchTypeExact, c.handlers.HandleUsers)

	// Free text feeds the active dialog, if any
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	// Photos only matter to the scanner
	c.bot.RegisterHandlerMatchFunc(func(update *models.Update) bool {
		return update.Message != nil && len(update.Message.Photo) > 0
	}, c.handlers.HandlePhoto)

	// Inline button presses
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	return c.setCommands(ctx)
}

// setCommands publishes the command menu.
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🏥 Open CampusCare Clinic"},
		{Command: "appointments", Description: "📋 My appointment dashboard"},
		{Command: "book", Description: "📅 Book an appointment"},
		{Command: "assistant", Description: "💬 Chat with the booking assistant"},
		{Command: "login", Description: "🔑 Sign in"},
		{Command: "register", Description: "📝 Create a student account"},
		{Command: "scan", Description: "📷 Scan check-in tickets (staff)"},
		{Command: "users", Description: "👥 Manage accounts (head admin)"},
		{Command: "logout", Description: "🚪 Sign out"},
		{Command: "help", Description: "❓ Command reference"},
		{Command: "cancel", Description: "❌ Abort the current dialog"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start blocks polling Telegram until ctx is canceled.
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
