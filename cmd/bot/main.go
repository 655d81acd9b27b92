package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/campuscare/clinic_bot/internal/app"
	"github.com/campuscare/clinic_bot/internal/chat"
	"github.com/campuscare/clinic_bot/internal/clinic"
	"github.com/campuscare/clinic_bot/internal/config"
	"github.com/campuscare/clinic_bot/internal/controller"
	"github.com/campuscare/clinic_bot/internal/repository"
	"github.com/campuscare/clinic_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting CampusCare clinic bot",
		zap.String("environment", cfg.Environment),
		zap.String("clinic_api", cfg.ClinicAPIURL),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	migrator, err := app.NewMigrator(pool, cfg.MigrationsDir)
	if err != nil {
		logger.Fatal("Failed to init migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		migrator.Close()
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	if err := migrator.Close(); err != nil {
		logger.Warn("Failed to close migrator", zap.Error(err))
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	err = rdb.Ping(pingCtx).Err()
	cancel()
	if err != nil {
		logger.Fatal("Failed to reach Redis",
			zap.String("addr", cfg.RedisAddr),
			zap.Error(err))
	}

	client := clinic.NewClient(cfg.ClinicAPIURL, clinic.WithLogger(logger))

	sessionRepo := repository.NewSessionRepository(pool)
	transcripts := chat.NewTranscriptStore(rdb)

	sessionService := service.NewSessionService(sessionRepo, client, logger)
	appointmentService := service.NewAppointmentService(client, logger)
	adminService := service.NewAdminService(client, logger)
	assistantService := service.NewAssistantService(client, transcripts, logger)
	checkinService := service.NewCheckinService(client, logger)

	b, err := bot.New(cfg.TelegramToken)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	botController := controller.NewBotController(
		b,
		sessionService,
		appointmentService,
		adminService,
		assistantService,
		checkinService,
		logger,
	)

	if err := botController.RegisterHandlers(ctx); err != nil {
		logger.Fatal("Failed to register handlers", zap.Error(err))
	}

	scheduler := app.NewScheduler(botController.StateManager(), logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	if err := botController.Start(ctx); err != nil {
		logger.Error("Bot stopped with error", zap.Error(err))
	}

	logger.Info("Shutdown complete")
}
