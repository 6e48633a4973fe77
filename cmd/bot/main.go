package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Freeeeeet/tutor_calendar/internal/app"
	"github.com/Freeeeeet/tutor_calendar/internal/calendar"
	"github.com/Freeeeeet/tutor_calendar/internal/config"
	"github.com/Freeeeeet/tutor_calendar/internal/controller"
	"github.com/Freeeeeet/tutor_calendar/internal/repository"
	"github.com/Freeeeeet/tutor_calendar/internal/service"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := app.NewLogger(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Error("Bot stopped with error", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	logger.Info("Starting tutor calendar bot",
		zap.String("environment", cfg.Environment),
		zap.String("timezone", loc.String()),
		zap.Int("admins", len(cfg.AdminIDs)))

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return err
	}
	logger.Info("✅ Connected to database")

	if cfg.MigrationsEnabled {
		migrator, err := app.NewMigrator(pool, logger)
		if err != nil {
			return err
		}
		err = migrator.Run(ctx)
		if closeErr := migrator.Close(); closeErr != nil {
			logger.Warn("Failed to close migrator", zap.Error(closeErr))
		}
		if err != nil {
			return err
		}
	}

	// Репозитории
	planRepo := repository.NewPlanRepository(pool, loc, logger)
	sessionRepo := repository.NewSessionRepository(pool)

	// Сервисы
	engine := calendar.NewEngine(loc)
	calendarService := service.NewCalendarService(planRepo, sessionRepo, engine, logger)

	b, err := bot.New(cfg.TelegramToken, bot.WithErrorsHandler(func(err error) {
		logger.Error("Telegram bot error", zap.Error(err))
	}))
	if err != nil {
		return err
	}

	botController, err := controller.NewBotController(b, calendarService, cfg, logger)
	if err != nil {
		return err
	}
	if err := botController.RegisterHandlers(ctx); err != nil {
		// Меню команд не критично
		logger.Warn("Bot handlers registered without commands menu", zap.Error(err))
	}

	scheduler := app.NewScheduler(calendarService, botController, app.DigestConfig{
		Interval: cfg.DigestInterval,
		Days:     cfg.DigestDays,
		ChatID:   cfg.DigestChatID,
	}, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	return botController.Start(ctx)
}
