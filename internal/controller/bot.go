package controller

import (
	"context"

	"github.com/Freeeeeet/tutor_calendar/internal/controller/handlers"
	"github.com/Freeeeeet/tutor_calendar/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type BotController struct {
	bot      *bot.Bot
	handlers *handlers.Handlers
	logger   *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	calendarService *service.CalendarService,
	admins handlers.AdminChecker,
	logger *zap.Logger,
) (*BotController, error) {
	cmdHandlers, err := handlers.NewHandlers(calendarService, admins, logger)
	if err != nil {
		return nil, err
	}

	return &BotController{
		bot:      botInstance,
		handlers: cmdHandlers,
		logger:   logger,
	}, nil
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	// MatchTypeCommand сравнивает только имя команды, аргументы разбирают сами обработчики
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "start", bot.MatchTypeCommand, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "help", bot.MatchTypeCommand, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "plans", bot.MatchTypeCommand, c.handlers.HandlePlans)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "calendar", bot.MatchTypeCommand, c.handlers.HandleCalendar)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "calendarall", bot.MatchTypeCommand, c.handlers.HandleCalendarAll)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "week", bot.MatchTypeCommand, c.handlers.HandleWeek)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "newsession", bot.MatchTypeCommand, c.handlers.HandleNewSession)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "cancelsession", bot.MatchTypeCommand, c.handlers.HandleCancelSession)

	// Устанавливаем меню команд
	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Начать работу с ботом"},
		{Command: "help", Description: "❓ Справка по командам"},
		{Command: "plans", Description: "📚 Список планов"},
		{Command: "calendar", Description: "🗓 Календарь плана"},
		{Command: "calendarall", Description: "🗓 Календарь всех планов"},
		{Command: "week", Description: "🖼 Неделя картинкой"},
		{Command: "newsession", Description: "➕ Создать занятие"},
		{Command: "cancelsession", Description: "🚫 Отменить занятие"},
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

// Start запускает бота; блокируется до отмены ctx
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}

// SendText отправляет текст в чат; используется фоновыми задачами
func (c *BotController) SendText(ctx context.Context, chatID int64, text string) error {
	_, err := c.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	return err
}
