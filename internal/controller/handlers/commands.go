package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const helpText = "📚 Справка по командам:\n\n" +
	"/plans - Список планов\n" +
	"/calendar <plan_id> [с] [по] - Календарь плана\n" +
	"/calendarall [с] [по] - Календарь всех планов\n" +
	"/week <plan_id|all> [дата] - Неделя картинкой\n" +
	"/newsession <plan_id> <дата> <ЧЧ:ММ> <ЧЧ:ММ> <название> - Создать занятие\n" +
	"/cancelsession <session_id> - Отменить занятие\n" +
	"/help - Показать эту справку\n\n" +
	"Даты указываются в формате ГГГГ-ММ-ДД."

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	if !h.admins.IsAdmin(update.Message.From.ID) {
		h.sendMessage(ctx, b, update.Message.Chat.ID, fmt.Sprintf(
			"👋 Привет, %s!\n\nЭтот бот ведёт календарь занятий. Доступ есть только у администраторов.\n"+
				"Ваш Telegram ID: %d",
			update.Message.From.FirstName,
			update.Message.From.ID,
		))
		return
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, fmt.Sprintf(
		"👋 Привет, %s!\n\nДобро пожаловать в календарь занятий.\n\n%s",
		update.Message.From.FirstName,
		helpText,
	))
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, helpText)
}
