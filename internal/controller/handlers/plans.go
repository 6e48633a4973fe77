package handlers

import (
	"context"

	"github.com/Freeeeeet/tutor_calendar/internal/controller/formatting"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandlePlans обрабатывает команду /plans
func (h *Handlers) HandlePlans(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireAdmin(ctx, b, update) {
		return
	}
	chatID := update.Message.Chat.ID

	plans, err := h.calendarService.ListPlans(ctx)
	if err != nil {
		h.replyError(ctx, b, chatID, "list_plans", err)
		return
	}

	h.sendMessage(ctx, b, chatID, formatting.FormatPlans(plans))
}
