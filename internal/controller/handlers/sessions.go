package handlers

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_calendar/internal/controller/formatting"
	"github.com/Freeeeeet/tutor_calendar/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleNewSession обрабатывает команду /newsession <plan_id> <date> <HH:MM> <HH:MM> <title>
func (h *Handlers) HandleNewSession(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireAdmin(ctx, b, update) {
		return
	}
	chatID := update.Message.Chat.ID

	args, err := h.args.ParseNewSession(update.Message.Text)
	if err != nil {
		h.replyError(ctx, b, chatID, "new_session", err)
		return
	}

	session, err := h.calendarService.CreateSession(ctx, model.NewSession{
		PlanID:       args.PlanID,
		ExpectedDate: args.ExpectedDate,
		StartTime:    args.StartTime,
		EndTime:      args.EndTime,
		Title:        args.Title,
	})
	if err != nil {
		h.replyError(ctx, b, chatID, "new_session", err)
		return
	}

	h.logger.Info("Session created via bot",
		zap.String("session_id", session.ID.String()),
		zap.Int64("telegram_id", update.Message.From.ID),
	)

	loc := h.calendarService.Location()
	start := session.StartTime.In(loc)
	h.sendMessage(ctx, b, chatID, fmt.Sprintf(
		"✅ Занятие создано!\n\n📝 %s\n📅 %s %s\n🆔 %s",
		session.Title,
		formatting.FormatDateWithWeekday(start),
		formatting.FormatTimeRange(start, session.EndTime.In(loc)),
		session.ID,
	))
}

// HandleCancelSession обрабатывает команду /cancelsession <session_id>
func (h *Handlers) HandleCancelSession(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireAdmin(ctx, b, update) {
		return
	}
	chatID := update.Message.Chat.ID

	sessionID, err := h.args.ParseSessionID(update.Message.Text)
	if err != nil {
		h.replyError(ctx, b, chatID, "cancel_session", err)
		return
	}

	if err := h.calendarService.CancelSession(ctx, sessionID); err != nil {
		h.replyError(ctx, b, chatID, "cancel_session", err)
		return
	}

	h.sendMessage(ctx, b, chatID, "🚫 Занятие "+formatting.ShortID(sessionID)+" отменено.")
}
