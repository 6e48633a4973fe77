package handlers

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/tutor_calendar/internal/controller/formatting"
	"github.com/Freeeeeet/tutor_calendar/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HandleCalendar обрабатывает команду /calendar <plan_id> [from] [to]
func (h *Handlers) HandleCalendar(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireAdmin(ctx, b, update) {
		return
	}
	chatID := update.Message.Chat.ID

	args, err := h.args.ParseCalendar(update.Message.Text)
	if err != nil {
		h.replyError(ctx, b, chatID, "calendar", err)
		return
	}

	cal, err := h.calendarService.GenerateCalendar(ctx, args.PlanID, args.From, args.To)
	if err != nil {
		h.replyError(ctx, b, chatID, "calendar", err)
		return
	}

	title := "🗓 Календарь плана " + formatting.ShortID(args.PlanID)
	if len(cal.Entries) > 0 {
		title = "🗓 Календарь: " + cal.Entries[0].PlanTitle
	}
	h.sendMessage(ctx, b, chatID, formatting.FormatCalendar(title, cal, h.calendarService.Location(), formatting.MaxCalendarLines))
}

// HandleCalendarAll обрабатывает команду /calendarall [from] [to]
func (h *Handlers) HandleCalendarAll(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireAdmin(ctx, b, update) {
		return
	}
	chatID := update.Message.Chat.ID

	args, err := h.args.ParseRange(update.Message.Text)
	if err != nil {
		h.replyError(ctx, b, chatID, "calendar_all", err)
		return
	}

	cal, err := h.calendarService.GenerateCalendarForAllPlans(ctx, args.From, args.To)
	if err != nil {
		h.replyError(ctx, b, chatID, "calendar_all", err)
		return
	}

	h.sendMessage(ctx, b, chatID, formatting.FormatCalendar("🗓 Календарь всех планов", cal, h.calendarService.Location(), formatting.MaxCalendarLines))
}

// HandleWeek обрабатывает команду /week <plan_id|all> [date] и отправляет неделю картинкой
func (h *Handlers) HandleWeek(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireAdmin(ctx, b, update) {
		return
	}
	chatID := update.Message.Chat.ID
	loc := h.calendarService.Location()
	now := time.Now()

	args, err := h.args.ParseWeek(update.Message.Text, now)
	if err != nil {
		h.replyError(ctx, b, chatID, "week", err)
		return
	}

	weekStart, weekEnd := formatting.WeekRange(args.Day, loc)

	var cal *model.Calendar
	if args.PlanID == uuid.Nil {
		cal, err = h.calendarService.GenerateCalendarForAllPlans(ctx, &weekStart, &weekEnd)
	} else {
		cal, err = h.calendarService.GenerateCalendar(ctx, args.PlanID, &weekStart, &weekEnd)
	}
	if err != nil {
		h.replyError(ctx, b, chatID, "week", err)
		return
	}

	imageData, err := formatting.GenerateWeekImage(weekStart, cal.Entries, loc, now)
	if err != nil {
		h.logger.Error("Failed to generate week image", zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Не удалось построить картинку недели.")
		return
	}

	filled := 0
	for i := range cal.Entries {
		if cal.Entries[i].HasSession() {
			filled++
		}
	}
	caption := fmt.Sprintf("🗓 Неделя %s - %s\nВсего: %d · ✅ %d · ⏳ %d",
		formatting.FormatDate(weekStart), formatting.FormatDate(weekEnd), cal.Total, filled, cal.Total-filled)

	_, err = b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID:  chatID,
		Photo:   &models.InputFileUpload{Filename: "week.png", Data: bytes.NewReader(imageData)},
		Caption: caption,
	})
	if err != nil {
		h.logger.Error("Failed to send week image", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}
