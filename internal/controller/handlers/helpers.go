package handlers

import (
	"context"
	"errors"

	"github.com/Freeeeeet/tutor_calendar/internal/controller/formatting"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// requireAdmin пропускает только администраторов из конфига
func (h *Handlers) requireAdmin(ctx context.Context, b *bot.Bot, update *models.Update) bool {
	if update.Message == nil || update.Message.From == nil {
		return false
	}

	if !h.admins.IsAdmin(update.Message.From.ID) {
		h.logger.Warn("Command from non-admin user",
			zap.Int64("telegram_id", update.Message.From.ID),
			zap.String("text", update.Message.Text),
		)
		h.sendError(ctx, b, update.Message.Chat.ID, "⛔ Команда доступна только администраторам.")
		return false
	}

	return true
}

// replyError переводит ошибку в сообщение пользователю; неожиданные ошибки логируются
func (h *Handlers) replyError(ctx context.Context, b *bot.Bot, chatID int64, op string, err error) {
	var argsErr *ArgsError
	if errors.As(err, &argsErr) {
		h.sendError(ctx, b, chatID, "❌ Неверные аргументы:\n"+argsErr.Message)
		return
	}

	h.logger.Warn("Command failed", zap.String("op", op), zap.Error(err))
	h.sendError(ctx, b, chatID, formatting.ErrorMessage(err))
}

// sendError отправляет сообщение об ошибке и логирует если не удалось
func (h *Handlers) sendError(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("Failed to send error message",
			zap.Int64("chat_id", chatID),
			zap.String("text", text),
			zap.Error(err),
		)
	}
}

// sendMessage отправляет сообщение и логирует если не удалось
func (h *Handlers) sendMessage(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}
