package app

import (
	"context"
	"sync"
	"time"

	"github.com/Freeeeeet/tutor_calendar/internal/controller/formatting"
	"github.com/Freeeeeet/tutor_calendar/internal/model"
	"go.uber.org/zap"
)

// SlotSource отдаёт ожидаемые занятия без созданной записи
type SlotSource interface {
	UnfilledSlots(ctx context.Context, from, to time.Time) ([]model.CalendarEntry, error)
	Location() *time.Location
}

// Notifier отправляет текст в чат
type Notifier interface {
	SendText(ctx context.Context, chatID int64, text string) error
}

// DigestConfig - параметры сводки
type DigestConfig struct {
	Interval time.Duration
	Days     int
	ChatID   int64 // 0 - только лог
}

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	slots    SlotSource
	notifier Notifier
	cfg      DigestConfig
	now      func() time.Time
	logger   *zap.Logger
	stopChan chan struct{}
	stopOnce sync.Once
}

// NewScheduler создаёт новый планировщик. notifier может быть nil.
func NewScheduler(slots SlotSource, notifier Notifier, cfg DigestConfig, logger *zap.Logger) *Scheduler {
	if cfg.Interval <= 0 {
		cfg.Interval = 24 * time.Hour
	}
	if cfg.Days <= 0 {
		cfg.Days = 7
	}
	return &Scheduler{
		slots:    slots,
		notifier: notifier,
		cfg:      cfg,
		now:      time.Now,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler",
		zap.Duration("digest_interval", s.cfg.Interval),
		zap.Int("digest_days", s.cfg.Days))

	go s.runDigestTask(ctx)
}

// Stop останавливает фоновые задачи
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Info("Stopping background scheduler")
		close(s.stopChan)
	})
}

// runDigestTask периодически собирает сводку незаполненных слотов
func (s *Scheduler) runDigestTask(ctx context.Context) {
	// Первый запуск сразу при старте
	s.sendDigest(ctx)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sendDigest(ctx)
		case <-s.stopChan:
			s.logger.Info("Digest task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Digest task cancelled")
			return
		}
	}
}

// digestRange - с сегодняшнего дня на cfg.Days дней вперёд, включительно
func (s *Scheduler) digestRange() (time.Time, time.Time) {
	now := s.now().In(s.slots.Location())
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return from, from.AddDate(0, 0, s.cfg.Days-1)
}

// sendDigest считает незаполненные слоты, пишет итог в лог и, если задан чат, отправляет сводку
func (s *Scheduler) sendDigest(ctx context.Context) {
	from, to := s.digestRange()

	entries, err := s.slots.UnfilledSlots(ctx, from, to)
	if err != nil {
		s.logger.Error("Failed to collect unfilled slots", zap.Error(err))
		return
	}

	s.logger.Info("Unfilled slots digest",
		zap.Time("from", from),
		zap.Time("to", to),
		zap.Int("unfilled", len(entries)))

	if s.notifier == nil || s.cfg.ChatID == 0 {
		return
	}

	text := formatting.FormatDigest(entries, from, to, s.slots.Location())
	if err := s.notifier.SendText(ctx, s.cfg.ChatID, text); err != nil {
		s.logger.Error("Failed to send digest", zap.Int64("chat_id", s.cfg.ChatID), zap.Error(err))
	}
}
