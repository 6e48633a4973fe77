package handlers

import (
	"fmt"

	"github.com/Freeeeeet/tutor_calendar/internal/service"
	"go.uber.org/zap"
)

// AdminChecker проверяет права администратора по Telegram ID
type AdminChecker interface {
	IsAdmin(telegramID int64) bool
}

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	calendarService *service.CalendarService
	admins          AdminChecker
	args            *ArgParser
	logger          *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	calendarService *service.CalendarService,
	admins AdminChecker,
	logger *zap.Logger,
) (*Handlers, error) {
	args, err := NewArgParser(calendarService.Location())
	if err != nil {
		return nil, fmt.Errorf("create arg parser: %w", err)
	}

	return &Handlers{
		calendarService: calendarService,
		admins:          admins,
		args:            args,
		logger:          logger,
	}, nil
}
