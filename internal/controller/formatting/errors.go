package formatting

import (
	"errors"

	"github.com/Freeeeeet/tutor_calendar/internal/calendar"
	"github.com/Freeeeeet/tutor_calendar/internal/model"
	"github.com/Freeeeeet/tutor_calendar/internal/service"
)

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, calendar.ErrPlanNotFound):
		return "❌ План не найден"
	case errors.Is(err, calendar.ErrInvalidDateRange):
		return "❌ Дата начала позже даты окончания"
	case errors.Is(err, calendar.ErrDuplicateWeekdayRule):
		return "❌ В плане несколько правил на один день недели"
	case errors.Is(err, calendar.ErrInvalidRule), errors.Is(err, model.ErrInvalidWeekdayFlag):
		return "❌ Расписание плана заполнено некорректно"
	case errors.Is(err, calendar.ErrTitleRequired):
		return "❌ Укажите название занятия"
	case errors.Is(err, calendar.ErrStartAfterEnd):
		return "❌ Время начала должно быть раньше времени окончания"
	case errors.Is(err, calendar.ErrOutsideExpectedDate):
		return "❌ Занятие должно начинаться и заканчиваться в указанный день"
	case errors.Is(err, calendar.ErrTimeOverlap):
		return "❌ Занятие пересекается с уже существующим"
	case errors.Is(err, service.ErrSessionNotFound):
		return "❌ Занятие не найдено"
	case errors.Is(err, service.ErrSessionNotCancelable):
		return "❌ Это занятие нельзя отменить"
	default:
		return "❌ Произошла ошибка. Попробуйте позже."
	}
}
