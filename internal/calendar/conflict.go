package calendar

import (
	"fmt"
	"strings"

	"github.com/Freeeeeet/tutor_calendar/internal/model"
)

// ValidateNewSession проверяет предложенное занятие против существующих занятий плана.
// Проверки идут по порядку, возвращается первая сработавшая.
// Валидатор ничего не сохраняет.
func (e *Engine) ValidateNewSession(plan *model.Plan, proposal model.NewSession) error {
	if strings.TrimSpace(proposal.Title) == "" {
		return ErrTitleRequired
	}

	if !proposal.StartTime.Before(proposal.EndTime) {
		return fmt.Errorf("%w: %s >= %s", ErrStartAfterEnd,
			proposal.StartTime.Format("15:04"), proposal.EndTime.Format("15:04"))
	}

	expected := e.keyOf(proposal.ExpectedDate)
	if e.keyOf(proposal.StartTime) != expected || e.keyOf(proposal.EndTime) != expected {
		return ErrOutsideExpectedDate
	}

	candidate := Window{Start: proposal.StartTime, End: proposal.EndTime}
	for i := range plan.Sessions {
		existing := &plan.Sessions[i]
		if existing.Status == model.SessionStatusCanceled {
			continue
		}
		if e.keyOf(existing.StartTime) != expected {
			continue
		}
		if overlaps(candidate, Window{Start: existing.StartTime, End: existing.EndTime}) {
			return fmt.Errorf("%w: session %s %s-%s", ErrTimeOverlap, existing.ID,
				existing.StartTime.In(e.loc).Format("15:04"), existing.EndTime.In(e.loc).Format("15:04"))
		}
	}

	return nil
}
