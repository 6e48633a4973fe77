package calendar

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/Freeeeeet/tutor_calendar/internal/model"
)

// resolveRange пересекает запрошенный период с периодом плана.
// ok == false, если пересечение пустое.
func (e *Engine) resolveRange(plan *model.Plan, from, to *time.Time) (start, end time.Time, ok bool, err error) {
	start = e.midnight(plan.StartDate)
	end = e.midnight(plan.EndDate)
	if start.After(end) {
		return start, end, false, fmt.Errorf("%w: plan %s ends before it starts", ErrInvalidDateRange, plan.ID)
	}

	if from != nil && to != nil && e.midnight(*from).After(e.midnight(*to)) {
		return start, end, false, fmt.Errorf("%w: %s > %s", ErrInvalidDateRange,
			from.Format(time.DateOnly), to.Format(time.DateOnly))
	}
	if from != nil {
		if f := e.midnight(*from); f.After(start) {
			start = f
		}
	}
	if to != nil {
		if t := e.midnight(*to); t.Before(end) {
			end = t
		}
	}

	return start, end, !start.After(end), nil
}

// snapshotStudents копирует текущий состав записанных студентов
func snapshotStudents(enrollments []model.Enrollment) []model.EnrolledStudent {
	students := make([]model.EnrolledStudent, 0, len(enrollments))
	for _, en := range enrollments {
		students = append(students, model.EnrolledStudent{
			StudentID:  en.StudentID,
			Fee:        en.Fee,
			Notes:      en.Notes,
			EnrolledAt: en.EnrolledAt,
			Contact:    en.Student,
		})
	}
	return students
}

// PlanEntries строит календарь одного плана.
// Границы from/to необязательны, по умолчанию берутся даты самого плана.
// Контекст проверяется между слотами; при отмене частичный результат отбрасывается.
func (e *Engine) PlanEntries(ctx context.Context, plan *model.Plan, from, to *time.Time) ([]model.CalendarEntry, error) {
	pattern, err := DecodePattern(plan.Days)
	if err != nil {
		return nil, fmt.Errorf("plan %s: %w", plan.ID, err)
	}

	start, end, ok, err := e.resolveRange(plan, from, to)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	dates, err := e.Enumerate(start, end, pattern.Weekdays())
	if err != nil {
		return nil, err
	}

	index := e.IndexSessions(plan.Sessions)
	days := pattern.Summaries()
	students := snapshotStudents(plan.Enrollments)

	var entries []model.CalendarEntry
	for date := range dates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rule, _ := pattern.Rule(date.Weekday())
		slot := e.SlotWindow(date, rule)

		entries = append(entries, model.CalendarEntry{
			PlanID:     plan.ID,
			PlanTitle:  plan.Title,
			PlanType:   plan.Type,
			PlanStatus: plan.Status,
			Date:       date,
			SlotStart:  slot.Start,
			SlotEnd:    slot.End,
			Days:       slices.Clone(days),
			SessionID:  index.Match(date, slot),
			Students:   slices.Clone(students),
		})
	}

	return entries, nil
}

// Assemble строит общий календарь по нескольким планам.
// Записи упорядочены по началу слота, при равенстве - по порядку планов.
func (e *Engine) Assemble(ctx context.Context, plans []*model.Plan, from, to *time.Time) (*model.Calendar, error) {
	var entries []model.CalendarEntry
	for _, plan := range plans {
		planEntries, err := e.PlanEntries(ctx, plan, from, to)
		if err != nil {
			return nil, err
		}
		entries = append(entries, planEntries...)
	}

	slices.SortStableFunc(entries, func(a, b model.CalendarEntry) int {
		return a.SlotStart.Compare(b.SlotStart)
	})

	if entries == nil {
		entries = []model.CalendarEntry{}
	}

	return &model.Calendar{
		Entries: entries,
		Total:   len(entries),
	}, nil
}
