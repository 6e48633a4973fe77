package model

import (
	"time"

	"github.com/google/uuid"
)

// EnrolledStudent - снимок записанного студента на момент генерации календаря
type EnrolledStudent struct {
	StudentID  uuid.UUID      `json:"student_id"`
	Fee        int64          `json:"fee"`
	Notes      string         `json:"notes"`
	EnrolledAt time.Time      `json:"enrolled_at"`
	Contact    StudentContact `json:"contact"`
}

// CalendarEntry - одно ожидаемое занятие плана в конкретный день.
// Не хранится в БД, пересчитывается на каждый запрос.
type CalendarEntry struct {
	PlanID     uuid.UUID         `json:"plan_id"`
	PlanTitle  string            `json:"plan_title"`
	PlanType   PlanType          `json:"plan_type"`
	PlanStatus PlanStatus        `json:"plan_status"`
	Date       time.Time         `json:"date"`
	SlotStart  time.Time         `json:"slot_start"`
	SlotEnd    time.Time         `json:"slot_end"`
	Days       []PlanDaySummary  `json:"days"`
	SessionID  uuid.UUID         `json:"session_id"` // uuid.Nil - занятие ещё не создано
	Students   []EnrolledStudent `json:"students"`
}

// HasSession проверяет, найдено ли занятие для слота
func (e *CalendarEntry) HasSession() bool {
	return e.SessionID != uuid.Nil
}

// Calendar - упорядоченный список записей и их количество
type Calendar struct {
	Entries []CalendarEntry `json:"entries"`
	Total   int             `json:"total"`
}
