package model

import (
	"time"

	"github.com/google/uuid"
)

type SessionStatus string

const (
	SessionStatusScheduled SessionStatus = "scheduled"
	SessionStatusCompleted SessionStatus = "completed"
	SessionStatusCanceled  SessionStatus = "canceled"
)

// Session - проведённое или запланированное занятие по плану
type Session struct {
	ID        uuid.UUID     `json:"id"`
	PlanID    uuid.UUID     `json:"plan_id"`
	Title     string        `json:"title"`
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Status    SessionStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

// NewSession - предложение создать занятие, проверяется до сохранения
type NewSession struct {
	PlanID       uuid.UUID `json:"plan_id"`
	ExpectedDate time.Time `json:"expected_date"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Title        string    `json:"title"`
}
