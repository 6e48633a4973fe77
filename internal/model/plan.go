package model

import (
	"time"

	"github.com/google/uuid"
)

type PlanType string

const (
	PlanTypeIndividual PlanType = "individual" // Индивидуальные занятия
	PlanTypeGroup      PlanType = "group"      // Групповые занятия
)

type PlanStatus string

const (
	PlanStatusDraft     PlanStatus = "draft"
	PlanStatusActive    PlanStatus = "active"
	PlanStatusCompleted PlanStatus = "completed"
	PlanStatusCanceled  PlanStatus = "canceled"
)

// Plan представляет регулярное занятие с недельным расписанием и диапазоном дат
type Plan struct {
	ID        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Type      PlanType   `json:"type"`
	Status    PlanStatus `json:"status"`
	StartDate time.Time  `json:"start_date"` // только дата
	EndDate   time.Time  `json:"end_date"`   // только дата, включительно
	CreatedAt time.Time  `json:"created_at"`

	// Загружаются репозиторием вместе с планом
	Days        []PlanDay    `json:"days"`
	Sessions    []Session    `json:"sessions"`
	Enrollments []Enrollment `json:"enrollments"`
}
