package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// StudentContact - контактные данные студента, только для отображения
type StudentContact struct {
	FirstName  string `json:"first_name"`
	MiddleName string `json:"middle_name"`
	LastName   string `json:"last_name"`
	Address    string `json:"address"`
	Phone      string `json:"phone"`
}

// FullName собирает имя из непустых частей
func (c StudentContact) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{c.FirstName, c.MiddleName, c.LastName} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Enrollment связывает студента с планом
type Enrollment struct {
	ID         uuid.UUID      `json:"id"`
	PlanID     uuid.UUID      `json:"plan_id"`
	StudentID  uuid.UUID      `json:"student_id"`
	Fee        int64          `json:"fee"` // в копейках/центах
	Notes      string         `json:"notes"`
	EnrolledAt time.Time      `json:"enrolled_at"`
	Student    StudentContact `json:"student"`
}
