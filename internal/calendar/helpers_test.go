package calendar

import (
	"time"

	"github.com/Freeeeeet/tutor_calendar/internal/model"
	"github.com/google/uuid"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(y int, m time.Month, d, hour, minute int) time.Time {
	return time.Date(y, m, d, hour, minute, 0, 0, time.UTC)
}

func hm(hour, minute int) time.Duration {
	return time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute
}

func rule(day time.Weekday, from, to time.Duration) model.PlanDay {
	return model.PlanDay{ID: uuid.New(), Weekday: day, StartOffset: from, EndOffset: to}
}

// mondayWednesdayPlan: Пн 09:00-10:00, Ср 14:00-15:00, август 2025
func mondayWednesdayPlan() *model.Plan {
	planID := uuid.New()
	return &model.Plan{
		ID:        planID,
		Title:     "Математика",
		Type:      model.PlanTypeIndividual,
		Status:    model.PlanStatusActive,
		StartDate: date(2025, time.August, 4),
		EndDate:   date(2025, time.August, 8),
		Days: []model.PlanDay{
			rule(time.Monday, hm(9, 0), hm(10, 0)),
			rule(time.Wednesday, hm(14, 0), hm(15, 0)),
		},
		Enrollments: []model.Enrollment{
			{
				ID:         uuid.New(),
				PlanID:     planID,
				StudentID:  uuid.New(),
				Fee:        150000,
				EnrolledAt: date(2025, time.July, 20),
				Student:    model.StudentContact{FirstName: "Анна", LastName: "Смирнова", Phone: "+7 900 000-00-00"},
			},
		},
	}
}

func session(planID uuid.UUID, start, end time.Time) model.Session {
	return model.Session{
		ID:        uuid.New(),
		PlanID:    planID,
		Title:     "Урок",
		StartTime: start,
		EndTime:   end,
		Status:    model.SessionStatusScheduled,
	}
}
