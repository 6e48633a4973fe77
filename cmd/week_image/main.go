package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Freeeeeet/tutor_calendar/internal/calendar"
	"github.com/Freeeeeet/tutor_calendar/internal/controller/formatting"
	"github.com/Freeeeeet/tutor_calendar/internal/model"
	"github.com/google/uuid"
)

// Рисует текущую неделю для двух демонстрационных планов без базы данных
func main() {
	out := flag.String("out", "week.png", "output file")
	flag.Parse()

	engine := calendar.NewEngine(time.Local)
	now := time.Now()
	weekStart, weekEnd := formatting.WeekRange(now, engine.Location())

	math := samplePlan("Математика", weekStart, map[time.Weekday][2]int{
		time.Monday:    {9, 10},
		time.Wednesday: {14, 15},
		time.Friday:    {11, 12},
	})
	english := samplePlan("Английский", weekStart, map[time.Weekday][2]int{
		time.Tuesday:  {16, 17},
		time.Thursday: {10, 11},
		time.Saturday: {12, 14},
	})

	// Часть слотов уже с занятиями
	math.Sessions = []model.Session{
		sampleSession(math.ID, weekStart.Add(9*time.Hour), time.Hour),
		sampleSession(math.ID, weekStart.AddDate(0, 0, 4).Add(11*time.Hour), time.Hour),
	}
	english.Sessions = []model.Session{
		sampleSession(english.ID, weekStart.AddDate(0, 0, 3).Add(10*time.Hour), time.Hour),
	}

	cal, err := engine.Assemble(context.Background(), []*model.Plan{math, english}, &weekStart, &weekEnd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка сборки календаря: %v\n", err)
		os.Exit(1)
	}

	imageData, err := formatting.GenerateWeekImage(weekStart, cal.Entries, engine.Location(), now)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка генерации изображения: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*out, imageData, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка сохранения файла: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Изображение сохранено: %s (%d записей)\n", *out, cal.Total)
}

func samplePlan(title string, weekStart time.Time, hours map[time.Weekday][2]int) *model.Plan {
	plan := &model.Plan{
		ID:        uuid.New(),
		Title:     title,
		Type:      model.PlanTypeIndividual,
		Status:    model.PlanStatusActive,
		StartDate: weekStart.AddDate(0, -1, 0),
		EndDate:   weekStart.AddDate(0, 1, 0),
	}
	for day, h := range hours {
		plan.Days = append(plan.Days, model.PlanDay{
			ID:          uuid.New(),
			PlanID:      plan.ID,
			Weekday:     day,
			StartOffset: time.Duration(h[0]) * time.Hour,
			EndOffset:   time.Duration(h[1]) * time.Hour,
		})
	}
	return plan
}

func sampleSession(planID uuid.UUID, start time.Time, length time.Duration) model.Session {
	return model.Session{
		ID:        uuid.New(),
		PlanID:    planID,
		Title:     "Занятие",
		StartTime: start,
		EndTime:   start.Add(length),
		Status:    model.SessionStatusScheduled,
	}
}
