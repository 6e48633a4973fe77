package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/Freeeeeet/tutor_calendar/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_PlanEntries(t *testing.T) {
	engine := NewEngine(time.UTC)
	ctx := context.Background()

	t.Run("occurrences follow weekly pattern", func(t *testing.T) {
		plan := mondayWednesdayPlan()

		entries, err := engine.PlanEntries(ctx, plan, nil, nil)
		require.NoError(t, err)
		require.Len(t, entries, 2)

		assert.Equal(t, date(2025, time.August, 4), entries[0].Date)
		assert.Equal(t, at(2025, time.August, 4, 9, 0), entries[0].SlotStart)
		assert.Equal(t, at(2025, time.August, 4, 10, 0), entries[0].SlotEnd)
		assert.Equal(t, date(2025, time.August, 6), entries[1].Date)
		assert.Equal(t, at(2025, time.August, 6, 14, 0), entries[1].SlotStart)

		for _, e := range entries {
			assert.Equal(t, plan.ID, e.PlanID)
			assert.Equal(t, model.PlanTypeIndividual, e.PlanType)
			assert.Equal(t, model.PlanStatusActive, e.PlanStatus)
			assert.Len(t, e.Days, 2)
			require.Len(t, e.Students, 1)
			assert.Equal(t, "Анна Смирнова", e.Students[0].Contact.FullName())
			assert.False(t, e.HasSession())
		}
	})

	t.Run("materialized session is attached to its slot", func(t *testing.T) {
		plan := mondayWednesdayPlan()
		s := session(plan.ID, at(2025, time.August, 4, 9, 0), at(2025, time.August, 4, 10, 0))
		plan.Sessions = []model.Session{s}

		entries, err := engine.PlanEntries(ctx, plan, nil, nil)
		require.NoError(t, err)
		require.Len(t, entries, 2)

		assert.Equal(t, s.ID, entries[0].SessionID)
		assert.Equal(t, uuid.Nil, entries[1].SessionID)
	})

	t.Run("requested range is clipped to plan dates", func(t *testing.T) {
		plan := mondayWednesdayPlan()
		from := date(2025, time.August, 5)
		to := date(2025, time.September, 30)

		entries, err := engine.PlanEntries(ctx, plan, &from, &to)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, date(2025, time.August, 6), entries[0].Date)
	})

	t.Run("range outside plan yields nothing", func(t *testing.T) {
		plan := mondayWednesdayPlan()
		from := date(2025, time.September, 1)

		entries, err := engine.PlanEntries(ctx, plan, &from, nil)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("reversed requested range fails", func(t *testing.T) {
		plan := mondayWednesdayPlan()
		from := date(2025, time.August, 8)
		to := date(2025, time.August, 4)

		_, err := engine.PlanEntries(ctx, plan, &from, &to)
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})

	t.Run("plan ending before start fails", func(t *testing.T) {
		plan := mondayWednesdayPlan()
		plan.StartDate, plan.EndDate = plan.EndDate, plan.StartDate

		_, err := engine.PlanEntries(ctx, plan, nil, nil)
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})

	t.Run("duplicate weekday rule fails", func(t *testing.T) {
		plan := mondayWednesdayPlan()
		plan.Days = append(plan.Days, rule(time.Monday, hm(16, 0), hm(17, 0)))

		_, err := engine.PlanEntries(ctx, plan, nil, nil)
		assert.ErrorIs(t, err, ErrDuplicateWeekdayRule)
	})

	t.Run("canceled context discards partial result", func(t *testing.T) {
		plan := mondayWednesdayPlan()
		plan.EndDate = date(2027, time.August, 4)
		canceledCtx, cancel := context.WithCancel(ctx)
		cancel()

		entries, err := engine.PlanEntries(canceledCtx, plan, nil, nil)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, entries)
	})

	t.Run("entries do not share student snapshots", func(t *testing.T) {
		plan := mondayWednesdayPlan()

		entries, err := engine.PlanEntries(ctx, plan, nil, nil)
		require.NoError(t, err)
		require.Len(t, entries, 2)

		entries[0].Students[0].Notes = "изменено"
		assert.Empty(t, entries[1].Students[0].Notes)
		assert.Empty(t, plan.Enrollments[0].Notes)
	})
}

func TestEngine_Assemble(t *testing.T) {
	engine := NewEngine(time.UTC)
	ctx := context.Background()

	t.Run("orders entries across plans by slot start", func(t *testing.T) {
		first := mondayWednesdayPlan()
		second := mondayWednesdayPlan()
		second.Days = []model.PlanDay{rule(time.Monday, hm(8, 0), hm(9, 0))}

		cal, err := engine.Assemble(ctx, []*model.Plan{first, second}, nil, nil)
		require.NoError(t, err)
		require.Equal(t, 3, cal.Total)
		require.Len(t, cal.Entries, 3)

		assert.Equal(t, second.ID, cal.Entries[0].PlanID)
		assert.Equal(t, first.ID, cal.Entries[1].PlanID)
		assert.Equal(t, date(2025, time.August, 6), cal.Entries[2].Date)
	})

	t.Run("no plans yields empty calendar", func(t *testing.T) {
		cal, err := engine.Assemble(ctx, nil, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, cal.Total)
		assert.NotNil(t, cal.Entries)
	})

	t.Run("idempotent and does not mutate input", func(t *testing.T) {
		plan := mondayWednesdayPlan()
		later := session(plan.ID, at(2025, time.August, 4, 9, 30), at(2025, time.August, 4, 10, 0))
		earlier := session(plan.ID, at(2025, time.August, 4, 9, 0), at(2025, time.August, 4, 9, 30))
		plan.Sessions = []model.Session{later, earlier}
		days := append([]model.PlanDay(nil), plan.Days...)

		first, err := engine.Assemble(ctx, []*model.Plan{plan}, nil, nil)
		require.NoError(t, err)
		second, err := engine.Assemble(ctx, []*model.Plan{plan}, nil, nil)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, earlier.ID, first.Entries[0].SessionID)
		assert.Equal(t, later.ID, plan.Sessions[0].ID)
		assert.Equal(t, days, plan.Days)
	})

	t.Run("one broken plan fails the whole calendar", func(t *testing.T) {
		ok := mondayWednesdayPlan()
		broken := mondayWednesdayPlan()
		broken.Days = append(broken.Days, rule(time.Wednesday, hm(9, 0), hm(10, 0)))

		_, err := engine.Assemble(ctx, []*model.Plan{ok, broken}, nil, nil)
		assert.ErrorIs(t, err, ErrDuplicateWeekdayRule)
	})
}
