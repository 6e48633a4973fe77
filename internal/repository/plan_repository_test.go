package repository

import (
	"testing"
	"time"

	"github.com/Freeeeeet/tutor_calendar/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPlanDayRow_ToModel(t *testing.T) {
	row := planDayRow{
		ID:           uuid.New(),
		PlanID:       uuid.New(),
		WeekdayFlag:  2, // понедельник
		StartMinutes: 9*60 + 30,
		EndMinutes:   11 * 60,
	}

	d, err := row.toModel()
	require.NoError(t, err)
	assert.Equal(t, row.ID, d.ID)
	assert.Equal(t, row.PlanID, d.PlanID)
	assert.Equal(t, time.Monday, d.Weekday)
	assert.Equal(t, 9*time.Hour+30*time.Minute, d.StartOffset)
	assert.Equal(t, 11*time.Hour, d.EndOffset)
}

func TestPlanDayRow_ToModel_AllWeekdays(t *testing.T) {
	for day := time.Sunday; day <= time.Saturday; day++ {
		d, err := planDayRow{WeekdayFlag: int16(model.FlagOf(day)), EndMinutes: 60}.toModel()
		require.NoError(t, err)
		assert.Equal(t, day, d.Weekday)
	}
}

func TestPlanDayRow_ToModel_InvalidFlag(t *testing.T) {
	for _, flag := range []int16{0, 3, 128, 256, -1} {
		_, err := planDayRow{ID: uuid.New(), WeekdayFlag: flag}.toModel()
		assert.ErrorIs(t, err, model.ErrInvalidWeekdayFlag, "flag %d", flag)
	}
}

func TestPlanRepository_DateOnly(t *testing.T) {
	tests := []struct {
		name string
		loc  *time.Location
	}{
		{"negative offset", time.FixedZone("UTC-5", -5*60*60)},
		{"positive offset", time.FixedZone("UTC+3", 3*60*60)},
		{"utc", time.UTC},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewPlanRepository(nil, tt.loc, zap.NewNop())

			// pgx отдаёт колонку date как полночь UTC
			got := repo.dateOnly(time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC))

			assert.Equal(t, time.Date(2025, time.March, 3, 0, 0, 0, 0, tt.loc), got)
			assert.Equal(t, time.Monday, got.Weekday())
		})
	}
}
