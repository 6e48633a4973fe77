package calendar

import (
	"slices"
	"testing"
	"time"

	"github.com/Freeeeeet/tutor_calendar/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Enumerate(t *testing.T) {
	engine := NewEngine(time.UTC)

	t.Run("yields only pattern weekdays", func(t *testing.T) {
		seq, err := engine.Enumerate(date(2025, time.August, 4), date(2025, time.August, 8), WeekdaysOf(time.Monday, time.Wednesday))
		require.NoError(t, err)

		got := slices.Collect(seq)
		assert.Equal(t, []time.Time{date(2025, time.August, 4), date(2025, time.August, 6)}, got)
	})

	t.Run("ignores time of day", func(t *testing.T) {
		seq, err := engine.Enumerate(at(2025, time.August, 4, 18, 30), at(2025, time.August, 11, 6, 0), WeekdaysOf(time.Monday))
		require.NoError(t, err)

		got := slices.Collect(seq)
		assert.Equal(t, []time.Time{date(2025, time.August, 4), date(2025, time.August, 11)}, got)
	})

	t.Run("single day range", func(t *testing.T) {
		monday := date(2025, time.August, 4)

		seq, err := engine.Enumerate(monday, monday, WeekdaysOf(time.Monday))
		require.NoError(t, err)
		assert.Len(t, slices.Collect(seq), 1)

		seq, err = engine.Enumerate(monday, monday, WeekdaysOf(time.Tuesday))
		require.NoError(t, err)
		assert.Empty(t, slices.Collect(seq))
	})

	t.Run("reversed range fails", func(t *testing.T) {
		_, err := engine.Enumerate(date(2025, time.August, 8), date(2025, time.August, 4), WeekdaysOf(time.Monday))
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})

	t.Run("sequence is restartable", func(t *testing.T) {
		seq, err := engine.Enumerate(date(2025, time.January, 1), date(2025, time.March, 31), WeekdaysOf(time.Friday))
		require.NoError(t, err)
		assert.Equal(t, slices.Collect(seq), slices.Collect(seq))
	})

	t.Run("stops when consumer stops", func(t *testing.T) {
		seq, err := engine.Enumerate(date(2025, time.January, 1), date(2025, time.December, 31), WeekdaysOf(time.Monday))
		require.NoError(t, err)

		count := 0
		for range seq {
			count++
			if count == 3 {
				break
			}
		}
		assert.Equal(t, 3, count)
	})
}

func TestEngine_Enumerate_Properties(t *testing.T) {
	engine := NewEngine(time.UTC)

	sets := []WeekdaySet{
		WeekdaysOf(time.Monday),
		WeekdaysOf(time.Monday, time.Wednesday, time.Friday),
		WeekdaysOf(time.Sunday, time.Saturday),
		WeekdaysOf(time.Sunday, time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday),
		0,
	}
	ranges := [][2]time.Time{
		{date(2025, time.August, 4), date(2025, time.August, 4)},
		{date(2025, time.August, 1), date(2025, time.August, 31)},
		{date(2024, time.February, 20), date(2024, time.March, 5)},
		{date(2024, time.December, 25), date(2026, time.January, 10)},
	}

	for _, set := range sets {
		for _, r := range ranges {
			seq, err := engine.Enumerate(r[0], r[1], set)
			require.NoError(t, err)
			got := slices.Collect(seq)

			want := 0
			for d := r[0]; !d.After(r[1]); d = d.AddDate(0, 0, 1) {
				if set.Has(d.Weekday()) {
					want++
				}
			}
			assert.Len(t, got, want, "set %v range %v", set.Weekdays(), r)

			for i, d := range got {
				assert.True(t, set.Has(d.Weekday()))
				if i > 0 {
					assert.True(t, d.After(got[i-1]), "dates must strictly increase")
				}
			}
		}
	}
}

func TestEngine_Enumerate_DST(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	engine := NewEngine(loc)

	// 30 марта 2025 - переход на летнее время в Берлине
	from := time.Date(2025, time.March, 29, 0, 0, 0, 0, loc)
	to := time.Date(2025, time.April, 1, 0, 0, 0, 0, loc)

	seq, err := engine.Enumerate(from, to, WeekdaysOf(time.Saturday, time.Sunday, time.Monday, time.Tuesday))
	require.NoError(t, err)

	got := slices.Collect(seq)
	require.Len(t, got, 4)
	for _, d := range got {
		assert.Equal(t, 0, d.Hour())
	}
}

func TestEngine_SlotWindow_DST(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	engine := NewEngine(loc)

	tests := []struct {
		name string
		day  time.Time
	}{
		{"spring forward", time.Date(2025, time.March, 30, 0, 0, 0, 0, loc)},
		{"fall back", time.Date(2025, time.October, 26, 0, 0, 0, 0, loc)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slotRule := rule(time.Sunday, hm(9, 0), hm(10, 0))
			y, m, d := tt.day.Date()
			start := time.Date(y, m, d, 9, 0, 0, 0, loc)
			end := time.Date(y, m, d, 10, 0, 0, 0, loc)

			slot := engine.SlotWindow(tt.day, &slotRule)
			assert.True(t, slot.Start.Equal(start), "start %s", slot.Start)
			assert.True(t, slot.End.Equal(end), "end %s", slot.End)
			assert.Equal(t, time.Hour, slot.End.Sub(slot.Start))

			s := session(uuid.New(), start, end)
			idx := engine.IndexSessions([]model.Session{s})
			assert.Equal(t, s.ID, idx.Match(tt.day, slot))
		})
	}
}

func TestEngine_SlotWindow_EndOfDay(t *testing.T) {
	engine := NewEngine(time.UTC)
	slotRule := rule(time.Monday, hm(22, 30), 24*time.Hour)

	slot := engine.SlotWindow(date(2025, time.August, 4), &slotRule)
	assert.Equal(t, at(2025, time.August, 4, 22, 30), slot.Start)
	assert.Equal(t, date(2025, time.August, 5), slot.End)
}
