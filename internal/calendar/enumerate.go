package calendar

import (
	"fmt"
	"iter"
	"time"
)

// Enumerate перечисляет даты из [from, to] (обе границы включительно),
// чей день недели входит в set. Время суток отбрасывается.
// Последовательность ленивая и может быть пройдена повторно.
func (e *Engine) Enumerate(from, to time.Time, set WeekdaySet) (iter.Seq[time.Time], error) {
	start := e.midnight(from)
	end := e.midnight(to)
	if start.After(end) {
		return nil, fmt.Errorf("%w: %s > %s", ErrInvalidDateRange, start.Format(time.DateOnly), end.Format(time.DateOnly))
	}

	return func(yield func(time.Time) bool) {
		// AddDate вместо Add(24h): корректно при переходе на летнее время
		for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
			if !set.Has(date.Weekday()) {
				continue
			}
			if !yield(date) {
				return
			}
		}
	}, nil
}
