// Package calendar разворачивает недельные расписания планов в календарь
// и проверяет новые занятия на пересечения.
//
// Движок работает только с уже загруженными данными: он не ходит в БД,
// не держит состояния между вызовами и никогда не изменяет переданные планы.
package calendar

import "time"

// Engine нормализует все даты к полуночи в своей временной зоне
type Engine struct {
	loc *time.Location
}

// NewEngine создаёт движок. Если loc == nil, используется time.Local.
func NewEngine(loc *time.Location) *Engine {
	if loc == nil {
		loc = time.Local
	}
	return &Engine{loc: loc}
}

// Location возвращает временную зону движка
func (e *Engine) Location() *time.Location {
	return e.loc
}

// midnight приводит момент времени к началу его календарного дня
func (e *Engine) midnight(t time.Time) time.Time {
	y, m, d := t.In(e.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, e.loc)
}

// dayKey - календарная дата без времени, пригодная как ключ map
type dayKey struct {
	year  int
	month time.Month
	day   int
}

func (e *Engine) keyOf(t time.Time) dayKey {
	y, m, d := t.In(e.loc).Date()
	return dayKey{year: y, month: m, day: d}
}
