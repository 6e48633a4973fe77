package calendar

import (
	"slices"
	"time"

	"github.com/Freeeeeet/tutor_calendar/internal/model"
	"github.com/google/uuid"
)

// SessionIndex группирует занятия плана по календарной дате начала.
// Строится один раз на план, а не на каждый слот.
type SessionIndex struct {
	engine *Engine
	byDay  map[dayKey][]*model.Session
}

// IndexSessions строит индекс. Внутри дня занятия упорядочены по времени начала,
// при равном начале сохраняется исходный порядок.
func (e *Engine) IndexSessions(sessions []model.Session) *SessionIndex {
	idx := &SessionIndex{
		engine: e,
		byDay:  make(map[dayKey][]*model.Session, len(sessions)),
	}
	for i := range sessions {
		s := &sessions[i]
		key := e.keyOf(s.StartTime)
		idx.byDay[key] = append(idx.byDay[key], s)
	}
	for _, bucket := range idx.byDay {
		slices.SortStableFunc(bucket, func(a, b *model.Session) int {
			return a.StartTime.Compare(b.StartTime)
		})
	}
	return idx
}

// On возвращает занятия за календарный день date
func (idx *SessionIndex) On(date time.Time) []*model.Session {
	return idx.byDay[idx.engine.keyOf(date)]
}

// SlotWindow вычисляет окно слота [StartOffset, EndOffset) по настенным часам дня date.
// В день перехода на летнее/зимнее время 09:00 остаётся 09:00.
func (e *Engine) SlotWindow(date time.Time, rule *model.PlanDay) Window {
	return Window{
		Start: e.wallClock(date, rule.StartOffset),
		End:   e.wallClock(date, rule.EndOffset),
	}
}

// wallClock переносит смещение от полуночи на часы дня date.
// Смещение 24:00 даёт полночь следующего дня.
func (e *Engine) wallClock(date time.Time, offset time.Duration) time.Time {
	y, m, d := date.In(e.loc).Date()
	hours := int(offset / time.Hour)
	minutes := int(offset % time.Hour / time.Minute)
	seconds := int(offset % time.Minute / time.Second)
	return time.Date(y, m, d, hours, minutes, seconds, int(offset%time.Second), e.loc)
}

// Match ищет среди занятий дня date то, что целиком помещается в окно слота.
// Если таких несколько, берётся самое раннее. Если нет ни одного, возвращается uuid.Nil.
func (idx *SessionIndex) Match(date time.Time, slot Window) uuid.UUID {
	for _, s := range idx.On(date) {
		if containedIn(Window{Start: s.StartTime, End: s.EndTime}, slot) {
			return s.ID
		}
	}
	return uuid.Nil
}
