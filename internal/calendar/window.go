package calendar

import "time"

// Window - полуинтервал времени [Start, End)
type Window struct {
	Start time.Time
	End   time.Time
}

// containedIn - занятие целиком лежит внутри окна слота.
// Используется при сопоставлении занятий со слотами.
func containedIn(session, slot Window) bool {
	return !session.Start.Before(slot.Start) && !session.End.After(slot.End)
}

// overlaps - два полуинтервала имеют общий момент времени.
// Используется при проверке нового занятия; встык ([9,10) и [10,11)) не пересекаются.
func overlaps(a, b Window) bool {
	return a.Start.Before(b.End) && a.End.After(b.Start)
}
