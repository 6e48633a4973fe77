package calendar

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/tutor_calendar/internal/model"
)

const fullDay = 24 * time.Hour

// WeekdaySet - множество дней недели с повторением
type WeekdaySet uint8

// Has проверяет, входит ли день в множество
func (s WeekdaySet) Has(d time.Weekday) bool {
	return s&(1<<uint(d)) != 0
}

// Add добавляет день в множество
func (s WeekdaySet) Add(d time.Weekday) WeekdaySet {
	return s | 1<<uint(d)
}

// Weekdays возвращает дни множества по возрастанию (Sunday первым)
func (s WeekdaySet) Weekdays() []time.Weekday {
	var days []time.Weekday
	for d := time.Sunday; d <= time.Saturday; d++ {
		if s.Has(d) {
			days = append(days, d)
		}
	}
	return days
}

// WeekdaysOf собирает множество из перечисленных дней
func WeekdaysOf(days ...time.Weekday) WeekdaySet {
	var s WeekdaySet
	for _, d := range days {
		s = s.Add(d)
	}
	return s
}

// Pattern - декодированное недельное расписание плана
type Pattern struct {
	set   WeekdaySet
	rules [7]*model.PlanDay
}

// DecodePattern проверяет правила плана и строит по ним Pattern.
// Два правила на один день недели - ошибка ErrDuplicateWeekdayRule.
func DecodePattern(days []model.PlanDay) (*Pattern, error) {
	p := &Pattern{}
	for i := range days {
		rule := &days[i]
		if rule.Weekday < time.Sunday || rule.Weekday > time.Saturday {
			return nil, fmt.Errorf("%w: weekday %d", ErrInvalidRule, rule.Weekday)
		}
		if rule.StartOffset < 0 || rule.EndOffset > fullDay || rule.StartOffset >= rule.EndOffset {
			return nil, fmt.Errorf("%w: %s window %s-%s", ErrInvalidRule, rule.Weekday, rule.StartOffset, rule.EndOffset)
		}
		if p.set.Has(rule.Weekday) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateWeekdayRule, rule.Weekday)
		}
		p.set = p.set.Add(rule.Weekday)
		p.rules[rule.Weekday] = rule
	}
	return p, nil
}

// Weekdays возвращает множество дней с повторением
func (p *Pattern) Weekdays() WeekdaySet {
	return p.set
}

// Rule возвращает правило для дня недели
func (p *Pattern) Rule(d time.Weekday) (*model.PlanDay, bool) {
	if d < time.Sunday || d > time.Saturday || p.rules[d] == nil {
		return nil, false
	}
	return p.rules[d], true
}

// Summaries возвращает все правила в порядке дней недели
func (p *Pattern) Summaries() []model.PlanDaySummary {
	out := make([]model.PlanDaySummary, 0, 7)
	for _, rule := range p.rules {
		if rule != nil {
			out = append(out, rule.Summary())
		}
	}
	return out
}
