package model

import (
	"errors"
	"fmt"
	"math/bits"
	"time"

	"github.com/google/uuid"
)

// PlanDay - правило недельного повторения: один день недели и окно времени от полуночи
type PlanDay struct {
	ID          uuid.UUID     `json:"id"`
	PlanID      uuid.UUID     `json:"plan_id"`
	Weekday     time.Weekday  `json:"weekday"`      // 0 = Sunday, 6 = Saturday
	StartOffset time.Duration `json:"start_offset"` // от локальной полуночи
	EndOffset   time.Duration `json:"end_offset"`
}

// PlanDaySummary - краткое описание правила для клиента
type PlanDaySummary struct {
	Weekday     time.Weekday  `json:"weekday"`
	StartOffset time.Duration `json:"start_offset"`
	EndOffset   time.Duration `json:"end_offset"`
}

// Summary возвращает краткое описание правила
func (d PlanDay) Summary() PlanDaySummary {
	return PlanDaySummary{
		Weekday:     d.Weekday,
		StartOffset: d.StartOffset,
		EndOffset:   d.EndOffset,
	}
}

// WeekdayFlag - внешнее представление дня недели одним битом
// (bit 0 = Sunday ... bit 6 = Saturday). Используется только на границе с БД.
type WeekdayFlag uint8

var ErrInvalidWeekdayFlag = errors.New("invalid weekday flag")

// FlagOf кодирует день недели в битовый флаг
func FlagOf(day time.Weekday) WeekdayFlag {
	return WeekdayFlag(1 << uint(day))
}

// Weekday декодирует флаг (log2). Флаг должен содержать ровно один бит из семи.
func (f WeekdayFlag) Weekday() (time.Weekday, error) {
	if f == 0 || f > 1<<6 || bits.OnesCount8(uint8(f)) != 1 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidWeekdayFlag, f)
	}
	return time.Weekday(bits.TrailingZeros8(uint8(f))), nil
}
