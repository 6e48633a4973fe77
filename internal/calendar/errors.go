package calendar

import "errors"

// Ошибки движка календаря. Это языконезависимые коды,
// локализация выполняется только при отображении пользователю.
var (
	ErrInvalidDateRange     = errors.New("invalid date range")
	ErrDuplicateWeekdayRule = errors.New("duplicate weekday rule")
	ErrInvalidRule          = errors.New("invalid recurrence rule")
	ErrPlanNotFound         = errors.New("plan not found")
	ErrTitleRequired        = errors.New("title required")
	ErrStartAfterEnd        = errors.New("start after end")
	ErrOutsideExpectedDate  = errors.New("outside expected date")
	ErrTimeOverlap          = errors.New("time overlap")
)
