package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/locales/ru"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	ru_translations "github.com/go-playground/validator/v10/translations/ru"
	"github.com/google/uuid"
)

const (
	dateLayout  = time.DateOnly
	clockLayout = "15:04"

	// allPlansArg - вместо ID плана, чтобы показать все планы
	allPlansArg = "all"
)

// ArgParser разбирает и валидирует аргументы команд
type ArgParser struct {
	validate   *validator.Validate
	translator ut.Translator
	loc        *time.Location
}

// NewArgParser создаёт парсер с русскими сообщениями валидации
func NewArgParser(loc *time.Location) (*ArgParser, error) {
	validate := validator.New()

	ruLocale := ru.New()
	uni := ut.New(ruLocale, ruLocale)
	translator, found := uni.GetTranslator(ruLocale.Locale())
	if !found {
		return nil, fmt.Errorf("translator for locale %q not found", ruLocale.Locale())
	}
	if err := ru_translations.RegisterDefaultTranslations(validate, translator); err != nil {
		return nil, fmt.Errorf("register default translations: %w", err)
	}

	// В сообщениях используем имя аргумента команды, а не поле структуры
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("arg"); name != "" {
			return name
		}
		return fld.Name
	})

	if err := registerArgTranslations(validate, translator); err != nil {
		return nil, err
	}

	if loc == nil {
		loc = time.Local
	}

	return &ArgParser{
		validate:   validate,
		translator: translator,
		loc:        loc,
	}, nil
}

// registerArgTranslations задаёт сообщения для тегов, которые используем в аргументах команд.
// Функция регистрации пустая: переводчик уже зарегистрирован выше.
func registerArgTranslations(validate *validator.Validate, translator ut.Translator) error {
	registerFn := func(ut.Translator) error { return nil }
	for _, tag := range argTags {
		if err := validate.RegisterTranslation(tag, translator, registerFn, translateArgErr); err != nil {
			return fmt.Errorf("register translation for %q: %w", tag, err)
		}
	}
	return nil
}

// argTags - теги валидации, которые встречаются в аргументах команд
var argTags = []string{"required", "uuid", "uuid|eq=all", "datetime", "max"}

func translateArgErr(_ ut.Translator, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("не указан аргумент %s", fe.Field())
	case "uuid", "uuid|eq=all":
		return fmt.Sprintf("%s должен быть UUID", fe.Field())
	case "datetime":
		if fe.Param() == clockLayout {
			return fmt.Sprintf("%s должен быть временем в формате ЧЧ:ММ", fe.Field())
		}
		return fmt.Sprintf("%s должен быть датой в формате ГГГГ-ММ-ДД", fe.Field())
	case "max":
		return fmt.Sprintf("%s: не больше %s символов", fe.Field(), fe.Param())
	default:
		return fe.Error()
	}
}

// ArgsError - ошибка разбора аргументов с текстом для пользователя
type ArgsError struct {
	Message string
}

func (e *ArgsError) Error() string {
	return e.Message
}

// check валидирует структуру и переводит ошибки валидатора
func (p *ArgParser) check(args any) error {
	err := p.validate.Struct(args)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fe.Translate(p.translator))
	}
	return &ArgsError{Message: strings.Join(msgs, "\n")}
}

// commandArgs отрезает саму команду (в т.ч. /cmd@botname) и делит остаток по пробелам
func commandArgs(text string) []string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}
	return fields[1:]
}

func argAt(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func (p *ArgParser) parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, value, p.loc)
	if err != nil {
		return nil, fmt.Errorf("parse date %q: %w", value, err)
	}
	return &t, nil
}

type calendarRaw struct {
	PlanID string `arg:"plan_id" validate:"required,uuid"`
	From   string `arg:"from" validate:"omitempty,datetime=2006-01-02"`
	To     string `arg:"to" validate:"omitempty,datetime=2006-01-02"`
}

// CalendarArgs - аргументы /calendar
type CalendarArgs struct {
	PlanID uuid.UUID
	From   *time.Time
	To     *time.Time
}

// ParseCalendar разбирает "/calendar <plan_id> [from] [to]"
func (p *ArgParser) ParseCalendar(text string) (*CalendarArgs, error) {
	args := commandArgs(text)
	raw := calendarRaw{PlanID: argAt(args, 0), From: argAt(args, 1), To: argAt(args, 2)}
	if err := p.check(raw); err != nil {
		return nil, err
	}

	out := &CalendarArgs{PlanID: uuid.MustParse(raw.PlanID)}
	var err error
	if out.From, err = p.parseDate(raw.From); err != nil {
		return nil, err
	}
	if out.To, err = p.parseDate(raw.To); err != nil {
		return nil, err
	}
	return out, nil
}

type rangeRaw struct {
	From string `arg:"from" validate:"omitempty,datetime=2006-01-02"`
	To   string `arg:"to" validate:"omitempty,datetime=2006-01-02"`
}

// RangeArgs - необязательный диапазон дат
type RangeArgs struct {
	From *time.Time
	To   *time.Time
}

// ParseRange разбирает "/calendarall [from] [to]"
func (p *ArgParser) ParseRange(text string) (*RangeArgs, error) {
	args := commandArgs(text)
	raw := rangeRaw{From: argAt(args, 0), To: argAt(args, 1)}
	if err := p.check(raw); err != nil {
		return nil, err
	}

	out := &RangeArgs{}
	var err error
	if out.From, err = p.parseDate(raw.From); err != nil {
		return nil, err
	}
	if out.To, err = p.parseDate(raw.To); err != nil {
		return nil, err
	}
	return out, nil
}

type weekRaw struct {
	PlanID string `arg:"plan_id" validate:"required,uuid|eq=all"`
	Date   string `arg:"date" validate:"omitempty,datetime=2006-01-02"`
}

// WeekArgs - аргументы /week. PlanID == uuid.Nil означает все планы.
type WeekArgs struct {
	PlanID uuid.UUID
	Day    time.Time
}

// ParseWeek разбирает "/week <plan_id|all> [date]"; без даты берётся now
func (p *ArgParser) ParseWeek(text string, now time.Time) (*WeekArgs, error) {
	args := commandArgs(text)
	raw := weekRaw{PlanID: argAt(args, 0), Date: argAt(args, 1)}
	if err := p.check(raw); err != nil {
		return nil, err
	}

	out := &WeekArgs{Day: now.In(p.loc)}
	if raw.PlanID != allPlansArg {
		out.PlanID = uuid.MustParse(raw.PlanID)
	}
	day, err := p.parseDate(raw.Date)
	if err != nil {
		return nil, err
	}
	if day != nil {
		out.Day = *day
	}
	return out, nil
}

type newSessionRaw struct {
	PlanID string `arg:"plan_id" validate:"required,uuid"`
	Date   string `arg:"date" validate:"required,datetime=2006-01-02"`
	Start  string `arg:"start" validate:"required,datetime=15:04"`
	End    string `arg:"end" validate:"required,datetime=15:04"`
	Title  string `arg:"title" validate:"required,max=200"`
}

// NewSessionArgs - аргументы /newsession
type NewSessionArgs struct {
	PlanID       uuid.UUID
	ExpectedDate time.Time
	StartTime    time.Time
	EndTime      time.Time
	Title        string
}

// ParseNewSession разбирает "/newsession <plan_id> <date> <HH:MM> <HH:MM> <title>".
// Время конца "24:00" не поддерживается: занятие должно закончиться в тот же день.
func (p *ArgParser) ParseNewSession(text string) (*NewSessionArgs, error) {
	args := commandArgs(text)
	raw := newSessionRaw{
		PlanID: argAt(args, 0),
		Date:   argAt(args, 1),
		Start:  argAt(args, 2),
		End:    argAt(args, 3),
	}
	if len(args) > 4 {
		raw.Title = strings.Join(args[4:], " ")
	}
	if err := p.check(raw); err != nil {
		return nil, err
	}

	date, err := time.ParseInLocation(dateLayout, raw.Date, p.loc)
	if err != nil {
		return nil, fmt.Errorf("parse date %q: %w", raw.Date, err)
	}
	start, err := p.clockOn(date, raw.Start)
	if err != nil {
		return nil, err
	}
	end, err := p.clockOn(date, raw.End)
	if err != nil {
		return nil, err
	}

	return &NewSessionArgs{
		PlanID:       uuid.MustParse(raw.PlanID),
		ExpectedDate: date,
		StartTime:    start,
		EndTime:      end,
		Title:        raw.Title,
	}, nil
}

// clockOn переносит время "HH:MM" на дату date
func (p *ArgParser) clockOn(date time.Time, clock string) (time.Time, error) {
	c, err := time.Parse(clockLayout, clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", clock, err)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), c.Hour(), c.Minute(), 0, 0, p.loc), nil
}

type sessionIDRaw struct {
	SessionID string `arg:"session_id" validate:"required,uuid"`
}

// ParseSessionID разбирает "/cancelsession <session_id>"
func (p *ArgParser) ParseSessionID(text string) (uuid.UUID, error) {
	raw := sessionIDRaw{SessionID: argAt(commandArgs(text), 0)}
	if err := p.check(raw); err != nil {
		return uuid.Nil, err
	}
	return uuid.MustParse(raw.SessionID), nil
}
