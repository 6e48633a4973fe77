package handlers

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLoc = time.FixedZone("UTC+3", 3*60*60)

func newTestParser(t *testing.T) *ArgParser {
	t.Helper()
	p, err := NewArgParser(testLoc)
	require.NoError(t, err)
	return p
}

func TestNewArgParser_Translations(t *testing.T) {
	p, err := NewArgParser(nil)
	require.NoError(t, err)
	assert.Equal(t, time.Local, p.loc)

	_, err = p.ParseSessionID("/cancelsession")
	var argsErr *ArgsError
	require.ErrorAs(t, err, &argsErr)
	assert.Equal(t, "не указан аргумент session_id", argsErr.Message)
}

func TestParseNewSession_TitleTooLong(t *testing.T) {
	p := newTestParser(t)
	title := strings.Repeat("а", 201)

	_, err := p.ParseNewSession("/newsession " + uuid.NewString() + " 2025-01-06 09:00 10:00 " + title)
	var argsErr *ArgsError
	require.ErrorAs(t, err, &argsErr)
	assert.Contains(t, argsErr.Message, "title: не больше 200 символов")
}

func TestCommandArgs(t *testing.T) {
	assert.Nil(t, commandArgs(""))
	assert.Empty(t, commandArgs("/plans"))
	assert.Equal(t, []string{"a", "b"}, commandArgs("/calendar@tutor_bot  a   b"))
}

func TestParseCalendar(t *testing.T) {
	p := newTestParser(t)
	id := uuid.New()

	args, err := p.ParseCalendar("/calendar " + id.String())
	require.NoError(t, err)
	assert.Equal(t, id, args.PlanID)
	assert.Nil(t, args.From)
	assert.Nil(t, args.To)

	args, err = p.ParseCalendar("/calendar " + id.String() + " 2025-01-06 2025-01-31")
	require.NoError(t, err)
	require.NotNil(t, args.From)
	require.NotNil(t, args.To)
	assert.Equal(t, time.Date(2025, time.January, 6, 0, 0, 0, 0, testLoc), *args.From)
	assert.Equal(t, time.Date(2025, time.January, 31, 0, 0, 0, 0, testLoc), *args.To)
}

func TestParseCalendar_Invalid(t *testing.T) {
	p := newTestParser(t)

	tests := []struct {
		name string
		text string
		want string
	}{
		{"missing plan", "/calendar", "plan_id"},
		{"bad uuid", "/calendar 42", "plan_id"},
		{"bad date", "/calendar " + uuid.NewString() + " 06.01.2025", "from"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.ParseCalendar(tt.text)
			var argsErr *ArgsError
			require.True(t, errors.As(err, &argsErr))
			assert.Contains(t, argsErr.Message, tt.want)
		})
	}
}

func TestParseRange(t *testing.T) {
	p := newTestParser(t)

	args, err := p.ParseRange("/calendarall")
	require.NoError(t, err)
	assert.Nil(t, args.From)
	assert.Nil(t, args.To)

	args, err = p.ParseRange("/calendarall 2025-01-06")
	require.NoError(t, err)
	require.NotNil(t, args.From)
	assert.Nil(t, args.To)

	_, err = p.ParseRange("/calendarall 2025-01-06 tomorrow")
	assert.Error(t, err)
}

func TestParseWeek(t *testing.T) {
	p := newTestParser(t)
	now := time.Date(2025, time.January, 8, 12, 0, 0, 0, time.UTC)

	args, err := p.ParseWeek("/week all", now)
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, args.PlanID)
	assert.Equal(t, now.In(testLoc), args.Day)

	id := uuid.New()
	args, err = p.ParseWeek("/week "+id.String()+" 2025-02-03", now)
	require.NoError(t, err)
	assert.Equal(t, id, args.PlanID)
	assert.Equal(t, time.Date(2025, time.February, 3, 0, 0, 0, 0, testLoc), args.Day)

	_, err = p.ParseWeek("/week", now)
	assert.Error(t, err)

	_, err = p.ParseWeek("/week everything", now)
	assert.Error(t, err)
}

func TestParseNewSession(t *testing.T) {
	p := newTestParser(t)
	id := uuid.New()

	args, err := p.ParseNewSession("/newsession " + id.String() + " 2025-01-06 09:00 10:30 Алгебра, урок 1")
	require.NoError(t, err)
	assert.Equal(t, id, args.PlanID)
	assert.Equal(t, time.Date(2025, time.January, 6, 0, 0, 0, 0, testLoc), args.ExpectedDate)
	assert.Equal(t, time.Date(2025, time.January, 6, 9, 0, 0, 0, testLoc), args.StartTime)
	assert.Equal(t, time.Date(2025, time.January, 6, 10, 30, 0, 0, testLoc), args.EndTime)
	assert.Equal(t, "Алгебра, урок 1", args.Title)
}

func TestParseNewSession_Invalid(t *testing.T) {
	p := newTestParser(t)
	id := uuid.NewString()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"no title", "/newsession " + id + " 2025-01-06 09:00 10:00", "title"},
		{"bad start", "/newsession " + id + " 2025-01-06 9am 10:00 Урок", "start"},
		{"bad end", "/newsession " + id + " 2025-01-06 09:00 25:00 Урок", "end"},
		{"bad date", "/newsession " + id + " 2025-13-06 09:00 10:00 Урок", "date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.ParseNewSession(tt.text)
			var argsErr *ArgsError
			require.True(t, errors.As(err, &argsErr))
			assert.Contains(t, argsErr.Message, tt.want)
		})
	}
}

func TestParseSessionID(t *testing.T) {
	p := newTestParser(t)
	id := uuid.New()

	got, err := p.ParseSessionID("/cancelsession " + id.String())
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = p.ParseSessionID("/cancelsession")
	assert.Error(t, err)
}
