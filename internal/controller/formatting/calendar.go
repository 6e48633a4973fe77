package formatting

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Freeeeeet/tutor_calendar/internal/model"
	"github.com/google/uuid"
)

const (
	// MaxCalendarLines - сколько записей календаря помещаем в одно сообщение
	MaxCalendarLines = 40

	// MaxMessageLength - лимит Telegram на длину текста сообщения (в символах)
	MaxMessageLength = 4096

	// maxListedStudents - больше этого числа студентов показываем только количество
	maxListedStudents = 3
)

// ShortID возвращает первые 8 символов UUID для компактного вывода
func ShortID(id uuid.UUID) string {
	return id.String()[:8]
}

// FormatPlanDays форматирует недельное расписание: "Понедельник 09:00-10:00, Среда 14:00-15:00"
func FormatPlanDays(days []model.PlanDaySummary) string {
	if len(days) == 0 {
		return "расписание не задано"
	}
	parts := make([]string, 0, len(days))
	for _, d := range days {
		parts = append(parts, fmt.Sprintf("%s %s-%s",
			GetWeekdayName(d.Weekday), FormatOffset(d.StartOffset), FormatOffset(d.EndOffset)))
	}
	return strings.Join(parts, ", ")
}

// GetPlanStatusText возвращает текст статуса плана
func GetPlanStatusText(status model.PlanStatus) string {
	switch status {
	case model.PlanStatusDraft:
		return "📝 Черновик"
	case model.PlanStatusActive:
		return "🟢 Активен"
	case model.PlanStatusCompleted:
		return "✅ Завершён"
	case model.PlanStatusCanceled:
		return "🚫 Отменён"
	default:
		return string(status)
	}
}

// GetPlanTypeText возвращает текст типа плана
func GetPlanTypeText(planType model.PlanType) string {
	switch planType {
	case model.PlanTypeIndividual:
		return "индивидуальный"
	case model.PlanTypeGroup:
		return "групповой"
	default:
		return string(planType)
	}
}

// FormatPlans форматирует список планов
func FormatPlans(plans []*model.Plan) string {
	if len(plans) == 0 {
		return "📭 Планов пока нет."
	}

	header := fmt.Sprintf("📚 Планы (%d):\n", len(plans))

	blocks := make([]string, 0, len(plans))
	for _, p := range plans {
		days := make([]model.PlanDaySummary, 0, len(p.Days))
		for _, d := range p.Days {
			days = append(days, d.Summary())
		}
		var block strings.Builder
		block.WriteString(fmt.Sprintf("\n%s %s (%s)\n", GetPlanStatusText(p.Status), p.Title, GetPlanTypeText(p.Type)))
		block.WriteString(fmt.Sprintf("   🆔 %s\n", p.ID))
		block.WriteString(fmt.Sprintf("   📅 %s - %s\n", FormatDate(p.StartDate), FormatDate(p.EndDate)))
		block.WriteString(fmt.Sprintf("   🗓 %s\n", FormatPlanDays(days)))
		block.WriteString(fmt.Sprintf("   👥 Студентов: %d, занятий: %d\n", len(p.Enrollments), len(p.Sessions)))
		blocks = append(blocks, block.String())
	}

	budget := MaxMessageLength - utf8.RuneCountInString(header+moreLine(len(plans), PluralizePlans))

	var sb strings.Builder
	sb.WriteString(header)
	if shown := writeLimited(&sb, blocks, len(blocks), budget); shown < len(plans) {
		sb.WriteString(moreLine(len(plans)-shown, PluralizePlans))
	}
	return sb.String()
}

// FormatStudents перечисляет имена студентов; для большой группы - только количество
func FormatStudents(students []model.EnrolledStudent) string {
	if len(students) == 0 {
		return "нет студентов"
	}
	if len(students) > maxListedStudents {
		return fmt.Sprintf("%d %s", len(students), PluralizeStudents(len(students)))
	}
	names := make([]string, 0, len(students))
	for _, s := range students {
		names = append(names, s.Contact.FullName())
	}
	return strings.Join(names, ", ")
}

// FormatEntry форматирует одну запись календаря
func FormatEntry(entry model.CalendarEntry, loc *time.Location) string {
	start := entry.SlotStart.In(loc)
	end := entry.SlotEnd.In(loc)

	session := "⏳ занятие не создано"
	if entry.HasSession() {
		session = "✅ занятие " + ShortID(entry.SessionID)
	}

	return fmt.Sprintf("📅 %s %s (%s) · %s\n   %s · 👥 %s",
		FormatDateWithWeekday(start),
		FormatTimeRange(start, end),
		FormatDuration(end.Sub(start)),
		entry.PlanTitle,
		session,
		FormatStudents(entry.Students),
	)
}

// moreLine - хвост "… и ещё N записей" для обрезанного списка
func moreLine(rest int, word func(int) string) string {
	return fmt.Sprintf("\n\n… и ещё %d %s", rest, word(rest))
}

// writeLimited дописывает строки, пока их не больше limit и текст целиком укладывается в budget символов.
// Возвращает число записанных строк.
func writeLimited(sb *strings.Builder, lines []string, limit, budget int) int {
	used := 0
	for i, line := range lines {
		n := utf8.RuneCountInString(line)
		if i >= limit || used+n > budget {
			return i
		}
		sb.WriteString(line)
		used += n
	}
	return len(lines)
}

// FormatCalendar форматирует календарь, обрезая вывод до limit записей и до MaxMessageLength символов
func FormatCalendar(title string, cal *model.Calendar, loc *time.Location, limit int) string {
	if cal.Total == 0 {
		return title + "\n\n📭 В выбранном периоде занятий нет."
	}

	header := fmt.Sprintf("%s\nВсего: %d\n", title, cal.Total)

	filled := 0
	lines := make([]string, 0, len(cal.Entries))
	for _, entry := range cal.Entries {
		if entry.HasSession() {
			filled++
		}
		lines = append(lines, "\n"+FormatEntry(entry, loc))
	}
	footer := fmt.Sprintf("\n\n✅ С занятием: %d · ⏳ Без занятия: %d", filled, cal.Total-filled)

	budget := MaxMessageLength - utf8.RuneCountInString(header+footer+moreLine(cal.Total, PluralizeEntries))

	var sb strings.Builder
	sb.WriteString(header)
	shown := writeLimited(&sb, lines, limit, budget)
	if shown < cal.Total {
		sb.WriteString(moreLine(cal.Total-shown, PluralizeEntries))
	}
	sb.WriteString(footer)

	return sb.String()
}

// FormatDigest форматирует сводку незаполненных слотов
func FormatDigest(entries []model.CalendarEntry, from, to time.Time, loc *time.Location) string {
	header := fmt.Sprintf("🔔 Слоты без занятий на %s - %s", FormatDate(from.In(loc)), FormatDate(to.In(loc)))
	if len(entries) == 0 {
		return header + "\n\n👍 Все ожидаемые занятия созданы."
	}
	header = fmt.Sprintf("%s: %d\n", header, len(entries))

	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		start := entry.SlotStart.In(loc)
		lines = append(lines, fmt.Sprintf("\n• %s %s · %s",
			FormatDateWithWeekday(start), FormatTimeRange(start, entry.SlotEnd.In(loc)), entry.PlanTitle))
	}

	budget := MaxMessageLength - utf8.RuneCountInString(header+moreLine(len(entries), PluralizeEntries))

	var sb strings.Builder
	sb.WriteString(header)
	if shown := writeLimited(&sb, lines, MaxCalendarLines, budget); shown < len(entries) {
		sb.WriteString(moreLine(len(entries)-shown, PluralizeEntries))
	}
	return sb.String()
}
