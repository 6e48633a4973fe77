package formatting

import (
	"bytes"
	"fmt"
	"image/color"
	"sync"
	"time"

	"github.com/Freeeeeet/tutor_calendar/internal/model"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Константы размеров и отступов
const (
	imageWidth       = 1400
	imageHeight      = 900
	headerHeight     = 100
	leftLabelsWidth  = 80
	legendWidth      = 140
	dayPaddingX      = 8
	minSlotHeight    = 8.0
	slotBorderRadius = 6.0
	shadowOffset     = 3.0
	totalDaysInWeek  = 7
	hourPaddingTop   = 1
	hourPaddingBot   = 1
	defaultMinHour   = 8
	defaultMaxHour   = 20
)

// Константы шрифтов
const (
	titleFontSize      = 25.0
	dayFontSize        = 24.0
	hourLabelFontSize  = 16.0
	slotTimeFontSize   = 15.0
	legendItemFontSize = 12.0
)

// Цветовая схема
var (
	bgColor        = color.RGBA{245, 246, 248, 255}
	textColor      = color.RGBA{80, 85, 90, 220}
	hourLabelColor = color.RGBA{110, 115, 120, 200}
	hourLineColor  = color.NRGBA{150, 150, 150, 255}
	todayBgColor   = color.NRGBA{255, 99, 71, 125}
	evenDayColor   = color.NRGBA{240, 240, 240, 255}
	oddDayColor    = color.NRGBA{220, 220, 220, 255}

	slotFilledColor   = color.RGBA{133, 193, 85, 220}
	slotUnfilledColor = color.RGBA{255, 182, 193, 255}
	slotTextColor     = color.RGBA{20, 24, 28, 230}
	slotShadowColor   = color.RGBA{0, 0, 0, 20}

	legendItemColor = color.RGBA{70, 74, 78, 220}
)

type fontWeight int

const (
	fontRegular fontWeight = iota
	fontBold
)

var (
	fontsOnce   sync.Once
	parsedFonts map[fontWeight]*opentype.Font
)

// loadFont ставит шрифт нужного размера, при ошибке - встроенный basicfont
func loadFont(dc *gg.Context, size float64, weight fontWeight) {
	fontsOnce.Do(func() {
		parsedFonts = make(map[fontWeight]*opentype.Font, 2)
		if f, err := opentype.Parse(goregular.TTF); err == nil {
			parsedFonts[fontRegular] = f
		}
		if f, err := opentype.Parse(gobold.TTF); err == nil {
			parsedFonts[fontBold] = f
		}
	})

	if parsed, ok := parsedFonts[weight]; ok {
		face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err == nil {
			dc.SetFontFace(face)
			return
		}
	}
	dc.SetFontFace(basicfont.Face7x13)
}

// weekBounds содержит границы недели
type weekBounds struct {
	start time.Time
	end   time.Time
}

// hourRange содержит диапазон часов для отображения
type hourRange struct {
	start int
	end   int
	total int
}

// GenerateWeekImage рисует неделю (Пн-Вс), содержащую day, со слотами календаря.
// Зелёный слот - занятие создано, розовый - ожидаемое занятие без записи.
func GenerateWeekImage(day time.Time, entries []model.CalendarEntry, loc *time.Location, now time.Time) ([]byte, error) {
	week := normalizeToWeekBounds(day.In(loc))
	today := normalizeToDay(now.In(loc))
	highlightToday := !today.Before(week.start) && !today.After(week.end)

	byDay := groupEntriesByDay(entries, week, loc)
	hours := calculateHourRange(entries, loc)

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetColor(bgColor)
	dc.Clear()

	dayWidth := (imageWidth - leftLabelsWidth - legendWidth) / totalDaysInWeek
	dayHeight := imageHeight - headerHeight
	cellHeight := float64(dayHeight) / float64(hours.total)

	drawHeader(dc, week)
	drawHourLabels(dc, hours, cellHeight)

	current := week.start
	for i := 0; i < totalDaysInWeek; i++ {
		x := float64(leftLabelsWidth + i*dayWidth)
		y := float64(headerHeight)

		drawDayBackground(dc, x, y, dayWidth, dayHeight, i, highlightToday && current.Equal(today))
		drawDayHeader(dc, current, x, y, dayWidth)
		drawHourLines(dc, x, y, dayWidth, hours, cellHeight)
		for _, entry := range byDay[current.Format(time.DateOnly)] {
			drawEntry(dc, entry, loc, x, y, dayWidth, hours, cellHeight)
		}

		current = current.AddDate(0, 0, 1)
	}

	drawLegend(dc, dayWidth)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode week image: %w", err)
	}
	return buf.Bytes(), nil
}

// WeekRange возвращает понедельник и воскресенье недели, содержащей day
func WeekRange(day time.Time, loc *time.Location) (time.Time, time.Time) {
	week := normalizeToWeekBounds(day.In(loc))
	return week.start, week.end
}

// normalizeToWeekBounds нормализует дату к границам недели (Пн-Вс)
func normalizeToWeekBounds(date time.Time) weekBounds {
	normalized := normalizeToDay(date)

	daysSinceMonday := int(normalized.Weekday()) - 1
	if normalized.Weekday() == time.Sunday {
		daysSinceMonday = 6
	}

	start := normalized.AddDate(0, 0, -daysSinceMonday)
	return weekBounds{start: start, end: start.AddDate(0, 0, 6)}
}

// normalizeToDay нормализует время к началу дня
func normalizeToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func groupEntriesByDay(entries []model.CalendarEntry, week weekBounds, loc *time.Location) map[string][]model.CalendarEntry {
	byDay := make(map[string][]model.CalendarEntry)
	for _, entry := range entries {
		day := normalizeToDay(entry.SlotStart.In(loc))
		if day.Before(week.start) || day.After(week.end) {
			continue
		}
		key := day.Format(time.DateOnly)
		byDay[key] = append(byDay[key], entry)
	}
	return byDay
}

// calculateHourRange определяет диапазон часов для отображения
func calculateHourRange(entries []model.CalendarEntry, loc *time.Location) hourRange {
	minHour, maxHour := 24, 0
	for _, entry := range entries {
		start := entry.SlotStart.In(loc)
		end := entry.SlotEnd.In(loc)
		endH := end.Hour()
		if end.Minute() > 0 {
			endH++
		}
		if !isSameDay(start, end) {
			endH = 24
		}
		minHour = min(minHour, start.Hour())
		maxHour = max(maxHour, endH)
	}

	if minHour == 24 {
		minHour, maxHour = defaultMinHour, defaultMaxHour
	}

	startHour := max(minHour-hourPaddingTop, 0)
	endHour := min(maxHour+hourPaddingBot, 24)

	return hourRange{start: startHour, end: endHour, total: endHour - startHour}
}

func isSameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// drawHeader рисует заголовок с названием месяца
func drawHeader(dc *gg.Context, week weekBounds) {
	title := GetMonthName(week.start.Month())
	if week.start.Month() != week.end.Month() {
		title += " - " + GetMonthName(week.end.Month())
	}
	title += fmt.Sprintf(" %d", week.end.Year())

	loadFont(dc, titleFontSize, fontBold)
	dc.SetColor(textColor)
	w, h := dc.MeasureString(title)
	dc.DrawStringAnchored(title, w/2+10, float64(headerHeight)/8+h/2, 0, 0)
}

// drawHourLabels рисует колонку с часами слева
func drawHourLabels(dc *gg.Context, hours hourRange, cellHeight float64) {
	loadFont(dc, hourLabelFontSize, fontRegular)
	dc.SetColor(hourLabelColor)

	for i := 0; i < hours.total; i++ {
		y := float64(headerHeight) + float64(i)*cellHeight
		dc.DrawStringAnchored(fmt.Sprintf("%02d:00", hours.start+i), float64(leftLabelsWidth)-10, y, 1, 0.5)
	}
}

func drawDayBackground(dc *gg.Context, x, y float64, dayWidth, dayHeight, dayIndex int, isToday bool) {
	switch {
	case isToday:
		dc.SetColor(todayBgColor)
	case dayIndex%2 == 0:
		dc.SetColor(evenDayColor)
	default:
		dc.SetColor(oddDayColor)
	}
	dc.DrawRectangle(x, y, float64(dayWidth), float64(dayHeight))
	dc.Fill()
}

func drawDayHeader(dc *gg.Context, date time.Time, x, y float64, dayWidth int) {
	loadFont(dc, dayFontSize, fontBold)
	dc.SetColor(textColor)
	dc.DrawStringAnchored(date.Format("02.01"), x+float64(dayWidth)/2, y, 0.5, -1)
	dc.DrawStringAnchored(GetWeekdayShortName(date.Weekday()), x+float64(dayWidth)/2, y, 0.5, -0.2)
}

func drawHourLines(dc *gg.Context, x, y float64, dayWidth int, hours hourRange, cellHeight float64) {
	dc.SetLineWidth(0.3)
	dc.SetColor(hourLineColor)

	for i := 0; i <= hours.total; i++ {
		hy := y + float64(i)*cellHeight
		dc.DrawLine(x, hy, x+float64(dayWidth), hy)
		dc.Stroke()
	}
}

// drawEntry рисует один слот календаря
func drawEntry(dc *gg.Context, entry model.CalendarEntry, loc *time.Location, x, y float64, dayWidth int, hours hourRange, cellHeight float64) {
	start := entry.SlotStart.In(loc)
	end := entry.SlotEnd.In(loc)
	startHour := float64(start.Hour()) + float64(start.Minute())/60.0
	endHour := startHour + end.Sub(start).Hours()

	slotY := y + (startHour-float64(hours.start))*cellHeight
	slotHeight := max((endHour-startHour)*cellHeight, minSlotHeight)
	slotX := x + dayPaddingX
	slotWidth := float64(dayWidth) - dayPaddingX*2

	fill := slotUnfilledColor
	if entry.HasSession() {
		fill = slotFilledColor
	}

	// Тень
	dc.SetColor(slotShadowColor)
	dc.DrawRoundedRectangle(slotX+shadowOffset, slotY+2+shadowOffset, slotWidth, slotHeight-4, slotBorderRadius)
	dc.Fill()

	dc.SetColor(fill)
	dc.DrawRoundedRectangle(slotX, slotY+2, slotWidth, slotHeight-4, slotBorderRadius)
	dc.Fill()

	dc.SetColor(darkenColor(fill, 0.8))
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(slotX, slotY+2, slotWidth, slotHeight-4, slotBorderRadius)
	dc.Stroke()

	loadFont(dc, slotTimeFontSize, fontBold)
	dc.SetColor(slotTextColor)
	txtX := slotX + 8
	txtY := slotY + 18
	dc.DrawStringAnchored(FormatTimeRange(start, end), txtX, txtY, 0, 0)

	if slotHeight > 40 {
		label := entry.PlanTitle
		if runes := []rune(label); len(runes) > 18 {
			label = string(runes[:15]) + "..."
		}
		loadFont(dc, slotTimeFontSize-2, fontRegular)
		dc.DrawStringAnchored(label, txtX, txtY+16, 0, 0)
	}
}

// darkenColor затемняет цвет на указанный множитель
func darkenColor(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

// drawLegend рисует легенду справа
func drawLegend(dc *gg.Context, dayWidth int) {
	items := []struct {
		label string
		clr   color.Color
	}{
		{"Занятие создано", slotFilledColor},
		{"Без занятия", slotUnfilledColor},
	}

	boxW, boxH := 20.0, 14.0
	liX := float64(leftLabelsWidth+totalDaysInWeek*dayWidth) + 10
	liY := float64(imageHeight) - 80.0

	for _, item := range items {
		dc.SetColor(item.clr)
		dc.DrawRoundedRectangle(liX, liY, boxW, boxH, 3)
		dc.Fill()

		loadFont(dc, legendItemFontSize, fontRegular)
		dc.SetColor(legendItemColor)
		dc.DrawStringAnchored(item.label, liX+boxW+8, liY+boxH/2+1, 0, 0.2)
		liY += boxH + 14
	}
}
