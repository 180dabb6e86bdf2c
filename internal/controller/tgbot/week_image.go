package tgbot

import (
	"bytes"
	"image/color"
	"strconv"
	"sync"
	"time"

	"github.com/Freeeeeet/nau_schedule/internal/export"
	"github.com/Freeeeeet/nau_schedule/internal/model"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Размеры и отступы
const (
	imageWidth       = 1400
	imageHeight      = 900
	headerHeight     = 100
	leftLabelsWidth  = 80
	legendWidth      = 140
	dayPaddingX      = 6
	minLessonHeight  = 8.0
	lessonRadius     = 6.0
	shadowOffset     = 3.0
	totalDaysInWeek  = 7
	defaultFirstHour = 8
	defaultLastHour  = 18
)

// Размеры шрифтов
const (
	titleFontSize      = 25.0
	dayFontSize        = 24.0
	hourLabelFontSize  = 18.0
	lessonTimeFontSize = 15.0
	lessonNameFontSize = 13.0
	legendItemFontSize = 12.0
	lessonNameMaxRunes = 22
)

var (
	bgColor          = color.RGBA{245, 246, 248, 255}
	textColor        = color.RGBA{80, 85, 90, 220}
	hourLabelColor   = color.RGBA{110, 115, 120, 200}
	hourLineColor    = color.NRGBA{150, 150, 150, 255}
	todayBgColor     = color.NRGBA{255, 99, 71, 90}
	evenDayColor     = color.NRGBA{240, 240, 240, 255}
	oddDayColor      = color.NRGBA{220, 220, 220, 255}
	currentTimeColor = color.NRGBA{255, 80, 80, 200}

	firstSubgroupColor  = color.RGBA{133, 193, 85, 220}
	secondSubgroupColor = color.RGBA{110, 160, 230, 220}
	wholeGroupColor     = color.RGBA{240, 190, 90, 220}
	canceledColor       = color.RGBA{158, 158, 158, 200}
	lessonTextColor     = color.RGBA{20, 24, 28, 230}
	lessonShadowColor   = color.RGBA{0, 0, 0, 20}

	legendItemColor = color.RGBA{70, 74, 78, 220}
)

type fontStyle int

const (
	fontRegular fontStyle = iota
	fontBold
)

var (
	fontsMu     sync.Mutex
	cachedFonts = make(map[fontStyle]*opentype.Font)
)

// hourRange часы, которые попадают на картинку
type hourRange struct {
	start int
	end   int
	total int
}

// setFont выставляет шрифт Go нужного начертания, basicfont при ошибке
func setFont(dc *gg.Context, size float64, style fontStyle) {
	fontsMu.Lock()
	parsed, ok := cachedFonts[style]
	if !ok {
		data := goregular.TTF
		if style == fontBold {
			data = gobold.TTF
		}
		var err error
		parsed, err = opentype.Parse(data)
		if err != nil {
			parsed = nil
		}
		cachedFonts[style] = parsed
	}
	fontsMu.Unlock()

	if parsed != nil {
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

// RenderWeek рисует недельное расписание группы в PNG.
// monday - дата понедельника, now - для подсветки сегодняшнего дня.
func RenderWeek(title string, monday time.Time, week model.Week, now time.Time) ([]byte, error) {
	monday = normalizeToDay(monday)
	today := normalizeToDay(now.In(monday.Location()))
	highlightToday := !today.Before(monday) && today.Before(monday.AddDate(0, 0, totalDaysInWeek))

	hours := calculateHourRange(week)

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetColor(bgColor)
	dc.Clear()

	dayWidth := (imageWidth - leftLabelsWidth - legendWidth) / totalDaysInWeek
	dayHeight := imageHeight - headerHeight
	cellHeight := float64(dayHeight) / float64(hours.total)

	drawHeader(dc, title, monday, week.WeekNumber)
	drawHourLabels(dc, hours, cellHeight)

	for dayIndex := 0; dayIndex < totalDaysInWeek; dayIndex++ {
		date := monday.AddDate(0, 0, dayIndex)
		x := float64(leftLabelsWidth + dayIndex*dayWidth)
		y := float64(headerHeight)

		drawDayBackground(dc, x, y, dayWidth, dayHeight, dayIndex, highlightToday && date.Equal(today))
		drawDayHeader(dc, date, x, y, dayWidth)
		drawHourLines(dc, x, y, dayWidth, hours, cellHeight)

		if dayIndex < len(week.Days) {
			for _, lesson := range week.Days[dayIndex].Lessons {
				drawLesson(dc, lesson, x, y, dayWidth, hours, cellHeight)
			}
		}
	}

	if highlightToday {
		drawCurrentTimeLine(dc, now.In(monday.Location()), hours, cellHeight, dayWidth)
	}
	drawLegend(dc, dayWidth)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func normalizeToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// calculateHourRange часы от первого до последнего занятия недели с запасом в час
func calculateHourRange(week model.Week) hourRange {
	first, last := 24, 0
	for _, day := range week.Days {
		for _, l := range day.Lessons {
			startH := l.Time / 60
			endH := (l.Time + l.Duration + 59) / 60
			if startH < first {
				first = startH
			}
			if endH > last {
				last = endH
			}
		}
	}
	if first == 24 {
		first, last = defaultFirstHour, defaultLastHour
	}

	start := first - 1
	end := last + 1
	if start < 0 {
		start = 0
	}
	if end > 24 {
		end = 24
	}
	if end <= start {
		end = start + 1
	}
	return hourRange{start: start, end: end, total: end - start}
}

func drawHeader(dc *gg.Context, title string, monday time.Time, weekNumber int) {
	sunday := monday.AddDate(0, 0, totalDaysInWeek-1)

	months := monthName(monday.Month())
	if sunday.Month() != monday.Month() {
		months += " - " + monthName(sunday.Month())
	}
	text := title + "  " + months
	if weekNumber > 0 {
		text += "  (" + strconv.Itoa(weekNumber) + " тиждень)"
	}

	setFont(dc, titleFontSize, fontBold)
	dc.SetColor(textColor)
	_, h := dc.MeasureString(text)
	dc.DrawStringAnchored(text, float64(leftLabelsWidth), float64(headerHeight)/8+h/2, 0, 0)
}

func drawHourLabels(dc *gg.Context, hours hourRange, cellHeight float64) {
	setFont(dc, hourLabelFontSize, fontRegular)
	dc.SetColor(hourLabelColor)

	for i := 0; i <= hours.total; i++ {
		y := float64(headerHeight) + float64(i)*cellHeight
		dc.DrawStringAnchored(export.ClockTime((hours.start+i)*60), float64(leftLabelsWidth)-10, y, 1, 0.5)
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
	setFont(dc, dayFontSize, fontBold)
	dc.SetColor(textColor)
	dc.DrawStringAnchored(date.Format("02.01"), x+float64(dayWidth)/2, y, 0.5, -1)
	dc.DrawStringAnchored(weekdayShort(date.Weekday()), x+float64(dayWidth)/2, y, 0.5, -0.2)
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

// drawLesson рисует занятие. Первая подгруппа слева, вторая справа, общие занятия на всю ширину.
func drawLesson(dc *gg.Context, lesson model.OutputLesson, x, y float64, dayWidth int, hours hourRange, cellHeight float64) {
	startHour := float64(lesson.Time) / 60
	endHour := float64(lesson.Time+lesson.Duration) / 60

	top := y + (startHour-float64(hours.start))*cellHeight
	height := (endHour - startHour) * cellHeight
	if height < minLessonHeight {
		height = minLessonHeight
	}

	left := x + dayPaddingX
	width := float64(dayWidth) - dayPaddingX*2
	switch lesson.Subgroup {
	case model.SubgroupFirst:
		width /= 2
	case model.SubgroupSecond:
		width /= 2
		left += width
	}

	fill := lessonColor(lesson)

	dc.SetColor(lessonShadowColor)
	dc.DrawRoundedRectangle(left+shadowOffset, top+2+shadowOffset, width, height-4, lessonRadius)
	dc.Fill()

	dc.SetColor(fill)
	dc.DrawRoundedRectangle(left, top+2, width, height-4, lessonRadius)
	dc.Fill()

	dc.SetColor(darkenColor(fill, 0.8))
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(left, top+2, width, height-4, lessonRadius)
	dc.Stroke()

	txtX := left + 6
	txtY := top + 18

	setFont(dc, lessonTimeFontSize, fontBold)
	dc.SetColor(lessonTextColor)
	dc.DrawStringAnchored(export.ClockTime(lesson.Time), txtX, txtY, 0, 0)

	if name := truncateRunes(lesson.Title(), lessonNameMaxRunes); name != "" && height > 30 {
		setFont(dc, lessonNameFontSize, fontRegular)
		dc.DrawStringWrapped(name, txtX, txtY+6, 0, 0, width-12, 1.1, gg.AlignLeft)
	}
}

func lessonColor(lesson model.OutputLesson) color.RGBA {
	if lesson.Canceled {
		return canceledColor
	}
	switch lesson.Subgroup {
	case model.SubgroupFirst:
		return firstSubgroupColor
	case model.SubgroupSecond:
		return secondSubgroupColor
	default:
		return wholeGroupColor
	}
}

func darkenColor(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

func drawCurrentTimeLine(dc *gg.Context, now time.Time, hours hourRange, cellHeight float64, dayWidth int) {
	current := float64(now.Hour()) + float64(now.Minute())/60
	if current < float64(hours.start) || current > float64(hours.end) {
		return
	}

	lineY := float64(headerHeight) + (current-float64(hours.start))*cellHeight
	dc.SetColor(currentTimeColor)
	dc.SetLineWidth(2)
	dc.DrawLine(float64(leftLabelsWidth), lineY, float64(leftLabelsWidth+totalDaysInWeek*dayWidth), lineY)
	dc.Stroke()
}

func drawLegend(dc *gg.Context, dayWidth int) {
	items := []struct {
		label string
		clr   color.Color
	}{
		{export.SubgroupLabel(model.SubgroupFirst), firstSubgroupColor},
		{export.SubgroupLabel(model.SubgroupSecond), secondSubgroupColor},
		{export.SubgroupLabel(model.SubgroupAll), wholeGroupColor},
		{"скасовано", canceledColor},
	}

	const boxW, boxH = 20.0, 14.0
	liX := float64(leftLabelsWidth+totalDaysInWeek*dayWidth) + 10
	liY := float64(imageHeight) - 130

	setFont(dc, legendItemFontSize, fontRegular)
	for _, item := range items {
		dc.SetColor(item.clr)
		dc.DrawRoundedRectangle(liX, liY, boxW, boxH, 3)
		dc.Fill()

		dc.SetColor(legendItemColor)
		dc.DrawStringAnchored(item.label, liX+boxW+8, liY+boxH/2+1, 0, 0.2)
		liY += boxH + 14
	}
}

// truncateRunes обрезает строку до max символов с многоточием
func truncateRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

func weekdayShort(weekday time.Weekday) string {
	return [...]string{"Нд", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"}[weekday]
}

func monthName(month time.Month) string {
	return [...]string{
		"Січень", "Лютий", "Березень", "Квітень", "Травень", "Червень",
		"Липень", "Серпень", "Вересень", "Жовтень", "Листопад", "Грудень",
	}[month-1]
}
