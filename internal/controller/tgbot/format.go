package tgbot

import (
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/Freeeeeet/nau_schedule/internal/export"
	"github.com/Freeeeeet/nau_schedule/internal/model"
	"github.com/Freeeeeet/nau_schedule/internal/service"
	"github.com/Freeeeeet/nau_schedule/internal/timetable"
)

// weekdayNumber номер дня недели 1..7, понедельник первый
func weekdayNumber(t time.Time) int {
	return (int(t.Weekday())+6)%7 + 1
}

// FormatDay текст сообщения с расписанием групп чата на дату (HTML)
func FormatDay(title string, date time.Time, days []service.SubgroupDay) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "📅 <b>%s</b>\n%s, %s",
		html.EscapeString(title),
		export.DayName(weekdayNumber(date)),
		date.Format("02.01.2006"),
	)
	if len(days) > 0 && days[0].WeekNumber > 0 {
		fmt.Fprintf(&sb, " (%d тиждень)", days[0].WeekNumber)
	}
	sb.WriteString("\n")

	for _, day := range days {
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "🎓 <b>%s</b>\n", html.EscapeString(groupTitle(day.Group)))

		if day.SecondSubgroup == nil {
			writeLessons(&sb, day.FirstSubgroup)
			continue
		}
		fmt.Fprintf(&sb, "👥 <i>%s</i>\n", export.SubgroupLabel(model.SubgroupFirst))
		writeLessons(&sb, day.FirstSubgroup)
		fmt.Fprintf(&sb, "👥 <i>%s</i>\n", export.SubgroupLabel(model.SubgroupSecond))
		writeLessons(&sb, day.SecondSubgroup)
	}

	return strings.TrimRight(sb.String(), "\n")
}

func writeLessons(sb *strings.Builder, lessons []service.SubgroupLesson) {
	if len(lessons) == 0 {
		sb.WriteString("Занять немає 🎉\n")
		return
	}
	for _, l := range lessons {
		writeLesson(sb, l)
	}
}

func writeLesson(sb *strings.Builder, l service.SubgroupLesson) {
	title := html.EscapeString(l.Title())
	if l.LessonType != "" {
		title += " (" + html.EscapeString(l.LessonType) + ")"
	}
	period := export.ClockTime(l.Time) + "–" + export.ClockTime(l.Time+l.Duration)

	if l.Canceled {
		fmt.Fprintf(sb, "❌ <s>%s %s</s> скасовано\n", period, title)
		return
	}
	fmt.Fprintf(sb, "🕗 <b>%s</b> %s\n", period, title)

	if lecturers := export.Lecturers(l.OutputLesson); lecturers != "" {
		fmt.Fprintf(sb, "    👤 %s\n", html.EscapeString(lecturers))
	}
	if l.Place != "" {
		fmt.Fprintf(sb, "    📍 %s\n", html.EscapeString(l.Place))
	}
	if l.Comment != "" {
		fmt.Fprintf(sb, "    💬 %s\n", html.EscapeString(l.Comment))
	}
}

// groupTitle первое название группы или её код
func groupTitle(g service.GroupInfo) string {
	if len(g.Names) > 0 && g.Names[0] != "" {
		return g.Names[0]
	}
	return g.Code
}

// userMessage текст для пользователя по ошибке сервиса.
// false означает непредвиденную ошибку, которую нужно залогировать.
func userMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, service.ErrGroupsNotBound):
		return "❌ Чат не прив'язаний до жодної групи.\n\nОберіть групу: /group", true
	case errors.Is(err, service.ErrGroupNotFound):
		return "❌ Групу не знайдено. Перевірте код і спробуйте ще раз.", true
	case errors.Is(err, service.ErrScheduleNotFound):
		return "❌ Для цієї групи ще немає розкладу.", true
	case errors.Is(err, timetable.ErrUncalibrated):
		return "⚠️ Розклад ще не відкалібровано для цієї дати.", true
	default:
		return "❌ Сталася помилка. Спробуйте пізніше.", false
	}
}

// commandArgs аргументы команды без самой команды
func commandArgs(text string) string {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return ""
	}
	return strings.Join(fields[1:], " ")
}
