package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Freeeeeet/nau_schedule/internal/model"
	ical "github.com/arran4/golang-ical"
)

const productID = "-//NAU//Schedule//UK"

// ICS пишет неделю расписания в iCalendar. monday задаёт дату и часовой пояс понедельника.
// Отменённые занятия пропускаются.
func ICS(w io.Writer, groupCode string, monday time.Time, week model.Week, now time.Time) error {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName(groupCode)
	cal.SetXWRTimezone(monday.Location().String())

	for i, day := range week.Days {
		date := monday.AddDate(0, 0, i)
		for _, lesson := range day.Lessons {
			if lesson.Canceled {
				continue
			}
			addEvent(cal, groupCode, date, lesson, now)
		}
	}

	if _, err := io.WriteString(w, cal.Serialize()); err != nil {
		return fmt.Errorf("write calendar: %w", err)
	}
	return nil
}

func addEvent(cal *ical.Calendar, groupCode string, date time.Time, lesson model.OutputLesson, now time.Time) {
	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	start := midnight.Add(time.Duration(lesson.Time) * time.Minute)
	end := start.Add(time.Duration(lesson.Duration) * time.Minute)

	uid := fmt.Sprintf("%s-%s-%s@nau-schedule", groupCode, lesson.Code, date.Format("20060102"))
	event := cal.AddEvent(uid)
	event.SetDtStampTime(now)
	event.SetStartAt(start)
	event.SetEndAt(end)
	event.SetSummary(summary(lesson))

	if desc := description(lesson); desc != "" {
		event.SetDescription(desc)
	}
	if place := lesson.FirstPlace(); place != "" {
		event.SetLocation(place)
	}
}

func summary(lesson model.OutputLesson) string {
	if lesson.LessonType == "" {
		return lesson.Title()
	}
	return fmt.Sprintf("%s (%s)", lesson.Title(), lesson.LessonType)
}

func description(lesson model.OutputLesson) string {
	lines := make([]string, 0, 3)
	if l := Lecturers(lesson); l != "" {
		lines = append(lines, l)
	}
	if lesson.Subgroup == model.SubgroupFirst || lesson.Subgroup == model.SubgroupSecond {
		lines = append(lines, SubgroupLabel(lesson.Subgroup))
	}
	if lesson.Comment != "" {
		lines = append(lines, lesson.Comment)
	}
	return strings.Join(lines, "\n")
}
