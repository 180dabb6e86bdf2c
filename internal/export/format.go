package export

import (
	"fmt"
	"strings"

	"github.com/Freeeeeet/nau_schedule/internal/model"
)

var dayNames = [...]string{"Понеділок", "Вівторок", "Середа", "Четвер", "П'ятниця", "Субота", "Неділя"}

// DayName название дня по номеру 1..7
func DayName(dayNumber int) string {
	if dayNumber < 1 || dayNumber > len(dayNames) {
		return ""
	}
	return dayNames[dayNumber-1]
}

// ClockTime минуты от начала суток в формате ЧЧ:ММ
func ClockTime(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Lecturers преподаватели занятия через запятую
func Lecturers(lesson model.OutputLesson) string {
	names := make([]string, 0, len(lesson.Lecturers))
	for _, l := range lesson.Lecturers {
		if n := l.DisplayName(); n != "" {
			names = append(names, n)
		}
	}
	return strings.Join(names, ", ")
}

// SubgroupLabel подпись подгруппы
func SubgroupLabel(subgroup int) string {
	switch subgroup {
	case model.SubgroupFirst:
		return "1 підгрупа"
	case model.SubgroupSecond:
		return "2 підгрупа"
	default:
		return "вся група"
	}
}
