package timetable

import (
	"time"

	"github.com/Freeeeeet/nau_schedule/internal/model"
)

// DaysInMonth количество дней в месяце с учётом високосного года
func DaysInMonth(month, year int) int {
	switch month {
	case 2:
		if year%4 == 0 && (year%100 != 0 || year%400 == 0) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}

// IsDateValid проверяет что день, месяц и год образуют существующую дату
func IsDateValid(day, month, year int) bool {
	return month >= 1 && month <= 12 && day >= 1 && day <= DaysInMonth(month, year)
}

// Date возвращает полночь указанной даты в часовом поясе учебного заведения
func Date(year, month, day int, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
}

// Civil переводит момент времени в дату документа
func Civil(t time.Time) model.DateTuple {
	return model.NewDateTuple(t.Year(), int(t.Month()), t.Day())
}

// ISOWeekNumber номер недели по ISO-8601
func ISOWeekNumber(t time.Time) int {
	_, week := t.ISOWeek()
	return week
}

// DayOfWeekNumber день недели: понедельник 1, воскресенье 7
func DayOfWeekNumber(day, month, year int, loc *time.Location) int {
	return weekdayNumber(Date(year, month, day, loc))
}

func weekdayNumber(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// MondayOf понедельник недели, в которую попадает t
func MondayOf(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day-(weekdayNumber(t)-1), 0, 0, 0, 0, t.Location())
}

// MondayOfWeek понедельник недели week года year: 1 января плюс (week-1) недель
func MondayOfWeek(week, year int, loc *time.Location) time.Time {
	return MondayOf(Date(year, 1, 1+(week-1)*7, loc))
}
