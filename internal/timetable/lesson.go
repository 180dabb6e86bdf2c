package timetable

import "github.com/Freeeeeet/nau_schedule/internal/model"

// Lesson занятие после наложения шаблона и изменений, преподаватели ещё в виде кодов
type Lesson struct {
	Code         string
	Subgroup     int
	UsedTemplate string
	Comment      string
	Lecturers    []string
	Names        []string
	Time         int
	Duration     int
	Places       []model.Place
	Canceled     bool
	LessonType   string
	Recordings   []string
}

// Значения по умолчанию для занятия без шаблона
const (
	DefaultTime     = 120
	DefaultDuration = 120
)

// DefaultNames подпись занятия, у которого не заполнено название
var DefaultNames = []string{"Не заповнено", "Not filled"}

// BaseLesson запись со значениями по умолчанию
func BaseLesson() Lesson {
	return Lesson{
		Subgroup:   model.SubgroupBoth,
		Names:      append([]string(nil), DefaultNames...),
		Time:       DefaultTime,
		Duration:   DefaultDuration,
		Lecturers:  []string{},
		Recordings: []string{},
	}
}

// WithTemplate накладывает заданные поля шаблона на запись
func (l Lesson) WithTemplate(tpl *model.LessonTemplate) Lesson {
	if tpl == nil {
		return l
	}
	if tpl.Subgroup != nil {
		l.Subgroup = *tpl.Subgroup
	}
	if tpl.Lecturers != nil {
		l.Lecturers = cloneStrings(tpl.Lecturers)
	}
	if tpl.Names != nil {
		l.Names = cloneStrings(tpl.Names)
	}
	if tpl.Time != nil {
		l.Time = *tpl.Time
	}
	if tpl.Duration != nil {
		l.Duration = *tpl.Duration
	}
	if tpl.Places != nil {
		l.Places = clonePlaces(tpl.Places)
	}
	if tpl.LessonType != nil {
		l.LessonType = *tpl.LessonType
	}
	if tpl.Canceled != nil {
		l.Canceled = *tpl.Canceled
	}
	return l
}

// WithRecurring накладывает собственные поля занятия поверх шаблона
func (l Lesson) WithRecurring(rl *model.RecurringLesson) Lesson {
	l.Code = rl.Code
	if rl.Subgroup != nil {
		l.Subgroup = *rl.Subgroup
	}
	if rl.Comment != nil {
		l.Comment = *rl.Comment
	}
	if rl.Lecturers != nil {
		l.Lecturers = cloneStrings(rl.Lecturers)
	}
	if rl.Names != nil {
		l.Names = cloneStrings(rl.Names)
	}
	if rl.Time != nil {
		l.Time = *rl.Time
	}
	if rl.Duration != nil {
		l.Duration = *rl.Duration
	}
	if rl.Places != nil {
		l.Places = clonePlaces(rl.Places)
	}
	if rl.LessonType != nil {
		l.LessonType = *rl.LessonType
	}
	if rl.Recordings != nil {
		l.Recordings = cloneStrings(rl.Recordings)
	}
	if rl.Canceled != nil {
		l.Canceled = *rl.Canceled
	}
	return l
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append(make([]string, 0, len(s)), s...)
}

func clonePlaces(p []model.Place) []model.Place {
	if p == nil {
		return nil
	}
	return append(make([]model.Place, 0, len(p)), p...)
}
