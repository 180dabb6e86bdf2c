package timetable

import "github.com/Freeeeeet/nau_schedule/internal/model"

// ChangeFields поля изменения, которые переносятся на занятие.
// Код, lesson_code и период действия изменения не переносятся никогда.
var ChangeFields = []string{
	"template",
	"lecturers",
	"names",
	"comment",
	"time",
	"duration",
	"places",
	"lesson_type",
	"recordings",
	"canceled",
}

// ApplyChange накладывает заданные поля изменения на занятие.
// Шаблон изменения заменяет только used_template, повторно не разрешается.
func ApplyChange(base Lesson, change *model.Change) Lesson {
	if change.Template != nil {
		base.UsedTemplate = *change.Template
	}
	if change.Lecturers != nil {
		base.Lecturers = cloneStrings(change.Lecturers)
	}
	if change.Names != nil {
		base.Names = cloneStrings(change.Names)
	}
	if change.Comment != nil {
		base.Comment = *change.Comment
	}
	if change.Time != nil {
		base.Time = *change.Time
	}
	if change.Duration != nil {
		base.Duration = *change.Duration
	}
	if change.Places != nil {
		base.Places = clonePlaces(change.Places)
	}
	if change.LessonType != nil {
		base.LessonType = *change.LessonType
	}
	if change.Recordings != nil {
		base.Recordings = cloneStrings(change.Recordings)
	}
	if change.Canceled != nil {
		base.Canceled = *change.Canceled
	}
	return base
}
