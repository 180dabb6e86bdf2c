package model

// Подгруппы занятия
const (
	SubgroupAll    = -1
	SubgroupBoth   = 0
	SubgroupFirst  = 1
	SubgroupSecond = 2
)

// RecurringLesson еженедельное занятие в расписании группы.
// nil в необязательных полях означает "не задано": значение берётся из шаблона или по умолчанию.
type RecurringLesson struct {
	Code       string     `json:"code"`
	DayNumber  int        `json:"day_number" validate:"min=1,max=7"`
	WeekNumber int        `json:"week_number" validate:"min=1,max=2"`
	Subgroup   *int       `json:"subgroup,omitempty" validate:"omitempty,min=-1,max=2"`
	Template   *string    `json:"template,omitempty"`
	Lecturers  []string   `json:"lecturers,omitempty"`
	Names      []string   `json:"names,omitempty"`
	Comment    *string    `json:"comment,omitempty"`
	Time       *int       `json:"time,omitempty" validate:"omitempty,min=0,max=1440"`
	Duration   *int       `json:"duration,omitempty" validate:"omitempty,min=0,max=1440"`
	Places     []Place    `json:"places,omitempty" validate:"omitempty,dive"`
	LessonType *string    `json:"lesson_type,omitempty"`
	Recordings []string   `json:"recordings"`
	StartDate  DateTuple  `json:"start_date"`
	EndDate    DateTuple  `json:"end_date"`
	Canceled   *bool      `json:"canceled,omitempty"`
	CreatedBy  *CreatedBy `json:"created_by,omitempty"`
}

// ActiveOn проверяет попадание даты в период действия занятия
func (l *RecurringLesson) ActiveOn(date DateTuple) bool {
	return l.StartDate.Contains(l.EndDate, date)
}

// LessonTemplate набор значений по умолчанию для занятий
type LessonTemplate struct {
	ID         string     `json:"id"`
	Subgroup   *int       `json:"subgroup,omitempty" validate:"omitempty,min=-1,max=2"`
	Lecturers  []string   `json:"lecturers,omitempty"`
	Names      []string   `json:"names"`
	Time       *int       `json:"time,omitempty" validate:"omitempty,min=0,max=1440"`
	Duration   *int       `json:"duration,omitempty" validate:"omitempty,min=0,max=1440"`
	Places     []Place    `json:"places,omitempty" validate:"omitempty,dive"`
	LessonType *string    `json:"lesson_type,omitempty"`
	Canceled   *bool      `json:"canceled,omitempty"`
	CreatedBy  *CreatedBy `json:"created_by,omitempty"`
}

// Change изменение занятия на период [StartDate, EndDate]
type Change struct {
	Code       string     `json:"code"`
	LessonCode string     `json:"lesson_code" validate:"required"`
	StartDate  DateTuple  `json:"start_date"`
	EndDate    DateTuple  `json:"end_date"`
	Template   *string    `json:"template,omitempty"`
	Lecturers  []string   `json:"lecturers,omitempty"`
	Names      []string   `json:"names,omitempty"`
	Comment    *string    `json:"comment,omitempty"`
	Time       *int       `json:"time,omitempty" validate:"omitempty,min=0,max=1440"`
	Duration   *int       `json:"duration,omitempty" validate:"omitempty,min=0,max=1440"`
	Places     []Place    `json:"places,omitempty" validate:"omitempty,dive"`
	LessonType *string    `json:"lesson_type,omitempty"`
	Recordings []string   `json:"recordings,omitempty"`
	Canceled   *bool      `json:"canceled,omitempty"`
	CreatedBy  *CreatedBy `json:"created_by,omitempty"`
}

// ActiveOn проверяет попадание даты в период действия изменения
func (c *Change) ActiveOn(date DateTuple) bool {
	return c.StartDate.Contains(c.EndDate, date)
}
