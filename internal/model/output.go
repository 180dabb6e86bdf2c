package model

// OutputLesson занятие в том виде, в котором его видит клиент
type OutputLesson struct {
	Code         string          `json:"code"`
	Subgroup     int             `json:"subgroup"`
	UsedTemplate string          `json:"used_template,omitempty"`
	Comment      string          `json:"comment"`
	Lecturers    []LecturerShort `json:"lecturers"`
	Names        []string        `json:"names"`
	Time         int             `json:"time"`
	Duration     int             `json:"duration"`
	Places       []Place         `json:"places"`
	Canceled     bool            `json:"canceled"`
	LessonType   string          `json:"lesson_type"`
	Recordings   []string        `json:"recordings"`
}

// Day результат расчёта одного дня
type Day struct {
	Lessons    []OutputLesson `json:"lessons"`
	WeekNumber int            `json:"week_number"`
	DayNumber  int            `json:"day_number"`
}

// WeekDay день в недельном ответе
type WeekDay struct {
	Lessons []OutputLesson `json:"lessons"`
}

// Week результат расчёта недели, Days[0] - понедельник
type Week struct {
	Days       []WeekDay `json:"days"`
	WeekNumber int       `json:"week_number"`
}

// Title первое название занятия
func (l OutputLesson) Title() string {
	if len(l.Names) == 0 {
		return ""
	}
	return l.Names[0]
}

// FirstPlace текст первого места проведения
func (l OutputLesson) FirstPlace() string {
	if len(l.Places) == 0 {
		return ""
	}
	return l.Places[0].Text
}
