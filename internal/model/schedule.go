package model

import "encoding/json"

// WeekSync точка калибровки: в неделе ISO Week года Year была неделя номер WeekNumber.
// В документе хранится массивом [год, неделя, номер].
type WeekSync struct {
	Year       int
	Week       int
	WeekNumber int
}

func (w WeekSync) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]int{w.Year, w.Week, w.WeekNumber})
}

func (w *WeekSync) UnmarshalJSON(data []byte) error {
	var arr [3]int
	if err := json.Unmarshal(data, &arr); err != nil {
		return err
	}
	w.Year, w.Week, w.WeekNumber = arr[0], arr[1], arr[2]
	return nil
}

// Lessons занятия и изменения расписания
type Lessons struct {
	Add    []RecurringLesson `json:"add"`
	Change []Change          `json:"change"`
}

// Schedule документ расписания одной группы
type Schedule struct {
	Group           string           `json:"group"`
	LessonTemplates []LessonTemplate `json:"lesson_templates"`
	Lessons         Lessons          `json:"lessons"`
	ShowLinks       bool             `json:"show_links"`
	WeekSyncs       []WeekSync       `json:"week_syncs"`
}

// FindLesson ищет занятие по коду, возвращает индекс или -1
func (s *Schedule) FindLesson(code string) int {
	for i := range s.Lessons.Add {
		if s.Lessons.Add[i].Code == code {
			return i
		}
	}
	return -1
}

// FindChange ищет изменение по коду, возвращает индекс или -1
func (s *Schedule) FindChange(code string) int {
	for i := range s.Lessons.Change {
		if s.Lessons.Change[i].Code == code {
			return i
		}
	}
	return -1
}

// Speciality специальность с общими шаблонами занятий
type Speciality struct {
	Code            string           `json:"code"`
	Names           []string         `json:"names"`
	LessonTemplates []LessonTemplate `json:"lesson_templates"`
}
