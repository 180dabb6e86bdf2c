package model

// Group группа из справочника университета
type Group struct {
	Code              string   `json:"code"`
	Names             []string `json:"names"`
	Desc              string   `json:"desc"`
	Faculty           string   `json:"faculty"`
	Speciality        string   `json:"speciality"`
	HasSecondSubgroup bool     `json:"has_second_subgroup"`
	IsDeleted         bool     `json:"is_deleted"`
}

// FacultySpeciality специальность в составе факультета
type FacultySpeciality struct {
	Code            string           `json:"code"`
	Names           []string         `json:"names"`
	LessonTemplates []LessonTemplate `json:"lesson_templates"`
}

// Faculty факультет из справочника
type Faculty struct {
	Code         string              `json:"code"`
	Names        []string            `json:"names"`
	Specialities []FacultySpeciality `json:"specialities"`
}

// GroupChat привязка группы к чатам Telegram
type GroupChat struct {
	GroupCode   string  `json:"group_code"`
	TelegramIDs []int64 `json:"telegram_ids"`
}
