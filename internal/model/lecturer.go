package model

import (
	"strings"
	"unicode/utf8"
)

// LecturerShort краткие данные преподавателя для вывода в расписании
type LecturerShort struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	Surname    string `json:"surname"`
	Patronymic string `json:"patronymic"`
}

// LecturerFull преподаватель из справочника университета
type LecturerFull struct {
	Code       string `json:"code"`
	Lastname   string `json:"lastname"`
	Firstname  string `json:"firstname"`
	Patronymic string `json:"patronymic"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
}

// DisplayName фамилия с инициалами: "Шевченко Т. Г."
func (l LecturerShort) DisplayName() string {
	parts := make([]string, 0, 3)
	if l.Surname != "" {
		parts = append(parts, l.Surname)
	}
	for _, s := range []string{l.Name, l.Patronymic} {
		if r, _ := utf8.DecodeRuneInString(s); r != utf8.RuneError {
			parts = append(parts, string(r)+".")
		}
	}
	return strings.Join(parts, " ")
}
