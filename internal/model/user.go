package model

import "time"

// User преподаватель или сотрудник, зарегистрированный в системе
type User struct {
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Surname     string    `json:"surname"`
	Patronymic  string    `json:"patronymic"`
	TelegramIDs []int64   `json:"telegram_ids"`
	IsDeleted   bool      `json:"is_deleted"`
	CreatedAt   time.Time `json:"created_at"`
}

// Short возвращает краткую запись для вывода в расписании
func (u *User) Short() LecturerShort {
	return LecturerShort{
		Code:       u.Code,
		Name:       u.Name,
		Surname:    u.Surname,
		Patronymic: u.Patronymic,
	}
}
