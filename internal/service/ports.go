package service

import (
	"context"

	"github.com/Freeeeeet/nau_schedule/internal/model"
)

// ScheduleStore хранилище документов расписаний
type ScheduleStore interface {
	GetByGroup(ctx context.Context, groupCode string) (*model.Schedule, error)
	Create(ctx context.Context, schedule *model.Schedule) error
	Update(ctx context.Context, groupCode string, mutate func(*model.Schedule) error) (*model.Schedule, error)
	ListGroupCodes(ctx context.Context) ([]string, error)
}

// SpecialityStore хранилище специальностей
type SpecialityStore interface {
	GetByCode(ctx context.Context, code string) (*model.Speciality, error)
	Update(ctx context.Context, code string, mutate func(*model.Speciality) error) (*model.Speciality, error)
}

// Directory справочник университета
type Directory interface {
	GetGroup(ctx context.Context, groupCode string) (*model.Group, error)
	GetFaculty(ctx context.Context, code string) (*model.Faculty, error)
	Groups(ctx context.Context, faculty string) ([]model.Group, error)
	Lecturers(ctx context.Context) ([]model.LecturerFull, error)
}

// LecturerChecker проверяет существование преподавателей при записи
type LecturerChecker interface {
	MissingCodes(ctx context.Context, codes []string) ([]string, error)
}

// ChatBindings привязки чатов Telegram к группам
type ChatBindings interface {
	GetByTelegramID(ctx context.Context, telegramID int64) ([]string, error)
	Bind(ctx context.Context, groupCode string, telegramID int64) error
	Unbind(ctx context.Context, telegramID int64) error
	ListBindings(ctx context.Context) ([]model.GroupChat, error)
}

// AppTokens токены сторонних приложений
type AppTokens interface {
	FindToken(ctx context.Context, token string) (*model.App, *model.AppToken, error)
}
