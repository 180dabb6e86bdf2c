package httpapi

import (
	"context"

	"github.com/Freeeeeet/nau_schedule/internal/model"
	"github.com/Freeeeeet/nau_schedule/internal/service"
)

// ScheduleReader расчёт расписаний
type ScheduleReader interface {
	Day(ctx context.Context, q service.DayQuery) (model.Day, error)
	Week(ctx context.Context, q service.WeekQuery) (model.Week, error)
	BySubgroups(ctx context.Context, q service.SubgroupQuery) ([]service.SubgroupDay, error)
}

// LessonManager CRUD постоянных занятий
type LessonManager interface {
	Get(ctx context.Context, groupCode, code string) (*model.RecurringLesson, error)
	List(ctx context.Context, groupCode string) ([]model.RecurringLesson, error)
	Create(ctx context.Context, groupCode string, lesson model.RecurringLesson) (*model.RecurringLesson, error)
	Update(ctx context.Context, groupCode string, lesson model.RecurringLesson) (*model.RecurringLesson, error)
	Delete(ctx context.Context, groupCode, code string) (*model.RecurringLesson, error)
}

// ChangeManager CRUD изменений
type ChangeManager interface {
	Get(ctx context.Context, groupCode, code string) (*model.Change, error)
	List(ctx context.Context, groupCode, lessonCode string) ([]model.Change, error)
	Create(ctx context.Context, groupCode string, change model.Change) (*model.Change, error)
	Update(ctx context.Context, groupCode string, change model.Change) (*model.Change, error)
	Delete(ctx context.Context, groupCode, code string) (*model.Change, error)
}

// TemplateManager шаблоны специальностей и групп
type TemplateManager interface {
	Index(ctx context.Context, specialityCode string) ([]model.LessonTemplate, error)
	ByGroup(ctx context.Context, groupCode string) ([]model.LessonTemplate, error)
	Create(ctx context.Context, specialityCode string, tpl model.LessonTemplate) (*model.LessonTemplate, error)
	GroupTemplates(ctx context.Context, groupCode string) ([]model.LessonTemplate, error)
	CreateGroupTemplate(ctx context.Context, groupCode string, tpl model.LessonTemplate) (*model.LessonTemplate, error)
	DeleteGroupTemplate(ctx context.Context, groupCode, id string) (*model.LessonTemplate, error)
}

// WeekSyncManager точки синхронизации недель
type WeekSyncManager interface {
	Add(ctx context.Context, in service.WeekSyncInput) (model.WeekSync, error)
	List(ctx context.Context, groupCode string) ([]model.WeekSync, error)
	Delete(ctx context.Context, groupCode string, index int) (model.WeekSync, error)
}

// DirectoryReader справочник групп и преподавателей
type DirectoryReader interface {
	Groups(ctx context.Context, faculty string) ([]model.Group, error)
	Lecturers(ctx context.Context) ([]model.LecturerFull, error)
}

// AppTokens поиск токенов приложений
type AppTokens interface {
	FindToken(ctx context.Context, token string) (*model.App, *model.AppToken, error)
}

// Services всё, что нужно обработчикам
type Services struct {
	Schedules ScheduleReader
	Lessons   LessonManager
	Changes   ChangeManager
	Templates TemplateManager
	WeekSyncs WeekSyncManager
	Directory DirectoryReader
}
