package service

import (
	"errors"
	"fmt"
	"strings"
)

// Ошибки сервисов. Тексты уходят клиенту как есть.
var (
	ErrScheduleNotFound   = errors.New("schedule not found")
	ErrGroupNotFound      = errors.New("group not found")
	ErrGroupsNotBound     = errors.New("groups not found")
	ErrFacultyNotFound    = errors.New("faculty not found")
	ErrSpecialityNotFound = errors.New("speciality not found")
	ErrLessonNotFound     = errors.New("lesson not found")
	ErrChangeNotFound     = errors.New("change not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrTemplateNotFound   = errors.New("template not found")
	ErrLecturerNotFound   = errors.New("lecturer not found")
	ErrInvalidWeekSync    = errors.New("invalid week sync")
	ErrInvalidPeriod      = errors.New("start_date must not be after end_date")
	ErrTokenRequired      = errors.New("token is required")
	ErrTokenNotFound      = errors.New("token does not exist")
	ErrTokenForbidden     = errors.New("show-places not allowed for this token")
)

// TemplateNotFoundError ссылка на шаблон не разрешилась при записи
type TemplateNotFoundError struct {
	ID string
}

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("template %s not found", e.ID)
}

func (e *TemplateNotFoundError) Unwrap() error {
	return ErrTemplateNotFound
}

// LecturerNotFoundError часть кодов преподавателей не найдена
type LecturerNotFoundError struct {
	Codes []string
}

func (e *LecturerNotFoundError) Error() string {
	return fmt.Sprintf("%s not found", strings.Join(e.Codes, ", "))
}

func (e *LecturerNotFoundError) Unwrap() error {
	return ErrLecturerNotFound
}

// WeekSyncError неверное поле точки синхронизации
type WeekSyncError struct {
	Reason string
}

func (e *WeekSyncError) Error() string {
	return e.Reason
}

func (e *WeekSyncError) Unwrap() error {
	return ErrInvalidWeekSync
}
