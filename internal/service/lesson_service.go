package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/nau_schedule/internal/model"
	"go.uber.org/zap"
)

// LessonService управляет постоянными занятиями группы
type LessonService struct {
	schedules ScheduleStore
	catalog   *Catalog
	lecturers LecturerChecker
	logger    *zap.Logger
}

func NewLessonService(schedules ScheduleStore, catalog *Catalog, lecturers LecturerChecker, logger *zap.Logger) *LessonService {
	return &LessonService{
		schedules: schedules,
		catalog:   catalog,
		lecturers: lecturers,
		logger:    logger,
	}
}

// Get возвращает занятие по коду. Занятиям без подгруппы проставляется 0.
func (s *LessonService) Get(ctx context.Context, groupCode, code string) (*model.RecurringLesson, error) {
	if _, err := s.catalog.Group(ctx, groupCode); err != nil {
		return nil, err
	}

	var found *model.RecurringLesson
	schedule, err := s.schedules.Update(ctx, groupCode, func(sc *model.Schedule) error {
		for i := range sc.Lessons.Add {
			if sc.Lessons.Add[i].Subgroup == nil {
				zero := model.SubgroupBoth
				sc.Lessons.Add[i].Subgroup = &zero
			}
		}
		if i := sc.FindLesson(code); i >= 0 {
			lesson := sc.Lessons.Add[i]
			found = &lesson
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get lesson: %w", err)
	}
	if schedule == nil {
		return nil, ErrScheduleNotFound
	}
	if found == nil {
		return nil, ErrLessonNotFound
	}

	return found, nil
}

// List возвращает все постоянные занятия группы
func (s *LessonService) List(ctx context.Context, groupCode string) ([]model.RecurringLesson, error) {
	schedule, err := s.schedules.GetByGroup(ctx, groupCode)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	if schedule == nil {
		return nil, ErrScheduleNotFound
	}
	if _, err := s.catalog.Group(ctx, groupCode); err != nil {
		return nil, err
	}

	return schedule.Lessons.Add, nil
}

// Create добавляет занятие с новым кодом
func (s *LessonService) Create(ctx context.Context, groupCode string, lesson model.RecurringLesson) (*model.RecurringLesson, error) {
	if err := s.validate(ctx, &lesson); err != nil {
		return nil, err
	}
	_, templates, err := s.catalog.GroupTemplates(ctx, groupCode)
	if err != nil {
		return nil, err
	}

	lesson.Code = newCode()
	if lesson.Recordings == nil {
		lesson.Recordings = []string{}
	}

	schedule, err := s.schedules.Update(ctx, groupCode, func(sc *model.Schedule) error {
		if lesson.Template != nil && !templateExists(*lesson.Template, sc, templates) {
			return &TemplateNotFoundError{ID: *lesson.Template}
		}
		sc.Lessons.Add = append(sc.Lessons.Add, lesson)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create lesson: %w", err)
	}
	if schedule == nil {
		return nil, ErrScheduleNotFound
	}

	s.logger.Info("Lesson created",
		zap.String("group_code", groupCode),
		zap.String("code", lesson.Code),
		zap.Int("day_number", lesson.DayNumber),
		zap.Int("week_number", lesson.WeekNumber),
	)

	return &lesson, nil
}

// Update заменяет занятие с тем же кодом
func (s *LessonService) Update(ctx context.Context, groupCode string, lesson model.RecurringLesson) (*model.RecurringLesson, error) {
	if err := s.validate(ctx, &lesson); err != nil {
		return nil, err
	}
	_, templates, err := s.catalog.GroupTemplates(ctx, groupCode)
	if err != nil {
		return nil, err
	}
	if lesson.Recordings == nil {
		lesson.Recordings = []string{}
	}

	schedule, err := s.schedules.Update(ctx, groupCode, func(sc *model.Schedule) error {
		if lesson.Template != nil && !templateExists(*lesson.Template, sc, templates) {
			return &TemplateNotFoundError{ID: *lesson.Template}
		}
		i := sc.FindLesson(lesson.Code)
		if i < 0 {
			return ErrLessonNotFound
		}
		sc.Lessons.Add[i] = lesson
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update lesson: %w", err)
	}
	if schedule == nil {
		return nil, ErrScheduleNotFound
	}

	s.logger.Info("Lesson updated",
		zap.String("group_code", groupCode),
		zap.String("code", lesson.Code),
	)

	return &lesson, nil
}

// Delete удаляет занятие и возвращает удалённую запись
func (s *LessonService) Delete(ctx context.Context, groupCode, code string) (*model.RecurringLesson, error) {
	if _, _, err := s.catalog.GroupTemplates(ctx, groupCode); err != nil {
		return nil, err
	}

	var removed *model.RecurringLesson
	schedule, err := s.schedules.Update(ctx, groupCode, func(sc *model.Schedule) error {
		i := sc.FindLesson(code)
		if i < 0 {
			return ErrLessonNotFound
		}
		lesson := sc.Lessons.Add[i]
		removed = &lesson
		sc.Lessons.Add = append(sc.Lessons.Add[:i], sc.Lessons.Add[i+1:]...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("delete lesson: %w", err)
	}
	if schedule == nil {
		return nil, ErrScheduleNotFound
	}

	s.logger.Info("Lesson deleted",
		zap.String("group_code", groupCode),
		zap.String("code", code),
	)

	return removed, nil
}

func (s *LessonService) validate(ctx context.Context, lesson *model.RecurringLesson) error {
	if err := checkPeriod(lesson.StartDate, lesson.EndDate); err != nil {
		return err
	}
	return checkLecturers(ctx, s.lecturers, lesson.Lecturers)
}
