package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/nau_schedule/internal/model"
	"go.uber.org/zap"
)

// ChangeService управляет изменениями занятий
type ChangeService struct {
	schedules ScheduleStore
	catalog   *Catalog
	lecturers LecturerChecker
	logger    *zap.Logger
}

func NewChangeService(schedules ScheduleStore, catalog *Catalog, lecturers LecturerChecker, logger *zap.Logger) *ChangeService {
	return &ChangeService{
		schedules: schedules,
		catalog:   catalog,
		lecturers: lecturers,
		logger:    logger,
	}
}

// Get возвращает изменение по коду
func (s *ChangeService) Get(ctx context.Context, groupCode, code string) (*model.Change, error) {
	schedule, err := s.schedules.GetByGroup(ctx, groupCode)
	if err != nil {
		return nil, fmt.Errorf("get change: %w", err)
	}
	if schedule == nil {
		return nil, ErrScheduleNotFound
	}

	i := schedule.FindChange(code)
	if i < 0 {
		return nil, ErrChangeNotFound
	}
	return &schedule.Lessons.Change[i], nil
}

// List возвращает изменения группы, при непустом lessonCode только этого занятия
func (s *ChangeService) List(ctx context.Context, groupCode, lessonCode string) ([]model.Change, error) {
	schedule, err := s.schedules.GetByGroup(ctx, groupCode)
	if err != nil {
		return nil, fmt.Errorf("list changes: %w", err)
	}
	if schedule == nil {
		return nil, ErrScheduleNotFound
	}

	if lessonCode == "" {
		return schedule.Lessons.Change, nil
	}

	changes := make([]model.Change, 0)
	for _, c := range schedule.Lessons.Change {
		if c.LessonCode == lessonCode {
			changes = append(changes, c)
		}
	}
	return changes, nil
}

// Create добавляет изменение. Неразрешённая ссылка на шаблон молча отбрасывается.
func (s *ChangeService) Create(ctx context.Context, groupCode string, change model.Change) (*model.Change, error) {
	if err := s.validate(ctx, &change); err != nil {
		return nil, err
	}
	_, templates, err := s.catalog.GroupTemplates(ctx, groupCode)
	if err != nil {
		return nil, err
	}

	change.Code = newCode()

	schedule, err := s.schedules.Update(ctx, groupCode, func(sc *model.Schedule) error {
		if change.Template != nil && !templateExists(*change.Template, sc, templates) {
			s.logger.Debug("Dropping unresolved change template",
				zap.String("group_code", groupCode),
				zap.String("template", *change.Template),
			)
			change.Template = nil
		}
		sc.Lessons.Change = append(sc.Lessons.Change, change)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create change: %w", err)
	}
	if schedule == nil {
		return nil, ErrScheduleNotFound
	}

	s.logger.Info("Change created",
		zap.String("group_code", groupCode),
		zap.String("code", change.Code),
		zap.String("lesson_code", change.LessonCode),
		zap.Stringer("start_date", change.StartDate),
		zap.Stringer("end_date", change.EndDate),
	)

	return &change, nil
}

// Update заменяет изменение с тем же кодом. Неразрешённый шаблон отклоняется.
func (s *ChangeService) Update(ctx context.Context, groupCode string, change model.Change) (*model.Change, error) {
	if err := s.validate(ctx, &change); err != nil {
		return nil, err
	}
	_, templates, err := s.catalog.GroupTemplates(ctx, groupCode)
	if err != nil {
		return nil, err
	}

	schedule, err := s.schedules.Update(ctx, groupCode, func(sc *model.Schedule) error {
		if change.Template != nil && !templateExists(*change.Template, sc, templates) {
			return &TemplateNotFoundError{ID: *change.Template}
		}
		i := sc.FindChange(change.Code)
		if i < 0 {
			return ErrChangeNotFound
		}
		sc.Lessons.Change[i] = change
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update change: %w", err)
	}
	if schedule == nil {
		return nil, ErrScheduleNotFound
	}

	s.logger.Info("Change updated",
		zap.String("group_code", groupCode),
		zap.String("code", change.Code),
	)

	return &change, nil
}

// Delete удаляет изменение и возвращает удалённую запись
func (s *ChangeService) Delete(ctx context.Context, groupCode, code string) (*model.Change, error) {
	if _, _, err := s.catalog.GroupTemplates(ctx, groupCode); err != nil {
		return nil, err
	}

	var removed *model.Change
	schedule, err := s.schedules.Update(ctx, groupCode, func(sc *model.Schedule) error {
		i := sc.FindChange(code)
		if i < 0 {
			return ErrChangeNotFound
		}
		change := sc.Lessons.Change[i]
		removed = &change
		sc.Lessons.Change = append(sc.Lessons.Change[:i], sc.Lessons.Change[i+1:]...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("delete change: %w", err)
	}
	if schedule == nil {
		return nil, ErrScheduleNotFound
	}

	s.logger.Info("Change deleted",
		zap.String("group_code", groupCode),
		zap.String("code", code),
	)

	return removed, nil
}

func (s *ChangeService) validate(ctx context.Context, change *model.Change) error {
	if err := checkPeriod(change.StartDate, change.EndDate); err != nil {
		return err
	}
	return checkLecturers(ctx, s.lecturers, change.Lecturers)
}
