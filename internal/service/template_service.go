package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/nau_schedule/internal/model"
	"go.uber.org/zap"
)

// TemplateService шаблоны занятий специальностей и групп
type TemplateService struct {
	specialities SpecialityStore
	schedules    ScheduleStore
	catalog      *Catalog
	lecturers    LecturerChecker
	logger       *zap.Logger
}

func NewTemplateService(
	specialities SpecialityStore,
	schedules ScheduleStore,
	catalog *Catalog,
	lecturers LecturerChecker,
	logger *zap.Logger,
) *TemplateService {
	return &TemplateService{
		specialities: specialities,
		schedules:    schedules,
		catalog:      catalog,
		lecturers:    lecturers,
		logger:       logger,
	}
}

// Index шаблоны специальности
func (s *TemplateService) Index(ctx context.Context, specialityCode string) ([]model.LessonTemplate, error) {
	speciality, err := s.catalog.Speciality(ctx, specialityCode)
	if err != nil {
		return nil, err
	}
	return speciality.LessonTemplates, nil
}

// ByGroup шаблоны специальности, к которой относится группа
func (s *TemplateService) ByGroup(ctx context.Context, groupCode string) ([]model.LessonTemplate, error) {
	_, templates, err := s.catalog.GroupTemplates(ctx, groupCode)
	if err != nil {
		return nil, err
	}
	return templates, nil
}

// Create добавляет шаблон специальности с новым id
func (s *TemplateService) Create(ctx context.Context, specialityCode string, tpl model.LessonTemplate) (*model.LessonTemplate, error) {
	if err := checkLecturers(ctx, s.lecturers, tpl.Lecturers); err != nil {
		return nil, err
	}

	tpl.ID = newCode()
	speciality, err := s.specialities.Update(ctx, specialityCode, func(sp *model.Speciality) error {
		sp.LessonTemplates = append(sp.LessonTemplates, tpl)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create template: %w", err)
	}
	if speciality == nil {
		return nil, ErrSpecialityNotFound
	}

	s.logger.Info("Speciality template created",
		zap.String("speciality", specialityCode),
		zap.String("id", tpl.ID),
	)

	return &tpl, nil
}

// GroupTemplates шаблоны, объявленные в расписании группы
func (s *TemplateService) GroupTemplates(ctx context.Context, groupCode string) ([]model.LessonTemplate, error) {
	schedule, err := s.schedules.GetByGroup(ctx, groupCode)
	if err != nil {
		return nil, fmt.Errorf("get schedule: %w", err)
	}
	if schedule == nil {
		return nil, ErrScheduleNotFound
	}
	return schedule.LessonTemplates, nil
}

// CreateGroupTemplate добавляет шаблон в расписание группы
func (s *TemplateService) CreateGroupTemplate(ctx context.Context, groupCode string, tpl model.LessonTemplate) (*model.LessonTemplate, error) {
	if err := checkLecturers(ctx, s.lecturers, tpl.Lecturers); err != nil {
		return nil, err
	}

	tpl.ID = newCode()
	schedule, err := s.schedules.Update(ctx, groupCode, func(sc *model.Schedule) error {
		sc.LessonTemplates = append(sc.LessonTemplates, tpl)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create group template: %w", err)
	}
	if schedule == nil {
		return nil, ErrScheduleNotFound
	}

	s.logger.Info("Group template created",
		zap.String("group_code", groupCode),
		zap.String("id", tpl.ID),
	)

	return &tpl, nil
}

// DeleteGroupTemplate удаляет шаблон группы. Занятия со ссылкой на него
// дальше считаются занятиями без шаблона.
func (s *TemplateService) DeleteGroupTemplate(ctx context.Context, groupCode, id string) (*model.LessonTemplate, error) {
	var removed *model.LessonTemplate
	schedule, err := s.schedules.Update(ctx, groupCode, func(sc *model.Schedule) error {
		for i := range sc.LessonTemplates {
			if sc.LessonTemplates[i].ID == id {
				tpl := sc.LessonTemplates[i]
				removed = &tpl
				sc.LessonTemplates = append(sc.LessonTemplates[:i], sc.LessonTemplates[i+1:]...)
				return nil
			}
		}
		return &TemplateNotFoundError{ID: id}
	})
	if err != nil {
		return nil, fmt.Errorf("delete group template: %w", err)
	}
	if schedule == nil {
		return nil, ErrScheduleNotFound
	}

	s.logger.Info("Group template deleted",
		zap.String("group_code", groupCode),
		zap.String("id", id),
	)

	return removed, nil
}
