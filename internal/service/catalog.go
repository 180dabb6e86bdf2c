package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/nau_schedule/internal/model"
)

// Catalog достаёт из справочника группу, факультет и шаблоны специальности
type Catalog struct {
	directory    Directory
	specialities SpecialityStore
}

func NewCatalog(directory Directory, specialities SpecialityStore) *Catalog {
	return &Catalog{
		directory:    directory,
		specialities: specialities,
	}
}

// Group группа из справочника
func (c *Catalog) Group(ctx context.Context, groupCode string) (*model.Group, error) {
	group, err := c.directory.GetGroup(ctx, groupCode)
	if err != nil {
		return nil, fmt.Errorf("get group: %w", err)
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}
	return group, nil
}

// Faculty факультет группы
func (c *Catalog) Faculty(ctx context.Context, group *model.Group) (*model.Faculty, error) {
	faculty, err := c.directory.GetFaculty(ctx, group.Faculty)
	if err != nil {
		return nil, fmt.Errorf("get faculty: %w", err)
	}
	if faculty == nil {
		return nil, ErrFacultyNotFound
	}
	return faculty, nil
}

// Speciality специальность группы
func (c *Catalog) Speciality(ctx context.Context, code string) (*model.Speciality, error) {
	speciality, err := c.specialities.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("get speciality: %w", err)
	}
	if speciality == nil {
		return nil, ErrSpecialityNotFound
	}
	return speciality, nil
}

// GroupTemplates группа и шаблоны её специальности
func (c *Catalog) GroupTemplates(ctx context.Context, groupCode string) (*model.Group, []model.LessonTemplate, error) {
	group, err := c.Group(ctx, groupCode)
	if err != nil {
		return nil, nil, err
	}
	speciality, err := c.Speciality(ctx, group.Speciality)
	if err != nil {
		return nil, nil, err
	}
	return group, speciality.LessonTemplates, nil
}

// Groups список групп справочника
func (c *Catalog) Groups(ctx context.Context, faculty string) ([]model.Group, error) {
	groups, err := c.directory.Groups(ctx, faculty)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	if groups == nil {
		groups = []model.Group{}
	}
	return groups, nil
}

// Lecturers список преподавателей справочника
func (c *Catalog) Lecturers(ctx context.Context) ([]model.LecturerFull, error) {
	lecturers, err := c.directory.Lecturers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list lecturers: %w", err)
	}
	if lecturers == nil {
		lecturers = []model.LecturerFull{}
	}
	return lecturers, nil
}
