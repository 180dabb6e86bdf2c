package service

import (
	"context"
	"testing"

	"github.com/Freeeeeet/nau_schedule/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTemplateService(f *fixture) *TemplateService {
	return NewTemplateService(f.specialities, f.schedules, f.catalog, f.checker, zap.NewNop())
}

func TestTemplateService_SpecialityTemplates(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := newTemplateService(f)

	created, err := svc.Create(ctx, testSpeciality, model.LessonTemplate{
		Names:     []string{"Фізика"},
		Lecturers: []string{"lect-2"},
	})
	require.NoError(t, err)
	assert.Len(t, created.ID, 16)

	list, err := svc.Index(ctx, testSpeciality)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, created.ID, list[1].ID)

	byGroup, err := svc.ByGroup(ctx, testGroup)
	require.NoError(t, err)
	assert.Equal(t, list, byGroup)

	_, err = svc.Create(ctx, "999", model.LessonTemplate{})
	require.ErrorIs(t, err, ErrSpecialityNotFound)

	_, err = svc.Index(ctx, "999")
	require.ErrorIs(t, err, ErrSpecialityNotFound)

	_, err = svc.Create(ctx, testSpeciality, model.LessonTemplate{Lecturers: []string{"ghost"}})
	require.ErrorIs(t, err, ErrLecturerNotFound)
}

func TestTemplateService_GroupTemplates(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := newTemplateService(f)

	created, err := svc.CreateGroupTemplate(ctx, testGroup, model.LessonTemplate{Names: []string{"Лаба"}})
	require.NoError(t, err)

	list, err := svc.GroupTemplates(ctx, testGroup)
	require.NoError(t, err)
	require.Len(t, list, 2)

	removed, err := svc.DeleteGroupTemplate(ctx, testGroup, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Лаба"}, removed.Names)

	_, err = svc.DeleteGroupTemplate(ctx, testGroup, created.ID)
	require.ErrorIs(t, err, ErrTemplateNotFound)

	_, err = svc.GroupTemplates(ctx, "other")
	require.ErrorIs(t, err, ErrScheduleNotFound)
}
