package service

import (
	"context"
	"testing"

	"github.com/Freeeeeet/nau_schedule/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newChangeService(f *fixture) *ChangeService {
	return NewChangeService(f.schedules, f.catalog, f.checker, zap.NewNop())
}

func newChange(lessonCode string, template *string) model.Change {
	day := model.NewDateTuple(2024, 1, 15)
	return model.Change{
		LessonCode: lessonCode,
		StartDate:  day,
		EndDate:    day,
		Template:   template,
	}
}

func TestChangeService_CreateDropsUnresolvedTemplate(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := newChangeService(f)

	created, err := svc.Create(ctx, testGroup, newChange("l1", ptr("-missing")))
	require.NoError(t, err)
	assert.Nil(t, created.Template)
	assert.Len(t, created.Code, 16)

	stored := f.schedule().Lessons.Change
	require.Len(t, stored, 1)
	assert.Nil(t, stored[0].Template)

	kept, err := svc.Create(ctx, testGroup, newChange("l1", ptr("-s1")))
	require.NoError(t, err)
	require.NotNil(t, kept.Template)
	assert.Equal(t, "-s1", *kept.Template)
}

func TestChangeService_UpdateRejectsUnresolvedTemplate(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := newChangeService(f)

	created, err := svc.Create(ctx, testGroup, newChange("l1", nil))
	require.NoError(t, err)

	upd := *created
	upd.Template = ptr("ghost")
	_, err = svc.Update(ctx, testGroup, upd)
	require.ErrorIs(t, err, ErrTemplateNotFound)
	assert.Nil(t, f.schedule().Lessons.Change[0].Template)

	upd.Template = ptr("g1")
	upd.Comment = ptr("перенесено")
	_, err = svc.Update(ctx, testGroup, upd)
	require.NoError(t, err)
	assert.Equal(t, "перенесено", *f.schedule().Lessons.Change[0].Comment)

	upd.Code = "missing"
	_, err = svc.Update(ctx, testGroup, upd)
	require.ErrorIs(t, err, ErrChangeNotFound)
}

func TestChangeService_ListFiltersByLesson(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := newChangeService(f)

	for _, code := range []string{"l1", "l2", "l1"} {
		_, err := svc.Create(ctx, testGroup, newChange(code, nil))
		require.NoError(t, err)
	}

	all, err := svc.List(ctx, testGroup, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	l1, err := svc.List(ctx, testGroup, "l1")
	require.NoError(t, err)
	assert.Len(t, l1, 2)

	none, err := svc.List(ctx, testGroup, "l3")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestChangeService_GetAndDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := newChangeService(f)

	created, err := svc.Create(ctx, testGroup, newChange("l1", nil))
	require.NoError(t, err)

	got, err := svc.Get(ctx, testGroup, created.Code)
	require.NoError(t, err)
	assert.Equal(t, "l1", got.LessonCode)

	removed, err := svc.Delete(ctx, testGroup, created.Code)
	require.NoError(t, err)
	assert.Equal(t, created.Code, removed.Code)

	_, err = svc.Get(ctx, testGroup, created.Code)
	require.ErrorIs(t, err, ErrChangeNotFound)

	_, err = svc.Get(ctx, "other", created.Code)
	require.ErrorIs(t, err, ErrScheduleNotFound)
}

func TestChangeService_RejectsUnknownLecturer(t *testing.T) {
	f := newFixture()
	change := newChange("l1", nil)
	change.Lecturers = []string{"ghost"}

	_, err := newChangeService(f).Create(context.Background(), testGroup, change)
	require.ErrorIs(t, err, ErrLecturerNotFound)
}
