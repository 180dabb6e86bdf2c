package service

import (
	"context"
	"testing"

	"github.com/Freeeeeet/nau_schedule/internal/model"
	"github.com/Freeeeeet/nau_schedule/internal/timetable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newLessonService(f *fixture) *LessonService {
	return NewLessonService(f.schedules, f.catalog, f.checker, zap.NewNop())
}

func newLesson(template *string, lecturers ...string) model.RecurringLesson {
	start, end := period()
	return model.RecurringLesson{
		DayNumber:  1,
		WeekNumber: 1,
		Template:   template,
		Lecturers:  lecturers,
		StartDate:  start,
		EndDate:    end,
	}
}

func TestLessonService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		template *string
		wantErr  error
	}{
		{name: "без шаблона"},
		{name: "шаблон группы", template: ptr("g1")},
		{name: "шаблон специальности", template: ptr("-s1")},
		{name: "неизвестный шаблон", template: ptr("-g1"), wantErr: ErrTemplateNotFound},
		{name: "неизвестный шаблон группы", template: ptr("s1"), wantErr: ErrTemplateNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			svc := newLessonService(f)

			created, err := svc.Create(ctx, testGroup, newLesson(tt.template, "lect-1"))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, f.schedule().Lessons.Add)
				return
			}

			require.NoError(t, err)
			assert.Len(t, created.Code, 16)
			assert.NotNil(t, created.Recordings)
			require.Len(t, f.schedule().Lessons.Add, 1)
			assert.Equal(t, created.Code, f.schedule().Lessons.Add[0].Code)
		})
	}
}

func TestLessonService_CreateTemplateErrorMessage(t *testing.T) {
	f := newFixture()
	svc := newLessonService(f)

	_, err := svc.Create(context.Background(), testGroup, newLesson(ptr("nope")))

	var tplErr *TemplateNotFoundError
	require.ErrorAs(t, err, &tplErr)
	assert.Equal(t, "template nope not found", tplErr.Error())
}

func TestLessonService_CreateRejectsUnknownLecturers(t *testing.T) {
	f := newFixture()
	svc := newLessonService(f)

	_, err := svc.Create(context.Background(), testGroup, newLesson(nil, "lect-1", "ghost", "shadow"))

	var lectErr *LecturerNotFoundError
	require.ErrorAs(t, err, &lectErr)
	assert.Equal(t, "ghost, shadow not found", lectErr.Error())
	assert.ErrorIs(t, err, ErrLecturerNotFound)
	assert.Empty(t, f.schedule().Lessons.Add)
}

func TestLessonService_CreateValidatesPeriod(t *testing.T) {
	f := newFixture()
	svc := newLessonService(f)

	lesson := newLesson(nil)
	lesson.StartDate = model.NewDateTuple(2024, 2, 30)
	_, err := svc.Create(context.Background(), testGroup, lesson)
	require.ErrorIs(t, err, timetable.ErrInvalidDate)

	lesson = newLesson(nil)
	lesson.StartDate, lesson.EndDate = lesson.EndDate, lesson.StartDate
	_, err = svc.Create(context.Background(), testGroup, lesson)
	require.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestLessonService_LookupFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("нет группы в справочнике", func(t *testing.T) {
		f := newFixture()
		_, err := newLessonService(f).Create(ctx, "unknown", newLesson(nil))
		require.ErrorIs(t, err, ErrGroupNotFound)
	})

	t.Run("нет специальности", func(t *testing.T) {
		f := newFixture()
		delete(f.specialities.docs, testSpeciality)
		_, err := newLessonService(f).Create(ctx, testGroup, newLesson(nil))
		require.ErrorIs(t, err, ErrSpecialityNotFound)
	})

	t.Run("нет расписания", func(t *testing.T) {
		f := newFixture()
		delete(f.schedules.docs, testGroup)
		_, err := newLessonService(f).Create(ctx, testGroup, newLesson(nil))
		require.ErrorIs(t, err, ErrScheduleNotFound)
	})

	t.Run("справочник недоступен", func(t *testing.T) {
		f := newFixture()
		f.directory.err = errDirectoryDown
		_, err := newLessonService(f).List(ctx, testGroup)
		require.ErrorIs(t, err, errDirectoryDown)
	})
}

func TestLessonService_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := newLessonService(f)

	created, err := svc.Create(ctx, testGroup, newLesson(nil))
	require.NoError(t, err)

	changed := *created
	changed.Names = []string{"Фізика"}
	changed.Template = ptr("-s1")
	_, err = svc.Update(ctx, testGroup, changed)
	require.NoError(t, err)
	assert.Equal(t, []string{"Фізика"}, f.schedule().Lessons.Add[0].Names)

	bad := changed
	bad.Template = ptr("-missing")
	_, err = svc.Update(ctx, testGroup, bad)
	require.ErrorIs(t, err, ErrTemplateNotFound)
	assert.Equal(t, "-s1", *f.schedule().Lessons.Add[0].Template)

	unknown := changed
	unknown.Code = "0000000000000000"
	_, err = svc.Update(ctx, testGroup, unknown)
	require.ErrorIs(t, err, ErrLessonNotFound)

	removed, err := svc.Delete(ctx, testGroup, created.Code)
	require.NoError(t, err)
	assert.Equal(t, created.Code, removed.Code)
	assert.Empty(t, f.schedule().Lessons.Add)

	_, err = svc.Delete(ctx, testGroup, created.Code)
	require.ErrorIs(t, err, ErrLessonNotFound)
}

func TestLessonService_GetNormalizesSubgroups(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	start, end := period()
	f.schedule().Lessons.Add = []model.RecurringLesson{
		{Code: "a", DayNumber: 1, WeekNumber: 1, StartDate: start, EndDate: end},
		{Code: "b", DayNumber: 2, WeekNumber: 1, Subgroup: ptr(model.SubgroupSecond), StartDate: start, EndDate: end},
	}
	svc := newLessonService(f)

	lesson, err := svc.Get(ctx, testGroup, "a")
	require.NoError(t, err)
	require.NotNil(t, lesson.Subgroup)
	assert.Equal(t, model.SubgroupBoth, *lesson.Subgroup)

	stored := f.schedule().Lessons.Add
	require.NotNil(t, stored[0].Subgroup)
	assert.Equal(t, model.SubgroupBoth, *stored[0].Subgroup)
	assert.Equal(t, model.SubgroupSecond, *stored[1].Subgroup)

	_, err = svc.Get(ctx, testGroup, "missing")
	require.ErrorIs(t, err, ErrLessonNotFound)
}
