package timetable

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/Freeeeeet/nau_schedule/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDirectory struct {
	lecturers map[string]model.LecturerShort
	err       error
	calls     [][]string
}

func (f *fakeDirectory) LookupLecturers(_ context.Context, codes []string) ([]model.LecturerShort, error) {
	f.calls = append(f.calls, codes)
	if f.err != nil {
		return nil, f.err
	}
	// обратный порядок: резолвер не должен на него полагаться
	var out []model.LecturerShort
	for i := len(codes) - 1; i >= 0; i-- {
		if l, ok := f.lecturers[codes[i]]; ok {
			out = append(out, l)
		}
	}
	return out, nil
}

func newTestResolver(t *testing.T, dir LecturerDirectory) *Resolver {
	t.Helper()
	return NewResolver(dir, kyiv(t))
}

func endToEndSchedule() *model.Schedule {
	return &model.Schedule{
		Group:     "G1",
		WeekSyncs: []model.WeekSync{{Year: 2023, Week: 42, WeekNumber: 1}},
		Lessons: model.Lessons{
			Add: []model.RecurringLesson{{
				Code:       "L1",
				DayNumber:  1,
				WeekNumber: 1,
				Time:       ptr(540),
				Duration:   ptr(90),
				StartDate:  model.NewDateTuple(2023, 1, 1),
				EndDate:    model.NewDateTuple(2023, 12, 31),
			}},
			Change: []model.Change{{
				Code:       "C1",
				LessonCode: "L1",
				StartDate:  model.NewDateTuple(2023, 10, 1),
				EndDate:    model.NewDateTuple(2023, 10, 31),
				Time:       ptr(600),
			}},
		},
	}
}

func day(schedule *model.Schedule, y, m, d int) Request {
	return Request{Schedule: schedule, Year: y, Month: m, Day: d}
}

func TestResolveDay_EndToEnd(t *testing.T) {
	t.Parallel()
	r := newTestResolver(t, nil)

	got, err := r.ResolveDay(context.Background(), day(endToEndSchedule(), 2023, 10, 16))
	require.NoError(t, err)

	assert.Equal(t, 1, got.WeekNumber)
	assert.Equal(t, 1, got.DayNumber)
	require.Len(t, got.Lessons, 1)
	assert.Equal(t, "L1", got.Lessons[0].Code)
	assert.Equal(t, 600, got.Lessons[0].Time)
	assert.Equal(t, 90, got.Lessons[0].Duration)
	assert.Equal(t, DefaultNames, got.Lessons[0].Names)
	assert.False(t, got.Lessons[0].Canceled)
}

func TestResolveDay_ChangeOutsideWindow(t *testing.T) {
	t.Parallel()
	r := newTestResolver(t, nil)

	// 2023-11-13 понедельник первой недели, изменение уже не действует
	got, err := r.ResolveDay(context.Background(), day(endToEndSchedule(), 2023, 11, 13))
	require.NoError(t, err)
	require.Len(t, got.Lessons, 1)
	assert.Equal(t, 540, got.Lessons[0].Time)
}

func TestResolveDay_WrongParityOrDay(t *testing.T) {
	t.Parallel()
	r := newTestResolver(t, nil)

	got, err := r.ResolveDay(context.Background(), day(endToEndSchedule(), 2023, 10, 23))
	require.NoError(t, err)
	assert.Equal(t, 2, got.WeekNumber)
	assert.Empty(t, got.Lessons)
	assert.NotNil(t, got.Lessons)

	got, err = r.ResolveDay(context.Background(), day(endToEndSchedule(), 2023, 10, 17))
	require.NoError(t, err)
	assert.Equal(t, 2, got.DayNumber)
	assert.Empty(t, got.Lessons)
}

func TestResolveDay_DateRangeInclusive(t *testing.T) {
	t.Parallel()
	r := newTestResolver(t, nil)

	schedule := &model.Schedule{
		WeekSyncs: []model.WeekSync{{Year: 2023, Week: 1, WeekNumber: 1}},
		Lessons: model.Lessons{Add: []model.RecurringLesson{
			{Code: "SUN", DayNumber: 7, WeekNumber: 1, StartDate: model.NewDateTuple(2023, 9, 1), EndDate: model.NewDateTuple(2023, 12, 31)},
			{Code: "MON", DayNumber: 1, WeekNumber: 1, StartDate: model.NewDateTuple(2023, 9, 1), EndDate: model.NewDateTuple(2023, 12, 31)},
		}},
	}

	got, err := r.ResolveDay(context.Background(), day(schedule, 2023, 10, 15))
	require.NoError(t, err)
	require.Len(t, got.Lessons, 1)
	assert.Equal(t, "SUN", got.Lessons[0].Code)

	got, err = r.ResolveDay(context.Background(), day(schedule, 2024, 1, 15))
	require.NoError(t, err)
	assert.Equal(t, 1, got.WeekNumber)
	assert.Equal(t, 1, got.DayNumber)
	assert.Empty(t, got.Lessons)

	// границы периода включаются
	schedule.Lessons.Add[0].StartDate = model.NewDateTuple(2023, 10, 15)
	schedule.Lessons.Add[0].EndDate = model.NewDateTuple(2023, 10, 15)
	got, err = r.ResolveDay(context.Background(), day(schedule, 2023, 10, 15))
	require.NoError(t, err)
	assert.Len(t, got.Lessons, 1)
}

func TestResolveDay_Uncalibrated(t *testing.T) {
	t.Parallel()
	r := newTestResolver(t, nil)

	schedule := endToEndSchedule()
	schedule.WeekSyncs = nil

	_, err := r.ResolveDay(context.Background(), day(schedule, 2023, 10, 16))
	assert.ErrorIs(t, err, ErrUncalibrated)
}

func TestResolveDay_Templates(t *testing.T) {
	t.Parallel()
	r := newTestResolver(t, nil)

	schedule := endToEndSchedule()
	schedule.Lessons.Change = nil
	schedule.LessonTemplates = []model.LessonTemplate{{
		ID:         "T",
		Subgroup:   ptr(2),
		Names:      []string{"Алгебра", "Algebra"},
		Time:       ptr(700),
		Places:     []model.Place{{PlaceType: model.PlaceAuditory, Text: "5.201"}},
		LessonType: ptr("lecture"),
	}}
	speciality := []model.LessonTemplate{{ID: "S", Names: []string{"Спец", "Spec"}, Duration: ptr(80)}}

	tests := []struct {
		name         string
		template     *string
		wantNames    []string
		wantTime     int
		wantDuration int
		wantSubgroup int
		wantUsed     string
	}{
		{"group template, lesson time wins", ptr("T"), []string{"Алгебра", "Algebra"}, 540, 90, 2, "T"},
		{"speciality template", ptr("-S"), []string{"Спец", "Spec"}, 540, 90, 0, "-S"},
		{"unresolved template dropped", ptr("X"), DefaultNames, 540, 90, 0, ""},
		{"no template", nil, DefaultNames, 540, 90, 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := *schedule
			lesson := schedule.Lessons.Add[0]
			lesson.Template = tt.template
			s.Lessons = model.Lessons{Add: []model.RecurringLesson{lesson}}

			got, err := r.ResolveDay(context.Background(), Request{
				Schedule:            &s,
				SpecialityTemplates: speciality,
				Year:                2023, Month: 10, Day: 16,
				ShowPlaces: true,
			})
			require.NoError(t, err)
			require.Len(t, got.Lessons, 1)

			out := got.Lessons[0]
			assert.Equal(t, tt.wantNames, out.Names)
			assert.Equal(t, tt.wantTime, out.Time)
			assert.Equal(t, tt.wantDuration, out.Duration)
			assert.Equal(t, tt.wantSubgroup, out.Subgroup)
			assert.Equal(t, tt.wantUsed, out.UsedTemplate)
		})
	}
}

func TestResolveDay_TemplateFillsOmittedFields(t *testing.T) {
	t.Parallel()
	r := newTestResolver(t, nil)

	schedule := &model.Schedule{
		WeekSyncs:       []model.WeekSync{{Year: 2023, Week: 42, WeekNumber: 1}},
		LessonTemplates: []model.LessonTemplate{{ID: "T", Names: []string{"Алгебра"}, Time: ptr(700), Duration: ptr(95)}},
		Lessons: model.Lessons{Add: []model.RecurringLesson{{
			Code: "L1", DayNumber: 1, WeekNumber: 1, Template: ptr("T"),
			StartDate: model.NewDateTuple(2023, 1, 1), EndDate: model.NewDateTuple(2023, 12, 31),
		}}},
	}

	got, err := r.ResolveDay(context.Background(), day(schedule, 2023, 10, 16))
	require.NoError(t, err)
	require.Len(t, got.Lessons, 1)
	assert.Equal(t, 700, got.Lessons[0].Time)
	assert.Equal(t, 95, got.Lessons[0].Duration)
	assert.Equal(t, []string{"Алгебра"}, got.Lessons[0].Names)
}

func TestResolveDay_CanceledChange(t *testing.T) {
	t.Parallel()
	r := newTestResolver(t, nil)

	withoutChange := endToEndSchedule()
	withoutChange.Lessons.Change = nil
	base, err := r.ResolveDay(context.Background(), day(withoutChange, 2023, 10, 16))
	require.NoError(t, err)

	withCancel := endToEndSchedule()
	withCancel.Lessons.Change = []model.Change{{
		Code: "C2", LessonCode: "L1", Canceled: ptr(true),
		StartDate: model.NewDateTuple(2023, 10, 16), EndDate: model.NewDateTuple(2023, 10, 16),
	}}
	got, err := r.ResolveDay(context.Background(), day(withCancel, 2023, 10, 16))
	require.NoError(t, err)

	want := base
	want.Lessons[0].Canceled = true
	assert.Equal(t, want, got)
}

func TestResolveDay_ChangesInStorageOrder(t *testing.T) {
	t.Parallel()
	r := newTestResolver(t, nil)

	schedule := endToEndSchedule()
	schedule.Lessons.Change = append(schedule.Lessons.Change,
		model.Change{
			Code: "C2", LessonCode: "L1", Time: ptr(660), Comment: ptr("second"),
			StartDate: model.NewDateTuple(2023, 10, 16), EndDate: model.NewDateTuple(2023, 10, 16),
		},
		model.Change{
			Code: "C3", LessonCode: "MISSING", Time: ptr(0),
			StartDate: model.NewDateTuple(2023, 10, 16), EndDate: model.NewDateTuple(2023, 10, 16),
		},
	)

	got, err := r.ResolveDay(context.Background(), day(schedule, 2023, 10, 16))
	require.NoError(t, err)
	require.Len(t, got.Lessons, 1)
	assert.Equal(t, 660, got.Lessons[0].Time)
	assert.Equal(t, "second", got.Lessons[0].Comment)
}

func TestResolveDay_ExcludeFlags(t *testing.T) {
	t.Parallel()
	r := newTestResolver(t, nil)

	req := day(endToEndSchedule(), 2023, 10, 16)

	req.ExcludeOnetime = true
	got, err := r.ResolveDay(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, got.Lessons, 1)
	assert.Equal(t, 540, got.Lessons[0].Time, "changes are skipped without one-off entries")

	req.ExcludeOnetime = false
	req.ExcludeRecurring = true
	got, err = r.ResolveDay(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, got.Lessons)
	assert.Equal(t, 1, got.WeekNumber)
}

func TestResolveDay_Places(t *testing.T) {
	t.Parallel()
	r := newTestResolver(t, nil)

	schedule := endToEndSchedule()
	schedule.Lessons.Add[0].Places = []model.Place{{PlaceType: model.PlaceOnlineMeet, Text: "https://meet"}}

	req := day(schedule, 2023, 10, 16)
	got, err := r.ResolveDay(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, got.Lessons, 1)
	assert.Equal(t, []model.Place{}, got.Lessons[0].Places)

	req.ShowPlaces = true
	got, err = r.ResolveDay(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, schedule.Lessons.Add[0].Places, got.Lessons[0].Places)
}

func TestResolveDay_Lecturers(t *testing.T) {
	t.Parallel()

	dir := &fakeDirectory{lecturers: map[string]model.LecturerShort{
		"u1": {Code: "u1", Name: "Іван", Surname: "Петренко"},
		"u2": {Code: "u2", Name: "Олена", Surname: "Коваль"},
	}}
	r := newTestResolver(t, dir)

	schedule := endToEndSchedule()
	schedule.Lessons.Add[0].Lecturers = []string{"u2", "ghost", "u1", "u2"}
	schedule.Lessons.Add = append(schedule.Lessons.Add, model.RecurringLesson{
		Code: "L2", DayNumber: 1, WeekNumber: 1, Lecturers: []string{"u1"},
		StartDate: model.NewDateTuple(2023, 1, 1), EndDate: model.NewDateTuple(2023, 12, 31),
	})

	got, err := r.ResolveDay(context.Background(), day(schedule, 2023, 10, 16))
	require.NoError(t, err)
	require.Len(t, got.Lessons, 2)

	require.Len(t, dir.calls, 1)
	assert.ElementsMatch(t, []string{"u2", "ghost", "u1"}, dir.calls[0])

	// L2 без времени стоит в 120, L1 перенесён на 600
	assert.Equal(t, "L2", got.Lessons[0].Code)
	assert.Equal(t, []model.LecturerShort{dir.lecturers["u1"]}, got.Lessons[0].Lecturers)
	assert.Equal(t, []model.LecturerShort{dir.lecturers["u2"], dir.lecturers["u1"]}, got.Lessons[1].Lecturers)
}

func TestResolveDay_LecturerLookupFailureDegrades(t *testing.T) {
	t.Parallel()

	dir := &fakeDirectory{err: errors.New("directory down")}
	r := newTestResolver(t, dir)

	schedule := endToEndSchedule()
	schedule.Lessons.Add[0].Lecturers = []string{"u1"}

	got, err := r.ResolveDay(context.Background(), day(schedule, 2023, 10, 16))
	require.NoError(t, err)
	require.Len(t, got.Lessons, 1)
	assert.Equal(t, []model.LecturerShort{}, got.Lessons[0].Lecturers)
	assert.Len(t, dir.calls, 1)
}

func TestResolveDay_StableSortByTime(t *testing.T) {
	t.Parallel()
	r := newTestResolver(t, nil)

	lesson := func(code string, tm int) model.RecurringLesson {
		return model.RecurringLesson{
			Code: code, DayNumber: 1, WeekNumber: 1, Time: ptr(tm),
			StartDate: model.NewDateTuple(2023, 1, 1), EndDate: model.NewDateTuple(2023, 12, 31),
		}
	}
	schedule := &model.Schedule{
		WeekSyncs: []model.WeekSync{{Year: 2023, Week: 42, WeekNumber: 1}},
		Lessons: model.Lessons{Add: []model.RecurringLesson{
			lesson("C", 700), lesson("A1", 540), lesson("B", 600), lesson("A2", 540),
		}},
	}

	got, err := r.ResolveDay(context.Background(), day(schedule, 2023, 10, 16))
	require.NoError(t, err)

	var codes []string
	for _, l := range got.Lessons {
		codes = append(codes, l.Code)
	}
	assert.Equal(t, []string{"A1", "A2", "B", "C"}, codes)
}

func TestResolveDay_IdempotentAndReadOnly(t *testing.T) {
	t.Parallel()

	dir := &fakeDirectory{lecturers: map[string]model.LecturerShort{"u1": {Code: "u1"}}}
	r := newTestResolver(t, dir)

	schedule := endToEndSchedule()
	schedule.Lessons.Add[0].Lecturers = []string{"u1"}
	schedule.Lessons.Add[0].Places = []model.Place{{PlaceType: model.PlaceAuditory, Text: "1"}}
	before, err := json.Marshal(schedule)
	require.NoError(t, err)

	req := day(schedule, 2023, 10, 16)
	req.ShowPlaces = true
	first, err := r.ResolveDay(context.Background(), req)
	require.NoError(t, err)
	second, err := r.ResolveDay(context.Background(), req)
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))

	after, err := json.Marshal(schedule)
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))
}

func TestResolveWeek(t *testing.T) {
	t.Parallel()
	r := newTestResolver(t, nil)

	schedule := &model.Schedule{
		WeekSyncs: []model.WeekSync{{Year: 2024, Week: 1, WeekNumber: 1}},
		Lessons: model.Lessons{Add: []model.RecurringLesson{
			{Code: "MON", DayNumber: 1, WeekNumber: 1, StartDate: model.NewDateTuple(2024, 1, 1), EndDate: model.NewDateTuple(2024, 12, 31)},
			{Code: "WED", DayNumber: 3, WeekNumber: 1, StartDate: model.NewDateTuple(2024, 1, 1), EndDate: model.NewDateTuple(2024, 12, 31)},
			{Code: "WED2", DayNumber: 3, WeekNumber: 2, StartDate: model.NewDateTuple(2024, 1, 1), EndDate: model.NewDateTuple(2024, 12, 31)},
		}},
	}

	week, err := r.ResolveWeek(context.Background(), WeekRequest{Schedule: schedule, Week: 3, Year: 2024})
	require.NoError(t, err)

	assert.Equal(t, 1, week.WeekNumber)
	require.Len(t, week.Days, 7)
	require.Len(t, week.Days[0].Lessons, 1)
	assert.Equal(t, "MON", week.Days[0].Lessons[0].Code)
	require.Len(t, week.Days[2].Lessons, 1)
	assert.Equal(t, "WED", week.Days[2].Lessons[0].Code)
	for _, i := range []int{1, 3, 4, 5, 6} {
		assert.Empty(t, week.Days[i].Lessons, "day %d", i)
	}
}

func TestResolveWeek_Uncalibrated(t *testing.T) {
	t.Parallel()
	r := newTestResolver(t, nil)

	_, err := r.ResolveWeek(context.Background(), WeekRequest{Schedule: &model.Schedule{}, Week: 3, Year: 2024})
	assert.ErrorIs(t, err, ErrUncalibrated)
}
