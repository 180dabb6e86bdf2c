package service

import (
	"context"
	"errors"
	"sync"

	"github.com/Freeeeeet/nau_schedule/internal/model"
)

func ptr[T any](v T) *T {
	return &v
}

type memSchedules struct {
	mu   sync.Mutex
	docs map[string]*model.Schedule
}

func newMemSchedules(docs ...*model.Schedule) *memSchedules {
	m := &memSchedules{docs: make(map[string]*model.Schedule)}
	for _, d := range docs {
		m.docs[d.Group] = d
	}
	return m
}

func cloneSchedule(s *model.Schedule) *model.Schedule {
	cp := *s
	cp.LessonTemplates = append([]model.LessonTemplate(nil), s.LessonTemplates...)
	cp.Lessons.Add = append([]model.RecurringLesson(nil), s.Lessons.Add...)
	cp.Lessons.Change = append([]model.Change(nil), s.Lessons.Change...)
	cp.WeekSyncs = append([]model.WeekSync(nil), s.WeekSyncs...)
	return &cp
}

func (m *memSchedules) GetByGroup(_ context.Context, groupCode string) (*model.Schedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[groupCode]
	if !ok {
		return nil, nil
	}
	return cloneSchedule(doc), nil
}

func (m *memSchedules) Create(_ context.Context, schedule *model.Schedule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[schedule.Group]; !ok {
		m.docs[schedule.Group] = cloneSchedule(schedule)
	}
	return nil
}

func (m *memSchedules) Update(_ context.Context, groupCode string, mutate func(*model.Schedule) error) (*model.Schedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[groupCode]
	if !ok {
		return nil, nil
	}
	cp := cloneSchedule(doc)
	if err := mutate(cp); err != nil {
		return nil, err
	}
	m.docs[groupCode] = cp
	return cloneSchedule(cp), nil
}

func (m *memSchedules) ListGroupCodes(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	codes := make([]string, 0, len(m.docs))
	for code := range m.docs {
		codes = append(codes, code)
	}
	return codes, nil
}

type memSpecialities struct {
	docs map[string]*model.Speciality
}

func (m *memSpecialities) GetByCode(_ context.Context, code string) (*model.Speciality, error) {
	doc, ok := m.docs[code]
	if !ok {
		return nil, nil
	}
	cp := *doc
	return &cp, nil
}

func (m *memSpecialities) Update(_ context.Context, code string, mutate func(*model.Speciality) error) (*model.Speciality, error) {
	doc, ok := m.docs[code]
	if !ok {
		return nil, nil
	}
	cp := *doc
	cp.LessonTemplates = append([]model.LessonTemplate(nil), doc.LessonTemplates...)
	if err := mutate(&cp); err != nil {
		return nil, err
	}
	m.docs[code] = &cp
	return &cp, nil
}

type fakeDirectory struct {
	groups    map[string]*model.Group
	faculties map[string]*model.Faculty
	lecturers []model.LecturerFull
	err       error
}

func (f *fakeDirectory) GetGroup(_ context.Context, groupCode string) (*model.Group, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.groups[groupCode], nil
}

func (f *fakeDirectory) GetFaculty(_ context.Context, code string) (*model.Faculty, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.faculties[code], nil
}

func (f *fakeDirectory) Groups(_ context.Context, faculty string) ([]model.Group, error) {
	var out []model.Group
	for _, g := range f.groups {
		if faculty == "" || g.Faculty == faculty {
			out = append(out, *g)
		}
	}
	return out, f.err
}

func (f *fakeDirectory) Lecturers(_ context.Context) ([]model.LecturerFull, error) {
	return f.lecturers, f.err
}

type fakeChecker struct {
	known map[string]bool
}

func (f *fakeChecker) MissingCodes(_ context.Context, codes []string) ([]string, error) {
	var missing []string
	for _, c := range codes {
		if !f.known[c] {
			missing = append(missing, c)
		}
	}
	return missing, nil
}

type fakeBindings struct {
	byChat map[int64][]string
}

func (f *fakeBindings) GetByTelegramID(_ context.Context, telegramID int64) ([]string, error) {
	return f.byChat[telegramID], nil
}

func (f *fakeBindings) Bind(_ context.Context, groupCode string, telegramID int64) error {
	if f.byChat == nil {
		f.byChat = make(map[int64][]string)
	}
	f.byChat[telegramID] = []string{groupCode}
	return nil
}

func (f *fakeBindings) Unbind(_ context.Context, telegramID int64) error {
	delete(f.byChat, telegramID)
	return nil
}

func (f *fakeBindings) ListBindings(_ context.Context) ([]model.GroupChat, error) {
	byGroup := make(map[string][]int64)
	for chat, groups := range f.byChat {
		for _, g := range groups {
			byGroup[g] = append(byGroup[g], chat)
		}
	}
	out := make([]model.GroupChat, 0, len(byGroup))
	for g, chats := range byGroup {
		out = append(out, model.GroupChat{GroupCode: g, TelegramIDs: chats})
	}
	return out, nil
}

type fakeApps struct {
	tokens map[string]model.AppToken
}

func (f *fakeApps) FindToken(_ context.Context, token string) (*model.App, *model.AppToken, error) {
	t, ok := f.tokens[token]
	if !ok {
		return nil, nil, nil
	}
	return &model.App{Code: "app", Tokens: []model.AppToken{t}}, &t, nil
}

var errDirectoryDown = errors.New("directory down")

// fixture группа ПІ-21 с расписанием, специальностью и факультетом
type fixture struct {
	schedules    *memSchedules
	specialities *memSpecialities
	directory    *fakeDirectory
	checker      *fakeChecker
	bindings     *fakeBindings
	apps         *fakeApps
	catalog      *Catalog
}

const (
	testGroup      = "pi-21"
	testSpeciality = "121"
	testFaculty    = "fcs"
)

func newFixture() *fixture {
	f := &fixture{
		schedules: newMemSchedules(&model.Schedule{
			Group: testGroup,
			LessonTemplates: []model.LessonTemplate{
				{ID: "g1", Names: []string{"Групповий шаблон"}},
			},
			WeekSyncs: []model.WeekSync{{Year: 2024, Week: 3, WeekNumber: 1}},
		}),
		specialities: &memSpecialities{docs: map[string]*model.Speciality{
			testSpeciality: {
				Code:  testSpeciality,
				Names: []string{"Інженерія ПЗ"},
				LessonTemplates: []model.LessonTemplate{
					{ID: "s1", Names: []string{"Математика"}, Time: ptr(480)},
				},
			},
		}},
		directory: &fakeDirectory{
			groups: map[string]*model.Group{
				testGroup: {
					Code:              testGroup,
					Names:             []string{"ПІ-21"},
					Faculty:           testFaculty,
					Speciality:        testSpeciality,
					HasSecondSubgroup: true,
				},
			},
			faculties: map[string]*model.Faculty{
				testFaculty: {Code: testFaculty},
			},
		},
		checker:  &fakeChecker{known: map[string]bool{"lect-1": true, "lect-2": true}},
		bindings: &fakeBindings{},
		apps: &fakeApps{tokens: map[string]model.AppToken{
			"good":     {Code: "good", Flags: []string{model.FlagShowPlaces}, Active: true},
			"noflags":  {Code: "noflags", Active: true},
			"inactive": {Code: "inactive", Flags: []string{model.FlagShowPlaces}},
		}},
	}
	f.catalog = NewCatalog(f.directory, f.specialities)
	return f
}

func (f *fixture) schedule() *model.Schedule {
	return f.schedules.docs[testGroup]
}

func period() (model.DateTuple, model.DateTuple) {
	return model.NewDateTuple(2024, 1, 1), model.NewDateTuple(2024, 6, 30)
}
