package timetable

import (
	"context"
	"sort"
	"time"

	"github.com/Freeeeeet/nau_schedule/internal/model"
)

// LecturerDirectory источник данных о преподавателях.
// Порядок результата не важен, отсутствующие коды просто не возвращаются.
type LecturerDirectory interface {
	LookupLecturers(ctx context.Context, codes []string) ([]model.LecturerShort, error)
}

// Request параметры расчёта одного дня
type Request struct {
	Schedule            *model.Schedule
	SpecialityTemplates []model.LessonTemplate
	Day                 int
	Month               int
	Year                int
	ExcludeOnetime      bool
	ExcludeRecurring    bool
	ShowPlaces          bool
}

// WeekRequest параметры расчёта недели
type WeekRequest struct {
	Schedule            *model.Schedule
	SpecialityTemplates []model.LessonTemplate
	Week                int
	Year                int
	ExcludeOnetime      bool
	ExcludeRecurring    bool
	ShowPlaces          bool
}

// Resolver собирает расписание на дату из занятий, шаблонов и изменений.
// Не хранит состояния и безопасен для параллельного использования.
type Resolver struct {
	lecturers LecturerDirectory
	loc       *time.Location
}

// NewResolver создаёт резолвер. lecturers может быть nil, тогда преподаватели не выводятся.
func NewResolver(lecturers LecturerDirectory, loc *time.Location) *Resolver {
	if loc == nil {
		loc = time.UTC
	}
	return &Resolver{
		lecturers: lecturers,
		loc:       loc,
	}
}

// Location часовой пояс учебного заведения
func (r *Resolver) Location() *time.Location {
	return r.loc
}

// ResolveDay рассчитывает занятия на дату. Корректность даты проверяет вызывающий.
func (r *Resolver) ResolveDay(ctx context.Context, req Request) (model.Day, error) {
	date := Date(req.Year, req.Month, req.Day, r.loc)

	parity, err := ResolveParity(date, req.Schedule.WeekSyncs)
	if err != nil {
		return model.Day{}, err
	}
	dayNumber := weekdayNumber(date)
	civil := Civil(date)

	var lessons []Lesson
	if !req.ExcludeRecurring {
		lessons = r.selectRecurring(req, civil, dayNumber, parity)
	}

	// Изменения применяются только вместе с постоянными занятиями
	if !req.ExcludeOnetime && !req.ExcludeRecurring {
		lessons = applyChanges(lessons, req.Schedule.Lessons.Change, civil)
	}

	output := r.project(ctx, lessons, req.ShowPlaces)

	return model.Day{
		Lessons:    output,
		WeekNumber: parity,
		DayNumber:  dayNumber,
	}, nil
}

// ResolveWeek рассчитывает семь дней начиная с понедельника недели week года year
func (r *Resolver) ResolveWeek(ctx context.Context, req WeekRequest) (model.Week, error) {
	monday := MondayOfWeek(req.Week, req.Year, r.loc)

	parity, err := ResolveParity(monday, req.Schedule.WeekSyncs)
	if err != nil {
		return model.Week{}, err
	}

	week := model.Week{
		Days:       make([]model.WeekDay, 0, 7),
		WeekNumber: parity,
	}
	for i := 0; i < 7; i++ {
		date := monday.AddDate(0, 0, i)
		day, err := r.ResolveDay(ctx, Request{
			Schedule:            req.Schedule,
			SpecialityTemplates: req.SpecialityTemplates,
			Day:                 date.Day(),
			Month:               int(date.Month()),
			Year:                date.Year(),
			ExcludeOnetime:      req.ExcludeOnetime,
			ExcludeRecurring:    req.ExcludeRecurring,
			ShowPlaces:          req.ShowPlaces,
		})
		if err != nil {
			return model.Week{}, err
		}
		week.Days = append(week.Days, model.WeekDay{Lessons: day.Lessons})
	}

	return week, nil
}

func (r *Resolver) selectRecurring(req Request, date model.DateTuple, dayNumber, parity int) []Lesson {
	var lessons []Lesson
	for i := range req.Schedule.Lessons.Add {
		rl := &req.Schedule.Lessons.Add[i]
		if rl.DayNumber != dayNumber || rl.WeekNumber != parity || !rl.ActiveOn(date) {
			continue
		}

		base := BaseLesson()
		if rl.Template != nil && *rl.Template != "" {
			ref := ParseTemplateRef(*rl.Template)
			if tpl, ok := ResolveTemplate(ref, req.Schedule.LessonTemplates, req.SpecialityTemplates); ok {
				base = base.WithTemplate(tpl)
				base.UsedTemplate = ref.String()
			}
		}
		lessons = append(lessons, base.WithRecurring(rl))
	}
	return lessons
}

// applyChanges накладывает активные изменения в порядке хранения.
// Если код встречается у нескольких занятий, изменяется первое.
func applyChanges(lessons []Lesson, changes []model.Change, date model.DateTuple) []Lesson {
	for i := range changes {
		change := &changes[i]
		if !change.ActiveOn(date) {
			continue
		}
		for j := range lessons {
			if lessons[j].Code == change.LessonCode {
				lessons[j] = ApplyChange(lessons[j], change)
				break
			}
		}
	}
	return lessons
}

// project строит клиентское представление: подставляет преподавателей,
// скрывает места и сортирует по времени
func (r *Resolver) project(ctx context.Context, lessons []Lesson, showPlaces bool) []model.OutputLesson {
	known := r.lookupLecturers(ctx, lessons)

	output := make([]model.OutputLesson, 0, len(lessons))
	for _, l := range lessons {
		out := model.OutputLesson{
			Code:         l.Code,
			Subgroup:     l.Subgroup,
			UsedTemplate: l.UsedTemplate,
			Comment:      l.Comment,
			Lecturers:    make([]model.LecturerShort, 0, len(l.Lecturers)),
			Names:        nonNilStrings(l.Names),
			Time:         l.Time,
			Duration:     l.Duration,
			Places:       []model.Place{},
			Canceled:     l.Canceled,
			LessonType:   l.LessonType,
			Recordings:   nonNilStrings(l.Recordings),
		}

		seen := make(map[string]struct{}, len(l.Lecturers))
		for _, code := range l.Lecturers {
			if _, dup := seen[code]; dup {
				continue
			}
			seen[code] = struct{}{}
			if lecturer, ok := known[code]; ok {
				out.Lecturers = append(out.Lecturers, lecturer)
			}
		}

		if showPlaces && l.Places != nil {
			out.Places = clonePlaces(l.Places)
		}

		output = append(output, out)
	}

	sort.SliceStable(output, func(i, j int) bool {
		return output[i].Time < output[j].Time
	})

	return output
}

// lookupLecturers один запрос на все коды дня. Ошибка источника даёт пустой результат.
func (r *Resolver) lookupLecturers(ctx context.Context, lessons []Lesson) map[string]model.LecturerShort {
	known := make(map[string]model.LecturerShort)
	if r.lecturers == nil {
		return known
	}

	var codes []string
	seen := make(map[string]struct{})
	for _, l := range lessons {
		for _, code := range l.Lecturers {
			if _, ok := seen[code]; ok {
				continue
			}
			seen[code] = struct{}{}
			codes = append(codes, code)
		}
	}
	if len(codes) == 0 {
		return known
	}

	found, err := r.lecturers.LookupLecturers(ctx, codes)
	if err != nil {
		return known
	}
	for _, lecturer := range found {
		known[lecturer.Code] = lecturer
	}
	return known
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return cloneStrings(s)
}
