package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/nau_schedule/internal/model"
	"github.com/Freeeeeet/nau_schedule/internal/timetable"
	"go.uber.org/zap"
)

// DayQuery запрос расписания группы на день
type DayQuery struct {
	GroupCode        string
	Day              int
	Month            int
	Year             int
	ExcludeOnetime   bool
	ExcludeRecurring bool
	ShowPlaces       bool
}

// WeekQuery запрос расписания группы на неделю
type WeekQuery struct {
	GroupCode        string
	Week             int
	Year             int
	ExcludeOnetime   bool
	ExcludeRecurring bool
	ShowPlaces       bool
}

// SubgroupQuery запрос расписания всех групп, привязанных к чату
type SubgroupQuery struct {
	TelegramID       int64
	Day              int
	Month            int
	Year             int
	ExcludeOnetime   bool
	ExcludeRecurring bool
	ShowPlace        bool
	Token            string
}

// GroupInfo краткие данные группы в ответе по подгруппам
type GroupInfo struct {
	Code  string   `json:"code"`
	Names []string `json:"names"`
	Desc  string   `json:"desc"`
}

// SubgroupLesson занятие с полями, которые ждёт бот
type SubgroupLesson struct {
	model.OutputLesson
	LocalID string `json:"local_id"`
	Place   string `json:"place"`
}

// SubgroupDay расписание группы на день, разделённое по подгруппам.
// SecondSubgroup равен nil, если у группы нет второй подгруппы.
type SubgroupDay struct {
	Group          GroupInfo        `json:"group"`
	FirstSubgroup  []SubgroupLesson `json:"first_subgroup"`
	SecondSubgroup []SubgroupLesson `json:"second_subgroup"`
	WeekNumber     int              `json:"week_number"`
	DayNumber      int              `json:"day_number"`
}

// ScheduleService чтение расписаний
type ScheduleService struct {
	schedules ScheduleStore
	catalog   *Catalog
	bindings  ChatBindings
	apps      AppTokens
	resolver  *timetable.Resolver
	logger    *zap.Logger
}

func NewScheduleService(
	schedules ScheduleStore,
	catalog *Catalog,
	bindings ChatBindings,
	apps AppTokens,
	resolver *timetable.Resolver,
	logger *zap.Logger,
) *ScheduleService {
	return &ScheduleService{
		schedules: schedules,
		catalog:   catalog,
		bindings:  bindings,
		apps:      apps,
		resolver:  resolver,
		logger:    logger,
	}
}

// Resolver движок расчёта расписания
func (s *ScheduleService) Resolver() *timetable.Resolver {
	return s.resolver
}

// load проверяет расписание, группу, факультет и специальность в этом порядке
func (s *ScheduleService) load(ctx context.Context, groupCode string) (*model.Schedule, *model.Group, []model.LessonTemplate, error) {
	schedule, err := s.schedules.GetByGroup(ctx, groupCode)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("get schedule: %w", err)
	}
	if schedule == nil {
		return nil, nil, nil, ErrScheduleNotFound
	}

	group, err := s.catalog.Group(ctx, groupCode)
	if err != nil {
		return nil, nil, nil, err
	}
	if _, err := s.catalog.Faculty(ctx, group); err != nil {
		return nil, nil, nil, err
	}
	speciality, err := s.catalog.Speciality(ctx, group.Speciality)
	if err != nil {
		return nil, nil, nil, err
	}

	return schedule, group, speciality.LessonTemplates, nil
}

// Day расписание группы на день
func (s *ScheduleService) Day(ctx context.Context, q DayQuery) (model.Day, error) {
	schedule, _, templates, err := s.load(ctx, q.GroupCode)
	if err != nil {
		return model.Day{}, err
	}

	if !timetable.IsDateValid(q.Day, q.Month, q.Year) {
		return model.Day{}, timetable.ErrInvalidDate
	}

	day, err := s.resolver.ResolveDay(ctx, timetable.Request{
		Schedule:            schedule,
		SpecialityTemplates: templates,
		Day:                 q.Day,
		Month:               q.Month,
		Year:                q.Year,
		ExcludeOnetime:      q.ExcludeOnetime,
		ExcludeRecurring:    q.ExcludeRecurring,
		ShowPlaces:          q.ShowPlaces,
	})
	if err != nil {
		return model.Day{}, fmt.Errorf("resolve day: %w", err)
	}

	return day, nil
}

// Week расписание группы на неделю
func (s *ScheduleService) Week(ctx context.Context, q WeekQuery) (model.Week, error) {
	schedule, _, templates, err := s.load(ctx, q.GroupCode)
	if err != nil {
		return model.Week{}, err
	}

	week, err := s.resolver.ResolveWeek(ctx, timetable.WeekRequest{
		Schedule:            schedule,
		SpecialityTemplates: templates,
		Week:                q.Week,
		Year:                q.Year,
		ExcludeOnetime:      q.ExcludeOnetime,
		ExcludeRecurring:    q.ExcludeRecurring,
		ShowPlaces:          q.ShowPlaces,
	})
	if err != nil {
		return model.Week{}, fmt.Errorf("resolve week: %w", err)
	}

	return week, nil
}

// BySubgroups расписание всех групп чата на день с разбиением по подгруппам
func (s *ScheduleService) BySubgroups(ctx context.Context, q SubgroupQuery) ([]SubgroupDay, error) {
	codes, err := s.bindings.GetByTelegramID(ctx, q.TelegramID)
	if err != nil {
		return nil, fmt.Errorf("get chat groups: %w", err)
	}
	if len(codes) == 0 {
		return nil, ErrGroupsNotBound
	}

	if !timetable.IsDateValid(q.Day, q.Month, q.Year) {
		return nil, timetable.ErrInvalidDate
	}

	tokenAllowsPlaces := false
	if q.ShowPlace {
		if err := s.checkPlacesToken(ctx, q.Token); err != nil {
			return nil, err
		}
		tokenAllowsPlaces = true
	}

	result := make([]SubgroupDay, 0, len(codes))
	for _, code := range codes {
		group, err := s.catalog.Group(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("group %s: %w", code, err)
		}
		schedule, err := s.schedules.GetByGroup(ctx, group.Code)
		if err != nil {
			return nil, fmt.Errorf("get schedule: %w", err)
		}
		if schedule == nil {
			return nil, ErrScheduleNotFound
		}
		speciality, err := s.catalog.Speciality(ctx, group.Speciality)
		if err != nil {
			return nil, err
		}

		day, err := s.resolver.ResolveDay(ctx, timetable.Request{
			Schedule:            schedule,
			SpecialityTemplates: speciality.LessonTemplates,
			Day:                 q.Day,
			Month:               q.Month,
			Year:                q.Year,
			ExcludeOnetime:      q.ExcludeOnetime,
			ExcludeRecurring:    q.ExcludeRecurring,
			ShowPlaces:          schedule.ShowLinks || tokenAllowsPlaces,
		})
		if err != nil {
			return nil, fmt.Errorf("resolve day for %s: %w", group.Code, err)
		}

		result = append(result, SplitBySubgroups(group, day))
	}

	return result, nil
}

func (s *ScheduleService) checkPlacesToken(ctx context.Context, token string) error {
	if token == "" {
		return ErrTokenRequired
	}
	_, appToken, err := s.apps.FindToken(ctx, token)
	if err != nil {
		return fmt.Errorf("find token: %w", err)
	}
	if appToken == nil {
		return ErrTokenNotFound
	}
	if !appToken.HasFlag(model.FlagShowPlaces) {
		return ErrTokenForbidden
	}
	return nil
}

// SplitBySubgroups раскладывает занятия дня по подгруппам.
// Занятия для обеих подгрупп и для всех попадают в каждую.
func SplitBySubgroups(group *model.Group, day model.Day) SubgroupDay {
	out := SubgroupDay{
		Group: GroupInfo{
			Code:  group.Code,
			Names: group.Names,
			Desc:  group.Desc,
		},
		FirstSubgroup: make([]SubgroupLesson, 0, len(day.Lessons)),
		WeekNumber:    day.WeekNumber,
		DayNumber:     day.DayNumber,
	}
	if out.Group.Names == nil {
		out.Group.Names = []string{}
	}
	if group.HasSecondSubgroup {
		out.SecondSubgroup = make([]SubgroupLesson, 0, len(day.Lessons))
	}

	for _, l := range day.Lessons {
		entry := SubgroupLesson{OutputLesson: l, LocalID: l.Code, Place: l.FirstPlace()}

		switch l.Subgroup {
		case model.SubgroupFirst:
			out.FirstSubgroup = append(out.FirstSubgroup, entry)
		case model.SubgroupSecond:
			if group.HasSecondSubgroup {
				out.SecondSubgroup = append(out.SecondSubgroup, entry)
			}
		case model.SubgroupBoth, model.SubgroupAll:
			out.FirstSubgroup = append(out.FirstSubgroup, entry)
			if group.HasSecondSubgroup {
				out.SecondSubgroup = append(out.SecondSubgroup, entry)
			}
		}
	}

	return out
}
