package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/nau_schedule/internal/model"
	"github.com/Freeeeeet/nau_schedule/internal/timetable"
	"go.uber.org/zap"
)

// Допустимые значения точки синхронизации
const (
	minSyncYear = 2022
	maxSyncYear = 2049
	maxSyncWeek = 52
)

// WeekSyncInput новая точка синхронизации. Пустые год и неделя берутся текущими.
type WeekSyncInput struct {
	GroupCode  string
	Year       *int
	Week       *int
	WeekNumber int
}

// WeekSyncService точки синхронизации номеров недель
type WeekSyncService struct {
	schedules ScheduleStore
	loc       *time.Location
	now       func() time.Time
	logger    *zap.Logger
}

func NewWeekSyncService(schedules ScheduleStore, loc *time.Location, logger *zap.Logger) *WeekSyncService {
	return &WeekSyncService{
		schedules: schedules,
		loc:       loc,
		now:       time.Now,
		logger:    logger,
	}
}

// Add добавляет точку синхронизации в конец списка
func (s *WeekSyncService) Add(ctx context.Context, in WeekSyncInput) (model.WeekSync, error) {
	sync, err := s.build(in)
	if err != nil {
		return model.WeekSync{}, err
	}

	schedule, err := s.schedules.Update(ctx, in.GroupCode, func(sc *model.Schedule) error {
		sc.WeekSyncs = append(sc.WeekSyncs, sync)
		return nil
	})
	if err != nil {
		return model.WeekSync{}, fmt.Errorf("add week sync: %w", err)
	}
	if schedule == nil {
		return model.WeekSync{}, ErrScheduleNotFound
	}

	s.logger.Info("📅 Week sync added",
		zap.String("group_code", in.GroupCode),
		zap.Int("year", sync.Year),
		zap.Int("week", sync.Week),
		zap.Int("week_number", sync.WeekNumber),
	)

	return sync, nil
}

// List точки синхронизации группы в порядке добавления
func (s *WeekSyncService) List(ctx context.Context, groupCode string) ([]model.WeekSync, error) {
	schedule, err := s.schedules.GetByGroup(ctx, groupCode)
	if err != nil {
		return nil, fmt.Errorf("list week syncs: %w", err)
	}
	if schedule == nil {
		return nil, ErrScheduleNotFound
	}
	return schedule.WeekSyncs, nil
}

// Delete удаляет точку по индексу в списке
func (s *WeekSyncService) Delete(ctx context.Context, groupCode string, index int) (model.WeekSync, error) {
	var removed model.WeekSync
	schedule, err := s.schedules.Update(ctx, groupCode, func(sc *model.Schedule) error {
		if index < 0 || index >= len(sc.WeekSyncs) {
			return &WeekSyncError{Reason: fmt.Sprintf("week sync %d not found", index)}
		}
		removed = sc.WeekSyncs[index]
		sc.WeekSyncs = append(sc.WeekSyncs[:index], sc.WeekSyncs[index+1:]...)
		return nil
	})
	if err != nil {
		return model.WeekSync{}, fmt.Errorf("delete week sync: %w", err)
	}
	if schedule == nil {
		return model.WeekSync{}, ErrScheduleNotFound
	}

	s.logger.Info("Week sync deleted",
		zap.String("group_code", groupCode),
		zap.Int("index", index),
	)

	return removed, nil
}

func (s *WeekSyncService) build(in WeekSyncInput) (model.WeekSync, error) {
	now := s.now().In(s.loc)

	sync := model.WeekSync{
		Year:       now.Year(),
		Week:       timetable.ISOWeekNumber(now),
		WeekNumber: in.WeekNumber,
	}
	if in.Year != nil {
		sync.Year = *in.Year
	}
	if in.Week != nil {
		sync.Week = *in.Week
	}

	if sync.Year < minSyncYear || sync.Year > maxSyncYear {
		return model.WeekSync{}, &WeekSyncError{Reason: fmt.Sprintf("year wrong (must be %d-%d)", minSyncYear, maxSyncYear)}
	}
	if sync.Week < 1 || sync.Week > maxSyncWeek {
		return model.WeekSync{}, &WeekSyncError{Reason: fmt.Sprintf("week wrong (must be 1-%d)", maxSyncWeek)}
	}
	if in.WeekNumber == 0 {
		return model.WeekSync{}, &WeekSyncError{Reason: "week_number must be provided"}
	}
	if sync.WeekNumber < 1 || sync.WeekNumber > 2 {
		return model.WeekSync{}, &WeekSyncError{Reason: "week_number wrong (must be 1-2)"}
	}

	return sync, nil
}
