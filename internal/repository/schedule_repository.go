package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/nau_schedule/internal/model"
	"github.com/Freeeeeet/nau_schedule/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// ScheduleRepository хранит документы расписаний групп
type ScheduleRepository struct {
	*base.Repository
	logger *zap.Logger
}

// NewScheduleRepository создаёт новый репозиторий
func NewScheduleRepository(pool *pgxpool.Pool, logger *zap.Logger) *ScheduleRepository {
	return &ScheduleRepository{
		Repository: base.NewRepository(pool),
		logger:     logger,
	}
}

// GetByGroup получает расписание группы
func (r *ScheduleRepository) GetByGroup(ctx context.Context, groupCode string) (*model.Schedule, error) {
	query := `
		SELECT document
		FROM schedules
		WHERE group_code = $1
	`

	var data []byte
	err := r.QueryRow(ctx, query, groupCode).Scan(&data)
	if base.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get schedule by group: %w", err)
	}

	return decodeSchedule(groupCode, data)
}

// Create создаёт пустое расписание группы, если его ещё нет
func (r *ScheduleRepository) Create(ctx context.Context, schedule *model.Schedule) error {
	data, err := base.EncodeDocument(normalizeSchedule(schedule))
	if err != nil {
		return err
	}

	query := `
		INSERT INTO schedules (group_code, document)
		VALUES ($1, $2)
		ON CONFLICT (group_code) DO NOTHING
	`

	if _, err := r.ExecAffected(ctx, query, schedule.Group, data); err != nil {
		return fmt.Errorf("create schedule: %w", err)
	}

	return nil
}

// Update читает документ под блокировкой строки, применяет mutate и записывает целиком.
// Если mutate вернул ошибку, изменения не сохраняются. Отсутствие документа возвращает nil, nil.
func (r *ScheduleRepository) Update(ctx context.Context, groupCode string, mutate func(*model.Schedule) error) (*model.Schedule, error) {
	var result *model.Schedule

	err := r.WithTx(ctx, func(tx pgx.Tx) error {
		var data []byte
		err := tx.QueryRow(ctx, `
			SELECT document
			FROM schedules
			WHERE group_code = $1
			FOR UPDATE
		`, groupCode).Scan(&data)
		if base.IsNotFound(err) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("lock schedule: %w", err)
		}

		schedule, err := decodeSchedule(groupCode, data)
		if err != nil {
			return err
		}

		if err := mutate(schedule); err != nil {
			return err
		}

		encoded, err := base.EncodeDocument(normalizeSchedule(schedule))
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
			UPDATE schedules
			SET document = $2, updated_at = NOW()
			WHERE group_code = $1
		`, groupCode, encoded)
		if err != nil {
			return fmt.Errorf("write schedule: %w", err)
		}

		result = schedule
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result != nil {
		r.logger.Debug("Schedule updated", zap.String("group_code", groupCode))
	}

	return result, nil
}

// ListGroupCodes возвращает коды всех групп, у которых есть расписание
func (r *ScheduleRepository) ListGroupCodes(ctx context.Context) ([]string, error) {
	rows, err := r.Query(ctx, `SELECT group_code FROM schedules ORDER BY group_code`)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	defer rows.Close()

	codes, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan schedules: %w", err)
	}

	return codes, nil
}

func decodeSchedule(groupCode string, data []byte) (*model.Schedule, error) {
	schedule := &model.Schedule{}
	if err := base.DecodeDocument(data, schedule); err != nil {
		return nil, fmt.Errorf("schedule %s: %w", groupCode, err)
	}
	if schedule.Group == "" {
		schedule.Group = groupCode
	}
	return normalizeSchedule(schedule), nil
}

// normalizeSchedule заменяет пустые списки на [], чтобы документ оставался массивами
func normalizeSchedule(s *model.Schedule) *model.Schedule {
	if s.LessonTemplates == nil {
		s.LessonTemplates = []model.LessonTemplate{}
	}
	if s.Lessons.Add == nil {
		s.Lessons.Add = []model.RecurringLesson{}
	}
	if s.Lessons.Change == nil {
		s.Lessons.Change = []model.Change{}
	}
	if s.WeekSyncs == nil {
		s.WeekSyncs = []model.WeekSync{}
	}
	return s
}
