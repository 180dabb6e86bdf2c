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

// SpecialityRepository хранит шаблоны занятий специальностей
type SpecialityRepository struct {
	*base.Repository
	logger *zap.Logger
}

// NewSpecialityRepository создаёт новый репозиторий
func NewSpecialityRepository(pool *pgxpool.Pool, logger *zap.Logger) *SpecialityRepository {
	return &SpecialityRepository{
		Repository: base.NewRepository(pool),
		logger:     logger,
	}
}

// GetByCode получает специальность по коду
func (r *SpecialityRepository) GetByCode(ctx context.Context, code string) (*model.Speciality, error) {
	var data []byte
	err := r.QueryRow(ctx, `SELECT document FROM specialities WHERE code = $1`, code).Scan(&data)
	if base.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get speciality by code: %w", err)
	}

	speciality := &model.Speciality{}
	if err := base.DecodeDocument(data, speciality); err != nil {
		return nil, fmt.Errorf("speciality %s: %w", code, err)
	}
	if speciality.Code == "" {
		speciality.Code = code
	}
	return speciality, nil
}

// Upsert создаёт или заменяет документ специальности
func (r *SpecialityRepository) Upsert(ctx context.Context, speciality *model.Speciality) error {
	if speciality.LessonTemplates == nil {
		speciality.LessonTemplates = []model.LessonTemplate{}
	}
	data, err := base.EncodeDocument(speciality)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO specialities (code, document)
		VALUES ($1, $2)
		ON CONFLICT (code) DO UPDATE SET document = EXCLUDED.document, updated_at = NOW()
	`
	if _, err := r.ExecAffected(ctx, query, speciality.Code, data); err != nil {
		return fmt.Errorf("upsert speciality: %w", err)
	}
	return nil
}

// Update изменяет документ специальности под блокировкой строки.
// Отсутствие специальности возвращает nil, nil.
func (r *SpecialityRepository) Update(ctx context.Context, code string, mutate func(*model.Speciality) error) (*model.Speciality, error) {
	var result *model.Speciality

	err := r.WithTx(ctx, func(tx pgx.Tx) error {
		var data []byte
		err := tx.QueryRow(ctx, `SELECT document FROM specialities WHERE code = $1 FOR UPDATE`, code).Scan(&data)
		if base.IsNotFound(err) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("lock speciality: %w", err)
		}

		speciality := &model.Speciality{}
		if err := base.DecodeDocument(data, speciality); err != nil {
			return err
		}
		if speciality.Code == "" {
			speciality.Code = code
		}

		if err := mutate(speciality); err != nil {
			return err
		}
		if speciality.LessonTemplates == nil {
			speciality.LessonTemplates = []model.LessonTemplate{}
		}

		encoded, err := base.EncodeDocument(speciality)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
			UPDATE specialities
			SET document = $2, updated_at = NOW()
			WHERE code = $1
		`, code, encoded)
		if err != nil {
			return fmt.Errorf("write speciality: %w", err)
		}

		result = speciality
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result != nil {
		r.logger.Debug("Speciality updated", zap.String("speciality", code))
	}
	return result, nil
}
