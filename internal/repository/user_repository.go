package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/nau_schedule/internal/model"
	"github.com/Freeeeeet/nau_schedule/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository пользователи системы, в том числе преподаватели
type UserRepository struct {
	*base.Repository
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт нового пользователя
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (code, name, surname, patronymic, telegram_ids)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	telegramIDs := user.TelegramIDs
	if telegramIDs == nil {
		telegramIDs = []int64{}
	}

	err := r.QueryRow(
		ctx, query,
		user.Code,
		user.Name,
		user.Surname,
		user.Patronymic,
		telegramIDs,
	).Scan(&user.CreatedAt)

	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

// GetByCode получает пользователя по коду
func (r *UserRepository) GetByCode(ctx context.Context, code string) (*model.User, error) {
	query := `
		SELECT code, name, surname, patronymic, telegram_ids, is_deleted, created_at
		FROM users
		WHERE code = $1
	`

	user, err := scanUser(r.QueryRow(ctx, query, code))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil // Пользователь не найден
		}
		return nil, fmt.Errorf("get user by code: %w", err)
	}

	return user, nil
}

// GetByTelegramID получает пользователя по Telegram ID
func (r *UserRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	query := `
		SELECT code, name, surname, patronymic, telegram_ids, is_deleted, created_at
		FROM users
		WHERE $1 = ANY(telegram_ids) AND NOT is_deleted
		LIMIT 1
	`

	user, err := scanUser(r.QueryRow(ctx, query, telegramID))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by telegram id: %w", err)
	}

	return user, nil
}

// LookupLecturers возвращает краткие записи найденных преподавателей.
// Отсутствующие коды в результат не попадают.
func (r *UserRepository) LookupLecturers(ctx context.Context, codes []string) ([]model.LecturerShort, error) {
	if len(codes) == 0 {
		return nil, nil
	}

	query := `
		SELECT code, name, surname, patronymic
		FROM users
		WHERE code = ANY($1)
	`

	rows, err := r.Query(ctx, query, codes)
	if err != nil {
		return nil, fmt.Errorf("lookup lecturers: %w", err)
	}
	defer rows.Close()

	lecturers, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.LecturerShort, error) {
		var l model.LecturerShort
		err := row.Scan(&l.Code, &l.Name, &l.Surname, &l.Patronymic)
		return l, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan lecturers: %w", err)
	}

	return lecturers, nil
}

// MissingCodes возвращает коды, которых нет среди пользователей
func (r *UserRepository) MissingCodes(ctx context.Context, codes []string) ([]string, error) {
	if len(codes) == 0 {
		return nil, nil
	}

	query := `
		SELECT c
		FROM unnest($1::text[]) AS c
		WHERE NOT EXISTS (SELECT 1 FROM users u WHERE u.code = c)
	`

	rows, err := r.Query(ctx, query, codes)
	if err != nil {
		return nil, fmt.Errorf("check user codes: %w", err)
	}
	defer rows.Close()

	missing, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan user codes: %w", err)
	}

	return missing, nil
}

func scanUser(row pgx.Row) (*model.User, error) {
	var user model.User
	err := row.Scan(
		&user.Code,
		&user.Name,
		&user.Surname,
		&user.Patronymic,
		&user.TelegramIDs,
		&user.IsDeleted,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
