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

// GroupRepository привязки групп к чатам Telegram
type GroupRepository struct {
	*base.Repository
	logger *zap.Logger
}

func NewGroupRepository(pool *pgxpool.Pool, logger *zap.Logger) *GroupRepository {
	return &GroupRepository{
		Repository: base.NewRepository(pool),
		logger:     logger,
	}
}

// GetByTelegramID возвращает коды групп, привязанных к чату
func (r *GroupRepository) GetByTelegramID(ctx context.Context, telegramID int64) ([]string, error) {
	rows, err := r.Query(ctx, `
		SELECT code
		FROM groups
		WHERE $1 = ANY(telegram_ids)
		ORDER BY code
	`, telegramID)
	if err != nil {
		return nil, fmt.Errorf("get groups by telegram id: %w", err)
	}
	defer rows.Close()

	codes, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan groups: %w", err)
	}
	return codes, nil
}

// Bind привязывает чат к группе, снимая прежние привязки этого чата
func (r *GroupRepository) Bind(ctx context.Context, groupCode string, telegramID int64) error {
	err := r.WithTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			UPDATE groups
			SET telegram_ids = array_remove(telegram_ids, $1), updated_at = NOW()
			WHERE $1 = ANY(telegram_ids)
		`, telegramID)
		if err != nil {
			return fmt.Errorf("unbind previous groups: %w", err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO groups (code, telegram_ids)
			VALUES ($1, ARRAY[$2::bigint])
			ON CONFLICT (code) DO UPDATE
			SET telegram_ids = array_append(array_remove(groups.telegram_ids, $2::bigint), $2::bigint), updated_at = NOW()
		`, groupCode, telegramID)
		if err != nil {
			return fmt.Errorf("bind group: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.logger.Info("Chat bound to group",
		zap.String("group_code", groupCode),
		zap.Int64("telegram_id", telegramID),
	)
	return nil
}

// Unbind снимает все привязки чата
func (r *GroupRepository) Unbind(ctx context.Context, telegramID int64) error {
	_, err := r.ExecAffected(ctx, `
		UPDATE groups
		SET telegram_ids = array_remove(telegram_ids, $1), updated_at = NOW()
		WHERE $1 = ANY(telegram_ids)
	`, telegramID)
	if err != nil {
		return fmt.Errorf("unbind chat: %w", err)
	}
	return nil
}

// ListBindings возвращает все группы, у которых есть хотя бы один чат
func (r *GroupRepository) ListBindings(ctx context.Context) ([]model.GroupChat, error) {
	rows, err := r.Query(ctx, `
		SELECT code, telegram_ids
		FROM groups
		WHERE cardinality(telegram_ids) > 0
		ORDER BY code
	`)
	if err != nil {
		return nil, fmt.Errorf("list group bindings: %w", err)
	}
	defer rows.Close()

	bindings, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.GroupChat, error) {
		var g model.GroupChat
		err := row.Scan(&g.GroupCode, &g.TelegramIDs)
		return g, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan group bindings: %w", err)
	}
	return bindings, nil
}
