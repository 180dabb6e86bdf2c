package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/nau_schedule/internal/model"
	"github.com/Freeeeeet/nau_schedule/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AppRepository сторонние приложения и их токены
type AppRepository struct {
	*base.Repository
}

func NewAppRepository(pool *pgxpool.Pool) *AppRepository {
	return &AppRepository{Repository: base.NewRepository(pool)}
}

// FindToken ищет приложение, которому выдан токен с кодом token
func (r *AppRepository) FindToken(ctx context.Context, token string) (*model.App, *model.AppToken, error) {
	query := `
		SELECT document
		FROM apps
		WHERE document -> 'tokens' @> jsonb_build_array(jsonb_build_object('code', $1::text))
		LIMIT 1
	`

	var data []byte
	err := r.QueryRow(ctx, query, token).Scan(&data)
	if base.IsNotFound(err) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("find app token: %w", err)
	}

	app := &model.App{}
	if err := base.DecodeDocument(data, app); err != nil {
		return nil, nil, err
	}

	t, ok := app.Token(token)
	if !ok {
		return nil, nil, nil
	}
	return app, &t, nil
}

// Upsert создаёт или заменяет приложение
func (r *AppRepository) Upsert(ctx context.Context, app *model.App) error {
	data, err := base.EncodeDocument(app)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO apps (code, document)
		VALUES ($1, $2)
		ON CONFLICT (code) DO UPDATE SET document = EXCLUDED.document
	`
	if _, err := r.ExecAffected(ctx, query, app.Code, data); err != nil {
		return fmt.Errorf("upsert app: %w", err)
	}
	return nil
}
