package locale

import (
	"context"
	"database/sql"
	"errors"

	"eway-hosted/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Get(ctx context.Context, name string) (string, error)
	AddOrUpdate(ctx context.Context, name, value string) error
	Delete(ctx context.Context, name string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Get(ctx context.Context, name string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM locale_resources WHERE name = $1`, name,
	).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrResourceNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("locale lookup failed",
			zap.String("name", name),
			zap.Error(err),
		)
		return "", err
	}

	return value, nil
}

func (r *repository) AddOrUpdate(ctx context.Context, name, value string) error {
	const q = `
		INSERT INTO locale_resources (name, value)
		VALUES ($1, $2)
		ON CONFLICT (name)
		DO UPDATE SET value = EXCLUDED.value
	`

	_, err := r.db.ExecContext(ctx, q, name, value)
	return err
}

func (r *repository) Delete(ctx context.Context, name string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM locale_resources WHERE name = $1`, name)
	return err
}
