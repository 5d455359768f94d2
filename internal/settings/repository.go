package settings

import (
	"context"
	"database/sql"
	"fmt"

	"eway-hosted/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	GetByPrefix(ctx context.Context, prefix string) (map[string]string, error)
	Save(ctx context.Context, entries []Entry) error
	DeleteByPrefix(ctx context.Context, prefix string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByPrefix(ctx context.Context, prefix string) (map[string]string, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Settings"),
		zap.String("method", "GetByPrefix"),
	)

	const q = `
		SELECT name, value
		FROM settings
		WHERE name LIKE $1
	`

	rows, err := r.db.QueryContext(ctx, q, prefix+"%")
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	res := make(map[string]string)
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		res[name] = value
	}

	return res, rows.Err()
}

func (r *repository) Save(ctx context.Context, entries []Entry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	const q = `
		INSERT INTO settings (name, value)
		VALUES ($1, $2)
		ON CONFLICT (name)
		DO UPDATE SET value = EXCLUDED.value
	`

	for _, e := range entries {
		if _, err := tx.ExecContext(ctx, q, e.Name, e.Value); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to save setting %s: %w", e.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *repository) DeleteByPrefix(ctx context.Context, prefix string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM settings WHERE name LIKE $1`, prefix+"%")
	return err
}
