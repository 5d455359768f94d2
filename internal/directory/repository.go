package directory

import (
	"context"
	"database/sql"
	"errors"

	"eway-hosted/internal/logger"

	"go.uber.org/zap"
)

// Repository is a read-only lookup of store directory data.
// Unknown ids yield (nil, nil).
type Repository interface {
	GetCurrencyByID(ctx context.Context, id uint) (*Currency, error)
	GetCountryByID(ctx context.Context, id uint) (*Country, error)
	GetStateProvinceByID(ctx context.Context, id uint) (*StateProvince, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetCurrencyByID(ctx context.Context, id uint) (*Currency, error) {
	var c Currency
	err := r.db.QueryRowContext(ctx,
		`SELECT id, currency_code FROM currencies WHERE id = $1`, id,
	).Scan(&c.ID, &c.Code)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logFailure(ctx, "GetCurrencyByID", id, err)
		return nil, err
	}
	return &c, nil
}

func (r *repository) GetCountryByID(ctx context.Context, id uint) (*Country, error) {
	var c Country
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name FROM countries WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logFailure(ctx, "GetCountryByID", id, err)
		return nil, err
	}
	return &c, nil
}

func (r *repository) GetStateProvinceByID(ctx context.Context, id uint) (*StateProvince, error) {
	var s StateProvince
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name FROM state_provinces WHERE id = $1`, id,
	).Scan(&s.ID, &s.Name)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logFailure(ctx, "GetStateProvinceByID", id, err)
		return nil, err
	}
	return &s, nil
}

func (r *repository) logFailure(ctx context.Context, method string, id uint, err error) {
	logger.FromCtx(ctx).Error("query failed",
		zap.String("repo", "Directory"),
		zap.String("method", method),
		zap.Uint("id", id),
		zap.Error(err),
	)
}
