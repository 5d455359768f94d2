package address

import (
	"context"
	"database/sql"
	"errors"

	"eway-hosted/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Address, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*Address, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Address"),
		zap.String("method", "GetByID"),
		zap.String("address_id", id.String()),
	)

	const q = `
		SELECT
			id,
			first_name, last_name,
			email, phone,
			address1, city, zip_postal_code,
			state_province_id, country_id
		FROM addresses
		WHERE id = $1
		LIMIT 1
	`

	var (
		a       Address
		stateID sql.NullInt64
		country sql.NullInt64
	)
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&a.ID,
		&a.FirstName, &a.LastName,
		&a.Email, &a.Phone,
		&a.Address1, &a.City, &a.ZipPostalCode,
		&stateID, &country,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAddressNotFound
	}
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}

	a.StateProvinceID = nullableID(stateID)
	a.CountryID = nullableID(country)

	return &a, nil
}

func nullableID(v sql.NullInt64) *uint {
	if !v.Valid {
		return nil
	}
	id := uint(v.Int64)
	return &id
}
