package payment

import (
	"context"
	"database/sql"
	"time"

	"eway-hosted/internal/utils"
)

// ResultRecord is the audit copy of a validated merchant return.
type ResultRecord struct {
	ID                int64
	AccessCode        string
	OrderReference    string
	TransactionStatus string
	TransactionNumber string
	AuthCode          string
	ResponseCode      string
	ReturnAmount      string
	ResponseMessage   string
	ErrorMessage      string
	Succeeded         bool
	RawResponse       []byte
	CreatedAt         time.Time
}

func newResultRecord(accessCode string, outcome *TransactionOutcome, raw []byte) *ResultRecord {
	return &ResultRecord{
		AccessCode:        accessCode,
		OrderReference:    utils.PtrString(outcome.MerchantOption1),
		TransactionStatus: utils.PtrString(outcome.TransactionStatus),
		TransactionNumber: utils.PtrString(outcome.TransactionNumber),
		AuthCode:          utils.PtrString(outcome.AuthCode),
		ResponseCode:      utils.PtrString(outcome.ResponseCode),
		ReturnAmount:      utils.PtrString(outcome.ReturnAmount),
		ResponseMessage:   utils.PtrString(outcome.ResponseMessage),
		ErrorMessage:      utils.PtrString(outcome.ErrorMessage),
		Succeeded:         outcome.Succeeded(),
		RawResponse:       raw,
	}
}

type Repository interface {
	SaveResult(ctx context.Context, rec *ResultRecord) error
	ListRecentResults(ctx context.Context, limit int) ([]ResultRecord, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) SaveResult(ctx context.Context, rec *ResultRecord) error {
	const q = `
	INSERT INTO payment_results (
		access_code,
		order_reference,
		trxn_status,
		trxn_number,
		auth_code,
		response_code,
		return_amount,
		response_message,
		error_message,
		succeeded,
		raw_response
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	RETURNING id, created_at;
	`

	return r.db.QueryRowContext(
		ctx,
		q,
		rec.AccessCode,
		rec.OrderReference,
		rec.TransactionStatus,
		rec.TransactionNumber,
		rec.AuthCode,
		rec.ResponseCode,
		rec.ReturnAmount,
		rec.ResponseMessage,
		rec.ErrorMessage,
		rec.Succeeded,
		rec.RawResponse,
	).Scan(&rec.ID, &rec.CreatedAt)
}

func (r *repository) ListRecentResults(ctx context.Context, limit int) ([]ResultRecord, error) {
	const q = `
	SELECT id, access_code, order_reference, trxn_status, trxn_number,
		auth_code, response_code, return_amount, response_message,
		error_message, succeeded, created_at
	FROM payment_results
	ORDER BY created_at DESC
	LIMIT $1;
	`

	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ResultRecord
	for rows.Next() {
		var rec ResultRecord
		if err := rows.Scan(
			&rec.ID, &rec.AccessCode, &rec.OrderReference, &rec.TransactionStatus, &rec.TransactionNumber,
			&rec.AuthCode, &rec.ResponseCode, &rec.ReturnAmount, &rec.ResponseMessage,
			&rec.ErrorMessage, &rec.Succeeded, &rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
