// Package data provides database repositories.
package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/cataworks/cata-api/internal/data/pgxutil"
	"github.com/cataworks/cata-api/internal/domain/model"
	apperrors "github.com/cataworks/cata-api/internal/errors"
)

// PaymentRepo provides database operations for payment confirmations.
// Upserts are idempotent: replaying a notification for the same job simply
// overwrites the row, last write wins.
type PaymentRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewPaymentRepo creates a new PaymentRepo with the real time provider.
func NewPaymentRepo(db *sql.DB) *PaymentRepo {
	return &PaymentRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewPaymentRepoWithTimeProvider creates a new PaymentRepo with a custom time
// provider (useful for tests).
func NewPaymentRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *PaymentRepo {
	return &PaymentRepo{DB: db, timeProvider: tp}
}

// paymentRow mirrors the payments table for pgx row collection.
type paymentRow struct {
	JobID  string          `db:"job_id"`
	Paid   bool            `db:"paid"`
	PaidAt *time.Time      `db:"paid_at"`
	Info   json.RawMessage `db:"info"`
}

// MarkPaid records a payment confirmation for a job, overwriting any
// existing record for the same job id.
func (r *PaymentRepo) MarkPaid(ctx context.Context, jobID string, info map[string]string) error {
	if jobID == "" {
		return apperrors.Validation("job id is required")
	}

	infoJSON, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("encode payment info: %w", err)
	}
	paidAt := r.timeProvider.Now().UTC()

	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		_, execErr := conn.Exec(ctx, `
			INSERT INTO payments (job_id, paid, paid_at, info)
			VALUES ($1, TRUE, $2, $3)
			ON CONFLICT (job_id) DO UPDATE
			SET paid = EXCLUDED.paid, paid_at = EXCLUDED.paid_at, info = EXCLUDED.info
		`, jobID, paidAt, infoJSON)
		return execErr
	}); err != nil {
		return apperrors.MapDBError(err)
	}
	return nil
}

// IsPaid reports whether a job id is marked paid. Unknown job ids are simply
// unpaid, not an error.
func (r *PaymentRepo) IsPaid(ctx context.Context, jobID string) (bool, error) {
	var paid bool
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		row := conn.QueryRow(ctx, `SELECT paid FROM payments WHERE job_id = $1`, jobID)
		if scanErr := row.Scan(&paid); scanErr != nil {
			if errors.Is(scanErr, pgx.ErrNoRows) {
				paid = false
				return nil
			}
			return scanErr
		}
		return nil
	}); err != nil {
		return false, apperrors.MapDBError(err)
	}
	return paid, nil
}

// Get retrieves the full payment record for a job id.
func (r *PaymentRepo) Get(ctx context.Context, jobID string) (*model.PaymentRecord, error) {
	var row paymentRow
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, queryErr := conn.Query(ctx, `
			SELECT job_id, paid, paid_at, info FROM payments WHERE job_id = $1
		`, jobID)
		if queryErr != nil {
			return queryErr
		}
		defer rows.Close()
		var collectErr error
		row, collectErr = pgx.CollectOneRow(rows, pgx.RowToStructByName[paymentRow])
		return collectErr
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}

	record := &model.PaymentRecord{
		JobID:  row.JobID,
		Paid:   row.Paid,
		PaidAt: row.PaidAt,
	}
	if len(row.Info) > 0 {
		if err := json.Unmarshal(row.Info, &record.Info); err != nil {
			return nil, fmt.Errorf("decode payment info: %w", err)
		}
	}
	return record, nil
}
