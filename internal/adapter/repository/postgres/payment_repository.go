package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/guzoride/guzo/internal/core/domain"
)

type PaymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

const paymentColumns = `
	id, booking_id, customer_id, amount, currency, payment_method, status,
	transaction_id, transaction_ref, notes, created_at, updated_at, completed_at
`

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	query := `
	INSERT INTO payments (` + paymentColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.BookingID,
		nullUUID(p.CustomerID),
		p.Amount,
		p.Currency,
		p.Method,
		p.Status,
		nullString(p.TransactionID),
		nullString(p.TransactionRef),
		p.Notes,
		p.CreatedAt,
		p.UpdatedAt,
		nullTime(p.CompletedAt),
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}

	return nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`

	payment, err := scanPayment(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return payment, nil
}

func (r *PaymentRepository) Update(ctx context.Context, p *domain.Payment) error {
	query := `
	UPDATE payments
	SET status = $1,
		transaction_id = $2,
		transaction_ref = $3,
		notes = $4,
		updated_at = $5,
		completed_at = $6
	WHERE id = $7
	`

	result, err := r.db.ExecContext(ctx, query,
		p.Status,
		nullString(p.TransactionID),
		nullString(p.TransactionRef),
		p.Notes,
		p.UpdatedAt,
		nullTime(p.CompletedAt),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}

	return requireRow(result)
}

func (r *PaymentRepository) ByBooking(ctx context.Context, bookingID uuid.UUID) ([]domain.Payment, error) {
	return r.list(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE booking_id = $1 ORDER BY created_at DESC`,
		bookingID)
}

func (r *PaymentRepository) ByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Payment, error) {
	return r.list(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE customer_id = $1 ORDER BY created_at DESC`,
		customerID)
}

func (r *PaymentRepository) ByStatus(ctx context.Context, status domain.PaymentStatus, limit int) ([]domain.Payment, error) {
	return r.list(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE status = $1 ORDER BY created_at DESC LIMIT $2`,
		status, limit)
}

func (r *PaymentRepository) CompletedBetween(ctx context.Context, start, end time.Time) ([]domain.Payment, error) {
	return r.list(ctx,
		`SELECT `+paymentColumns+`
		 FROM payments
		 WHERE status = 'completed' AND completed_at >= $1 AND completed_at < $2
		 ORDER BY completed_at DESC`,
		start, end)
}

func (r *PaymentRepository) list(ctx context.Context, query string, args ...any) ([]domain.Payment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *p)
	}
	return payments, rows.Err()
}

func scanPayment(row rowScanner) (*domain.Payment, error) {
	var p domain.Payment
	var customerID sql.NullString
	var txID, txRef sql.NullString
	var completedAt sql.NullTime

	err := row.Scan(
		&p.ID,
		&p.BookingID,
		&customerID,
		&p.Amount,
		&p.Currency,
		&p.Method,
		&p.Status,
		&txID,
		&txRef,
		&p.Notes,
		&p.CreatedAt,
		&p.UpdatedAt,
		&completedAt,
	)
	if err != nil {
		return nil, err
	}

	if p.CustomerID, err = parseNullUUID(customerID); err != nil {
		return nil, err
	}
	if txID.Valid {
		p.TransactionID = &txID.String
	}
	if txRef.Valid {
		p.TransactionRef = &txRef.String
	}
	if completedAt.Valid {
		p.CompletedAt = &completedAt.Time
	}

	return &p, nil
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}
