package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

const paymentColumns = `p.id, p.debt_line_id, p.amount, p.date, p.credit_funded, p.created_at`

func scanPayment(row rowScanner) (models.Payment, error) {
	var p models.Payment
	var date int64
	err := row.Scan(&p.ID, &p.DebtLineID, &p.Amount, &date, &p.CreditFunded, &p.CreatedAt)
	p.Date = fromUnix(date)
	return p, err
}

// CreatePayment inserts a payment, generating ID and CreatedAt if unset.
func (q *queries) CreatePayment(ctx context.Context, p *models.Payment) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.CreatedAt == 0 {
		p.CreatedAt = time.Now().Unix()
	}
	_, err := q.exec(ctx,
		`INSERT INTO payments (id, debt_line_id, amount, date, credit_funded, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.DebtLineID, p.Amount, toUnix(p.Date), p.CreditFunded, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}
	return nil
}

// GetPayment retrieves a payment whose movement belongs to ownerID.
func (q *queries) GetPayment(ctx context.Context, ownerID, paymentID string) (*models.Payment, error) {
	p, err := scanPayment(q.queryRow(ctx,
		`SELECT `+paymentColumns+` FROM payments p
		 JOIN debt_lines l ON l.id = p.debt_line_id
		 JOIN movements m ON m.id = l.movement_id
		 WHERE p.id = ? AND m.owner_id = ?`,
		paymentID, ownerID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("payment %s: %w", paymentID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return &p, nil
}

// ListPaymentsByLine returns a line's payments oldest first.
func (q *queries) ListPaymentsByLine(ctx context.Context, lineID string) ([]models.Payment, error) {
	rows, err := q.query(ctx,
		`SELECT `+paymentColumns+` FROM payments p WHERE p.debt_line_id = ? ORDER BY p.date, p.created_at, p.id`,
		lineID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}
	return payments, nil
}

// SumPayments totals the live payments of a line.
func (q *queries) SumPayments(ctx context.Context, lineID string) (int64, error) {
	total, err := q.sum(ctx, "SELECT COALESCE(SUM(amount), 0) FROM payments WHERE debt_line_id = ?", lineID)
	if err != nil {
		return 0, fmt.Errorf("failed to sum payments: %w", err)
	}
	return total, nil
}

// DeletePayment removes a payment row.
func (q *queries) DeletePayment(ctx context.Context, paymentID string) error {
	return q.execOne(ctx, "delete payment", "DELETE FROM payments WHERE id = ?", paymentID)
}
