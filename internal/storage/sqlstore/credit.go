package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/splitledger/internal/models"
)

// CreateCreditEntry appends an entry to a person's credit ledger.
func (q *queries) CreateCreditEntry(ctx context.Context, e *models.CreditEntry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}

	var paymentID any
	if e.PaymentID != "" {
		paymentID = e.PaymentID
	}

	// seq orders entries that share a date.
	_, err := q.exec(ctx,
		`INSERT INTO credit_entries (id, owner_id, person_id, amount, kind, origin, payment_id, comment, date, seq)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.OwnerID, e.PersonID, e.Amount, string(e.Kind), string(e.Origin), paymentID, e.Comment, toUnix(e.Date),
		time.Now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert credit entry: %w", err)
	}
	return nil
}

// ListCreditEntries returns a person's credit history oldest first.
func (q *queries) ListCreditEntries(ctx context.Context, ownerID, personID string) ([]models.CreditEntry, error) {
	rows, err := q.query(ctx,
		`SELECT id, owner_id, person_id, amount, kind, origin, payment_id, comment, date
		 FROM credit_entries WHERE owner_id = ? AND person_id = ? ORDER BY date, seq, id`,
		ownerID, personID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list credit entries: %w", err)
	}
	defer rows.Close()

	var entries []models.CreditEntry
	for rows.Next() {
		var e models.CreditEntry
		var kind, origin string
		var paymentID sql.NullString
		var date int64
		if err := rows.Scan(&e.ID, &e.OwnerID, &e.PersonID, &e.Amount, &kind, &origin, &paymentID, &e.Comment, &date); err != nil {
			return nil, fmt.Errorf("failed to scan credit entry: %w", err)
		}
		e.Kind = models.CreditKind(kind)
		e.Origin = models.CreditOrigin(origin)
		if paymentID.Valid {
			e.PaymentID = paymentID.String
		}
		e.Date = fromUnix(date)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate credit entries: %w", err)
	}
	return entries, nil
}

// CreditBalance is the signed sum of a person's credit entries.
func (q *queries) CreditBalance(ctx context.Context, ownerID, personID string) (int64, error) {
	total, err := q.sum(ctx,
		"SELECT COALESCE(SUM(amount), 0) FROM credit_entries WHERE owner_id = ? AND person_id = ?",
		ownerID, personID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to sum credit: %w", err)
	}
	return total, nil
}

// CreditBalances returns the credit balance of every person of the owner
// that has at least one entry.
func (q *queries) CreditBalances(ctx context.Context, ownerID string) (map[string]int64, error) {
	rows, err := q.query(ctx,
		"SELECT person_id, COALESCE(SUM(amount), 0) FROM credit_entries WHERE owner_id = ? GROUP BY person_id",
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to sum credit balances: %w", err)
	}
	defer rows.Close()

	balances := make(map[string]int64)
	for rows.Next() {
		var personID string
		var total int64
		if err := rows.Scan(&personID, &total); err != nil {
			return nil, fmt.Errorf("failed to scan credit balance: %w", err)
		}
		balances[personID] = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate credit balances: %w", err)
	}
	return balances, nil
}

// SumCreditByPayment is the signed sum of entries with the given origin
// that reference paymentID.
func (q *queries) SumCreditByPayment(ctx context.Context, paymentID string, origin models.CreditOrigin) (int64, error) {
	total, err := q.sum(ctx,
		"SELECT COALESCE(SUM(amount), 0) FROM credit_entries WHERE payment_id = ? AND origin = ?",
		paymentID, string(origin),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to sum credit for payment: %w", err)
	}
	return total, nil
}
