package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mmynk/splitledger/internal/amount"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// PaymentInput is the input for AddPayment.
type PaymentInput struct {
	AmountRaw string

	// DateRaw defaults to now when empty.
	DateRaw string

	// UseCredit draws the payment from the person's credit balance.
	UseCredit bool
}

// PaymentResult is returned by AddPayment. Callers that want to prefill
// the next payment form carry Payment.Amount forward themselves.
type PaymentResult struct {
	Payment models.Payment
	Line    models.DebtLine

	// CreditBalance is the person's balance after the payment. Only set
	// when the payment used credit.
	CreditBalance int64
}

// AddPayment records a payment against a debt line and reconciles the line.
// With UseCredit set it also writes a debit entry of the same amount to
// the person's credit ledger.
func (l *Ledger) AddPayment(ctx context.Context, ownerID, lineID string, in PaymentInput) (*PaymentResult, error) {
	amt, err := amount.Positive(in.AmountRaw)
	if err != nil {
		return nil, l.finish("add_payment", 0, err, "debt_line_id", lineID, "amount_raw", in.AmountRaw)
	}
	date, err := parseDate("date", in.DateRaw, l.now())
	if err != nil {
		return nil, l.finish("add_payment", 0, err, "debt_line_id", lineID)
	}

	var result PaymentResult
	err = l.store.WithTx(ctx, func(q storage.Queries) error {
		line, err := q.GetDebtLine(ctx, ownerID, lineID)
		if err != nil {
			return err
		}

		payment := models.Payment{
			ID:           uuid.New().String(),
			DebtLineID:   line.ID,
			Amount:       amt,
			Date:         date,
			CreditFunded: in.UseCredit,
		}

		if in.UseCredit {
			balance, err := useCredit(ctx, q, ownerID, line, &payment)
			if err != nil {
				return err
			}
			result.CreditBalance = balance
		}

		if err := q.CreatePayment(ctx, &payment); err != nil {
			return err
		}
		if err := recompute(ctx, q, line); err != nil {
			return err
		}

		result.Payment = payment
		result.Line = *line
		return nil
	})
	if err != nil {
		return nil, l.finish("add_payment", 0, err,
			"owner_id", ownerID, "debt_line_id", lineID, "amount", amt, "use_credit", in.UseCredit)
	}

	slog.Info("Payment recorded",
		"payment_id", result.Payment.ID,
		"debt_line_id", lineID,
		"amount", amt,
		"outstanding", result.Line.Outstanding,
		"credit_funded", in.UseCredit,
	)
	return &result, l.finish("add_payment", amt, nil)
}

// DeletePayment removes a payment and reverses everything that hangs off
// it, atomically:
//
//  1. allocations drawn from it are deleted and their destination
//     payments removed, re-opening the destination lines;
//  2. credit it consumed is given back and credit banked from it is
//     taken back, both as new reversal entries;
//  3. the payment's own line is reconciled.
func (l *Ledger) DeletePayment(ctx context.Context, ownerID, paymentID string) error {
	err := l.store.WithTx(ctx, func(q storage.Queries) error {
		payment, err := q.GetPayment(ctx, ownerID, paymentID)
		if err != nil {
			return err
		}
		return l.deletePayment(ctx, q, ownerID, payment, make(map[string]bool))
	})
	if err == nil {
		slog.Info("Payment deleted", "payment_id", paymentID)
	}
	return l.finish("delete_payment", 0, err, "owner_id", ownerID, "payment_id", paymentID)
}

// deletePayment is the cascade behind DeletePayment and DeleteMovement.
// seen guards against visiting a payment twice in one cascade.
func (l *Ledger) deletePayment(ctx context.Context, q storage.Queries, ownerID string, payment *models.Payment, seen map[string]bool) error {
	if seen[payment.ID] {
		return nil
	}
	seen[payment.ID] = true

	line, err := q.GetDebtLine(ctx, ownerID, payment.DebtLineID)
	if err != nil {
		return err
	}

	// 1. Outgoing allocations.
	outgoing, err := q.ListAllocationsBySource(ctx, payment.ID)
	if err != nil {
		return err
	}
	for _, a := range outgoing {
		if err := q.DeleteAllocation(ctx, a.ID); err != nil {
			return err
		}
		dest, err := q.GetPayment(ctx, ownerID, a.DestinationPaymentID)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		if err := l.deletePayment(ctx, q, ownerID, dest, seen); err != nil {
			return fmt.Errorf("reversing allocation %s: %w", a.ID, err)
		}
	}

	// A payment created by an allocation takes its allocation record with it.
	incoming, err := q.ListAllocationsByDestinationPayment(ctx, payment.ID)
	if err != nil {
		return err
	}
	for _, a := range incoming {
		if err := q.DeleteAllocation(ctx, a.ID); err != nil {
			return err
		}
	}

	// 2. Credit.
	if err := reverseCredit(ctx, q, ownerID, line.PersonID, payment, l.now()); err != nil {
		return err
	}

	// 3. The payment's own line.
	if err := q.DeletePayment(ctx, payment.ID); err != nil {
		return err
	}
	return recompute(ctx, q, line)
}
