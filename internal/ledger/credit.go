package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mmynk/splitledger/internal/amount"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// CreditInput is the input for AddCredit.
type CreditInput struct {
	AmountRaw string
	Comment   string
	DateRaw   string
}

// CreditHistory is a person's credit entries and the balance they sum to.
type CreditHistory struct {
	Person  models.Person
	Entries []models.CreditEntry
	Balance int64
}

// CreditBalance returns the signed sum of the person's credit entries.
func (l *Ledger) CreditBalance(ctx context.Context, ownerID, personID string) (int64, error) {
	var balance int64
	err := l.store.WithTx(ctx, func(q storage.Queries) error {
		if _, err := q.GetPerson(ctx, ownerID, personID); err != nil {
			return err
		}
		var err error
		balance, err = q.CreditBalance(ctx, ownerID, personID)
		return err
	})
	return balance, err
}

// CreditHistory returns the person's credit ledger oldest first.
func (l *Ledger) CreditHistory(ctx context.Context, ownerID, personID string) (*CreditHistory, error) {
	var history CreditHistory
	err := l.store.WithTx(ctx, func(q storage.Queries) error {
		person, err := q.GetPerson(ctx, ownerID, personID)
		if err != nil {
			return err
		}
		history.Person = *person

		history.Entries, err = q.ListCreditEntries(ctx, ownerID, personID)
		if err != nil {
			return err
		}
		for _, e := range history.Entries {
			history.Balance += e.Amount
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &history, nil
}

// AddCredit deposits credit for a person by hand.
func (l *Ledger) AddCredit(ctx context.Context, ownerID, personID string, in CreditInput) (*models.CreditEntry, error) {
	amt, err := amount.Positive(in.AmountRaw)
	if err != nil {
		return nil, l.finish("add_credit", 0, err, "person_id", personID, "amount_raw", in.AmountRaw)
	}
	date, err := parseDate("date", in.DateRaw, l.now())
	if err != nil {
		return nil, l.finish("add_credit", 0, err, "person_id", personID)
	}

	entry := &models.CreditEntry{
		OwnerID:  ownerID,
		PersonID: personID,
		Amount:   amt,
		Kind:     models.CreditKindCredit,
		Origin:   models.OriginDeposit,
		Comment:  strings.TrimSpace(in.Comment),
		Date:     date,
	}
	err = l.store.WithTx(ctx, func(q storage.Queries) error {
		if _, err := q.GetPerson(ctx, ownerID, personID); err != nil {
			return err
		}
		return q.CreateCreditEntry(ctx, entry)
	})
	if err != nil {
		return nil, l.finish("add_credit", 0, err, "owner_id", ownerID, "person_id", personID, "amount", amt)
	}
	return entry, l.finish("add_credit", amt, nil)
}

// useCredit debits the line owner's credit balance for payment. It fails
// with ErrInsufficientCredit when the balance does not cover the amount
// and returns the balance left otherwise.
func useCredit(ctx context.Context, q storage.Queries, ownerID string, line *models.DebtLine, payment *models.Payment) (int64, error) {
	balance, err := q.CreditBalance(ctx, ownerID, line.PersonID)
	if err != nil {
		return 0, err
	}
	if payment.Amount > balance {
		return 0, fmt.Errorf("%w: need %d, person %s has %d", ErrInsufficientCredit, payment.Amount, line.PersonID, balance)
	}

	debit := &models.CreditEntry{
		OwnerID:   ownerID,
		PersonID:  line.PersonID,
		Amount:    -payment.Amount,
		Kind:      models.CreditKindDebit,
		Origin:    models.OriginUse,
		PaymentID: payment.ID,
		Comment:   fmt.Sprintf("Used as payment on movement %s", line.MovementID),
		Date:      payment.Date,
	}
	if err := q.CreateCreditEntry(ctx, debit); err != nil {
		return 0, err
	}
	return balance - payment.Amount, nil
}

// reverseCredit undoes the credit effects of a payment that is being
// deleted. Credit it consumed is returned; credit banked from it is taken
// back, which fails if that credit has already been spent. Prior entries
// are never touched: each reversal is a new entry.
func reverseCredit(ctx context.Context, q storage.Queries, ownerID, personID string, payment *models.Payment, now time.Time) error {
	if payment.CreditFunded {
		used, err := q.SumCreditByPayment(ctx, payment.ID, models.OriginUse)
		if err != nil {
			return err
		}
		if used < 0 {
			entry := &models.CreditEntry{
				OwnerID:   ownerID,
				PersonID:  personID,
				Amount:    -used,
				Kind:      models.CreditKindCredit,
				Origin:    models.OriginReversal,
				PaymentID: payment.ID,
				Comment:   "Reversal of deleted credit-funded payment",
				Date:      now,
			}
			if err := q.CreateCreditEntry(ctx, entry); err != nil {
				return err
			}
			slog.Debug("Credit use reversed", "payment_id", payment.ID, "amount", -used)
		}
	}

	banked, err := q.SumCreditByPayment(ctx, payment.ID, models.OriginBank)
	if err != nil {
		return err
	}
	if banked <= 0 {
		return nil
	}
	balance, err := q.CreditBalance(ctx, ownerID, personID)
	if err != nil {
		return err
	}
	if balance < banked {
		return fmt.Errorf("%w: payment %s banked %d but person %s only has %d left",
			ErrInsufficientCredit, payment.ID, banked, personID, balance)
	}
	entry := &models.CreditEntry{
		OwnerID:   ownerID,
		PersonID:  personID,
		Amount:    -banked,
		Kind:      models.CreditKindDebit,
		Origin:    models.OriginReversal,
		PaymentID: payment.ID,
		Comment:   "Reversal of credit banked from deleted payment",
		Date:      now,
	}
	if err := q.CreateCreditEntry(ctx, entry); err != nil {
		return err
	}
	slog.Debug("Banked credit reversed", "payment_id", payment.ID, "amount", banked)
	return nil
}
