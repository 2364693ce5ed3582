package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mmynk/splitledger/internal/amount"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// AllocationInput is the input for Allocate.
type AllocationInput struct {
	// DestinationMovementID empty means "bank what is left as credit".
	DestinationMovementID string

	// DestinationPersonID picks whose line on the destination movement
	// receives the money. Empty means the source payer's own line.
	DestinationPersonID string

	AmountRaw string
	DateRaw   string
}

// AllocationResult reports what Allocate did. Exactly one of Allocation
// and Banked is set.
type AllocationResult struct {
	Allocation      *models.IndirectAllocation
	DestinationLine *models.DebtLine
	Banked          *models.CreditEntry

	// Remaining is what the source payment still has to redistribute.
	Remaining int64
}

// Allocate redistributes part of a full payer's payment.
//
// With a destination movement, min(requested, destination outstanding) is
// paid onto the destination line and recorded as an IndirectAllocation.
// Without one, everything the payment has left (not just the requested
// amount) is banked as credit for the payer.
//
// Allocations and banked credit of a payment never add up to more than
// the payment itself; asking for more fails with ErrOverAllocation and
// changes nothing.
func (l *Ledger) Allocate(ctx context.Context, ownerID, sourcePaymentID string, in AllocationInput) (*AllocationResult, error) {
	requested, err := amount.Positive(in.AmountRaw)
	if err != nil {
		return nil, l.finish("allocate", 0, err, "source_payment_id", sourcePaymentID, "amount_raw", in.AmountRaw)
	}
	date, err := parseDate("date", in.DateRaw, l.now())
	if err != nil {
		return nil, l.finish("allocate", 0, err, "source_payment_id", sourcePaymentID)
	}
	destMovementID := strings.TrimSpace(in.DestinationMovementID)

	var result AllocationResult
	var moved int64
	err = l.store.WithTx(ctx, func(q storage.Queries) error {
		source, err := q.GetPayment(ctx, ownerID, sourcePaymentID)
		if err != nil {
			return err
		}
		sourceLine, err := q.GetDebtLine(ctx, ownerID, source.DebtLineID)
		if err != nil {
			return err
		}
		if !sourceLine.IsFullPayer {
			return validationf("payment %s is not from the movement's full payer", source.ID)
		}

		remaining, err := remainingOf(ctx, q, source)
		if err != nil {
			return err
		}
		if requested > remaining {
			return fmt.Errorf("%w: requested %d but payment %s only has %d left",
				ErrOverAllocation, requested, source.ID, remaining)
		}

		if destMovementID == "" {
			entry := &models.CreditEntry{
				OwnerID:   ownerID,
				PersonID:  sourceLine.PersonID,
				Amount:    remaining,
				Kind:      models.CreditKindCredit,
				Origin:    models.OriginBank,
				PaymentID: source.ID,
				Comment:   fmt.Sprintf("Banked remainder of payment %s", source.ID),
				Date:      date,
			}
			if err := q.CreateCreditEntry(ctx, entry); err != nil {
				return err
			}
			result.Banked = entry
			moved = remaining
			return nil
		}

		destLine, err := findDestination(ctx, q, ownerID, destMovementID, in.DestinationPersonID, sourceLine.PersonID)
		if err != nil {
			return err
		}
		if destLine.ID == sourceLine.ID {
			return validationf("payment %s cannot be redistributed to its own line", source.ID)
		}
		// Never trust the cached outstanding.
		if err := recompute(ctx, q, destLine); err != nil {
			return err
		}
		if destLine.Outstanding == 0 {
			return validationf("destination line %s is already settled", destLine.ID)
		}

		applied := min(requested, destLine.Outstanding)
		destPayment := &models.Payment{DebtLineID: destLine.ID, Amount: applied, Date: date}
		if err := q.CreatePayment(ctx, destPayment); err != nil {
			return err
		}
		if err := recompute(ctx, q, destLine); err != nil {
			return err
		}

		// Written last so it never points at a payment that was not stored.
		alloc := &models.IndirectAllocation{
			SourcePaymentID:       source.ID,
			DestinationMovementID: destLine.MovementID,
			DestinationPersonID:   destLine.PersonID,
			DestinationPaymentID:  destPayment.ID,
			AmountApplied:         applied,
			Date:                  date,
		}
		if err := q.CreateAllocation(ctx, alloc); err != nil {
			return err
		}

		result.Allocation = alloc
		result.DestinationLine = destLine
		result.Remaining = remaining - applied
		moved = applied
		return nil
	})
	if err != nil {
		return nil, l.finish("allocate", 0, err,
			"owner_id", ownerID,
			"source_payment_id", sourcePaymentID,
			"destination_movement_id", destMovementID,
			"requested", requested,
		)
	}

	slog.Info("Payment redistributed",
		"source_payment_id", sourcePaymentID,
		"destination_movement_id", destMovementID,
		"amount", moved,
		"banked", result.Banked != nil,
		"remaining", result.Remaining,
	)
	return &result, l.finish("allocate", moved, nil)
}

// Remaining returns what a source payment still has to redistribute.
func (l *Ledger) Remaining(ctx context.Context, ownerID, paymentID string) (int64, error) {
	var remaining int64
	err := l.store.WithTx(ctx, func(q storage.Queries) error {
		p, err := q.GetPayment(ctx, ownerID, paymentID)
		if err != nil {
			return err
		}
		remaining, err = remainingOf(ctx, q, p)
		return err
	})
	return remaining, err
}

// ListAllocations returns the allocations drawn from a payment.
func (l *Ledger) ListAllocations(ctx context.Context, ownerID, paymentID string) ([]models.IndirectAllocation, error) {
	var allocs []models.IndirectAllocation
	err := l.store.WithTx(ctx, func(q storage.Queries) error {
		if _, err := q.GetPayment(ctx, ownerID, paymentID); err != nil {
			return err
		}
		var err error
		allocs, err = q.ListAllocationsBySource(ctx, paymentID)
		return err
	})
	return allocs, err
}

// remainingOf is amount - allocated - banked for a source payment.
func remainingOf(ctx context.Context, q storage.Queries, source *models.Payment) (int64, error) {
	allocated, err := q.SumAllocations(ctx, source.ID)
	if err != nil {
		return 0, err
	}
	banked, err := q.SumCreditByPayment(ctx, source.ID, models.OriginBank)
	if err != nil {
		return 0, err
	}
	return source.Amount - allocated - banked, nil
}

func findDestination(ctx context.Context, q storage.Queries, ownerID, movementID, personID, payerID string) (*models.DebtLine, error) {
	if personID == "" {
		personID = payerID
	}
	line, err := q.FindDebtLine(ctx, ownerID, movementID, personID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: no line for person %s on movement %s", ErrDestinationNotFound, personID, movementID)
	}
	return line, err
}
