package ledger

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/mmynk/splitledger/internal/amount"
	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// ShareInput is one participant of a new movement.
type ShareInput struct {
	PersonID string

	// AmountRaw is the person's share. Entries with an empty share are
	// skipped: the person is not part of the movement.
	AmountRaw string

	// PaidRaw is what the person has already paid. It becomes an initial
	// payment dated with the movement.
	PaidRaw string

	// Status may be StatusPaid to mark the share as settled on creation.
	// Any other value is ignored; status is otherwise derived.
	Status models.DebtStatus

	IsFullPayer bool
}

// MovementInput is the validated-by-shape input for CreateMovement.
type MovementInput struct {
	Kind        string
	Category    string
	Description string
	AmountRaw   string
	DateRaw     string
	Shares      []ShareInput
}

// MovementDetail is a movement with its lines, their payments and the
// indirect allocations that landed on it.
type MovementDetail struct {
	Movement    models.Movement
	Allocations []models.IndirectAllocation
}

var kindAliases = map[string]models.MovementKind{
	"income":  models.KindIncome,
	"ingreso": models.KindIncome,
	"expense": models.KindExpense,
	"gasto":   models.KindExpense,
	"payment": models.KindPayment,
	"pago":    models.KindPayment,
}

func parseKind(raw string) (models.MovementKind, error) {
	kind, ok := kindAliases[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return "", validationf("kind %q must be income, expense or payment", raw)
	}
	return kind, nil
}

type parsedShare struct {
	line models.DebtLine
	paid int64
}

func parseShares(shares []ShareInput) ([]parsedShare, error) {
	var parsed []parsedShare
	seen := make(map[string]bool)
	fullPayers := 0

	for _, s := range shares {
		if strings.TrimSpace(s.AmountRaw) == "" {
			continue
		}
		if s.PersonID == "" {
			return nil, validationf("share is missing a person")
		}
		if seen[s.PersonID] {
			return nil, validationf("person %s appears twice", s.PersonID)
		}
		seen[s.PersonID] = true

		share, err := amount.Normalize(s.AmountRaw, 0)
		if err != nil {
			return nil, err
		}
		paid, err := amount.Normalize(s.PaidRaw, 0)
		if err != nil {
			return nil, err
		}
		if share < 0 || paid < 0 {
			return nil, validationf("share and paid for person %s must not be negative", s.PersonID)
		}
		if s.Status == models.StatusPaid && paid < share {
			paid = share
		}
		if s.IsFullPayer {
			fullPayers++
		}

		parsed = append(parsed, parsedShare{
			line: models.DebtLine{PersonID: s.PersonID, ShareAmount: share, IsFullPayer: s.IsFullPayer},
			paid: paid,
		})
	}

	if fullPayers > 1 {
		return nil, validationf("a movement can have at most one full payer, got %d", fullPayers)
	}
	return parsed, nil
}

// CreateMovement records a movement and one debt line per participant,
// including any initial payments, in one transaction.
func (l *Ledger) CreateMovement(ctx context.Context, ownerID string, in MovementInput) (*models.Movement, error) {
	movement, err := l.buildMovement(ownerID, in)
	if err != nil {
		return nil, l.finish("create_movement", 0, err, "owner_id", ownerID, "amount_raw", in.AmountRaw)
	}
	shares, err := parseShares(in.Shares)
	if err != nil {
		return nil, l.finish("create_movement", 0, err, "owner_id", ownerID)
	}

	err = l.store.WithTx(ctx, func(q storage.Queries) error {
		if err := q.CreateMovement(ctx, movement); err != nil {
			return err
		}

		for _, s := range shares {
			if _, err := q.GetPerson(ctx, ownerID, s.line.PersonID); err != nil {
				return err
			}

			line := s.line
			line.MovementID = movement.ID
			calculator.Settle(&line, 0)
			if err := q.CreateDebtLine(ctx, &line); err != nil {
				return err
			}

			if s.paid > 0 {
				initial := &models.Payment{DebtLineID: line.ID, Amount: s.paid, Date: movement.Date}
				if err := q.CreatePayment(ctx, initial); err != nil {
					return err
				}
			}
			if err := recompute(ctx, q, &line); err != nil {
				return err
			}
			movement.Lines = append(movement.Lines, line)
		}
		return nil
	})
	if err != nil {
		return nil, l.finish("create_movement", 0, err, "owner_id", ownerID, "amount", movement.Amount)
	}

	slog.Info("Movement created",
		"movement_id", movement.ID,
		"kind", movement.Kind,
		"amount", movement.Amount,
		"lines", len(movement.Lines),
	)
	return movement, l.finish("create_movement", movement.Amount, nil)
}

func (l *Ledger) buildMovement(ownerID string, in MovementInput) (*models.Movement, error) {
	kind, err := parseKind(in.Kind)
	if err != nil {
		return nil, err
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		return nil, validationf("category is required")
	}
	if strings.TrimSpace(in.AmountRaw) == "" {
		return nil, validationf("amount is required")
	}
	total, err := amount.Normalize(in.AmountRaw, 0)
	if err != nil {
		return nil, err
	}
	if total < 0 {
		return nil, validationf("amount must not be negative")
	}
	date, err := parseDate("date", in.DateRaw, time.Time{})
	if err != nil {
		return nil, err
	}

	return &models.Movement{
		OwnerID:     ownerID,
		Kind:        kind,
		Category:    category,
		Description: strings.TrimSpace(in.Description),
		Amount:      total,
		Date:        date,
	}, nil
}

// GetMovement returns a movement with its lines, payments and incoming allocations.
func (l *Ledger) GetMovement(ctx context.Context, ownerID, movementID string) (*MovementDetail, error) {
	var detail *MovementDetail
	err := l.store.WithTx(ctx, func(q storage.Queries) error {
		m, err := q.GetMovement(ctx, ownerID, movementID)
		if err != nil {
			return err
		}
		lines, err := q.ListDebtLinesByMovement(ctx, m.ID)
		if err != nil {
			return err
		}
		for i := range lines {
			payments, err := q.ListPaymentsByLine(ctx, lines[i].ID)
			if err != nil {
				return err
			}
			lines[i].Payments = payments
		}
		m.Lines = lines

		allocs, err := q.ListAllocationsByDestinationMovement(ctx, m.ID)
		if err != nil {
			return err
		}
		detail = &MovementDetail{Movement: *m, Allocations: allocs}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

// ListMovements returns the owner's movements newest first, without lines.
// Unparseable bounds are ignored.
func (l *Ledger) ListMovements(ctx context.Context, ownerID, fromRaw, toRaw string) ([]models.Movement, error) {
	var filter storage.MovementFilter
	if fromRaw != "" {
		if from, err := parseDate("from", fromRaw, time.Time{}); err == nil {
			filter.From = from
		} else {
			slog.Warn("Ignoring invalid from date", "from", fromRaw, "error", err)
		}
	}
	if toRaw != "" {
		if to, err := parseDate("to", toRaw, time.Time{}); err == nil {
			// A bare date includes the whole day.
			if to.Equal(to.Truncate(24 * time.Hour)) {
				to = to.Add(24*time.Hour - time.Second)
			}
			filter.To = to
		} else {
			slog.Warn("Ignoring invalid to date", "to", toRaw, "error", err)
		}
	}
	return l.store.ListMovements(ctx, ownerID, filter)
}

// DeleteMovement removes a movement and everything it owns, in dependency
// order: each payment goes through the payment deletion cascade (which
// reverses allocations and credit), then the lines, then the movement.
func (l *Ledger) DeleteMovement(ctx context.Context, ownerID, movementID string) error {
	err := l.store.WithTx(ctx, func(q storage.Queries) error {
		m, err := q.GetMovement(ctx, ownerID, movementID)
		if err != nil {
			return err
		}
		lines, err := q.ListDebtLinesByMovement(ctx, m.ID)
		if err != nil {
			return err
		}

		seen := make(map[string]bool)
		for _, line := range lines {
			// Re-read per line: cascades from earlier lines may already
			// have removed some of these payments.
			payments, err := q.ListPaymentsByLine(ctx, line.ID)
			if err != nil {
				return err
			}
			for i := range payments {
				if err := l.deletePayment(ctx, q, ownerID, &payments[i], seen); err != nil {
					return err
				}
			}
		}

		incoming, err := q.ListAllocationsByDestinationMovement(ctx, m.ID)
		if err != nil {
			return err
		}
		for _, a := range incoming {
			if err := q.DeleteAllocation(ctx, a.ID); err != nil {
				return err
			}
		}

		for _, line := range lines {
			if err := q.DeleteDebtLine(ctx, line.ID); err != nil {
				return err
			}
		}
		return q.DeleteMovement(ctx, ownerID, m.ID)
	})
	if err == nil {
		slog.Info("Movement deleted", "movement_id", movementID)
	}
	return l.finish("delete_movement", 0, err, "owner_id", ownerID, "movement_id", movementID)
}
