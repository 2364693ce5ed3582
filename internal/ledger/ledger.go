// Package ledger is the reconciliation core: it creates movements with
// their debt lines, records and deletes payments, redistributes a full
// payer's payments to other debt lines and keeps the credit ledger.
//
// Every mutating operation runs in a single storage transaction. Either
// all of its writes commit or none do.
package ledger

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/metrics"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// Ledger runs ledger operations against a Store.
type Ledger struct {
	store storage.Store
	now   func() time.Time
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock overrides the time source used for default payment dates.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// New creates a Ledger backed by store.
func New(store storage.Store, opts ...Option) *Ledger {
	l := &Ledger{store: store, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// finish logs and counts the outcome of an operation and passes err through.
func (l *Ledger) finish(op string, amount int64, err error, attrs ...any) error {
	metrics.ObserveOperation(op, amount, err)
	if err == nil {
		return nil
	}
	attrs = append(attrs, "operation", op, "error", err)
	if IsBusinessError(err) {
		slog.Warn("Ledger operation rejected", attrs...)
	} else {
		slog.Error("Ledger operation failed", attrs...)
	}
	return err
}

// recompute refreshes a line's paid/outstanding/status from its payments
// and writes them back. The cached values on line are ignored.
func recompute(ctx context.Context, q storage.Queries, line *models.DebtLine) error {
	payments, err := q.ListPaymentsByLine(ctx, line.ID)
	if err != nil {
		return err
	}
	calculator.Reconcile(line, payments)
	line.Payments = payments
	return q.UpdateDebtLine(ctx, line)
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// parseDate accepts a date or date-time. Empty input yields def; a zero
// def makes the field required.
func parseDate(field, raw string, def time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if def.IsZero() {
			return time.Time{}, validationf("%s is required", field)
		}
		return def.UTC(), nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, validationf("%s %q is not a valid date", field, raw)
}
