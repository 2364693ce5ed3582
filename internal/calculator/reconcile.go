package calculator

import "github.com/mmynk/splitledger/internal/models"

// Reconcile recomputes a debt line's derived fields from its full payment set.
// It is a pure function of payments: calling it twice yields the same line.
func Reconcile(line *models.DebtLine, payments []models.Payment) {
	var paid int64
	for _, p := range payments {
		paid += p.Amount
	}
	Settle(line, paid)
}

// Settle sets Paid to the given payment total and derives Outstanding and Status.
//
// Outstanding = max(share - paid, 0); the line is Paid exactly when nothing
// is outstanding.
func Settle(line *models.DebtLine, paid int64) {
	line.Paid = paid
	line.Outstanding = line.ShareAmount - paid
	if line.Outstanding < 0 {
		line.Outstanding = 0
	}
	if line.Outstanding == 0 {
		line.Status = models.StatusPaid
	} else {
		line.Status = models.StatusOwes
	}
}

// MovementOutstanding is what is still owed across all lines of m.
func MovementOutstanding(m models.Movement) int64 {
	var total int64
	for _, l := range m.Lines {
		total += l.Outstanding
	}
	return total
}
