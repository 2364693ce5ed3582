package models

import "time"

// MovementKind classifies a Movement.
type MovementKind string

const (
	KindIncome  MovementKind = "income"
	KindExpense MovementKind = "expense"
	KindPayment MovementKind = "payment"
)

// Valid reports whether k is one of the known kinds.
func (k MovementKind) Valid() bool {
	switch k {
	case KindIncome, KindExpense, KindPayment:
		return true
	}
	return false
}

// DebtStatus is the settlement state of a DebtLine.
type DebtStatus string

const (
	StatusOwes DebtStatus = "Owes"
	StatusPaid DebtStatus = "Paid"
)

// Movement is a single financial event with a total amount.
// It owns its DebtLines; deleting a Movement deletes them.
type Movement struct {
	// ID is the unique identifier for the movement (UUID format).
	ID string

	// OwnerID is the user who recorded the movement.
	OwnerID string

	Kind        MovementKind
	Category    string
	Description string

	// Amount is the total in whole currency units.
	Amount int64

	// Date is the day the movement happened (UTC midnight).
	Date time.Time

	// Lines are the per-person shares. Populated by detail reads only.
	Lines []DebtLine

	// CreatedAt is the Unix timestamp when the movement was recorded.
	CreatedAt int64
}

// DebtLine is one person's share of a Movement.
//
// Invariants, restored by calculator.Reconcile after every change to the
// line's payments:
//
//	Outstanding == max(ShareAmount - Paid, 0)
//	Status == StatusPaid  <=>  Outstanding == 0
//	Paid == sum of the line's Payments
type DebtLine struct {
	ID         string
	MovementID string
	PersonID   string

	// ShareAmount is what this person owes for the movement.
	ShareAmount int64

	Paid        int64
	Outstanding int64
	Status      DebtStatus

	// IsFullPayer marks the person who fronted the whole movement and is
	// owed reimbursement by the other participants.
	IsFullPayer bool

	// Payments are populated by detail reads only.
	Payments []Payment
}
