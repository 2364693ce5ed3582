package models

import "time"

// Payment (abono) is a partial or full payment against a DebtLine.
type Payment struct {
	ID         string
	DebtLineID string

	// Amount is always greater than zero.
	Amount int64

	Date time.Time

	// CreditFunded is set when the payment was drawn from the person's
	// credit balance. A debit CreditEntry references it.
	CreditFunded bool

	CreatedAt int64
}

// IndirectAllocation records that part of a full payer's Payment was
// redirected to settle another DebtLine.
//
// For any source payment the sum of AmountApplied over its allocations,
// plus any credit banked from it, never exceeds the payment's Amount.
type IndirectAllocation struct {
	ID              string
	SourcePaymentID string

	DestinationMovementID string
	DestinationPersonID   string

	// DestinationPaymentID is the Payment the allocation created on the
	// destination line. Reversing the allocation deletes that payment.
	DestinationPaymentID string

	AmountApplied int64
	Date          time.Time
}
