package models

import "time"

// CreditKind is the direction of a CreditEntry.
type CreditKind string

const (
	CreditKindCredit CreditKind = "credit"
	CreditKindDebit  CreditKind = "debit"
)

// CreditOrigin says why a CreditEntry was written.
type CreditOrigin string

const (
	// OriginDeposit is credit added by hand.
	OriginDeposit CreditOrigin = "deposit"
	// OriginBank is the remainder of a full payer's payment parked as credit.
	OriginBank CreditOrigin = "bank"
	// OriginUse is credit spent to fund a Payment.
	OriginUse CreditOrigin = "use"
	// OriginReversal undoes an earlier entry when its payment is deleted.
	OriginReversal CreditOrigin = "reversal"
)

// CreditEntry is one append-only row of a person's credit ledger.
// Amount is signed: positive for credit, negative for debit. Entries are
// never updated or deleted; corrections are new entries.
type CreditEntry struct {
	ID       string
	OwnerID  string
	PersonID string

	Amount int64
	Kind   CreditKind
	Origin CreditOrigin

	// PaymentID links the entry to the payment it funded, was banked
	// from, or reverses. Empty for deposits.
	PaymentID string

	Comment string
	Date    time.Time
}
