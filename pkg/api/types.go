package api

import "time"

type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

type Person struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Payment struct {
	ID           string    `json:"id"`
	DebtLineID   string    `json:"debt_line_id"`
	Amount       int64     `json:"amount"`
	Date         time.Time `json:"date"`
	CreditFunded bool      `json:"credit_funded,omitempty"`
}

// DebtLine is one person's share of a movement. Status is "Owes" or "Paid".
type DebtLine struct {
	ID          string    `json:"id"`
	MovementID  string    `json:"movement_id"`
	PersonID    string    `json:"person_id"`
	ShareAmount int64     `json:"share_amount"`
	Paid        int64     `json:"paid"`
	Outstanding int64     `json:"outstanding"`
	Status      string    `json:"status"`
	IsFullPayer bool      `json:"is_full_payer,omitempty"`
	Payments    []Payment `json:"payments,omitempty"`
}

// Movement is an income, expense or payment. Outstanding is the sum of
// its lines' outstanding amounts.
type Movement struct {
	ID          string     `json:"id"`
	Kind        string     `json:"kind"`
	Category    string     `json:"category"`
	Description string     `json:"description,omitempty"`
	Amount      int64      `json:"amount"`
	Date        time.Time  `json:"date"`
	Outstanding int64      `json:"outstanding"`
	Lines       []DebtLine `json:"lines,omitempty"`
}

type Allocation struct {
	ID                    string    `json:"id"`
	SourcePaymentID       string    `json:"source_payment_id"`
	DestinationMovementID string    `json:"destination_movement_id"`
	DestinationPersonID   string    `json:"destination_person_id"`
	DestinationPaymentID  string    `json:"destination_payment_id"`
	AmountApplied         int64     `json:"amount_applied"`
	Date                  time.Time `json:"date"`
}

// CreditEntry is one row of a person's credit ledger. Amount is signed.
type CreditEntry struct {
	ID        string    `json:"id"`
	PersonID  string    `json:"person_id"`
	Amount    int64     `json:"amount"`
	Kind      string    `json:"kind"`
	Origin    string    `json:"origin"`
	PaymentID string    `json:"payment_id,omitempty"`
	Comment   string    `json:"comment,omitempty"`
	Date      time.Time `json:"date"`
}

type PersonSummary struct {
	PersonID     string `json:"person_id"`
	Name         string `json:"name"`
	OwedByOthers int64  `json:"owed_by_others"`
	Debe         int64  `json:"debe"`
	Pagado       int64  `json:"pagado"`
	Credit       int64  `json:"credit"`
	Balance      int64  `json:"balance"`
}

type CategoryTotal struct {
	Category string `json:"category"`
	Total    int64  `json:"total"`
}

type SeriesPoint struct {
	Date    time.Time `json:"date"`
	Income  int64     `json:"income"`
	Expense int64     `json:"expense"`
}
