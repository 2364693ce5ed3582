package api

import "time"

// Monetary inputs are strings (fields ending in "_raw") that the server
// normalizes itself, so "$1,234.50" is accepted. Dates are "2006-01-02"
// or RFC 3339; an empty payment date means now.

// AuthService

type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
}

type RegisterResponse struct {
	User      User      `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User      User      `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	User User `json:"user"`
}

// LedgerService: people

type CreatePersonRequest struct {
	Name string `json:"name"`
}

type CreatePersonResponse struct {
	Person Person `json:"person"`
}

type ListPeopleRequest struct{}

type ListPeopleResponse struct {
	People []Person `json:"people"`
}

type DeletePersonRequest struct {
	PersonID string `json:"person_id"`
}

type DeletePersonResponse struct{}

// LedgerService: movements

type ShareInput struct {
	PersonID    string `json:"person_id"`
	AmountRaw   string `json:"amount_raw"`
	PaidRaw     string `json:"paid_raw,omitempty"`
	Status      string `json:"status,omitempty"`
	IsFullPayer bool   `json:"is_full_payer,omitempty"`
}

type CreateMovementRequest struct {
	Kind        string       `json:"kind"`
	Category    string       `json:"category"`
	Description string       `json:"description,omitempty"`
	AmountRaw   string       `json:"amount_raw"`
	DateRaw     string       `json:"date_raw"`
	Shares      []ShareInput `json:"shares,omitempty"`
}

type CreateMovementResponse struct {
	Movement Movement `json:"movement"`
}

type GetMovementRequest struct {
	MovementID string `json:"movement_id"`
}

type GetMovementResponse struct {
	Movement Movement `json:"movement"`

	// IncomingAllocations are redistributions that landed on this movement.
	IncomingAllocations []Allocation `json:"incoming_allocations,omitempty"`
}

type ListMovementsRequest struct {
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

type ListMovementsResponse struct {
	Movements []Movement `json:"movements"`
}

type DeleteMovementRequest struct {
	MovementID string `json:"movement_id"`
}

type DeleteMovementResponse struct{}

// LedgerService: payments and redistribution

type AddPaymentRequest struct {
	DebtLineID string `json:"debt_line_id"`
	AmountRaw  string `json:"amount_raw"`
	DateRaw    string `json:"date_raw,omitempty"`
	UseCredit  bool   `json:"use_credit,omitempty"`
}

type AddPaymentResponse struct {
	Payment       Payment  `json:"payment"`
	Line          DebtLine `json:"line"`
	CreditBalance int64    `json:"credit_balance,omitempty"`
}

type DeletePaymentRequest struct {
	PaymentID string `json:"payment_id"`
}

type DeletePaymentResponse struct{}

// AllocateRequest redistributes part of a full payer's payment. An empty
// destination movement banks everything the payment has left as credit.
type AllocateRequest struct {
	SourcePaymentID       string `json:"source_payment_id"`
	DestinationMovementID string `json:"destination_movement_id,omitempty"`
	DestinationPersonID   string `json:"destination_person_id,omitempty"`
	AmountRaw             string `json:"amount_raw"`
	DateRaw               string `json:"date_raw,omitempty"`
}

type AllocateResponse struct {
	Allocation      *Allocation  `json:"allocation,omitempty"`
	DestinationLine *DebtLine    `json:"destination_line,omitempty"`
	Banked          *CreditEntry `json:"banked,omitempty"`
	Remaining       int64        `json:"remaining"`
}

type GetRemainingRequest struct {
	PaymentID string `json:"payment_id"`
}

type GetRemainingResponse struct {
	Remaining   int64        `json:"remaining"`
	Allocations []Allocation `json:"allocations,omitempty"`
}

// LedgerService: credit

type AddCreditRequest struct {
	PersonID  string `json:"person_id"`
	AmountRaw string `json:"amount_raw"`
	Comment   string `json:"comment,omitempty"`
	DateRaw   string `json:"date_raw,omitempty"`
}

type AddCreditResponse struct {
	Entry   CreditEntry `json:"entry"`
	Balance int64       `json:"balance"`
}

type GetCreditHistoryRequest struct {
	PersonID string `json:"person_id"`
}

type GetCreditHistoryResponse struct {
	Person  Person        `json:"person"`
	Entries []CreditEntry `json:"entries"`
	Balance int64         `json:"balance"`
}

// ReportService

type ListSummariesRequest struct{}

type ListSummariesResponse struct {
	Summaries []PersonSummary `json:"summaries"`
}

type GetDashboardRequest struct{}

type GetDashboardResponse struct {
	Income     int64           `json:"income"`
	Expense    int64           `json:"expense"`
	Payments   int64           `json:"payments"`
	Balance    int64           `json:"balance"`
	Recent     []Movement      `json:"recent"`
	Categories []CategoryTotal `json:"categories"`
	Series     []SeriesPoint   `json:"series"`
	People     []PersonSummary `json:"people"`
	TotalDebt  int64           `json:"total_debt"`
}
