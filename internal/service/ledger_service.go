package service

import (
	"context"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/pkg/api"
)

// LedgerService implements apiconnect.LedgerServiceHandler on top of a
// ledger.Ledger. Every call is scoped to the authenticated owner.
type LedgerService struct {
	ledger *ledger.Ledger
}

// NewLedgerService creates a LedgerService.
func NewLedgerService(l *ledger.Ledger) *LedgerService {
	return &LedgerService{ledger: l}
}

func (s *LedgerService) CreatePerson(ctx context.Context, req *connect.Request[api.CreatePersonRequest]) (*connect.Response[api.CreatePersonResponse], error) {
	ownerID, err := ownerOf(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("CreatePerson request received", "owner_id", ownerID)

	person, err := s.ledger.CreatePerson(ctx, ownerID, req.Msg.Name)
	if err != nil {
		return nil, toConnectError("CreatePerson", err)
	}
	return connect.NewResponse(&api.CreatePersonResponse{Person: toAPIPerson(*person)}), nil
}

func (s *LedgerService) ListPeople(ctx context.Context, req *connect.Request[api.ListPeopleRequest]) (*connect.Response[api.ListPeopleResponse], error) {
	ownerID, err := ownerOf(ctx)
	if err != nil {
		return nil, err
	}

	people, err := s.ledger.ListPeople(ctx, ownerID)
	if err != nil {
		return nil, toConnectError("ListPeople", err)
	}
	resp := &api.ListPeopleResponse{People: make([]api.Person, len(people))}
	for i, p := range people {
		resp.People[i] = toAPIPerson(p)
	}
	return connect.NewResponse(resp), nil
}

func (s *LedgerService) DeletePerson(ctx context.Context, req *connect.Request[api.DeletePersonRequest]) (*connect.Response[api.DeletePersonResponse], error) {
	ownerID, err := ownerOf(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("DeletePerson request received", "owner_id", ownerID, "person_id", req.Msg.PersonID)

	if err := s.ledger.DeletePerson(ctx, ownerID, req.Msg.PersonID); err != nil {
		return nil, toConnectError("DeletePerson", err)
	}
	return connect.NewResponse(&api.DeletePersonResponse{}), nil
}

// parseStatus accepts "paid" in any case; everything else leaves the
// status to be derived.
func parseStatus(raw string) models.DebtStatus {
	if strings.EqualFold(strings.TrimSpace(raw), string(models.StatusPaid)) {
		return models.StatusPaid
	}
	return models.StatusOwes
}

// CreateMovement records a movement with one debt line per share.
func (s *LedgerService) CreateMovement(ctx context.Context, req *connect.Request[api.CreateMovementRequest]) (*connect.Response[api.CreateMovementResponse], error) {
	ownerID, err := ownerOf(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("CreateMovement request received",
		"owner_id", ownerID,
		"kind", req.Msg.Kind,
		"amount_raw", req.Msg.AmountRaw,
		"shares", len(req.Msg.Shares),
	)

	in := ledger.MovementInput{
		Kind:        req.Msg.Kind,
		Category:    req.Msg.Category,
		Description: req.Msg.Description,
		AmountRaw:   req.Msg.AmountRaw,
		DateRaw:     req.Msg.DateRaw,
	}
	for _, sh := range req.Msg.Shares {
		in.Shares = append(in.Shares, ledger.ShareInput{
			PersonID:    sh.PersonID,
			AmountRaw:   sh.AmountRaw,
			PaidRaw:     sh.PaidRaw,
			Status:      parseStatus(sh.Status),
			IsFullPayer: sh.IsFullPayer,
		})
	}

	movement, err := s.ledger.CreateMovement(ctx, ownerID, in)
	if err != nil {
		return nil, toConnectError("CreateMovement", err)
	}
	return connect.NewResponse(&api.CreateMovementResponse{Movement: toAPIMovement(*movement)}), nil
}

func (s *LedgerService) GetMovement(ctx context.Context, req *connect.Request[api.GetMovementRequest]) (*connect.Response[api.GetMovementResponse], error) {
	ownerID, err := ownerOf(ctx)
	if err != nil {
		return nil, err
	}

	detail, err := s.ledger.GetMovement(ctx, ownerID, req.Msg.MovementID)
	if err != nil {
		return nil, toConnectError("GetMovement", err)
	}
	return connect.NewResponse(&api.GetMovementResponse{
		Movement:            toAPIMovement(detail.Movement),
		IncomingAllocations: toAPIAllocations(detail.Allocations),
	}), nil
}

// ListMovements returns movements newest first. Lines are not included.
func (s *LedgerService) ListMovements(ctx context.Context, req *connect.Request[api.ListMovementsRequest]) (*connect.Response[api.ListMovementsResponse], error) {
	ownerID, err := ownerOf(ctx)
	if err != nil {
		return nil, err
	}

	movements, err := s.ledger.ListMovements(ctx, ownerID, req.Msg.From, req.Msg.To)
	if err != nil {
		return nil, toConnectError("ListMovements", err)
	}
	resp := &api.ListMovementsResponse{Movements: make([]api.Movement, len(movements))}
	for i, m := range movements {
		resp.Movements[i] = toAPIMovement(m)
	}
	return connect.NewResponse(resp), nil
}

// DeleteMovement removes a movement and reverses everything hanging off it.
func (s *LedgerService) DeleteMovement(ctx context.Context, req *connect.Request[api.DeleteMovementRequest]) (*connect.Response[api.DeleteMovementResponse], error) {
	ownerID, err := ownerOf(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("DeleteMovement request received", "owner_id", ownerID, "movement_id", req.Msg.MovementID)

	if err := s.ledger.DeleteMovement(ctx, ownerID, req.Msg.MovementID); err != nil {
		return nil, toConnectError("DeleteMovement", err)
	}
	return connect.NewResponse(&api.DeleteMovementResponse{}), nil
}

func (s *LedgerService) AddPayment(ctx context.Context, req *connect.Request[api.AddPaymentRequest]) (*connect.Response[api.AddPaymentResponse], error) {
	ownerID, err := ownerOf(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("AddPayment request received",
		"owner_id", ownerID,
		"debt_line_id", req.Msg.DebtLineID,
		"amount_raw", req.Msg.AmountRaw,
		"use_credit", req.Msg.UseCredit,
	)

	res, err := s.ledger.AddPayment(ctx, ownerID, req.Msg.DebtLineID, ledger.PaymentInput{
		AmountRaw: req.Msg.AmountRaw,
		DateRaw:   req.Msg.DateRaw,
		UseCredit: req.Msg.UseCredit,
	})
	if err != nil {
		return nil, toConnectError("AddPayment", err)
	}
	return connect.NewResponse(&api.AddPaymentResponse{
		Payment:       toAPIPayment(res.Payment),
		Line:          toAPILine(res.Line),
		CreditBalance: res.CreditBalance,
	}), nil
}

func (s *LedgerService) DeletePayment(ctx context.Context, req *connect.Request[api.DeletePaymentRequest]) (*connect.Response[api.DeletePaymentResponse], error) {
	ownerID, err := ownerOf(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("DeletePayment request received", "owner_id", ownerID, "payment_id", req.Msg.PaymentID)

	if err := s.ledger.DeletePayment(ctx, ownerID, req.Msg.PaymentID); err != nil {
		return nil, toConnectError("DeletePayment", err)
	}
	return connect.NewResponse(&api.DeletePaymentResponse{}), nil
}

// Allocate redistributes part of a full payer's payment, or banks the rest.
func (s *LedgerService) Allocate(ctx context.Context, req *connect.Request[api.AllocateRequest]) (*connect.Response[api.AllocateResponse], error) {
	ownerID, err := ownerOf(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("Allocate request received",
		"owner_id", ownerID,
		"source_payment_id", req.Msg.SourcePaymentID,
		"destination_movement_id", req.Msg.DestinationMovementID,
		"destination_person_id", req.Msg.DestinationPersonID,
		"amount_raw", req.Msg.AmountRaw,
	)

	res, err := s.ledger.Allocate(ctx, ownerID, req.Msg.SourcePaymentID, ledger.AllocationInput{
		DestinationMovementID: req.Msg.DestinationMovementID,
		DestinationPersonID:   req.Msg.DestinationPersonID,
		AmountRaw:             req.Msg.AmountRaw,
		DateRaw:               req.Msg.DateRaw,
	})
	if err != nil {
		return nil, toConnectError("Allocate", err)
	}

	resp := &api.AllocateResponse{Remaining: res.Remaining}
	if res.Allocation != nil {
		a := toAPIAllocation(*res.Allocation)
		resp.Allocation = &a
	}
	if res.DestinationLine != nil {
		l := toAPILine(*res.DestinationLine)
		resp.DestinationLine = &l
	}
	if res.Banked != nil {
		e := toAPICreditEntry(*res.Banked)
		resp.Banked = &e
	}
	return connect.NewResponse(resp), nil
}

// GetRemaining reports what a source payment can still redistribute.
func (s *LedgerService) GetRemaining(ctx context.Context, req *connect.Request[api.GetRemainingRequest]) (*connect.Response[api.GetRemainingResponse], error) {
	ownerID, err := ownerOf(ctx)
	if err != nil {
		return nil, err
	}

	remaining, err := s.ledger.Remaining(ctx, ownerID, req.Msg.PaymentID)
	if err != nil {
		return nil, toConnectError("GetRemaining", err)
	}
	allocs, err := s.ledger.ListAllocations(ctx, ownerID, req.Msg.PaymentID)
	if err != nil {
		return nil, toConnectError("GetRemaining", err)
	}
	return connect.NewResponse(&api.GetRemainingResponse{
		Remaining:   remaining,
		Allocations: toAPIAllocations(allocs),
	}), nil
}

func (s *LedgerService) AddCredit(ctx context.Context, req *connect.Request[api.AddCreditRequest]) (*connect.Response[api.AddCreditResponse], error) {
	ownerID, err := ownerOf(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("AddCredit request received",
		"owner_id", ownerID,
		"person_id", req.Msg.PersonID,
		"amount_raw", req.Msg.AmountRaw,
	)

	entry, err := s.ledger.AddCredit(ctx, ownerID, req.Msg.PersonID, ledger.CreditInput{
		AmountRaw: req.Msg.AmountRaw,
		Comment:   req.Msg.Comment,
		DateRaw:   req.Msg.DateRaw,
	})
	if err != nil {
		return nil, toConnectError("AddCredit", err)
	}
	balance, err := s.ledger.CreditBalance(ctx, ownerID, req.Msg.PersonID)
	if err != nil {
		return nil, toConnectError("AddCredit", err)
	}
	return connect.NewResponse(&api.AddCreditResponse{
		Entry:   toAPICreditEntry(*entry),
		Balance: balance,
	}), nil
}

func (s *LedgerService) GetCreditHistory(ctx context.Context, req *connect.Request[api.GetCreditHistoryRequest]) (*connect.Response[api.GetCreditHistoryResponse], error) {
	ownerID, err := ownerOf(ctx)
	if err != nil {
		return nil, err
	}

	history, err := s.ledger.CreditHistory(ctx, ownerID, req.Msg.PersonID)
	if err != nil {
		return nil, toConnectError("GetCreditHistory", err)
	}
	resp := &api.GetCreditHistoryResponse{
		Person:  toAPIPerson(history.Person),
		Entries: make([]api.CreditEntry, len(history.Entries)),
		Balance: history.Balance,
	}
	for i, e := range history.Entries {
		resp.Entries[i] = toAPICreditEntry(e)
	}
	return connect.NewResponse(resp), nil
}
