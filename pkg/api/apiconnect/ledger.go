package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/pkg/api"
)

// LedgerServiceName is the fully-qualified name of the LedgerService.
const LedgerServiceName = "splitledger.v1.LedgerService"

// Procedure paths, as sent on the wire.
const (
	LedgerServiceCreatePersonProcedure     = "/splitledger.v1.LedgerService/CreatePerson"
	LedgerServiceListPeopleProcedure       = "/splitledger.v1.LedgerService/ListPeople"
	LedgerServiceDeletePersonProcedure     = "/splitledger.v1.LedgerService/DeletePerson"
	LedgerServiceCreateMovementProcedure   = "/splitledger.v1.LedgerService/CreateMovement"
	LedgerServiceGetMovementProcedure      = "/splitledger.v1.LedgerService/GetMovement"
	LedgerServiceListMovementsProcedure    = "/splitledger.v1.LedgerService/ListMovements"
	LedgerServiceDeleteMovementProcedure   = "/splitledger.v1.LedgerService/DeleteMovement"
	LedgerServiceAddPaymentProcedure       = "/splitledger.v1.LedgerService/AddPayment"
	LedgerServiceDeletePaymentProcedure    = "/splitledger.v1.LedgerService/DeletePayment"
	LedgerServiceAllocateProcedure         = "/splitledger.v1.LedgerService/Allocate"
	LedgerServiceGetRemainingProcedure     = "/splitledger.v1.LedgerService/GetRemaining"
	LedgerServiceAddCreditProcedure        = "/splitledger.v1.LedgerService/AddCredit"
	LedgerServiceGetCreditHistoryProcedure = "/splitledger.v1.LedgerService/GetCreditHistory"
)

// LedgerServiceHandler records people, movements, payments, redistributions and credit.
type LedgerServiceHandler interface {
	CreatePerson(context.Context, *connect.Request[api.CreatePersonRequest]) (*connect.Response[api.CreatePersonResponse], error)
	ListPeople(context.Context, *connect.Request[api.ListPeopleRequest]) (*connect.Response[api.ListPeopleResponse], error)
	DeletePerson(context.Context, *connect.Request[api.DeletePersonRequest]) (*connect.Response[api.DeletePersonResponse], error)
	CreateMovement(context.Context, *connect.Request[api.CreateMovementRequest]) (*connect.Response[api.CreateMovementResponse], error)
	GetMovement(context.Context, *connect.Request[api.GetMovementRequest]) (*connect.Response[api.GetMovementResponse], error)
	ListMovements(context.Context, *connect.Request[api.ListMovementsRequest]) (*connect.Response[api.ListMovementsResponse], error)
	DeleteMovement(context.Context, *connect.Request[api.DeleteMovementRequest]) (*connect.Response[api.DeleteMovementResponse], error)
	AddPayment(context.Context, *connect.Request[api.AddPaymentRequest]) (*connect.Response[api.AddPaymentResponse], error)
	DeletePayment(context.Context, *connect.Request[api.DeletePaymentRequest]) (*connect.Response[api.DeletePaymentResponse], error)
	Allocate(context.Context, *connect.Request[api.AllocateRequest]) (*connect.Response[api.AllocateResponse], error)
	GetRemaining(context.Context, *connect.Request[api.GetRemainingRequest]) (*connect.Response[api.GetRemainingResponse], error)
	AddCredit(context.Context, *connect.Request[api.AddCreditRequest]) (*connect.Response[api.AddCreditResponse], error)
	GetCreditHistory(context.Context, *connect.Request[api.GetCreditHistoryRequest]) (*connect.Response[api.GetCreditHistoryResponse], error)
}

// NewLedgerServiceHandler builds an HTTP handler for svc. It returns the path to
// mount it on and the handler. The JSON codec is always installed.
func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(api.Codec())}, opts...)
	createPersonHandler := connect.NewUnaryHandler(LedgerServiceCreatePersonProcedure, svc.CreatePerson, opts...)
	listPeopleHandler := connect.NewUnaryHandler(LedgerServiceListPeopleProcedure, svc.ListPeople, opts...)
	deletePersonHandler := connect.NewUnaryHandler(LedgerServiceDeletePersonProcedure, svc.DeletePerson, opts...)
	createMovementHandler := connect.NewUnaryHandler(LedgerServiceCreateMovementProcedure, svc.CreateMovement, opts...)
	getMovementHandler := connect.NewUnaryHandler(LedgerServiceGetMovementProcedure, svc.GetMovement, opts...)
	listMovementsHandler := connect.NewUnaryHandler(LedgerServiceListMovementsProcedure, svc.ListMovements, opts...)
	deleteMovementHandler := connect.NewUnaryHandler(LedgerServiceDeleteMovementProcedure, svc.DeleteMovement, opts...)
	addPaymentHandler := connect.NewUnaryHandler(LedgerServiceAddPaymentProcedure, svc.AddPayment, opts...)
	deletePaymentHandler := connect.NewUnaryHandler(LedgerServiceDeletePaymentProcedure, svc.DeletePayment, opts...)
	allocateHandler := connect.NewUnaryHandler(LedgerServiceAllocateProcedure, svc.Allocate, opts...)
	getRemainingHandler := connect.NewUnaryHandler(LedgerServiceGetRemainingProcedure, svc.GetRemaining, opts...)
	addCreditHandler := connect.NewUnaryHandler(LedgerServiceAddCreditProcedure, svc.AddCredit, opts...)
	getCreditHistoryHandler := connect.NewUnaryHandler(LedgerServiceGetCreditHistoryProcedure, svc.GetCreditHistory, opts...)
	return "/" + LedgerServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case LedgerServiceCreatePersonProcedure:
			createPersonHandler.ServeHTTP(w, r)
		case LedgerServiceListPeopleProcedure:
			listPeopleHandler.ServeHTTP(w, r)
		case LedgerServiceDeletePersonProcedure:
			deletePersonHandler.ServeHTTP(w, r)
		case LedgerServiceCreateMovementProcedure:
			createMovementHandler.ServeHTTP(w, r)
		case LedgerServiceGetMovementProcedure:
			getMovementHandler.ServeHTTP(w, r)
		case LedgerServiceListMovementsProcedure:
			listMovementsHandler.ServeHTTP(w, r)
		case LedgerServiceDeleteMovementProcedure:
			deleteMovementHandler.ServeHTTP(w, r)
		case LedgerServiceAddPaymentProcedure:
			addPaymentHandler.ServeHTTP(w, r)
		case LedgerServiceDeletePaymentProcedure:
			deletePaymentHandler.ServeHTTP(w, r)
		case LedgerServiceAllocateProcedure:
			allocateHandler.ServeHTTP(w, r)
		case LedgerServiceGetRemainingProcedure:
			getRemainingHandler.ServeHTTP(w, r)
		case LedgerServiceAddCreditProcedure:
			addCreditHandler.ServeHTTP(w, r)
		case LedgerServiceGetCreditHistoryProcedure:
			getCreditHistoryHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// LedgerServiceClient is a client for the LedgerService.
type LedgerServiceClient interface {
	CreatePerson(context.Context, *connect.Request[api.CreatePersonRequest]) (*connect.Response[api.CreatePersonResponse], error)
	ListPeople(context.Context, *connect.Request[api.ListPeopleRequest]) (*connect.Response[api.ListPeopleResponse], error)
	DeletePerson(context.Context, *connect.Request[api.DeletePersonRequest]) (*connect.Response[api.DeletePersonResponse], error)
	CreateMovement(context.Context, *connect.Request[api.CreateMovementRequest]) (*connect.Response[api.CreateMovementResponse], error)
	GetMovement(context.Context, *connect.Request[api.GetMovementRequest]) (*connect.Response[api.GetMovementResponse], error)
	ListMovements(context.Context, *connect.Request[api.ListMovementsRequest]) (*connect.Response[api.ListMovementsResponse], error)
	DeleteMovement(context.Context, *connect.Request[api.DeleteMovementRequest]) (*connect.Response[api.DeleteMovementResponse], error)
	AddPayment(context.Context, *connect.Request[api.AddPaymentRequest]) (*connect.Response[api.AddPaymentResponse], error)
	DeletePayment(context.Context, *connect.Request[api.DeletePaymentRequest]) (*connect.Response[api.DeletePaymentResponse], error)
	Allocate(context.Context, *connect.Request[api.AllocateRequest]) (*connect.Response[api.AllocateResponse], error)
	GetRemaining(context.Context, *connect.Request[api.GetRemainingRequest]) (*connect.Response[api.GetRemainingResponse], error)
	AddCredit(context.Context, *connect.Request[api.AddCreditRequest]) (*connect.Response[api.AddCreditResponse], error)
	GetCreditHistory(context.Context, *connect.Request[api.GetCreditHistoryRequest]) (*connect.Response[api.GetCreditHistoryResponse], error)
}

// NewLedgerServiceClient creates a client for the LedgerService at baseURL
// (for example, http://localhost:8080).
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) LedgerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(api.Codec())}, opts...)
	return &ledgerServiceClient{
		createPerson:     connect.NewClient[api.CreatePersonRequest, api.CreatePersonResponse](httpClient, baseURL+LedgerServiceCreatePersonProcedure, opts...),
		listPeople:       connect.NewClient[api.ListPeopleRequest, api.ListPeopleResponse](httpClient, baseURL+LedgerServiceListPeopleProcedure, opts...),
		deletePerson:     connect.NewClient[api.DeletePersonRequest, api.DeletePersonResponse](httpClient, baseURL+LedgerServiceDeletePersonProcedure, opts...),
		createMovement:   connect.NewClient[api.CreateMovementRequest, api.CreateMovementResponse](httpClient, baseURL+LedgerServiceCreateMovementProcedure, opts...),
		getMovement:      connect.NewClient[api.GetMovementRequest, api.GetMovementResponse](httpClient, baseURL+LedgerServiceGetMovementProcedure, opts...),
		listMovements:    connect.NewClient[api.ListMovementsRequest, api.ListMovementsResponse](httpClient, baseURL+LedgerServiceListMovementsProcedure, opts...),
		deleteMovement:   connect.NewClient[api.DeleteMovementRequest, api.DeleteMovementResponse](httpClient, baseURL+LedgerServiceDeleteMovementProcedure, opts...),
		addPayment:       connect.NewClient[api.AddPaymentRequest, api.AddPaymentResponse](httpClient, baseURL+LedgerServiceAddPaymentProcedure, opts...),
		deletePayment:    connect.NewClient[api.DeletePaymentRequest, api.DeletePaymentResponse](httpClient, baseURL+LedgerServiceDeletePaymentProcedure, opts...),
		allocate:         connect.NewClient[api.AllocateRequest, api.AllocateResponse](httpClient, baseURL+LedgerServiceAllocateProcedure, opts...),
		getRemaining:     connect.NewClient[api.GetRemainingRequest, api.GetRemainingResponse](httpClient, baseURL+LedgerServiceGetRemainingProcedure, opts...),
		addCredit:        connect.NewClient[api.AddCreditRequest, api.AddCreditResponse](httpClient, baseURL+LedgerServiceAddCreditProcedure, opts...),
		getCreditHistory: connect.NewClient[api.GetCreditHistoryRequest, api.GetCreditHistoryResponse](httpClient, baseURL+LedgerServiceGetCreditHistoryProcedure, opts...),
	}
}

type ledgerServiceClient struct {
	createPerson     *connect.Client[api.CreatePersonRequest, api.CreatePersonResponse]
	listPeople       *connect.Client[api.ListPeopleRequest, api.ListPeopleResponse]
	deletePerson     *connect.Client[api.DeletePersonRequest, api.DeletePersonResponse]
	createMovement   *connect.Client[api.CreateMovementRequest, api.CreateMovementResponse]
	getMovement      *connect.Client[api.GetMovementRequest, api.GetMovementResponse]
	listMovements    *connect.Client[api.ListMovementsRequest, api.ListMovementsResponse]
	deleteMovement   *connect.Client[api.DeleteMovementRequest, api.DeleteMovementResponse]
	addPayment       *connect.Client[api.AddPaymentRequest, api.AddPaymentResponse]
	deletePayment    *connect.Client[api.DeletePaymentRequest, api.DeletePaymentResponse]
	allocate         *connect.Client[api.AllocateRequest, api.AllocateResponse]
	getRemaining     *connect.Client[api.GetRemainingRequest, api.GetRemainingResponse]
	addCredit        *connect.Client[api.AddCreditRequest, api.AddCreditResponse]
	getCreditHistory *connect.Client[api.GetCreditHistoryRequest, api.GetCreditHistoryResponse]
}

func (c *ledgerServiceClient) CreatePerson(ctx context.Context, req *connect.Request[api.CreatePersonRequest]) (*connect.Response[api.CreatePersonResponse], error) {
	return c.createPerson.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ListPeople(ctx context.Context, req *connect.Request[api.ListPeopleRequest]) (*connect.Response[api.ListPeopleResponse], error) {
	return c.listPeople.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) DeletePerson(ctx context.Context, req *connect.Request[api.DeletePersonRequest]) (*connect.Response[api.DeletePersonResponse], error) {
	return c.deletePerson.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) CreateMovement(ctx context.Context, req *connect.Request[api.CreateMovementRequest]) (*connect.Response[api.CreateMovementResponse], error) {
	return c.createMovement.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GetMovement(ctx context.Context, req *connect.Request[api.GetMovementRequest]) (*connect.Response[api.GetMovementResponse], error) {
	return c.getMovement.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ListMovements(ctx context.Context, req *connect.Request[api.ListMovementsRequest]) (*connect.Response[api.ListMovementsResponse], error) {
	return c.listMovements.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) DeleteMovement(ctx context.Context, req *connect.Request[api.DeleteMovementRequest]) (*connect.Response[api.DeleteMovementResponse], error) {
	return c.deleteMovement.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) AddPayment(ctx context.Context, req *connect.Request[api.AddPaymentRequest]) (*connect.Response[api.AddPaymentResponse], error) {
	return c.addPayment.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) DeletePayment(ctx context.Context, req *connect.Request[api.DeletePaymentRequest]) (*connect.Response[api.DeletePaymentResponse], error) {
	return c.deletePayment.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) Allocate(ctx context.Context, req *connect.Request[api.AllocateRequest]) (*connect.Response[api.AllocateResponse], error) {
	return c.allocate.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GetRemaining(ctx context.Context, req *connect.Request[api.GetRemainingRequest]) (*connect.Response[api.GetRemainingResponse], error) {
	return c.getRemaining.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) AddCredit(ctx context.Context, req *connect.Request[api.AddCreditRequest]) (*connect.Response[api.AddCreditResponse], error) {
	return c.addCredit.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GetCreditHistory(ctx context.Context, req *connect.Request[api.GetCreditHistoryRequest]) (*connect.Response[api.GetCreditHistoryResponse], error) {
	return c.getCreditHistory.CallUnary(ctx, req)
}
