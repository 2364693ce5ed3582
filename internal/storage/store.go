// Package storage provides abstractions for persistent ledger storage.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/mmynk/splitledger/internal/models"
)

var (
	// ErrNotFound is returned when a row does not exist or belongs to
	// another owner. The two cases are indistinguishable on purpose.
	ErrNotFound = errors.New("not found")

	// ErrIntegrityViolation is returned for constraint failures and for
	// writes that matched no row because of a concurrent delete.
	ErrIntegrityViolation = errors.New("integrity violation")
)

// MovementFilter narrows ListMovements. Zero times are open bounds.
type MovementFilter struct {
	From time.Time
	To   time.Time
}

// Queries is every read and write the ledger needs. It is implemented
// both on the plain connection and inside a transaction.
//
// Lookups that take an ownerID return ErrNotFound for rows owned by a
// different user.
type Queries interface {
	// Users
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// People
	CreatePerson(ctx context.Context, person *models.Person) error
	GetPerson(ctx context.Context, ownerID, personID string) (*models.Person, error)
	ListPeople(ctx context.Context, ownerID string) ([]models.Person, error)
	DeletePerson(ctx context.Context, ownerID, personID string) error
	CountPersonReferences(ctx context.Context, personID string) (int64, error)

	// Movements
	CreateMovement(ctx context.Context, movement *models.Movement) error
	GetMovement(ctx context.Context, ownerID, movementID string) (*models.Movement, error)
	ListMovements(ctx context.Context, ownerID string, filter MovementFilter) ([]models.Movement, error)
	DeleteMovement(ctx context.Context, ownerID, movementID string) error

	// Debt lines
	CreateDebtLine(ctx context.Context, line *models.DebtLine) error
	GetDebtLine(ctx context.Context, ownerID, lineID string) (*models.DebtLine, error)
	FindDebtLine(ctx context.Context, ownerID, movementID, personID string) (*models.DebtLine, error)
	ListDebtLinesByMovement(ctx context.Context, movementID string) ([]models.DebtLine, error)
	ListDebtLines(ctx context.Context, ownerID string) ([]models.DebtLine, error)
	UpdateDebtLine(ctx context.Context, line *models.DebtLine) error
	DeleteDebtLine(ctx context.Context, lineID string) error

	// Payments
	CreatePayment(ctx context.Context, payment *models.Payment) error
	GetPayment(ctx context.Context, ownerID, paymentID string) (*models.Payment, error)
	ListPaymentsByLine(ctx context.Context, lineID string) ([]models.Payment, error)
	SumPayments(ctx context.Context, lineID string) (int64, error)
	DeletePayment(ctx context.Context, paymentID string) error

	// Indirect allocations
	CreateAllocation(ctx context.Context, alloc *models.IndirectAllocation) error
	ListAllocationsBySource(ctx context.Context, sourcePaymentID string) ([]models.IndirectAllocation, error)
	ListAllocationsByDestinationPayment(ctx context.Context, paymentID string) ([]models.IndirectAllocation, error)
	ListAllocationsByDestinationMovement(ctx context.Context, movementID string) ([]models.IndirectAllocation, error)
	SumAllocations(ctx context.Context, sourcePaymentID string) (int64, error)
	DeleteAllocation(ctx context.Context, allocationID string) error

	// Credit ledger (append-only: there is no update or delete)
	CreateCreditEntry(ctx context.Context, entry *models.CreditEntry) error
	ListCreditEntries(ctx context.Context, ownerID, personID string) ([]models.CreditEntry, error)
	CreditBalance(ctx context.Context, ownerID, personID string) (int64, error)
	CreditBalances(ctx context.Context, ownerID string) (map[string]int64, error)
	SumCreditByPayment(ctx context.Context, paymentID string, origin models.CreditOrigin) (int64, error)
}

// Store is a Queries bound to a connection that can also open transactions.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL)
// without changing the ledger.
type Store interface {
	Queries

	// WithTx runs fn inside one transaction. The transaction commits when
	// fn returns nil and rolls back on any error or panic.
	WithTx(ctx context.Context, fn func(q Queries) error) error

	// Close releases any resources held by the store.
	Close() error
}
