package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/internal/middleware"
)

var (
	errAuthRequired = errors.New("authentication required")
	errConflict     = errors.New("conflict: the ledger changed concurrently, retry")
	errInternal     = errors.New("internal error")
)

// toConnectError maps a ledger error to a connect error. Business errors
// keep their message; storage and unexpected failures are logged in full
// and reach the client as a generic message.
func toConnectError(op string, err error) error {
	switch {
	case errors.Is(err, ledger.ErrInvalidAmount), errors.Is(err, ledger.ErrValidation):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, ledger.ErrNotFound), errors.Is(err, ledger.ErrDestinationNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, ledger.ErrOverAllocation), errors.Is(err, ledger.ErrInsufficientCredit):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, ledger.ErrIntegrityViolation):
		slog.Warn(op+" hit a constraint", "error", err)
		return connect.NewError(connect.CodeAborted, errConflict)
	default:
		slog.Error(op+" failed", "error", err)
		return connect.NewError(connect.CodeInternal, errInternal)
	}
}

// ownerOf returns the authenticated owner set by middleware.RequireAuth.
func ownerOf(ctx context.Context) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, errAuthRequired)
	}
	return userID, nil
}
