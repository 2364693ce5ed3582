package ledger

import (
	"errors"
	"fmt"

	"github.com/mmynk/splitledger/internal/amount"
	"github.com/mmynk/splitledger/internal/storage"
)

// Error taxonomy. Every failure of a ledger operation wraps exactly one of
// these; callers branch with errors.Is.
var (
	// ErrInvalidAmount: monetary input is not a number or out of range.
	ErrInvalidAmount = amount.ErrInvalidAmount

	// ErrValidation: a required field is missing or a business rule on the
	// input is broken.
	ErrValidation = errors.New("validation error")

	// ErrNotFound: the entity does not exist or is not owned by the caller.
	ErrNotFound = storage.ErrNotFound

	// ErrOverAllocation: a redistribution asks for more than the source
	// payment has left.
	ErrOverAllocation = errors.New("over allocation")

	// ErrDestinationNotFound: no debt line matches the redistribution target.
	ErrDestinationNotFound = errors.New("destination not found")

	// ErrInsufficientCredit: credit use exceeds the person's balance.
	ErrInsufficientCredit = errors.New("insufficient credit")

	// ErrIntegrityViolation: a storage constraint failed, usually a
	// concurrent delete.
	ErrIntegrityViolation = storage.ErrIntegrityViolation
)

func validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// IsBusinessError reports whether err is an expected rule violation
// rather than an internal failure.
func IsBusinessError(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrOverAllocation) ||
		errors.Is(err, ErrDestinationNotFound) ||
		errors.Is(err, ErrInsufficientCredit)
}
