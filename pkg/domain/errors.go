// Package domain holds the error taxonomy shared by every component of the
// ledger. Validation errors are detected before any mutation and surfaced
// directly; persistence failures are wrapped in ErrStoreUnavailable after the
// in-progress unit has been rolled back.
package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAmount is returned when a transaction or transfer amount is not positive.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrAccountNotFound is returned when an account does not exist or does not belong to the user.
	ErrAccountNotFound = errors.New("account not found")

	// ErrInsufficientBalance is returned when an expense or transfer exceeds the account balance.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrInsufficientCredit is returned when an expense exceeds the available credit.
	ErrInsufficientCredit = errors.New("insufficient credit")

	// ErrSameAccount is returned when a transfer names the same source and destination account.
	ErrSameAccount = errors.New("cannot transfer to the same account")

	// ErrSourceIsCredit is returned when a transfer source is a credit account.
	ErrSourceIsCredit = errors.New("cannot transfer from a credit account")

	// ErrInvalidAccountKind is returned when an account kind is outside the closed enum.
	ErrInvalidAccountKind = errors.New("invalid account kind")

	// ErrInvalidTransactionKind is returned when a transaction kind is neither income nor expense.
	ErrInvalidTransactionKind = errors.New("invalid transaction kind")

	// ErrBudgetAlreadyExists is returned when a budget for the same
	// (user, category, month, year) is already configured.
	ErrBudgetAlreadyExists = errors.New("budget already exists for this category and period")

	// ErrUserNotFound is returned when a user cannot be found.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials is returned when login credentials do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailAlreadyInUse is returned when registering with a taken email address.
	ErrEmailAlreadyInUse = errors.New("email already in use")

	// ErrStoreUnavailable wraps any persistence failure. The failed unit of
	// work has been fully rolled back by the time this error is observed.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// expected lists the errors callers are meant to branch on. Anything else
// leaking out of a unit of work is a persistence failure.
var expected = []error{
	ErrInvalidAmount,
	ErrAccountNotFound,
	ErrInsufficientBalance,
	ErrInsufficientCredit,
	ErrSameAccount,
	ErrSourceIsCredit,
	ErrInvalidAccountKind,
	ErrInvalidTransactionKind,
	ErrBudgetAlreadyExists,
	ErrUserNotFound,
	ErrInvalidCredentials,
	ErrEmailAlreadyInUse,
}

// IsExpected reports whether err belongs to the domain taxonomy above.
func IsExpected(err error) bool {
	for _, e := range expected {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

// WrapStore passes domain errors through untouched and wraps everything else
// in ErrStoreUnavailable, preserving the cause for logs.
func WrapStore(err error) error {
	if err == nil || IsExpected(err) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
