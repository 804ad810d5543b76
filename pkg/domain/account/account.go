// Package account contains the account aggregate and the ledger rules that
// keep balances and credit limits consistent with recorded transactions.
package account

import (
	"time"

	"github.com/amirasaad/finance/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind is the closed set of account kinds.
type Kind string

const (
	KindDebit      Kind = "debit"
	KindSavings    Kind = "savings"
	KindInvestment Kind = "investment"
	KindCredit     Kind = "credit"
)

// Valid reports whether k is one of the four supported kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindDebit, KindSavings, KindInvestment, KindCredit:
		return true
	}
	return false
}

// IsCredit reports whether the kind follows the credit-limit ledger rules.
func (k Kind) IsCredit() bool { return k == KindCredit }

// Account is a user's financial account.
//
// Invariants:
//   - Non-credit kinds carry Balance >= 0; CreditLimit/CreditAvailable stay zero.
//   - Credit kind carries 0 <= CreditAvailable <= CreditLimit; Balance stays zero.
//   - State changes go through ApplyExpense/ApplyIncome only.
type Account struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Kind            Kind
	Name            string
	Balance         decimal.Decimal
	CreditLimit     decimal.Decimal
	CreditAvailable decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Builder provides a fluent API for constructing Account instances, so that
// only accounts satisfying the kind-specific invariants can be built.
type Builder struct {
	id          uuid.UUID
	userID      uuid.UUID
	kind        Kind
	name        string
	balance     decimal.Decimal
	creditLimit decimal.Decimal
	createdAt   time.Time
}

// New creates a Builder with a fresh ID and debit kind as default.
func New() *Builder {
	return &Builder{
		id:        uuid.New(),
		kind:      KindDebit,
		createdAt: time.Now(),
	}
}

// WithID sets the ID for the account being built.
func (b *Builder) WithID(id uuid.UUID) *Builder {
	b.id = id
	return b
}

// WithUserID sets the owning user. Mandatory.
func (b *Builder) WithUserID(userID uuid.UUID) *Builder {
	b.userID = userID
	return b
}

// WithKind sets the account kind.
func (b *Builder) WithKind(kind Kind) *Builder {
	b.kind = kind
	return b
}

// WithName sets the display name.
func (b *Builder) WithName(name string) *Builder {
	b.name = name
	return b
}

// WithBalance sets the initial balance. Only valid for non-credit kinds.
func (b *Builder) WithBalance(balance decimal.Decimal) *Builder {
	b.balance = balance
	return b
}

// WithCreditLimit sets the credit limit. Only valid for the credit kind; a
// freshly built credit account starts with the whole limit available.
func (b *Builder) WithCreditLimit(limit decimal.Decimal) *Builder {
	b.creditLimit = limit
	return b
}

// Build validates the kind-specific construction invariants and returns the
// account. Credit accounts require a positive limit and no balance; the other
// kinds require a non-negative balance and no limit.
func (b *Builder) Build() (*Account, error) {
	if b.userID == uuid.Nil {
		return nil, domain.ErrUserNotFound
	}
	if !b.kind.Valid() {
		return nil, domain.ErrInvalidAccountKind
	}
	if b.kind.IsCredit() {
		if !b.creditLimit.IsPositive() {
			return nil, domain.ErrInvalidAmount
		}
		if !b.balance.IsZero() {
			return nil, domain.ErrInvalidAccountKind
		}
		return &Account{
			ID:              b.id,
			UserID:          b.userID,
			Kind:            b.kind,
			Name:            b.name,
			CreditLimit:     b.creditLimit,
			CreditAvailable: b.creditLimit,
			CreatedAt:       b.createdAt,
		}, nil
	}
	if b.balance.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}
	if !b.creditLimit.IsZero() {
		return nil, domain.ErrInvalidAccountKind
	}
	return &Account{
		ID:        b.id,
		UserID:    b.userID,
		Kind:      b.kind,
		Name:      b.name,
		Balance:   b.balance,
		CreatedAt: b.createdAt,
	}, nil
}

// ApplyExpense debits the account by amount.
//
// Credit accounts consume available credit and fail with
// domain.ErrInsufficientCredit when the amount exceeds it. Other kinds reduce
// the balance and fail with domain.ErrInsufficientBalance; the balance never
// goes below zero.
func (a *Account) ApplyExpense(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domain.ErrInvalidAmount
	}
	if a.Kind.IsCredit() {
		if amount.GreaterThan(a.CreditAvailable) {
			return domain.ErrInsufficientCredit
		}
		a.CreditAvailable = a.CreditAvailable.Sub(amount)
		return nil
	}
	if amount.GreaterThan(a.Balance) {
		return domain.ErrInsufficientBalance
	}
	a.Balance = a.Balance.Sub(amount)
	return nil
}

// ApplyIncome credits the account by amount.
//
// For credit accounts an income is a card payment: available credit grows but
// is silently capped at the limit, never rejected. Other kinds add to the
// balance.
func (a *Account) ApplyIncome(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domain.ErrInvalidAmount
	}
	if a.Kind.IsCredit() {
		a.CreditAvailable = a.CreditAvailable.Add(amount)
		if a.CreditAvailable.GreaterThan(a.CreditLimit) {
			a.CreditAvailable = a.CreditLimit
		}
		return nil
	}
	a.Balance = a.Balance.Add(amount)
	return nil
}

// Debt returns the amount owed on a credit account (limit minus available),
// zero for other kinds.
func (a *Account) Debt() decimal.Decimal {
	if !a.Kind.IsCredit() {
		return decimal.Zero
	}
	return a.CreditLimit.Sub(a.CreditAvailable)
}
