// Package transaction contains the immutable transaction entity. A
// transaction records one ledger effect on one account; the two legs of a
// transfer are linked by a shared TransferGroupID.
package transaction

import (
	"time"

	"github.com/amirasaad/finance/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind is the closed set of transaction kinds.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// Valid reports whether k is income or expense.
func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// CategoryTransfer marks the two legs created by the transfer engine.
const CategoryTransfer = "transfer"

// Transaction is a recorded ledger movement. It is immutable once created.
type Transaction struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	AccountID       uuid.UUID
	Kind            Kind
	Amount          decimal.Decimal
	Category        string
	Description     string
	TransferGroupID *uuid.UUID
	OccurredAt      time.Time
	CreatedAt       time.Time
}

// Builder constructs transactions, defaulting OccurredAt to creation time.
type Builder struct {
	id              uuid.UUID
	userID          uuid.UUID
	accountID       uuid.UUID
	kind            Kind
	amount          decimal.Decimal
	category        string
	description     string
	transferGroupID *uuid.UUID
	occurredAt      time.Time
}

// New creates a Builder with a fresh ID.
func New() *Builder {
	return &Builder{id: uuid.New()}
}

// WithUserID sets the owning user. Mandatory.
func (b *Builder) WithUserID(userID uuid.UUID) *Builder {
	b.userID = userID
	return b
}

// WithAccountID sets the affected account. Mandatory.
func (b *Builder) WithAccountID(accountID uuid.UUID) *Builder {
	b.accountID = accountID
	return b
}

// WithKind sets income or expense.
func (b *Builder) WithKind(kind Kind) *Builder {
	b.kind = kind
	return b
}

// WithAmount sets the amount. Must be positive.
func (b *Builder) WithAmount(amount decimal.Decimal) *Builder {
	b.amount = amount
	return b
}

// WithCategory sets the free-text category.
func (b *Builder) WithCategory(category string) *Builder {
	b.category = category
	return b
}

// WithDescription sets the free-text description.
func (b *Builder) WithDescription(description string) *Builder {
	b.description = description
	return b
}

// WithTransferGroupID links the transaction to a transfer pair.
func (b *Builder) WithTransferGroupID(groupID uuid.UUID) *Builder {
	b.transferGroupID = &groupID
	return b
}

// WithOccurredAt overrides the default occurrence timestamp.
func (b *Builder) WithOccurredAt(t time.Time) *Builder {
	b.occurredAt = t
	return b
}

// Build validates the invariants and returns the transaction.
func (b *Builder) Build() (*Transaction, error) {
	if b.userID == uuid.Nil {
		return nil, domain.ErrUserNotFound
	}
	if b.accountID == uuid.Nil {
		return nil, domain.ErrAccountNotFound
	}
	if !b.kind.Valid() {
		return nil, domain.ErrInvalidTransactionKind
	}
	if !b.amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	occurredAt := b.occurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}
	return &Transaction{
		ID:              b.id,
		UserID:          b.userID,
		AccountID:       b.accountID,
		Kind:            b.kind,
		Amount:          b.amount,
		Category:        b.category,
		Description:     b.description,
		TransferGroupID: b.transferGroupID,
		OccurredAt:      occurredAt,
		CreatedAt:       time.Now(),
	}, nil
}
