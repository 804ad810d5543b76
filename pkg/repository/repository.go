// Package repository defines the persistence contracts the services depend
// on. Implementations live in infra/repository; every method is bound to the
// session of the unit of work it was obtained from.
package repository

import (
	"context"

	"github.com/amirasaad/finance/pkg/domain/account"
	"github.com/amirasaad/finance/pkg/domain/budget"
	"github.com/amirasaad/finance/pkg/domain/transaction"
	"github.com/amirasaad/finance/pkg/domain/user"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserRepository persists users.
type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	Get(ctx context.Context, id uuid.UUID) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}

// AccountRepository persists accounts. GetForUser scopes the lookup to the
// owner and is the only lookup mutation paths may use.
type AccountRepository interface {
	Create(ctx context.Context, a *account.Account) error
	Get(ctx context.Context, id uuid.UUID) (*account.Account, error)
	GetForUser(ctx context.Context, userID, id uuid.UUID) (*account.Account, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*account.Account, error)
	Update(ctx context.Context, a *account.Account) error
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

// CategoryTotal is an aggregated amount for one category.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// MonthKindTotal is an aggregated amount for one month and transaction kind.
type MonthKindTotal struct {
	Month int
	Kind  transaction.Kind
	Total decimal.Decimal
}

// MonthCategoryTotal is an aggregated expense for one category in one month.
type MonthCategoryTotal struct {
	Category string
	Month    int
	Total    decimal.Decimal
}

// TransactionRepository persists transactions and answers the read-only
// aggregations the recorder exposes. Listings are ordered by occurred_at
// descending, ties broken by insertion order.
type TransactionRepository interface {
	Create(ctx context.Context, t *transaction.Transaction) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*transaction.Transaction, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*transaction.Transaction, error)

	// TotalByKind sums all amounts of one kind for the user.
	TotalByKind(ctx context.Context, userID uuid.UUID, kind transaction.Kind) (decimal.Decimal, error)
	// TotalByKindInMonth sums amounts of one kind within a month.
	TotalByKindInMonth(ctx context.Context, userID uuid.UUID, kind transaction.Kind, month, year int) (decimal.Decimal, error)
	// SumCategoryInMonth sums expenses for one category within a month.
	SumCategoryInMonth(ctx context.Context, userID uuid.UUID, category string, month, year int) (decimal.Decimal, error)
	// CategoryTotals returns all-time expense totals per category, largest first.
	CategoryTotals(ctx context.Context, userID uuid.UUID) ([]CategoryTotal, error)
	// CategoryTotalsInMonth returns expense totals per category within a month.
	CategoryTotalsInMonth(ctx context.Context, userID uuid.UUID, month, year int) ([]CategoryTotal, error)
	// MonthlyTotalsByKind returns per-month, per-kind totals for a year.
	MonthlyTotalsByKind(ctx context.Context, userID uuid.UUID, year int) ([]MonthKindTotal, error)
	// MonthlyCategoryTotals returns per-category monthly expense totals for a year.
	MonthlyCategoryTotals(ctx context.Context, userID uuid.UUID, year int) ([]MonthCategoryTotal, error)
}

// BudgetRepository persists budgets. Find returns nil (no error) when no
// budget matches the exact (user, category, month, year).
type BudgetRepository interface {
	Create(ctx context.Context, b *budget.Budget) error
	Find(ctx context.Context, userID uuid.UUID, category string, month, year int) (*budget.Budget, error)
	ListForMonth(ctx context.Context, userID uuid.UUID, month, year int) ([]*budget.Budget, error)
}
