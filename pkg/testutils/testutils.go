// Package testutils provides an in-memory store and unit of work for service
// tests. The fakes honor the persistence contracts: lookups return copies,
// writes only land through Update/Create, and a failing Do restores the store
// to its pre-transaction state.
package testutils

import (
	"context"
	"reflect"
	"sort"
	"sync"

	"github.com/amirasaad/finance/pkg/domain"
	"github.com/amirasaad/finance/pkg/domain/account"
	"github.com/amirasaad/finance/pkg/domain/budget"
	"github.com/amirasaad/finance/pkg/domain/transaction"
	"github.com/amirasaad/finance/pkg/domain/user"
	"github.com/amirasaad/finance/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Store is the in-memory state shared by the fake repositories.
type Store struct {
	mu           sync.Mutex
	users        map[uuid.UUID]user.User
	accounts     map[uuid.UUID]account.Account
	transactions []transaction.Transaction
	budgets      []budget.Budget
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		users:    map[uuid.UUID]user.User{},
		accounts: map[uuid.UUID]account.Account{},
	}
}

// SeedUser stores a user.
func (s *Store) SeedUser(u *user.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = *u
}

// SeedAccount stores an account.
func (s *Store) SeedAccount(a *account.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[a.ID] = *a
}

// SeedTransaction appends a transaction.
func (s *Store) SeedTransaction(t *transaction.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = append(s.transactions, *t)
}

// SeedBudget appends a budget.
func (s *Store) SeedBudget(b *budget.Budget) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.budgets = append(s.budgets, *b)
}

// Account returns a copy of the stored account.
func (s *Store) Account(id uuid.UUID) (account.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	return a, ok
}

// Transactions returns a copy of all stored transactions.
func (s *Store) Transactions() []transaction.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]transaction.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

func (s *Store) snapshot() *Store {
	users := make(map[uuid.UUID]user.User, len(s.users))
	for k, v := range s.users {
		users[k] = v
	}
	accounts := make(map[uuid.UUID]account.Account, len(s.accounts))
	for k, v := range s.accounts {
		accounts[k] = v
	}
	transactions := make([]transaction.Transaction, len(s.transactions))
	copy(transactions, s.transactions)
	budgets := make([]budget.Budget, len(s.budgets))
	copy(budgets, s.budgets)
	return &Store{users: users, accounts: accounts, transactions: transactions, budgets: budgets}
}

func (s *Store) restore(snap *Store) {
	s.users = snap.users
	s.accounts = snap.accounts
	s.transactions = snap.transactions
	s.budgets = snap.budgets
}

// Uow is an in-memory repository.UnitOfWork. Do snapshots the store and
// restores it when fn fails, mirroring a rolled-back transaction.
type Uow struct {
	store *Store
}

// NewUoW returns a unit of work over the store.
func NewUoW(store *Store) *Uow {
	return &Uow{store: store}
}

// Do runs fn, rolling the store back on error.
func (u *Uow) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	u.store.mu.Lock()
	snap := u.store.snapshot()
	u.store.mu.Unlock()
	if err := fn(u); err != nil {
		u.store.mu.Lock()
		u.store.restore(snap)
		u.store.mu.Unlock()
		return err
	}
	return nil
}

// GetRepository returns the repository registered for the given type.
func (u *Uow) GetRepository(repoType reflect.Type) (any, error) {
	switch repoType {
	case reflect.TypeOf((*repository.UserRepository)(nil)).Elem():
		return u.users(), nil
	case reflect.TypeOf((*repository.AccountRepository)(nil)).Elem():
		return u.accounts(), nil
	case reflect.TypeOf((*repository.TransactionRepository)(nil)).Elem():
		return u.transactions(), nil
	case reflect.TypeOf((*repository.BudgetRepository)(nil)).Elem():
		return u.budgets(), nil
	}
	return nil, domain.ErrStoreUnavailable
}

// UserRepository returns the fake user repository.
func (u *Uow) UserRepository() (repository.UserRepository, error) {
	return u.users(), nil
}

// AccountRepository returns the fake account repository.
func (u *Uow) AccountRepository() (repository.AccountRepository, error) {
	return u.accounts(), nil
}

// TransactionRepository returns the fake transaction repository.
func (u *Uow) TransactionRepository() (repository.TransactionRepository, error) {
	return u.transactions(), nil
}

// BudgetRepository returns the fake budget repository.
func (u *Uow) BudgetRepository() (repository.BudgetRepository, error) {
	return u.budgets(), nil
}

func (u *Uow) users() *userRepo               { return &userRepo{store: u.store} }
func (u *Uow) accounts() *accountRepo         { return &accountRepo{store: u.store} }
func (u *Uow) transactions() *transactionRepo { return &transactionRepo{store: u.store} }
func (u *Uow) budgets() *budgetRepo           { return &budgetRepo{store: u.store} }

type userRepo struct{ store *Store }

func (r *userRepo) Create(ctx context.Context, u *user.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.users {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyInUse
		}
	}
	r.store.users[u.ID] = *u
	return nil
}

func (r *userRepo) Get(ctx context.Context, id uuid.UUID) (*user.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

type accountRepo struct{ store *Store }

func (r *accountRepo) Create(ctx context.Context, a *account.Account) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.accounts[a.ID] = *a
	return nil
}

func (r *accountRepo) Get(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	a, ok := r.store.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return &a, nil
}

func (r *accountRepo) GetForUser(ctx context.Context, userID, id uuid.UUID) (*account.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	a, ok := r.store.accounts[id]
	if !ok || a.UserID != userID {
		return nil, domain.ErrAccountNotFound
	}
	return &a, nil
}

func (r *accountRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*account.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*account.Account
	for _, a := range r.store.accounts {
		if a.UserID == userID {
			copied := a
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *accountRepo) Update(ctx context.Context, a *account.Account) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.accounts[a.ID]; !ok {
		return domain.ErrAccountNotFound
	}
	r.store.accounts[a.ID] = *a
	return nil
}

func (r *accountRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var n int64
	for _, a := range r.store.accounts {
		if a.UserID == userID {
			n++
		}
	}
	return n, nil
}

type transactionRepo struct{ store *Store }

func (r *transactionRepo) Create(ctx context.Context, t *transaction.Transaction) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.transactions = append(r.store.transactions, *t)
	return nil
}

func (r *transactionRepo) list(filter func(t transaction.Transaction) bool) []*transaction.Transaction {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*transaction.Transaction
	for _, t := range r.store.transactions {
		if filter(t) {
			copied := t
			out = append(out, &copied)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].OccurredAt.Equal(out[j].OccurredAt) {
			return out[i].OccurredAt.After(out[j].OccurredAt)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (r *transactionRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*transaction.Transaction, error) {
	return r.list(func(t transaction.Transaction) bool { return t.UserID == userID }), nil
}

func (r *transactionRepo) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*transaction.Transaction, error) {
	return r.list(func(t transaction.Transaction) bool { return t.AccountID == accountID }), nil
}

func (r *transactionRepo) sum(filter func(t transaction.Transaction) bool) decimal.Decimal {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	total := decimal.Zero
	for _, t := range r.store.transactions {
		if filter(t) {
			total = total.Add(t.Amount)
		}
	}
	return total
}

func inMonth(t transaction.Transaction, month, year int) bool {
	return int(t.OccurredAt.Month()) == month && t.OccurredAt.Year() == year
}

func (r *transactionRepo) TotalByKind(ctx context.Context, userID uuid.UUID, kind transaction.Kind) (decimal.Decimal, error) {
	return r.sum(func(t transaction.Transaction) bool {
		return t.UserID == userID && t.Kind == kind
	}), nil
}

func (r *transactionRepo) TotalByKindInMonth(ctx context.Context, userID uuid.UUID, kind transaction.Kind, month, year int) (decimal.Decimal, error) {
	return r.sum(func(t transaction.Transaction) bool {
		return t.UserID == userID && t.Kind == kind && inMonth(t, month, year)
	}), nil
}

func (r *transactionRepo) SumCategoryInMonth(ctx context.Context, userID uuid.UUID, category string, month, year int) (decimal.Decimal, error) {
	return r.sum(func(t transaction.Transaction) bool {
		return t.UserID == userID && t.Kind == transaction.KindExpense &&
			t.Category == category && inMonth(t, month, year)
	}), nil
}

func (r *transactionRepo) categoryTotals(filter func(t transaction.Transaction) bool) []repository.CategoryTotal {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	totals := map[string]decimal.Decimal{}
	for _, t := range r.store.transactions {
		if t.Kind == transaction.KindExpense && filter(t) {
			totals[t.Category] = totals[t.Category].Add(t.Amount)
		}
	}
	out := make([]repository.CategoryTotal, 0, len(totals))
	for category, total := range totals {
		out = append(out, repository.CategoryTotal{Category: category, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Total.GreaterThan(out[j].Total) })
	return out
}

func (r *transactionRepo) CategoryTotals(ctx context.Context, userID uuid.UUID) ([]repository.CategoryTotal, error) {
	return r.categoryTotals(func(t transaction.Transaction) bool { return t.UserID == userID }), nil
}

func (r *transactionRepo) CategoryTotalsInMonth(ctx context.Context, userID uuid.UUID, month, year int) ([]repository.CategoryTotal, error) {
	return r.categoryTotals(func(t transaction.Transaction) bool {
		return t.UserID == userID && inMonth(t, month, year)
	}), nil
}

func (r *transactionRepo) MonthlyTotalsByKind(ctx context.Context, userID uuid.UUID, year int) ([]repository.MonthKindTotal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	type key struct {
		month int
		kind  transaction.Kind
	}
	totals := map[key]decimal.Decimal{}
	for _, t := range r.store.transactions {
		if t.UserID == userID && t.OccurredAt.Year() == year {
			k := key{month: int(t.OccurredAt.Month()), kind: t.Kind}
			totals[k] = totals[k].Add(t.Amount)
		}
	}
	out := make([]repository.MonthKindTotal, 0, len(totals))
	for k, total := range totals {
		out = append(out, repository.MonthKindTotal{Month: k.month, Kind: k.kind, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out, nil
}

func (r *transactionRepo) MonthlyCategoryTotals(ctx context.Context, userID uuid.UUID, year int) ([]repository.MonthCategoryTotal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	type key struct {
		category string
		month    int
	}
	totals := map[key]decimal.Decimal{}
	for _, t := range r.store.transactions {
		if t.UserID == userID && t.Kind == transaction.KindExpense && t.OccurredAt.Year() == year {
			k := key{category: t.Category, month: int(t.OccurredAt.Month())}
			totals[k] = totals[k].Add(t.Amount)
		}
	}
	out := make([]repository.MonthCategoryTotal, 0, len(totals))
	for k, total := range totals {
		out = append(out, repository.MonthCategoryTotal{Category: k.category, Month: k.month, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Month < out[j].Month
	})
	return out, nil
}

type budgetRepo struct{ store *Store }

func (r *budgetRepo) Create(ctx context.Context, b *budget.Budget) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.budgets = append(r.store.budgets, *b)
	return nil
}

func (r *budgetRepo) Find(ctx context.Context, userID uuid.UUID, category string, month, year int) (*budget.Budget, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, b := range r.store.budgets {
		if b.UserID == userID && b.Category == category && b.Month == month && b.Year == year {
			out := b
			return &out, nil
		}
	}
	return nil, nil
}

func (r *budgetRepo) ListForMonth(ctx context.Context, userID uuid.UUID, month, year int) ([]*budget.Budget, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*budget.Budget
	for _, b := range r.store.budgets {
		if b.UserID == userID && b.Month == month && b.Year == year {
			copied := b
			out = append(out, &copied)
		}
	}
	return out, nil
}
