package transaction_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/amirasaad/finance/pkg/config"
	"github.com/amirasaad/finance/pkg/domain"
	"github.com/amirasaad/finance/pkg/domain/account"
	budgetdomain "github.com/amirasaad/finance/pkg/domain/budget"
	"github.com/amirasaad/finance/pkg/domain/transaction"
	budgetsvc "github.com/amirasaad/finance/pkg/service/budget"
	txsvc "github.com/amirasaad/finance/pkg/service/transaction"
	"github.com/amirasaad/finance/pkg/testutils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	m.Run()
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newFixture(t *testing.T) (*testutils.Store, *txsvc.Service) {
	t.Helper()
	store := testutils.NewStore()
	deps := config.Deps{
		Uow:    testutils.NewUoW(store),
		Logger: slog.Default(),
		Config: &config.App{Alerts: &config.Alerts{IncreaseThreshold: 20, SuggestionMargin: 10}},
	}
	return store, txsvc.NewService(deps, budgetsvc.NewService(deps))
}

func seedDebit(t *testing.T, store *testutils.Store, userID uuid.UUID, balance string) *account.Account {
	t.Helper()
	a, err := account.New().WithUserID(userID).WithBalance(dec(balance)).Build()
	require.NoError(t, err)
	store.SeedAccount(a)
	return a
}

func TestRecord_Income(t *testing.T) {
	t.Parallel()
	store, svc := newFixture(t)
	userID := uuid.New()
	a := seedDebit(t, store, userID, "100")

	tx, alert, err := svc.Record(context.Background(), userID, txsvc.RecordInput{
		AccountID: a.ID,
		Kind:      transaction.KindIncome,
		Amount:    dec("50.25"),
		Category:  "salary",
	})
	require.NoError(t, err)
	assert.Nil(t, alert, "income never evaluates budgets")
	assert.Equal(t, transaction.KindIncome, tx.Kind)

	stored, ok := store.Account(a.ID)
	require.True(t, ok)
	assert.True(t, stored.Balance.Equal(dec("150.25")))
	assert.Len(t, store.Transactions(), 1)
}

func TestRecord_ExpenseInsufficientLeavesNoTrace(t *testing.T) {
	t.Parallel()
	store, svc := newFixture(t)
	userID := uuid.New()
	a := seedDebit(t, store, userID, "100")

	_, _, err := svc.Record(context.Background(), userID, txsvc.RecordInput{
		AccountID: a.ID,
		Kind:      transaction.KindExpense,
		Amount:    dec("100.01"),
		Category:  "food",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)

	stored, _ := store.Account(a.ID)
	assert.True(t, stored.Balance.Equal(dec("100")), "rejected expense must not move the balance")
	assert.Empty(t, store.Transactions(), "rejected expense must not leave a transaction row")
}

func TestRecord_InvalidKind(t *testing.T) {
	t.Parallel()
	store, svc := newFixture(t)
	userID := uuid.New()
	a := seedDebit(t, store, userID, "100")

	_, _, err := svc.Record(context.Background(), userID, txsvc.RecordInput{
		AccountID: a.ID,
		Kind:      "refund",
		Amount:    dec("10"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransactionKind)
}

func TestRecord_OtherUsersAccount(t *testing.T) {
	t.Parallel()
	store, svc := newFixture(t)
	owner := uuid.New()
	a := seedDebit(t, store, owner, "100")

	_, _, err := svc.Record(context.Background(), uuid.New(), txsvc.RecordInput{
		AccountID: a.ID,
		Kind:      transaction.KindExpense,
		Amount:    dec("10"),
		Category:  "food",
	})
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestRecord_CreditExpense(t *testing.T) {
	t.Parallel()
	store, svc := newFixture(t)
	userID := uuid.New()
	a, err := account.New().WithUserID(userID).
		WithKind(account.KindCredit).WithCreditLimit(dec("1000")).Build()
	require.NoError(t, err)
	store.SeedAccount(a)

	_, _, err = svc.Record(context.Background(), userID, txsvc.RecordInput{
		AccountID: a.ID,
		Kind:      transaction.KindExpense,
		Amount:    dec("400"),
		Category:  "shopping",
	})
	require.NoError(t, err)

	stored, _ := store.Account(a.ID)
	assert.True(t, stored.CreditAvailable.Equal(dec("600")))
	assert.True(t, stored.Balance.IsZero())
}

func TestRecord_ExpenseReturnsBudgetAlert(t *testing.T) {
	t.Parallel()
	store, svc := newFixture(t)
	userID := uuid.New()
	a := seedDebit(t, store, userID, "2000")

	occurredAt := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	b, err := budgetdomain.New(userID, "food", dec("1000"), 3, 2026)
	require.NoError(t, err)
	store.SeedBudget(b)

	_, alert, err := svc.Record(context.Background(), userID, txsvc.RecordInput{
		AccountID:  a.ID,
		Kind:       transaction.KindExpense,
		Amount:     dec("850"),
		Category:   "food",
		OccurredAt: &occurredAt,
	})
	require.NoError(t, err)
	require.NotNil(t, alert)
	assert.Equal(t, budgetdomain.StatusAlert, alert.Status)
	assert.True(t, alert.Percentage.Equal(dec("85")))
}

func TestRecord_ExpenseWithoutBudget(t *testing.T) {
	t.Parallel()
	store, svc := newFixture(t)
	userID := uuid.New()
	a := seedDebit(t, store, userID, "100")

	_, alert, err := svc.Record(context.Background(), userID, txsvc.RecordInput{
		AccountID: a.ID,
		Kind:      transaction.KindExpense,
		Amount:    dec("10"),
		Category:  "misc",
	})
	require.NoError(t, err)
	assert.Nil(t, alert)
}

func TestListByAccount_OwnershipEnforced(t *testing.T) {
	t.Parallel()
	store, svc := newFixture(t)
	owner := uuid.New()
	a := seedDebit(t, store, owner, "100")

	_, err := svc.ListByAccount(context.Background(), uuid.New(), a.ID)
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)

	list, err := svc.ListByAccount(context.Background(), owner, a.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestList_NewestFirst(t *testing.T) {
	t.Parallel()
	store, svc := newFixture(t)
	userID := uuid.New()
	a := seedDebit(t, store, userID, "1000")

	for _, day := range []int{5, 20, 12} {
		occurredAt := time.Date(2026, time.January, day, 0, 0, 0, 0, time.UTC)
		_, _, err := svc.Record(context.Background(), userID, txsvc.RecordInput{
			AccountID:  a.ID,
			Kind:       transaction.KindExpense,
			Amount:     dec("10"),
			Category:   "food",
			OccurredAt: &occurredAt,
		})
		require.NoError(t, err)
	}

	list, err := svc.List(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, 20, list[0].OccurredAt.Day())
	assert.Equal(t, 12, list[1].OccurredAt.Day())
	assert.Equal(t, 5, list[2].OccurredAt.Day())
}
