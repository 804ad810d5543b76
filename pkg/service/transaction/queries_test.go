package transaction_test

import (
	"context"
	"testing"
	"time"

	"github.com/amirasaad/finance/pkg/domain/transaction"
	txsvc "github.com/amirasaad/finance/pkg/service/transaction"
	"github.com/amirasaad/finance/pkg/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedTx(t *testing.T, store *testutils.Store, userID, accountID uuid.UUID, kind transaction.Kind, amount, category string, occurredAt time.Time) {
	t.Helper()
	tx, err := transaction.New().
		WithUserID(userID).
		WithAccountID(accountID).
		WithKind(kind).
		WithAmount(dec(amount)).
		WithCategory(category).
		WithOccurredAt(occurredAt).
		Build()
	require.NoError(t, err)
	store.SeedTransaction(tx)
}

func day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestGetSummary(t *testing.T) {
	t.Parallel()
	store, svc := newFixture(t)
	userID := uuid.New()
	a := seedDebit(t, store, userID, "0")
	seedDebit(t, store, userID, "0")
	seedDebit(t, store, uuid.New(), "0") // someone else's account

	seedTx(t, store, userID, a.ID, transaction.KindIncome, "1000", "salary", day(2026, time.January, 5))
	seedTx(t, store, userID, a.ID, transaction.KindIncome, "200.50", "salary", day(2026, time.February, 5))
	seedTx(t, store, userID, a.ID, transaction.KindExpense, "300.25", "food", day(2026, time.February, 10))

	summary, err := svc.GetSummary(context.Background(), userID)
	require.NoError(t, err)
	assert.True(t, summary.TotalIncome.Equal(dec("1200.50")))
	assert.True(t, summary.TotalExpense.Equal(dec("300.25")))
	assert.True(t, summary.Balance.Equal(dec("900.25")))
	assert.Equal(t, int64(2), summary.AccountCount)
}

func TestMonthlySummary(t *testing.T) {
	t.Parallel()
	store, svc := newFixture(t)
	userID := uuid.New()
	a := seedDebit(t, store, userID, "0")

	seedTx(t, store, userID, a.ID, transaction.KindIncome, "1000", "salary", day(2026, time.March, 1))
	seedTx(t, store, userID, a.ID, transaction.KindExpense, "400", "rent", day(2026, time.March, 2))
	seedTx(t, store, userID, a.ID, transaction.KindExpense, "999", "rent", day(2026, time.April, 2))

	summary, err := svc.MonthlySummary(context.Background(), userID, 3, 2026)
	require.NoError(t, err)
	assert.True(t, summary.Income.Equal(dec("1000")))
	assert.True(t, summary.Expense.Equal(dec("400")))
	assert.True(t, summary.Balance.Equal(dec("600")))
}

func TestAnnualComparison_ZeroFillsMonths(t *testing.T) {
	t.Parallel()
	store, svc := newFixture(t)
	userID := uuid.New()
	a := seedDebit(t, store, userID, "0")

	seedTx(t, store, userID, a.ID, transaction.KindIncome, "1000", "salary", day(2026, time.February, 1))
	seedTx(t, store, userID, a.ID, transaction.KindExpense, "250", "food", day(2026, time.February, 3))
	seedTx(t, store, userID, a.ID, transaction.KindExpense, "80", "food", day(2026, time.November, 3))
	seedTx(t, store, userID, a.ID, transaction.KindExpense, "999", "food", day(2025, time.February, 3)) // other year

	months, err := svc.AnnualComparison(context.Background(), userID, 2026)
	require.NoError(t, err)
	require.Len(t, months, 12)

	assert.Equal(t, 1, months[0].Month)
	assert.True(t, months[0].Income.IsZero())
	assert.True(t, months[0].Expense.IsZero())

	feb := months[1]
	assert.True(t, feb.Income.Equal(dec("1000")))
	assert.True(t, feb.Expense.Equal(dec("250")))
	assert.True(t, feb.Balance.Equal(dec("750")))

	nov := months[10]
	assert.True(t, nov.Expense.Equal(dec("80")))
	assert.True(t, nov.Balance.Equal(dec("-80")))
}

func TestCategoryStats_Shares(t *testing.T) {
	t.Parallel()
	store, svc := newFixture(t)
	userID := uuid.New()
	a := seedDebit(t, store, userID, "0")

	seedTx(t, store, userID, a.ID, transaction.KindExpense, "750", "rent", day(2026, time.March, 1))
	seedTx(t, store, userID, a.ID, transaction.KindExpense, "250", "food", day(2026, time.March, 2))
	seedTx(t, store, userID, a.ID, transaction.KindIncome, "5000", "salary", day(2026, time.March, 3))

	stats, err := svc.CategoryStats(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, stats, 2, "income categories are not expense statistics")

	assert.Equal(t, "rent", stats[0].Category)
	assert.True(t, stats[0].Percentage.Equal(dec("75")))
	assert.Equal(t, "food", stats[1].Category)
	assert.True(t, stats[1].Percentage.Equal(dec("25")))
}

func TestCategoryComparison_PerCategoryVariation(t *testing.T) {
	t.Parallel()
	store, svc := newFixture(t)
	userID := uuid.New()
	a := seedDebit(t, store, userID, "0")

	// Two categories with different slopes; each variation must be computed
	// from its own category's prior total.
	seedTx(t, store, userID, a.ID, transaction.KindExpense, "100", "food", day(2026, time.February, 10))
	seedTx(t, store, userID, a.ID, transaction.KindExpense, "130", "food", day(2026, time.March, 10))
	seedTx(t, store, userID, a.ID, transaction.KindExpense, "200", "rent", day(2026, time.February, 1))
	seedTx(t, store, userID, a.ID, transaction.KindExpense, "220", "rent", day(2026, time.March, 1))
	seedTx(t, store, userID, a.ID, transaction.KindExpense, "50", "games", day(2026, time.March, 12))

	comparisons, err := svc.CategoryComparison(context.Background(), userID, 3, 2026)
	require.NoError(t, err)
	require.Len(t, comparisons, 3)

	byCategory := map[string]txsvc.CategoryComparison{}
	for _, c := range comparisons {
		byCategory[c.Category] = c
	}

	food := byCategory["food"]
	require.NotNil(t, food.Variation)
	assert.True(t, food.Variation.Equal(dec("30")), "got %s", food.Variation)
	assert.True(t, food.Diff.Equal(dec("30")))

	rent := byCategory["rent"]
	require.NotNil(t, rent.Variation)
	assert.True(t, rent.Variation.Equal(dec("10")), "got %s", rent.Variation)

	games := byCategory["games"]
	assert.Nil(t, games.Variation, "no prior month expense means no variation")
	assert.True(t, games.Current.Equal(dec("50")))
	assert.True(t, games.Previous.IsZero())
}

func TestCategoryComparison_JanuaryRollsToPriorDecember(t *testing.T) {
	t.Parallel()
	store, svc := newFixture(t)
	userID := uuid.New()
	a := seedDebit(t, store, userID, "0")

	seedTx(t, store, userID, a.ID, transaction.KindExpense, "100", "food", day(2025, time.December, 20))
	seedTx(t, store, userID, a.ID, transaction.KindExpense, "150", "food", day(2026, time.January, 20))

	comparisons, err := svc.CategoryComparison(context.Background(), userID, 1, 2026)
	require.NoError(t, err)
	require.Len(t, comparisons, 1)
	require.NotNil(t, comparisons[0].Variation)
	assert.True(t, comparisons[0].Variation.Equal(dec("50")))
}

func TestCategoryAlerts(t *testing.T) {
	t.Parallel()
	store, svc := newFixture(t)
	userID := uuid.New()
	a := seedDebit(t, store, userID, "0")

	// new category: nothing in February, 50 in March
	seedTx(t, store, userID, a.ID, transaction.KindExpense, "50", "games", day(2026, time.March, 5))
	// significant increase: 100 -> 130 is +30% over the default 20% threshold
	seedTx(t, store, userID, a.ID, transaction.KindExpense, "100", "food", day(2026, time.February, 5))
	seedTx(t, store, userID, a.ID, transaction.KindExpense, "130", "food", day(2026, time.March, 5))
	// mild increase: 100 -> 110 stays quiet
	seedTx(t, store, userID, a.ID, transaction.KindExpense, "100", "rent", day(2026, time.February, 5))
	seedTx(t, store, userID, a.ID, transaction.KindExpense, "110", "rent", day(2026, time.March, 5))

	alerts, err := svc.CategoryAlerts(context.Background(), userID, 3, 2026, 0)
	require.NoError(t, err)
	require.Len(t, alerts, 2)

	byCategory := map[string]txsvc.CategoryAlert{}
	for _, alert := range alerts {
		byCategory[alert.Category] = alert
	}
	assert.Equal(t, txsvc.AlertNewExpense, byCategory["games"].Type)
	food := byCategory["food"]
	assert.Equal(t, txsvc.AlertSignificantIncrease, food.Type)
	require.NotNil(t, food.Variation)
	assert.True(t, food.Variation.Equal(dec("30")))
}

func TestCategoryAlerts_ExplicitThreshold(t *testing.T) {
	t.Parallel()
	store, svc := newFixture(t)
	userID := uuid.New()
	a := seedDebit(t, store, userID, "0")

	seedTx(t, store, userID, a.ID, transaction.KindExpense, "100", "rent", day(2026, time.February, 5))
	seedTx(t, store, userID, a.ID, transaction.KindExpense, "110", "rent", day(2026, time.March, 5))

	alerts, err := svc.CategoryAlerts(context.Background(), userID, 3, 2026, 5)
	require.NoError(t, err)
	require.Len(t, alerts, 1, "a 10%% rise crosses a 5%% threshold")
	assert.Equal(t, txsvc.AlertSignificantIncrease, alerts[0].Type)
}

func TestSuggestedBudgets(t *testing.T) {
	t.Parallel()
	store, svc := newFixture(t)
	userID := uuid.New()
	a := seedDebit(t, store, userID, "0")

	// food: 100 in Jan, 200 in Feb -> average 150, suggested 165 at +10%
	seedTx(t, store, userID, a.ID, transaction.KindExpense, "100", "food", day(2026, time.January, 5))
	seedTx(t, store, userID, a.ID, transaction.KindExpense, "200", "food", day(2026, time.February, 5))

	suggestions, err := svc.SuggestedBudgets(context.Background(), userID, 2026, 0)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "food", suggestions[0].Category)
	assert.True(t, suggestions[0].MonthlyAverage.Equal(dec("150")))
	assert.True(t, suggestions[0].Suggested.Equal(dec("165")))
}

func TestSuggestedBudgets_ExplicitMargin(t *testing.T) {
	t.Parallel()
	store, svc := newFixture(t)
	userID := uuid.New()
	a := seedDebit(t, store, userID, "0")

	seedTx(t, store, userID, a.ID, transaction.KindExpense, "100", "food", day(2026, time.January, 5))

	suggestions, err := svc.SuggestedBudgets(context.Background(), userID, 2026, 25)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.True(t, suggestions[0].Suggested.Equal(dec("125")))
}
