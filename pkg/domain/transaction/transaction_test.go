package transaction_test

import (
	"testing"
	"time"

	"github.com/amirasaad/finance/pkg/domain"
	"github.com/amirasaad/finance/pkg/domain/transaction"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	t.Parallel()
	userID, accountID := uuid.New(), uuid.New()
	tx, err := transaction.New().
		WithUserID(userID).
		WithAccountID(accountID).
		WithKind(transaction.KindExpense).
		WithAmount(decimal.RequireFromString("42.99")).
		WithCategory("food").
		WithDescription("groceries").
		Build()
	require.NoError(t, err)
	assert.Equal(t, userID, tx.UserID)
	assert.Equal(t, accountID, tx.AccountID)
	assert.Equal(t, transaction.KindExpense, tx.Kind)
	assert.Nil(t, tx.TransferGroupID)
	assert.False(t, tx.OccurredAt.IsZero(), "OccurredAt defaults to now")
}

func TestBuild_ExplicitOccurredAt(t *testing.T) {
	t.Parallel()
	occurredAt := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	tx, err := transaction.New().
		WithUserID(uuid.New()).
		WithAccountID(uuid.New()).
		WithKind(transaction.KindIncome).
		WithAmount(decimal.NewFromInt(10)).
		WithOccurredAt(occurredAt).
		Build()
	require.NoError(t, err)
	assert.True(t, tx.OccurredAt.Equal(occurredAt))
}

func TestBuild_TransferGroup(t *testing.T) {
	t.Parallel()
	groupID := uuid.New()
	tx, err := transaction.New().
		WithUserID(uuid.New()).
		WithAccountID(uuid.New()).
		WithKind(transaction.KindExpense).
		WithAmount(decimal.NewFromInt(10)).
		WithCategory(transaction.CategoryTransfer).
		WithTransferGroupID(groupID).
		Build()
	require.NoError(t, err)
	require.NotNil(t, tx.TransferGroupID)
	assert.Equal(t, groupID, *tx.TransferGroupID)
}

func TestBuild_Invalid(t *testing.T) {
	t.Parallel()
	userID, accountID := uuid.New(), uuid.New()
	amount := decimal.NewFromInt(10)

	_, err := transaction.New().
		WithAccountID(accountID).WithKind(transaction.KindIncome).WithAmount(amount).Build()
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = transaction.New().
		WithUserID(userID).WithKind(transaction.KindIncome).WithAmount(amount).Build()
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)

	_, err = transaction.New().
		WithUserID(userID).WithAccountID(accountID).WithKind("refund").WithAmount(amount).Build()
	assert.ErrorIs(t, err, domain.ErrInvalidTransactionKind)

	_, err = transaction.New().
		WithUserID(userID).WithAccountID(accountID).WithKind(transaction.KindIncome).Build()
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}
