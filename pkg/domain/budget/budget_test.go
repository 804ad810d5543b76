package budget_test

import (
	"testing"

	"github.com/amirasaad/finance/pkg/domain"
	"github.com/amirasaad/finance/pkg/domain/budget"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNew(t *testing.T) {
	t.Parallel()
	b, err := budget.New(uuid.New(), "food", dec("1000"), 3, 2026)
	require.NoError(t, err)
	assert.Equal(t, "food", b.Category)
	assert.Equal(t, 3, b.Month)
	assert.Equal(t, 2026, b.Year)
	assert.True(t, b.LimitAmount.Equal(dec("1000")))
}

func TestNew_Invalid(t *testing.T) {
	t.Parallel()
	userID := uuid.New()

	_, err := budget.New(uuid.Nil, "food", dec("1000"), 3, 2026)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = budget.New(userID, "food", decimal.Zero, 3, 2026)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = budget.New(userID, "food", dec("-10"), 3, 2026)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = budget.New(userID, "food", dec("1000"), 0, 2026)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = budget.New(userID, "food", dec("1000"), 13, 2026)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestEvaluate_Thresholds(t *testing.T) {
	t.Parallel()
	b, err := budget.New(uuid.New(), "food", dec("1000"), 3, 2026)
	require.NoError(t, err)

	tests := []struct {
		name       string
		spent      string
		percentage string
		status     budget.Status
	}{
		{"well under", "500", "50", budget.StatusOK},
		{"just under alert", "799", "79.9", budget.StatusOK},
		{"at alert threshold", "800", "80", budget.StatusAlert},
		{"between thresholds", "850", "85", budget.StatusAlert},
		{"exactly at limit", "1000", "100", budget.StatusExceeded},
		{"over limit", "1001", "100.1", budget.StatusExceeded},
		{"nothing spent", "0", "0", budget.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			eval := b.Evaluate(dec(tt.spent))
			assert.Equal(t, tt.status, eval.Status)
			assert.True(t, eval.Percentage.Equal(dec(tt.percentage)),
				"want %s%%, got %s%%", tt.percentage, eval.Percentage)
			assert.True(t, eval.Spent.Equal(dec(tt.spent)))
			assert.Equal(t, "food", eval.Category)
		})
	}
}

func TestEvaluate_RoundsToTwoDecimals(t *testing.T) {
	t.Parallel()
	b, err := budget.New(uuid.New(), "food", dec("300"), 1, 2026)
	require.NoError(t, err)
	eval := b.Evaluate(dec("100"))
	assert.True(t, eval.Percentage.Equal(dec("33.33")), "got %s", eval.Percentage)
}
