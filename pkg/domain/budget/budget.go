// Package budget contains the per-category monthly spending limit and the
// pure evaluation rule classifying accumulated expense against it.
package budget

import (
	"time"

	"github.com/amirasaad/finance/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status classifies spending against a budget limit.
type Status string

const (
	StatusOK       Status = "OK"
	StatusAlert    Status = "ALERT"
	StatusExceeded Status = "EXCEEDED"
)

// Thresholds for the ALERT and EXCEEDED classifications, in percent.
var (
	alertThreshold    = decimal.NewFromInt(80)
	exceededThreshold = decimal.NewFromInt(100)
)

// Budget is a spending limit for one (user, category, month, year). Created
// explicitly, never mutated, evaluated on demand.
type Budget struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Category    string
	LimitAmount decimal.Decimal
	Month       int
	Year        int
	CreatedAt   time.Time
}

// New validates and creates a budget.
func New(userID uuid.UUID, category string, limit decimal.Decimal, month, year int) (*Budget, error) {
	if userID == uuid.Nil {
		return nil, domain.ErrUserNotFound
	}
	if !limit.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	if month < 1 || month > 12 || year <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	return &Budget{
		ID:          uuid.New(),
		UserID:      userID,
		Category:    category,
		LimitAmount: limit,
		Month:       month,
		Year:        year,
		CreatedAt:   time.Now(),
	}, nil
}

// Evaluation is the outcome of comparing spending against a budget.
type Evaluation struct {
	Category   string          `json:"category"`
	Limit      decimal.Decimal `json:"limit"`
	Spent      decimal.Decimal `json:"spent"`
	Percentage decimal.Decimal `json:"percentage"`
	Status     Status          `json:"status"`
}

// Evaluate classifies spent against the limit: >=100% EXCEEDED, >=80% ALERT,
// else OK. A non-positive limit yields 0% to avoid division by zero.
func (b *Budget) Evaluate(spent decimal.Decimal) Evaluation {
	percentage := decimal.Zero
	if b.LimitAmount.IsPositive() {
		percentage = spent.Div(b.LimitAmount).Mul(exceededThreshold).Round(2)
	}
	status := StatusOK
	switch {
	case percentage.GreaterThanOrEqual(exceededThreshold):
		status = StatusExceeded
	case percentage.GreaterThanOrEqual(alertThreshold):
		status = StatusAlert
	}
	return Evaluation{
		Category:   b.Category,
		Limit:      b.LimitAmount,
		Spent:      spent,
		Percentage: percentage,
		Status:     status,
	}
}
