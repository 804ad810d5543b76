package budget

import (
	"github.com/amirasaad/finance/pkg/domain/budget"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateBudgetRequest is the budget configuration payload.
type CreateBudgetRequest struct {
	Category string          `json:"category" validate:"required,max=100"`
	Limit    decimal.Decimal `json:"limit" validate:"required"`
	Month    int             `json:"month" validate:"required,min=1,max=12"`
	Year     int             `json:"year" validate:"required,min=2000"`
}

// BudgetResponse is the public view of a budget.
type BudgetResponse struct {
	ID       uuid.UUID       `json:"id"`
	Category string          `json:"category"`
	Limit    decimal.Decimal `json:"limit"`
	Month    int             `json:"month"`
	Year     int             `json:"year"`
}

func newBudgetResponse(b *budget.Budget) BudgetResponse {
	return BudgetResponse{
		ID:       b.ID,
		Category: b.Category,
		Limit:    b.LimitAmount,
		Month:    b.Month,
		Year:     b.Year,
	}
}
