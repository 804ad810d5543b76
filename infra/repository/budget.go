package repository

import (
	"context"
	"errors"

	"github.com/amirasaad/finance/pkg/domain/budget"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type budgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository creates a BudgetRepository using the provided *gorm.DB.
func NewBudgetRepository(db *gorm.DB) *budgetRepository {
	return &budgetRepository{db: db}
}

func (r *budgetRepository) Create(ctx context.Context, b *budget.Budget) error {
	row := Budget{
		ID:          b.ID,
		UserID:      b.UserID,
		Category:    b.Category,
		LimitAmount: b.LimitAmount,
		Month:       b.Month,
		Year:        b.Year,
		CreatedAt:   b.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

// Find returns the first budget matching the exact period, or nil when none
// is configured.
func (r *budgetRepository) Find(ctx context.Context, userID uuid.UUID, category string, month, year int) (*budget.Budget, error) {
	var row Budget
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND category = ? AND month = ? AND year = ?", userID, category, month, year).
		Order("created_at ASC").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapBudgetRow(&row), nil
}

func (r *budgetRepository) ListForMonth(ctx context.Context, userID uuid.UUID, month, year int) ([]*budget.Budget, error) {
	var rows []Budget
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND month = ? AND year = ?", userID, month, year).
		Order("category ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	budgets := make([]*budget.Budget, 0, len(rows))
	for i := range rows {
		budgets = append(budgets, mapBudgetRow(&rows[i]))
	}
	return budgets, nil
}

func mapBudgetRow(row *Budget) *budget.Budget {
	return &budget.Budget{
		ID:          row.ID,
		UserID:      row.UserID,
		Category:    row.Category,
		LimitAmount: row.LimitAmount,
		Month:       row.Month,
		Year:        row.Year,
		CreatedAt:   row.CreatedAt,
	}
}
