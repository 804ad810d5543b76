package repository

import (
	"context"

	"github.com/amirasaad/finance/pkg/domain/transaction"
	"github.com/amirasaad/finance/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a TransactionRepository using the provided *gorm.DB.
func NewTransactionRepository(db *gorm.DB) *transactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, t *transaction.Transaction) error {
	row := Transaction{
		ID:              t.ID,
		UserID:          t.UserID,
		AccountID:       t.AccountID,
		Kind:            string(t.Kind),
		Amount:          t.Amount,
		Category:        t.Category,
		Description:     t.Description,
		TransferGroupID: t.TransferGroupID,
		OccurredAt:      t.OccurredAt,
		CreatedAt:       t.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *transactionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*transaction.Transaction, error) {
	var rows []Transaction
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("occurred_at DESC, created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return mapTransactionRows(rows), nil
}

func (r *transactionRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*transaction.Transaction, error) {
	var rows []Transaction
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("occurred_at DESC, created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return mapTransactionRows(rows), nil
}

func (r *transactionRepository) TotalByKind(ctx context.Context, userID uuid.UUID, kind transaction.Kind) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND kind = ?", userID, string(kind)).
		Scan(&total).Error
	return total, err
}

func (r *transactionRepository) TotalByKindInMonth(ctx context.Context, userID uuid.UUID, kind transaction.Kind, month, year int) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND kind = ?", userID, string(kind)).
		Where("EXTRACT(MONTH FROM occurred_at) = ? AND EXTRACT(YEAR FROM occurred_at) = ?", month, year).
		Scan(&total).Error
	return total, err
}

func (r *transactionRepository) SumCategoryInMonth(ctx context.Context, userID uuid.UUID, category string, month, year int) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND kind = ? AND category = ?", userID, string(transaction.KindExpense), category).
		Where("EXTRACT(MONTH FROM occurred_at) = ? AND EXTRACT(YEAR FROM occurred_at) = ?", month, year).
		Scan(&total).Error
	return total, err
}

func (r *transactionRepository) CategoryTotals(ctx context.Context, userID uuid.UUID) ([]repository.CategoryTotal, error) {
	var totals []repository.CategoryTotal
	err := r.db.WithContext(ctx).
		Model(&Transaction{}).
		Select("category, COALESCE(SUM(amount), 0) AS total").
		Where("user_id = ? AND kind = ?", userID, string(transaction.KindExpense)).
		Group("category").
		Order("total DESC").
		Scan(&totals).Error
	return totals, err
}

func (r *transactionRepository) CategoryTotalsInMonth(ctx context.Context, userID uuid.UUID, month, year int) ([]repository.CategoryTotal, error) {
	var totals []repository.CategoryTotal
	err := r.db.WithContext(ctx).
		Model(&Transaction{}).
		Select("category, COALESCE(SUM(amount), 0) AS total").
		Where("user_id = ? AND kind = ?", userID, string(transaction.KindExpense)).
		Where("EXTRACT(MONTH FROM occurred_at) = ? AND EXTRACT(YEAR FROM occurred_at) = ?", month, year).
		Group("category").
		Scan(&totals).Error
	return totals, err
}

func (r *transactionRepository) MonthlyTotalsByKind(ctx context.Context, userID uuid.UUID, year int) ([]repository.MonthKindTotal, error) {
	var totals []repository.MonthKindTotal
	err := r.db.WithContext(ctx).
		Model(&Transaction{}).
		Select("EXTRACT(MONTH FROM occurred_at)::int AS month, kind, COALESCE(SUM(amount), 0) AS total").
		Where("user_id = ?", userID).
		Where("EXTRACT(YEAR FROM occurred_at) = ?", year).
		Group("month, kind").
		Scan(&totals).Error
	return totals, err
}

func (r *transactionRepository) MonthlyCategoryTotals(ctx context.Context, userID uuid.UUID, year int) ([]repository.MonthCategoryTotal, error) {
	var totals []repository.MonthCategoryTotal
	err := r.db.WithContext(ctx).
		Model(&Transaction{}).
		Select("category, EXTRACT(MONTH FROM occurred_at)::int AS month, COALESCE(SUM(amount), 0) AS total").
		Where("user_id = ? AND kind = ?", userID, string(transaction.KindExpense)).
		Where("EXTRACT(YEAR FROM occurred_at) = ?", year).
		Group("category, month").
		Scan(&totals).Error
	return totals, err
}

func mapTransactionRows(rows []Transaction) []*transaction.Transaction {
	txs := make([]*transaction.Transaction, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		txs = append(txs, &transaction.Transaction{
			ID:              row.ID,
			UserID:          row.UserID,
			AccountID:       row.AccountID,
			Kind:            transaction.Kind(row.Kind),
			Amount:          row.Amount,
			Category:        row.Category,
			Description:     row.Description,
			TransferGroupID: row.TransferGroupID,
			OccurredAt:      row.OccurredAt,
			CreatedAt:       row.CreatedAt,
		})
	}
	return txs
}
