package repository

import (
	"context"

	"github.com/amirasaad/finance/pkg/domain"
	"github.com/amirasaad/finance/pkg/domain/account"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates an AccountRepository using the provided *gorm.DB.
func NewAccountRepository(db *gorm.DB) *accountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, a *account.Account) error {
	row := mapAccountToRow(a)
	return mapGormError(
		r.db.WithContext(ctx).Create(&row).Error,
		domain.ErrAccountNotFound,
		domain.ErrAccountNotFound,
	)
}

func (r *accountRepository) Get(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	var row Account
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, mapGormError(err, domain.ErrAccountNotFound, domain.ErrAccountNotFound)
	}
	return mapAccountRow(&row), nil
}

func (r *accountRepository) GetForUser(ctx context.Context, userID, id uuid.UUID) (*account.Account, error) {
	var row Account
	err := r.db.WithContext(ctx).
		First(&row, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return nil, mapGormError(err, domain.ErrAccountNotFound, domain.ErrAccountNotFound)
	}
	return mapAccountRow(&row), nil
}

func (r *accountRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*account.Account, error) {
	var rows []Account
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	accounts := make([]*account.Account, 0, len(rows))
	for i := range rows {
		accounts = append(accounts, mapAccountRow(&rows[i]))
	}
	return accounts, nil
}

// Update persists the mutated balance or credit fields. The row must exist;
// ledger rules have already been enforced by the domain.
func (r *accountRepository) Update(ctx context.Context, a *account.Account) error {
	updates := map[string]any{}
	if a.Kind.IsCredit() {
		updates["credit_limit"] = a.CreditLimit
		updates["credit_available"] = a.CreditAvailable
	} else {
		updates["balance"] = a.Balance
	}
	res := r.db.WithContext(ctx).
		Model(&Account{}).
		Where("id = ?", a.ID).
		Updates(updates)
	if res.Error != nil {
		return mapGormError(res.Error, domain.ErrAccountNotFound, domain.ErrAccountNotFound)
	}
	if res.RowsAffected == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *accountRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Account{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func mapAccountToRow(a *account.Account) Account {
	row := Account{
		ID:        a.ID,
		UserID:    a.UserID,
		Kind:      string(a.Kind),
		Name:      a.Name,
		CreatedAt: a.CreatedAt,
	}
	if a.Kind.IsCredit() {
		row.CreditLimit = decimal.NewNullDecimal(a.CreditLimit)
		row.CreditAvailable = decimal.NewNullDecimal(a.CreditAvailable)
	} else {
		row.Balance = decimal.NewNullDecimal(a.Balance)
	}
	return row
}

func mapAccountRow(row *Account) *account.Account {
	a := &account.Account{
		ID:        row.ID,
		UserID:    row.UserID,
		Kind:      account.Kind(row.Kind),
		Name:      row.Name,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	if a.Kind.IsCredit() {
		if row.CreditLimit.Valid {
			a.CreditLimit = row.CreditLimit.Decimal
		}
		if row.CreditAvailable.Valid {
			a.CreditAvailable = row.CreditAvailable.Decimal
		}
	} else if row.Balance.Valid {
		a.Balance = row.Balance.Decimal
	}
	return a
}
