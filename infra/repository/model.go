package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// User is the users table row.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"type:varchar(100)"`
	Email        string    `gorm:"type:varchar(120);uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for the User model.
func (User) TableName() string { return "users" }

// Account is the accounts table row. Balance is used by non-credit kinds;
// the credit columns are null for them and vice versa.
type Account struct {
	ID              uuid.UUID           `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID           `gorm:"type:uuid;not null;index"`
	Kind            string              `gorm:"type:varchar(16);not null"`
	Name            string              `gorm:"type:varchar(100)"`
	Balance         decimal.NullDecimal `gorm:"type:numeric(14,2)"`
	CreditLimit     decimal.NullDecimal `gorm:"type:numeric(14,2)"`
	CreditAvailable decimal.NullDecimal `gorm:"type:numeric(14,2)"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName specifies the table name for the Account model.
func (Account) TableName() string { return "accounts" }

// Transaction is the transactions table row. Rows are insert-only.
type Transaction struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	AccountID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Kind            string          `gorm:"type:varchar(8);not null"`
	Amount          decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Category        string          `gorm:"type:varchar(100);not null"`
	Description     string
	TransferGroupID *uuid.UUID `gorm:"type:uuid;index"`
	OccurredAt      time.Time  `gorm:"not null;index"`
	CreatedAt       time.Time
}

// TableName specifies the table name for the Transaction model.
func (Transaction) TableName() string { return "transactions" }

// Budget is the budgets table row.
type Budget struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Category    string          `gorm:"type:varchar(100);not null"`
	LimitAmount decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Month       int             `gorm:"not null"`
	Year        int             `gorm:"not null"`
	CreatedAt   time.Time
}

// TableName specifies the table name for the Budget model.
func (Budget) TableName() string { return "budgets" }

// Migrate creates or updates the four logical tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&User{}, &Account{}, &Transaction{}, &Budget{})
}
