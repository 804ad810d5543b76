package account

import (
	"time"

	"github.com/amirasaad/finance/pkg/domain/account"
	accountsvc "github.com/amirasaad/finance/pkg/service/account"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest is the account creation payload. Balance applies to
// debit, savings, and investment accounts; credit accounts take CreditLimit
// instead.
type CreateAccountRequest struct {
	Kind        string          `json:"kind" validate:"required,oneof=debit savings investment credit"`
	Name        string          `json:"name" validate:"required,max=100"`
	Balance     decimal.Decimal `json:"balance"`
	CreditLimit decimal.Decimal `json:"credit_limit"`
}

func (r CreateAccountRequest) toInput() accountsvc.CreateInput {
	return accountsvc.CreateInput{
		Kind:        account.Kind(r.Kind),
		Name:        r.Name,
		Balance:     r.Balance,
		CreditLimit: r.CreditLimit,
	}
}

// AccountResponse is the public view of an account. Credit fields are only
// present on credit accounts.
type AccountResponse struct {
	ID              uuid.UUID        `json:"id"`
	Kind            string           `json:"kind"`
	Name            string           `json:"name"`
	Balance         *decimal.Decimal `json:"balance,omitempty"`
	CreditLimit     *decimal.Decimal `json:"credit_limit,omitempty"`
	CreditAvailable *decimal.Decimal `json:"credit_available,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
}

func newAccountResponse(a *account.Account) AccountResponse {
	resp := AccountResponse{
		ID:        a.ID,
		Kind:      string(a.Kind),
		Name:      a.Name,
		CreatedAt: a.CreatedAt,
	}
	if a.Kind.IsCredit() {
		limit, available := a.CreditLimit, a.CreditAvailable
		resp.CreditLimit = &limit
		resp.CreditAvailable = &available
	} else {
		balance := a.Balance
		resp.Balance = &balance
	}
	return resp
}
