package transaction

import (
	"time"

	"github.com/amirasaad/finance/pkg/domain/budget"
	"github.com/amirasaad/finance/pkg/domain/transaction"
	txsvc "github.com/amirasaad/finance/pkg/service/transaction"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecordRequest is the payload recording one income or expense. OccurredAt is
// RFC 3339 and defaults to the current time.
type RecordRequest struct {
	AccountID   uuid.UUID       `json:"account_id" validate:"required"`
	Kind        string          `json:"kind" validate:"required,oneof=income expense"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Category    string          `json:"category" validate:"required,max=100"`
	Description string          `json:"description" validate:"max=255"`
	OccurredAt  string          `json:"occurred_at"`
}

func (r RecordRequest) toInput() (txsvc.RecordInput, error) {
	input := txsvc.RecordInput{
		AccountID:   r.AccountID,
		Kind:        transaction.Kind(r.Kind),
		Amount:      r.Amount,
		Category:    r.Category,
		Description: r.Description,
	}
	if r.OccurredAt != "" {
		occurredAt, err := time.Parse(time.RFC3339, r.OccurredAt)
		if err != nil {
			return txsvc.RecordInput{}, err
		}
		input.OccurredAt = &occurredAt
	}
	return input, nil
}

// TransactionResponse is the public view of a transaction.
type TransactionResponse struct {
	ID              uuid.UUID       `json:"id"`
	AccountID       uuid.UUID       `json:"account_id"`
	Kind            string          `json:"kind"`
	Amount          decimal.Decimal `json:"amount"`
	Category        string          `json:"category"`
	Description     string          `json:"description,omitempty"`
	TransferGroupID *uuid.UUID      `json:"transfer_group_id,omitempty"`
	OccurredAt      time.Time       `json:"occurred_at"`
}

// RecordResponse pairs the recorded transaction with the budget alert the
// expense triggered, if any.
type RecordResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	BudgetAlert *budget.Evaluation  `json:"budget_alert,omitempty"`
}

func newTransactionResponse(t *transaction.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:              t.ID,
		AccountID:       t.AccountID,
		Kind:            string(t.Kind),
		Amount:          t.Amount,
		Category:        t.Category,
		Description:     t.Description,
		TransferGroupID: t.TransferGroupID,
		OccurredAt:      t.OccurredAt,
	}
}

func newTransactionResponses(list []*transaction.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(list))
	for _, t := range list {
		out = append(out, newTransactionResponse(t))
	}
	return out
}
