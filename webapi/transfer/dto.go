package transfer

import (
	transfersvc "github.com/amirasaad/finance/pkg/service/transfer"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransferRequest is the transfer payload.
type TransferRequest struct {
	SourceAccountID uuid.UUID       `json:"source_account_id" validate:"required"`
	DestAccountID   uuid.UUID       `json:"dest_account_id" validate:"required"`
	Amount          decimal.Decimal `json:"amount" validate:"required"`
	Description     string          `json:"description" validate:"max=255"`
}

func (r TransferRequest) toInput(crossUser bool) transfersvc.Input {
	return transfersvc.Input{
		SourceAccountID: r.SourceAccountID,
		DestAccountID:   r.DestAccountID,
		Amount:          r.Amount,
		Description:     r.Description,
		CrossUser:       crossUser,
	}
}
