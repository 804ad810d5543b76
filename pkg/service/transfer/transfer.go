// Package transfer implements double-entry transfers between accounts: one
// expense leg on the source, one income leg on the destination, both sharing
// a transfer group id and committed in the same unit of work.
package transfer

import (
	"context"
	"log/slog"

	"github.com/amirasaad/finance/pkg/config"
	"github.com/amirasaad/finance/pkg/domain"
	"github.com/amirasaad/finance/pkg/domain/account"
	"github.com/amirasaad/finance/pkg/domain/transaction"
	"github.com/amirasaad/finance/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service moves money between accounts.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// NewService creates a Service with the provided dependencies.
func NewService(deps config.Deps) *Service {
	return &Service{uow: deps.Uow, logger: deps.Logger}
}

// Input carries a transfer request. The source must belong to the requesting
// user; CrossUser permits a destination owned by another user.
type Input struct {
	SourceAccountID uuid.UUID
	DestAccountID   uuid.UUID
	Amount          decimal.Decimal
	Description     string
	CrossUser       bool
}

// Result identifies a committed transfer.
type Result struct {
	TransferGroupID uuid.UUID       `json:"transfer_group_id"`
	Amount          decimal.Decimal `json:"amount"`
	SourceAccountID uuid.UUID       `json:"source_account_id"`
	DestAccountID   uuid.UUID       `json:"dest_account_id"`
}

// Transfer moves Amount from the source account to the destination, writing
// both legs and both account updates atomically. Credit accounts cannot be a
// source; a credit destination absorbs only up to its available headroom. The
// income leg is owned by the destination account's owner, so cross-user
// transfers land in the recipient's history.
func (s *Service) Transfer(ctx context.Context, userID uuid.UUID, input Input) (result *Result, err error) {
	logger := s.logger.With(
		"userID", userID,
		"sourceAccountID", input.SourceAccountID,
		"destAccountID", input.DestAccountID,
	)
	if input.SourceAccountID == input.DestAccountID {
		return nil, domain.ErrSameAccount
	}
	if !input.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		source, err := accounts.GetForUser(ctx, userID, input.SourceAccountID)
		if err != nil {
			return err
		}
		dest, err := s.destination(ctx, accounts, userID, input)
		if err != nil {
			return err
		}
		if source.Kind.IsCredit() {
			return domain.ErrSourceIsCredit
		}
		if err = source.ApplyExpense(input.Amount); err != nil {
			return err
		}
		if err = dest.ApplyIncome(input.Amount); err != nil {
			return err
		}
		if err = accounts.Update(ctx, source); err != nil {
			return err
		}
		if err = accounts.Update(ctx, dest); err != nil {
			return err
		}

		groupID := uuid.New()
		sentDescription, receivedDescription := descriptions(input.Description)
		expense, err := transaction.New().
			WithUserID(userID).
			WithAccountID(source.ID).
			WithKind(transaction.KindExpense).
			WithAmount(input.Amount).
			WithCategory(transaction.CategoryTransfer).
			WithDescription(sentDescription).
			WithTransferGroupID(groupID).
			Build()
		if err != nil {
			return err
		}
		income, err := transaction.New().
			WithUserID(dest.UserID).
			WithAccountID(dest.ID).
			WithKind(transaction.KindIncome).
			WithAmount(input.Amount).
			WithCategory(transaction.CategoryTransfer).
			WithDescription(receivedDescription).
			WithTransferGroupID(groupID).
			WithOccurredAt(expense.OccurredAt).
			Build()
		if err != nil {
			return err
		}

		txs, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		if err = txs.Create(ctx, expense); err != nil {
			return err
		}
		if err = txs.Create(ctx, income); err != nil {
			return err
		}
		result = &Result{
			TransferGroupID: groupID,
			Amount:          input.Amount,
			SourceAccountID: source.ID,
			DestAccountID:   dest.ID,
		}
		return nil
	})
	if err != nil {
		logger.Error("Transfer failed", "error", err)
		return nil, domain.WrapStore(err)
	}
	logger.Info("Transfer successful", "transferGroupID", result.TransferGroupID)
	return result, nil
}

// destination resolves the receiving account. Same-user transfers look it up
// through the ownership scope; cross-user transfers look it up directly.
func (s *Service) destination(ctx context.Context, accounts repository.AccountRepository, userID uuid.UUID, input Input) (*account.Account, error) {
	if input.CrossUser {
		return accounts.Get(ctx, input.DestAccountID)
	}
	return accounts.GetForUser(ctx, userID, input.DestAccountID)
}

func descriptions(base string) (sent, received string) {
	if base == "" {
		return "Transfer sent", "Transfer received"
	}
	return base, base
}
