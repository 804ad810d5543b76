// Package transaction implements the transaction recorder: it validates and
// records single transactions, applying their ledger effect exactly once
// inside one unit of work, and exposes the read-only listing and aggregation
// queries over the recorded history.
package transaction

import (
	"context"
	"log/slog"
	"time"

	"github.com/amirasaad/finance/pkg/config"
	"github.com/amirasaad/finance/pkg/domain"
	"github.com/amirasaad/finance/pkg/domain/budget"
	"github.com/amirasaad/finance/pkg/domain/transaction"
	"github.com/amirasaad/finance/pkg/repository"
	budgetsvc "github.com/amirasaad/finance/pkg/service/budget"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service records transactions and answers history queries.
type Service struct {
	uow     repository.UnitOfWork
	budgets *budgetsvc.Service
	alerts  *config.Alerts
	logger  *slog.Logger
}

// NewService creates a Service with the provided dependencies.
func NewService(deps config.Deps, budgets *budgetsvc.Service) *Service {
	alerts := deps.Config.Alerts
	if alerts == nil {
		alerts = &config.Alerts{IncreaseThreshold: 20, SuggestionMargin: 10}
	}
	return &Service{
		uow:     deps.Uow,
		budgets: budgets,
		alerts:  alerts,
		logger:  deps.Logger,
	}
}

// RecordInput carries a transaction to record. OccurredAt defaults to the
// current time; TransferGroupID is only set by the transfer engine.
type RecordInput struct {
	AccountID       uuid.UUID
	Kind            transaction.Kind
	Amount          decimal.Decimal
	Category        string
	Description     string
	OccurredAt      *time.Time
	TransferGroupID *uuid.UUID
}

// Record validates and records one transaction, applying its ledger effect
// exactly once. The account mutation and the transaction row commit in the
// same unit of work; any validation failure leaves both untouched. For
// expenses, the matching budget (if configured) is evaluated and the
// resulting alert returned alongside the transaction.
func (s *Service) Record(ctx context.Context, userID uuid.UUID, input RecordInput) (tx *transaction.Transaction, alert *budget.Evaluation, err error) {
	logger := s.logger.With("userID", userID, "accountID", input.AccountID, "kind", input.Kind)
	if !input.Kind.Valid() {
		return nil, nil, domain.ErrInvalidTransactionKind
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		acct, err := accounts.GetForUser(ctx, userID, input.AccountID)
		if err != nil {
			return err
		}
		switch input.Kind {
		case transaction.KindExpense:
			err = acct.ApplyExpense(input.Amount)
		case transaction.KindIncome:
			err = acct.ApplyIncome(input.Amount)
		}
		if err != nil {
			return err
		}
		if err = accounts.Update(ctx, acct); err != nil {
			return err
		}
		builder := transaction.New().
			WithUserID(userID).
			WithAccountID(acct.ID).
			WithKind(input.Kind).
			WithAmount(input.Amount).
			WithCategory(input.Category).
			WithDescription(input.Description)
		if input.OccurredAt != nil {
			builder = builder.WithOccurredAt(*input.OccurredAt)
		}
		if input.TransferGroupID != nil {
			builder = builder.WithTransferGroupID(*input.TransferGroupID)
		}
		tx, err = builder.Build()
		if err != nil {
			return err
		}
		txs, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		return txs.Create(ctx, tx)
	})
	if err != nil {
		logger.Error("Record failed", "error", err)
		return nil, nil, domain.WrapStore(err)
	}

	// The transaction is committed at this point; a failing budget lookup
	// must not turn a recorded expense into an error.
	if input.Kind == transaction.KindExpense {
		alert, err = s.budgets.Evaluate(ctx, userID, tx.Category, int(tx.OccurredAt.Month()), tx.OccurredAt.Year())
		if err != nil {
			logger.Warn("budget evaluation failed after commit", "error", err)
			alert, err = nil, nil
		}
	}
	logger.Info("Record successful", "transactionID", tx.ID)
	return tx, alert, nil
}

// List returns all of the user's transactions, newest first.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*transaction.Transaction, error) {
	txs, err := s.uow.TransactionRepository()
	if err != nil {
		return nil, domain.WrapStore(err)
	}
	list, err := txs.ListByUser(ctx, userID)
	if err != nil {
		return nil, domain.WrapStore(err)
	}
	return list, nil
}

// ListByAccount returns the transactions of one of the user's accounts,
// newest first.
func (s *Service) ListByAccount(ctx context.Context, userID, accountID uuid.UUID) (list []*transaction.Transaction, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		if _, err = accounts.GetForUser(ctx, userID, accountID); err != nil {
			return err
		}
		txs, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		list, err = txs.ListByAccount(ctx, accountID)
		return err
	})
	if err != nil {
		return nil, domain.WrapStore(err)
	}
	return list, nil
}
