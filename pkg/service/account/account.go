// Package account provides business logic for creating and reading accounts.
// Accounts are only ever mutated by the transaction recorder and the transfer
// engine; this service covers the remaining lifecycle.
package account

import (
	"context"
	"log/slog"

	"github.com/amirasaad/finance/pkg/config"
	"github.com/amirasaad/finance/pkg/domain"
	"github.com/amirasaad/finance/pkg/domain/account"
	"github.com/amirasaad/finance/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service provides account creation and lookup.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// NewService creates a Service with the provided dependencies.
func NewService(deps config.Deps) *Service {
	return &Service{uow: deps.Uow, logger: deps.Logger}
}

// CreateInput carries the kind-specific creation payload. Balance applies to
// non-credit kinds, CreditLimit to the credit kind; the builder rejects
// mixtures.
type CreateInput struct {
	Kind        account.Kind
	Name        string
	Balance     decimal.Decimal
	CreditLimit decimal.Decimal
}

// CreateAccount creates an account for the user in a transaction.
func (s *Service) CreateAccount(ctx context.Context, userID uuid.UUID, input CreateInput) (a *account.Account, err error) {
	logger := s.logger.With("userID", userID, "kind", input.Kind)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		a, err = account.New().
			WithUserID(userID).
			WithKind(input.Kind).
			WithName(input.Name).
			WithBalance(input.Balance).
			WithCreditLimit(input.CreditLimit).
			Build()
		if err != nil {
			return err
		}
		return repo.Create(ctx, a)
	})
	if err != nil {
		logger.Error("CreateAccount failed", "error", err)
		return nil, domain.WrapStore(err)
	}
	logger.Info("CreateAccount successful", "accountID", a.ID)
	return a, nil
}

// GetAccount returns one of the user's accounts.
func (s *Service) GetAccount(ctx context.Context, userID, accountID uuid.UUID) (*account.Account, error) {
	repo, err := s.uow.AccountRepository()
	if err != nil {
		return nil, domain.WrapStore(err)
	}
	a, err := repo.GetForUser(ctx, userID, accountID)
	if err != nil {
		return nil, domain.WrapStore(err)
	}
	return a, nil
}

// ListAccounts returns all accounts of the user.
func (s *Service) ListAccounts(ctx context.Context, userID uuid.UUID) ([]*account.Account, error) {
	repo, err := s.uow.AccountRepository()
	if err != nil {
		return nil, domain.WrapStore(err)
	}
	accounts, err := repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, domain.WrapStore(err)
	}
	return accounts, nil
}
