// Package budget provides budget creation and on-demand evaluation of
// accumulated expense against configured category limits.
package budget

import (
	"context"
	"log/slog"

	"github.com/amirasaad/finance/pkg/config"
	"github.com/amirasaad/finance/pkg/domain"
	"github.com/amirasaad/finance/pkg/domain/budget"
	"github.com/amirasaad/finance/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service provides budget operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// NewService creates a Service with the provided dependencies.
func NewService(deps config.Deps) *Service {
	return &Service{uow: deps.Uow, logger: deps.Logger}
}

// Create configures a spending limit for (category, month, year). One budget
// per period: an existing match fails with domain.ErrBudgetAlreadyExists.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, category string, limit decimal.Decimal, month, year int) (b *budget.Budget, err error) {
	logger := s.logger.With("userID", userID, "category", category, "month", month, "year", year)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.BudgetRepository()
		if err != nil {
			return err
		}
		existing, err := repo.Find(ctx, userID, category, month, year)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrBudgetAlreadyExists
		}
		b, err = budget.New(userID, category, limit, month, year)
		if err != nil {
			return err
		}
		return repo.Create(ctx, b)
	})
	if err != nil {
		logger.Error("Create budget failed", "error", err)
		return nil, domain.WrapStore(err)
	}
	logger.Info("Budget created", "budgetID", b.ID)
	return b, nil
}

// Evaluate compares the category's expense total for the period against the
// configured budget. Returns nil when no budget exists for the exact
// (user, category, month, year).
func (s *Service) Evaluate(ctx context.Context, userID uuid.UUID, category string, month, year int) (*budget.Evaluation, error) {
	var eval *budget.Evaluation
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		budgets, err := uow.BudgetRepository()
		if err != nil {
			return err
		}
		b, err := budgets.Find(ctx, userID, category, month, year)
		if err != nil {
			return err
		}
		if b == nil {
			return nil
		}
		txs, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		spent, err := txs.SumCategoryInMonth(ctx, userID, category, month, year)
		if err != nil {
			return err
		}
		e := b.Evaluate(spent)
		eval = &e
		return nil
	})
	if err != nil {
		return nil, domain.WrapStore(err)
	}
	return eval, nil
}

// MonthAlerts evaluates every budget configured for the month, OK statuses
// included.
func (s *Service) MonthAlerts(ctx context.Context, userID uuid.UUID, month, year int) ([]budget.Evaluation, error) {
	var evals []budget.Evaluation
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		budgets, err := uow.BudgetRepository()
		if err != nil {
			return err
		}
		txs, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		configured, err := budgets.ListForMonth(ctx, userID, month, year)
		if err != nil {
			return err
		}
		evals = make([]budget.Evaluation, 0, len(configured))
		for _, b := range configured {
			spent, err := txs.SumCategoryInMonth(ctx, userID, b.Category, month, year)
			if err != nil {
				return err
			}
			evals = append(evals, b.Evaluate(spent))
		}
		return nil
	})
	if err != nil {
		return nil, domain.WrapStore(err)
	}
	return evals, nil
}
