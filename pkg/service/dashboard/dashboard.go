// Package dashboard aggregates the user's accounts, history, and budgets into
// the financial-health and month-overview read models.
package dashboard

import (
	"context"
	"log/slog"

	"github.com/amirasaad/finance/pkg/config"
	"github.com/amirasaad/finance/pkg/domain"
	"github.com/amirasaad/finance/pkg/domain/account"
	"github.com/amirasaad/finance/pkg/domain/budget"
	"github.com/amirasaad/finance/pkg/domain/transaction"
	"github.com/amirasaad/finance/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Health grades the debt ratio.
type Health string

const (
	HealthHealthy      Health = "healthy"
	HealthModerateRisk Health = "moderate_risk"
	HealthHighRisk     Health = "high_risk"
)

var (
	hundred          = decimal.NewFromInt(100)
	moderateRiskFrom = decimal.NewFromInt(30)
	highRiskFrom     = decimal.NewFromInt(60)
)

// FinancialHealth is the position snapshot across all of the user's accounts.
// DebtRatio is debt over (liquidity + investments) in percent, zero when the
// user holds no assets.
type FinancialHealth struct {
	Liquidity   decimal.Decimal `json:"liquidity"`
	Investments decimal.Decimal `json:"investments"`
	Debt        decimal.Decimal `json:"debt"`
	NetWorth    decimal.Decimal `json:"net_worth"`
	DebtRatio   decimal.Decimal `json:"debt_ratio"`
	Health      Health          `json:"health"`
}

// MonthOverview is the activity snapshot for one month.
type MonthOverview struct {
	Month          int                        `json:"month"`
	Year           int                        `json:"year"`
	Income         decimal.Decimal            `json:"income"`
	Expense        decimal.Decimal            `json:"expense"`
	Balance        decimal.Decimal            `json:"balance"`
	TopCategories  []repository.CategoryTotal `json:"top_categories"`
	BudgetsAtRisk  int                        `json:"budgets_at_risk"`
	BudgetStatuses []budget.Evaluation        `json:"budget_statuses"`
}

// Service builds dashboard read models.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// NewService creates a Service with the provided dependencies.
func NewService(deps config.Deps) *Service {
	return &Service{uow: deps.Uow, logger: deps.Logger}
}

// FinancialHealth computes the position snapshot: liquidity from debit and
// savings balances, investments from investment balances, debt from drawn
// credit, and the debt ratio grading.
func (s *Service) FinancialHealth(ctx context.Context, userID uuid.UUID) (*FinancialHealth, error) {
	repo, err := s.uow.AccountRepository()
	if err != nil {
		return nil, domain.WrapStore(err)
	}
	accounts, err := repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, domain.WrapStore(err)
	}
	return Compute(accounts), nil
}

// Compute derives the health snapshot from a set of accounts.
func Compute(accounts []*account.Account) *FinancialHealth {
	h := &FinancialHealth{}
	for _, a := range accounts {
		switch a.Kind {
		case account.KindDebit, account.KindSavings:
			h.Liquidity = h.Liquidity.Add(a.Balance)
		case account.KindInvestment:
			h.Investments = h.Investments.Add(a.Balance)
		case account.KindCredit:
			h.Debt = h.Debt.Add(a.Debt())
		}
	}
	h.NetWorth = h.Liquidity.Add(h.Investments).Sub(h.Debt)

	assets := h.Liquidity.Add(h.Investments)
	if assets.IsPositive() {
		h.DebtRatio = h.Debt.Div(assets).Mul(hundred).Round(2)
	}
	switch {
	case h.DebtRatio.LessThan(moderateRiskFrom):
		h.Health = HealthHealthy
	case h.DebtRatio.LessThan(highRiskFrom):
		h.Health = HealthModerateRisk
	default:
		h.Health = HealthHighRisk
	}
	return h
}

// MonthOverview aggregates the month's totals, category breakdown, and budget
// standing into one payload.
func (s *Service) MonthOverview(ctx context.Context, userID uuid.UUID, month, year int) (*MonthOverview, error) {
	overview := MonthOverview{Month: month, Year: year}
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		txs, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		if overview.Income, err = txs.TotalByKindInMonth(ctx, userID, transaction.KindIncome, month, year); err != nil {
			return err
		}
		if overview.Expense, err = txs.TotalByKindInMonth(ctx, userID, transaction.KindExpense, month, year); err != nil {
			return err
		}
		if overview.TopCategories, err = txs.CategoryTotalsInMonth(ctx, userID, month, year); err != nil {
			return err
		}

		budgets, err := uow.BudgetRepository()
		if err != nil {
			return err
		}
		configured, err := budgets.ListForMonth(ctx, userID, month, year)
		if err != nil {
			return err
		}
		overview.BudgetStatuses = make([]budget.Evaluation, 0, len(configured))
		for _, b := range configured {
			spent, err := txs.SumCategoryInMonth(ctx, userID, b.Category, month, year)
			if err != nil {
				return err
			}
			eval := b.Evaluate(spent)
			overview.BudgetStatuses = append(overview.BudgetStatuses, eval)
			if eval.Status != budget.StatusOK {
				overview.BudgetsAtRisk++
			}
		}
		return nil
	})
	if err != nil {
		return nil, domain.WrapStore(err)
	}
	overview.Balance = overview.Income.Sub(overview.Expense)
	return &overview, nil
}
