package transaction

import (
	"context"
	"sort"

	"github.com/amirasaad/finance/pkg/domain"
	"github.com/amirasaad/finance/pkg/domain/transaction"
	"github.com/amirasaad/finance/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Summary is the all-time income/expense aggregate for a user.
type Summary struct {
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	Balance      decimal.Decimal `json:"balance"`
	AccountCount int64           `json:"account_count"`
}

// PeriodSummary is the income/expense aggregate for one month.
type PeriodSummary struct {
	Month   int             `json:"month"`
	Year    int             `json:"year"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

// CategoryStat is a category's share of the all-time expense total.
type CategoryStat struct {
	Category   string          `json:"category"`
	Total      decimal.Decimal `json:"total"`
	Percentage decimal.Decimal `json:"percentage"`
}

// CategoryComparison compares one category's expense across two consecutive
// months. Variation is nil when the prior month had no expense, to avoid a
// division by zero.
type CategoryComparison struct {
	Category  string           `json:"category"`
	Current   decimal.Decimal  `json:"current"`
	Previous  decimal.Decimal  `json:"previous"`
	Diff      decimal.Decimal  `json:"difference"`
	Variation *decimal.Decimal `json:"variation_percent"`
}

// AlertType classifies a category spending anomaly.
type AlertType string

const (
	AlertNewExpense          AlertType = "new_expense"
	AlertSignificantIncrease AlertType = "significant_increase"
)

// CategoryAlert flags an anomalous category for one month.
type CategoryAlert struct {
	Category  string           `json:"category"`
	Type      AlertType        `json:"type"`
	Variation *decimal.Decimal `json:"variation_percent"`
}

// SuggestedBudget is a forward-looking limit derived from historic spending.
type SuggestedBudget struct {
	Category       string          `json:"category"`
	MonthlyAverage decimal.Decimal `json:"monthly_average"`
	Suggested      decimal.Decimal `json:"suggested"`
}

// GetSummary returns the user's all-time totals and account count.
func (s *Service) GetSummary(ctx context.Context, userID uuid.UUID) (*Summary, error) {
	var summary Summary
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		txs, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		if summary.TotalIncome, err = txs.TotalByKind(ctx, userID, transaction.KindIncome); err != nil {
			return err
		}
		if summary.TotalExpense, err = txs.TotalByKind(ctx, userID, transaction.KindExpense); err != nil {
			return err
		}
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		summary.AccountCount, err = accounts.CountByUser(ctx, userID)
		return err
	})
	if err != nil {
		return nil, domain.WrapStore(err)
	}
	summary.Balance = summary.TotalIncome.Sub(summary.TotalExpense)
	return &summary, nil
}

// MonthlySummary returns the totals for one month.
func (s *Service) MonthlySummary(ctx context.Context, userID uuid.UUID, month, year int) (*PeriodSummary, error) {
	summary := PeriodSummary{Month: month, Year: year}
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		txs, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		if summary.Income, err = txs.TotalByKindInMonth(ctx, userID, transaction.KindIncome, month, year); err != nil {
			return err
		}
		summary.Expense, err = txs.TotalByKindInMonth(ctx, userID, transaction.KindExpense, month, year)
		return err
	})
	if err != nil {
		return nil, domain.WrapStore(err)
	}
	summary.Balance = summary.Income.Sub(summary.Expense)
	return &summary, nil
}

// AnnualComparison returns one summary per month of the year, zero-filled
// for months without activity.
func (s *Service) AnnualComparison(ctx context.Context, userID uuid.UUID, year int) ([]PeriodSummary, error) {
	txs, err := s.uow.TransactionRepository()
	if err != nil {
		return nil, domain.WrapStore(err)
	}
	totals, err := txs.MonthlyTotalsByKind(ctx, userID, year)
	if err != nil {
		return nil, domain.WrapStore(err)
	}

	months := make([]PeriodSummary, 12)
	for i := range months {
		months[i] = PeriodSummary{Month: i + 1, Year: year}
	}
	for _, t := range totals {
		if t.Month < 1 || t.Month > 12 {
			continue
		}
		m := &months[t.Month-1]
		switch t.Kind {
		case transaction.KindIncome:
			m.Income = t.Total
		case transaction.KindExpense:
			m.Expense = t.Total
		}
	}
	for i := range months {
		months[i].Balance = months[i].Income.Sub(months[i].Expense)
	}
	return months, nil
}

// CategoryStats returns all-time expense totals per category with each
// category's share of the grand total, largest first.
func (s *Service) CategoryStats(ctx context.Context, userID uuid.UUID) ([]CategoryStat, error) {
	txs, err := s.uow.TransactionRepository()
	if err != nil {
		return nil, domain.WrapStore(err)
	}
	totals, err := txs.CategoryTotals(ctx, userID)
	if err != nil {
		return nil, domain.WrapStore(err)
	}

	grandTotal := decimal.Zero
	for _, t := range totals {
		grandTotal = grandTotal.Add(t.Total)
	}
	stats := make([]CategoryStat, 0, len(totals))
	for _, t := range totals {
		percentage := decimal.Zero
		if grandTotal.IsPositive() {
			percentage = t.Total.Div(grandTotal).Mul(hundred).Round(2)
		}
		stats = append(stats, CategoryStat{
			Category:   t.Category,
			Total:      t.Total,
			Percentage: percentage,
		})
	}
	return stats, nil
}

// CategoryComparison compares each category's expense in (month, year)
// against the previous month. Categories present in either month appear; the
// variation is computed per category and nil when the prior total is zero.
func (s *Service) CategoryComparison(ctx context.Context, userID uuid.UUID, month, year int) ([]CategoryComparison, error) {
	current, previous, err := s.adjacentMonths(ctx, userID, month, year)
	if err != nil {
		return nil, err
	}

	comparisons := make([]CategoryComparison, 0, len(current)+len(previous))
	for _, category := range unionCategories(current, previous) {
		cur, prev := current[category], previous[category]
		comparisons = append(comparisons, CategoryComparison{
			Category:  category,
			Current:   cur,
			Previous:  prev,
			Diff:      cur.Sub(prev),
			Variation: variation(cur, prev),
		})
	}
	return comparisons, nil
}

// CategoryAlerts flags categories whose spending is anomalous for the month:
// new_expense when the prior month had none, significant_increase when the
// variation exceeds the threshold (percent; <= 0 selects the configured
// default).
func (s *Service) CategoryAlerts(ctx context.Context, userID uuid.UUID, month, year int, threshold float64) ([]CategoryAlert, error) {
	if threshold <= 0 {
		threshold = s.alerts.IncreaseThreshold
	}
	limit := decimal.NewFromFloat(threshold)

	current, previous, err := s.adjacentMonths(ctx, userID, month, year)
	if err != nil {
		return nil, err
	}

	alerts := []CategoryAlert{}
	for _, category := range unionCategories(current, previous) {
		cur, prev := current[category], previous[category]
		if cur.IsPositive() && prev.IsZero() {
			alerts = append(alerts, CategoryAlert{Category: category, Type: AlertNewExpense})
			continue
		}
		if v := variation(cur, prev); v != nil && v.GreaterThan(limit) {
			alerts = append(alerts, CategoryAlert{Category: category, Type: AlertSignificantIncrease, Variation: v})
		}
	}
	return alerts, nil
}

// SuggestedBudgets averages each category's monthly expense totals for the
// year and scales by (1 + margin/100) to produce a forward-looking limit
// (margin in percent; <= 0 selects the configured default).
func (s *Service) SuggestedBudgets(ctx context.Context, userID uuid.UUID, year int, margin float64) ([]SuggestedBudget, error) {
	if margin <= 0 {
		margin = s.alerts.SuggestionMargin
	}
	factor := decimal.NewFromInt(1).Add(decimal.NewFromFloat(margin).Div(hundred))

	txs, err := s.uow.TransactionRepository()
	if err != nil {
		return nil, domain.WrapStore(err)
	}
	totals, err := txs.MonthlyCategoryTotals(ctx, userID, year)
	if err != nil {
		return nil, domain.WrapStore(err)
	}

	sums := map[string]decimal.Decimal{}
	counts := map[string]int64{}
	var categories []string
	for _, t := range totals {
		if _, ok := sums[t.Category]; !ok {
			categories = append(categories, t.Category)
		}
		sums[t.Category] = sums[t.Category].Add(t.Total)
		counts[t.Category]++
	}
	sort.Strings(categories)

	suggestions := make([]SuggestedBudget, 0, len(categories))
	for _, category := range categories {
		average := sums[category].Div(decimal.NewFromInt(counts[category])).Round(2)
		suggestions = append(suggestions, SuggestedBudget{
			Category:       category,
			MonthlyAverage: average,
			Suggested:      average.Mul(factor).Round(2),
		})
	}
	return suggestions, nil
}

// adjacentMonths loads the per-category expense totals for (month, year) and
// the month before it, rolling over year boundaries.
func (s *Service) adjacentMonths(ctx context.Context, userID uuid.UUID, month, year int) (current, previous map[string]decimal.Decimal, err error) {
	prevMonth, prevYear := month-1, year
	if month == 1 {
		prevMonth, prevYear = 12, year-1
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		txs, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		currentTotals, err := txs.CategoryTotalsInMonth(ctx, userID, month, year)
		if err != nil {
			return err
		}
		previousTotals, err := txs.CategoryTotalsInMonth(ctx, userID, prevMonth, prevYear)
		if err != nil {
			return err
		}
		current = totalsByCategory(currentTotals)
		previous = totalsByCategory(previousTotals)
		return nil
	})
	if err != nil {
		return nil, nil, domain.WrapStore(err)
	}
	return current, previous, nil
}

func totalsByCategory(totals []repository.CategoryTotal) map[string]decimal.Decimal {
	m := make(map[string]decimal.Decimal, len(totals))
	for _, t := range totals {
		m[t.Category] = t.Total
	}
	return m
}

func unionCategories(current, previous map[string]decimal.Decimal) []string {
	seen := make(map[string]bool, len(current)+len(previous))
	var categories []string
	for c := range current {
		seen[c] = true
		categories = append(categories, c)
	}
	for c := range previous {
		if !seen[c] {
			categories = append(categories, c)
		}
	}
	sort.Strings(categories)
	return categories
}

// variation returns ((current-previous)/previous)*100 rounded to two
// decimals, or nil when previous is zero.
func variation(current, previous decimal.Decimal) *decimal.Decimal {
	if !previous.IsPositive() {
		return nil
	}
	v := current.Sub(previous).Div(previous).Mul(hundred).Round(2)
	return &v
}
