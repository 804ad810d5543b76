// Package transaction exposes transaction recording, history, and the
// analysis queries over HTTP.
package transaction

import (
	"time"

	"github.com/amirasaad/finance/pkg/config"
	"github.com/amirasaad/finance/pkg/middleware"
	authsvc "github.com/amirasaad/finance/pkg/service/auth"
	txsvc "github.com/amirasaad/finance/pkg/service/transaction"
	"github.com/amirasaad/finance/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Routes registers the transaction endpoints:
//   - POST /transactions             : Record an income or expense.
//   - GET  /transactions             : List history; ?grouped=true collapses transfers.
//   - GET  /transactions/account/:id : List one account's history.
//   - GET  /transactions/summary     : All-time totals.
//   - GET  /transactions/summary/monthly       : One month's totals.
//   - GET  /transactions/comparison/annual     : Twelve-month grid for a year.
//   - GET  /transactions/stats/categories      : Expense share per category.
//   - GET  /transactions/comparison/categories : Month-over-month per category.
//   - GET  /transactions/alerts/categories     : New and sharply increased categories.
//   - GET  /transactions/budget/suggested      : Limits derived from historic spending.
func Routes(app *fiber.App, svc *txsvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	protected := middleware.JwtProtected(cfg.Auth.Jwt)
	app.Post("/transactions", protected, Record(svc, authSvc))
	app.Get("/transactions", protected, List(svc, authSvc))
	app.Get("/transactions/account/:id", protected, ListByAccount(svc, authSvc))
	app.Get("/transactions/summary", protected, GetSummary(svc, authSvc))
	app.Get("/transactions/summary/monthly", protected, MonthlySummary(svc, authSvc))
	app.Get("/transactions/comparison/annual", protected, AnnualComparison(svc, authSvc))
	app.Get("/transactions/stats/categories", protected, CategoryStats(svc, authSvc))
	app.Get("/transactions/comparison/categories", protected, CategoryComparison(svc, authSvc))
	app.Get("/transactions/alerts/categories", protected, CategoryAlerts(svc, authSvc))
	app.Get("/transactions/budget/suggested", protected, SuggestedBudgets(svc, authSvc))
}

// currentUser resolves the authenticated user id or writes the problem
// response and reports false.
func currentUser(c *fiber.Ctx, authSvc *authsvc.Service) (uuid.UUID, bool) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		_ = common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
		return uuid.Nil, false
	}
	userID, err := authSvc.GetCurrentUserID(token)
	if err != nil {
		_ = common.ProblemDetailsJSON(c, "Invalid user ID", err)
		return uuid.Nil, false
	}
	return userID, true
}

// period reads month/year query parameters, defaulting to the current month.
func period(c *fiber.Ctx) (month, year int) {
	now := time.Now()
	month = c.QueryInt("month", int(now.Month()))
	year = c.QueryInt("year", now.Year())
	return month, year
}

// Record returns the handler recording one income or expense. The response
// includes a budget alert when the expense pushes the category past a
// configured threshold.
func Record(svc *txsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUser(c, authSvc)
		if !ok {
			return nil
		}
		input, err := common.BindAndValidate[RecordRequest](c)
		if input == nil {
			return err
		}
		recordInput, err := input.toInput()
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid request body", err, fiber.StatusBadRequest)
		}
		tx, alert, err := svc.Record(c.UserContext(), userID, recordInput)
		if err != nil {
			log.Errorf("Failed to record transaction: %v", err)
			return common.ProblemDetailsJSON(c, "Couldn't record transaction", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Transaction recorded", RecordResponse{
			Transaction: newTransactionResponse(tx),
			BudgetAlert: alert,
		})
	}
}

// List returns the handler listing the user's history. With ?grouped=true
// transfer pairs collapse into one directional entry each.
func List(svc *txsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUser(c, authSvc)
		if !ok {
			return nil
		}
		if c.QueryBool("grouped") {
			entries, err := svc.ListGrouped(c.UserContext(), userID)
			if err != nil {
				return common.ProblemDetailsJSON(c, "Couldn't list transactions", err)
			}
			return common.SuccessResponseJSON(c, fiber.StatusOK, "Transactions", entries)
		}
		list, err := svc.List(c.UserContext(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list transactions", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transactions", newTransactionResponses(list))
	}
}

// ListByAccount returns the handler listing one account's history.
func ListByAccount(svc *txsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUser(c, authSvc)
		if !ok {
			return nil
		}
		accountID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account ID", err, fiber.StatusBadRequest)
		}
		list, err := svc.ListByAccount(c.UserContext(), userID, accountID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list transactions", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transactions", newTransactionResponses(list))
	}
}

// GetSummary returns the handler for the all-time totals.
func GetSummary(svc *txsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUser(c, authSvc)
		if !ok {
			return nil
		}
		summary, err := svc.GetSummary(c.UserContext(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't compute summary", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Summary", summary)
	}
}

// MonthlySummary returns the handler for one month's totals; month and year
// default to the current period.
func MonthlySummary(svc *txsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUser(c, authSvc)
		if !ok {
			return nil
		}
		month, year := period(c)
		summary, err := svc.MonthlySummary(c.UserContext(), userID, month, year)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't compute summary", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Monthly summary", summary)
	}
}

// AnnualComparison returns the handler for the twelve-month grid.
func AnnualComparison(svc *txsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUser(c, authSvc)
		if !ok {
			return nil
		}
		year := c.QueryInt("year", time.Now().Year())
		months, err := svc.AnnualComparison(c.UserContext(), userID, year)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't compute comparison", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Annual comparison", months)
	}
}

// CategoryStats returns the handler for per-category expense shares.
func CategoryStats(svc *txsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUser(c, authSvc)
		if !ok {
			return nil
		}
		stats, err := svc.CategoryStats(c.UserContext(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't compute statistics", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Category statistics", stats)
	}
}

// CategoryComparison returns the handler comparing each category against the
// previous month.
func CategoryComparison(svc *txsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUser(c, authSvc)
		if !ok {
			return nil
		}
		month, year := period(c)
		comparisons, err := svc.CategoryComparison(c.UserContext(), userID, month, year)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't compute comparison", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Category comparison", comparisons)
	}
}

// CategoryAlerts returns the handler flagging anomalous categories for the
// month. An optional ?threshold= overrides the configured variation limit.
func CategoryAlerts(svc *txsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUser(c, authSvc)
		if !ok {
			return nil
		}
		month, year := period(c)
		threshold := c.QueryFloat("threshold", 0)
		alerts, err := svc.CategoryAlerts(c.UserContext(), userID, month, year, threshold)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't compute alerts", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Category alerts", alerts)
	}
}

// SuggestedBudgets returns the handler suggesting limits from the year's
// spending. An optional ?margin= overrides the configured safety margin.
func SuggestedBudgets(svc *txsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUser(c, authSvc)
		if !ok {
			return nil
		}
		year := c.QueryInt("year", time.Now().Year())
		margin := c.QueryFloat("margin", 0)
		suggestions, err := svc.SuggestedBudgets(c.UserContext(), userID, year, margin)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't compute suggestions", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Suggested budgets", suggestions)
	}
}
