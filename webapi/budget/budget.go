// Package budget exposes budget configuration and alerts over HTTP.
package budget

import (
	"time"

	"github.com/amirasaad/finance/pkg/config"
	"github.com/amirasaad/finance/pkg/middleware"
	authsvc "github.com/amirasaad/finance/pkg/service/auth"
	budgetsvc "github.com/amirasaad/finance/pkg/service/budget"
	"github.com/amirasaad/finance/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/golang-jwt/jwt/v5"
)

// Routes registers the budget endpoints:
//   - POST /budgets        : Configure a category limit for a month.
//   - GET  /budgets/alerts : Evaluate every budget of the month.
func Routes(app *fiber.App, svc *budgetsvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	protected := middleware.JwtProtected(cfg.Auth.Jwt)
	app.Post("/budgets", protected, Create(svc, authSvc))
	app.Get("/budgets/alerts", protected, MonthAlerts(svc, authSvc))
}

// Create returns the handler configuring one category limit. A second budget
// for the same (category, month, year) conflicts.
func Create(svc *budgetsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals("user").(*jwt.Token)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
		}
		userID, err := authSvc.GetCurrentUserID(token)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid user ID", err)
		}
		input, err := common.BindAndValidate[CreateBudgetRequest](c)
		if input == nil {
			return err
		}
		b, err := svc.Create(c.UserContext(), userID, input.Category, input.Limit, input.Month, input.Year)
		if err != nil {
			log.Errorf("Failed to create budget: %v", err)
			return common.ProblemDetailsJSON(c, "Couldn't create budget", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Budget created", newBudgetResponse(b))
	}
}

// MonthAlerts returns the handler evaluating every budget configured for the
// month, OK statuses included.
func MonthAlerts(svc *budgetsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals("user").(*jwt.Token)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
		}
		userID, err := authSvc.GetCurrentUserID(token)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid user ID", err)
		}
		now := time.Now()
		month := c.QueryInt("month", int(now.Month()))
		year := c.QueryInt("year", now.Year())
		evals, err := svc.MonthAlerts(c.UserContext(), userID, month, year)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't evaluate budgets", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Budget alerts", evals)
	}
}
