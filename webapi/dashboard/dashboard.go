// Package dashboard exposes the aggregated read models over HTTP.
package dashboard

import (
	"time"

	"github.com/amirasaad/finance/pkg/config"
	"github.com/amirasaad/finance/pkg/middleware"
	authsvc "github.com/amirasaad/finance/pkg/service/auth"
	dashboardsvc "github.com/amirasaad/finance/pkg/service/dashboard"
	"github.com/amirasaad/finance/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Routes registers the dashboard endpoints:
//   - GET /dashboard        : The month's activity overview.
//   - GET /dashboard/health : The financial position snapshot.
func Routes(app *fiber.App, svc *dashboardsvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	protected := middleware.JwtProtected(cfg.Auth.Jwt)
	app.Get("/dashboard", protected, MonthOverview(svc, authSvc))
	app.Get("/dashboard/health", protected, FinancialHealth(svc, authSvc))
}

// MonthOverview returns the handler for the month's activity snapshot.
func MonthOverview(svc *dashboardsvc.Service, authSvc *authsvc.Service) fiber.Handler {
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
		overview, err := svc.MonthOverview(c.UserContext(), userID, month, year)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't build dashboard", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Dashboard", overview)
	}
}

// FinancialHealth returns the handler for the position snapshot.
func FinancialHealth(svc *dashboardsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals("user").(*jwt.Token)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
		}
		userID, err := authSvc.GetCurrentUserID(token)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid user ID", err)
		}
		health, err := svc.FinancialHealth(c.UserContext(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't compute financial health", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Financial health", health)
	}
}
