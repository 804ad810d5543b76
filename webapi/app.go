// Package webapi assembles the Fiber application: global middleware, the
// error envelope, and every route group.
package webapi

import (
	"github.com/amirasaad/finance/pkg/app"
	"github.com/amirasaad/finance/webapi/account"
	"github.com/amirasaad/finance/webapi/budget"
	"github.com/amirasaad/finance/webapi/common"
	"github.com/amirasaad/finance/webapi/dashboard"
	"github.com/amirasaad/finance/webapi/transaction"
	"github.com/amirasaad/finance/webapi/transfer"
	"github.com/amirasaad/finance/webapi/user"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// SetupApp builds the Fiber app and registers all routes.
func SetupApp(a *app.App) *fiber.App {
	cfg := a.Deps.Config
	fiberApp := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
			return common.ProblemDetailsJSON(c, "Internal Server Error", nil, err.Error(), status)
		},
	})

	fiberApp.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimit.MaxRequests,
		Expiration: cfg.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(c, "Too Many Requests", nil, "Rate limit exceeded", fiber.StatusTooManyRequests)
		},
	}))
	fiberApp.Use(recover.New())

	fiberApp.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("App is working! 🚀")
	})

	user.Routes(fiberApp, a.UserSvc, a.AuthSvc)
	account.Routes(fiberApp, a.AccountSvc, a.AuthSvc, cfg)
	transaction.Routes(fiberApp, a.TransactionSvc, a.AuthSvc, cfg)
	transfer.Routes(fiberApp, a.TransferSvc, a.AuthSvc, cfg)
	budget.Routes(fiberApp, a.BudgetSvc, a.AuthSvc, cfg)
	dashboard.Routes(fiberApp, a.DashboardSvc, a.AuthSvc, cfg)

	return fiberApp
}
