// Package transfer exposes account-to-account transfers over HTTP.
package transfer

import (
	"github.com/amirasaad/finance/pkg/config"
	"github.com/amirasaad/finance/pkg/middleware"
	authsvc "github.com/amirasaad/finance/pkg/service/auth"
	transfersvc "github.com/amirasaad/finance/pkg/service/transfer"
	"github.com/amirasaad/finance/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/golang-jwt/jwt/v5"
)

// Routes registers the transfer endpoints:
//   - POST /transfers          : Move money between the user's own accounts.
//   - POST /transfers/external : Send money to another user's account.
func Routes(app *fiber.App, svc *transfersvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	protected := middleware.JwtProtected(cfg.Auth.Jwt)
	app.Post("/transfers", protected, Transfer(svc, authSvc, false))
	app.Post("/transfers/external", protected, Transfer(svc, authSvc, true))
}

// Transfer returns the handler moving money between accounts. With crossUser
// the destination may belong to another user; the received leg lands in that
// user's history.
func Transfer(svc *transfersvc.Service, authSvc *authsvc.Service, crossUser bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals("user").(*jwt.Token)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
		}
		userID, err := authSvc.GetCurrentUserID(token)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid user ID", err)
		}
		input, err := common.BindAndValidate[TransferRequest](c)
		if input == nil {
			return err
		}
		result, err := svc.Transfer(c.UserContext(), userID, input.toInput(crossUser))
		if err != nil {
			log.Errorf("Failed to transfer: %v", err)
			return common.ProblemDetailsJSON(c, "Couldn't transfer", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Transfer completed", result)
	}
}
