// Package account exposes account creation and lookup over HTTP.
package account

import (
	"github.com/amirasaad/finance/pkg/config"
	"github.com/amirasaad/finance/pkg/middleware"
	accountsvc "github.com/amirasaad/finance/pkg/service/account"
	authsvc "github.com/amirasaad/finance/pkg/service/auth"
	"github.com/amirasaad/finance/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Routes registers the account endpoints:
//   - POST /accounts     : Create an account for the authenticated user.
//   - GET  /accounts     : List the user's accounts.
//   - GET  /accounts/:id : Fetch one account.
func Routes(app *fiber.App, accountSvc *accountsvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	jwtCfg := cfg.Auth.Jwt
	app.Post("/accounts", middleware.JwtProtected(jwtCfg), CreateAccount(accountSvc, authSvc))
	app.Get("/accounts", middleware.JwtProtected(jwtCfg), ListAccounts(accountSvc, authSvc))
	app.Get("/accounts/:id", middleware.JwtProtected(jwtCfg), GetAccount(accountSvc, authSvc))
}

// CreateAccount returns the handler creating an account of the requested
// kind. Credit accounts take a credit limit, the rest an opening balance; the
// domain rejects mixtures.
func CreateAccount(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals("user").(*jwt.Token)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
		}
		userID, err := authSvc.GetCurrentUserID(token)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid user ID", err)
		}
		input, err := common.BindAndValidate[CreateAccountRequest](c)
		if input == nil {
			return err
		}
		a, err := accountSvc.CreateAccount(c.UserContext(), userID, input.toInput())
		if err != nil {
			log.Errorf("Failed to create account: %v", err)
			return common.ProblemDetailsJSON(c, "Couldn't create account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Account created", newAccountResponse(a))
	}
}

// ListAccounts returns the handler listing the user's accounts.
func ListAccounts(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals("user").(*jwt.Token)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
		}
		userID, err := authSvc.GetCurrentUserID(token)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid user ID", err)
		}
		accounts, err := accountSvc.ListAccounts(c.UserContext(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list accounts", err)
		}
		out := make([]AccountResponse, 0, len(accounts))
		for _, a := range accounts {
			out = append(out, newAccountResponse(a))
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Accounts", out)
	}
}

// GetAccount returns the handler fetching one of the user's accounts.
func GetAccount(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals("user").(*jwt.Token)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
		}
		userID, err := authSvc.GetCurrentUserID(token)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid user ID", err)
		}
		accountID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account ID", err, fiber.StatusBadRequest)
		}
		a, err := accountSvc.GetAccount(c.UserContext(), userID, accountID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't fetch account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account", newAccountResponse(a))
	}
}
