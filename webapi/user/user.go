// Package user exposes registration and login over HTTP.
package user

import (
	authsvc "github.com/amirasaad/finance/pkg/service/auth"
	usersvc "github.com/amirasaad/finance/pkg/service/user"
	"github.com/amirasaad/finance/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// Routes registers the user endpoints:
//   - POST /users/register : Create a user account.
//   - POST /users/login    : Exchange credentials for a bearer token.
func Routes(app *fiber.App, userSvc *usersvc.Service, authSvc *authsvc.Service) {
	app.Post("/users/register", Register(userSvc))
	app.Post("/users/login", Login(authSvc))
}

// Register returns the handler creating a user from a registration payload.
func Register(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[RegisterRequest](c)
		if input == nil {
			return err
		}
		u, err := userSvc.Register(c.UserContext(), input.Name, input.Email, input.Password)
		if err != nil {
			log.Errorf("Failed to register user: %v", err)
			return common.ProblemDetailsJSON(c, "Couldn't create user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "User created", newUserResponse(u))
	}
}

// Login returns the handler verifying credentials and minting a token.
func Login(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[LoginRequest](c)
		if input == nil {
			return err
		}
		u, err := authSvc.Login(c.UserContext(), input.Email, input.Password)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid credentials", err)
		}
		token, err := authSvc.GenerateToken(u)
		if err != nil {
			log.Errorf("Failed to generate token: %v", err)
			return common.ProblemDetailsJSON(c, "Couldn't generate token", err, fiber.StatusInternalServerError)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Login successful", LoginResponse{
			Token: token,
			User:  newUserResponse(u),
		})
	}
}
