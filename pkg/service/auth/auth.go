// Package auth provides credential verification and JWT issuance.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/amirasaad/finance/pkg/config"
	"github.com/amirasaad/finance/pkg/domain"
	"github.com/amirasaad/finance/pkg/domain/user"
	"github.com/amirasaad/finance/pkg/repository"
	"github.com/amirasaad/finance/pkg/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Service authenticates users and mints tokens.
type Service struct {
	uow    repository.UnitOfWork
	cfg    *config.Jwt
	logger *slog.Logger
}

// NewService creates a Service with the provided dependencies.
func NewService(deps config.Deps) *Service {
	var cfg *config.Jwt
	if deps.Config != nil && deps.Config.Auth != nil {
		cfg = deps.Config.Auth.Jwt
	}
	return &Service{uow: deps.Uow, cfg: cfg, logger: deps.Logger}
}

// Compared against when the email lookup misses, so a miss and a wrong
// password take the same time.
const dummyHash = "$2a$14$WnDy2kWJvRNJpDSP0k7QNOAWXiNLA82lJ0XH37I6rWuf6J0hN0bVW"

// Login verifies the email/password pair. Every failure mode reports
// domain.ErrInvalidCredentials so callers cannot probe which emails exist.
func (s *Service) Login(ctx context.Context, email, password string) (u *user.User, err error) {
	logger := s.logger.With("email", email)
	repo, err := s.uow.UserRepository()
	if err != nil {
		return nil, domain.WrapStore(err)
	}
	u, err = repo.GetByEmail(ctx, email)
	if err != nil {
		utils.CheckPasswordHash(password, dummyHash)
		if errors.Is(err, domain.ErrUserNotFound) {
			logger.Info("Login failed", "error", domain.ErrInvalidCredentials)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, domain.WrapStore(err)
	}
	if !utils.CheckPasswordHash(password, u.PasswordHash) {
		logger.Info("Login failed", "error", domain.ErrInvalidCredentials)
		return nil, domain.ErrInvalidCredentials
	}
	logger.Info("Login successful", "userID", u.ID)
	return u, nil
}

// GenerateToken mints an HS256 JWT for the user, expiring after the
// configured interval.
func (s *Service) GenerateToken(u *user.User) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["user_id"] = u.ID.String()
	claims["email"] = u.Email
	claims["exp"] = time.Now().Add(s.cfg.Expiry).Unix()
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		s.logger.Error("GenerateToken failed", "userID", u.ID, "error", err)
		return "", err
	}
	return signed, nil
}

// GetCurrentUserID extracts the authenticated user id from a verified token.
func (s *Service) GetCurrentUserID(token *jwt.Token) (uuid.UUID, error) {
	if token == nil {
		return uuid.Nil, domain.ErrInvalidCredentials
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, domain.ErrInvalidCredentials
	}
	raw, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, domain.ErrInvalidCredentials
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.ErrInvalidCredentials
	}
	return userID, nil
}
