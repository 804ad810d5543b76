// Package user provides user registration and lookup.
package user

import (
	"context"
	"log/slog"

	"github.com/amirasaad/finance/pkg/config"
	"github.com/amirasaad/finance/pkg/domain"
	"github.com/amirasaad/finance/pkg/domain/user"
	"github.com/amirasaad/finance/pkg/repository"
	"github.com/amirasaad/finance/pkg/utils"
	"github.com/google/uuid"
)

// Service provides user operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// NewService creates a Service with the provided dependencies.
func NewService(deps config.Deps) *Service {
	return &Service{uow: deps.Uow, logger: deps.Logger}
}

// Register creates a user with a bcrypt-hashed password. A reused email fails
// with domain.ErrEmailAlreadyInUse.
func (s *Service) Register(ctx context.Context, name, email, password string) (u *user.User, err error) {
	logger := s.logger.With("email", email)
	if !utils.IsEmail(email) {
		return nil, domain.ErrInvalidCredentials
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		logger.Error("password hashing failed", "error", err)
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err = user.New().
			WithName(name).
			WithEmail(email).
			WithPasswordHash(hash).
			Build()
		if err != nil {
			return err
		}
		return repo.Create(ctx, u)
	})
	if err != nil {
		logger.Error("Register failed", "error", err)
		return nil, domain.WrapStore(err)
	}
	logger.Info("Register successful", "userID", u.ID)
	return u, nil
}

// Get returns a user by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*user.User, error) {
	repo, err := s.uow.UserRepository()
	if err != nil {
		return nil, domain.WrapStore(err)
	}
	u, err := repo.Get(ctx, id)
	if err != nil {
		return nil, domain.WrapStore(err)
	}
	return u, nil
}
