package config

import (
	"log/slog"

	"github.com/amirasaad/finance/pkg/repository"
)

// Deps holds the infrastructure dependencies handed to every service.
type Deps struct {
	Uow    repository.UnitOfWork
	Logger *slog.Logger
	Config *App
}
