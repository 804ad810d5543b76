// Package initializer builds the application dependencies from configuration:
// the styled logger, the database connection with its schema, and the unit of
// work the services run on.
package initializer

import (
	"fmt"

	"github.com/amirasaad/finance/infra"
	infrarepository "github.com/amirasaad/finance/infra/repository"
	"github.com/amirasaad/finance/pkg/config"
)

// InitializeDependencies initializes all the application dependencies.
func InitializeDependencies(cfg *config.App) (*config.Deps, error) {
	logger := setupLogger(cfg.Log)

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := infrarepository.Migrate(db); err != nil {
		logger.Error("Failed to migrate schema", "error", err)
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &config.Deps{
		Uow:    infrarepository.NewUoW(db),
		Logger: logger,
		Config: cfg,
	}, nil
}
