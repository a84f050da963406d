// Package cli consolidates process bootstrap shared by commands: env file,
// config, logging and store setup.
package cli

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"

	"budgetbook/internal/config"
	"budgetbook/internal/log"
	"budgetbook/internal/storage"
	"budgetbook/internal/store"
)

// LoadEnvFile loads .env for local development. Missing files are fine.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger builds the process logger and installs it as default.
func SetupLogger(level string) *log.Logger {
	logger := log.New(log.ParseLevel(level))
	log.SetDefault(logger)
	return logger
}

// LoadConfig loads and validates configuration.
func LoadConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// OpenStore opens the configured backend and loads the persisted state.
// The returned cleanup closes the backend.
func OpenStore(ctx context.Context, cfg *config.Config, logger *log.Logger) (*store.Store, func() error, error) {
	repo, err := storage.Open(cfg, logger.WithComponent("storage"))
	if err != nil {
		return nil, nil, err
	}
	s := store.New(repo, logger)
	if err := s.Load(ctx); err != nil {
		repo.Close()
		return nil, nil, fmt.Errorf("load state: %w", err)
	}
	return s, repo.Close, nil
}
