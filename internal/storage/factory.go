package storage

import (
	"fmt"

	"budgetbook/internal/config"
	"budgetbook/internal/log"
)

// Open creates the repository selected by the configuration.
func Open(cfg *config.Config, logger *log.Logger) (Repository, error) {
	switch cfg.DataBackend {
	case "json":
		logger.Info("using json document backend", log.FieldPath, cfg.DataFile)
		return NewJSONRepository(cfg.DataFile), nil
	case "sqlite":
		repo, err := NewSQLiteRepository(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite backend: %w", err)
		}
		logger.Info("using sqlite backend", log.FieldPath, cfg.SQLitePath)
		return repo, nil
	default:
		return nil, fmt.Errorf("unsupported data backend: %s", cfg.DataBackend)
	}
}
