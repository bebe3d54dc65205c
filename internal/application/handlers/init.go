// Package handlers contains application use case handlers.
package handlers

import (
	"context"
	"fmt"

	"github.com/ersonp/adledger/internal/infrastructure/config"
	"github.com/ersonp/adledger/internal/infrastructure/relationaldb/sqlite"
)

// InitHandler handles workspace initialization.
type InitHandler struct{}

// NewInitHandler creates a new init handler.
func NewInitHandler() *InitHandler {
	return &InitHandler{}
}

// InitResult contains the result of initialization.
type InitResult struct {
	ConfigPath    string
	DBPath        string
	SchemaVersion uint
}

// Handle writes the default config and creates the action log database.
func (h *InitHandler) Handle(_ context.Context, basePath string) (*InitResult, error) {
	if config.Exists(basePath) {
		return nil, fmt.Errorf("adledger already initialized in %s", basePath)
	}

	if err := config.WriteDefault(basePath); err != nil {
		return nil, fmt.Errorf("writing default config: %w", err)
	}

	cfg, err := config.Load(basePath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	repo, err := sqlite.NewRepository(cfg.SQLite)
	if err != nil {
		return nil, fmt.Errorf("creating action log: %w", err)
	}
	defer repo.Close()

	version, err := repo.SchemaVersion()
	if err != nil {
		return nil, err
	}

	return &InitResult{
		ConfigPath:    config.ConfigFilePath(basePath),
		DBPath:        repo.Path(),
		SchemaVersion: version,
	}, nil
}
