package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/ersonp/adledger/internal/application/handlers"
	"github.com/ersonp/adledger/internal/domain/ports"
	"github.com/ersonp/adledger/internal/domain/services"
	"github.com/ersonp/adledger/internal/infrastructure/config"
	"github.com/ersonp/adledger/internal/infrastructure/logging"
	"github.com/ersonp/adledger/internal/infrastructure/mutator"
	"github.com/ersonp/adledger/internal/infrastructure/relationaldb/sqlite"
)

// Deps holds high-level dependencies for commands.
// Only handlers are exposed - services and repositories are internal.
type Deps struct {
	Config          *config.Config
	ActionHandler   *handlers.ActionHandler
	RollbackHandler *handlers.RollbackHandler
	PolicyHandler   *handlers.PolicyHandler
	AlertHandler    *handlers.AlertHandler
}

// baseDir returns the --dir flag value or the current directory.
func baseDir() (string, error) {
	if globalDir != "" {
		return globalDir, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}
	return cwd, nil
}

// withDeps loads config and builds dependencies, then calls the provided function.
// It handles cleanup automatically.
func withDeps(fn func(*Deps) error) error {
	dir, err := baseDir()
	if err != nil {
		return err
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	repo, err := sqlite.NewRepository(cfg.SQLite)
	if err != nil {
		return fmt.Errorf("opening action log: %w", err)
	}
	defer repo.Close()

	m, err := newMutator(cfg.Mutator, logger)
	if err != nil {
		return fmt.Errorf("creating mutator: %w", err)
	}

	ledgerService := services.NewLedgerService(repo, logger)
	gate := services.NewApprovalGate(approvalPolicy(cfg.Approval))
	enforcer := services.NewSpendCapEnforcer(repo, logger)
	engine := services.NewRollbackEngine(repo, m, logger)

	deps := &Deps{
		Config:          cfg,
		ActionHandler:   handlers.NewActionHandler(ledgerService),
		RollbackHandler: handlers.NewRollbackHandler(engine),
		PolicyHandler:   handlers.NewPolicyHandler(gate, enforcer, cfg.SpendCap.MaxDaily),
		AlertHandler:    handlers.NewAlertHandler(repo),
	}

	return fn(deps)
}

// newMutator builds the mutator selected by cfg.Mode.
func newMutator(cfg config.MutatorConfig, logger *zap.Logger) (ports.Mutator, error) {
	switch cfg.Mode {
	case config.MutatorReadOnly:
		return mutator.NewReadOnly(), nil
	case config.MutatorOutbox:
		return mutator.NewOutbox(cfg.OutboxPath, logger)
	default:
		return nil, fmt.Errorf("unknown mutator mode %q", cfg.Mode)
	}
}

// approvalPolicy maps the config section onto the gate's policy.
func approvalPolicy(cfg config.ApprovalPolicy) services.ApprovalPolicy {
	return services.ApprovalPolicy{
		Required:                bool(cfg.Required),
		AutoApproveBidChangePct: cfg.AutoApproveBidChangePct,
		ComplianceMode:          bool(cfg.ComplianceMode),
		ComplianceMaxCPC:        cfg.ComplianceMaxCPC,
	}
}
