package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ersonp/adledger/internal/domain/entities"
	"github.com/ersonp/adledger/internal/domain/ports"
)

// RollbackStatus is the outcome of one rollback attempt.
type RollbackStatus string

const (
	RollbackSucceeded RollbackStatus = "success"
	RollbackFailed    RollbackStatus = "error"
)

// RollbackResult describes what happened to one action.
type RollbackResult struct {
	ActionID         int64          `json:"action_id"`
	Status           RollbackStatus `json:"status"`
	RollbackActionID int64          `json:"rollback_action_id,omitempty"`
	Detail           string         `json:"detail,omitempty"`
	Err              error          `json:"-"`
}

// OK reports whether the rollback succeeded.
func (r RollbackResult) OK() bool {
	return r.Status == RollbackSucceeded
}

// Reason returns the human-readable outcome.
func (r RollbackResult) Reason() string {
	if r.Err != nil {
		return r.Err.Error()
	}
	return r.Detail
}

// RollbackBatch is the outcome of rolling back everything since a point in time.
type RollbackBatch struct {
	BatchID string           `json:"batch_id"`
	Since   time.Time        `json:"since"`
	Results []RollbackResult `json:"results"`
}

// Succeeded counts successful rollbacks in the batch.
func (b *RollbackBatch) Succeeded() int {
	n := 0
	for _, r := range b.Results {
		if r.OK() {
			n++
		}
	}
	return n
}

// Failed counts failed rollbacks in the batch.
func (b *RollbackBatch) Failed() int {
	return len(b.Results) - b.Succeeded()
}

// RollbackHandler applies the reversal of change and returns a detail line.
type RollbackHandler func(ctx context.Context, mutator ports.Mutator, change entities.Change) (string, error)

// RollbackEngine reverses logged actions through a Mutator and records the reversal.
type RollbackEngine struct {
	ledger   ports.Ledger
	mutator  ports.Mutator
	logger   *zap.Logger
	handlers map[entities.ActionType]RollbackHandler
	newID    func() string
}

// NewRollbackEngine creates an engine with handlers for every reversible kind.
func NewRollbackEngine(ledger ports.Ledger, mutator ports.Mutator, logger *zap.Logger) *RollbackEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RollbackEngine{
		ledger:  ledger,
		mutator: mutator,
		logger:  logger.Named("rollback"),
		handlers: map[entities.ActionType]RollbackHandler{
			entities.ActionAdjustBid:   restoreBid,
			entities.ActionAddNegative: removeNegative,
			entities.ActionAddKeyword:  removeKeyword,
			entities.ActionPauseAd:     enableAd,
		},
		newID: func() string { return uuid.New().String() },
	}
}

// Register installs or replaces the handler for kind.
func (e *RollbackEngine) Register(kind entities.ActionType, handler RollbackHandler) {
	e.handlers[kind] = handler
}

// Supports reports whether actions of kind can be rolled back.
func (e *RollbackEngine) Supports(kind entities.ActionType) bool {
	if kind.IsRollback() {
		return false
	}
	_, ok := e.handlers[kind]
	return ok
}

// RollbackAction reverses a single action by id.
// Failures are reported in the result; the ledger is only written on success.
func (e *RollbackEngine) RollbackAction(ctx context.Context, id int64) RollbackResult {
	return e.rollback(ctx, id, e.logger)
}

func (e *RollbackEngine) rollback(ctx context.Context, id int64, logger *zap.Logger) RollbackResult {
	logger = logger.With(zap.Int64("action_id", id))
	fail := func(err error) RollbackResult {
		logger.Warn("rollback failed", zap.Error(err))
		return RollbackResult{ActionID: id, Status: RollbackFailed, Err: err}
	}

	action, err := e.ledger.Get(ctx, id)
	if err != nil {
		return fail(err)
	}
	logger = logger.With(zap.String("action_type", string(action.ActionType)))

	if action.RolledBack {
		return fail(fmt.Errorf("%w: %d", entities.ErrAlreadyRolledBack, id))
	}

	if action.ActionType.IsRollback() {
		return fail(fmt.Errorf("%w '%s': rollback records cannot be reversed", entities.ErrUnsupportedAction, action.ActionType))
	}
	handler, ok := e.handlers[action.ActionType]
	if !ok {
		return fail(fmt.Errorf("%w '%s'", entities.ErrUnsupportedAction, action.ActionType))
	}

	change, err := entities.DecodeChange(action)
	if err != nil {
		return fail(err)
	}

	detail, err := handler(ctx, e.mutator, change)
	if err != nil {
		if !errors.Is(err, entities.ErrInvalidChange) {
			err = fmt.Errorf("%w: %w", entities.ErrExternalMutation, err)
		}
		return fail(err)
	}

	rollbackID, err := e.ledger.RecordRollback(ctx, id, reversalOf(action))
	if err != nil {
		return fail(err)
	}

	logger.Info("action rolled back", zap.Int64("rollback_action_id", rollbackID))
	return RollbackResult{
		ActionID:         id,
		Status:           RollbackSucceeded,
		RollbackActionID: rollbackID,
		Detail:           detail,
	}
}

// RollbackSince reverses every non-rolled-back action at or after since, newest
// first. Each action is attempted independently; only a failure to list the
// actions is returned as an error.
func (e *RollbackEngine) RollbackSince(ctx context.Context, since time.Time) (*RollbackBatch, error) {
	batch := &RollbackBatch{
		BatchID: e.newID(),
		Since:   since,
	}
	logger := e.logger.With(zap.String("batch_id", batch.BatchID))

	actions, err := e.ledger.ListSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("listing actions since %s: %w", since.Format(time.RFC3339), err)
	}

	batch.Results = make([]RollbackResult, 0, len(actions))
	for _, a := range actions {
		batch.Results = append(batch.Results, e.rollback(ctx, a.ID, logger))
	}

	logger.Info("rollback batch finished",
		zap.Int("succeeded", batch.Succeeded()),
		zap.Int("failed", batch.Failed()),
	)
	return batch, nil
}

// reversalOf builds the ledger record for undoing a.
func reversalOf(a *entities.Action) *entities.NewAction {
	return &entities.NewAction{
		ActionType: entities.RollbackOf(a.ActionType),
		TargetType: a.TargetType,
		TargetID:   a.TargetID,
		TargetName: a.TargetName,
		Campaign:   a.Campaign,
		AdGroup:    a.AdGroup,
		OldValue:   a.NewValue,
		NewValue:   a.OldValue,
		Reason:     fmt.Sprintf("Rolling back action #%d", a.ID),
		ApprovedBy: entities.ApprovedByUser,
	}
}

func unexpectedChange(change entities.Change) error {
	return fmt.Errorf("%w: unexpected change %T", entities.ErrInvalidChange, change)
}

func restoreBid(ctx context.Context, m ports.Mutator, change entities.Change) (string, error) {
	c, ok := change.(entities.BidChange)
	if !ok {
		return "", unexpectedChange(change)
	}
	if err := m.SetKeywordBid(ctx, c.Resource, c.Old.Micros()); err != nil {
		return "", err
	}
	return "restored bid " + c.Old.String(), nil
}

func removeNegative(ctx context.Context, m ports.Mutator, change entities.Change) (string, error) {
	c, ok := change.(entities.NegativeAdded)
	if !ok {
		return "", unexpectedChange(change)
	}
	if err := m.RemoveCampaignCriterion(ctx, c.Resource); err != nil {
		return "", err
	}
	return "removed " + c.Resource, nil
}

func removeKeyword(ctx context.Context, m ports.Mutator, change entities.Change) (string, error) {
	c, ok := change.(entities.KeywordAdded)
	if !ok {
		return "", unexpectedChange(change)
	}
	if err := m.RemoveAdGroupCriterion(ctx, c.Resource); err != nil {
		return "", err
	}
	return "removed " + c.Resource, nil
}

func enableAd(ctx context.Context, m ports.Mutator, change entities.Change) (string, error) {
	c, ok := change.(entities.AdPaused)
	if !ok {
		return "", unexpectedChange(change)
	}
	if err := m.EnableAd(ctx, c.Resource); err != nil {
		return "", err
	}
	return "enabled " + c.Resource, nil
}
