// Package services holds the domain logic over the ledger and mutation ports.
package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ersonp/adledger/internal/domain/entities"
	"github.com/ersonp/adledger/internal/domain/ports"
)

// LedgerService records and reads executed actions.
type LedgerService struct {
	ledger ports.Ledger
	logger *zap.Logger
	now    func() time.Time
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledger ports.Ledger, logger *zap.Logger) *LedgerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LedgerService{
		ledger: ledger,
		logger: logger.Named("ledger"),
		now:    time.Now,
	}
}

// ActionSummary counts actions per type over a trailing window.
type ActionSummary struct {
	Since  time.Time                   `json:"since"`
	Counts map[entities.ActionType]int `json:"counts"`
	Total  int                         `json:"total"`
}

// Record validates and appends an action. It returns the new id.
// Bid adjustments carrying values are stored with both bids in "$1.50" form.
func (s *LedgerService) Record(ctx context.Context, action *entities.NewAction) (int64, error) {
	if action.ActionType == "" {
		return 0, fmt.Errorf("%w: action type is required", entities.ErrInvalidChange)
	}
	if action.TargetType == "" {
		return 0, fmt.Errorf("%w: target type is required", entities.ErrInvalidChange)
	}
	switch action.ApprovedBy {
	case "", entities.ApprovedByAuto, entities.ApprovedByUser:
	default:
		return 0, fmt.Errorf("%w: approved_by must be %q or %q, got %q",
			entities.ErrInvalidChange, entities.ApprovedByAuto, entities.ApprovedByUser, action.ApprovedBy)
	}
	if action.ActionType == entities.ActionAdjustBid {
		if err := normalizeBid(action); err != nil {
			return 0, err
		}
	}

	id, err := s.ledger.Append(ctx, action)
	if err != nil {
		return 0, fmt.Errorf("recording action: %w", err)
	}

	s.logger.Info("action recorded",
		zap.Int64("action_id", id),
		zap.String("action_type", string(action.ActionType)),
		zap.String("target", action.TargetName),
	)
	return id, nil
}

// normalizeBid rewrites a bid adjustment's values in stored form.
// An adjustment with neither value is left as is.
func normalizeBid(action *entities.NewAction) error {
	if action.OldValue == "" && action.NewValue == "" {
		return nil
	}
	change, err := entities.ParseBidChange(action.TargetID, action.OldValue, action.NewValue)
	if err != nil {
		return fmt.Errorf("bid adjustment: %w", err)
	}
	action.OldValue, action.NewValue = change.Values()
	return nil
}

// Get returns a single action.
func (s *LedgerService) Get(ctx context.Context, id int64) (*entities.Action, error) {
	return s.ledger.Get(ctx, id)
}

// Recent returns up to limit actions, newest first.
func (s *LedgerService) Recent(ctx context.Context, limit int) ([]entities.Action, error) {
	return s.ledger.ListRecent(ctx, limit)
}

// Since returns the actions still eligible for rollback at or after since.
func (s *LedgerService) Since(ctx context.Context, since time.Time) ([]entities.Action, error) {
	return s.ledger.ListSince(ctx, since)
}

// Summarize counts actions per type over the trailing window.
func (s *LedgerService) Summarize(ctx context.Context, window time.Duration) (*ActionSummary, error) {
	since := s.now().Add(-window)
	counts, err := s.ledger.Summarize(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("summarizing actions: %w", err)
	}

	total := 0
	for _, n := range counts {
		total += n
	}
	return &ActionSummary{
		Since:  since,
		Counts: counts,
		Total:  total,
	}, nil
}

// Count returns the total number of recorded actions.
func (s *LedgerService) Count(ctx context.Context) (int, error) {
	return s.ledger.Count(ctx)
}
