package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/ersonp/adledger/internal/domain/entities"
	"github.com/ersonp/adledger/internal/domain/services"
)

// DefaultListLimit matches how many actions the agent shows by default.
const DefaultListLimit = 50

// ActionHandler handles ledger operations at the application layer.
type ActionHandler struct {
	ledgerService *services.LedgerService
}

// NewActionHandler creates a new ActionHandler.
func NewActionHandler(ledgerService *services.LedgerService) *ActionHandler {
	return &ActionHandler{
		ledgerService: ledgerService,
	}
}

// RecordResult contains the stored action.
type RecordResult struct {
	Action *entities.Action `json:"action"`
}

// HandleRecord appends an action and returns it as stored.
func (h *ActionHandler) HandleRecord(ctx context.Context, action *entities.NewAction) (*RecordResult, error) {
	id, err := h.ledgerService.Record(ctx, action)
	if err != nil {
		return nil, err
	}

	stored, err := h.ledgerService.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reading recorded action: %w", err)
	}
	return &RecordResult{Action: stored}, nil
}

// ActionListResult contains the result of listing actions.
type ActionListResult struct {
	Actions []entities.Action `json:"actions"`
	Total   int               `json:"total"`
}

// HandleList returns the most recent actions. A non-positive limit uses DefaultListLimit.
func (h *ActionHandler) HandleList(ctx context.Context, limit int) (*ActionListResult, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	actions, err := h.ledgerService.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}

	total, err := h.ledgerService.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &ActionListResult{
		Actions: actions,
		Total:   total,
	}, nil
}

// HandleShow returns a single action.
func (h *ActionHandler) HandleShow(ctx context.Context, id int64) (*entities.Action, error) {
	return h.ledgerService.Get(ctx, id)
}

// HandleSummary counts actions per type over the last days days.
func (h *ActionHandler) HandleSummary(ctx context.Context, days int) (*services.ActionSummary, error) {
	if days <= 0 {
		return nil, fmt.Errorf("days must be positive, got %d", days)
	}
	return h.ledgerService.Summarize(ctx, time.Duration(days)*24*time.Hour)
}
