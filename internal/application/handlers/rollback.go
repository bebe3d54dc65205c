package handlers

import (
	"context"
	"time"

	"github.com/ersonp/adledger/internal/domain/services"
)

// RollbackHandler handles rollback operations at the application layer.
type RollbackHandler struct {
	engine *services.RollbackEngine
}

// NewRollbackHandler creates a new RollbackHandler.
func NewRollbackHandler(engine *services.RollbackEngine) *RollbackHandler {
	return &RollbackHandler{
		engine: engine,
	}
}

// HandleRollback reverses a single action.
func (h *RollbackHandler) HandleRollback(ctx context.Context, id int64) services.RollbackResult {
	return h.engine.RollbackAction(ctx, id)
}

// HandleRollbackSince reverses every eligible action at or after since.
func (h *RollbackHandler) HandleRollbackSince(ctx context.Context, since time.Time) (*services.RollbackBatch, error) {
	return h.engine.RollbackSince(ctx, since)
}
