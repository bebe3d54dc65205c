package handlers

import (
	"context"

	"github.com/ersonp/adledger/internal/domain/entities"
	"github.com/ersonp/adledger/internal/domain/ports"
)

// AlertHandler lists and acknowledges alerts.
type AlertHandler struct {
	alerts ports.AlertLog
}

// NewAlertHandler creates a new AlertHandler.
func NewAlertHandler(alerts ports.AlertLog) *AlertHandler {
	return &AlertHandler{
		alerts: alerts,
	}
}

// HandleList returns alerts, newest first. A non-positive limit uses DefaultListLimit.
func (h *AlertHandler) HandleList(ctx context.Context, limit int, unacknowledgedOnly bool) ([]entities.Alert, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return h.alerts.ListAlerts(ctx, limit, unacknowledgedOnly)
}

// HandleAcknowledge marks an alert as seen.
func (h *AlertHandler) HandleAcknowledge(ctx context.Context, id int64) error {
	return h.alerts.AcknowledgeAlert(ctx, id)
}
