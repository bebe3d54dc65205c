package ports

import (
	"context"

	"github.com/ersonp/adledger/internal/domain/entities"
)

// AlertLog stores reportable events.
type AlertLog interface {
	// LogAlert records an alert and returns its id.
	LogAlert(ctx context.Context, level entities.AlertLevel, category, message, campaign string) (int64, error)

	// ListAlerts returns up to limit alerts, newest first.
	ListAlerts(ctx context.Context, limit int, unacknowledgedOnly bool) ([]entities.Alert, error)

	// AcknowledgeAlert marks an alert as seen. Returns entities.ErrNotFound for unknown ids.
	AcknowledgeAlert(ctx context.Context, id int64) error
}
