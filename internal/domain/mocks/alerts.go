package mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/ersonp/adledger/internal/domain/entities"
)

// AlertLog is an in-memory implementation of ports.AlertLog.
type AlertLog struct {
	Alerts []entities.Alert
	Err    error
}

// NewAlertLog creates an empty mock alert log.
func NewAlertLog() *AlertLog {
	return &AlertLog{}
}

// LogAlert appends an alert.
func (m *AlertLog) LogAlert(_ context.Context, level entities.AlertLevel, category, message, campaign string) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	id := int64(len(m.Alerts) + 1)
	m.Alerts = append(m.Alerts, entities.Alert{
		ID:        id,
		Timestamp: time.Now().UTC(),
		Level:     level,
		Category:  category,
		Campaign:  campaign,
		Message:   message,
	})
	return id, nil
}

// ListAlerts returns alerts newest first.
func (m *AlertLog) ListAlerts(_ context.Context, limit int, unacknowledgedOnly bool) ([]entities.Alert, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	result := make([]entities.Alert, 0, len(m.Alerts))
	for i := len(m.Alerts) - 1; i >= 0; i-- {
		if unacknowledgedOnly && m.Alerts[i].Acknowledged {
			continue
		}
		result = append(result, m.Alerts[i])
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result, nil
}

// AcknowledgeAlert marks an alert as acknowledged.
func (m *AlertLog) AcknowledgeAlert(_ context.Context, id int64) error {
	if m.Err != nil {
		return m.Err
	}
	for i := range m.Alerts {
		if m.Alerts[i].ID == id {
			m.Alerts[i].Acknowledged = true
			return nil
		}
	}
	return fmt.Errorf("%w: alert %d", entities.ErrNotFound, id)
}
