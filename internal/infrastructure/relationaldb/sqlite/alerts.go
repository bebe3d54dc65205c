package sqlite

import (
	"context"
	"fmt"

	"github.com/ersonp/adledger/internal/domain/entities"
)

// LogAlert records an alert and returns its id.
func (r *Repository) LogAlert(ctx context.Context, level entities.AlertLevel, category, message, campaign string) (int64, error) {
	query := `
		INSERT INTO alerts (timestamp, level, category, campaign, message)
		VALUES (?, ?, ?, ?, ?)
	`
	res, err := r.db.ExecContext(ctx, query,
		formatTime(timeNow()),
		string(level),
		category,
		campaign,
		message,
	)
	if err != nil {
		return 0, storageErr("inserting alert", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, storageErr("reading alert id", err)
	}
	return id, nil
}

// ListAlerts returns up to limit alerts, newest first. A non-positive limit returns all.
func (r *Repository) ListAlerts(ctx context.Context, limit int, unacknowledgedOnly bool) ([]entities.Alert, error) {
	query := `
		SELECT id, timestamp, level, category, campaign, message, acknowledged
		FROM alerts
		WHERE (? = 0 OR acknowledged = 0)
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`
	onlyOpen := 0
	if unacknowledgedOnly {
		onlyOpen = 1
	}

	rows, err := r.db.QueryContext(ctx, query, onlyOpen, noLimit(limit))
	if err != nil {
		return nil, storageErr("querying alerts", err)
	}
	defer rows.Close()

	result := make([]entities.Alert, 0)
	for rows.Next() {
		var (
			a     entities.Alert
			ts    string
			acked int
		)
		if err := rows.Scan(&a.ID, &ts, &a.Level, &a.Category, &a.Campaign, &a.Message, &acked); err != nil {
			return nil, storageErr("scanning alert", err)
		}
		parsed, err := parseTime(ts)
		if err != nil {
			return nil, storageErr("scanning alert", fmt.Errorf("parsing timestamp %q: %w", ts, err))
		}
		a.Timestamp = parsed
		a.Acknowledged = acked != 0
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("querying alerts", err)
	}
	return result, nil
}

// AcknowledgeAlert marks an alert as seen.
func (r *Repository) AcknowledgeAlert(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE alerts SET acknowledged = 1 WHERE id = ?`, id)
	if err != nil {
		return storageErr("acknowledging alert", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storageErr("acknowledging alert", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: alert %d", entities.ErrNotFound, id)
	}
	return nil
}
