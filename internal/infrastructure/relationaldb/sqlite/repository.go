// Package sqlite provides a SQLite implementation of the action ledger and alert log.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ersonp/adledger/internal/domain/entities"
	"github.com/ersonp/adledger/internal/infrastructure/config"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// timestampLayout is fixed-width so stored timestamps sort lexically.
const timestampLayout = "2006-01-02T15:04:05.000000Z"

// timeNow returns the current time (can be mocked in tests).
var timeNow = time.Now

// Repository implements ports.Ledger and ports.AlertLog using SQLite.
type Repository struct {
	db   *sql.DB
	path string
}

// NewRepository opens the database and applies pending migrations.
func NewRepository(cfg config.SQLiteConfig) (*Repository, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path is required")
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// One connection: writes serialize and :memory: stays a single database
	db.SetMaxOpenConns(1)

	// Enable foreign keys for referential integrity
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	// Enable WAL mode for better concurrent read/write performance
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Set busy timeout to avoid "database is locked" errors
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	repo := &Repository{
		db:   db,
		path: cfg.Path,
	}
	if err := repo.EnsureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return repo, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Path returns the database file path.
func (r *Repository) Path() string {
	return r.path
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, entities.ErrStorage, err)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timestampLayout, s)
}

// noLimit maps a non-positive limit to SQLite's "no limit".
func noLimit(limit int) int {
	if limit <= 0 {
		return -1
	}
	return limit
}

const actionColumns = `id, timestamp, action_type, target_type, target_id, target_name,
	campaign, ad_group, old_value, new_value, reason, approved_by, rolled_back, rollback_of`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAction(row rowScanner) (*entities.Action, error) {
	var (
		a          entities.Action
		ts         string
		rolledBack int
		rollbackOf sql.NullInt64
	)
	if err := row.Scan(
		&a.ID,
		&ts,
		&a.ActionType,
		&a.TargetType,
		&a.TargetID,
		&a.TargetName,
		&a.Campaign,
		&a.AdGroup,
		&a.OldValue,
		&a.NewValue,
		&a.Reason,
		&a.ApprovedBy,
		&rolledBack,
		&rollbackOf,
	); err != nil {
		return nil, err
	}

	parsed, err := parseTime(ts)
	if err != nil {
		return nil, fmt.Errorf("parsing timestamp %q: %w", ts, err)
	}
	a.Timestamp = parsed
	a.RolledBack = rolledBack != 0
	if rollbackOf.Valid {
		link := rollbackOf.Int64
		a.RollbackOf = &link
	}
	return &a, nil
}

func (r *Repository) queryActions(ctx context.Context, op, query string, args ...any) ([]entities.Action, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageErr(op, err)
	}
	defer rows.Close()

	result := make([]entities.Action, 0)
	for rows.Next() {
		a, err := scanAction(rows)
		if err != nil {
			return nil, storageErr("scanning action", err)
		}
		result = append(result, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(op, err)
	}
	return result, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertAction(ctx context.Context, db execer, action *entities.NewAction, rollbackOf *int64) (int64, error) {
	approvedBy := action.ApprovedBy
	if approvedBy == "" {
		approvedBy = entities.ApprovedByAuto
	}

	var link sql.NullInt64
	if rollbackOf != nil {
		link = sql.NullInt64{Int64: *rollbackOf, Valid: true}
	}

	query := `
		INSERT INTO actions (timestamp, action_type, target_type, target_id, target_name,
			campaign, ad_group, old_value, new_value, reason, approved_by, rollback_of)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	res, err := db.ExecContext(ctx, query,
		formatTime(timeNow()),
		string(action.ActionType),
		string(action.TargetType),
		action.TargetID,
		action.TargetName,
		action.Campaign,
		action.AdGroup,
		action.OldValue,
		action.NewValue,
		action.Reason,
		approvedBy,
		link,
	)
	if err != nil {
		return 0, storageErr("inserting action", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, storageErr("reading action id", err)
	}
	return id, nil
}

// Append inserts a new action and returns its id.
func (r *Repository) Append(ctx context.Context, action *entities.NewAction) (int64, error) {
	return insertAction(ctx, r.db, action, nil)
}

// Get returns the action with the given id.
func (r *Repository) Get(ctx context.Context, id int64) (*entities.Action, error) {
	query := `SELECT ` + actionColumns + ` FROM actions WHERE id = ?`
	a, err := scanAction(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", entities.ErrNotFound, id)
	}
	if err != nil {
		return nil, storageErr("scanning action", err)
	}
	return a, nil
}

// ListRecent returns up to limit actions, newest first. A non-positive limit returns all.
func (r *Repository) ListRecent(ctx context.Context, limit int) ([]entities.Action, error) {
	query := `
		SELECT ` + actionColumns + `
		FROM actions
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`
	return r.queryActions(ctx, "querying recent actions", query, noLimit(limit))
}

// ListSince returns non-rolled-back actions at or after since, newest first.
func (r *Repository) ListSince(ctx context.Context, since time.Time) ([]entities.Action, error) {
	query := `
		SELECT ` + actionColumns + `
		FROM actions
		WHERE timestamp >= ? AND rolled_back = 0
		ORDER BY timestamp DESC, id DESC
	`
	return r.queryActions(ctx, "querying actions since", query, formatTime(since))
}

// MarkRolledBack flags originalID and links rollbackID to it in one transaction.
func (r *Repository) MarkRolledBack(ctx context.Context, originalID, rollbackID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("beginning transaction", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `UPDATE actions SET rolled_back = 1 WHERE id = ?`, originalID)
	if err != nil {
		return storageErr("flagging action", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storageErr("flagging action", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", entities.ErrNotFound, originalID)
	}

	if _, err := tx.ExecContext(ctx, `UPDATE actions SET rollback_of = ? WHERE id = ?`, originalID, rollbackID); err != nil {
		return storageErr("linking rollback", err)
	}

	if err := tx.Commit(); err != nil {
		return storageErr("committing rollback mark", err)
	}
	return nil
}

// RecordRollback inserts the rollback record and flags the original in one
// transaction. The flag is a compare-and-set on rolled_back = 0.
func (r *Repository) RecordRollback(ctx context.Context, originalID int64, rollback *entities.NewAction) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, storageErr("beginning transaction", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `UPDATE actions SET rolled_back = 1 WHERE id = ? AND rolled_back = 0`, originalID)
	if err != nil {
		return 0, storageErr("flagging action", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, storageErr("flagging action", err)
	}
	if n == 0 {
		var exists int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM actions WHERE id = ?`, originalID).Scan(&exists); err != nil {
			return 0, storageErr("checking action", err)
		}
		if exists == 0 {
			return 0, fmt.Errorf("%w: %d", entities.ErrNotFound, originalID)
		}
		return 0, fmt.Errorf("%w: %d", entities.ErrAlreadyRolledBack, originalID)
	}

	id, err := insertAction(ctx, tx, rollback, &originalID)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, storageErr("committing rollback", err)
	}
	return id, nil
}

// Summarize counts actions per type at or after since.
func (r *Repository) Summarize(ctx context.Context, since time.Time) (map[entities.ActionType]int, error) {
	query := `
		SELECT action_type, COUNT(*)
		FROM actions
		WHERE timestamp >= ?
		GROUP BY action_type
	`
	rows, err := r.db.QueryContext(ctx, query, formatTime(since))
	if err != nil {
		return nil, storageErr("summarizing actions", err)
	}
	defer rows.Close()

	counts := make(map[entities.ActionType]int)
	for rows.Next() {
		var t string
		var n int
		if err := rows.Scan(&t, &n); err != nil {
			return nil, storageErr("scanning summary", err)
		}
		counts[entities.ActionType(t)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("summarizing actions", err)
	}
	return counts, nil
}

// Count returns the total number of actions.
func (r *Repository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM actions`).Scan(&n); err != nil {
		return 0, storageErr("counting actions", err)
	}
	return n, nil
}
