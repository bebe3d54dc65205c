// Package ports defines the interfaces the domain depends on.
package ports

import (
	"context"
	"time"

	"github.com/ersonp/adledger/internal/domain/entities"
)

// Ledger is the append-only store of executed actions.
// Rows are never deleted; the only mutation is the rolled-back link.
type Ledger interface {
	// Append inserts a new action and returns its id.
	Append(ctx context.Context, action *entities.NewAction) (int64, error)

	// Get returns the action with the given id, or entities.ErrNotFound.
	Get(ctx context.Context, id int64) (*entities.Action, error)

	// ListRecent returns up to limit actions, newest first.
	ListRecent(ctx context.Context, limit int) ([]entities.Action, error)

	// ListSince returns non-rolled-back actions at or after since, newest first.
	ListSince(ctx context.Context, since time.Time) ([]entities.Action, error)

	// MarkRolledBack flags originalID as rolled back and links rollbackID to it.
	// It does not guard against being called twice.
	MarkRolledBack(ctx context.Context, originalID, rollbackID int64) error

	// RecordRollback appends the rollback record and flags the original in one
	// transaction. Only one caller can win for a given original: the flag is
	// set with a compare-and-set and losers get entities.ErrAlreadyRolledBack.
	RecordRollback(ctx context.Context, originalID int64, rollback *entities.NewAction) (int64, error)

	// Summarize counts actions per type at or after since.
	Summarize(ctx context.Context, since time.Time) (map[entities.ActionType]int, error)

	// Count returns the total number of actions.
	Count(ctx context.Context) (int, error)
}
