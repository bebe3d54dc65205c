// Package mocks provides in-memory implementations of the domain ports for tests.
package mocks

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ersonp/adledger/internal/domain/entities"
)

// Ledger is an in-memory implementation of ports.Ledger.
type Ledger struct {
	Actions map[int64]*entities.Action
	Now     func() time.Time
	Err     error

	// AppendCalls counts successful Append and RecordRollback inserts.
	AppendCalls int

	nextID int64
}

// NewLedger creates an empty mock ledger.
func NewLedger() *Ledger {
	return &Ledger{
		Actions: make(map[int64]*entities.Action),
		Now:     time.Now,
	}
}

// Seed inserts a fully-formed action, keeping its id and timestamp.
func (m *Ledger) Seed(action entities.Action) {
	a := action
	m.Actions[a.ID] = &a
	if a.ID > m.nextID {
		m.nextID = a.ID
	}
}

// Append inserts a new action.
func (m *Ledger) Append(_ context.Context, na *entities.NewAction) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return m.insert(na, nil), nil
}

func (m *Ledger) insert(na *entities.NewAction, rollbackOf *int64) int64 {
	m.nextID++
	approvedBy := na.ApprovedBy
	if approvedBy == "" {
		approvedBy = entities.ApprovedByAuto
	}
	m.Actions[m.nextID] = &entities.Action{
		ID:         m.nextID,
		Timestamp:  m.Now().UTC(),
		ActionType: na.ActionType,
		TargetType: na.TargetType,
		TargetID:   na.TargetID,
		TargetName: na.TargetName,
		Campaign:   na.Campaign,
		AdGroup:    na.AdGroup,
		OldValue:   na.OldValue,
		NewValue:   na.NewValue,
		Reason:     na.Reason,
		ApprovedBy: approvedBy,
		RollbackOf: rollbackOf,
	}
	m.AppendCalls++
	return m.nextID
}

// Get returns a copy of the action.
func (m *Ledger) Get(_ context.Context, id int64) (*entities.Action, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	a, ok := m.Actions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", entities.ErrNotFound, id)
	}
	cp := *a
	return &cp, nil
}

// ListRecent returns up to limit actions, newest first.
func (m *Ledger) ListRecent(_ context.Context, limit int) ([]entities.Action, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	result := m.sorted(func(*entities.Action) bool { return true })
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// ListSince returns non-rolled-back actions at or after since, newest first.
func (m *Ledger) ListSince(_ context.Context, since time.Time) ([]entities.Action, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.sorted(func(a *entities.Action) bool {
		return !a.RolledBack && !a.Timestamp.Before(since)
	}), nil
}

// MarkRolledBack flags the original and links the rollback record.
func (m *Ledger) MarkRolledBack(_ context.Context, originalID, rollbackID int64) error {
	if m.Err != nil {
		return m.Err
	}
	original, ok := m.Actions[originalID]
	if !ok {
		return fmt.Errorf("%w: %d", entities.ErrNotFound, originalID)
	}
	original.RolledBack = true
	if rb, ok := m.Actions[rollbackID]; ok {
		link := originalID
		rb.RollbackOf = &link
	}
	return nil
}

// RecordRollback inserts the rollback record and flags the original atomically.
func (m *Ledger) RecordRollback(_ context.Context, originalID int64, rollback *entities.NewAction) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	original, ok := m.Actions[originalID]
	if !ok {
		return 0, fmt.Errorf("%w: %d", entities.ErrNotFound, originalID)
	}
	if original.RolledBack {
		return 0, fmt.Errorf("%w: %d", entities.ErrAlreadyRolledBack, originalID)
	}
	original.RolledBack = true
	link := originalID
	return m.insert(rollback, &link), nil
}

// Summarize counts actions per type at or after since.
func (m *Ledger) Summarize(_ context.Context, since time.Time) (map[entities.ActionType]int, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	counts := make(map[entities.ActionType]int)
	for _, a := range m.Actions {
		if !a.Timestamp.Before(since) {
			counts[a.ActionType]++
		}
	}
	return counts, nil
}

// Count returns the number of stored actions.
func (m *Ledger) Count(_ context.Context) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return len(m.Actions), nil
}

func (m *Ledger) sorted(keep func(*entities.Action) bool) []entities.Action {
	result := make([]entities.Action, 0, len(m.Actions))
	for _, a := range m.Actions {
		if keep(a) {
			result = append(result, *a)
		}
	}
	// Newest first, id breaks timestamp ties
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Timestamp.Equal(result[j].Timestamp) {
			return result[i].Timestamp.After(result[j].Timestamp)
		}
		return result[i].ID > result[j].ID
	})
	return result
}
