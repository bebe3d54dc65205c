// Package mutator provides ports.Mutator implementations that never talk to
// the ad platform directly.
package mutator

import (
	"context"
	"errors"
	"fmt"
)

// ErrReadOnly is returned by every ReadOnly call.
var ErrReadOnly = errors.New("mutator is read-only")

// ReadOnly refuses every mutation.
type ReadOnly struct{}

// NewReadOnly creates a read-only mutator.
func NewReadOnly() *ReadOnly {
	return &ReadOnly{}
}

func refuse(op, resource string) error {
	return fmt.Errorf("%s %s: %w", op, resource, ErrReadOnly)
}

// SetKeywordBid refuses the bid change.
func (ReadOnly) SetKeywordBid(_ context.Context, resource string, _ int64) error {
	return refuse(OpSetKeywordBid, resource)
}

// RemoveCampaignCriterion refuses the removal.
func (ReadOnly) RemoveCampaignCriterion(_ context.Context, resource string) error {
	return refuse(OpRemoveCampaignCriterion, resource)
}

// RemoveAdGroupCriterion refuses the removal.
func (ReadOnly) RemoveAdGroupCriterion(_ context.Context, resource string) error {
	return refuse(OpRemoveAdGroupCriterion, resource)
}

// EnableAd refuses the status change.
func (ReadOnly) EnableAd(_ context.Context, resource string) error {
	return refuse(OpEnableAd, resource)
}
