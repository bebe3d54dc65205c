package mocks

import (
	"context"
	"sync"
)

// MutatorCall records one call made to the mock mutator.
type MutatorCall struct {
	Method    string
	Resource  string
	BidMicros int64
}

// Mutator is a recording implementation of ports.Mutator.
type Mutator struct {
	mu    sync.Mutex
	Calls []MutatorCall

	// Err is returned by every method when set.
	Err error
	// ErrByResource fails calls for specific resources.
	ErrByResource map[string]error
}

// NewMutator creates a mock mutator that always succeeds.
func NewMutator() *Mutator {
	return &Mutator{ErrByResource: make(map[string]error)}
}

func (m *Mutator) record(call MutatorCall) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, call)
	if m.Err != nil {
		return m.Err
	}
	return m.ErrByResource[call.Resource]
}

// SetKeywordBid records a bid update.
func (m *Mutator) SetKeywordBid(_ context.Context, resource string, bidMicros int64) error {
	return m.record(MutatorCall{Method: "SetKeywordBid", Resource: resource, BidMicros: bidMicros})
}

// RemoveCampaignCriterion records a campaign criterion removal.
func (m *Mutator) RemoveCampaignCriterion(_ context.Context, resource string) error {
	return m.record(MutatorCall{Method: "RemoveCampaignCriterion", Resource: resource})
}

// RemoveAdGroupCriterion records an ad group criterion removal.
func (m *Mutator) RemoveAdGroupCriterion(_ context.Context, resource string) error {
	return m.record(MutatorCall{Method: "RemoveAdGroupCriterion", Resource: resource})
}

// EnableAd records an ad re-enable.
func (m *Mutator) EnableAd(_ context.Context, resource string) error {
	return m.record(MutatorCall{Method: "EnableAd", Resource: resource})
}
