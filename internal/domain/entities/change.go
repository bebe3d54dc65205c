package entities

import "fmt"

// Change is the typed meaning of an action's stored values.
// The variant set is closed; rollback handlers switch on the concrete type.
type Change interface {
	// Kind returns the action type this change belongs to.
	Kind() ActionType
}

// BidChange is a keyword CPC bid moved from Old to New.
type BidChange struct {
	Resource string
	Old      Money
	New      Money
}

func (BidChange) Kind() ActionType { return ActionAdjustBid }

// ParseBidChange reads a bid change from its stored old and new values.
func ParseBidChange(resource, oldValue, newValue string) (BidChange, error) {
	oldBid, err := ParseMoney(oldValue)
	if err != nil {
		return BidChange{}, fmt.Errorf("old bid: %w", err)
	}
	newBid, err := ParseMoney(newValue)
	if err != nil {
		return BidChange{}, fmt.Errorf("new bid: %w", err)
	}
	return BidChange{Resource: resource, Old: oldBid, New: newBid}, nil
}

// Values returns the old and new bids in their stored form, e.g. "$1.50".
func (c BidChange) Values() (oldValue, newValue string) {
	return c.Old.String(), c.New.String()
}

// ChangePct is the relative bid change in percent.
func (c BidChange) ChangePct() float64 {
	if c.Old == 0 {
		return 0
	}
	return float64(c.New-c.Old) * 100 / float64(c.Old)
}

// NegativeAdded is a campaign negative keyword created as Resource.
type NegativeAdded struct {
	Keyword  string
	Resource string
}

func (NegativeAdded) Kind() ActionType { return ActionAddNegative }

// KeywordAdded is an ad group keyword created as Resource.
type KeywordAdded struct {
	Resource string
	Keyword  string
}

func (KeywordAdded) Kind() ActionType { return ActionAddKeyword }

// AdPaused is an ad whose status went from enabled to paused.
type AdPaused struct {
	Resource string
}

func (AdPaused) Kind() ActionType { return ActionPauseAd }

// DecodeChange reads the typed change out of a ledger action.
// Kinds outside the known variant set yield ErrUnsupportedAction.
func DecodeChange(a *Action) (Change, error) {
	switch a.ActionType {
	case ActionAdjustBid:
		if a.TargetID == "" {
			return nil, fmt.Errorf("%w: no resource name stored for bid change", ErrInvalidChange)
		}
		change, err := ParseBidChange(a.TargetID, a.OldValue, a.NewValue)
		if err != nil {
			return nil, err
		}
		return change, nil

	case ActionAddNegative:
		if a.NewValue == "" {
			return nil, fmt.Errorf("%w: no resource name stored for negative keyword", ErrInvalidChange)
		}
		return NegativeAdded{Keyword: a.TargetName, Resource: a.NewValue}, nil

	case ActionAddKeyword:
		if a.TargetID == "" {
			return nil, fmt.Errorf("%w: no resource name stored for keyword", ErrInvalidChange)
		}
		return KeywordAdded{Resource: a.TargetID, Keyword: a.TargetName}, nil

	case ActionPauseAd:
		if a.TargetID == "" {
			return nil, fmt.Errorf("%w: no resource name stored for ad", ErrInvalidChange)
		}
		return AdPaused{Resource: a.TargetID}, nil
	}

	return nil, fmt.Errorf("%w '%s'", ErrUnsupportedAction, a.ActionType)
}
