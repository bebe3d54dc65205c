// Package entities contains core domain data structures.
package entities

import (
	"strings"
	"time"
)

// ActionType identifies the kind of change an action made.
// The set is open: producers may log kinds this package does not name.
type ActionType string

// Known action types.
const (
	ActionAddNegative           ActionType = "add_negative"
	ActionAdjustBid             ActionType = "adjust_bid"
	ActionIncreaseBid           ActionType = "increase_bid"
	ActionPauseAd               ActionType = "pause_ad"
	ActionAddKeyword            ActionType = "add_keyword"
	ActionPauseCampaign         ActionType = "pause_campaign"
	ActionPauseAdGroup          ActionType = "pause_ad_group"
	ActionEnableCampaign        ActionType = "enable_campaign"
	ActionRemoveKeyword         ActionType = "remove_keyword"
	ActionIncreaseBudget        ActionType = "increase_budget"
	ActionChangeBiddingStrategy ActionType = "change_bidding_strategy"
)

// rollbackPrefix marks action types written by the rollback engine.
const rollbackPrefix = "rollback_"

// RollbackOf returns the action type used to record the reversal of t.
func RollbackOf(t ActionType) ActionType {
	return ActionType(rollbackPrefix + string(t))
}

// IsRollback reports whether t is a rollback record type.
func (t ActionType) IsRollback() bool {
	return strings.HasPrefix(string(t), rollbackPrefix)
}

// TargetType identifies what kind of resource an action touched.
type TargetType string

// Known target types.
const (
	TargetKeyword  TargetType = "keyword"
	TargetAd       TargetType = "ad"
	TargetCampaign TargetType = "campaign"
	TargetAdGroup  TargetType = "ad_group"
)

// Approvers.
const (
	ApprovedByAuto = "auto"
	ApprovedByUser = "user"
)

// Action is one ledger entry: an executed change and the state it replaced.
// OldValue and NewValue are stored verbatim; DecodeChange interprets them.
type Action struct {
	ID         int64      `json:"id"`
	Timestamp  time.Time  `json:"timestamp"`
	ActionType ActionType `json:"action_type"`
	TargetType TargetType `json:"target_type"`
	TargetID   string     `json:"target_id,omitempty"`
	TargetName string     `json:"target_name"`
	Campaign   string     `json:"campaign,omitempty"`
	AdGroup    string     `json:"ad_group,omitempty"`
	OldValue   string     `json:"old_value,omitempty"`
	NewValue   string     `json:"new_value,omitempty"`
	Reason     string     `json:"reason,omitempty"`
	ApprovedBy string     `json:"approved_by"`
	RolledBack bool       `json:"rolled_back"`
	RollbackOf *int64     `json:"rollback_of,omitempty"`
}

// NewAction holds the caller-supplied fields of an action to append.
// ID, Timestamp and the rollback fields are assigned by the ledger.
type NewAction struct {
	ActionType ActionType
	TargetType TargetType
	TargetID   string
	TargetName string
	Campaign   string
	AdGroup    string
	OldValue   string
	NewValue   string
	Reason     string
	ApprovedBy string // defaults to ApprovedByAuto
}
