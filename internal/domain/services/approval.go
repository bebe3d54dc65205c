package services

import (
	"math"

	"github.com/ersonp/adledger/internal/domain/entities"
)

// Severity groups action types by how much review they warrant.
type Severity string

const (
	SeverityMajor Severity = "major"
	SeverityMinor Severity = "minor"
	SeverityOther Severity = "other"
)

// majorActions always need approval.
var majorActions = map[entities.ActionType]struct{}{
	entities.ActionPauseCampaign:         {},
	entities.ActionPauseAdGroup:          {},
	entities.ActionEnableCampaign:        {},
	entities.ActionRemoveKeyword:         {},
	entities.ActionIncreaseBudget:        {},
	entities.ActionChangeBiddingStrategy: {},
}

// minorActions may auto-approve.
var minorActions = map[entities.ActionType]struct{}{
	entities.ActionAddNegative: {},
	entities.ActionAdjustBid:   {},
	entities.ActionAddKeyword:  {},
	entities.ActionPauseAd:     {},
}

// ApprovalPolicy holds the thresholds the gate applies.
type ApprovalPolicy struct {
	// Required forces approval for every action.
	Required bool
	// AutoApproveBidChangePct is the largest bid change, in percent, that auto-approves.
	AutoApproveBidChangePct float64
	// ComplianceMode enables the CPC ceiling.
	ComplianceMode bool
	// ComplianceMaxCPC is the bid above which approval is required in compliance mode.
	ComplianceMaxCPC float64
}

// ApprovalGate decides whether a proposed action needs human sign-off.
type ApprovalGate struct {
	policy ApprovalPolicy
}

// NewApprovalGate creates a gate for the given policy.
func NewApprovalGate(policy ApprovalPolicy) *ApprovalGate {
	return &ApprovalGate{policy: policy}
}

// NeedsApproval reports whether actionType requires approval.
// changePct is the relative bid change in percent; bidAmount is the new bid.
// Pass zero for either when it does not apply.
func (g *ApprovalGate) NeedsApproval(actionType entities.ActionType, changePct, bidAmount float64) bool {
	if g.policy.Required {
		return true
	}

	if _, ok := majorActions[actionType]; ok {
		return true
	}

	if actionType == entities.ActionAdjustBid && math.Abs(changePct) > g.policy.AutoApproveBidChangePct {
		return true
	}

	if g.policy.ComplianceMode && bidAmount > g.policy.ComplianceMaxCPC {
		return true
	}

	return false
}

// NeedsBidApproval runs a proposed bid change through NeedsApproval, using its
// relative change and the new bid in whole units.
func (g *ApprovalGate) NeedsBidApproval(change entities.BidChange) bool {
	return g.NeedsApproval(change.Kind(), change.ChangePct(), change.New.Float())
}

// Classify returns the severity of actionType.
func (g *ApprovalGate) Classify(actionType entities.ActionType) Severity {
	if _, ok := majorActions[actionType]; ok {
		return SeverityMajor
	}
	if _, ok := minorActions[actionType]; ok {
		return SeverityMinor
	}
	return SeverityOther
}
