package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/adledger/internal/domain/entities"
)

func TestApprovalGate_NeedsApproval(t *testing.T) {
	relaxed := ApprovalPolicy{AutoApproveBidChangePct: 10, ComplianceMaxCPC: 2.0}
	compliance := ApprovalPolicy{AutoApproveBidChangePct: 10, ComplianceMode: true, ComplianceMaxCPC: 2.0}

	tests := []struct {
		name       string
		policy     ApprovalPolicy
		actionType entities.ActionType
		changePct  float64
		bid        float64
		expected   bool
	}{
		{name: "required overrides everything", policy: ApprovalPolicy{Required: true}, actionType: entities.ActionAddNegative, expected: true},
		{name: "major action", policy: relaxed, actionType: entities.ActionPauseCampaign, expected: true},
		{name: "budget increase", policy: relaxed, actionType: entities.ActionIncreaseBudget, expected: true},
		{name: "bid change above threshold", policy: relaxed, actionType: entities.ActionAdjustBid, changePct: 15, expected: true},
		{name: "bid decrease above threshold", policy: relaxed, actionType: entities.ActionAdjustBid, changePct: -15, expected: true},
		{name: "bid change below threshold", policy: relaxed, actionType: entities.ActionAdjustBid, changePct: 5, expected: false},
		{name: "bid change at threshold", policy: relaxed, actionType: entities.ActionAdjustBid, changePct: 10, expected: false},
		{name: "large change on other type", policy: relaxed, actionType: entities.ActionAddKeyword, changePct: 50, expected: false},
		{name: "compliance ceiling exceeded", policy: compliance, actionType: entities.ActionAddKeyword, bid: 2.5, expected: true},
		{name: "compliance ceiling respected", policy: compliance, actionType: entities.ActionAddKeyword, bid: 2.0, expected: false},
		{name: "ceiling ignored outside compliance mode", policy: relaxed, actionType: entities.ActionAddKeyword, bid: 5, expected: false},
		{name: "minor action", policy: relaxed, actionType: entities.ActionPauseAd, expected: false},
		{name: "unknown action", policy: relaxed, actionType: "rename_campaign", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gate := NewApprovalGate(tt.policy)
			assert.Equal(t, tt.expected, gate.NeedsApproval(tt.actionType, tt.changePct, tt.bid))
		})
	}
}

func TestApprovalGate_NeedsBidApproval(t *testing.T) {
	relaxed := NewApprovalGate(ApprovalPolicy{AutoApproveBidChangePct: 10, ComplianceMaxCPC: 2.0})
	compliance := NewApprovalGate(ApprovalPolicy{AutoApproveBidChangePct: 10, ComplianceMode: true, ComplianceMaxCPC: 2.0})

	bid := func(oldValue, newValue string) entities.BidChange {
		t.Helper()
		change, err := entities.ParseBidChange("r", oldValue, newValue)
		require.NoError(t, err)
		return change
	}

	tests := []struct {
		name     string
		gate     *ApprovalGate
		change   entities.BidChange
		expected bool
	}{
		{name: "small increase", gate: relaxed, change: bid("$1.00", "$1.05"), expected: false},
		{name: "exactly ten percent", gate: relaxed, change: bid("$1.00", "$1.10"), expected: false},
		{name: "large increase", gate: relaxed, change: bid("$1.00", "$1.50"), expected: true},
		{name: "large decrease", gate: relaxed, change: bid("$2.00", "$1.00"), expected: true},
		{name: "new bid above compliance ceiling", gate: compliance, change: bid("$2.40", "$2.50"), expected: true},
		{name: "new bid at compliance ceiling", gate: compliance, change: bid("$1.90", "$2.00"), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.gate.NeedsBidApproval(tt.change))
		})
	}
}

func TestApprovalGate_Classify(t *testing.T) {
	gate := NewApprovalGate(ApprovalPolicy{})

	tests := []struct {
		actionType entities.ActionType
		expected   Severity
	}{
		{entities.ActionPauseCampaign, SeverityMajor},
		{entities.ActionPauseAdGroup, SeverityMajor},
		{entities.ActionEnableCampaign, SeverityMajor},
		{entities.ActionRemoveKeyword, SeverityMajor},
		{entities.ActionIncreaseBudget, SeverityMajor},
		{entities.ActionChangeBiddingStrategy, SeverityMajor},
		{entities.ActionAddNegative, SeverityMinor},
		{entities.ActionAdjustBid, SeverityMinor},
		{entities.ActionAddKeyword, SeverityMinor},
		{entities.ActionPauseAd, SeverityMinor},
		{entities.ActionIncreaseBid, SeverityOther},
		{"rollback_adjust_bid", SeverityOther},
	}

	for _, tt := range tests {
		t.Run(string(tt.actionType), func(t *testing.T) {
			assert.Equal(t, tt.expected, gate.Classify(tt.actionType))
		})
	}
}
