package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/adledger/internal/domain/entities"
	"github.com/ersonp/adledger/internal/domain/mocks"
	"github.com/ersonp/adledger/internal/domain/services"
)

func newPolicyHandler(policy services.ApprovalPolicy) (*PolicyHandler, *mocks.AlertLog) {
	alerts := mocks.NewAlertLog()
	return NewPolicyHandler(
		services.NewApprovalGate(policy),
		services.NewSpendCapEnforcer(alerts, nil),
		100,
	), alerts
}

func TestPolicyHandler_HandleApprovalCheck(t *testing.T) {
	handler, _ := newPolicyHandler(services.ApprovalPolicy{AutoApproveBidChangePct: 10})

	result := handler.HandleApprovalCheck(entities.ActionAdjustBid, 15, 0)
	assert.True(t, result.NeedsApproval)
	assert.Equal(t, services.SeverityMinor, result.Severity)

	result = handler.HandleApprovalCheck(entities.ActionAdjustBid, 5, 0)
	assert.False(t, result.NeedsApproval)

	result = handler.HandleApprovalCheck(entities.ActionPauseCampaign, 0, 0)
	assert.True(t, result.NeedsApproval)
	assert.Equal(t, services.SeverityMajor, result.Severity)
}

func TestPolicyHandler_HandleBidApprovalCheck(t *testing.T) {
	handler, _ := newPolicyHandler(services.ApprovalPolicy{AutoApproveBidChangePct: 10})

	result, err := handler.HandleBidApprovalCheck("$1.00", "$1.50")
	require.NoError(t, err)
	assert.Equal(t, entities.ActionAdjustBid, result.ActionType)
	assert.Equal(t, services.SeverityMinor, result.Severity)
	assert.True(t, result.NeedsApproval)

	result, err = handler.HandleBidApprovalCheck("$1.00", "$1.05")
	require.NoError(t, err)
	assert.False(t, result.NeedsApproval)

	_, err = handler.HandleBidApprovalCheck("$1.00", "a lot")
	require.ErrorIs(t, err, entities.ErrInvalidChange)
}

func TestPolicyHandler_HandleCapStatus(t *testing.T) {
	handler, _ := newPolicyHandler(services.ApprovalPolicy{})

	status := handler.HandleCapStatus(95)
	assert.InDelta(t, 95.0, status.PctUsed, 1e-9)
	assert.False(t, status.CanIncreaseBids)
	assert.False(t, status.CanAddKeywords)
	assert.Equal(t, entities.CapStatusNear, status.Status)
	assert.Equal(t, 100.0, status.MaxDaily)
}

func TestPolicyHandler_HandleCapEnforce(t *testing.T) {
	handler, alerts := newPolicyHandler(services.ApprovalPolicy{})

	result := handler.HandleCapEnforce(context.Background(), entities.ActionAddKeyword, 85)
	assert.False(t, result.Allowed)
	assert.Contains(t, result.Reason, "85")
	assert.Equal(t, entities.CapStatusApproaching, result.Status.Status)
	require.Len(t, alerts.Alerts, 1)

	result = handler.HandleCapEnforce(context.Background(), entities.ActionAddKeyword, 70)
	assert.True(t, result.Allowed)
	assert.Equal(t, "OK", result.Reason)
	assert.Len(t, alerts.Alerts, 1)
}
