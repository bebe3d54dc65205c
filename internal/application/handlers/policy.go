package handlers

import (
	"context"

	"github.com/ersonp/adledger/internal/domain/entities"
	"github.com/ersonp/adledger/internal/domain/services"
)

// PolicyHandler answers approval and spend cap questions.
type PolicyHandler struct {
	gate     *services.ApprovalGate
	enforcer *services.SpendCapEnforcer
	maxDaily float64
}

// NewPolicyHandler creates a new PolicyHandler. maxDaily is the configured daily spend cap.
func NewPolicyHandler(gate *services.ApprovalGate, enforcer *services.SpendCapEnforcer, maxDaily float64) *PolicyHandler {
	return &PolicyHandler{
		gate:     gate,
		enforcer: enforcer,
		maxDaily: maxDaily,
	}
}

// ApprovalCheckResult is the gate's verdict on a proposed action.
type ApprovalCheckResult struct {
	ActionType    entities.ActionType `json:"action_type"`
	Severity      services.Severity   `json:"severity"`
	NeedsApproval bool                `json:"needs_approval"`
}

// HandleApprovalCheck runs a proposed action through the approval gate.
func (h *PolicyHandler) HandleApprovalCheck(actionType entities.ActionType, changePct, bidAmount float64) *ApprovalCheckResult {
	return &ApprovalCheckResult{
		ActionType:    actionType,
		Severity:      h.gate.Classify(actionType),
		NeedsApproval: h.gate.NeedsApproval(actionType, changePct, bidAmount),
	}
}

// HandleBidApprovalCheck runs a proposed bid adjustment from oldBid to newBid
// through the approval gate. Bids use the stored money form, e.g. "$1.50".
func (h *PolicyHandler) HandleBidApprovalCheck(oldBid, newBid string) (*ApprovalCheckResult, error) {
	change, err := entities.ParseBidChange("", oldBid, newBid)
	if err != nil {
		return nil, err
	}
	return &ApprovalCheckResult{
		ActionType:    change.Kind(),
		Severity:      h.gate.Classify(change.Kind()),
		NeedsApproval: h.gate.NeedsBidApproval(change),
	}, nil
}

// HandleCapStatus measures todaySpend against the configured cap.
func (h *PolicyHandler) HandleCapStatus(todaySpend float64) entities.CapStatus {
	return services.ComputeCapStatus(todaySpend, h.maxDaily)
}

// CapEnforceResult is the enforcer's verdict on a proposed action.
type CapEnforceResult struct {
	ActionType entities.ActionType `json:"action_type"`
	Allowed    bool                `json:"allowed"`
	Reason     string              `json:"reason"`
	Status     entities.CapStatus  `json:"status"`
}

// HandleCapEnforce checks whether actionType may proceed at todaySpend.
func (h *PolicyHandler) HandleCapEnforce(ctx context.Context, actionType entities.ActionType, todaySpend float64) *CapEnforceResult {
	status := h.HandleCapStatus(todaySpend)
	allowed, reason := h.enforcer.Enforce(ctx, actionType, status)
	return &CapEnforceResult{
		ActionType: actionType,
		Allowed:    allowed,
		Reason:     reason,
		Status:     status,
	}
}
