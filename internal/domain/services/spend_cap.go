package services

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/ersonp/adledger/internal/domain/entities"
	"github.com/ersonp/adledger/internal/domain/ports"
)

// Spend tiers in percent of the daily cap.
const (
	capExceededPct    = 100.0
	capNearPct        = 90.0
	capApproachingPct = 80.0
)

// ComputeCapStatus measures todaySpend against maxDailyCap.
// A non-positive cap reports 0% used.
func ComputeCapStatus(todaySpend, maxDailyCap float64) entities.CapStatus {
	pct := 0.0
	if maxDailyCap > 0 {
		pct = math.Round(todaySpend/maxDailyCap*100*10) / 10
	}

	status := entities.CapStatusWithin
	switch {
	case pct >= capExceededPct:
		status = entities.CapStatusExceeded
	case pct >= capNearPct:
		status = entities.CapStatusNear
	case pct >= capApproachingPct:
		status = entities.CapStatusApproaching
	}

	return entities.CapStatus{
		MaxDaily:        maxDailyCap,
		TotalToday:      math.Round(todaySpend*100) / 100,
		PctUsed:         pct,
		CanIncreaseBids: pct < capNearPct,
		CanAddKeywords:  pct < capApproachingPct,
		Status:          status,
	}
}

// SpendCapEnforcer blocks spend-increasing actions once the cap tiers are reached.
type SpendCapEnforcer struct {
	alerts ports.AlertLog
	logger *zap.Logger
}

// NewSpendCapEnforcer creates an enforcer that records denials in alerts.
// With nil alerts, denials are only logged.
func NewSpendCapEnforcer(alerts ports.AlertLog, logger *zap.Logger) *SpendCapEnforcer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SpendCapEnforcer{
		alerts: alerts,
		logger: logger.Named("spend_cap"),
	}
}

// Enforce reports whether actionType may proceed under status, with a reason.
// Action types that do not raise spend are always allowed.
func (e *SpendCapEnforcer) Enforce(ctx context.Context, actionType entities.ActionType, status entities.CapStatus) (bool, string) {
	var reason string
	switch actionType {
	case entities.ActionAdjustBid, entities.ActionIncreaseBid:
		if status.CanIncreaseBids {
			return true, "OK"
		}
		reason = fmt.Sprintf("Bid increase blocked: daily spend at %.1f%% of $%.2f cap", status.PctUsed, status.MaxDaily)
	case entities.ActionAddKeyword:
		if status.CanAddKeywords {
			return true, "OK"
		}
		reason = fmt.Sprintf("Keyword addition blocked: daily spend at %.1f%% of $%.2f cap", status.PctUsed, status.MaxDaily)
	default:
		return true, "OK"
	}

	e.logger.Warn(reason,
		zap.String("action_type", string(actionType)),
		zap.Float64("pct_used", status.PctUsed),
	)
	if e.alerts == nil {
		return false, reason
	}
	if _, err := e.alerts.LogAlert(ctx, entities.AlertWarning, entities.AlertCategorySpendCap, reason, ""); err != nil {
		e.logger.Error("recording spend cap alert", zap.Error(err))
	}
	return false, reason
}
