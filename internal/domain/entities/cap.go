package entities

// Spend cap status labels.
const (
	CapStatusExceeded    = "CAP EXCEEDED"
	CapStatusNear        = "NEAR CAP"
	CapStatusApproaching = "APPROACHING CAP"
	CapStatusWithin      = "WITHIN CAP"
)

// CapStatus is today's spend measured against the daily cap.
type CapStatus struct {
	MaxDaily        float64 `json:"max_daily"`
	TotalToday      float64 `json:"total_today"`
	PctUsed         float64 `json:"pct_used"`
	CanIncreaseBids bool    `json:"can_increase_bids"`
	CanAddKeywords  bool    `json:"can_add_keywords"`
	Status          string  `json:"status"`
}
