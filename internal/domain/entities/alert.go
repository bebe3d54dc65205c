package entities

import "time"

// AlertLevel is the severity of an alert.
type AlertLevel string

const (
	AlertInfo     AlertLevel = "INFO"
	AlertWarning  AlertLevel = "WARNING"
	AlertCritical AlertLevel = "CRITICAL"
	AlertError    AlertLevel = "ERROR"
)

// AlertCategorySpendCap is the category of alerts raised by spend cap denials.
const AlertCategorySpendCap = "spend_cap"

// Alert is a reportable event, such as a blocked action.
type Alert struct {
	ID           int64      `json:"id"`
	Timestamp    time.Time  `json:"timestamp"`
	Level        AlertLevel `json:"level"`
	Category     string     `json:"category"`
	Campaign     string     `json:"campaign,omitempty"`
	Message      string     `json:"message"`
	Acknowledged bool       `json:"acknowledged"`
}
