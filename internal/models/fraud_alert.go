package models

import "time"

// Fraud alert types, shared with detector signals.
const (
	AlertVelocity = "velocity"
	AlertAmount   = "amount"
	AlertLocation = "location"
	AlertPattern  = "pattern"
)

// Severities
const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// Alert statuses
const (
	AlertOpen          = "open"
	AlertInvestigating = "investigating"
	AlertResolved      = "resolved"
	AlertDismissed     = "dismissed"
)

// AlertTypes lists every alert type.
var AlertTypes = []string{AlertVelocity, AlertAmount, AlertLocation, AlertPattern}

// Severities lists every severity from lowest to highest.
var Severities = []string{SeverityLow, SeverityMedium, SeverityHigh}

// AlertStatuses lists every alert status.
var AlertStatuses = []string{AlertOpen, AlertInvestigating, AlertResolved, AlertDismissed}

// FraudAlert represents a suspicion raised against a transaction.
// swagger:model FraudAlert
type FraudAlert struct {
	ID            string    `json:"id" db:"id"`                        // Unique identifier
	TransactionID string    `json:"transactionId" db:"transaction_id"` // Linked transaction, not enforced
	Type          string    `json:"type" db:"type"`                    // velocity, amount, location or pattern
	Severity      string    `json:"severity" db:"severity"`            // low, medium or high
	Description   string    `json:"description" db:"description"`      // Human readable reason
	Timestamp     time.Time `json:"timestamp" db:"created_at"`         // When the alert was raised
	Status        string    `json:"status" db:"status"`                // open, investigating, resolved or dismissed
	Metadata      Metadata  `json:"metadata" db:"metadata"`            // Free-form details
}

// AlertFilter narrows an alert listing. Zero values match everything.
type AlertFilter struct {
	Status   string
	Severity string
}

// Match reports whether the alert passes the filter.
func (f AlertFilter) Match(a FraudAlert) bool {
	if f.Status != "" && f.Status != a.Status {
		return false
	}
	if f.Severity != "" && f.Severity != a.Severity {
		return false
	}
	return true
}

// FraudSignal is a single finding of the rule-based detector.
// swagger:model FraudSignal
type FraudSignal struct {
	Type        string   `json:"type"`
	Severity    string   `json:"severity"`
	Description string   `json:"description"`
	Metadata    Metadata `json:"metadata"`
}

// FraudScore is the detector verdict for a single transaction.
// swagger:model FraudScore
type FraudScore struct {
	RiskScore int           `json:"riskScore"`
	Alerts    []FraudSignal `json:"alerts"`
	Timestamp time.Time     `json:"timestamp"`
}

// UserRiskScore summarises recent activity of a user.
// swagger:model UserRiskScore
type UserRiskScore struct {
	UserID    string          `json:"userId"`
	RiskScore int             `json:"riskScore"`
	Factors   UserRiskFactors `json:"factors"`
}

// UserRiskFactors explains a UserRiskScore.
type UserRiskFactors struct {
	TransactionFrequency int64 `json:"transactionFrequency"`
	BaseScore            int   `json:"baseScore"`
}
