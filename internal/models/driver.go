package models

import "time"

// Driver verification statuses
const (
	DriverVerified = "verified"
	DriverFailed   = "failed"
)

// DriverVerification is the outcome of a Bolt driver check.
// swagger:model DriverVerification
type DriverVerification struct {
	VerificationID string    `json:"verificationId"`
	DriverID       string    `json:"driverId"`
	Verified       bool      `json:"verified"`
	Status         string    `json:"status"`
	Reason         string    `json:"reason,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// Cashout describes a driver payout and the transaction recorded for it.
// swagger:model Cashout
type Cashout struct {
	Transaction     Transaction `json:"transaction"`
	Fee             float64     `json:"fee"`
	NetAmount       float64     `json:"netAmount"`
	TargetCurrency  string      `json:"targetCurrency,omitempty"`
	ExchangeRate    float64     `json:"exchangeRate,omitempty"`
	ExchangedAmount float64     `json:"exchangedAmount,omitempty"`
}
