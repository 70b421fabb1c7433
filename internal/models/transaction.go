package models

import "time"

// Transaction types
const (
	TransactionTransfer   = "transfer"
	TransactionPayment    = "payment"
	TransactionDeposit    = "deposit"
	TransactionWithdrawal = "withdrawal"
	TransactionCashout    = "cashout"
)

// Transaction statuses
const (
	StatusCompleted = "completed"
	StatusPending   = "pending"
	StatusFlagged   = "flagged"
	StatusFailed    = "failed"
)

// DefaultCurrency is used when a request does not name one.
const DefaultCurrency = "NGN"

// TransactionTypes lists the accepted transaction types.
var TransactionTypes = []string{
	TransactionTransfer,
	TransactionPayment,
	TransactionDeposit,
	TransactionWithdrawal,
	TransactionCashout,
}

// Transaction represents a money movement between two users.
// swagger:model Transaction
type Transaction struct {
	ID        string    `json:"id" db:"id"`                // Unique identifier
	Amount    float64   `json:"amount" db:"amount"`        // Monetary value, always positive
	Currency  string    `json:"currency" db:"currency"`    // Currency code, e.g. NGN
	Type      string    `json:"type" db:"type"`            // transfer, payment, deposit, withdrawal or cashout
	Status    string    `json:"status" db:"status"`        // completed, pending, flagged or failed
	Timestamp time.Time `json:"timestamp" db:"created_at"` // When the transaction happened
	FromUser  string    `json:"fromUser" db:"from_user"`   // Sender
	ToUser    string    `json:"toUser" db:"to_user"`       // Receiver
	RiskScore int       `json:"riskScore" db:"risk_score"` // 0..100
	Metadata  Metadata  `json:"metadata" db:"metadata"`    // Free-form details
}

// TransactionFilter narrows a transaction listing. Zero values match everything.
type TransactionFilter struct {
	Status string
	Type   string
	Limit  int
}

// Match reports whether the transaction passes the status and type filters.
func (f TransactionFilter) Match(t Transaction) bool {
	if f.Status != "" && f.Status != t.Status {
		return false
	}
	if f.Type != "" && f.Type != t.Type {
		return false
	}
	return true
}
