package models

import (
	"github.com/google/uuid"
)

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// KYC statuses.
const (
	KYCPending  = "pending"
	KYCVerified = "verified"
	KYCRejected = "rejected"
)

// User represents an account that can log in to the dashboard.
// swagger:model User
type User struct {
	ID           uuid.UUID `json:"id" db:"user_id"`           // Primary key
	Email        string    `json:"email" db:"email"`          // Login email, unique
	Name         string    `json:"name" db:"name"`            // Display name
	Role         string    `json:"role" db:"role"`            // user or admin
	KYCStatus    string    `json:"kycStatus" db:"kyc_status"` // Know Your Customer status
	PasswordHash string    `json:"-" db:"password_hash"`      // bcrypt hash, never serialized
}
