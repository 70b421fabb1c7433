// Package mockdata holds the canned records the demo starts with.
package mockdata

import (
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-fintech-demo/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// Seeded user IDs are fixed so that tokens stay meaningful across restarts.
var (
	DemoUserID    = uuid.MustParse("4f6c8a7e-1b2d-4c3e-9f10-2a3b4c5d6e01")
	AdminUserID   = uuid.MustParse("4f6c8a7e-1b2d-4c3e-9f10-2a3b4c5d6e02")
	PendingUserID = uuid.MustParse("4f6c8a7e-1b2d-4c3e-9f10-2a3b4c5d6e03")
)

// Credential pairs a seeded user with its plain text demo password.
type Credential struct {
	User     models.User
	Password string
}

// Users returns the demo accounts.
func Users() []Credential {
	return []Credential{
		{
			User: models.User{
				ID:        DemoUserID,
				Email:     "demo@fintech.dev",
				Name:      "Ada Okafor",
				Role:      models.RoleUser,
				KYCStatus: models.KYCVerified,
			},
			Password: "demo123",
		},
		{
			User: models.User{
				ID:        AdminUserID,
				Email:     "admin@fintech.dev",
				Name:      "Tunde Bello",
				Role:      models.RoleAdmin,
				KYCStatus: models.KYCVerified,
			},
			Password: "admin123",
		},
		{
			User: models.User{
				ID:        PendingUserID,
				Email:     "pending@fintech.dev",
				Name:      "Chioma Eze",
				Role:      models.RoleUser,
				KYCStatus: models.KYCPending,
			},
			Password: "pending123",
		},
	}
}

// Transactions returns the canned transaction history relative to now.
func Transactions(now time.Time) []models.Transaction {
	demo, admin, pending := DemoUserID.String(), AdminUserID.String(), PendingUserID.String()

	return []models.Transaction{
		{
			ID: "7d1e0c52-8a4f-4b1e-a3c9-000000000001", Amount: 25000, Currency: "NGN",
			Type: models.TransactionTransfer, Status: models.StatusCompleted,
			Timestamp: now.Add(-72 * time.Hour), FromUser: demo, ToUser: admin, RiskScore: 12,
			Metadata: models.Metadata{"channel": "mobile", "location": "Lagos"},
		},
		{
			ID: "7d1e0c52-8a4f-4b1e-a3c9-000000000002", Amount: 4500.5, Currency: "NGN",
			Type: models.TransactionPayment, Status: models.StatusCompleted,
			Timestamp: now.Add(-48 * time.Hour), FromUser: demo, ToUser: "merchant:shoprite", RiskScore: 8,
			Metadata: models.Metadata{"channel": "card", "merchantCategory": "groceries"},
		},
		{
			ID: "7d1e0c52-8a4f-4b1e-a3c9-000000000003", Amount: 950000, Currency: "NGN",
			Type: models.TransactionTransfer, Status: models.StatusFlagged,
			Timestamp: now.Add(-30 * time.Hour), FromUser: pending, ToUser: "external:0123456789", RiskScore: 87,
			Metadata: models.Metadata{"channel": "web", "location": "Accra"},
		},
		{
			ID: "7d1e0c52-8a4f-4b1e-a3c9-000000000004", Amount: 150, Currency: "USD",
			Type: models.TransactionDeposit, Status: models.StatusCompleted,
			Timestamp: now.Add(-26 * time.Hour), FromUser: "external:bank", ToUser: admin, RiskScore: 5,
			Metadata: models.Metadata{"channel": "bank_transfer"},
		},
		{
			ID: "7d1e0c52-8a4f-4b1e-a3c9-000000000005", Amount: 12000, Currency: "NGN",
			Type: models.TransactionWithdrawal, Status: models.StatusPending,
			Timestamp: now.Add(-20 * time.Hour), FromUser: demo, ToUser: "atm:ikeja-01", RiskScore: 33,
			Metadata: models.Metadata{"channel": "atm", "location": "Lagos"},
		},
		{
			ID: "7d1e0c52-8a4f-4b1e-a3c9-000000000006", Amount: 18500, Currency: "NGN",
			Type: models.TransactionCashout, Status: models.StatusCompleted,
			Timestamp: now.Add(-6 * time.Hour), FromUser: "bolt:payouts", ToUser: "driver:DRV-1042", RiskScore: 21,
			Metadata: models.Metadata{"driverId": "DRV-1042", "fee": 277.5, "netAmount": 18222.5},
		},
		{
			ID: "7d1e0c52-8a4f-4b1e-a3c9-000000000007", Amount: 300000, Currency: "NGN",
			Type: models.TransactionTransfer, Status: models.StatusFailed,
			Timestamp: now.Add(-2 * time.Hour), FromUser: pending, ToUser: demo, RiskScore: 64,
			Metadata: models.Metadata{"channel": "mobile", "failureReason": "kyc_pending"},
		},
	}
}

// FraudAlerts returns the canned alerts, linked to the canned transactions.
func FraudAlerts(now time.Time) []models.FraudAlert {
	return []models.FraudAlert{
		{
			ID: "a9b8c7d6-1111-4e2f-8a7b-000000000001", TransactionID: "7d1e0c52-8a4f-4b1e-a3c9-000000000003",
			Type: models.AlertAmount, Severity: models.SeverityHigh,
			Description: "Transaction amount significantly higher than the user's average",
			Timestamp:   now.Add(-30 * time.Hour), Status: models.AlertInvestigating,
			Metadata: models.Metadata{"riskScore": 87, "multiplier": 14.2},
		},
		{
			ID: "a9b8c7d6-1111-4e2f-8a7b-000000000002", TransactionID: "7d1e0c52-8a4f-4b1e-a3c9-000000000003",
			Type: models.AlertLocation, Severity: models.SeverityMedium,
			Description: "Transaction from unusual location",
			Timestamp:   now.Add(-30 * time.Hour), Status: models.AlertOpen,
			Metadata: models.Metadata{"currentLocation": "Accra", "usualLocations": []string{"Lagos", "Abuja"}},
		},
		{
			ID: "a9b8c7d6-1111-4e2f-8a7b-000000000003", TransactionID: "7d1e0c52-8a4f-4b1e-a3c9-000000000007",
			Type: models.AlertVelocity, Severity: models.SeverityMedium,
			Description: "High transaction velocity: 12 in the last hour",
			Timestamp:   now.Add(-2 * time.Hour), Status: models.AlertResolved,
			Metadata: models.Metadata{"transactionCount": 12, "threshold": 10},
		},
	}
}

// HashedUsers returns the demo accounts with bcrypt password hashes filled in.
func HashedUsers(cost int) ([]models.User, error) {
	creds := Users()
	users := make([]models.User, 0, len(creds))
	for _, c := range creds {
		hash, err := bcrypt.GenerateFromPassword([]byte(c.Password), cost)
		if err != nil {
			return nil, err
		}
		u := c.User
		u.PasswordHash = string(hash)
		users = append(users, u)
	}
	return users, nil
}
