package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/sbilibin2017/gw-fintech-demo/internal/logger"
	"github.com/sbilibin2017/gw-fintech-demo/internal/models"
)

// Detector thresholds and weights.
const (
	velocityWindow        = time.Hour
	velocityThreshold     = 10
	velocityHighThreshold = 15
	amountThreshold       = 1000.0
	amountMultiplier      = 5.0
	amountHighMultiplier  = 10.0
	locationAnomalyChance = 0.2

	velocityWeight = 30
	amountWeight   = 25
	locationWeight = 20
	patternWeight  = 15
	maxRiskScore   = 100

	userBaseScoreCap  = 50
	userRandomSpread  = 20
	perTransactionPts = 2
)

// UsualLocations are the places a user is assumed to transact from.
var UsualLocations = []string{"Lagos", "Abuja"}

// VelocityStore keeps per-user transaction history for the detector.
type VelocityStore interface {
	Record(ctx context.Context, userID string, at time.Time, amount float64) error
	CountSince(ctx context.Context, userID string, since time.Time) (int64, error)
	Count(ctx context.Context, userID string) (int64, error)
	AverageAmount(ctx context.Context, userID string) (float64, bool, error)
}

// ScoreInput is a transaction submitted for rule-based scoring.
type ScoreInput struct {
	// TransactionID names a transaction already stored through the
	// transactions module, which recorded it in the velocity store.
	TransactionID string
	FromUser      string
	Amount        float64
	Type          string
	Location      string
	Timestamp     time.Time // zero means now
}

// Detector scores transactions with fixed velocity, amount, location and
// pattern rules.
type Detector struct {
	store VelocityStore
	rnd   Randomizer
	now   func() time.Time
}

// NewDetector creates a new Detector.
func NewDetector(store VelocityStore, rnd Randomizer) *Detector {
	return &Detector{store: store, rnd: rnd, now: time.Now}
}

// Score records the transaction in the velocity store and evaluates it.
// The amount check compares against the average as it was before this
// transaction was folded in. Transactions carrying a TransactionID were
// recorded when they were created and are not recorded a second time.
func (d *Detector) Score(ctx context.Context, in ScoreInput) (*models.FraudScore, error) {
	now := d.now()
	at := in.Timestamp
	if at.IsZero() {
		at = now
	}

	var (
		avg        float64
		hasHistory bool
		recent     int64
	)
	if in.FromUser != "" {
		var err error
		avg, hasHistory, err = d.store.AverageAmount(ctx, in.FromUser)
		if err != nil {
			return nil, fmt.Errorf("read average amount: %w", err)
		}
		if in.TransactionID == "" {
			if err := d.store.Record(ctx, in.FromUser, now, in.Amount); err != nil {
				return nil, fmt.Errorf("record transaction: %w", err)
			}
		}
		recent, err = d.store.CountSince(ctx, in.FromUser, now.Add(-velocityWindow))
		if err != nil {
			return nil, fmt.Errorf("count transactions: %w", err)
		}
	}

	result := &models.FraudScore{
		Alerts:    []models.FraudSignal{},
		Timestamp: now.UTC(),
	}
	add := func(signal *models.FraudSignal, weight int) {
		if signal == nil {
			return
		}
		result.Alerts = append(result.Alerts, *signal)
		result.RiskScore += weight
	}

	add(checkVelocity(recent), velocityWeight)
	add(checkAmount(in.Amount, avg, hasHistory), amountWeight)
	add(d.checkLocation(in.Location), locationWeight)
	add(checkPattern(in.Amount, at), patternWeight)

	result.RiskScore = min(result.RiskScore, maxRiskScore)

	logger.Log.Infow("transaction scored",
		"user_id", in.FromUser,
		"amount", in.Amount,
		"risk_score", result.RiskScore,
		"signals", len(result.Alerts),
	)

	return result, nil
}

// UserRiskScore rates a user by recent activity plus random noise.
func (d *Detector) UserRiskScore(ctx context.Context, userID string) (*models.UserRiskScore, error) {
	count, err := d.store.Count(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to count user transactions", "user_id", userID, "error", err)
		return nil, err
	}

	base := int(min(count*perTransactionPts, userBaseScoreCap))
	score := min(base+d.rnd.IntN(userRandomSpread), maxRiskScore)

	return &models.UserRiskScore{
		UserID:    userID,
		RiskScore: score,
		Factors: models.UserRiskFactors{
			TransactionFrequency: count,
			BaseScore:            base,
		},
	}, nil
}

func checkVelocity(recent int64) *models.FraudSignal {
	if recent <= velocityThreshold {
		return nil
	}
	severity := models.SeverityMedium
	if recent > velocityHighThreshold {
		severity = models.SeverityHigh
	}
	return &models.FraudSignal{
		Type:        models.AlertVelocity,
		Severity:    severity,
		Description: fmt.Sprintf("High transaction velocity: %d in the last hour", recent),
		Metadata: models.Metadata{
			"transactionCount": recent,
			"threshold":        velocityThreshold,
		},
	}
}

func checkAmount(amount, avg float64, hasHistory bool) *models.FraudSignal {
	if hasHistory && avg > 0 {
		if amount <= avg*amountMultiplier {
			return nil
		}
		severity := models.SeverityMedium
		if amount > avg*amountHighMultiplier {
			severity = models.SeverityHigh
		}
		return &models.FraudSignal{
			Type:        models.AlertAmount,
			Severity:    severity,
			Description: fmt.Sprintf("Transaction amount %.2f significantly higher than average %.2f", amount, avg),
			Metadata: models.Metadata{
				"amount":     amount,
				"average":    avg,
				"multiplier": amount / avg,
			},
		}
	}

	if amount > amountThreshold {
		return &models.FraudSignal{
			Type:        models.AlertAmount,
			Severity:    models.SeverityMedium,
			Description: fmt.Sprintf("Large transaction amount: %.2f", amount),
			Metadata: models.Metadata{
				"amount":    amount,
				"threshold": amountThreshold,
			},
		}
	}
	return nil
}

// checkLocation is simulated: any reported location is anomalous 20% of the time.
func (d *Detector) checkLocation(location string) *models.FraudSignal {
	if location == "" || !chance(d.rnd, locationAnomalyChance) {
		return nil
	}
	return &models.FraudSignal{
		Type:        models.AlertLocation,
		Severity:    models.SeverityMedium,
		Description: "Transaction from unusual location",
		Metadata: models.Metadata{
			"currentLocation": location,
			"usualLocations":  UsualLocations,
		},
	}
}

func checkPattern(amount float64, at time.Time) *models.FraudSignal {
	if amount > 100 && math.Mod(amount, 100) == 0 {
		return &models.FraudSignal{
			Type:        models.AlertPattern,
			Severity:    models.SeverityLow,
			Description: "Round number transaction amount may indicate automation",
			Metadata: models.Metadata{
				"amount":      amount,
				"patternType": "round_amount",
			},
		}
	}

	if hour := at.Hour(); hour < 6 || hour > 22 {
		return &models.FraudSignal{
			Type:        models.AlertPattern,
			Severity:    models.SeverityLow,
			Description: "Transaction during unusual hours",
			Metadata: models.Metadata{
				"hour":        hour,
				"patternType": "unusual_time",
			},
		}
	}
	return nil
}
