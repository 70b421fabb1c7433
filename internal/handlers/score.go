package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/gw-fintech-demo/internal/logger"
	"github.com/sbilibin2017/gw-fintech-demo/internal/models"
	"github.com/sbilibin2017/gw-fintech-demo/internal/services"
)

// Scorer runs the rule-based detector.
type Scorer interface {
	Score(ctx context.Context, in services.ScoreInput) (*models.FraudScore, error)
}

// UserRiskScorer rates a user.
type UserRiskScorer interface {
	UserRiskScore(ctx context.Context, userID string) (*models.UserRiskScore, error)
}

// ScoreRequest represents a transaction submitted for scoring
// swagger:model ScoreRequest
type ScoreRequest struct {
	// ID of a transaction created through /api/transactions; such a
	// transaction is already counted for velocity
	TransactionID string `json:"transactionId"`

	// Sender, defaults to the authenticated user
	FromUser string `json:"fromUser"`

	// Amount, must be positive
	// required: true
	// default: 1500
	Amount float64 `json:"amount"`

	Type string `json:"type"`

	// Reported location, e.g. Lagos
	Location string `json:"location"`

	// Transaction time, defaults to now
	Timestamp *time.Time `json:"timestamp"`
}

// NewScoreHandler returns an HTTP handler scoring a transaction.
// @Summary Score transaction
// @Description Evaluates velocity, amount, location and pattern rules
// @Tags fraud
// @Accept json
// @Produce json
// @Param request body handlers.ScoreRequest true "Transaction to score"
// @Success 200 {object} models.FraudScore
// @Failure 400 {object} handlers.ErrorResponse "Invalid request"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /api/fraud/score [post]
// @Security BearerAuth
func NewScoreHandler(svc Scorer, claimsGetter ClaimsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ScoreRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Amount <= 0 {
			writeError(w, http.StatusBadRequest, "amount must be positive")
			return
		}

		in := services.ScoreInput{
			TransactionID: strings.TrimSpace(req.TransactionID),
			FromUser:      strings.TrimSpace(req.FromUser),
			Amount:        req.Amount,
			Type:          req.Type,
			Location:      strings.TrimSpace(req.Location),
		}
		if in.FromUser == "" {
			if claims, ok := claimsGetter(r.Context()); ok {
				in.FromUser = claims.UserID.String()
			}
		}
		if req.Timestamp != nil {
			in.Timestamp = *req.Timestamp
		}

		score, err := svc.Score(r.Context(), in)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, msgInternal)
			return
		}

		writeJSON(w, http.StatusOK, score)
	}
}

// NewRiskScoreHandler returns an HTTP handler rating a user.
// @Summary User risk score
// @Description Rates a user by recent transaction frequency
// @Tags fraud
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} models.UserRiskScore
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /api/fraud/risk-score/{userID} [get]
// @Security BearerAuth
func NewRiskScoreHandler(svc UserRiskScorer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		score, err := svc.UserRiskScore(r.Context(), chi.URLParam(r, "userID"))
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, msgInternal)
			return
		}

		writeJSON(w, http.StatusOK, score)
	}
}

// RegisterScoreHandlers registers the detector routes.
func RegisterScoreHandlers(r chi.Router, score, riskScore http.HandlerFunc) {
	r.Post("/api/fraud/score", score)
	r.Get("/api/fraud/risk-score/{userID}", riskScore)
}
