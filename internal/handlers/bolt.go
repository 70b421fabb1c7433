package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/gw-fintech-demo/internal/logger"
	"github.com/sbilibin2017/gw-fintech-demo/internal/models"
	"github.com/sbilibin2017/gw-fintech-demo/internal/services"
)

// DriverVerifier verifies Bolt drivers.
type DriverVerifier interface {
	VerifyDriver(ctx context.Context, in services.VerifyDriverInput) (*models.DriverVerification, error)
}

// DriverCasher pays Bolt drivers out.
type DriverCasher interface {
	Cashout(ctx context.Context, userID string, in services.CashoutInput) (*models.Cashout, error)
}

// VerifyDriverRequest represents the JSON body of a driver verification
// swagger:model VerifyDriverRequest
type VerifyDriverRequest struct {
	// required: true
	// default: drv-1024
	DriverID string `json:"driverId"`

	// required: true
	// default: LAG-2231-XK
	LicenseNumber string `json:"licenseNumber"`

	PhoneNumber string `json:"phoneNumber"`
}

// CashoutRequest represents the JSON body of a driver payout
// swagger:model CashoutRequest
type CashoutRequest struct {
	// required: true
	// default: drv-1024
	DriverID string `json:"driverId"`

	// required: true
	// default: 25000
	Amount float64 `json:"amount"`

	// default: NGN
	Currency string `json:"currency"`

	// Convert the net amount into this currency
	TargetCurrency string `json:"targetCurrency"`

	// default: bank_transfer
	Method string `json:"method"`
}

// NewVerifyDriverHandler returns an HTTP handler running a simulated driver check.
// @Summary Verify Bolt driver
// @Description Simulated document check; failures carry a reason
// @Tags bolt
// @Accept json
// @Produce json
// @Param request body handlers.VerifyDriverRequest true "Driver"
// @Success 200 {object} models.DriverVerification
// @Failure 400 {object} handlers.ErrorResponse "Invalid request"
// @Router /api/bolt/verify-driver [post]
// @Security BearerAuth
func NewVerifyDriverHandler(svc DriverVerifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req VerifyDriverRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		v, err := svc.VerifyDriver(r.Context(), services.VerifyDriverInput{
			DriverID:      req.DriverID,
			LicenseNumber: req.LicenseNumber,
			PhoneNumber:   req.PhoneNumber,
		})
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidDriverRequest):
				writeError(w, http.StatusBadRequest, err.Error())
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, msgInternal)
			}
			return
		}

		writeJSON(w, http.StatusOK, v)
	}
}

// NewCashoutHandler returns an HTTP handler paying a driver out.
// @Summary Bolt driver cash-out
// @Description Charges the cash-out fee, optionally converts the net amount and records a cashout transaction
// @Tags bolt
// @Accept json
// @Produce json
// @Param request body handlers.CashoutRequest true "Cash-out"
// @Success 201 {object} models.Cashout
// @Failure 400 {object} handlers.ErrorResponse "Invalid request or conversion unavailable"
// @Failure 502 {object} handlers.ErrorResponse "Exchange rate service failed"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /api/bolt/cashout [post]
// @Security BearerAuth
func NewCashoutHandler(svc DriverCasher, claimsGetter ClaimsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsGetter(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "Access token required")
			return
		}

		var req CashoutRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		cashout, err := svc.Cashout(r.Context(), claims.UserID.String(), services.CashoutInput{
			DriverID:       req.DriverID,
			Amount:         req.Amount,
			Currency:       req.Currency,
			TargetCurrency: req.TargetCurrency,
			Method:         req.Method,
		})
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidDriverRequest),
				errors.Is(err, services.ErrConversionUnavailable):
				writeError(w, http.StatusBadRequest, err.Error())
			case errors.Is(err, services.ErrExchangeFailed):
				writeError(w, http.StatusBadGateway, "exchange rate service unavailable")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, msgInternal)
			}
			return
		}

		writeJSON(w, http.StatusCreated, cashout)
	}
}

// RegisterBoltHandlers registers the Bolt driver routes.
func RegisterBoltHandlers(r chi.Router, verify, cashout http.HandlerFunc) {
	r.Post("/api/bolt/verify-driver", verify)
	r.Post("/api/bolt/cashout", cashout)
}
