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

// AlertLister lists fraud alerts.
type AlertLister interface {
	ListAlerts(ctx context.Context, filter models.AlertFilter) ([]models.FraudAlert, error)
}

// TransactionAnalyzer runs fraud analysis for one transaction.
type TransactionAnalyzer interface {
	Analyze(ctx context.Context, transactionID string) (*models.FraudAlert, error)
}

// AlertStatusUpdater changes the review status of an alert.
type AlertStatusUpdater interface {
	UpdateAlertStatus(ctx context.Context, id, status string) (*models.FraudAlert, error)
}

// AlertsResponse wraps an alert listing
// swagger:model AlertsResponse
type AlertsResponse struct {
	Alerts []models.FraudAlert `json:"alerts"`
}

// AnalyzeResponse is the outcome of a fraud analysis
// swagger:model AnalyzeResponse
type AnalyzeResponse struct {
	TransactionID string `json:"transactionId"`

	// Raised alert, null when nothing was found
	Alert *models.FraudAlert `json:"alert"`
}

// UpdateAlertRequest represents the JSON body of an alert status change
// swagger:model UpdateAlertRequest
type UpdateAlertRequest struct {
	// open, investigating, resolved or dismissed
	// required: true
	// default: investigating
	Status string `json:"status"`
}

// NewListAlertsHandler returns an HTTP handler listing fraud alerts.
// @Summary List fraud alerts
// @Description Returns fraud alerts newest first
// @Tags fraud
// @Produce json
// @Param status query string false "Filter by status"
// @Param severity query string false "Filter by severity"
// @Success 200 {object} handlers.AlertsResponse
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /api/fraud/alerts [get]
// @Security BearerAuth
func NewListAlertsHandler(svc AlertLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		alerts, err := svc.ListAlerts(r.Context(), models.AlertFilter{
			Status:   q.Get("status"),
			Severity: q.Get("severity"),
		})
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, msgInternal)
			return
		}
		if alerts == nil {
			alerts = []models.FraudAlert{}
		}

		writeJSON(w, http.StatusOK, AlertsResponse{Alerts: alerts})
	}
}

// NewAnalyzeTransactionHandler returns an HTTP handler running a simulated fraud analysis.
// @Summary Analyze transaction
// @Description Randomly raises a fraud alert for the transaction
// @Tags fraud
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} handlers.AnalyzeResponse
// @Failure 404 {object} handlers.ErrorResponse "Transaction not found"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /api/fraud/analyze/{id} [post]
// @Security BearerAuth
func NewAnalyzeTransactionHandler(svc TransactionAnalyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		alert, err := svc.Analyze(r.Context(), id)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrTransactionNotFound):
				writeError(w, http.StatusNotFound, "Transaction not found")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, msgInternal)
			}
			return
		}

		writeJSON(w, http.StatusOK, AnalyzeResponse{TransactionID: id, Alert: alert})
	}
}

// NewUpdateAlertStatusHandler returns an HTTP handler changing an alert status.
// @Summary Update fraud alert status
// @Tags fraud
// @Accept json
// @Produce json
// @Param id path string true "Alert ID"
// @Param request body handlers.UpdateAlertRequest true "New status"
// @Success 200 {object} models.FraudAlert
// @Failure 400 {object} handlers.ErrorResponse "Invalid status"
// @Failure 404 {object} handlers.ErrorResponse "Alert not found"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /api/fraud/alerts/{id} [patch]
// @Security BearerAuth
func NewUpdateAlertStatusHandler(svc AlertStatusUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UpdateAlertRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		alert, err := svc.UpdateAlertStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidAlertStatus):
				writeError(w, http.StatusBadRequest, err.Error())
			case errors.Is(err, services.ErrAlertNotFound):
				writeError(w, http.StatusNotFound, "Alert not found")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, msgInternal)
			}
			return
		}

		writeJSON(w, http.StatusOK, alert)
	}
}

// RegisterFraudAlertHandlers registers the alert routes.
func RegisterFraudAlertHandlers(r chi.Router, list, analyze, update http.HandlerFunc) {
	r.Get("/api/fraud/alerts", list)
	r.Patch("/api/fraud/alerts/{id}", update)
	r.Post("/api/fraud/analyze/{id}", analyze)
}
