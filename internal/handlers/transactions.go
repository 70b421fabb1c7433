package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/gw-fintech-demo/internal/logger"
	"github.com/sbilibin2017/gw-fintech-demo/internal/models"
	"github.com/sbilibin2017/gw-fintech-demo/internal/services"
)

// TransactionLister lists transactions.
type TransactionLister interface {
	List(ctx context.Context, filter models.TransactionFilter) ([]models.Transaction, error)
}

// TransactionCreator creates transactions.
type TransactionCreator interface {
	Create(ctx context.Context, fromUser string, in services.CreateTransactionInput) (*models.Transaction, error)
}

// TransactionsResponse wraps a transaction listing
// swagger:model TransactionsResponse
type TransactionsResponse struct {
	Transactions []models.Transaction `json:"transactions"`
}

// CreateTransactionRequest represents the JSON body of a new transaction
// swagger:model CreateTransactionRequest
type CreateTransactionRequest struct {
	// Amount, must be positive
	// required: true
	// default: 2500
	Amount float64 `json:"amount"`

	// ISO currency code
	// default: NGN
	Currency string `json:"currency"`

	// transfer, payment, deposit, withdrawal or cashout
	// default: transfer
	Type string `json:"type"`

	// Receiving user
	ToUser string `json:"toUser"`

	// Free-form attributes
	Metadata models.Metadata `json:"metadata"`
}

// NewListTransactionsHandler returns an HTTP handler listing transactions.
// @Summary List transactions
// @Description Returns transactions newest first
// @Tags transactions
// @Produce json
// @Param status query string false "Filter by status"
// @Param type query string false "Filter by type"
// @Param limit query int false "Maximum number of records"
// @Success 200 {object} handlers.TransactionsResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid limit"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /api/transactions [get]
// @Security BearerAuth
func NewListTransactionsHandler(svc TransactionLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filter := models.TransactionFilter{
			Status: q.Get("status"),
			Type:   q.Get("type"),
		}

		if s := q.Get("limit"); s != "" {
			limit, err := strconv.Atoi(s)
			if err != nil || limit < 0 {
				writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
				return
			}
			filter.Limit = limit
		}

		txns, err := svc.List(r.Context(), filter)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, msgInternal)
			return
		}
		if txns == nil {
			txns = []models.Transaction{}
		}

		writeJSON(w, http.StatusOK, TransactionsResponse{Transactions: txns})
	}
}

// NewCreateTransactionHandler returns an HTTP handler creating a transaction
// on behalf of the authenticated user.
// @Summary Create transaction
// @Description Stores a transaction with a simulated risk score and status
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body handlers.CreateTransactionRequest true "Transaction"
// @Success 201 {object} models.Transaction
// @Failure 400 {object} handlers.ErrorResponse "Invalid request"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /api/transactions [post]
// @Security BearerAuth
func NewCreateTransactionHandler(svc TransactionCreator, claimsGetter ClaimsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsGetter(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "Access token required")
			return
		}

		var req CreateTransactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		txn, err := svc.Create(r.Context(), claims.UserID.String(), services.CreateTransactionInput{
			Amount:   req.Amount,
			Currency: req.Currency,
			Type:     req.Type,
			ToUser:   req.ToUser,
			Metadata: req.Metadata,
		})
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidTransaction):
				writeError(w, http.StatusBadRequest, err.Error())
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, msgInternal)
			}
			return
		}

		writeJSON(w, http.StatusCreated, txn)
	}
}

// RegisterTransactionHandlers registers the transaction routes.
func RegisterTransactionHandlers(r chi.Router, list, create http.HandlerFunc) {
	r.Get("/api/transactions", list)
	r.Post("/api/transactions", create)
}
