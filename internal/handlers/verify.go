package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-fintech-demo/internal/jwt"
	"github.com/sbilibin2017/gw-fintech-demo/internal/logger"
	"github.com/sbilibin2017/gw-fintech-demo/internal/models"
	"github.com/sbilibin2017/gw-fintech-demo/internal/services"
)

// ClaimsGetter returns the token claims of an authenticated request.
type ClaimsGetter func(ctx context.Context) (*jwt.Claims, bool)

// Verifier loads the user a token was issued for.
type Verifier interface {
	Verify(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

// VerifyResponse represents a successful token check
// swagger:model VerifyResponse
type VerifyResponse struct {
	// Always true
	// default: true
	Valid bool `json:"valid"`

	// Token owner
	User *models.User `json:"user"`
}

// NewVerifyHandler returns an HTTP handler that reports the owner of the bearer token.
// @Summary Verify token
// @Description Returns the user the bearer token was issued for
// @Tags auth
// @Produce json
// @Success 200 {object} handlers.VerifyResponse
// @Failure 401 {object} handlers.ErrorResponse "Access token required"
// @Failure 403 {object} handlers.ErrorResponse "Invalid or expired token"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Router /api/auth/verify [get]
// @Security BearerAuth
func NewVerifyHandler(svc Verifier, claimsGetter ClaimsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsGetter(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "Access token required")
			return
		}

		user, err := svc.Verify(r.Context(), claims.UserID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserNotFound):
				writeError(w, http.StatusNotFound, "User not found")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, msgInternal)
			}
			return
		}

		writeJSON(w, http.StatusOK, VerifyResponse{Valid: true, User: user})
	}
}

// RegisterVerifyHandler registers the token verification route.
func RegisterVerifyHandler(r chi.Router, h http.HandlerFunc) {
	r.Get("/api/auth/verify", h)
}
