package middlewares

import (
	"context"
	"errors"
	"net/http"

	"github.com/sbilibin2017/gw-fintech-demo/internal/jwt"
	"github.com/sbilibin2017/gw-fintech-demo/internal/logger"
)

// Tokener defines the minimal interface needed by the middleware
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

type claimsKey struct{}

// AuthMiddleware returns a middleware that validates the bearer token and
// stores its claims in the request context. A request without a token gets
// 401, a malformed header or a bad token gets 403.
func AuthMiddleware(tokener Tokener) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := tokener.GetTokenFromRequest(ctx, r)
			if errors.Is(err, jwt.ErrTokenMissing) {
				logger.Log.Warnw("authorization failed", "path", r.URL.Path, "err", err)
				writeError(w, http.StatusUnauthorized, "Access token required")
				return
			}
			if err != nil {
				logger.Log.Warnw("authorization failed", "path", r.URL.Path, "err", err)
				writeError(w, http.StatusForbidden, "Invalid or expired token")
				return
			}

			claims, err := tokener.GetClaims(ctx, tokenString)
			if err != nil {
				logger.Log.Warnw("authorization failed", "path", r.URL.Path, "err", err)
				writeError(w, http.StatusForbidden, "Invalid or expired token")
				return
			}

			ctx = context.WithValue(ctx, claimsKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext returns the claims stored by AuthMiddleware.
func ClaimsFromContext(ctx context.Context) (*jwt.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*jwt.Claims)
	return claims, ok && claims != nil
}
