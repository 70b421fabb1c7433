package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORSMiddleware(t *testing.T) {
	tests := []struct {
		name             string
		allowed          []string
		method           string
		origin           string
		expectedStatus   int
		expectAllowed    string
		expectNextCalled bool
	}{
		{
			name:             "no origin",
			allowed:          []string{"http://localhost:3000"},
			method:           http.MethodGet,
			expectedStatus:   http.StatusOK,
			expectNextCalled: true,
		},
		{
			name:             "allowed origin",
			allowed:          []string{"http://localhost:3000"},
			method:           http.MethodGet,
			origin:           "http://localhost:3000",
			expectedStatus:   http.StatusOK,
			expectAllowed:    "http://localhost:3000",
			expectNextCalled: true,
		},
		{
			name:           "allowed preflight",
			allowed:        []string{" http://localhost:3000 ", ""},
			method:         http.MethodOptions,
			origin:         "http://localhost:3000",
			expectedStatus: http.StatusNoContent,
			expectAllowed:  "http://localhost:3000",
		},
		{
			name:             "wildcard",
			allowed:          []string{"*"},
			method:           http.MethodPost,
			origin:           "https://dashboard.example",
			expectedStatus:   http.StatusOK,
			expectAllowed:    "https://dashboard.example",
			expectNextCalled: true,
		},
		{
			name:           "rejected preflight",
			allowed:        []string{"http://localhost:3000"},
			method:         http.MethodOptions,
			origin:         "https://evil.example",
			expectedStatus: http.StatusForbidden,
		},
		{
			name:             "unknown origin passes without headers",
			allowed:          []string{"http://localhost:3000"},
			method:           http.MethodGet,
			origin:           "https://evil.example",
			expectedStatus:   http.StatusOK,
			expectNextCalled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(tt.method, "/api/transactions", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rr := httptest.NewRecorder()

			CORSMiddleware(tt.allowed)(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Equal(t, tt.expectNextCalled, nextCalled)
			assert.Equal(t, tt.expectAllowed, rr.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}
