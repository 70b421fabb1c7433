package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-fintech-demo/internal/jwt"
	"github.com/stretchr/testify/require"
)

var testUserID = uuid.MustParse("5b8f6c1e-2a7d-4c3b-9e1f-000000000001")

func withClaims(context.Context) (*jwt.Claims, bool) {
	return &jwt.Claims{UserID: testUserID, Role: "user"}, true
}

func withoutClaims(context.Context) (*jwt.Claims, bool) {
	return nil, false
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error
}
