// README: Integration tests for ride handler authorization checks.
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"overlook/internal/http/handlers"
	httpmiddleware "overlook/internal/http/middleware"
	"overlook/internal/infra"
	"overlook/internal/modules/ride"
)

// stubTokenVerifier is a test double for infra.TokenVerifier.
type stubTokenVerifier struct {
	token *infra.Principal
	err   error
}

func (s *stubTokenVerifier) VerifyIDToken(_ context.Context, _ string) (*infra.Principal, error) {
	return s.token, s.err
}

// buildTestRouter wires a minimal gin engine with the auth middleware and the
// ride handler. ride.NewService(nil, nil, nil) is safe here because every
// request in these tests is rejected before any service method runs.
func buildTestRouter(verifier infra.TokenVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := ride.NewService(nil, nil, nil)
	r := gin.New()
	r.Use(httpmiddleware.Auth(verifier))
	h := handlers.NewRideHandler(svc)
	r.POST("/api/rides/:id/accept", h.Accept)
	r.POST("/api/rides/:id/complete", h.Complete)
	r.POST("/api/rides/:id/fare", h.SetFare)
	return r
}

func makeVerifier(uid, role string) *stubTokenVerifier {
	claims := map[string]interface{}{}
	if role != "" {
		claims["role"] = role
	}
	return &stubTokenVerifier{token: &infra.Principal{UID: uid, Claims: claims}}
}

func doRequest(r *gin.Engine, method, path string, body interface{}, authHeader string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestDriverEndpoints_RequireAuth(t *testing.T) {
	r := buildTestRouter(makeVerifier("driver1", "driver"))
	w := doRequest(r, http.MethodPost, "/api/rides/r1/accept", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestDriverEndpoints_RejectRiderRole(t *testing.T) {
	r := buildTestRouter(makeVerifier("rider1", "rider"))

	for _, path := range []string{
		"/api/rides/r1/accept",
		"/api/rides/r1/complete",
		"/api/rides/r1/fare",
	} {
		w := doRequest(r, http.MethodPost, path, map[string]any{"requested_total": 120}, "Bearer token")
		if w.Code != http.StatusForbidden {
			t.Errorf("%s: expected 403 for rider role, got %d", path, w.Code)
		}
	}
}

func TestDriverEndpoints_RejectMissingRole(t *testing.T) {
	r := buildTestRouter(makeVerifier("user1", ""))
	w := doRequest(r, http.MethodPost, "/api/rides/r1/accept", nil, "Bearer token")
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for missing role, got %d", w.Code)
	}
}
