package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"digi-agency/microservices/graphics-service/models"
	"digi-agency/microservices/graphics-service/utils"
)

type fakeChecker struct {
	err error
}

func (c *fakeChecker) CheckSession(models.SessionContext) error {
	return c.err
}

func TestJWTAuthMiddlewareRoundTrip(t *testing.T) {
	token, err := utils.GenerateToken("Milica", "milica@digi-agency.local", "Graphics Head")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	var captured models.SessionContext
	nextCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := SessionFromRequest(r)
		if !ok {
			t.Error("expected session context on the request")
		}
		captured = session
		nextCalled = true
	})

	handler := JWTAuthMiddleware(&fakeChecker{}, next)

	r := httptest.NewRequest(http.MethodGet, "/api/graphics/tasks", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("valid token: status = %d, want 200", w.Code)
	}
	if !nextCalled {
		t.Fatal("next handler was not reached")
	}
	if captured.Name != "Milica" || captured.Email != "milica@digi-agency.local" || captured.Role != "Graphics Head" {
		t.Errorf("claims not carried into session context: %+v", captured)
	}
}

func TestJWTAuthMiddlewareRejections(t *testing.T) {
	validToken, err := utils.GenerateToken("Milica", "milica@digi-agency.local", "Graphics Head")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	cases := []struct {
		name    string
		header  string
		checker *fakeChecker
	}{
		{"missing header", "", &fakeChecker{}},
		{"garbage token", "Bearer not-a-jwt", &fakeChecker{}},
		{"invalidated session", "Bearer " + validToken, &fakeChecker{err: errors.New("employee account is inactive")}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Error("next handler must not run on a rejected request")
			})
			handler := JWTAuthMiddleware(c.checker, next)

			r := httptest.NewRequest(http.MethodGet, "/api/graphics/tasks", nil)
			if c.header != "" {
				r.Header.Set("Authorization", c.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", w.Code)
			}
		})
	}
}
