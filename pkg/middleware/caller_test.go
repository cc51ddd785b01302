package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"trizone/pkg/model"
)

func TestCallerFromHeader_Admin(t *testing.T) {
	var got model.Caller
	handler := CallerFromHeader()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = CallerFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
	req.Header.Set(RoleHeader, model.RoleAdmin)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if !got.IsAdmin() {
		t.Errorf("expected admin caller, got %+v", got)
	}
}

func TestCallerFromHeader_DefaultsToGuest(t *testing.T) {
	cases := []struct {
		name string
		role string
	}{
		{"no header", ""},
		{"unknown role", "superuser"},
		{"wrong case", "Admin"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got model.Caller
			handler := CallerFromHeader()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = CallerFromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
			if tc.role != "" {
				req.Header.Set(RoleHeader, tc.role)
			}
			handler.ServeHTTP(httptest.NewRecorder(), req)

			if got.IsAdmin() {
				t.Errorf("role %q must not grant admin", tc.role)
			}
		})
	}
}

func TestCallerFromContext_MissingMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)

	caller := CallerFromContext(req.Context())
	if caller.IsAdmin() {
		t.Error("missing middleware must yield a guest caller")
	}
}
