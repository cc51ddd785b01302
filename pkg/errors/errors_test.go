package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestConstructorsMapToHTTPStatus(t *testing.T) {
	cases := []struct {
		name   string
		err    *AppError
		code   string
		status int
	}{
		{"not found", NotFound("Resource"), CodeNotFound, http.StatusNotFound},
		{"not found with id", NotFoundWithID("Resource", "pc_1"), CodeNotFound, http.StatusNotFound},
		{"validation", Validation("bad input", nil), CodeValidation, http.StatusUnprocessableEntity},
		{"invalid input", InvalidInput("empty id"), CodeInvalidInput, http.StatusBadRequest},
		{"forbidden", Forbidden("admin only"), CodeForbidden, http.StatusForbidden},
		{"conflict", Conflict("already occupied"), CodeConflict, http.StatusConflict},
		{"internal", Internal("boom", nil), CodeInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Code != tc.code {
				t.Errorf("expected code %s, got %s", tc.code, tc.err.Code)
			}
			if tc.err.StatusCode() != tc.status {
				t.Errorf("expected status %d, got %d", tc.status, tc.err.StatusCode())
			}
		})
	}
}

func TestNotFoundWithID_CarriesDetails(t *testing.T) {
	err := NotFoundWithID("Resource", "pc_7")

	if err.Details["id"] != "pc_7" {
		t.Errorf("expected id detail pc_7, got %v", err.Details["id"])
	}
	if err.Details["resource"] != "Resource" {
		t.Errorf("expected resource detail, got %v", err.Details["resource"])
	}
}

func TestError_IncludesCause(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Internal("Failed to reserve resource", cause)

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to match the wrapped cause")
	}

	msg := err.Error()
	if msg != "INTERNAL_ERROR: Failed to reserve resource (caused by: connection refused)" {
		t.Errorf("unexpected message: %s", msg)
	}
}

func TestWithDetails(t *testing.T) {
	err := Conflict("Resource is not available").WithDetails(map[string]any{
		"id":     "pc_1",
		"status": "occupied",
	})

	if err.Details["status"] != "occupied" {
		t.Errorf("expected status detail occupied, got %v", err.Details["status"])
	}
}

func TestAsAppError_PassesThrough(t *testing.T) {
	original := Forbidden("admin only")

	got := AsAppError(original)
	if got != original {
		t.Error("expected the same *AppError back")
	}
}

func TestAsAppError_WrapsUnknown(t *testing.T) {
	plain := fmt.Errorf("something broke")

	got := AsAppError(plain)
	if got.Code != CodeInternal {
		t.Errorf("expected internal code, got %s", got.Code)
	}
	if got.HTTPStatus != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", got.HTTPStatus)
	}
	if !errors.Is(got, plain) {
		t.Error("expected the plain error to be wrapped")
	}
}

func TestIsAppError(t *testing.T) {
	if !IsAppError(Conflict("x")) {
		t.Error("expected true for *AppError")
	}
	if IsAppError(fmt.Errorf("x")) {
		t.Error("expected false for plain error")
	}
}
