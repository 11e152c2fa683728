package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	e := NotFound("Room")
	if got := e.Error(); got != "NOT_FOUND: Room not found" {
		t.Errorf("unexpected error string: %q", got)
	}

	cause := errors.New("connection refused")
	wrapped := Internal("Failed to update room", cause)
	if !strings.Contains(wrapped.Error(), "caused by: connection refused") {
		t.Errorf("wrapped error should mention cause, got %q", wrapped.Error())
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	e := Internal("something failed", cause)

	if !errors.Is(e, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}

	if NotFound("Room").Unwrap() != nil {
		t.Error("error without cause should unwrap to nil")
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantCode   string
		wantStatus int
	}{
		{"not found", NotFound("Room"), CodeNotFound, http.StatusNotFound},
		{"validation", Validation("bad payload", nil), CodeValidation, http.StatusUnprocessableEntity},
		{"invalid input", InvalidInput("bad id"), CodeInvalidInput, http.StatusBadRequest},
		{"unauthorized", Unauthorized("missing token"), CodeUnauthorized, http.StatusUnauthorized},
		{"forbidden", Forbidden("wrong owner"), CodeForbidden, http.StatusForbidden},
		{"conflict", Conflict("already booked"), CodeConflict, http.StatusConflict},
		{"internal", Internal("db down", fmt.Errorf("x")), CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", tt.err.Code, tt.wantCode)
			}
			if tt.err.StatusCode() != tt.wantStatus {
				t.Errorf("status = %d, want %d", tt.err.StatusCode(), tt.wantStatus)
			}
		})
	}
}

func TestNotFoundWithID(t *testing.T) {
	e := NotFoundWithID("Room", "abc123")
	if e.Details["id"] != "abc123" || e.Details["resource"] != "Room" {
		t.Errorf("details not populated: %v", e.Details)
	}
}

func TestWithDetails(t *testing.T) {
	e := InvalidInput("bad bound").WithDetails(map[string]any{"minPrice": "abc"})
	if e.Details["minPrice"] != "abc" {
		t.Errorf("details not attached: %v", e.Details)
	}
}

func TestAsAppError(t *testing.T) {
	original := Forbidden("nope")
	if got := AsAppError(original); got != original {
		t.Error("AsAppError should return the same AppError instance")
	}

	plain := errors.New("raw failure")
	wrapped := AsAppError(plain)
	if wrapped.Code != CodeInternal {
		t.Errorf("plain errors should wrap as internal, got %q", wrapped.Code)
	}
	if !errors.Is(wrapped, plain) {
		t.Error("wrapped error should keep the original as cause")
	}
	if strings.Contains(wrapped.Message, "raw failure") {
		t.Error("caller-facing message must not leak the raw error text")
	}

	if !IsAppError(original) || IsAppError(plain) {
		t.Error("IsAppError misclassified")
	}
}
