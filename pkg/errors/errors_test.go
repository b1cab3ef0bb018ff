package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name: "without underlying error",
			appErr: &AppError{
				Code:    CodeNotFound,
				Message: "booking not found",
			},
			expected: "NOT_FOUND: booking not found",
		},
		{
			name: "with underlying error",
			appErr: &AppError{
				Code:    CodeInternal,
				Message: "internal error",
				Err:     errors.New("store unavailable"),
			},
			expected: "INTERNAL_ERROR: internal error (caused by: store unavailable)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.appErr.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("original error")
	appErr := Internal("wrapped", cause)

	if unwrapped := errors.Unwrap(appErr); unwrapped != cause {
		t.Errorf("Unwrap() should return original error, got %v", unwrapped)
	}
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		code   string
		status int
	}{
		{"not found", NotFound("Slot"), CodeNotFound, http.StatusNotFound},
		{"invalid input", InvalidInput("bad"), CodeInvalidInput, http.StatusBadRequest},
		{"validation", Validation("bad", nil), CodeValidation, http.StatusUnprocessableEntity},
		{"conflict", Conflict("taken"), CodeConflict, http.StatusConflict},
		{"capacity", InsufficientCapacity("full"), CodeInsufficientCapacity, http.StatusConflict},
		{"balance", InsufficientBalance("broke"), CodeInsufficientBalance, http.StatusPaymentRequired},
		{"unauthorized", Unauthorized("nope"), CodeUnauthorized, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, tt.err.Code)
			}
			if tt.err.StatusCode() != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, tt.err.StatusCode())
			}
		})
	}
}

func TestNotFoundWithID(t *testing.T) {
	err := NotFoundWithID("Booking", "abc-123")

	if err.Details["id"] != "abc-123" {
		t.Errorf("expected id detail 'abc-123', got %v", err.Details["id"])
	}
	if err.Details["resource"] != "Booking" {
		t.Errorf("expected resource detail 'Booking', got %v", err.Details["resource"])
	}
}

func TestAsAppError(t *testing.T) {
	appErr := Conflict("slot taken")
	if got := AsAppError(appErr); got != appErr {
		t.Error("AsAppError should return the same AppError")
	}

	plain := errors.New("boom")
	wrapped := AsAppError(plain)
	if wrapped.Code != CodeInternal {
		t.Errorf("expected INTERNAL_ERROR, got %s", wrapped.Code)
	}
	if wrapped.Err != plain {
		t.Error("expected cause to be preserved")
	}
}

func TestHasCode(t *testing.T) {
	err := InsufficientCapacity("full")

	if !HasCode(err, CodeInsufficientCapacity) {
		t.Error("expected HasCode to match")
	}
	if HasCode(err, CodeNotFound) {
		t.Error("expected HasCode to reject other codes")
	}
	if HasCode(errors.New("plain"), CodeInternal) {
		t.Error("expected HasCode to reject non-AppError")
	}
}
