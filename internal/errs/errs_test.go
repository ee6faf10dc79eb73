package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Bad Request", "BAD_REQUEST"},
		{"Service Unavailable", "SERVICE_UNAVAILABLE"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := MakeUpperCaseWithUnderscores(tt.input); got != tt.want {
			t.Errorf("MakeUpperCaseWithUnderscores(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNewBadRequestError(t *testing.T) {
	t.Run("default code", func(t *testing.T) {
		err := NewBadRequestError("missing required field", true, nil, nil, nil)

		if err.Status != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", err.Status, http.StatusBadRequest)
		}
		if err.Code != "BAD_REQUEST" {
			t.Errorf("Code = %q, want BAD_REQUEST", err.Code)
		}
		if err.Title != "Bad Request" {
			t.Errorf("Title = %q, want Bad Request", err.Title)
		}
	})

	t.Run("custom code and field errors", func(t *testing.T) {
		code := "DEVICE_ID_REQUIRED"
		fields := []FieldError{{Field: "device_id", Error: "is required"}}

		err := NewBadRequestError("missing required field", true, &code, fields, nil)

		if err.Code != code {
			t.Errorf("Code = %q, want %q", err.Code, code)
		}
		if len(err.Errors) != 1 || err.Errors[0].Field != "device_id" {
			t.Errorf("Errors = %+v, want device_id field error", err.Errors)
		}
	})
}

func TestHTTPErrorIs(t *testing.T) {
	wrapped := fmt.Errorf("registering device: %w", NewInternalServerError())

	if !errors.Is(wrapped, &HTTPError{}) {
		t.Error("errors.Is() = false, want true for wrapped *HTTPError")
	}

	var httpErr *HTTPError
	if !errors.As(wrapped, &httpErr) {
		t.Fatal("errors.As() = false, want true")
	}
	if httpErr.Status != http.StatusInternalServerError {
		t.Errorf("Status = %d, want 500", httpErr.Status)
	}
}

func TestWithMessageDoesNotMutate(t *testing.T) {
	base := NewServiceUnavailableError()
	copied := base.WithMessage("database timeout")

	if base.Message == copied.Message {
		t.Error("WithMessage() mutated the original error")
	}
	if copied.Status != http.StatusServiceUnavailable {
		t.Errorf("Status = %d, want 503", copied.Status)
	}
	if copied.Action == nil || copied.Action.Type != ActionTypeRetry {
		t.Errorf("Action = %+v, want retry action", copied.Action)
	}

	recoded := base.WithCode("RPOS_LOGIN_ERROR")
	if recoded.Code != "RPOS_LOGIN_ERROR" || base.Code != "SERVICE_UNAVAILABLE" {
		t.Errorf("WithCode() = %q (base %q)", recoded.Code, base.Code)
	}
}
