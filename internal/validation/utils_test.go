package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/rpos-gateway/internal/errs"
	"github.com/labstack/echo/v4"
)

type tagged struct {
	DeviceID string `json:"device_id" validate:"required"`
	Port     string `json:"port" validate:"omitempty,numeric"`
}

func (r *tagged) Validate() error {
	return Struct(r)
}

type custom struct {
	Code string `json:"code"`
}

func (r *custom) Validate() error {
	if r.Code == "" {
		return CustomValidationErrors{{Field: "code", Message: "Code is required"}}
	}
	return nil
}

func newContext(body string) echo.Context {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("error = %v, want *errs.HTTPError", err)
	}
	if httpErr.Status != http.StatusBadRequest {
		t.Errorf("Status = %d, want 400", httpErr.Status)
	}
	return httpErr
}

func TestBindAndValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		var req tagged
		if err := BindAndValidate(newContext(`{"device_id":"D1","port":"8080"}`), &req); err != nil {
			t.Fatalf("BindAndValidate() error = %v", err)
		}
		if req.DeviceID != "D1" {
			t.Errorf("DeviceID = %q, want D1", req.DeviceID)
		}
	})

	t.Run("tag errors use client field names", func(t *testing.T) {
		var req tagged
		httpErr := asHTTPError(t, BindAndValidate(newContext(`{"port":"x"}`), &req))

		if httpErr.Message != "Validation failed" {
			t.Errorf("Message = %q", httpErr.Message)
		}
		got := map[string]string{}
		for _, fe := range httpErr.Errors {
			got[fe.Field] = fe.Error
		}
		if got["device_id"] != "is required" || got["port"] != "must be a number" {
			t.Errorf("Errors = %v", httpErr.Errors)
		}
	})

	t.Run("single custom error becomes the message", func(t *testing.T) {
		var req custom
		httpErr := asHTTPError(t, BindAndValidate(newContext(`{}`), &req))

		if httpErr.Message != "Code is required" {
			t.Errorf("Message = %q, want Code is required", httpErr.Message)
		}
		if len(httpErr.Errors) != 1 || httpErr.Errors[0].Field != "code" {
			t.Errorf("Errors = %v", httpErr.Errors)
		}
	})

	t.Run("malformed JSON", func(t *testing.T) {
		var req tagged
		httpErr := asHTTPError(t, BindAndValidate(newContext(`{"device_id":`), &req))

		if httpErr.Message == "" {
			t.Error("Message is empty")
		}
		if httpErr.Errors != nil {
			t.Errorf("Errors = %v, want none", httpErr.Errors)
		}
	})
}
