package sqlerr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/rpos-gateway/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestMapCode(t *testing.T) {
	tests := []struct {
		sqlState string
		want     Code
	}{
		{"23505", UniqueViolation},
		{"23502", NotNullViolation},
		{"23514", CheckViolation},
		{"40001", SerializationFailure},
		{"40P01", DeadlockDetected},
		{"57014", QueryCanceled},
		{"08006", ConnectionException},
		{"08001", ConnectionException},
		{"XX000", Other},
	}

	for _, tt := range tests {
		t.Run(tt.sqlState, func(t *testing.T) {
			if got := MapCode(tt.sqlState); got != tt.want {
				t.Errorf("MapCode(%q) = %q, want %q", tt.sqlState, got, tt.want)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		if err := Wrap("rpos_login.upsert", "rpos_login", nil); err != nil {
			t.Errorf("Wrap(nil) = %v, want nil", err)
		}
	})

	t.Run("no rows passes through", func(t *testing.T) {
		err := Wrap("rpos_login.find", "rpos_login", pgx.ErrNoRows)
		if !errors.Is(err, pgx.ErrNoRows) {
			t.Fatalf("Wrap(ErrNoRows) = %v, want ErrNoRows", err)
		}
		var storeErr *StoreError
		if errors.As(err, &storeErr) {
			t.Error("ErrNoRows must not become a StoreError")
		}
	})

	t.Run("unique violation is fatal and matches ErrDuplicateKey", func(t *testing.T) {
		pgerr := &pgconn.PgError{
			Code:           "23505",
			Severity:       "ERROR",
			Message:        "duplicate key value violates unique constraint",
			TableName:      "rpos_login",
			ConstraintName: "rpos_login_device_id_key",
		}

		err := Wrap("rpos_login.insert", "rpos_login", pgerr)

		var storeErr *StoreError
		if !errors.As(err, &storeErr) {
			t.Fatalf("Wrap() = %T, want *StoreError", err)
		}
		if storeErr.Retryable {
			t.Error("unique violation must not be retryable")
		}
		if storeErr.Constraint != "rpos_login_device_id_key" {
			t.Errorf("Constraint = %q", storeErr.Constraint)
		}
		if !errors.Is(err, ErrDuplicateKey) {
			t.Error("errors.Is(err, ErrDuplicateKey) = false, want true")
		}
		if !IsDuplicateKeyOn(err, "rpos_login_device_id_key") {
			t.Error("IsDuplicateKeyOn(device_id key) = false, want true")
		}
		if IsDuplicateKeyOn(err, "rpos_login_lan_ip_key") {
			t.Error("IsDuplicateKeyOn(other key) = true, want false")
		}
		if ErrCode(err) != UniqueViolation {
			t.Errorf("ErrCode() = %q, want %q", ErrCode(err), UniqueViolation)
		}
	})

	t.Run("deadline exceeded is retryable", func(t *testing.T) {
		err := Wrap("rpos_login.find", "rpos_login", fmt.Errorf("query: %w", context.DeadlineExceeded))

		if !IsRetryable(err) {
			t.Error("IsRetryable() = false, want true for deadline exceeded")
		}
		if errors.Is(err, ErrDuplicateKey) {
			t.Error("timeout must not match ErrDuplicateKey")
		}
	})

	t.Run("serialization failure is retryable", func(t *testing.T) {
		err := Wrap("rpos_login.upsert", "rpos_login", &pgconn.PgError{Code: "40001"})
		if !IsRetryable(err) {
			t.Error("IsRetryable() = false, want true for 40001")
		}
	})

	t.Run("already wrapped is not rewrapped", func(t *testing.T) {
		first := Wrap("a", "rpos_login", &pgconn.PgError{Code: "23514"})
		second := Wrap("b", "other", first)

		var storeErr *StoreError
		if !errors.As(second, &storeErr) || storeErr.Op != "a" {
			t.Errorf("Wrap() rewrapped: %v", second)
		}
	})
}

func TestHandleError(t *testing.T) {
	t.Run("retryable store error becomes 503", func(t *testing.T) {
		err := HandleError(Wrap("rpos_login.upsert", "rpos_login", context.DeadlineExceeded))

		var httpErr *errs.HTTPError
		if !errors.As(err, &httpErr) {
			t.Fatalf("HandleError() = %T, want *errs.HTTPError", err)
		}
		if httpErr.Status != http.StatusServiceUnavailable {
			t.Errorf("Status = %d, want 503", httpErr.Status)
		}
		if httpErr.Code != "RPOS_LOGIN_ERROR" {
			t.Errorf("Code = %q, want RPOS_LOGIN_ERROR", httpErr.Code)
		}
	})

	t.Run("constraint violation becomes 500 with generic message", func(t *testing.T) {
		err := HandleError(Wrap("rpos_login.upsert", "rpos_login", &pgconn.PgError{
			Code:      "23514",
			TableName: "rpos_login",
			Message:   "new row violates check constraint",
		}))

		var httpErr *errs.HTTPError
		if !errors.As(err, &httpErr) {
			t.Fatalf("HandleError() = %T, want *errs.HTTPError", err)
		}
		if httpErr.Status != http.StatusInternalServerError {
			t.Errorf("Status = %d, want 500", httpErr.Status)
		}
		if httpErr.Code != "RPOS_LOGIN_INVALID" {
			t.Errorf("Code = %q, want RPOS_LOGIN_INVALID", httpErr.Code)
		}
		if httpErr.Message != http.StatusText(http.StatusInternalServerError) {
			t.Errorf("Message = %q leaks driver details", httpErr.Message)
		}
	})

	t.Run("http errors pass through", func(t *testing.T) {
		in := errs.NewBadRequestError("missing required field", true, nil, nil, nil)
		if out := HandleError(in); out != in {
			t.Errorf("HandleError() = %v, want the same *HTTPError", out)
		}
	})

	t.Run("annotated no rows names the entity", func(t *testing.T) {
		err := HandleError(fmt.Errorf("table:locations: %w", pgx.ErrNoRows))

		var httpErr *errs.HTTPError
		if !errors.As(err, &httpErr) {
			t.Fatalf("HandleError() = %T", err)
		}
		if httpErr.Status != http.StatusNotFound || httpErr.Message != "Location not found" {
			t.Errorf("got %d %q, want 404 Location not found", httpErr.Status, httpErr.Message)
		}
	})

	t.Run("unknown error becomes 500", func(t *testing.T) {
		var httpErr *errs.HTTPError
		if !errors.As(HandleError(errors.New("boom")), &httpErr) || httpErr.Status != http.StatusInternalServerError {
			t.Errorf("HandleError(boom) = %+v, want 500", httpErr)
		}
	})
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	tests := []struct {
		constraint string
		want       string
	}{
		{"unique_users_email", "email"},
		{"users_email_key", "email"},
		{"", ""},
		{"rpos_login_pkey", ""},
	}

	for _, tt := range tests {
		if got := extractColumnForUniqueViolation(tt.constraint); got != tt.want {
			t.Errorf("extractColumnForUniqueViolation(%q) = %q, want %q", tt.constraint, got, tt.want)
		}
	}
}
