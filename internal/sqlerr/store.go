package sqlerr

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicateKey matches any StoreError caused by a unique violation.
//
//	errors.Is(err, sqlerr.ErrDuplicateKey)
var ErrDuplicateKey = errors.New("duplicate key")

// StoreError is the distinguished failure returned by repositories when
// the database could not complete an operation.
//
// Retryable is true for transient conditions (timeouts, dropped
// connections, serialization failures, deadlocks, connection limits);
// callers map it to a retry-later response. Everything else is fatal.
type StoreError struct {
	// Op names the repository operation, e.g. "rpos_login.upsert".
	Op string

	// Table is the table the operation targeted.
	Table string

	Code       Code
	Constraint string
	Retryable  bool

	Err error
}

func (e *StoreError) Error() string {
	if e.Constraint != "" {
		return fmt.Sprintf("%s: %s on %s: %v", e.Op, e.Code, e.Constraint, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Code, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrDuplicateKey) match unique violations.
func (e *StoreError) Is(target error) bool {
	return target == ErrDuplicateKey && e.Code == UniqueViolation
}

// IsDuplicateKeyOn reports whether err is a unique violation of the named
// constraint. Violations of any other unique key do not match.
func IsDuplicateKeyOn(err error, constraint string) bool {
	var storeErr *StoreError
	if !errors.As(err, &storeErr) {
		return false
	}
	return storeErr.Code == UniqueViolation && storeErr.Constraint == constraint
}

// Wrap classifies err as a StoreError for the given operation.
//
// nil stays nil, and "no rows" is passed through untouched because an
// empty result is an expected outcome of a lookup, not a store failure.
func Wrap(op, table string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		return err
	}

	wrapped := &StoreError{
		Op:    op,
		Table: table,
		Code:  Other,
		Err:   err,
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		converted := ConvertPgError(pgerr)
		wrapped.Code = converted.Code
		wrapped.Constraint = converted.ConstraintName
		if converted.TableName != "" {
			wrapped.Table = converted.TableName
		}
		wrapped.Err = converted
	}

	wrapped.Retryable = IsRetryable(err)

	return wrapped
}

// IsRetryable reports whether err is a transient store condition.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		return storeErr.Retryable
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}

	if pgconn.Timeout(err) || pgconn.SafeToRetry(err) {
		return true
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		switch MapCode(pgerr.Code) {
		case SerializationFailure, DeadlockDetected, TooManyConnections,
			QueryCanceled, AdminShutdown, ConnectionException:
			return true
		}
		return false
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
