// Package errs defines the error shapes the API returns to clients.
//
// Every failure that leaves the service (a rejected registration,
// an unreachable database, an unknown route) is rendered from an
// HTTPError so callers can branch on a stable machine code instead
// of parsing messages.
//
// - Return consistent error shapes to API clients (JSON).
// - Support field-level validation errors for request payloads.
// - Support "action hints" (like retry) that clients can interpret.
// - Provide errors that play nicely with Go's standard errors package.
package errs

import (
	"net/http"
	"strings"
)

// FieldError represents a field-level validation error.
// Example:
//
//	{ "field": "device_id", "error": "is required" }
type FieldError struct {
	// Field is the payload key the error relates to (e.g. "device_id").
	Field string `json:"field"`

	// Error is the human-readable error message.
	Error string `json:"error"`
}

// ActionType is a string-based enum describing what the client should do.
type ActionType string

const (
	// ActionTypeRedirect tells the client it should redirect somewhere.
	// Usually "Value" holds the URL or route.
	ActionTypeRedirect ActionType = "redirect"

	// ActionTypeRetry tells the client the failure is transient and the
	// same request may succeed later. "Value" holds a suggested delay.
	ActionTypeRetry ActionType = "retry"
)

// Action describes an optional "what the client should do next" instruction.
type Action struct {
	// Type is the kind of action (e.g. "retry").
	Type ActionType `json:"type"`

	// Message is human-readable guidance for the client/UI.
	Message string `json:"message"`

	// Value is the payload for the action (e.g. redirect URL, retry delay).
	Value string `json:"value"`
}

// HTTPError is the main custom error type for API responses.
//
// It implements the `error` interface via Error() and is serialized
// directly to JSON by the global error handler.
// Fields:
//   - Code: machine-friendly error code (e.g. "BAD_REQUEST", "RPOS_LOGIN_ERROR").
//   - Title: the HTTP status text, rendered as the "error" key.
//   - Message: human-friendly message.
//   - Status: HTTP status code.
//   - Override: whether the client may show Message to end users verbatim.
//   - Errors: list of per-field errors (validation).
//   - Action: client instruction (optional).
type HTTPError struct {
	Code     string `json:"code"`
	Title    string `json:"error"`
	Message  string `json:"message"`
	Status   int    `json:"status"`
	Override bool   `json:"override"`

	// Errors holds field-level validation errors.
	Errors []FieldError `json:"errors,omitempty"`

	// Action is an optional client instruction.
	Action *Action `json:"action,omitempty"`
}

// Error makes *HTTPError satisfy the built-in `error` interface.
// Printing/logging the error shows the message.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also an *HTTPError.
//
// It does NOT compare Code/Status; it only checks the type, so
// errors.Is(err, &HTTPError{}) answers "is this already a client-facing error".
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)

	return ok
}

// WithMessage returns a copy of this HTTPError with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:     e.Code,
		Title:    e.Title,
		Message:  message,
		Status:   e.Status,
		Override: e.Override,
		Errors:   e.Errors,
		Action:   e.Action,
	}
}

// WithCode returns a copy of this HTTPError with Code replaced.
func (e *HTTPError) WithCode(code string) *HTTPError {
	clone := e.WithMessage(e.Message)
	clone.Code = code
	return clone
}

// MakeUpperCaseWithUnderscores converts a string into an UPPER_CASE_WITH_UNDERSCORES format.
//
// Example:
//
//	"Bad Request" -> "BAD_REQUEST"
//
// Used to create stable machine-readable error codes from HTTP status text.
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}

// codeFor returns the default machine code for an HTTP status.
func codeFor(status int) string {
	return MakeUpperCaseWithUnderscores(http.StatusText(status))
}
