package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
)

// Error is the normalized error shape every endpoint call returns. Message
// is user-facing copy, Status is the HTTP status (0 for transport errors),
// Data carries the raw response body, and Err preserves the original cause.
type Error struct {
	Message string
	Status  int
	Data    json.RawMessage
	Err     error
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// errorBody is the subset of backend error payloads we surface to users.
type errorBody struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

// newResponseError normalizes a non-2xx response into an *Error, preferring
// the backend's detail or message fields over the fallback copy.
func newResponseError(status int, body []byte, fallback string) *Error {
	message := fallback

	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Detail != "" {
			message = parsed.Detail
		} else if parsed.Message != "" {
			message = parsed.Message
		}
	}

	return &Error{
		Message: message,
		Status:  status,
		Data:    json.RawMessage(body),
		Err:     httperror.NewHTTPError(status, message),
	}
}

// newTransportError normalizes a network-class failure.
func newTransportError(err error, fallback string) *Error {
	return &Error{
		Message: fallback,
		Err:     err,
	}
}

// StatusCode extracts the HTTP status from a normalized or status-coded
// error. Returns 0 for transport errors and unknown error types.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	if httperror.IsHTTPError(err) {
		return httperror.GetStatusCode(err)
	}
	return 0
}

// IsUnauthorized reports whether the error is a 401.
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

// IsNotFound reports whether the error is a 404.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// IsTransport reports whether the error is a network-class failure with no
// HTTP status.
func IsTransport(err error) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status == 0
	}
	return false
}
