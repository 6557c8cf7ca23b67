package recordapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/zjrosen/riceinspect/internal/inspection"
)

// RemoteError is any non-2xx response from the record service.
//
// A 404 also matches inspection.ErrNotFound, and a validation body also
// unwraps to *inspection.RemoteValidationError.
type RemoteError struct {
	Method string
	Path   string
	Status int
	Body   []byte
}

func (e *RemoteError) Error() string {
	if msg := e.Message(); msg != "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, msg)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, http.StatusText(e.Status))
}

// Message returns the "message" field of a JSON error body. Array messages
// are joined with "; ". Empty when the body has no message.
func (e *RemoteError) Message() string {
	var body struct {
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(e.Body, &body); err != nil || len(body.Message) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(body.Message, &s); err == nil {
		return s
	}
	var list []string
	if err := json.Unmarshal(body.Message, &list); err == nil {
		return strings.Join(list, "; ")
	}
	return ""
}

// Unwrap exposes the classification errors carried by the response.
func (e *RemoteError) Unwrap() []error {
	var errs []error
	if e.Status == http.StatusNotFound {
		errs = append(errs, inspection.ErrNotFound)
	}
	if e.Status >= 400 && e.Status < 500 {
		if verr, ok := inspection.ParseRemoteValidation(e.Body); ok {
			errs = append(errs, verr)
		}
	}
	return errs
}

// NetworkError is a transport failure or timeout; no response was received.
type NetworkError struct {
	Method string
	Path   string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Timeout reports whether the failure was a deadline or client timeout.
func (e *NetworkError) Timeout() bool {
	var t interface{ Timeout() bool }
	if errors.As(e.Err, &t) {
		return t.Timeout()
	}
	return false
}

// IsNetwork reports whether err is (or wraps) a *NetworkError.
func IsNetwork(err error) bool {
	var nerr *NetworkError
	return errors.As(err, &nerr)
}
