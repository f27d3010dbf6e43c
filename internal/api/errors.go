package api

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Kind classifies a failed request into the handful of cases the rest of the
// console branches on. The client wrapper assigns exactly one Kind per
// failure, so feature code never inspects raw status codes.
type Kind int

const (
	// KindTransport means no response reached the server (DNS failure,
	// refused connection, timeout). Recoverable by retrying.
	KindTransport Kind = iota

	// KindUnauthenticated is a 401. Fatal to the current session: the
	// wrapper has already cleared the session store by the time the caller
	// sees this error.
	KindUnauthenticated

	// KindRateLimited is a 429. Recoverable by waiting; never retried
	// automatically.
	KindRateLimited

	// KindServerFault is a 500 or 503. Surfaced generically.
	KindServerFault

	// KindNotFound is a 404, e.g. a stale list row. Recoverable locally.
	KindNotFound

	// KindValidation is any other 4xx carrying a structured field-error
	// payload. Mapped to per-field messages on the originating form.
	KindValidation

	// KindUnexpected covers everything else.
	KindUnexpected
)

// String returns a short label for the kind.
func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindRateLimited:
		return "rate_limited"
	case KindServerFault:
		return "server_fault"
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	default:
		return "unexpected"
	}
}

// User-facing messages for the normalized cases.
const (
	msgTransport   = "Unable to reach the server. Check your connection and try again."
	msgRateLimited = "Too many requests. Please wait a moment before trying again."
	msgServerFault = "Something went wrong on the server. Please try again later."
	msgNotFound    = "The requested resource was not found."
	msgSessionGone = "Your session has expired. Please log in again."
)

// Error is the normalized failure every API call returns.
//
// Message is always safe to show to the user. Fields is populated only for
// KindValidation and maps field names to their messages.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
	Fields     map[string][]string
	Err        error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.Kind, e.Message)
	if len(e.Fields) > 0 {
		names := make([]string, 0, len(e.Fields))
		for name := range e.Fields {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&b, "\n  %s: %s", name, strings.Join(e.Fields[name], "; "))
		}
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// AsError extracts an *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsUnauthenticated reports whether err is the forced-logout case.
func IsUnauthenticated(err error) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.Kind == KindUnauthenticated
}

// IsValidation reports whether err carries field-level validation messages.
func IsValidation(err error) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.Kind == KindValidation
}

// IsNotFound reports whether err is a 404.
func IsNotFound(err error) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.Kind == KindNotFound
}
