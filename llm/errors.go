// errors.go classifies gateway failures so callers can decide what is
// retryable and what message the end user should see. Raw transport
// errors never reach the chat surface.
package llm

import "fmt"

// ErrorKind is a closed classification of gateway failures.
type ErrorKind int

const (
	// KindTimeout — the request exceeded the configured timeout.
	KindTimeout ErrorKind = iota

	// KindConnection — the endpoint was unreachable.
	KindConnection

	// KindAuth — HTTP 401, bad credentials.
	KindAuth

	// KindRateLimited — HTTP 429.
	KindRateLimited

	// KindHTTP — any other non-2xx status.
	KindHTTP

	// KindMalformed — the response body could not be decoded, or it
	// carried no choices.
	KindMalformed
)

// String returns the kind label used in logs.
func (k ErrorKind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindConnection:
		return "connection"
	case KindAuth:
		return "auth"
	case KindRateLimited:
		return "rate_limited"
	case KindHTTP:
		return "http"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// Error is a structured gateway error.
type Error struct {
	Kind       ErrorKind
	StatusCode int // set for KindAuth, KindRateLimited, KindHTTP
	Message    string
	Cause      error
}

func (e *Error) Error() string {
	s := fmt.Sprintf("llm %s: %s", e.Kind, e.Message)
	if e.StatusCode > 0 {
		s = fmt.Sprintf("llm %s (HTTP %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", s, e.Cause)
	}
	return s
}

func (e *Error) Unwrap() error { return e.Cause }

// UserMessage maps the error kind to the template shown to end users.
func (e *Error) UserMessage() string {
	switch e.Kind {
	case KindTimeout:
		return "API request timed out. Please try again."
	case KindConnection:
		return "Unable to connect to the API. Please check your internet connection."
	case KindAuth:
		return "Invalid API key. Please check your OPENROUTER_API_KEY."
	case KindRateLimited:
		return "Rate limit exceeded. Please try again in a moment."
	case KindMalformed:
		return "Unexpected API response format."
	default:
		return fmt.Sprintf("Unexpected error occurred: %s", e.Message)
	}
}

func newError(kind ErrorKind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

func newHTTPError(status int, body string) *Error {
	kind := KindHTTP
	switch status {
	case 401:
		kind = KindAuth
	case 429:
		kind = KindRateLimited
	}
	return &Error{Kind: kind, StatusCode: status, Message: body}
}
