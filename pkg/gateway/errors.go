package gateway

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"google.golang.org/genai"
)

// Kind classifies a completion failure.
type Kind int

const (
	// ServiceError covers every failure at the completion boundary: transport,
	// authentication, quota, malformed or empty responses.
	ServiceError Kind = iota + 1
	// ConfigurationError means no usable credential was configured.
	ConfigurationError
)

func (k Kind) String() string {
	switch k {
	case ServiceError:
		return "service error"
	case ConfigurationError:
		return "configuration error"
	default:
		return "unknown error"
	}
}

// Error is the failure half of a completion result.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	if e.Msg == "" {
		return e.Err.Error()
	}
	return e.Msg + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

func configError(msg string) *Error {
	return &Error{Kind: ConfigurationError, Msg: msg}
}

func serviceError(msg string, err error) *Error {
	return &Error{Kind: ServiceError, Msg: msg, Err: err}
}

// IsConfiguration reports whether err is a ConfigurationError.
func IsConfiguration(err error) bool {
	var ge *Error
	return errors.As(err, &ge) && ge.Kind == ConfigurationError
}

// IsService reports whether err is a ServiceError.
func IsService(err error) bool {
	var ge *Error
	return errors.As(err, &ge) && ge.Kind == ServiceError
}

// classify wraps an SDK error as a ServiceError whose message names the most
// likely cause. The kind is never refined further.
func classify(err error) *Error {
	if err == nil {
		return nil
	}
	var ge *Error
	if errors.As(err, &ge) {
		return ge
	}
	if errors.Is(err, context.Canceled) {
		return serviceError("request canceled", err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return serviceError("request timed out", err)
	}

	s := strings.ToLower(err.Error())
	if code := statusCode(err); code != 0 {
		if ge := classifyStatus(code, s, err); ge != nil {
			return ge
		}
	}

	// Untyped errors carry URLs and response bodies, so only words are matched.
	switch {
	case containsAny(s, "unauthorized", "invalid api key", "incorrect api key", "forbidden", "permission denied"):
		return serviceError("authentication failed", err)
	case containsAny(s, "rate limit", "quota", "too many requests", "resource_exhausted"):
		return serviceError("rate limited or quota exceeded", err)
	case containsAny(s, "context length", "too many tokens", "maximum context"):
		return serviceError("conversation too long", err)
	case containsAny(s, "model not found", "not found"):
		return serviceError("model not found", err)
	case containsAny(s, "connection", "eof", "timeout", "dial", "refused", "no such host"):
		return serviceError("connection error", err)
	default:
		return serviceError("completion failed", err)
	}
}

// statusCode extracts the HTTP status from an SDK API error, or 0.
func statusCode(err error) int {
	var oaErr *openai.Error
	if errors.As(err, &oaErr) {
		return oaErr.StatusCode
	}
	var gErr genai.APIError
	if errors.As(err, &gErr) {
		return gErr.Code
	}
	return 0
}

// classifyStatus maps a known status code. It returns nil for codes that need
// the message text to tell apart.
func classifyStatus(code int, msg string, err error) *Error {
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return serviceError("authentication failed", err)
	case code == http.StatusTooManyRequests:
		return serviceError("rate limited or quota exceeded", err)
	case code == http.StatusNotFound:
		return serviceError("model not found", err)
	case code >= http.StatusInternalServerError:
		return serviceError("service unavailable", err)
	case code == http.StatusBadRequest && containsAny(msg, "context length", "too many tokens", "maximum context"):
		return serviceError("conversation too long", err)
	default:
		return nil
	}
}

func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
