package models

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// FaultKind classifies a provider call failure.
type FaultKind string

const (
	FaultTimeout     FaultKind = "timeout"
	FaultHTTP        FaultKind = "http-error"
	FaultRateLimited FaultKind = "rate-limited"
	FaultMalformed   FaultKind = "malformed-payload"
)

// ErrNoData is the explicit empty outcome: a well-formed response that simply
// carried no value. Not a failure; the orchestrator moves on without retrying.
var ErrNoData = errors.New("provider returned no data")

// Fault is a typed provider failure. Adapters surface transport and protocol
// failures as Faults so the orchestrator can decide on retry and fallback.
type Fault struct {
	Kind       FaultKind
	StatusCode int // set for http-error and rate-limited
	Err        error
}

func (f *Fault) Error() string {
	switch {
	case f.StatusCode != 0:
		return fmt.Sprintf("%s (status %d)", f.Kind, f.StatusCode)
	case f.Err != nil:
		return fmt.Sprintf("%s: %v", f.Kind, f.Err)
	default:
		return string(f.Kind)
	}
}

func (f *Fault) Unwrap() error { return f.Err }

// TimeoutFault wraps a timed-out transport error.
func TimeoutFault(err error) *Fault {
	return &Fault{Kind: FaultTimeout, Err: err}
}

// MalformedFault wraps an unexpected payload shape. Not retryable.
func MalformedFault(err error) *Fault {
	return &Fault{Kind: FaultMalformed, Err: err}
}

// FaultFromStatus maps a non-2xx HTTP status to a typed fault.
// 429 is surfaced as rate-limited so the orchestrator can back off.
func FaultFromStatus(code int) *Fault {
	if code == http.StatusTooManyRequests {
		return &Fault{Kind: FaultRateLimited, StatusCode: code}
	}
	return &Fault{Kind: FaultHTTP, StatusCode: code}
}

// ClassifyTransport maps an error from the HTTP client into a typed fault.
func ClassifyTransport(err error) *Fault {
	if errors.Is(err, context.DeadlineExceeded) {
		return TimeoutFault(err)
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return TimeoutFault(err)
	}
	return &Fault{Kind: FaultHTTP, Err: err}
}

// IsRetryable reports whether the failure is a transient transport fault
// worth one retry. Malformed payloads and rate limits are not retried.
func IsRetryable(err error) bool {
	var f *Fault
	if !errors.As(err, &f) {
		return false
	}
	return f.Kind == FaultTimeout || f.Kind == FaultHTTP
}

// IsRateLimited reports whether the provider throttled the call.
func IsRateLimited(err error) bool {
	var f *Fault
	return errors.As(err, &f) && f.Kind == FaultRateLimited
}

// IsNoData reports the explicit empty outcome.
func IsNoData(err error) bool { return errors.Is(err, ErrNoData) }

// FaultKindOf returns the fault kind for metrics labels, or "other".
func FaultKindOf(err error) string {
	var f *Fault
	if errors.As(err, &f) {
		return string(f.Kind)
	}
	if IsNoData(err) {
		return "empty"
	}
	return "other"
}
