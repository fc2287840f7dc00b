package models

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestFaultFromStatus(t *testing.T) {
	tests := []struct {
		code int
		kind FaultKind
	}{
		{http.StatusTooManyRequests, FaultRateLimited},
		{http.StatusInternalServerError, FaultHTTP},
		{http.StatusUnauthorized, FaultHTTP},
	}
	for _, tt := range tests {
		f := FaultFromStatus(tt.code)
		if f.Kind != tt.kind {
			t.Errorf("status %d: got kind %q, want %q", tt.code, f.Kind, tt.kind)
		}
	}
}

func TestClassifyTransportTimeout(t *testing.T) {
	err := fmt.Errorf("request failed: %w", context.DeadlineExceeded)
	f := ClassifyTransport(err)
	if f.Kind != FaultTimeout {
		t.Fatalf("got kind %q, want timeout", f.Kind)
	}
	if !IsRetryable(f) {
		t.Fatalf("timeout should be retryable")
	}
}

func TestRateLimitedNotRetryable(t *testing.T) {
	f := FaultFromStatus(http.StatusTooManyRequests)
	if IsRetryable(f) {
		t.Fatalf("rate-limited must not be retried against the same source")
	}
	if !IsRateLimited(f) {
		t.Fatalf("expected rate-limited")
	}
}

func TestMalformedNotRetryable(t *testing.T) {
	f := MalformedFault(errors.New("unexpected end of JSON input"))
	if IsRetryable(f) {
		t.Fatalf("malformed payload must not be retried")
	}
}

func TestIsNoData(t *testing.T) {
	if !IsNoData(fmt.Errorf("quote: %w", ErrNoData)) {
		t.Fatalf("wrapped ErrNoData not recognized")
	}
	if IsNoData(errors.New("boom")) {
		t.Fatalf("unrelated error recognized as no-data")
	}
}
