package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestAllowConsumesTokens(t *testing.T) {
	l := New()

	for i := 0; i < 3; i++ {
		if !l.Allow("nse", 3, 0) {
			t.Fatalf("call %d should be allowed", i+1)
		}
	}
	if l.Allow("nse", 3, 0) {
		t.Fatalf("bucket should be empty")
	}
}

func TestKeysAreIndependent(t *testing.T) {
	l := New()

	if !l.Allow("nse", 1, 0) {
		t.Fatalf("first key should be allowed")
	}
	if !l.Allow("yahoo", 1, 0) {
		t.Fatalf("second key has its own bucket")
	}
	if l.Allow("nse", 1, 0) {
		t.Fatalf("first key should be exhausted")
	}
}

func TestWaitReturnsWhenRefilled(t *testing.T) {
	l := New()
	l.Allow("k", 1, 50) // drain

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := l.Wait(ctx, "k", 1, 50); err != nil {
		t.Fatalf("wait should succeed after refill: %v", err)
	}
}

func TestWaitHonorsContext(t *testing.T) {
	l := New()
	l.Allow("k", 1, 0) // drain, no refill

	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()
	if err := l.Wait(ctx, "k", 1, 0); err == nil {
		t.Fatalf("wait should fail when the context expires")
	}
}
