package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_New(t *testing.T) {
	limiter := NewLimiter(10, 5)
	if limiter.defaultBurst != 5 {
		t.Errorf("expected burst 5, got %d", limiter.defaultBurst)
	}

	l2 := NewLimiter(10, -1)
	if l2.defaultBurst != 1 {
		t.Errorf("expected burst 1 for negative input, got %d", l2.defaultBurst)
	}
}

func TestLimiter_Wait(t *testing.T) {
	limiter := NewLimiter(100, 1)
	ctx := context.Background()

	if err := limiter.Wait(ctx, "http://example.com/foo"); err != nil {
		t.Errorf("wait failed: %v", err)
	}

	// A different domain has its own budget
	if err := limiter.Wait(ctx, "http://other.example.org"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
}

func TestLimiter_PacesSameDomain(t *testing.T) {
	limiter := NewLimiter(20, 1) // 50ms between requests after the burst
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := limiter.Wait(ctx, "http://example.com/page"); err != nil {
			t.Fatalf("wait %d failed: %v", i, err)
		}
	}
	elapsed := time.Since(start)

	if elapsed < 80*time.Millisecond {
		t.Errorf("3 requests at 20 rps burst 1 took %v, want >= ~100ms", elapsed)
	}
}

func TestLimiter_Allow(t *testing.T) {
	limiter := NewLimiter(1, 1)

	if !limiter.Allow("http://example.com") {
		t.Error("first request should be allowed")
	}
	if limiter.Allow("http://example.com") {
		t.Error("second immediate request should be denied")
	}
	if !limiter.Allow("http://other.example.org") {
		t.Error("other domain should have its own burst")
	}
}

func TestLimiter_InvalidURL(t *testing.T) {
	limiter := NewLimiter(10, 1)

	if limiter.Allow("://not-a-url") {
		t.Error("unparseable URL should not be allowed")
	}
	if err := limiter.Wait(context.Background(), "://not-a-url"); err == nil {
		t.Error("expected error for unparseable URL")
	}
}

func TestLimiter_WaitCancelled(t *testing.T) {
	limiter := NewLimiter(0.1, 1) // one request per 10s after the burst
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	// Burn the burst, then the second wait must fail fast
	_ = limiter.Wait(context.Background(), "http://example.com")
	if err := limiter.Wait(ctx, "http://example.com"); err == nil {
		t.Error("expected context error while rate limited")
	}
}
