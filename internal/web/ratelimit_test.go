package web

import (
	"testing"
	"time"
)

func TestRateLimiterAllowsWithinBudget(t *testing.T) {
	rl := newRateLimiter(3, time.Minute)
	for i := 0; i < 3; i++ {
		if !rl.allow("10.0.0.1") {
			t.Fatalf("request %d denied, want allowed", i+1)
		}
	}
	if rl.allow("10.0.0.1") {
		t.Fatal("request over budget allowed, want denied")
	}
}

func TestRateLimiterIsPerClient(t *testing.T) {
	rl := newRateLimiter(1, time.Minute)
	if !rl.allow("10.0.0.1") {
		t.Fatal("first client denied")
	}
	if !rl.allow("10.0.0.2") {
		t.Fatal("second client denied, budgets must be independent")
	}
	if rl.allow("10.0.0.1") {
		t.Fatal("first client allowed over budget")
	}
}

func TestRateLimiterRefills(t *testing.T) {
	rl := newRateLimiter(60, time.Minute)
	for i := 0; i < 60; i++ {
		rl.allow("10.0.0.1")
	}
	if rl.allow("10.0.0.1") {
		t.Fatal("allowed with empty bucket")
	}

	// One token refills per second at 60/min. Backdate the bucket instead
	// of sleeping.
	rl.mu.Lock()
	rl.buckets["10.0.0.1"].lastSeen = time.Now().Add(-2 * time.Second)
	rl.mu.Unlock()

	if !rl.allow("10.0.0.1") {
		t.Fatal("denied after refill window")
	}
}
