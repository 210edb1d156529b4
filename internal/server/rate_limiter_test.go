package server

import (
	"testing"
	"time"
)

func TestRateLimiterAllowsWithinLimit(t *testing.T) {
	r := newRateLimiter(2, time.Minute)

	if !r.Allow("10.0.0.1") || !r.Allow("10.0.0.1") {
		t.Fatal("expected first two requests to pass")
	}
	if r.Allow("10.0.0.1") {
		t.Fatal("expected third request to be rejected")
	}
	if !r.Allow("10.0.0.2") {
		t.Fatal("expected other keys to have their own window")
	}
}

func TestRateLimiterRejectsEmptyKey(t *testing.T) {
	r := newRateLimiter(2, time.Minute)
	if r.Allow("") {
		t.Fatal("expected empty key to be rejected")
	}
}

func TestRateLimiterWindowRolls(t *testing.T) {
	r := newRateLimiter(1, time.Millisecond)

	if !r.Allow("10.0.0.1") {
		t.Fatal("expected first request to pass")
	}
	if r.Allow("10.0.0.1") {
		t.Fatal("expected second request in window to be rejected")
	}
	time.Sleep(5 * time.Millisecond)
	if !r.Allow("10.0.0.1") {
		t.Fatal("expected request in fresh window to pass")
	}
}

func TestNilRateLimiterAllowsEverything(t *testing.T) {
	var r *rateLimiter
	if !r.Allow("10.0.0.1") {
		t.Fatal("expected nil limiter to allow")
	}
	if newRateLimiter(0, time.Minute) != nil {
		t.Fatal("expected zero limit to disable the limiter")
	}
}
