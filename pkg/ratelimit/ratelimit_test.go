package ratelimit

import (
	"testing"
	"time"
)

func TestAllowUpToLimit(t *testing.T) {
	l := NewAttemptLimiter(3, time.Minute)
	defer l.Close()

	for i := 0; i < 3; i++ {
		if !l.Allow("user") {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	if l.Allow("user") {
		t.Fatal("attempt over the limit should be denied")
	}
}

func TestKeysAreIndependent(t *testing.T) {
	l := NewAttemptLimiter(1, time.Minute)
	defer l.Close()

	if !l.Allow("a") {
		t.Fatal("first key should be allowed")
	}
	if !l.Allow("b") {
		t.Fatal("other key must have its own bucket")
	}
	if l.Allow("a") {
		t.Fatal("first key should now be denied")
	}
}

func TestResetClearsBucket(t *testing.T) {
	l := NewAttemptLimiter(1, time.Minute)
	defer l.Close()

	l.Allow("user")
	if l.Allow("user") {
		t.Fatal("should be denied before reset")
	}
	l.Reset("user")
	if !l.Allow("user") {
		t.Fatal("should be allowed after reset")
	}
}

func TestWindowExpiry(t *testing.T) {
	l := NewAttemptLimiter(1, 20*time.Millisecond)
	defer l.Close()

	l.Allow("user")
	if l.Allow("user") {
		t.Fatal("should be denied inside window")
	}
	time.Sleep(40 * time.Millisecond)
	if !l.Allow("user") {
		t.Fatal("should be allowed after window passes")
	}
}
