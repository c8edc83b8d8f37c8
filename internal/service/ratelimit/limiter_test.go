package ratelimit

import (
	"testing"
	"time"
)

func TestAllowConsumesTokens(t *testing.T) {
	l := New()
	for i := 0; i < 3; i++ {
		if !l.Allow("client", 3, 0) {
			t.Fatalf("request %d should pass", i)
		}
	}
	if l.Allow("client", 3, 0) {
		t.Fatalf("expected bucket exhausted")
	}
}

func TestAllowKeysAreIndependent(t *testing.T) {
	l := New()
	if !l.Allow("a", 1, 0) {
		t.Fatalf("first key should pass")
	}
	if l.Allow("a", 1, 0) {
		t.Fatalf("first key should be exhausted")
	}
	if !l.Allow("b", 1, 0) {
		t.Fatalf("second key should pass")
	}
}

func TestAllowRefills(t *testing.T) {
	l := New()
	if !l.Allow("client", 1, 100) {
		t.Fatalf("first request should pass")
	}
	if l.Allow("client", 1, 100) {
		t.Fatalf("bucket should be empty")
	}
	time.Sleep(50 * time.Millisecond)
	if !l.Allow("client", 1, 100) {
		t.Fatalf("bucket should have refilled")
	}
}
