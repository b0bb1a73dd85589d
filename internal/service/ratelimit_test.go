package service

import (
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestBucket(t *testing.T, rate, capacity float64) (*TokenBucket, *fakeClock) {
	t.Helper()
	tb := NewTokenBucket(rate, capacity)
	t.Cleanup(tb.Stop)
	clock := &fakeClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	tb.now = clock.now
	return tb, clock
}

func TestTokenBucket_AllowsUpToCapacity(t *testing.T) {
	tb, _ := newTestBucket(t, 1, 3)

	for i := 0; i < 3; i++ {
		if !tb.Allow("test-key") {
			t.Fatalf("request %d should be allowed (bucket not yet empty)", i+1)
		}
	}
	if tb.Allow("test-key") {
		t.Fatal("4th request should be denied (bucket empty)")
	}
}

func TestTokenBucket_DifferentKeysAreIndependent(t *testing.T) {
	tb, _ := newTestBucket(t, 1, 1)

	if !tb.Allow("ip-a") {
		t.Fatal("ip-a first request should be allowed")
	}
	if tb.Allow("ip-a") {
		t.Fatal("ip-a second request should be denied")
	}
	if !tb.Allow("ip-b") {
		t.Fatal("ip-b first request should be allowed (independent bucket)")
	}
}

func TestTokenBucket_Refills(t *testing.T) {
	tb, clock := newTestBucket(t, 0.5, 1)

	if !tb.Allow("k") {
		t.Fatal("first request should be allowed")
	}
	clock.advance(time.Second)
	if tb.Allow("k") {
		t.Fatal("half a token is not enough")
	}
	clock.advance(time.Second)
	if !tb.Allow("k") {
		t.Fatal("bucket should have refilled after two seconds")
	}
}

func TestTokenBucket_ZeroRateNeverRefills(t *testing.T) {
	tb, clock := newTestBucket(t, 0, 2)

	tb.Allow("k")
	tb.Allow("k")
	clock.advance(time.Hour)
	if tb.Allow("k") {
		t.Fatal("third request should be denied (no refill)")
	}
}

func TestTokenBucket_SweepDropsIdleKeys(t *testing.T) {
	tb, clock := newTestBucket(t, 1, 1)

	tb.Allow("old")
	clock.advance(11 * time.Minute)
	tb.Allow("fresh")

	if n := tb.sweep(); n != 1 {
		t.Fatalf("expected 1 bucket after sweep, got %d", n)
	}
	if !tb.Allow("old") {
		t.Fatal("a swept key starts again with a full bucket")
	}
}
