package dblock

import (
	"os"
	"testing"
	"time"
)

// bogusPID is well above any plausible pid on the platforms we support.
const bogusPID = 1 << 30

func TestProcessAlive(t *testing.T) {
	if !ProcessAlive(os.Getpid()) {
		t.Error("ProcessAlive(own pid) = false, want true")
	}
	if ProcessAlive(bogusPID) {
		t.Error("ProcessAlive(bogus pid) = true, want false")
	}
	if ProcessAlive(0) || ProcessAlive(-1) {
		t.Error("ProcessAlive(non-positive pid) = true, want false")
	}
}

func TestExpired(t *testing.T) {
	now := time.Now()
	l := &Lock{AcquiredAt: now, TimeoutMs: 1000}

	if l.Expired(now) {
		t.Error("record expired at the instant it was acquired")
	}
	if l.Expired(now.Add(999 * time.Millisecond)) {
		t.Error("record expired before its timeout elapsed")
	}
	if !l.Expired(now.Add(1000 * time.Millisecond)) {
		t.Error("record not expired exactly at acquiredAt+timeout")
	}
}

func TestStale(t *testing.T) {
	now := time.Now()

	fresh := &Lock{AcquiredAt: now, TimeoutMs: 60000, PID: os.Getpid()}
	if fresh.Stale(now) {
		t.Error("live, unexpired record reported stale")
	}

	expired := &Lock{AcquiredAt: now.Add(-time.Minute), TimeoutMs: 1000, PID: os.Getpid()}
	if !expired.Stale(now) {
		t.Error("expired record not reported stale despite live owner")
	}

	orphaned := &Lock{AcquiredAt: now, TimeoutMs: 60000, PID: bogusPID}
	if !orphaned.Stale(now) {
		t.Error("record with dead owner not reported stale")
	}
}
