package dblock

import "time"

// timeNow is overridden in tests. This package's tests must NOT use
// t.Parallel() because they mutate package-level variables without
// synchronization.
var timeNow = time.Now

// ProcessAlive reports whether a process with the given pid currently
// exists. The probe never affects the target. Any error — including
// permission errors that cannot distinguish "gone" from "forbidden" —
// reports not-alive, so an unrecoverable lock can always be reclaimed.
func ProcessAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	return probePID(pid)
}

// Expired reports whether the record's timeout has elapsed at now.
func (l *Lock) Expired(now time.Time) bool {
	return !now.Before(l.ExpiresAt())
}

// Stale reports whether the record can no longer be trusted: its timeout
// elapsed, or its owner is gone.
func (l *Lock) Stale(now time.Time) bool {
	return l.Expired(now) || !ProcessAlive(l.PID)
}
