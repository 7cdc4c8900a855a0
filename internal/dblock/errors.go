package dblock

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidRecord marks a lock file whose payload could not be parsed.
	ErrInvalidRecord = errors.New("invalid lock record")

	// ErrInvalidOwner is returned when releasing a lock that belongs to a
	// different process.
	ErrInvalidOwner = errors.New("lock owned by a different process")

	// ErrNotActive is returned when releasing a lock this manager never
	// acquired (or already released).
	ErrNotActive = errors.New("lock not active in this manager")
)

// ConflictError reports that a live, non-stale record of an incompatible
// type already holds the lock file. The protocol retries these internally;
// callers only see one if they inspect a TimeoutError's LastConflict.
type ConflictError struct {
	Requested Type
	Operation string
	Existing  *Lock
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("cannot acquire %s lock for %q: %s lock held by %q (pid %d) since %s",
		e.Requested, e.Operation, e.Existing.Type, e.Existing.Operation,
		e.Existing.PID, e.Existing.AcquiredAt.Format(time.RFC3339))
}

// TimeoutError reports that every attempt found a live conflicting holder.
type TimeoutError struct {
	Operation string
	Attempts  int
	Timeout   time.Duration

	// LastConflict is the most recent conflicting record observed, for
	// diagnostics. Nil only if no attempt recorded a conflict.
	LastConflict *Lock
}

func (e *TimeoutError) Error() string {
	msg := fmt.Sprintf("timed out acquiring lock for %q after %d attempts (record timeout %s)",
		e.Operation, e.Attempts, e.Timeout)
	if e.LastConflict != nil {
		msg += fmt.Sprintf("; last held by %q (pid %d)", e.LastConflict.Operation, e.LastConflict.PID)
	}
	return msg
}
