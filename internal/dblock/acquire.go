package dblock

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// sleepFor is overridden in tests to make retry loops instantaneous.
var sleepFor = time.Sleep

// acquire runs the retry loop for one lock request. Conflicts with a live
// holder are retried up to opts.MaxRetries attempts with opts.RetryDelay
// between them; anything else (I/O failure, malformed record) escapes
// immediately and is never retried.
func acquire(path string, typ Type, operation string, opts Options) (*Lock, error) {
	var lastConflict *Lock

	for attempt := 0; attempt < opts.MaxRetries; attempt++ {
		if attempt > 0 {
			sleepFor(opts.RetryDelay)
		}

		lock, conflict, err := tryAcquire(path, typ, operation, opts)
		if err != nil {
			return nil, err
		}
		if conflict == nil {
			return lock, nil
		}
		lastConflict = conflict.Existing
	}

	return nil, &TimeoutError{
		Operation:    operation,
		Attempts:     opts.MaxRetries,
		Timeout:      opts.Timeout,
		LastConflict: lastConflict,
	}
}

// tryAcquire performs a single attempt: read the current record, resolve
// staleness, detect conflicts, and publish a fresh record on vacancy. The
// read-validate-write sequence runs under a flock guard so concurrent
// attempts on the same path don't race each other; the record itself is
// still published by atomic rename, so readers never need the guard.
func tryAcquire(path string, typ Type, operation string, opts Options) (*Lock, *ConflictError, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("creating lock directory: %w", err)
	}

	unguard, err := guardPath(path)
	if err != nil {
		return nil, nil, err
	}
	defer unguard()

	data, ok, err := readLockFile(path)
	if err != nil {
		return nil, nil, err
	}
	if ok {
		existing, derr := Decode(data)
		if derr != nil {
			return nil, nil, derr
		}
		existing.FilePath = path

		switch {
		case existing.Stale(timeNow()):
			// Crashed or expired owner. Reclaim unconditionally.
			if err := removeLockFile(path); err != nil {
				return nil, nil, err
			}
		case typ == TypeExclusive || existing.Type == TypeExclusive:
			return nil, &ConflictError{Requested: typ, Operation: operation, Existing: existing}, nil
		default:
			// Shared over shared: no conflict. The record only ever
			// describes the most recent holder; fall through and overwrite.
		}
	}

	record := Lock{
		Type:       typ,
		Operation:  operation,
		AcquiredAt: timeNow(),
		TimeoutMs:  opts.Timeout.Milliseconds(),
		PID:        os.Getpid(),
	}
	stamped, payload, err := encodeRecord(record)
	if err != nil {
		return nil, nil, err
	}
	if err := writeLockFile(path, payload); err != nil {
		return nil, nil, err
	}
	stamped.FilePath = path
	return &stamped, nil, nil
}

// guardPath takes an advisory flock on a sidecar of the lock file for the
// duration of one attempt's critical section. Returns the release func.
func guardPath(path string) (func(), error) {
	fl := flock.New(path + ".guard")
	if err := fl.Lock(); err != nil {
		return nil, fmt.Errorf("acquiring lock guard: %w", err)
	}
	return func() { _ = fl.Unlock() }, nil
}
