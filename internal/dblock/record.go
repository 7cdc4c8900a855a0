package dblock

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

// Type classifies a lock as exclusive (sole writer) or shared (concurrent
// readers).
type Type string

const (
	TypeExclusive Type = "exclusive"
	TypeShared    Type = "shared"
)

// Lock is one holder's claim on the database directory, both as the
// in-memory handle returned by the Manager and as the on-disk record.
type Lock struct {
	ID         string    `json:"id"`
	Type       Type      `json:"type"`
	Operation  string    `json:"operation"`
	AcquiredAt time.Time `json:"acquiredAt"`
	TimeoutMs  int64     `json:"timeoutMs"`
	PID        int       `json:"pid"`

	// FilePath is where the record lives on disk. It is contextual — set
	// by whoever read or wrote the record, never serialized.
	FilePath string `json:"-"`
}

// Timeout returns the record's validity window as a duration.
func (l *Lock) Timeout() time.Duration {
	return time.Duration(l.TimeoutMs) * time.Millisecond
}

// ExpiresAt returns the instant the record stops being valid regardless of
// owner liveness.
func (l *Lock) ExpiresAt() time.Time {
	return l.AcquiredAt.Add(l.Timeout())
}

// newLockID returns a fresh opaque identifier for a lock record.
func newLockID() string {
	return uuid.NewString()
}

// encodeRecord renders a record for writing, stamping a freshly generated
// id. The input is taken by value; the returned Lock is the exact record
// that was encoded.
func encodeRecord(l Lock) (Lock, []byte, error) {
	l.ID = newLockID()
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return Lock{}, nil, fmt.Errorf("encoding lock record: %w", err)
	}
	return l, data, nil
}

// Decode parses a lock-record payload. The caller is responsible for
// setting FilePath, since the payload carries no knowledge of where the
// bytes came from.
func Decode(data []byte) (*Lock, error) {
	var l Lock
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	if l.ID == "" || l.PID == 0 || l.AcquiredAt.IsZero() {
		return nil, fmt.Errorf("%w: missing id, pid, or acquiredAt", ErrInvalidRecord)
	}
	if l.Type != TypeExclusive && l.Type != TypeShared {
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidRecord, l.Type)
	}
	return &l, nil
}

// ReadRecord reads and decodes the lock record at path. Returns (nil, nil)
// when no record exists.
func ReadRecord(path string) (*Lock, error) {
	data, ok, err := readLockFile(path)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	l, err := Decode(data)
	if err != nil {
		return nil, err
	}
	l.FilePath = path
	return l, nil
}

// OwnedByCurrentProcess reports whether the record was written by this
// process.
func (l *Lock) OwnedByCurrentProcess() bool {
	return l.PID == os.Getpid()
}
