package dblock

import (
	"errors"
	"os"
	"testing"
	"time"
)

func TestRecordRoundTrip(t *testing.T) {
	in := Lock{
		ID:         "stale-id-that-must-not-survive",
		Type:       TypeExclusive,
		Operation:  "write-index",
		AcquiredAt: time.Now(),
		TimeoutMs:  30000,
		PID:        os.Getpid(),
	}

	stamped, payload, err := encodeRecord(in)
	if err != nil {
		t.Fatalf("encodeRecord: %v", err)
	}
	if stamped.ID == "" || stamped.ID == in.ID {
		t.Errorf("encodeRecord did not stamp a fresh id, got %q", stamped.ID)
	}

	out, err := Decode(payload)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if out.ID != stamped.ID {
		t.Errorf("ID = %q, want %q", out.ID, stamped.ID)
	}
	if out.Type != in.Type {
		t.Errorf("Type = %q, want %q", out.Type, in.Type)
	}
	if out.Operation != in.Operation {
		t.Errorf("Operation = %q, want %q", out.Operation, in.Operation)
	}
	if out.TimeoutMs != in.TimeoutMs {
		t.Errorf("TimeoutMs = %d, want %d", out.TimeoutMs, in.TimeoutMs)
	}
	if out.PID != in.PID {
		t.Errorf("PID = %d, want %d", out.PID, in.PID)
	}
	if !out.AcquiredAt.Equal(in.AcquiredAt) {
		t.Errorf("AcquiredAt = %v, want %v", out.AcquiredAt, in.AcquiredAt)
	}
}

func TestEncodeGeneratesUniqueIDs(t *testing.T) {
	rec := Lock{Type: TypeShared, Operation: "query", AcquiredAt: time.Now(), TimeoutMs: 1000, PID: os.Getpid()}

	a, _, err := encodeRecord(rec)
	if err != nil {
		t.Fatalf("encodeRecord a: %v", err)
	}
	b, _, err := encodeRecord(rec)
	if err != nil {
		t.Fatalf("encodeRecord b: %v", err)
	}
	if a.ID == b.ID {
		t.Errorf("two encodes produced the same id %q", a.ID)
	}
}

func TestDecodeInvalid(t *testing.T) {
	cases := []struct {
		name    string
		payload string
	}{
		{"garbage", "not json at all"},
		{"truncated", `{"id":"abc","type":"exclu`},
		{"missing fields", `{"type":"exclusive"}`},
		{"unknown type", `{"id":"abc","type":"upgradeable","operation":"x","acquiredAt":"2026-01-02T15:04:05Z","timeoutMs":1000,"pid":42}`},
		{"wrong types", `{"id":"abc","type":"shared","operation":"x","acquiredAt":12345,"timeoutMs":"soon","pid":"many"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Decode([]byte(tc.payload)); !errors.Is(err, ErrInvalidRecord) {
				t.Errorf("Decode(%q) error = %v, want ErrInvalidRecord", tc.payload, err)
			}
		})
	}
}

func TestReadRecordAbsent(t *testing.T) {
	record, err := ReadRecord(t.TempDir() + "/.lock")
	if err != nil {
		t.Fatalf("ReadRecord: %v", err)
	}
	if record != nil {
		t.Errorf("ReadRecord on missing file = %+v, want nil", record)
	}
}
