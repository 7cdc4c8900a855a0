package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/astdb-dev/astdb/internal/dblock"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Lock.TimeoutMs != 30000 {
		t.Errorf("TimeoutMs = %d, want 30000", cfg.Lock.TimeoutMs)
	}
	if cfg.Lock.MaxRetries != 10 {
		t.Errorf("MaxRetries = %d, want 10", cfg.Lock.MaxRetries)
	}
	if cfg.Lock.RetryDelayMs != 100 {
		t.Errorf("RetryDelayMs = %d, want 100", cfg.Lock.RetryDelayMs)
	}
}

func TestLoadPartialFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[lock]\ntimeout_ms = 5000\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Lock.TimeoutMs != 5000 {
		t.Errorf("TimeoutMs = %d, want 5000", cfg.Lock.TimeoutMs)
	}
	if cfg.Lock.MaxRetries != 10 {
		t.Errorf("MaxRetries = %d, want default 10", cfg.Lock.MaxRetries)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[lock\nnope"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load on malformed TOML succeeded, want error")
	}
}

func TestWriteLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".astdb", "config.toml")

	in := &Config{Lock: LockConfig{TimeoutMs: 1234, MaxRetries: 3, RetryDelayMs: 7}}
	if err := Write(path, in); err != nil {
		t.Fatalf("Write: %v", err)
	}

	out, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *out != *in {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}

func TestLockOptions(t *testing.T) {
	cfg := &Config{Lock: LockConfig{TimeoutMs: 2000, MaxRetries: 4, RetryDelayMs: 50}}
	got := cfg.LockOptions()
	want := dblock.Options{Timeout: 2 * time.Second, MaxRetries: 4, RetryDelay: 50 * time.Millisecond}
	if got != want {
		t.Errorf("LockOptions = %+v, want %+v", got, want)
	}
}
