package dblock

import "time"

// Built-in defaults for lock acquisition.
const (
	DefaultTimeout    = 30 * time.Second
	DefaultMaxRetries = 10
	DefaultRetryDelay = 100 * time.Millisecond
)

// Options control one acquisition: how long the written record stays
// valid, and how the retry loop behaves while someone else holds the lock.
// Zero fields fall back to the next layer's value (per-call options fall
// back to the manager's defaults, which fall back to the built-ins).
type Options struct {
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

// DefaultOptions returns the built-in defaults.
func DefaultOptions() Options {
	return Options{
		Timeout:    DefaultTimeout,
		MaxRetries: DefaultMaxRetries,
		RetryDelay: DefaultRetryDelay,
	}
}

// merged returns o with zero fields filled from base, field-wise.
func (o Options) merged(base Options) Options {
	if o.Timeout == 0 {
		o.Timeout = base.Timeout
	}
	if o.MaxRetries == 0 {
		o.MaxRetries = base.MaxRetries
	}
	if o.RetryDelay == 0 {
		o.RetryDelay = base.RetryDelay
	}
	return o
}
