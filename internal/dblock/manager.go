package dblock

import (
	"fmt"
	"os"
	"sync"

	"github.com/astdb-dev/astdb/internal/workspace"
)

// Logger receives warnings from best-effort operations (Cleanup, deferred
// releases). The CLI layer adapts the style package to it.
type Logger interface {
	Warn(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Warn(string, ...any) {}

// Manager coordinates lock acquisition for one workspace's database
// directory and tracks every lock this process currently holds through it.
// The lock file is the real arbiter across processes; the manager's table
// only exists so Release and Cleanup know what this process owes back.
//
// A Manager is safe for concurrent use.
type Manager struct {
	root     string
	lockPath string
	defaults Options
	logger   Logger

	mu   sync.Mutex
	held map[string]*Lock // keyed by Lock.ID
}

// NewManager creates a manager bound to the given workspace root. The lock
// file path is derived once at construction.
func NewManager(workspaceRoot string) *Manager {
	return &Manager{
		root:     workspaceRoot,
		lockPath: workspace.LockFile(workspaceRoot),
		defaults: DefaultOptions(),
		logger:   nopLogger{},
		held:     make(map[string]*Lock),
	}
}

// SetDefaults overrides the manager's default options. Zero fields keep
// the built-in defaults.
func (m *Manager) SetDefaults(opts Options) {
	m.defaults = opts.merged(DefaultOptions())
}

// SetLogger routes best-effort warnings somewhere visible.
func (m *Manager) SetLogger(l Logger) {
	if l != nil {
		m.logger = l
	}
}

// LockPath returns the path of the lock record file this manager guards.
func (m *Manager) LockPath() string {
	return m.lockPath
}

// AcquireExclusive obtains the sole-writer lock. opts may be nil to use
// the manager's defaults; zero fields of a non-nil opts fall back
// field-wise.
func (m *Manager) AcquireExclusive(operation string, opts *Options) (*Lock, error) {
	return m.acquireLock(TypeExclusive, operation, opts)
}

// AcquireShared obtains a reader lock. Shared holders coexist with each
// other but never with an exclusive holder.
func (m *Manager) AcquireShared(operation string, opts *Options) (*Lock, error) {
	return m.acquireLock(TypeShared, operation, opts)
}

func (m *Manager) acquireLock(typ Type, operation string, opts *Options) (*Lock, error) {
	merged := m.defaults
	if opts != nil {
		merged = opts.merged(m.defaults)
	}

	lock, err := acquire(m.lockPath, typ, operation, merged)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.held[lock.ID] = lock
	m.mu.Unlock()
	return lock, nil
}

// Release gives back a lock previously returned by this manager. The
// tracking entry is dropped even when the on-disk record no longer matches
// (someone may have reclaimed it after expiry), so the manager never
// believes it still holds a lock it asked to release.
func (m *Manager) Release(lock *Lock) error {
	if lock.PID != os.Getpid() {
		return fmt.Errorf("releasing lock %s (pid %d): %w", lock.ID, lock.PID, ErrInvalidOwner)
	}

	m.mu.Lock()
	if _, tracked := m.held[lock.ID]; !tracked {
		m.mu.Unlock()
		return fmt.Errorf("releasing lock %s: %w", lock.ID, ErrNotActive)
	}
	delete(m.held, lock.ID)
	m.mu.Unlock()

	data, ok, err := readLockFile(m.lockPath)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	current, err := Decode(data)
	if err != nil {
		// Unparseable record cannot be ours; leave it for the next
		// acquirer's staleness sweep.
		return nil
	}
	if current.ID != lock.ID {
		return nil
	}
	return removeLockFile(m.lockPath)
}

// ActiveLocks returns a snapshot of every lock this manager currently
// believes it holds.
func (m *Manager) ActiveLocks() []*Lock {
	m.mu.Lock()
	defer m.mu.Unlock()
	locks := make([]*Lock, 0, len(m.held))
	for _, l := range m.held {
		locks = append(locks, l)
	}
	return locks
}

// Cleanup releases everything the manager still holds, continuing past
// individual failures. Intended for process-exit teardown, where one bad
// release must not strand the rest.
func (m *Manager) Cleanup() {
	for _, l := range m.ActiveLocks() {
		if err := m.Release(l); err != nil {
			m.logger.Warn("releasing lock %s (%s): %v", l.ID, l.Operation, err)
		}
	}
}

// WithExclusive runs fn while holding the exclusive lock, releasing it on
// every path out of fn.
func (m *Manager) WithExclusive(operation string, opts *Options, fn func() error) error {
	return m.withLock(TypeExclusive, operation, opts, fn)
}

// WithShared runs fn while holding a shared lock.
func (m *Manager) WithShared(operation string, opts *Options, fn func() error) error {
	return m.withLock(TypeShared, operation, opts, fn)
}

func (m *Manager) withLock(typ Type, operation string, opts *Options, fn func() error) error {
	lock, err := m.acquireLock(typ, operation, opts)
	if err != nil {
		return err
	}
	defer func() {
		if rerr := m.Release(lock); rerr != nil {
			m.logger.Warn("releasing lock for %q: %v", operation, rerr)
		}
	}()
	return fn()
}
