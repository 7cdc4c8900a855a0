//go:build !windows

package dblock

import (
	"os"
	"syscall"
)

// probePID checks process existence with signal 0, which delivers nothing.
// On Unix, os.FindProcess always succeeds; the Signal call is the real
// probe. EPERM would mean the process exists but belongs to someone else —
// we still report not-alive, since a lock we can never signal is a lock we
// could never recover.
func probePID(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return proc.Signal(syscall.Signal(0)) == nil
}
