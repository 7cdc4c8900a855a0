//go:build windows

package dblock

import "os"

// probePID checks process existence. On Windows, os.FindProcess performs
// an OpenProcess call and fails when no such process exists.
func probePID(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	proc.Release() //nolint:errcheck
	return true
}
