//go:build windows

package rdashcli

import (
	"os"
	"time"
)

// flockWithTimeout is a no-op on Windows; the store write path relies on
// the single-instance PID lock there instead of advisory file locking.
func flockWithTimeout(f *os.File, timeout time.Duration) error {
	return nil
}

// flockRelease is a no-op on Windows.
func flockRelease(f *os.File) error {
	return nil
}
