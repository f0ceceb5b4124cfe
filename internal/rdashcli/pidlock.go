package rdashcli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// PIDLockPath returns the default PID lock file path (~/.rdash/rdash.pid).
func PIDLockPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".rdash", "rdash.pid")
}

// AcquirePIDLock checks for an existing rdash process and writes the
// current PID if no other instance is running. Returns an error naming the
// running PID if another instance is alive.
func AcquirePIDLock() error {
	path := PIDLockPath()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create pid dir: %w", err)
	}

	if pid, alive := readPIDLock(path); alive {
		return fmt.Errorf("rdash is already running (PID: %d)", pid)
	}

	data := []byte(strconv.Itoa(os.Getpid()))
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write pid lock: %w", err)
	}
	return nil
}

// ReleasePIDLock removes the PID lock file. Safe to call even if the file
// does not exist.
func ReleasePIDLock() {
	_ = os.Remove(PIDLockPath())
}

// readPIDLock reads the PID from the lock file and checks if the process is
// alive. Returns (pid, true) if alive, (0, false) otherwise.
func readPIDLock(path string) (int, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, false
	}
	if !processAlive(pid) {
		return 0, false // Stale PID file.
	}
	return pid, true
}
