package pidfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

// ErrAlreadyRunning is returned when a live process holds the lock
var ErrAlreadyRunning = errors.New("already running")

// PIDFile is a process lock: one live owner per path
type PIDFile struct {
	path string
}

// New creates a lock stored at path
func New(path string) *PIDFile {
	return &PIDFile{path: path}
}

// ForAuthority returns the lock guarding the authority of one spacecraft,
// stored under dir (the temporary directory when empty)
func ForAuthority(dir, spacecraftID string) *PIDFile {
	if dir == "" {
		dir = os.TempDir()
	}
	return New(filepath.Join(dir, "shipwright-authority-"+spacecraftID+".pid"))
}

// Path returns the file backing the lock
func (p *PIDFile) Path() string {
	return p.path
}

// Acquire writes the current PID, taking over stale or malformed files
func (p *PIDFile) Acquire() error {
	if pid, ok := p.owner(); ok {
		if pid != os.Getpid() && isProcessRunning(pid) {
			return fmt.Errorf("%w (PID %d, %s)", ErrAlreadyRunning, pid, p.path)
		}
	}
	_ = os.Remove(p.path)

	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return fmt.Errorf("failed to create lock directory: %w", err)
	}
	if err := os.WriteFile(p.path, []byte(strconv.Itoa(os.Getpid())+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write PID file: %w", err)
	}
	return nil
}

// owner reads the PID stored in the file
func (p *PIDFile) owner() (int, bool) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, false
	}
	return pid, true
}

// Release removes the PID file
func (p *PIDFile) Release() error {
	if err := os.Remove(p.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove PID file: %w", err)
	}
	return nil
}

// isProcessRunning sends signal 0 to the process
func isProcessRunning(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}

	err = process.Signal(syscall.Signal(0))
	switch {
	case err == nil:
		return true
	case errors.Is(err, syscall.EPERM):
		// Exists, owned by someone else
		return true
	default:
		return false
	}
}
