package unread

import (
	"fmt"
	"os"
	"time"
)

const (
	lockTimeout = 10 * time.Second
	lockRetry   = 100 * time.Millisecond
)

// fileLock is a directory-based lock guarding the unread file against
// concurrently running instances.
type fileLock struct {
	dir string
}

func newFileLock(dir string) *fileLock {
	return &fileLock{dir: dir}
}

// acquire attempts to take the lock, retrying until timeout.
func (l *fileLock) acquire() error {
	start := time.Now()
	for {
		err := os.Mkdir(l.dir, 0o755)
		if err == nil {
			return nil
		}
		if !os.IsExist(err) {
			return fmt.Errorf("create lock directory: %w", err)
		}
		if time.Since(start) > lockTimeout {
			return fmt.Errorf("lock held too long by another instance: %s", l.dir)
		}
		time.Sleep(lockRetry)
	}
}

// release releases the lock by removing the directory.
func (l *fileLock) release() error {
	return os.Remove(l.dir)
}

// withLock executes fn while holding the lock.
func withLock(dir string, fn func() error) error {
	lock := newFileLock(dir)
	if err := lock.acquire(); err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	defer lock.release()
	return fn()
}
