// Package filelock provides advisory file locking. The TUI uses it to
// keep a second interactive instance from opening the same database.
package filelock

import (
	"errors"
	"os"
)

const lockFileMode = 0o600

// ErrLocked is returned by TryLock when another process holds the lock.
var ErrLocked = errors.New("already locked by another process")

// Lock acquires an exclusive advisory lock on the file at path,
// creating it if it does not exist. The returned function releases
// the lock and must be called when the critical section is done.
//
// Only one process can hold the lock at a time; other callers block
// until the lock is available.
func Lock(path string) (unlock func() error, err error) {
	return acquire(path, lockFile)
}

// TryLock is like Lock but fails with ErrLocked instead of blocking
// when another process already holds the lock.
func TryLock(path string) (unlock func() error, err error) {
	return acquire(path, tryLockFile)
}

func acquire(path string, lock func(*os.File) error) (func() error, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, lockFileMode) //nolint:gosec // lock file path from trusted source
	if err != nil {
		return nil, err
	}

	if err := lock(f); err != nil {
		_ = f.Close()
		return nil, err
	}

	return func() error {
		unlockErr := unlockFile(f)
		closeErr := f.Close()
		if unlockErr != nil {
			return unlockErr
		}
		return closeErr
	}, nil
}
