package state

import (
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/lite-lake/ipsync/internal/domain"
)

const LockFileName = ".ipsync.lock"

// FileLock is a non-blocking advisory lock shared by every run that uses
// the same configuration directory.
type FileLock struct {
	path  string
	flock *flock.Flock
}

func NewFileLock(dir string) *FileLock {
	path := filepath.Join(dir, LockFileName)
	return &FileLock{
		path:  path,
		flock: flock.New(path),
	}
}

func (l *FileLock) Path() string { return l.path }

// TryLock fails with domain.ErrRunLocked if another process holds the lock.
func (l *FileLock) TryLock() (func() error, error) {
	ok, err := l.flock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquiring lock %s: %w", l.path, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrRunLocked, l.path)
	}
	return l.flock.Unlock, nil
}
