package state

import (
	"errors"
	"testing"

	"github.com/lite-lake/ipsync/internal/domain"
)

func TestFileLock_SecondHolderFails(t *testing.T) {
	dir := t.TempDir()

	first := NewFileLock(dir)
	release, err := first.TryLock()
	if err != nil {
		t.Fatalf("first TryLock() error = %v", err)
	}

	second := NewFileLock(dir)
	if _, err := second.TryLock(); !errors.Is(err, domain.ErrRunLocked) {
		t.Errorf("second TryLock() error = %v, want ErrRunLocked", err)
	}

	if err := release(); err != nil {
		t.Fatalf("release error = %v", err)
	}

	release, err = second.TryLock()
	if err != nil {
		t.Fatalf("TryLock() after release error = %v", err)
	}
	_ = release()
}
