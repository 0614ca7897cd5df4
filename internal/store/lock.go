package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
)

const lockRetryInterval = 50 * time.Millisecond

// Locker hands out per-document advisory file locks so two editors never
// mutate the same project or record concurrently.
type Locker struct {
	dir     string
	timeout time.Duration
}

// NewLocker returns a locker writing lock files under dir. A zero timeout
// fails immediately when a document is held elsewhere.
func NewLocker(dir string, timeout time.Duration) *Locker {
	return &Locker{dir: dir, timeout: max(0, timeout)}
}

// Acquire locks the document identified by kind and id. The returned func
// releases it.
func (l *Locker) Acquire(ctx context.Context, kind, id string) (func(), error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("acquire %s lock: empty id", kind)
	}
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create lock dir: %w", err)
	}
	path := l.path(kind, id)
	fileLock := flock.New(path)

	var (
		ok  bool
		err error
	)
	if l.timeout == 0 {
		ok, err = fileLock.TryLock()
	} else {
		lockCtx, cancel := context.WithTimeout(ensureContext(ctx), l.timeout)
		ok, err = fileLock.TryLockContext(lockCtx, lockRetryInterval)
		cancel()
		if errors.Is(err, context.DeadlineExceeded) {
			ok, err = false, nil
		}
	}
	if err != nil {
		return nil, fmt.Errorf("acquire %s lock: %w", kind, err)
	}
	if !ok {
		return nil, fmt.Errorf("%s %s: %w", kind, id, ErrLocked)
	}
	return func() { _ = fileLock.Unlock() }, nil
}

func (l *Locker) path(kind, id string) string {
	name := kind + "-" + filepath.Base(id) + ".lock"
	return filepath.Join(l.dir, name)
}
