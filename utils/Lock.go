package utils

import (
	"errors"
	"fmt"
	"sync"

	"github.com/danjacques/gofslock/fslock"

	"github.com/poppolopoppo/syncproj/internal/base"
)

/***************************************
 * ProcessLock: only one process may write to a cache directory at once
 ***************************************/

var ErrCacheLocked = errors.New("cache directory is already locked by another process")

type ProcessLock struct {
	barrier sync.Mutex
	path    Filename
	handle  fslock.Handle
}

func NewProcessLock(cache Directory) *ProcessLock {
	return &ProcessLock{path: cache.File("syncproj.lock")}
}

func (x *ProcessLock) Path() Filename { return x.path }

func (x *ProcessLock) Lock() (err error) {
	x.barrier.Lock()
	defer x.barrier.Unlock()
	base.Assert(func() bool { return x.handle == nil })

	if err = UFS.MkdirEx(x.path.Dirname); err != nil {
		return err
	}

	base.LogVeryVerbose(LogPersistent, "locking %q", x.path)
	x.handle, err = fslock.Lock(x.path.String())
	switch err {
	case nil:
		return nil
	case fslock.ErrLockHeld:
		return fmt.Errorf("%w: %v", ErrCacheLocked, x.path)
	default:
		return err
	}
}

func (x *ProcessLock) Unlock() error {
	x.barrier.Lock()
	defer x.barrier.Unlock()
	if x.handle == nil {
		return nil
	}

	base.LogVeryVerbose(LogPersistent, "unlocking %q", x.path)
	err := x.handle.Unlock()
	x.handle = nil
	return err
}
