package storage

import (
	"context"
	"fmt"

	"github.com/alexisbeaulieu97/recipedia/internal/logger"
	"github.com/alexisbeaulieu97/recipedia/internal/ports"
	apperrors "github.com/alexisbeaulieu97/recipedia/pkg/errors"
)

const probeKey = "__recipedia_probe__"

// Accessor is the persistence contract seen by the rest of the program. None
// of its methods fail: backend errors are logged and replaced with safe
// defaults. The backing store is chosen once, in Open.
type Accessor struct {
	backend  Backend
	fallback bool
	logger   ports.Logger
}

// Open probes primary with a trial write and remove. When the probe fails (or
// primary is nil) the accessor redirects every operation to a fresh
// MemoryBackend for the lifetime of the process.
func Open(primary Backend, log ports.Logger) *Accessor {
	log = logger.OrNoOp(log).With("component", "storage")
	a := &Accessor{backend: primary, logger: log}

	if err := probe(primary); err != nil {
		log.Warn(context.Background(), "storage unavailable, falling back to memory", "error", err)
		a.backend = NewMemoryBackend()
		a.fallback = true
	}

	return a
}

func probe(b Backend) (err error) {
	if b == nil {
		return fmt.Errorf("no backend configured")
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("probe panicked: %v", r)
		}
	}()
	if err := b.Set(probeKey, "test"); err != nil {
		return err
	}
	return b.Remove(probeKey)
}

// Fallback reports whether the in-memory fallback is active.
func (a *Accessor) Fallback() bool {
	return a.fallback
}

// GetItem returns the value stored under key. Missing keys and failures both
// yield ("", false).
func (a *Accessor) GetItem(key string) (value string, ok bool) {
	defer a.recoverOp("get", key, func() { value, ok = "", false })

	value, ok, err := a.backend.Get(key)
	if err != nil {
		a.warn("get", key, err)
		return "", false
	}
	return value, ok
}

// SetItem stores value under key. Failures are logged and ignored.
func (a *Accessor) SetItem(key, value string) {
	defer a.recoverOp("set", key, nil)

	if err := a.backend.Set(key, value); err != nil {
		a.warn("set", key, err)
	}
}

// RemoveItem deletes key. Failures are logged and ignored.
func (a *Accessor) RemoveItem(key string) {
	defer a.recoverOp("remove", key, nil)

	if err := a.backend.Remove(key); err != nil {
		a.warn("remove", key, err)
	}
}

// Clear deletes every key. Failures are logged and ignored.
func (a *Accessor) Clear() {
	defer a.recoverOp("clear", "", nil)

	if err := a.backend.Clear(); err != nil {
		a.warn("clear", "", err)
	}
}

// Keys enumerates stored keys, returning nil on failure.
func (a *Accessor) Keys() (keys []string) {
	defer a.recoverOp("keys", "", func() { keys = nil })

	keys, err := a.backend.Keys()
	if err != nil {
		a.warn("keys", "", err)
		return nil
	}
	return keys
}

func (a *Accessor) warn(op, key string, err error) {
	a.logger.Warn(context.Background(), "storage operation failed", "error", apperrors.NewStorageError(op, key, err))
}

// recoverOp turns a backend panic into a logged warning. reset restores the
// caller's safe default results.
func (a *Accessor) recoverOp(op, key string, reset func()) {
	if r := recover(); r != nil {
		a.warn(op, key, fmt.Errorf("panic: %v", r))
		if reset != nil {
			reset()
		}
	}
}
