package store

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/ballotkeeper/internal/client/client"
)

// commit applies update to *dst under the write lock. update must return a
// new slice rather than modify cur. Offline, the result is written through to
// bucket first and a failed write leaves *dst as it was. With invalidate set,
// reloads still in flight are made stale so they cannot undo the change.
func commit[T any](ctx context.Context, s *Store, bucket string, dst *[]T, invalidate bool, update func(cur []T) ([]T, bool)) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, changed := update(*dst)
	if !changed {
		return false, nil
	}
	if s.Offline() {
		if err := s.persistLocked(ctx, bucket, next); err != nil {
			return false, err
		}
	}
	*dst = next
	if invalidate {
		s.invalidateReloadsLocked()
	}
	return true, nil
}

func appendCopy[T any](cur []T, items ...T) []T {
	next := make([]T, 0, len(cur)+len(items))
	next = append(next, cur...)
	return append(next, items...)
}

func indexOf[T any](items []T, match func(T) bool) int {
	for i, it := range items {
		if match(it) {
			return i
		}
	}
	return -1
}

func removeAt[T any](cur []T, i int) []T {
	next := make([]T, 0, len(cur)-1)
	next = append(next, cur[:i]...)
	return append(next, cur[i+1:]...)
}

// refresh runs the authoritative reload that follows a confirmed remote
// mutation. Its failures are already logged and reflected in Status.
func (s *Store) refresh(ctx context.Context) {
	if s.Offline() {
		return
	}
	_ = s.Reload(ctx)
}

func (s *Store) refreshTokenBatches(ctx context.Context) {
	if s.Offline() {
		return
	}
	_ = s.ReloadTokenBatches(ctx)
}

// remoteWrite runs a backend mutation. notFound reports a 404, which callers
// treat as a no-op.
func (s *Store) remoteWrite(ctx context.Context, op string, call func() error) (notFound bool, err error) {
	if s.Offline() {
		return false, nil
	}
	if err := call(); err != nil {
		if errors.Is(err, client.ErrNotFound) {
			s.log.Info(ctx, "backend reported target missing, nothing to do", "op", op)
			return true, nil
		}
		return false, &RemoteWriteError{Op: op, Err: err}
	}
	return false, nil
}
