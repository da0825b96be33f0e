// Package recordstore persists whole collections of JSON records under
// string keys on a pluggable key-value medium. It plays the role the
// browser's localStorage played for the support widget: each key holds one
// JSON array that is always read and written in full.
package recordstore

import (
	"context"
	"errors"
)

var (
	// ErrVersionConflict is returned by PutIfVersion when the stored version
	// moved since it was read.
	ErrVersionConflict = errors.New("recordstore: version conflict")

	// ErrQuotaExceeded is returned when an encoded collection is larger than
	// the configured limit.
	ErrQuotaExceeded = errors.New("recordstore: quota exceeded")
)

// Medium is the raw storage behind a Store. Get reports found=false for a
// key that was never written.
type Medium interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, data []byte) error
}

// VersionedMedium is a Medium that can detect concurrent writers. Versions
// start at 0 for absent keys and increase on every successful write.
type VersionedMedium interface {
	Medium
	GetVersioned(ctx context.Context, key string) ([]byte, int64, bool, error)
	PutIfVersion(ctx context.Context, key string, data []byte, expected int64) error
}

// IsVersionConflict reports whether err came from a lost compare-and-swap.
func IsVersionConflict(err error) bool {
	return errors.Is(err, ErrVersionConflict)
}

// IsQuotaExceeded reports whether err came from the size limit.
func IsQuotaExceeded(err error) bool {
	return errors.Is(err, ErrQuotaExceeded)
}
