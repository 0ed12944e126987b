// Package store defines the raw key/value port the todo documents live on.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when nothing is stored under a key.
var ErrNotFound = errors.New("key not found")

// KV stores whole values under string keys. There are no partial writes:
// Put replaces the previous value or leaves it untouched on error.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}
