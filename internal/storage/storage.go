package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("key not found")

// Storage is a small key-value store for client records such as the
// farmer profile. Values are opaque bytes.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
