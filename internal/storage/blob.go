// Package storage is the key-value blob boundary the record store persists
// through, plus its backends.
package storage

import (
	"context"
	"encoding/json"
)

// BlobStore holds opaque values by key. Get returns (nil, nil) for a key
// that was never set.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

// GetJSON decodes the value under key into a T. Absent keys and a stored
// JSON null both yield (nil, nil).
func GetJSON[T any](ctx context.Context, b BlobStore, key string) (*T, error) {
	raw, err := b.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if raw == nil || string(raw) == "null" {
		return nil, nil
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func SetJSON[T any](ctx context.Context, b BlobStore, key string, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return b.Set(ctx, key, raw)
}
