package storage

import "context"

// ObjectStore durably stores a byte blob under a path and returns a publicly
// fetchable URL for it.
type ObjectStore interface {
	Put(ctx context.Context, path string, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, path string) error
}
