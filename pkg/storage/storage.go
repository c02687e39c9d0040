package storage

import (
	"context"
	"io"
)

// ObjectStorage abstracts the bucket that holds uploaded site media. Put
// returns the publicly resolvable URL for the stored object.
type ObjectStorage interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
	Delete(ctx context.Context, key string) error
}
