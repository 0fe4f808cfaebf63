package storage

import (
	"context"
	"io"
	"time"
)

// ObjectStore is the blob storage boundary. Image bytes live behind it; the
// rest of the service only ever sees object keys and retrieval URLs.
type ObjectStore interface {
	Save(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	URL(ctx context.Context, key string, expiry time.Duration) (string, error)
	Exists(ctx context.Context, key string) (bool, error)
	Delete(ctx context.Context, key string) error
}
