package services

import (
	"context"
	"io"
	"time"
)

// BlobStore is the physical byte storage collaborator. The core hands it
// raw bytes under an opaque key and never reads or writes bytes directly.
type BlobStore interface {
	// Put stores the body under key
	Put(ctx context.Context, key, contentType string, body io.Reader) error

	// PresignGet returns a short-lived URL for reading the object at key
	PresignGet(ctx context.Context, key string, expires time.Duration) (string, error)

	// Delete removes the object at key. Deleting a missing object is not
	// an error.
	Delete(ctx context.Context, key string) error
}
