package service

import (
	"context"
	"io"
)

// ObjectStore abstracts the content store holding doctor proof documents.
// The production implementation lives in internal/infrastructure/storage;
// tests substitute a fake.
type ObjectStore interface {
	// Upload stores the object under key and returns its public URL.
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
	// KeyFromURL recovers the object key from a URL previously returned by
	// Upload. Returns "" when the URL does not belong to this store.
	KeyFromURL(url string) string
}
