package repositories

import (
	"context"
	"io"
)

// BlobStore holds uploaded file bytes under opaque keys.
// Keys are generated by the store on Put and never reused.
type BlobStore interface {
	// Put writes r under a fresh key derived from originalFilename.
	// A failed write leaves nothing behind.
	Put(ctx context.Context, originalFilename string, r io.Reader) (string, error)

	// Open returns a reader for the blob, domain.ErrNotFound if it is gone
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Exists reports whether a blob is present
	Exists(ctx context.Context, key string) (bool, error)

	// Remove deletes a blob, domain.ErrNotFound if it was already gone
	Remove(ctx context.Context, key string) error

	// List returns every key in the store
	List(ctx context.Context) ([]string, error)
}
