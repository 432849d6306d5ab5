package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"importdocs/internal/domain"
	"importdocs/internal/domain/repositories"
)

// FSStore keeps blobs as files in one flat directory
type FSStore struct {
	dir    string
	logger *slog.Logger
}

// NewFSStore creates the directory if needed and returns a store rooted there
func NewFSStore(dir string, logger *slog.Logger) (repositories.BlobStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, &domain.StorageError{Op: "init", Key: dir, Err: err}
	}
	return &FSStore{dir: dir, logger: logger}, nil
}

// stagingPattern names in-progress uploads; List and validKey ignore dot files
const stagingPattern = ".upload-*"

// Put stages r under a dot-prefixed temp name, syncs it, then hard-links it
// to a fresh key. The key never names a partial file and is never overwritten.
// A failed or cancelled write removes the staged file.
func (s *FSStore) Put(ctx context.Context, originalFilename string, r io.Reader) (string, error) {
	staged, err := os.CreateTemp(s.dir, stagingPattern)
	if err != nil {
		return "", &domain.StorageError{Op: "put", Key: originalFilename, Err: err}
	}
	stagedPath := staged.Name()
	defer func() {
		if rmErr := os.Remove(stagedPath); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			s.logger.Warn("failed to remove staged blob", "path", stagedPath, "error", rmErr)
		}
	}()

	// CreateTemp creates files as 0600
	if err := staged.Chmod(0644); err != nil {
		_ = staged.Close()
		return "", &domain.StorageError{Op: "put", Key: filepath.Base(stagedPath), Err: err}
	}

	if err := writeAndSync(ctx, staged, r); err != nil {
		return "", &domain.StorageError{Op: "put", Key: filepath.Base(stagedPath), Err: err}
	}

	for attempt := 0; attempt < putAttempts; attempt++ {
		key := NewKey(originalFilename)

		err := os.Link(stagedPath, filepath.Join(s.dir, key))
		if err == nil {
			return key, nil
		}
		if errors.Is(err, fs.ErrExist) {
			s.logger.Debug("blob key collision, retrying", "key", key)
			continue
		}
		return "", &domain.StorageError{Op: "put", Key: key, Err: err}
	}

	return "", &domain.ConflictError{
		Message:      fmt.Sprintf("could not allocate a unique blob key for '%s'", originalFilename),
		ResourceType: "blob",
	}
}

// Open returns a reader over the blob
func (s *FSStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if !validKey(key) {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("invalid blob key %q", key)}
	}

	f, err := os.Open(filepath.Join(s.dir, key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &domain.NotFoundError{Message: fmt.Sprintf("blob %s not found", key)}
		}
		return nil, &domain.StorageError{Op: "open", Key: key, Err: err}
	}
	return f, nil
}

// Exists reports whether a blob is present
func (s *FSStore) Exists(ctx context.Context, key string) (bool, error) {
	if !validKey(key) {
		return false, nil
	}

	_, err := os.Stat(filepath.Join(s.dir, key))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, &domain.StorageError{Op: "stat", Key: key, Err: err}
}

// Remove deletes a blob
func (s *FSStore) Remove(ctx context.Context, key string) error {
	if !validKey(key) {
		return &domain.ValidationError{Message: fmt.Sprintf("invalid blob key %q", key)}
	}

	if err := os.Remove(filepath.Join(s.dir, key)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &domain.NotFoundError{Message: fmt.Sprintf("blob %s not found", key)}
		}
		return &domain.StorageError{Op: "remove", Key: key, Err: err}
	}
	return nil
}

// List returns every committed blob in the store directory, sorted.
// Staged uploads and directories are left out.
func (s *FSStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, &domain.StorageError{Op: "list", Err: err}
	}

	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() && validKey(e.Name()) {
			keys = append(keys, e.Name())
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// contextReader stops a copy once the context is done
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
