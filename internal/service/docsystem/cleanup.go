package docsystem

import (
	"context"
	"errors"
	"log/slog"

	"importdocs/internal/domain"
	"importdocs/internal/domain/repositories"
)

// removeBlobQuietly deletes a blob whose removal must not fail the caller.
// It runs detached from ctx cancellation so a dropped client still gets its
// superseded blobs cleaned up. Failures are logged and dropped.
func removeBlobQuietly(ctx context.Context, blobs repositories.BlobStore, logger *slog.Logger, key string) {
	if key == "" {
		return
	}

	err := blobs.Remove(context.WithoutCancel(ctx), key)
	switch {
	case err == nil:
		logger.Debug("blob removed", "key", key)
	case errors.Is(err, domain.ErrNotFound):
		logger.Debug("blob already gone", "key", key)
	default:
		logger.Warn("failed to remove blob", "key", key, "error", err)
	}
}

// removeBlobsQuietly removes every key, continuing past failures
func removeBlobsQuietly(ctx context.Context, blobs repositories.BlobStore, logger *slog.Logger, keys []string) {
	for _, key := range keys {
		removeBlobQuietly(ctx, blobs, logger, key)
	}
}
