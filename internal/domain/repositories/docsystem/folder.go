package docsystem

import (
	"context"

	"importdocs/internal/domain/models/docsystem"
)

// FolderRepository defines data access operations for folders
type FolderRepository interface {
	// Create inserts a folder, domain.ErrConflict on a duplicate name
	Create(ctx context.Context, folder *docsystem.Folder) error

	// GetByID retrieves a folder by ID
	GetByID(ctx context.Context, id int64) (*docsystem.Folder, error)

	// List lists all folders ordered by name
	List(ctx context.Context) ([]docsystem.Folder, error)

	// Delete deletes a folder; its documents go with it
	Delete(ctx context.Context, id int64) error
}
