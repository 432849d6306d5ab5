package docsystem

import (
	"context"

	"importdocs/internal/domain/models/docsystem"
)

// FolderService handles folder business logic
type FolderService interface {
	// ListFolders lists all folders ordered by name
	ListFolders(ctx context.Context) ([]docsystem.Folder, error)

	// CreateFolder creates a new folder
	CreateFolder(ctx context.Context, req *CreateContainerRequest) (*docsystem.Folder, error)

	// GetFolder retrieves a folder
	GetFolder(ctx context.Context, id int64) (*docsystem.Folder, error)

	// DeleteFolder deletes a folder, its documents and their blobs
	DeleteFolder(ctx context.Context, id int64) error
}

// CreateContainerRequest represents a supplier, folder or shipment creation request
type CreateContainerRequest struct {
	Name    string  `json:"name"`
	Details *string `json:"details,omitempty"`
}
