package docsystem

import (
	"context"

	"importdocs/internal/domain/models/docsystem"
)

// DocumentRepository defines data access operations for documents of either scope.
// The scope picks the table (documents or folder_documents) and its owner column.
type DocumentRepository interface {
	// Create inserts a document and fills in its ID and CreatedAt.
	// A missing owner yields domain.ErrNotFound, a duplicate file path domain.ErrConflict.
	Create(ctx context.Context, doc *docsystem.Document) error

	// GetByID retrieves a document by ID
	GetByID(ctx context.Context, scope docsystem.DocumentScope, id int64) (*docsystem.Document, error)

	// ListByOwner lists documents of one shipment or folder, newest first
	ListByOwner(ctx context.Context, scope docsystem.DocumentScope, ownerID int64) ([]docsystem.Document, error)

	// ListAll lists every document of a scope ordered by owner then ID
	ListAll(ctx context.Context, scope docsystem.DocumentScope) ([]docsystem.Document, error)

	// UpdateDetails sets original_name and doc_type
	UpdateDetails(ctx context.Context, scope docsystem.DocumentScope, id int64, name, docType string) error

	// GetFilePathForUpdate reads the current blob key and, where the store
	// supports it, locks the row until the surrounding transaction ends
	GetFilePathForUpdate(ctx context.Context, scope docsystem.DocumentScope, id int64) (string, error)

	// UpdateFile points the document at a new blob and display name
	UpdateFile(ctx context.Context, scope docsystem.DocumentScope, id int64, filePath, originalName string) error

	// Delete deletes a document row
	Delete(ctx context.Context, scope docsystem.DocumentScope, id int64) error

	// ListFilePathsBySupplier returns every blob key under a supplier's shipments
	ListFilePathsBySupplier(ctx context.Context, supplierID int64) ([]string, error)

	// ListFilePathsByShipment returns every blob key of a shipment
	ListFilePathsByShipment(ctx context.Context, shipmentID int64) ([]string, error)

	// ListFilePathsByFolder returns every blob key of a folder
	ListFilePathsByFolder(ctx context.Context, folderID int64) ([]string, error)
}

// ExportRepository resolves the flat rows an archive is built from.
// Count and list share one join so a check never disagrees with the export.
type ExportRepository interface {
	// ListEntries returns archive entries in archive order
	ListEntries(ctx context.Context, scope docsystem.ExportScope) ([]docsystem.ExportEntry, error)

	// CountEntries counts the rows ListEntries would return
	CountEntries(ctx context.Context, scope docsystem.ExportScope) (int, error)
}
