package docsystem

import (
	"context"
	"io"

	"importdocs/internal/domain/models/docsystem"
)

// DocumentService owns the document lifecycle and keeps each row's blob in step with it.
// Every method works on both scopes; the scope selects the owner kind.
type DocumentService interface {
	// CreateDocument stores the upload and records it under its owner
	CreateDocument(ctx context.Context, req *CreateDocumentRequest) (*docsystem.Document, error)

	// GetDocument retrieves a document
	GetDocument(ctx context.Context, scope docsystem.DocumentScope, id int64) (*docsystem.Document, error)

	// ListDocuments lists an owner's documents, newest first
	ListDocuments(ctx context.Context, scope docsystem.DocumentScope, ownerID int64) ([]docsystem.Document, error)

	// RenameDocument changes display name and type; the blob is untouched
	RenameDocument(ctx context.Context, scope docsystem.DocumentScope, id int64, req *RenameDocumentRequest) (*docsystem.Document, error)

	// ReplaceDocument swaps the document's bytes for a new upload
	ReplaceDocument(ctx context.Context, scope docsystem.DocumentScope, id int64, req *ReplaceDocumentRequest) (*docsystem.Document, error)

	// DeleteDocument removes the blob and then the row
	DeleteDocument(ctx context.Context, scope docsystem.DocumentScope, id int64) error

	// OpenDocumentContent returns the document and a reader over its bytes.
	// The caller closes the reader.
	OpenDocumentContent(ctx context.Context, scope docsystem.DocumentScope, id int64) (*docsystem.Document, io.ReadCloser, error)

	// ConvertDocumentToPDF produces a PDF rendition through the configured converter
	ConvertDocumentToPDF(ctx context.Context, scope docsystem.DocumentScope, id int64) (*PDFRendition, error)
}

// CreateDocumentRequest represents a document upload
type CreateDocumentRequest struct {
	Scope            docsystem.DocumentScope `json:"-"`
	OwnerID          int64                   `json:"-"`           // Shipment or folder ID from the URL
	DocType          string                  `json:"doc_type"`    // Required
	DisplayName      string                  `json:"custom_name"` // Optional, overrides OriginalFilename as the display name
	OriginalFilename string                  `json:"-"`           // Filename the client uploaded
	Content          io.Reader               `json:"-"`
}

// RenameDocumentRequest represents a metadata-only document update
type RenameDocumentRequest struct {
	Name    string `json:"name"`
	DocType string `json:"doc_type"`
}

// ReplaceDocumentRequest represents a new upload for an existing document
type ReplaceDocumentRequest struct {
	OriginalFilename string
	Content          io.Reader
}
