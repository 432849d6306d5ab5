package docsystem

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"importdocs/internal/config"
	"importdocs/internal/domain"
	models "importdocs/internal/domain/models/docsystem"
	"importdocs/internal/domain/repositories"
	docsysRepo "importdocs/internal/domain/repositories/docsystem"
	docsysSvc "importdocs/internal/domain/services/docsystem"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// documentService implements the DocumentService interface
type documentService struct {
	docRepo   docsysRepo.DocumentRepository
	blobs     repositories.BlobStore
	txManager repositories.TransactionManager
	converter docsysSvc.PDFConverter
	validator *ResourceValidator
	logger    *slog.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(
	docRepo docsysRepo.DocumentRepository,
	blobs repositories.BlobStore,
	txManager repositories.TransactionManager,
	converter docsysSvc.PDFConverter,
	validator *ResourceValidator,
	logger *slog.Logger,
) docsysSvc.DocumentService {
	return &documentService{
		docRepo:   docRepo,
		blobs:     blobs,
		txManager: txManager,
		converter: converter,
		validator: validator,
		logger:    logger,
	}
}

// CreateDocument writes the blob first and records it second.
// A failed insert leaves at most an orphan blob, which is removed on a best-effort basis.
func (s *documentService) CreateDocument(ctx context.Context, req *docsysSvc.CreateDocumentRequest) (*models.Document, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.validator.ValidateOwner(ctx, req.Scope, req.OwnerID); err != nil {
		return nil, err
	}

	key, err := s.blobs.Put(ctx, req.OriginalFilename, req.Content)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.DisplayName)
	if name == "" {
		name = req.OriginalFilename
	}

	doc := &models.Document{
		Scope:        req.Scope,
		OwnerID:      req.OwnerID,
		DocType:      strings.TrimSpace(req.DocType),
		OriginalName: name,
		FilePath:     key,
	}

	if err := s.docRepo.Create(ctx, doc); err != nil {
		removeBlobQuietly(ctx, s.blobs, s.logger, key)
		return nil, err
	}

	persisted, err := s.docRepo.GetByID(ctx, doc.Scope, doc.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("document created",
		"id", persisted.ID,
		"scope", persisted.Scope,
		"owner_id", persisted.OwnerID,
		"doc_type", persisted.DocType,
		"name", persisted.OriginalName,
		"file_path", persisted.FilePath,
	)

	return persisted, nil
}

// GetDocument retrieves a document
func (s *documentService) GetDocument(ctx context.Context, scope models.DocumentScope, id int64) (*models.Document, error) {
	return s.docRepo.GetByID(ctx, scope, id)
}

// ListDocuments lists an owner's documents, newest first
func (s *documentService) ListDocuments(ctx context.Context, scope models.DocumentScope, ownerID int64) ([]models.Document, error) {
	if err := s.validator.ValidateOwner(ctx, scope, ownerID); err != nil {
		return nil, err
	}
	return s.docRepo.ListByOwner(ctx, scope, ownerID)
}

// RenameDocument changes the display name and type
func (s *documentService) RenameDocument(ctx context.Context, scope models.DocumentScope, id int64, req *docsysSvc.RenameDocumentRequest) (*models.Document, error) {
	if err := s.validateRenameRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	name := strings.TrimSpace(req.Name)
	docType := strings.TrimSpace(req.DocType)
	if err := s.docRepo.UpdateDetails(ctx, scope, id, name, docType); err != nil {
		return nil, err
	}

	s.logger.Info("document renamed",
		"id", id,
		"scope", scope,
		"name", name,
		"doc_type", docType,
	)

	return s.docRepo.GetByID(ctx, scope, id)
}

// ReplaceDocument writes the new bytes to a fresh key and repoints the row.
// The old blob is removed only after the update commits, so readers never
// see a row pointing at a half-written or deleted blob.
func (s *documentService) ReplaceDocument(ctx context.Context, scope models.DocumentScope, id int64, req *docsysSvc.ReplaceDocumentRequest) (*models.Document, error) {
	if err := s.validateReplaceRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if _, err := s.docRepo.GetByID(ctx, scope, id); err != nil {
		return nil, err
	}

	newKey, err := s.blobs.Put(ctx, req.OriginalFilename, req.Content)
	if err != nil {
		return nil, err
	}

	var oldKey string
	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		current, err := s.docRepo.GetFilePathForUpdate(txCtx, scope, id)
		if err != nil {
			return err
		}
		if err := s.docRepo.UpdateFile(txCtx, scope, id, newKey, req.OriginalFilename); err != nil {
			return err
		}
		oldKey = current
		return nil
	})
	if err != nil {
		removeBlobQuietly(ctx, s.blobs, s.logger, newKey)
		return nil, err
	}

	removeBlobQuietly(ctx, s.blobs, s.logger, oldKey)

	s.logger.Info("document replaced",
		"id", id,
		"scope", scope,
		"old_file_path", oldKey,
		"file_path", newKey,
	)

	return s.docRepo.GetByID(ctx, scope, id)
}

// DeleteDocument removes the blob, then the row. A blob that is already
// gone or cannot be removed does not block deleting the row.
func (s *documentService) DeleteDocument(ctx context.Context, scope models.DocumentScope, id int64) error {
	doc, err := s.docRepo.GetByID(ctx, scope, id)
	if err != nil {
		return err
	}

	removeBlobQuietly(ctx, s.blobs, s.logger, doc.FilePath)

	if err := s.docRepo.Delete(ctx, scope, id); err != nil {
		return err
	}

	s.logger.Info("document deleted",
		"id", id,
		"scope", scope,
		"file_path", doc.FilePath,
	)

	return nil
}

// OpenDocumentContent returns the document and a reader over its blob
func (s *documentService) OpenDocumentContent(ctx context.Context, scope models.DocumentScope, id int64) (*models.Document, io.ReadCloser, error) {
	doc, err := s.docRepo.GetByID(ctx, scope, id)
	if err != nil {
		return nil, nil, err
	}

	rc, err := s.blobs.Open(ctx, doc.FilePath)
	if err != nil {
		return nil, nil, err
	}

	return doc, rc, nil
}

// ConvertDocumentToPDF sends the blob to the converter. The source format
// comes from the stored key, which keeps the uploaded extension even after
// the display name changes.
func (s *documentService) ConvertDocumentToPDF(ctx context.Context, scope models.DocumentScope, id int64) (*docsysSvc.PDFRendition, error) {
	doc, rc, err := s.OpenDocumentContent(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	pdf, err := s.converter.ConvertToPDF(ctx, doc.FilePath, rc)
	if err != nil {
		s.logger.Warn("pdf conversion failed",
			"id", id,
			"scope", scope,
			"converter", s.converter.Name(),
			"error", err,
		)
		return nil, err
	}

	return &docsysSvc.PDFRendition{
		Filename: PDFFilename(doc.OriginalName),
		Content:  pdf,
	}, nil
}

// PDFFilename swaps a display name's extension for .pdf
func PDFFilename(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + ".pdf"
}

// validateCreateRequest validates a document upload
func (s *documentService) validateCreateRequest(req *docsysSvc.CreateDocumentRequest) error {
	return validation.Errors{
		"scope":             validation.Validate(req.Scope, validation.Required, validation.In(models.ScopeShipment, models.ScopeFolder)),
		"owner_id":          validation.Validate(req.OwnerID, validation.Required, validation.Min(int64(1))),
		"doc_type":          validation.Validate(strings.TrimSpace(req.DocType), validation.Required, validation.Length(1, config.MaxDocTypeLength)),
		"custom_name":       validation.Validate(strings.TrimSpace(req.DisplayName), validation.Length(0, config.MaxDocumentNameLength)),
		"original_filename": validation.Validate(req.OriginalFilename, validation.Required, validation.Length(1, config.MaxDocumentNameLength)),
		"file":              validation.Validate(req.Content, validation.NotNil),
	}.Filter()
}

// validateRenameRequest validates a metadata-only update
func (s *documentService) validateRenameRequest(req *docsysSvc.RenameDocumentRequest) error {
	return validation.Errors{
		"name":     validation.Validate(strings.TrimSpace(req.Name), validation.Required, validation.Length(1, config.MaxDocumentNameLength)),
		"doc_type": validation.Validate(strings.TrimSpace(req.DocType), validation.Required, validation.Length(1, config.MaxDocTypeLength)),
	}.Filter()
}

// validateReplaceRequest validates a replacement upload
func (s *documentService) validateReplaceRequest(req *docsysSvc.ReplaceDocumentRequest) error {
	return validation.Errors{
		"original_filename": validation.Validate(req.OriginalFilename, validation.Required, validation.Length(1, config.MaxDocumentNameLength)),
		"file":              validation.Validate(req.Content, validation.NotNil),
	}.Filter()
}
