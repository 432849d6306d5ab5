package handler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"importdocs/internal/domain"
	models "importdocs/internal/domain/models/docsystem"
	docsysSvc "importdocs/internal/domain/services/docsystem"
	"importdocs/internal/httputil"
)

// multipartMemory is how much of a multipart body is kept in memory before
// the rest spills to temporary files
const multipartMemory = 8 << 20

// DocumentHandler handles document HTTP requests for one scope.
// Shipment documents and folder documents are served by two instances.
type DocumentHandler struct {
	docService     docsysSvc.DocumentService
	scope          models.DocumentScope
	ownerParam     string // Path parameter carrying the owner ID
	maxUploadBytes int64
	logger         *slog.Logger
}

// NewDocumentHandler creates a new document handler for the given scope
func NewDocumentHandler(docService docsysSvc.DocumentService, scope models.DocumentScope, maxUploadBytes int64, logger *slog.Logger) *DocumentHandler {
	ownerParam := "shipmentId"
	if scope == models.ScopeFolder {
		ownerParam = "folderId"
	}
	return &DocumentHandler{
		docService:     docService,
		scope:          scope,
		ownerParam:     ownerParam,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// ListDocuments lists an owner's documents, newest first
// GET /api/shipments/{shipmentId}/documents
// GET /api/folders/{folderId}/documents
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	ownerID, err := httputil.PathID(r, h.ownerParam)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	docs, err := h.docService.ListDocuments(r.Context(), h.scope, ownerID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondData(w, http.StatusOK, docs)
}

// CreateDocument uploads a document
// POST /api/shipments/{shipmentId}/documents
// POST /api/folders/{folderId}/documents
// Multipart fields: file (required), doc_type (required), custom_name (optional)
func (h *DocumentHandler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	ownerID, err := httputil.PathID(r, h.ownerParam)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	file, header, err := h.parseUpload(w, r)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	defer file.Close()

	req := &docsysSvc.CreateDocumentRequest{
		Scope:            h.scope,
		OwnerID:          ownerID,
		DocType:          r.FormValue("doc_type"),
		DisplayName:      r.FormValue("custom_name"),
		OriginalFilename: header.Filename,
		Content:          file,
	}

	doc, err := h.docService.CreateDocument(r.Context(), req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondData(w, http.StatusCreated, doc)
}

// GetDocument retrieves a document's metadata
// GET /api/documents/{id}
// GET /api/folder-documents/{id}
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	doc, err := h.docService.GetDocument(r.Context(), h.scope, id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondData(w, http.StatusOK, doc)
}

// RenameDocument changes a document's display name and type
// PUT /api/documents/{id}
// PUT /api/folder-documents/{id}
func (h *DocumentHandler) RenameDocument(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	var req docsysSvc.RenameDocumentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		handleError(w, h.logger, err)
		return
	}

	doc, err := h.docService.RenameDocument(r.Context(), h.scope, id, &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondData(w, http.StatusOK, doc)
}

// ReplaceDocument swaps a document's bytes for a new upload
// POST /api/documents/{id}/replace
// POST /api/folder-documents/{id}/replace
func (h *DocumentHandler) ReplaceDocument(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	file, header, err := h.parseUpload(w, r)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	defer file.Close()

	doc, err := h.docService.ReplaceDocument(r.Context(), h.scope, id, &docsysSvc.ReplaceDocumentRequest{
		OriginalFilename: header.Filename,
		Content:          file,
	})
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondData(w, http.StatusOK, doc)
}

// DeleteDocument deletes a document and its blob
// DELETE /api/documents/{id}
// DELETE /api/folder-documents/{id}
func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	if err := h.docService.DeleteDocument(r.Context(), h.scope, id); err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondMessage(w, http.StatusOK, "Document deleted")
}

// GetContent streams a document's stored bytes inline
// GET /api/documents/{id}/content
// GET /api/folder-documents/{id}/content
func (h *DocumentHandler) GetContent(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	doc, content, err := h.docService.OpenDocumentContent(r.Context(), h.scope, id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	defer content.Close()

	w.Header().Set("Content-Type", httputil.ContentTypeFor(doc.FilePath))
	httputil.SetContentDisposition(w, "inline", doc.OriginalName)
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, content); err != nil {
		h.logger.Warn("content stream interrupted",
			"document_id", id,
			"scope", h.scope,
			"error", err,
		)
	}
}

// GetPDF returns a PDF rendition of a document
// GET /api/documents/{id}/pdf
// GET /api/folder-documents/{id}/pdf
func (h *DocumentHandler) GetPDF(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	rendition, err := h.docService.ConvertDocumentToPDF(r.Context(), h.scope, id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	httputil.SetContentDisposition(w, "inline", rendition.Filename)
	httputil.SetContentLength(w, len(rendition.Content))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(rendition.Content); err != nil {
		h.logger.Warn("pdf response write failed",
			"document_id", id,
			"scope", h.scope,
			"error", err,
		)
	}
}

// parseUpload reads the multipart body and returns the "file" part.
// The body is capped at maxUploadBytes.
func (h *DocumentHandler) parseUpload(w http.ResponseWriter, r *http.Request) (multipart.File, *multipart.FileHeader, error) {
	if r.ContentLength > h.maxUploadBytes {
		return nil, nil, &http.MaxBytesError{Limit: h.maxUploadBytes}
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, nil, maxBytesErr
		}
		return nil, nil, fmt.Errorf("%w: invalid multipart form: %v", domain.ErrValidation, err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil, &domain.ValidationError{Message: "No file uploaded."}
		}
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return file, header, nil
}
