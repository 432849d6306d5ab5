package handler

import (
	"log/slog"
	"net/http"

	models "importdocs/internal/domain/models/docsystem"
	docsysSvc "importdocs/internal/domain/services/docsystem"
	"importdocs/internal/httputil"
)

// ExportHandler handles archive export HTTP requests
type ExportHandler struct {
	exportService docsysSvc.ExportService
	logger        *slog.Logger
}

// NewExportHandler creates a new export handler
func NewExportHandler(exportService docsysSvc.ExportService, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
		logger:        logger,
	}
}

// CheckSupplierExport counts the documents a supplier export would contain
// GET /api/suppliers/{supplierId}/export/check
func (h *ExportHandler) CheckSupplierExport(w http.ResponseWriter, r *http.Request) {
	scope, err := supplierScope(r)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	h.check(w, r, scope)
}

// ExportSupplier streams a ZIP of one supplier's shipment documents
// GET /api/suppliers/{supplierId}/export
func (h *ExportHandler) ExportSupplier(w http.ResponseWriter, r *http.Request) {
	scope, err := supplierScope(r)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	h.export(w, r, scope, "No documents found for this supplier.")
}

// CheckAllExport counts every shipment and folder document
// GET /api/export-all/check
func (h *ExportHandler) CheckAllExport(w http.ResponseWriter, r *http.Request) {
	h.check(w, r, models.ExportScope{})
}

// ExportAll streams a ZIP of every document
// GET /api/export-all
func (h *ExportHandler) ExportAll(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, models.ExportScope{}, "No documents found.")
}

func (h *ExportHandler) check(w http.ResponseWriter, r *http.Request, scope models.ExportScope) {
	count, err := h.exportService.CountDocuments(r.Context(), scope)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]int{"count": count})
}

// export resolves the plan before writing headers, so lookup failures still
// get a proper status. Once streaming starts, a failure aborts the connection.
func (h *ExportHandler) export(w http.ResponseWriter, r *http.Request, scope models.ExportScope, emptyMessage string) {
	plan, err := h.exportService.PrepareExport(r.Context(), scope)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	if len(plan.Entries) == 0 {
		httputil.RespondError(w, http.StatusNotFound, emptyMessage)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	httputil.SetContentDisposition(w, "attachment", plan.Filename)
	w.WriteHeader(http.StatusOK)

	result, err := h.exportService.WriteArchive(r.Context(), plan, w)
	if err != nil {
		h.logger.Error("archive stream aborted",
			"request_id", httputil.RequestIDFrom(r.Context()),
			"filename", plan.Filename,
			"error", err,
		)
		// Headers are out; resetting the connection is the only way left to
		// tell the client the archive is incomplete.
		panic(http.ErrAbortHandler)
	}
	if len(result.Skipped) > 0 {
		h.logger.Warn("archive skipped missing blobs",
			"request_id", httputil.RequestIDFrom(r.Context()),
			"filename", plan.Filename,
			"skipped", result.Skipped,
		)
	}
}

func supplierScope(r *http.Request) (models.ExportScope, error) {
	supplierID, err := httputil.PathID(r, "supplierId")
	if err != nil {
		return models.ExportScope{}, err
	}
	return models.ExportScope{SupplierID: &supplierID}, nil
}
