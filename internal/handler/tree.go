package handler

import (
	"log/slog"
	"net/http"

	docsysSvc "importdocs/internal/domain/services/docsystem"
	"importdocs/internal/httputil"
)

// AuditHandler handles HTTP requests for the inventory audit
type AuditHandler struct {
	auditService docsysSvc.AuditService
	logger       *slog.Logger
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(auditService docsysSvc.AuditService, logger *slog.Logger) *AuditHandler {
	return &AuditHandler{
		auditService: auditService,
		logger:       logger,
	}
}

// GetAudit returns the nested supplier/shipment/folder/document tree with
// missing and orphan blobs
// GET /api/audit
func (h *AuditHandler) GetAudit(w http.ResponseWriter, r *http.Request) {
	report, err := h.auditService.Audit(r.Context())
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondData(w, http.StatusOK, report)
}
