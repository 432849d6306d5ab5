package handler

import (
	"log/slog"
	"net/http"

	models "importdocs/internal/domain/models/docsystem"
	docsysSvc "importdocs/internal/domain/services/docsystem"
	"importdocs/internal/httputil"
)

// SupplierHandler handles supplier HTTP requests
type SupplierHandler struct {
	supplierService docsysSvc.SupplierService
	logger          *slog.Logger
}

// NewSupplierHandler creates a new supplier handler
func NewSupplierHandler(supplierService docsysSvc.SupplierService, logger *slog.Logger) *SupplierHandler {
	return &SupplierHandler{
		supplierService: supplierService,
		logger:          logger,
	}
}

// ListSuppliers lists all suppliers
// GET /api/suppliers
func (h *SupplierHandler) ListSuppliers(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.supplierService.ListSuppliers(r.Context())
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondData(w, http.StatusOK, suppliers)
}

// CreateSupplier creates a new supplier
// POST /api/suppliers
// Returns 201 if created, 409 with the existing supplier if the name is taken
func (h *SupplierHandler) CreateSupplier(w http.ResponseWriter, r *http.Request) {
	var req docsysSvc.CreateContainerRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		handleError(w, h.logger, err)
		return
	}

	supplier, err := h.supplierService.CreateSupplier(r.Context(), &req)
	if err != nil {
		HandleCreateConflict(w, h.logger, err, func(id int64) (*models.Supplier, error) {
			return h.supplierService.GetSupplier(r.Context(), id)
		})
		return
	}

	httputil.RespondData(w, http.StatusCreated, supplier)
}

// GetSupplier retrieves a supplier
// GET /api/suppliers/{id}
func (h *SupplierHandler) GetSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	supplier, err := h.supplierService.GetSupplier(r.Context(), id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondData(w, http.StatusOK, supplier)
}

// DeleteSupplier deletes a supplier with its shipments and documents
// DELETE /api/suppliers/{id}
func (h *SupplierHandler) DeleteSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	if err := h.supplierService.DeleteSupplier(r.Context(), id); err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondMessage(w, http.StatusOK, "Supplier deleted")
}
