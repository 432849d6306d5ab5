package handler

import (
	"log/slog"
	"net/http"

	docsysSvc "importdocs/internal/domain/services/docsystem"
	"importdocs/internal/httputil"
)

// ShipmentHandler handles shipment HTTP requests
type ShipmentHandler struct {
	shipmentService docsysSvc.ShipmentService
	logger          *slog.Logger
}

// NewShipmentHandler creates a new shipment handler
func NewShipmentHandler(shipmentService docsysSvc.ShipmentService, logger *slog.Logger) *ShipmentHandler {
	return &ShipmentHandler{
		shipmentService: shipmentService,
		logger:          logger,
	}
}

// ListShipments returns a supplier with its shipments
// GET /api/suppliers/{supplierId}/shipments
func (h *ShipmentHandler) ListShipments(w http.ResponseWriter, r *http.Request) {
	supplierID, err := httputil.PathID(r, "supplierId")
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	result, err := h.shipmentService.ListShipments(r.Context(), supplierID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

// CreateShipment creates a shipment under a supplier
// POST /api/suppliers/{supplierId}/shipments
func (h *ShipmentHandler) CreateShipment(w http.ResponseWriter, r *http.Request) {
	supplierID, err := httputil.PathID(r, "supplierId")
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	var req docsysSvc.CreateContainerRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		handleError(w, h.logger, err)
		return
	}

	shipment, err := h.shipmentService.CreateShipment(r.Context(), supplierID, &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondData(w, http.StatusCreated, shipment)
}

// GetShipment retrieves a shipment with its supplier name
// GET /api/shipments/{id}
func (h *ShipmentHandler) GetShipment(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	shipment, err := h.shipmentService.GetShipment(r.Context(), id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondData(w, http.StatusOK, shipment)
}

// DeleteShipment deletes a shipment with its documents
// DELETE /api/shipments/{id}
func (h *ShipmentHandler) DeleteShipment(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	if err := h.shipmentService.DeleteShipment(r.Context(), id); err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondMessage(w, http.StatusOK, "Shipment deleted")
}
