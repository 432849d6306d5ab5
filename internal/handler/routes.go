package handler

import "net/http"

// Handlers groups every HTTP handler the API exposes
type Handlers struct {
	Health            *HealthHandler
	Suppliers         *SupplierHandler
	Shipments         *ShipmentHandler
	Folders           *FolderHandler
	ShipmentDocuments *DocumentHandler
	FolderDocuments   *DocumentHandler
	Exports           *ExportHandler
	Audit             *AuditHandler
}

// RegisterRoutes registers the API on mux (Go 1.22+ enhanced patterns)
func RegisterRoutes(mux *http.ServeMux, h *Handlers) {
	// Health check
	mux.HandleFunc("GET /health", h.Health.GetHealth)

	// Supplier routes
	mux.HandleFunc("GET /api/suppliers", h.Suppliers.ListSuppliers)
	mux.HandleFunc("POST /api/suppliers", h.Suppliers.CreateSupplier)
	mux.HandleFunc("GET /api/suppliers/{id}", h.Suppliers.GetSupplier)
	mux.HandleFunc("DELETE /api/suppliers/{id}", h.Suppliers.DeleteSupplier)

	// Shipment routes
	mux.HandleFunc("GET /api/suppliers/{supplierId}/shipments", h.Shipments.ListShipments)
	mux.HandleFunc("POST /api/suppliers/{supplierId}/shipments", h.Shipments.CreateShipment)
	mux.HandleFunc("GET /api/shipments/{id}", h.Shipments.GetShipment)
	mux.HandleFunc("DELETE /api/shipments/{id}", h.Shipments.DeleteShipment)

	// Folder routes
	mux.HandleFunc("GET /api/folders", h.Folders.ListFolders)
	mux.HandleFunc("POST /api/folders", h.Folders.CreateFolder)
	mux.HandleFunc("GET /api/folders/{id}", h.Folders.GetFolder)
	mux.HandleFunc("DELETE /api/folders/{id}", h.Folders.DeleteFolder)

	// Shipment document routes
	registerDocumentRoutes(mux, h.ShipmentDocuments, "/api/shipments/{shipmentId}/documents", "/api/documents/{id}")

	// Folder document routes
	registerDocumentRoutes(mux, h.FolderDocuments, "/api/folders/{folderId}/documents", "/api/folder-documents/{id}")

	// Export routes
	mux.HandleFunc("GET /api/suppliers/{supplierId}/export/check", h.Exports.CheckSupplierExport)
	mux.HandleFunc("GET /api/suppliers/{supplierId}/export", h.Exports.ExportSupplier)
	mux.HandleFunc("GET /api/export-all/check", h.Exports.CheckAllExport)
	mux.HandleFunc("GET /api/export-all", h.Exports.ExportAll)

	// Inventory audit
	mux.HandleFunc("GET /api/audit", h.Audit.GetAudit)
}

func registerDocumentRoutes(mux *http.ServeMux, h *DocumentHandler, collection, item string) {
	mux.HandleFunc("GET "+collection, h.ListDocuments)
	mux.HandleFunc("POST "+collection, h.CreateDocument)
	mux.HandleFunc("GET "+item, h.GetDocument)
	mux.HandleFunc("PUT "+item, h.RenameDocument)
	mux.HandleFunc("DELETE "+item, h.DeleteDocument)
	mux.HandleFunc("POST "+item+"/replace", h.ReplaceDocument)
	mux.HandleFunc("GET "+item+"/content", h.GetContent)
	mux.HandleFunc("GET "+item+"/pdf", h.GetPDF)
}
