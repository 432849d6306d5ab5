package app

import (
	"log/slog"

	"importdocs/internal/config"
	docsysSvc "importdocs/internal/domain/services/docsystem"
	serviceDocsys "importdocs/internal/service/docsystem"
	"importdocs/internal/service/docsystem/converter"
)

// Services holds every domain service built over one set of stores
type Services struct {
	Suppliers docsysSvc.SupplierService
	Shipments docsysSvc.ShipmentService
	Folders   docsysSvc.FolderService
	Documents docsysSvc.DocumentService
	Exports   docsysSvc.ExportService
	Audit     docsysSvc.AuditService
}

// NewConverter builds the ConvertAPI client. A missing secret is not fatal:
// PDF requests fail with 503 until one is configured.
func NewConverter(cfg *config.Config, logger *slog.Logger) docsysSvc.PDFConverter {
	if cfg.ConvertAPISecret == "" {
		logger.Warn("CONVERTAPI_SECRET not set, PDF conversion disabled")
	}
	return converter.NewConvertAPIClientWithConfig(cfg.ConvertAPISecret, cfg.ConvertAPIBaseURL, cfg.ConvertAPITimeout)
}

// NewServices creates the domain services
func NewServices(stores *Stores, pdfConverter docsysSvc.PDFConverter, logger *slog.Logger) *Services {
	validator := serviceDocsys.NewResourceValidator(stores.Shipments, stores.Folders)

	return &Services{
		Suppliers: serviceDocsys.NewSupplierService(stores.Suppliers, stores.Documents, stores.Blobs, logger),
		Shipments: serviceDocsys.NewShipmentService(stores.Shipments, stores.Suppliers, stores.Documents, stores.Blobs, logger),
		Folders:   serviceDocsys.NewFolderService(stores.Folders, stores.Documents, stores.Blobs, logger),
		Documents: serviceDocsys.NewDocumentService(stores.Documents, stores.Blobs, stores.TxManager, pdfConverter, validator, logger),
		Exports:   serviceDocsys.NewExportService(stores.Exports, stores.Suppliers, stores.Blobs, logger),
		Audit:     serviceDocsys.NewAuditService(stores.Suppliers, stores.Shipments, stores.Folders, stores.Documents, stores.Blobs, logger),
	}
}
