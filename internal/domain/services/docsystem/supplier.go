package docsystem

import (
	"context"

	"importdocs/internal/domain/models/docsystem"
)

// SupplierService handles supplier business logic
type SupplierService interface {
	// ListSuppliers lists all suppliers ordered by name
	ListSuppliers(ctx context.Context) ([]docsystem.Supplier, error)

	// CreateSupplier creates a new supplier
	CreateSupplier(ctx context.Context, req *CreateContainerRequest) (*docsystem.Supplier, error)

	// GetSupplier retrieves a supplier
	GetSupplier(ctx context.Context, id int64) (*docsystem.Supplier, error)

	// DeleteSupplier deletes a supplier, its shipments, their documents and blobs
	DeleteSupplier(ctx context.Context, id int64) error
}

// ShipmentService handles shipment business logic
type ShipmentService interface {
	// ListShipments returns the supplier with its shipments, newest first
	ListShipments(ctx context.Context, supplierID int64) (*docsystem.SupplierShipments, error)

	// CreateShipment creates a shipment under a supplier
	CreateShipment(ctx context.Context, supplierID int64, req *CreateContainerRequest) (*docsystem.Shipment, error)

	// GetShipment retrieves a shipment with its supplier name
	GetShipment(ctx context.Context, id int64) (*docsystem.Shipment, error)

	// DeleteShipment deletes a shipment, its documents and their blobs
	DeleteShipment(ctx context.Context, id int64) error
}
