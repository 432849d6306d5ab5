package docsystem

import (
	"context"

	"importdocs/internal/domain/models/docsystem"
)

// SupplierRepository defines data access operations for suppliers
type SupplierRepository interface {
	// Create inserts a supplier, domain.ErrConflict on a duplicate name
	Create(ctx context.Context, supplier *docsystem.Supplier) error

	// GetByID retrieves a supplier by ID
	GetByID(ctx context.Context, id int64) (*docsystem.Supplier, error)

	// List lists all suppliers ordered by name
	List(ctx context.Context) ([]docsystem.Supplier, error)

	// Delete deletes a supplier; shipments and their documents go with it
	Delete(ctx context.Context, id int64) error
}

// ShipmentRepository defines data access operations for shipments
type ShipmentRepository interface {
	// Create inserts a shipment, domain.ErrNotFound if the supplier is missing
	Create(ctx context.Context, shipment *docsystem.Shipment) error

	// GetByID retrieves a shipment with its supplier name
	GetByID(ctx context.Context, id int64) (*docsystem.Shipment, error)

	// ListBySupplier lists a supplier's shipments, newest first
	ListBySupplier(ctx context.Context, supplierID int64) ([]docsystem.Shipment, error)

	// ListAll lists every shipment ordered by supplier then ID
	ListAll(ctx context.Context) ([]docsystem.Shipment, error)

	// Delete deletes a shipment; its documents go with it
	Delete(ctx context.Context, id int64) error
}
