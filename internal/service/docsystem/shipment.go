package docsystem

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"importdocs/internal/domain"
	models "importdocs/internal/domain/models/docsystem"
	"importdocs/internal/domain/repositories"
	docsysRepo "importdocs/internal/domain/repositories/docsystem"
	docsysSvc "importdocs/internal/domain/services/docsystem"
)

type shipmentService struct {
	shipmentRepo docsysRepo.ShipmentRepository
	supplierRepo docsysRepo.SupplierRepository
	docRepo      docsysRepo.DocumentRepository
	blobs        repositories.BlobStore
	logger       *slog.Logger
}

// NewShipmentService creates a new shipment service
func NewShipmentService(
	shipmentRepo docsysRepo.ShipmentRepository,
	supplierRepo docsysRepo.SupplierRepository,
	docRepo docsysRepo.DocumentRepository,
	blobs repositories.BlobStore,
	logger *slog.Logger,
) docsysSvc.ShipmentService {
	return &shipmentService{
		shipmentRepo: shipmentRepo,
		supplierRepo: supplierRepo,
		docRepo:      docRepo,
		blobs:        blobs,
		logger:       logger,
	}
}

// ListShipments returns the supplier with its shipments, newest first
func (s *shipmentService) ListShipments(ctx context.Context, supplierID int64) (*models.SupplierShipments, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	shipments, err := s.shipmentRepo.ListBySupplier(ctx, supplierID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shipments: %w", err)
	}

	return &models.SupplierShipments{
		Supplier:  supplier,
		Shipments: shipments,
	}, nil
}

// CreateShipment creates a shipment under a supplier
func (s *shipmentService) CreateShipment(ctx context.Context, supplierID int64, req *docsysSvc.CreateContainerRequest) (*models.Shipment, error) {
	if err := validateContainerRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	supplier, err := s.supplierRepo.GetByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	name, details := normalizeContainerRequest(req)
	shipment := &models.Shipment{
		Name:       name,
		SupplierID: &supplier.ID,
		Details:    details,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.shipmentRepo.Create(ctx, shipment); err != nil {
		return nil, err
	}
	shipment.SupplierName = &supplier.Name

	s.logger.Info("shipment created",
		"id", shipment.ID,
		"name", shipment.Name,
		"supplier_id", supplier.ID,
	)

	return shipment, nil
}

// GetShipment retrieves a shipment with its supplier name
func (s *shipmentService) GetShipment(ctx context.Context, id int64) (*models.Shipment, error) {
	return s.shipmentRepo.GetByID(ctx, id)
}

// DeleteShipment removes the blobs of the shipment's documents, then the
// shipment. Document rows go with it through the foreign key cascade.
func (s *shipmentService) DeleteShipment(ctx context.Context, id int64) error {
	shipment, err := s.shipmentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	keys, err := s.docRepo.ListFilePathsByShipment(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to list shipment documents: %w", err)
	}

	removeBlobsQuietly(ctx, s.blobs, s.logger, keys)

	if err := s.shipmentRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("shipment deleted",
		"id", id,
		"name", shipment.Name,
		"blob_count", len(keys),
	)

	return nil
}
