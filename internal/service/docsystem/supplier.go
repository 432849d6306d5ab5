package docsystem

import (
	"context"
	"fmt"
	"log/slog"

	"importdocs/internal/domain"
	models "importdocs/internal/domain/models/docsystem"
	"importdocs/internal/domain/repositories"
	docsysRepo "importdocs/internal/domain/repositories/docsystem"
	docsysSvc "importdocs/internal/domain/services/docsystem"
)

type supplierService struct {
	supplierRepo docsysRepo.SupplierRepository
	docRepo      docsysRepo.DocumentRepository
	blobs        repositories.BlobStore
	logger       *slog.Logger
}

// NewSupplierService creates a new supplier service
func NewSupplierService(
	supplierRepo docsysRepo.SupplierRepository,
	docRepo docsysRepo.DocumentRepository,
	blobs repositories.BlobStore,
	logger *slog.Logger,
) docsysSvc.SupplierService {
	return &supplierService{
		supplierRepo: supplierRepo,
		docRepo:      docRepo,
		blobs:        blobs,
		logger:       logger,
	}
}

// ListSuppliers lists all suppliers ordered by name
func (s *supplierService) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	return s.supplierRepo.List(ctx)
}

// CreateSupplier creates a new supplier
func (s *supplierService) CreateSupplier(ctx context.Context, req *docsysSvc.CreateContainerRequest) (*models.Supplier, error) {
	if err := validateContainerRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	name, details := normalizeContainerRequest(req)
	supplier := &models.Supplier{Name: name, Details: details}
	if err := s.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, err
	}

	s.logger.Info("supplier created", "id", supplier.ID, "name", supplier.Name)

	return supplier, nil
}

// GetSupplier retrieves a supplier
func (s *supplierService) GetSupplier(ctx context.Context, id int64) (*models.Supplier, error) {
	return s.supplierRepo.GetByID(ctx, id)
}

// DeleteSupplier removes the blobs of every document under the supplier's
// shipments, then deletes the supplier. Shipment and document rows go with it
// through the foreign key cascade.
func (s *supplierService) DeleteSupplier(ctx context.Context, id int64) error {
	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	keys, err := s.docRepo.ListFilePathsBySupplier(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to list supplier documents: %w", err)
	}

	removeBlobsQuietly(ctx, s.blobs, s.logger, keys)

	if err := s.supplierRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("supplier deleted",
		"id", id,
		"name", supplier.Name,
		"blob_count", len(keys),
	)

	return nil
}
