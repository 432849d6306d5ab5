package docsystem

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	models "importdocs/internal/domain/models/docsystem"
	"importdocs/internal/domain/repositories"
	docsysRepo "importdocs/internal/domain/repositories/docsystem"
	docsysSvc "importdocs/internal/domain/services/docsystem"
)

// auditService implements the AuditService interface
type auditService struct {
	supplierRepo docsysRepo.SupplierRepository
	shipmentRepo docsysRepo.ShipmentRepository
	folderRepo   docsysRepo.FolderRepository
	docRepo      docsysRepo.DocumentRepository
	blobs        repositories.BlobStore
	logger       *slog.Logger
}

// NewAuditService creates a new audit service
func NewAuditService(
	supplierRepo docsysRepo.SupplierRepository,
	shipmentRepo docsysRepo.ShipmentRepository,
	folderRepo docsysRepo.FolderRepository,
	docRepo docsysRepo.DocumentRepository,
	blobs repositories.BlobStore,
	logger *slog.Logger,
) docsysSvc.AuditService {
	return &auditService{
		supplierRepo: supplierRepo,
		shipmentRepo: shipmentRepo,
		folderRepo:   folderRepo,
		docRepo:      docRepo,
		blobs:        blobs,
		logger:       logger,
	}
}

// Audit builds the inventory tree from flat rows and compares every
// referenced key with the blob store's listing
func (s *auditService) Audit(ctx context.Context) (*models.AuditReport, error) {
	suppliers, err := s.supplierRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	shipments, err := s.shipmentRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	folders, err := s.folderRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	shipmentDocs, err := s.docRepo.ListAll(ctx, models.ScopeShipment)
	if err != nil {
		return nil, err
	}
	folderDocs, err := s.docRepo.ListAll(ctx, models.ScopeFolder)
	if err != nil {
		return nil, err
	}
	keys, err := s.blobs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list blobs: %w", err)
	}

	stored := make(map[string]bool, len(keys))
	for _, key := range keys {
		stored[key] = false
	}

	report := &models.AuditReport{
		Suppliers:    make([]*models.SupplierTreeNode, 0, len(suppliers)),
		Folders:      make([]*models.FolderTreeNode, 0, len(folders)),
		MissingBlobs: []string{},
		OrphanBlobs:  []string{},
	}

	// docNode marks the blob as referenced and flags it if absent
	docNode := func(doc models.Document) models.DocumentTreeNode {
		_, present := stored[doc.FilePath]
		if present {
			stored[doc.FilePath] = true
		} else {
			report.MissingBlobs = append(report.MissingBlobs, doc.FilePath)
		}
		report.DocumentCount++
		return models.DocumentTreeNode{
			ID:           doc.ID,
			DocType:      doc.DocType,
			OriginalName: doc.OriginalName,
			FilePath:     doc.FilePath,
			BlobMissing:  !present,
			CreatedAt:    doc.CreatedAt,
		}
	}

	// First pass: create all container nodes
	supplierMap := make(map[int64]*models.SupplierTreeNode, len(suppliers))
	for _, supplier := range suppliers {
		node := &models.SupplierTreeNode{
			ID:        supplier.ID,
			Name:      supplier.Name,
			Shipments: []*models.ShipmentTreeNode{},
		}
		supplierMap[supplier.ID] = node
		report.Suppliers = append(report.Suppliers, node)
	}

	folderMap := make(map[int64]*models.FolderTreeNode, len(folders))
	for _, folder := range folders {
		node := &models.FolderTreeNode{
			ID:        folder.ID,
			Name:      folder.Name,
			Documents: []models.DocumentTreeNode{},
		}
		folderMap[folder.ID] = node
		report.Folders = append(report.Folders, node)
	}

	// Second pass: nest shipments under their suppliers
	shipmentMap := make(map[int64]*models.ShipmentTreeNode, len(shipments))
	for _, shipment := range shipments {
		node := &models.ShipmentTreeNode{
			ID:        shipment.ID,
			Name:      shipment.Name,
			Documents: []models.DocumentTreeNode{},
		}
		shipmentMap[shipment.ID] = node

		if shipment.SupplierID == nil {
			report.UnownedRecords++
			continue
		}
		if parent, exists := supplierMap[*shipment.SupplierID]; exists {
			parent.Shipments = append(parent.Shipments, node)
		}
	}

	// Third pass: add documents to their owners
	for _, doc := range shipmentDocs {
		node := docNode(doc)
		if parent, exists := shipmentMap[doc.OwnerID]; exists {
			parent.Documents = append(parent.Documents, node)
		}
	}
	for _, doc := range folderDocs {
		node := docNode(doc)
		if parent, exists := folderMap[doc.OwnerID]; exists {
			parent.Documents = append(parent.Documents, node)
		}
	}

	for key, referenced := range stored {
		if !referenced {
			report.OrphanBlobs = append(report.OrphanBlobs, key)
		}
	}
	sort.Strings(report.OrphanBlobs)

	s.logger.Info("inventory audited",
		"supplier_count", len(suppliers),
		"shipment_count", len(shipments),
		"folder_count", len(folders),
		"document_count", report.DocumentCount,
		"missing_blobs", len(report.MissingBlobs),
		"orphan_blobs", len(report.OrphanBlobs),
	)

	return report, nil
}
