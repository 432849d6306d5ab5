// Package seed loads sample data through the domain services.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"importdocs/internal/domain"
	models "importdocs/internal/domain/models/docsystem"
	docsysSvc "importdocs/internal/domain/services/docsystem"
)

// Seeder creates suppliers, shipments, folders and documents from a directory
// laid out like an export archive:
//
//	<root>/Suppliers/<supplier>/<shipment>/<file>
//	<root>/Folders/<folder>/<file>
type Seeder struct {
	suppliers docsysSvc.SupplierService
	shipments docsysSvc.ShipmentService
	folders   docsysSvc.FolderService
	documents docsysSvc.DocumentService
	docType   string
	logger    *slog.Logger
}

// Result counts what a seed run created
type Result struct {
	Suppliers int
	Shipments int
	Folders   int
	Documents int
	Failed    int
}

// NewSeeder creates a new seeder. docType labels every seeded document.
func NewSeeder(
	suppliers docsysSvc.SupplierService,
	shipments docsysSvc.ShipmentService,
	folders docsysSvc.FolderService,
	documents docsysSvc.DocumentService,
	docType string,
	logger *slog.Logger,
) *Seeder {
	return &Seeder{
		suppliers: suppliers,
		shipments: shipments,
		folders:   folders,
		documents: documents,
		docType:   docType,
		logger:    logger,
	}
}

// SeedDirectory walks root and creates everything it finds. Suppliers and
// folders that already exist are reused; shipments are always new.
// A document that fails to upload is logged and counted, not fatal.
func (s *Seeder) SeedDirectory(ctx context.Context, root string) (*Result, error) {
	result := &Result{}

	supplierDirs, err := subdirs(filepath.Join(root, models.SubtreeSuppliers))
	if err != nil {
		return nil, err
	}
	for _, supplierName := range supplierDirs {
		supplierID, created, err := s.ensureSupplier(ctx, supplierName)
		if err != nil {
			return nil, err
		}
		if created {
			result.Suppliers++
		}

		supplierPath := filepath.Join(root, models.SubtreeSuppliers, supplierName)
		shipmentDirs, err := subdirs(supplierPath)
		if err != nil {
			return nil, err
		}
		for _, shipmentName := range shipmentDirs {
			shipment, err := s.shipments.CreateShipment(ctx, supplierID, &docsysSvc.CreateContainerRequest{Name: shipmentName})
			if err != nil {
				return nil, fmt.Errorf("create shipment %s/%s: %w", supplierName, shipmentName, err)
			}
			result.Shipments++
			s.uploadAll(ctx, models.ScopeShipment, shipment.ID, filepath.Join(supplierPath, shipmentName), result)
		}
	}

	folderDirs, err := subdirs(filepath.Join(root, models.SubtreeFolders))
	if err != nil {
		return nil, err
	}
	for _, folderName := range folderDirs {
		folderID, created, err := s.ensureFolder(ctx, folderName)
		if err != nil {
			return nil, err
		}
		if created {
			result.Folders++
		}
		s.uploadAll(ctx, models.ScopeFolder, folderID, filepath.Join(root, models.SubtreeFolders, folderName), result)
	}

	s.logger.Info("seed complete",
		"root", root,
		"suppliers", result.Suppliers,
		"shipments", result.Shipments,
		"folders", result.Folders,
		"documents", result.Documents,
		"failed", result.Failed,
	)
	return result, nil
}

// ClearData deletes every supplier and folder, cascading to their
// shipments, documents and blobs
func (s *Seeder) ClearData(ctx context.Context) error {
	suppliers, err := s.suppliers.ListSuppliers(ctx)
	if err != nil {
		return err
	}
	for _, supplier := range suppliers {
		if err := s.suppliers.DeleteSupplier(ctx, supplier.ID); err != nil {
			return fmt.Errorf("delete supplier %s: %w", supplier.Name, err)
		}
	}

	folders, err := s.folders.ListFolders(ctx)
	if err != nil {
		return err
	}
	for _, folder := range folders {
		if err := s.folders.DeleteFolder(ctx, folder.ID); err != nil {
			return fmt.Errorf("delete folder %s: %w", folder.Name, err)
		}
	}

	s.logger.Info("data cleared", "suppliers", len(suppliers), "folders", len(folders))
	return nil
}

func (s *Seeder) ensureSupplier(ctx context.Context, name string) (int64, bool, error) {
	supplier, err := s.suppliers.CreateSupplier(ctx, &docsysSvc.CreateContainerRequest{Name: name})
	if err == nil {
		return supplier.ID, true, nil
	}
	if !errors.Is(err, domain.ErrConflict) {
		return 0, false, fmt.Errorf("create supplier %s: %w", name, err)
	}

	suppliers, err := s.suppliers.ListSuppliers(ctx)
	if err != nil {
		return 0, false, err
	}
	for _, existing := range suppliers {
		if existing.Name == name {
			return existing.ID, false, nil
		}
	}
	return 0, false, fmt.Errorf("supplier %s reported as existing but not listed", name)
}

func (s *Seeder) ensureFolder(ctx context.Context, name string) (int64, bool, error) {
	folder, err := s.folders.CreateFolder(ctx, &docsysSvc.CreateContainerRequest{Name: name})
	if err == nil {
		return folder.ID, true, nil
	}
	if !errors.Is(err, domain.ErrConflict) {
		return 0, false, fmt.Errorf("create folder %s: %w", name, err)
	}

	folders, err := s.folders.ListFolders(ctx)
	if err != nil {
		return 0, false, err
	}
	for _, existing := range folders {
		if existing.Name == name {
			return existing.ID, false, nil
		}
	}
	return 0, false, fmt.Errorf("folder %s reported as existing but not listed", name)
}

// uploadAll uploads every regular file directly inside dir
func (s *Seeder) uploadAll(ctx context.Context, scope models.DocumentScope, ownerID int64, dir string, result *Result) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		s.logger.Warn("failed to read seed directory", "dir", dir, "error", err)
		result.Failed++
		return
	}

	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := s.upload(ctx, scope, ownerID, path); err != nil {
			s.logger.Warn("failed to seed document", "path", path, "error", err)
			result.Failed++
			continue
		}
		result.Documents++
	}
}

func (s *Seeder) upload(ctx context.Context, scope models.DocumentScope, ownerID int64, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	doc, err := s.documents.CreateDocument(ctx, &docsysSvc.CreateDocumentRequest{
		Scope:            scope,
		OwnerID:          ownerID,
		DocType:          s.docType,
		OriginalFilename: filepath.Base(path),
		Content:          f,
	})
	if err != nil {
		return err
	}

	s.logger.Debug("seeded document", "scope", scope, "owner_id", ownerID, "id", doc.ID, "file_path", doc.FilePath)
	return nil
}

// subdirs lists the directory names inside dir, sorted. A missing dir is empty.
func subdirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
