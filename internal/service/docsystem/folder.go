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

type folderService struct {
	folderRepo docsysRepo.FolderRepository
	docRepo    docsysRepo.DocumentRepository
	blobs      repositories.BlobStore
	logger     *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	folderRepo docsysRepo.FolderRepository,
	docRepo docsysRepo.DocumentRepository,
	blobs repositories.BlobStore,
	logger *slog.Logger,
) docsysSvc.FolderService {
	return &folderService{
		folderRepo: folderRepo,
		docRepo:    docRepo,
		blobs:      blobs,
		logger:     logger,
	}
}

// ListFolders lists all folders ordered by name
func (s *folderService) ListFolders(ctx context.Context) ([]models.Folder, error) {
	return s.folderRepo.List(ctx)
}

// CreateFolder creates a new folder
func (s *folderService) CreateFolder(ctx context.Context, req *docsysSvc.CreateContainerRequest) (*models.Folder, error) {
	if err := validateContainerRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	name, details := normalizeContainerRequest(req)
	folder := &models.Folder{Name: name, Details: details}
	if err := s.folderRepo.Create(ctx, folder); err != nil {
		return nil, err
	}

	s.logger.Info("folder created", "id", folder.ID, "name", folder.Name)

	return folder, nil
}

// GetFolder retrieves a folder
func (s *folderService) GetFolder(ctx context.Context, id int64) (*models.Folder, error) {
	return s.folderRepo.GetByID(ctx, id)
}

// DeleteFolder removes the blobs of the folder's documents, then the folder.
// Document rows go with it through the foreign key cascade.
func (s *folderService) DeleteFolder(ctx context.Context, id int64) error {
	folder, err := s.folderRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	keys, err := s.docRepo.ListFilePathsByFolder(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to list folder documents: %w", err)
	}

	removeBlobsQuietly(ctx, s.blobs, s.logger, keys)

	if err := s.folderRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("folder deleted",
		"id", id,
		"name", folder.Name,
		"blob_count", len(keys),
	)

	return nil
}
