package docsystem

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"importdocs/internal/domain"
	models "importdocs/internal/domain/models/docsystem"
	"importdocs/internal/domain/repositories"
	docsysRepo "importdocs/internal/domain/repositories/docsystem"
	docsysSvc "importdocs/internal/domain/services/docsystem"
)

// exportService implements the ExportService interface
type exportService struct {
	exportRepo   docsysRepo.ExportRepository
	supplierRepo docsysRepo.SupplierRepository
	blobs        repositories.BlobStore
	logger       *slog.Logger
}

// NewExportService creates a new export service
func NewExportService(
	exportRepo docsysRepo.ExportRepository,
	supplierRepo docsysRepo.SupplierRepository,
	blobs repositories.BlobStore,
	logger *slog.Logger,
) docsysSvc.ExportService {
	return &exportService{
		exportRepo:   exportRepo,
		supplierRepo: supplierRepo,
		blobs:        blobs,
		logger:       logger,
	}
}

// CountDocuments counts what an export of the scope would contain
func (s *exportService) CountDocuments(ctx context.Context, scope models.ExportScope) (int, error) {
	if !scope.All() {
		if _, err := s.supplierRepo.GetByID(ctx, *scope.SupplierID); err != nil {
			return 0, err
		}
	}
	return s.exportRepo.CountEntries(ctx, scope)
}

// PrepareExport resolves the archive filename and entries
func (s *exportService) PrepareExport(ctx context.Context, scope models.ExportScope) (*models.ExportPlan, error) {
	plan := &models.ExportPlan{Scope: scope}

	if scope.All() {
		plan.Filename = models.AllExportFilename
		plan.Root = models.AllExportRoot
	} else {
		supplier, err := s.supplierRepo.GetByID(ctx, *scope.SupplierID)
		if err != nil {
			return nil, err
		}
		plan.Filename = SanitizeDocName(supplier.Name) + "_documents.zip"
	}

	entries, err := s.exportRepo.ListEntries(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to list export entries: %w", err)
	}
	plan.Entries = entries

	return plan, nil
}

// WriteArchive streams the plan as a ZIP. Blobs are opened one at a time and
// closed before the next; a missing blob is skipped. Cancellation or a
// failing writer stops the stream at the next entry.
func (s *exportService) WriteArchive(ctx context.Context, plan *models.ExportPlan, w io.Writer) (*models.ExportResult, error) {
	zw := zip.NewWriter(w)
	names := newEntryNamer()
	result := &models.ExportResult{Skipped: []string{}}

	for _, entry := range plan.Entries {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		written, err := s.writeEntry(ctx, zw, names, entryPath(plan, entry), entry)
		if err != nil {
			return result, err
		}
		if written {
			result.Written++
		} else {
			result.Skipped = append(result.Skipped, entry.FilePath)
		}
	}

	if err := zw.Close(); err != nil {
		return result, fmt.Errorf("failed to finalize archive: %w", err)
	}

	s.logger.Info("archive written",
		"filename", plan.Filename,
		"written", result.Written,
		"skipped", len(result.Skipped),
	)

	return result, nil
}

// writeEntry copies one blob into the archive, reporting false if the blob is missing.
// The entry name is claimed only once the blob has opened, so a skipped
// document never pushes a sibling with the same name to " (1)".
func (s *exportService) writeEntry(ctx context.Context, zw *zip.Writer, names *entryNamer, path string, entry models.ExportEntry) (bool, error) {
	rc, err := s.blobs.Open(ctx, entry.FilePath)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("skipping missing blob in export", "file_path", entry.FilePath, "entry", path)
			return false, nil
		}
		return false, err
	}
	defer rc.Close()

	name := names.Unique(path)

	fw, err := zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: entry.CreatedAt,
	})
	if err != nil {
		return false, fmt.Errorf("failed to add archive entry %q: %w", name, err)
	}

	if _, err := io.Copy(fw, rc); err != nil {
		return false, fmt.Errorf("failed to write archive entry %q: %w", name, err)
	}

	return true, nil
}

// entryPath places an entry under the plan's root, its subtree (whole-system
// exports only) and its owner chain
func entryPath(plan *models.ExportPlan, entry models.ExportEntry) string {
	segments := make([]string, 0, len(entry.Owners)+3)
	segments = append(segments, plan.Root)
	if plan.Root != "" {
		segments = append(segments, entry.Subtree)
	}
	segments = append(segments, entry.Owners...)
	segments = append(segments, entry.OriginalName)
	return BuildFullPath(segments...)
}
