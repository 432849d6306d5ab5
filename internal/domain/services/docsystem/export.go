package docsystem

import (
	"context"
	"io"

	"importdocs/internal/domain/models/docsystem"
)

// ExportService builds ZIP archives of stored documents
type ExportService interface {
	// CountDocuments counts what an export of the scope would contain
	CountDocuments(ctx context.Context, scope docsystem.ExportScope) (int, error)

	// PrepareExport resolves the archive filename and its entries.
	// Query failures surface here, before anything is written.
	PrepareExport(ctx context.Context, scope docsystem.ExportScope) (*docsystem.ExportPlan, error)

	// WriteArchive streams the planned archive to w, one blob open at a time.
	// Entries whose blob is missing are skipped and reported in the result.
	WriteArchive(ctx context.Context, plan *docsystem.ExportPlan, w io.Writer) (*docsystem.ExportResult, error)
}
